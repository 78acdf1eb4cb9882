package logging

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

type runIDKey struct{}

// RunIDField is the log field carrying the run ID.
const RunIDField = "run_id"

// NewRunID returns a fresh, time-ordered run ID.
func NewRunID() string {
	return ulid.Make().String()
}

// ContextWithRunID stores id on ctx.
func ContextWithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunIDFromContext returns the run ID on ctx, or "".
func RunIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

// GetOrGenerateRunID returns the run ID on ctx or a new one.
func GetOrGenerateRunID(ctx context.Context) string {
	if id := RunIDFromContext(ctx); id != "" {
		return id
	}
	return NewRunID()
}

// WithLogger attaches l to ctx, tagging it with the run ID when ctx has one.
func WithLogger(ctx context.Context, l zerolog.Logger) context.Context {
	if id := RunIDFromContext(ctx); id != "" {
		l = l.With().Str(RunIDField, id).Logger()
	}
	return l.WithContext(ctx)
}

// FromContext returns the logger attached to ctx. Without one it returns a
// disabled logger.
func FromContext(ctx context.Context) zerolog.Logger {
	if ctx == nil {
		return zerolog.Nop()
	}
	l := zerolog.Ctx(ctx)
	if l == nil || l.GetLevel() == zerolog.Disabled {
		return zerolog.Nop()
	}
	return *l
}
