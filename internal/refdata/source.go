package refdata

import (
	"context"
	"fmt"
	"strings"
)

// Source kinds.
const (
	SourceEmbedded = "embedded"
	SourceCSV      = "csv"
	SourceBundle   = "bundle"
	SourceSQLite   = "sqlite"
)

// Source selects where reference tables are loaded from.
type Source struct {
	Kind       string
	CSV        CSVSource
	BundlePath string
	SQLitePath string
}

// Open loads tables from the configured source. An empty Kind selects the
// embedded dataset.
func Open(ctx context.Context, src Source) (*Tables, error) {
	switch strings.ToLower(strings.TrimSpace(src.Kind)) {
	case "", SourceEmbedded:
		return Embedded()
	case SourceCSV:
		return LoadCSV(ctx, src.CSV)
	case SourceBundle:
		t, _, err := LoadBundleFile(src.BundlePath)
		return t, err
	case SourceSQLite:
		return LoadSQLite(ctx, src.SQLitePath)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, src.Kind)
	}
}

// SourceKinds lists the accepted Source.Kind values.
func SourceKinds() []string {
	return []string{SourceEmbedded, SourceCSV, SourceBundle, SourceSQLite}
}
