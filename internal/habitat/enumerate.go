package habitat

import (
	"errors"
	"fmt"
	"iter"

	"github.com/rs/zerolog"
)

// Option is one allowed conversion of a before record.
type Option struct {
	Record Record `json:"habitat_after"`
	Delta  Delta  `json:"delta"`
}

// Name returns the candidate habitat's display name.
func (o Option) Name() string {
	return o.Record.Name()
}

// Stats counts what an enumeration considered and skipped.
type Stats struct {
	Considered   int                    `json:"considered"`
	Emitted      int                    `json:"emitted"`
	Disallowed   map[DisallowReason]int `json:"disallowed"`
	LookupErrors int                    `json:"lookup_errors"`
}

// Skipped returns the number of candidates that produced no option.
func (s *Stats) Skipped() int {
	return s.Considered - s.Emitted
}

// DisallowedTotal returns the number of Disallowed candidates over all reasons.
func (s *Stats) DisallowedTotal() int {
	total := 0
	for _, n := range s.Disallowed {
		total += n
	}
	return total
}

func (s *Stats) reset() {
	*s = Stats{Disallowed: make(map[DisallowReason]int)}
}

// Result is a materialised enumeration.
type Result struct {
	Before  Record   `json:"habitat_before"`
	Options []Option `json:"options"`
	Stats   Stats    `json:"stats"`
}

// Enumerator walks every reachable after-habitat for a before record.
type Enumerator struct {
	builder           *Builder
	years             float64
	stopOnLookupError bool
	logger            zerolog.Logger
}

// EnumeratorOption configures an Enumerator.
type EnumeratorOption func(*Enumerator)

// WithYears sets the carbon horizon used for deltas.
func WithYears(years float64) EnumeratorOption {
	return func(e *Enumerator) {
		e.years = years
	}
}

// WithStopOnLookupError makes a lookup failure on any candidate terminate
// the enumeration instead of being skipped and counted.
func WithStopOnLookupError(stop bool) EnumeratorOption {
	return func(e *Enumerator) {
		e.stopOnLookupError = stop
	}
}

// WithLogger attaches a logger for skipped-candidate diagnostics.
func WithLogger(l zerolog.Logger) EnumeratorOption {
	return func(e *Enumerator) {
		e.logger = l
	}
}

// NewEnumerator returns an Enumerator over the builder's reference data.
func NewEnumerator(b *Builder, opts ...EnumeratorOption) *Enumerator {
	e := &Enumerator{
		builder: b,
		years:   DefaultYears,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Options returns a lazy sequence of every allowed conversion of before.
//
// Candidates are visited in a fixed order: distinctiveness rows in table
// order, then carbon rows of the same category in table order, then the
// condition labels in ConditionLabels order. Disallowed candidates and
// candidates failing a lookup are skipped and counted in stats, which may be
// nil. A fatal error, or a lookup error when WithStopOnLookupError is set, is
// yielded once as the final element.
//
// The sequence reads only before and the reference tables, so ranging over
// it again yields the same options in the same order.
func (e *Enumerator) Options(before Record, stats *Stats) iter.Seq2[Option, error] {
	return func(yield func(Option, error) bool) {
		if stats == nil {
			stats = &Stats{}
		}
		stats.reset()

		if _, err := e.builder.rules.Targets(before.Category); err != nil {
			yield(Option{}, err)
			return
		}

		ref := e.builder.ref
		for _, distinct := range ref.DistinctivenessRows() {
			for _, carbon := range ref.CarbonRows(distinct.Category) {
				for _, label := range ConditionLabels() {
					stats.Considered++
					outcome, err := e.builder.After(before, AfterParams{
						Size:            before.Size,
						Category:        distinct.Category,
						DistinctSubtype: distinct.Subtype,
						CarbonSubtype:   carbon.Subtype,
						Condition:       label,
					})
					if err != nil {
						if IsFatal(err) || e.stopOnLookupError {
							yield(Option{}, fmt.Errorf("enumerating %s: %w", before.Name(), err))
							return
						}
						stats.LookupErrors++
						e.logger.Debug().
							Str("operation", "enumerate_options").
							Str("candidate_habitat", string(distinct.Category)).
							Str("condition", string(label)).
							Err(err).
							Msg("skipping candidate after lookup failure")
						continue
					}

					after, ok := outcome.Record()
					if !ok {
						stats.Disallowed[outcome.Reason()]++
						continue
					}

					stats.Emitted++
					opt := Option{
						Record: after,
						Delta:  NetChangeOver([]Record{before}, []Record{after}, e.years),
					}
					if !yield(opt, nil) {
						return
					}
				}
			}
		}
	}
}

// Collect materialises Options into a Result.
func (e *Enumerator) Collect(before Record) (Result, error) {
	res := Result{Before: before}
	for opt, err := range e.Options(before, &res.Stats) {
		if err != nil {
			return Result{}, err
		}
		res.Options = append(res.Options, opt)
	}

	e.logger.Info().
		Str("operation", "enumerate_options").
		Str("habitat_before", before.Name()).
		Int("considered", res.Stats.Considered).
		Int("emitted", res.Stats.Emitted).
		Int("disallowed", res.Stats.DisallowedTotal()).
		Int("lookup_errors", res.Stats.LookupErrors).
		Msg("enumeration complete")

	return res, nil
}

// Evaluate builds one conversion and returns its delta. The returned Outcome
// is Disallowed, with a zero Delta, when the conversion is excluded.
func (e *Enumerator) Evaluate(before Record, p AfterParams) (Outcome, Delta, error) {
	outcome, err := e.builder.After(before, p)
	if err != nil {
		return Outcome{}, Delta{}, err
	}
	after, ok := outcome.Record()
	if !ok {
		return outcome, Delta{}, nil
	}
	return outcome, NetChangeOver([]Record{before}, []Record{after}, e.years), nil
}

// IsLookupError reports whether err is a reference data lookup failure.
func IsLookupError(err error) bool {
	var le *LookupError
	return errors.As(err, &le)
}
