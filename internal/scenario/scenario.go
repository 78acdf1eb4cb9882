// Package scenario generates random before-intervention habitats for demos
// and exploratory runs.
package scenario

import (
	"fmt"
	"math/rand/v2"

	"github.com/rshade/offsetcalc/internal/habitat"
)

// Default parcel size range in hectares.
const (
	DefaultMinSize = 5.0
	DefaultMaxSize = 20.0
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrNoCandidates indicates the reference data has no distinctiveness row
// whose category also has carbon rows.
const ErrNoCandidates = constError("no habitat with both distinctiveness and carbon rows")

// ErrInvalidSizeRange indicates a size range that is empty or not positive.
const ErrInvalidSizeRange = constError("invalid size range")

// Generator draws before records from the reference data.
type Generator struct {
	builder *habitat.Builder
	rng     *rand.Rand
	minSize float64
	maxSize float64
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source. Use a seeded source for reproducible runs.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		g.rng = r
	}
}

// WithSeed seeds a PCG source with seed.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithSizeRange sets the uniform size range, in hectares.
func WithSizeRange(minSize, maxSize float64) Option {
	return func(g *Generator) {
		g.minSize = minSize
		g.maxSize = maxSize
	}
}

// New returns a Generator. Without WithRand or WithSeed it draws from an
// unseeded source.
func New(b *habitat.Builder, opts ...Option) *Generator {
	g := &Generator{
		builder: b,
		minSize: DefaultMinSize,
		maxSize: DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g
}

// Params draws the inputs for a before record: a distinctiveness row, a
// carbon row of the same category, a condition score, a strategic location
// and a size uniform in the configured range.
func (g *Generator) Params() (habitat.BeforeParams, error) {
	if g.minSize <= 0 || g.maxSize < g.minSize {
		return habitat.BeforeParams{}, fmt.Errorf("%w: [%g, %g]", ErrInvalidSizeRange, g.minSize, g.maxSize)
	}

	ref := g.builder.ReferenceData()
	var candidates []habitat.DistinctivenessRow
	for _, row := range ref.DistinctivenessRows() {
		if len(ref.CarbonRows(row.Category)) > 0 {
			candidates = append(candidates, row)
		}
	}
	if len(candidates) == 0 {
		return habitat.BeforeParams{}, ErrNoCandidates
	}

	distinct := candidates[g.rng.IntN(len(candidates))]
	carbonRows := ref.CarbonRows(distinct.Category)
	carbon := carbonRows[g.rng.IntN(len(carbonRows))]
	conditions := habitat.BeforeConditions()
	locations := habitat.StrategicLocations()

	return habitat.BeforeParams{
		Category:          distinct.Category,
		DistinctSubtype:   distinct.Subtype,
		CarbonSubtype:     carbon.Subtype,
		Condition:         conditions[g.rng.IntN(len(conditions))],
		StrategicLocation: locations[g.rng.IntN(len(locations))],
		Size:              g.minSize + g.rng.Float64()*(g.maxSize-g.minSize),
	}, nil
}

// Before draws parameters and builds the record.
func (g *Generator) Before() (habitat.Record, error) {
	p, err := g.Params()
	if err != nil {
		return habitat.Record{}, err
	}
	rec, err := g.builder.Before(p)
	if err != nil {
		return habitat.Record{}, fmt.Errorf("building random habitat: %w", err)
	}
	return rec, nil
}
