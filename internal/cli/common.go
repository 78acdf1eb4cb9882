package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/offsetcalc/internal/config"
	"github.com/rshade/offsetcalc/internal/habitat"
	"github.com/rshade/offsetcalc/internal/logging"
	"github.com/rshade/offsetcalc/internal/refdata"
	"github.com/rshade/offsetcalc/internal/scenario"
)

// ErrMissingFlag reports a required flag that was not given.
var ErrMissingFlag = errors.New("missing required flag")

// applyRefdataSource parses a --refdata-source value of the form
// "kind" or "kind:path" into rd.
func applyRefdataSource(rd *config.ReferenceDataConfig, value string) error {
	kind, path, _ := strings.Cut(strings.TrimSpace(value), ":")
	kind = strings.ToLower(kind)
	rd.Source = kind

	switch kind {
	case "", refdata.SourceEmbedded:
		return nil
	case refdata.SourceBundle:
		rd.Bundle = path
	case refdata.SourceSQLite:
		rd.SQLite = path
	case refdata.SourceCSV:
		carbon, distinct, ok := strings.Cut(path, ",")
		if !ok {
			return fmt.Errorf("--refdata-source csv needs csv:<carbon.csv>,<distinct.csv>, got %q", value)
		}
		rd.CarbonCSV, rd.DistinctivenessCSV = carbon, distinct
	default:
		return fmt.Errorf("%w: %q (valid: %v)", refdata.ErrUnknownSource, kind, refdata.SourceKinds())
	}
	return nil
}

// loadTables opens the configured reference data.
func loadTables(ctx context.Context, cfg *config.Config) (*refdata.Tables, error) {
	log := logging.FromContext(ctx)
	src := cfg.ReferenceData.RefdataSource()

	tables, err := refdata.Open(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("loading reference data: %w", err)
	}

	carbon, distinct := tables.Len()
	log.Debug().
		Str("operation", "load_refdata").
		Str("source", src.Kind).
		Int("carbon_rows", carbon).
		Int("distinctiveness_rows", distinct).
		Msg("reference data loaded")
	return tables, nil
}

// newCalculator wires a builder and an enumerator over it from configuration.
func newCalculator(
	ctx context.Context, tables *refdata.Tables, cfg *config.Config,
) (*habitat.Builder, *habitat.Enumerator) {
	b := habitat.NewBuilder(tables, habitat.WithOffSiteRisk(cfg.Calculation.OffSiteRisk))
	return b, habitat.NewEnumerator(b,
		habitat.WithYears(cfg.Calculation.Years),
		habitat.WithStopOnLookupError(cfg.Calculation.StopOnLookupError),
		habitat.WithLogger(logging.ComponentLogger(logging.FromContext(ctx), "habitat")),
	)
}

// beforeFlags are the flags describing the before habitat.
type beforeFlags struct {
	category          string
	distinctSubtype   string
	carbonSubtype     string
	size              float64
	condition         float64
	strategicLocation float64

	random bool
	seed   uint64
}

const defaultSize = 10.0

func (f *beforeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.category, "habitat", "", "before habitat category, e.g. Farmland")
	cmd.Flags().StringVar(&f.distinctSubtype, "distinct-subtype", "", "before subtype in the distinctiveness table")
	cmd.Flags().StringVar(&f.carbonSubtype, "carbon-subtype", "", "before subtype in the carbon table")
	cmd.Flags().Float64Var(&f.size, "size", defaultSize, "parcel size in hectares")
	cmd.Flags().Float64Var(&f.condition, "condition", 1, "before condition score: 3, 2.5, 2, 1.5 or 1")
	cmd.Flags().Float64Var(&f.strategicLocation, "strategic-location", habitat.StrategicLow,
		"strategic location multiplier: 1.15, 1.1 or 1")
	cmd.Flags().BoolVar(&f.random, "random", false, "generate a random before habitat from the reference data")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "seed for --random (unseeded when omitted)")
}

// build resolves the flags into a before record.
func (f *beforeFlags) build(cmd *cobra.Command, b *habitat.Builder) (habitat.Record, error) {
	if f.random {
		var opts []scenario.Option
		if cmd.Flags().Changed("seed") {
			opts = append(opts, scenario.WithSeed(f.seed))
		}
		return scenario.New(b, opts...).Before()
	}

	if f.category == "" || f.distinctSubtype == "" || f.carbonSubtype == "" {
		return habitat.Record{}, fmt.Errorf(
			"%w: --habitat, --distinct-subtype and --carbon-subtype (or --random)", ErrMissingFlag)
	}
	return b.Before(habitat.BeforeParams{
		Category:          resolveCategory(b.ReferenceData(), f.category),
		DistinctSubtype:   f.distinctSubtype,
		CarbonSubtype:     f.carbonSubtype,
		Size:              f.size,
		Condition:         f.condition,
		StrategicLocation: f.strategicLocation,
	})
}

// categoryLister is implemented by reference data that can list its categories.
type categoryLister interface {
	Categories() []habitat.Category
}

// resolveCategory matches s case-insensitively against the categories in
// ref. Unmatched names are returned unchanged so the lookup reports them.
func resolveCategory(ref habitat.ReferenceData, s string) habitat.Category {
	s = strings.TrimSpace(s)
	if lister, ok := ref.(categoryLister); ok {
		for _, c := range lister.Categories() {
			if strings.EqualFold(string(c), s) {
				return c
			}
		}
	}
	return habitat.Category(s)
}
