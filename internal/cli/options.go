package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/offsetcalc/internal/report"
	"github.com/rshade/offsetcalc/internal/tui"
)

// summaryWidth is the box width of the summary printed under table output.
const summaryWidth = 80

type optionsFlags struct {
	before     beforeFlags
	output     string
	sortBy     string
	order      string
	categories []string
	limit      int
	stats      bool
	strict     bool
}

// newOptionsCmd creates the options command, which lists every allowed
// conversion of a before habitat with its biodiversity and carbon change.
func newOptionsCmd(st *rootState) *cobra.Command {
	var f optionsFlags

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List allowed conversions of a habitat",
		Long: `List every habitat the before parcel can be converted into, with the change
in biodiversity units and in carbon over the calculation horizon.

Conversions that the metric does not permit are skipped. Rows missing from the
reference tables are skipped too, unless --strict is set.`,
		Example: `  offsetcalc options --habitat Farmland --distinct-subtype "Cereal crops" \
    --carbon-subtype "Arable / cultivated land" --condition 1

  offsetcalc options --random --seed 42 --category Woodland --sort carbon --order desc
  offsetcalc options --random --output csv --limit 20`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOptions(cmd, st, &f)
		},
	}

	f.before.register(cmd)
	cmd.Flags().StringVar(&f.output, "output", "", "output format: table, json, ndjson or csv (default from config)")
	cmd.Flags().StringVar(&f.sortBy, "sort", "", "sort by order, biodiversity, carbon, name or category")
	cmd.Flags().StringVar(&f.order, "order", "", "sort order: asc or desc")
	cmd.Flags().StringSliceVar(&f.categories, "category", nil, "only show these after-habitat categories")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "show at most this many options (0 for all)")
	cmd.Flags().BoolVar(&f.stats, "stats", false, "print the summary box even when not on a terminal")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "fail on the first missing reference row")

	return cmd
}

func runOptions(cmd *cobra.Command, st *rootState, f *optionsFlags) error {
	ctx := cmd.Context()
	cfg := st.cfg

	format, sortBy, order, limit, err := resolveOutput(cmd, st, f)
	if err != nil {
		return err
	}
	if f.strict {
		cfg.Calculation.StopOnLookupError = true
	}

	tables, err := loadTables(ctx, cfg)
	if err != nil {
		return err
	}
	builder, enum := newCalculator(ctx, tables, cfg)

	before, err := f.before.build(cmd, builder)
	if err != nil {
		return err
	}

	res, err := enum.Collect(before)
	if err != nil {
		return fmt.Errorf("enumerating options: %w", err)
	}

	rep := report.New(res, cfg.Calculation.Years)
	rep.Rows = report.FilterCategories(rep.Rows, f.categories)
	rep.Rows = report.Sort(rep.Rows, sortBy, order)
	if rep.Rows, err = report.Limit(rep.Rows, limit); err != nil {
		return err
	}

	st.logger.Debug().
		Str("before", before.Name()).
		Int("considered", res.Stats.Considered).
		Int("emitted", res.Stats.Emitted).
		Int("lookup_errors", res.Stats.LookupErrors).
		Int("shown", len(rep.Rows)).
		Msg("options enumerated")

	out := cmd.OutOrStdout()
	if err = report.Render(out, format, rep); err != nil {
		return fmt.Errorf("rendering options: %w", err)
	}
	if format == report.FormatTable && (f.stats || isTerminal(os.Stdout)) {
		fmt.Fprintln(out)
		fmt.Fprintln(out, tui.RenderSummary(rep, summaryWidth))
	}
	return nil
}

// resolveOutput combines the output flags with the configured defaults.
func resolveOutput(
	cmd *cobra.Command, st *rootState, f *optionsFlags,
) (report.Format, report.SortField, string, int, error) {
	out := st.cfg.Output
	if f.output != "" {
		out.Format = f.output
	}
	if f.sortBy != "" {
		out.Sort = f.sortBy
	}
	if f.order != "" {
		out.Order = f.order
	}
	if cmd.Flags().Changed("limit") {
		out.Limit = f.limit
	}

	format, err := report.ParseFormat(out.Format)
	if err != nil {
		return "", "", "", 0, err
	}
	sortBy, err := report.ParseSortField(out.Sort)
	if err != nil {
		return "", "", "", 0, err
	}
	order, err := report.ParseSortOrder(out.Order)
	if err != nil {
		return "", "", "", 0, err
	}
	if out.Limit < 0 {
		return "", "", "", 0, fmt.Errorf("%w: got %d", report.ErrInvalidLimit, out.Limit)
	}
	return format, sortBy, order, out.Limit, nil
}
