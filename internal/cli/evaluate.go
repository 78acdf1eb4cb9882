package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/offsetcalc/internal/habitat"
	"github.com/rshade/offsetcalc/internal/report"
)

// ErrUnknownCondition reports a --to-condition value that is not a known label.
var ErrUnknownCondition = errors.New("unknown condition label")

type evaluateFlags struct {
	before          beforeFlags
	category        string
	distinctSubtype string
	carbonSubtype   string
	condition       string
	size            float64
	output          string
}

// newEvaluateCmd creates the evaluate command, which builds a single
// conversion and reports whether it is allowed and what it changes.
func newEvaluateCmd(st *rootState) *cobra.Command {
	var f evaluateFlags

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate one habitat conversion",
		Long: `Build the after habitat for one conversion of the before parcel and report
the change in biodiversity units and carbon, or why the conversion is not
allowed.`,
		Example: `  offsetcalc evaluate --habitat Farmland --distinct-subtype "Cereal crops" \
    --carbon-subtype "Arable / cultivated land" --condition 1 \
    --to-habitat Woodland --to-distinct-subtype "Lowland mixed deciduous woodland" \
    --to-carbon-subtype "Broadleaved woodland" --to-condition Moderate`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEvaluate(cmd, st, &f)
		},
	}

	f.before.register(cmd)
	cmd.Flags().StringVar(&f.category, "to-habitat", "", "after habitat category (required)")
	cmd.Flags().StringVar(&f.distinctSubtype, "to-distinct-subtype", "", "after subtype in the distinctiveness table (required)")
	cmd.Flags().StringVar(&f.carbonSubtype, "to-carbon-subtype", "", "after subtype in the carbon table (required)")
	cmd.Flags().StringVar(&f.condition, "to-condition", string(habitat.ConditionModerate),
		"target condition label, e.g. Good, \"Fairly Good\", Moderate")
	cmd.Flags().Float64Var(&f.size, "to-size", 0, "after size in hectares (defaults to the before size)")
	cmd.Flags().StringVar(&f.output, "output", string(report.FormatTable), "output format: table or json")

	return cmd
}

func runEvaluate(cmd *cobra.Command, st *rootState, f *evaluateFlags) error {
	ctx := cmd.Context()

	format, err := report.ParseFormat(f.output)
	if err != nil {
		return err
	}
	if f.category == "" || f.distinctSubtype == "" || f.carbonSubtype == "" {
		return fmt.Errorf("%w: --to-habitat, --to-distinct-subtype and --to-carbon-subtype", ErrMissingFlag)
	}
	condition, ok := habitat.ParseCondition(f.condition)
	if !ok {
		return fmt.Errorf("%w: %q (valid: %q)", ErrUnknownCondition, f.condition, habitat.ConditionLabels())
	}

	tables, err := loadTables(ctx, st.cfg)
	if err != nil {
		return err
	}
	builder, enum := newCalculator(ctx, tables, st.cfg)

	before, err := f.before.build(cmd, builder)
	if err != nil {
		return err
	}

	size := before.Size
	if cmd.Flags().Changed("to-size") {
		size = f.size
	}
	outcome, delta, err := enum.Evaluate(before, habitat.AfterParams{
		Size:            size,
		Category:        resolveCategory(tables, f.category),
		DistinctSubtype: f.distinctSubtype,
		CarbonSubtype:   f.carbonSubtype,
		Condition:       condition,
	})
	if err != nil {
		return fmt.Errorf("evaluating conversion: %w", err)
	}

	st.logger.Debug().
		Str("before", before.Name()).
		Bool("allowed", outcome.Allowed()).
		Stringer("reason", outcome.Reason()).
		Msg("conversion evaluated")

	return report.RenderEvaluation(cmd.OutOrStdout(), format, report.NewEvaluation(before, outcome, delta))
}
