package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/offsetcalc/internal/config"
	"github.com/rshade/offsetcalc/internal/logging"
)

// isTerminal checks if the given file is a terminal.
//
//nolint:gochecknoglobals // Replaced in tests.
var isTerminal = func(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// rootState is the per-invocation state shared by every subcommand.
type rootState struct {
	configPath    string
	debug         bool
	refdataSource string
	years         float64

	cfg       *config.Config
	logger    zerolog.Logger
	logResult *logging.LogPathResult
}

// NewRootCmd creates the root Cobra command for the offsetcalc CLI.
// It loads configuration, applies persistent flag overrides, sets up
// logging with a run ID and registers the subcommands.
func NewRootCmd(ver string) *cobra.Command {
	st := &rootState{}

	cmd := &cobra.Command{
		Use:   "offsetcalc",
		Short: "Biodiversity unit and carbon offset calculator",
		Long: `offsetcalc compares a parcel of land before and after a habitat conversion.

For a before habitat it lists every allowed conversion with its change in
biodiversity units and in carbon (tonnes CO2e over the calculation horizon).`,
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, st)
			if err != nil {
				return err
			}
			st.cfg = cfg
			result := setupLogging(cmd, st)
			st.logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return st.logResult.Close()
		},
	}

	cmd.PersistentFlags().StringVar(&st.configPath, "config", "",
		"config file (default ~/.offsetcalc/config.yaml)")
	cmd.PersistentFlags().BoolVar(&st.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&st.refdataSource, "refdata-source", "",
		"reference data source: embedded, bundle:<file>, sqlite:<file> or csv:<carbon.csv>,<distinct.csv>")
	cmd.PersistentFlags().Float64Var(&st.years, "years", 0,
		"carbon horizon in years (overrides calculation.years)")

	cmd.AddCommand(
		newOptionsCmd(st),
		newEvaluateCmd(st),
		newBrowseCmd(st),
		newRefdataCmd(st),
		newConfigCmd(st),
	)

	return cmd
}

// loadConfig reads the config file and environment, then applies the
// persistent flags on top.
func loadConfig(cmd *cobra.Command, st *rootState) (*config.Config, error) {
	cfg, err := config.Load(st.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	if cmd.Flags().Changed("refdata-source") {
		if err = applyRefdataSource(&cfg.ReferenceData, st.refdataSource); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("years") {
		cfg.Calculation.Years = st.years
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

const rootCmdExample = `  # List every allowed conversion of 10 ha of cereal crops
  offsetcalc options --habitat Farmland --distinct-subtype "Cereal crops" \
    --carbon-subtype "Arable / cultivated land" --size 10 --condition 1

  # Best carbon options first, as JSON
  offsetcalc options --random --seed 7 --sort carbon --order desc --output json

  # Evaluate one conversion
  offsetcalc evaluate --habitat Farmland --distinct-subtype "Cereal crops" \
    --carbon-subtype "Arable / cultivated land" --condition 1 \
    --to-habitat Woodland --to-distinct-subtype "Lowland mixed deciduous woodland" \
    --to-carbon-subtype "Broadleaved woodland" --to-condition Moderate

  # Browse options interactively
  offsetcalc browse --random

  # Use reference data exported to SQLite
  offsetcalc refdata export --sqlite ref.db
  offsetcalc options --refdata-source sqlite:ref.db --random`
