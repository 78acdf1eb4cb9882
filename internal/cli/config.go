package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/offsetcalc/internal/config"
)

// newConfigCmd creates the config command group. Its subcommands do not
// require a valid configuration to run, so the group replaces the root
// pre-run with one that only sets up logging.
func newConfigCmd(st *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the offsetcalc configuration file",
		Long: `Create, check and print the configuration file.

Settings are read from ~/.offsetcalc/config.yaml (or --config), then from
OFFSETCALC_* environment variables such as OFFSETCALC_CALCULATION_YEARS.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			st.cfg = config.New()
			result := setupLogging(cmd, st)
			st.logResult = &result
			return nil
		},
	}

	cmd.AddCommand(
		newConfigInitCmd(st),
		newConfigValidateCmd(st),
		newConfigShowCmd(st),
	)
	return cmd
}

func newConfigShowCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, st)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshaling config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
