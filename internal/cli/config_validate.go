package cli

import (
	"github.com/spf13/cobra"
)

// newConfigValidateCmd creates the config validate command. It loads the
// file and environment overrides exactly as the calculation commands do and
// reports the first problem found.
func newConfigValidateCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file and OFFSETCALC_* environment variables.

This includes:
- YAML syntax and field types
- Reference data source and its paths
- Calculation horizon and off-site risk
- Output format, sort field, order and limit
- Logging level and format`,
		Example: `  # Validate current configuration
  offsetcalc config validate

  # Validate a specific file
  offsetcalc config validate --config ./offsetcalc.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := loadConfig(cmd, st); err != nil {
				return err
			}
			cmd.Println("Configuration is valid")
			return nil
		},
	}
}
