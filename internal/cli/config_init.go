package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/offsetcalc/internal/config"
)

// ErrConfigExists is returned by config init when the file exists and
// --force is not set.
var ErrConfigExists = errors.New("configuration file already exists, use --force to overwrite")

// newConfigInitCmd creates the config init command, which writes the
// default configuration to --config or ~/.offsetcalc/config.yaml.
func newConfigInitCmd(st *rootState) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Example: `  # Create ~/.offsetcalc/config.yaml
  offsetcalc config init

  # Write somewhere else, overwriting an existing file
  offsetcalc config init --config ./offsetcalc.yaml --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := st.configPath
			if path == "" {
				def, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = def
			}

			if !force {
				_, err := os.Stat(path)
				if err == nil {
					return fmt.Errorf("%w: %s", ErrConfigExists, path)
				}
				if !os.IsNotExist(err) {
					return fmt.Errorf("cannot access config path %s: %w", path, err)
				}
			}

			if err := config.New().Save(path); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			st.logger.Debug().Str("path", path).Msg("configuration initialized")
			cmd.Printf("Configuration initialized at %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	return cmd
}
