package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment override, e.g.
// OFFSETCALC_CALCULATION_YEARS or OFFSETCALC_LOG_LEVEL.
const EnvPrefix = "OFFSETCALC_"

// ApplyEnv overrides cfg fields from OFFSETCALC_* environment variables.
// Unset variables leave fields untouched.
func ApplyEnv(cfg *Config) error {
	return applyEnv(cfg, env.Options{Prefix: EnvPrefix})
}

func applyEnv(cfg *Config, opts env.Options) error {
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
