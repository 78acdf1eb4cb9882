// Package config loads offsetcalc settings from defaults, a YAML file and
// OFFSETCALC_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/offsetcalc/internal/habitat"
	"github.com/rshade/offsetcalc/internal/refdata"
	"github.com/rshade/offsetcalc/internal/report"
)

// Config file location.
const (
	DirName  = ".offsetcalc"
	FileName = "config.yaml"
)

// ErrInvalidConfig wraps every validation failure.
const ErrInvalidConfig = constError("invalid configuration")

type constError string

func (e constError) Error() string { return string(e) }

// Config is the complete offsetcalc configuration.
type Config struct {
	ReferenceData ReferenceDataConfig `yaml:"reference_data" envPrefix:"REFDATA_"`
	Calculation   CalculationConfig   `yaml:"calculation"    envPrefix:"CALCULATION_"`
	Output        OutputConfig        `yaml:"output"         envPrefix:"OUTPUT_"`
	Logging       LoggingConfig       `yaml:"logging"        envPrefix:"LOG_"`
}

// ReferenceDataConfig selects and locates the reference tables.
type ReferenceDataConfig struct {
	// Source is one of refdata.SourceKinds. Empty means embedded.
	Source                  string `yaml:"source"                   env:"SOURCE"`
	CarbonCSV               string `yaml:"carbon_csv"               env:"CARBON_CSV"`
	DistinctivenessCSV      string `yaml:"distinctiveness_csv"      env:"DISTINCTIVENESS_CSV"`
	CarbonEncoding          string `yaml:"carbon_encoding"          env:"CARBON_ENCODING"`
	DistinctivenessEncoding string `yaml:"distinctiveness_encoding" env:"DISTINCTIVENESS_ENCODING"`
	Bundle                  string `yaml:"bundle"                   env:"BUNDLE"`
	SQLite                  string `yaml:"sqlite"                   env:"SQLITE"`
}

// CalculationConfig holds calculation parameters.
type CalculationConfig struct {
	Years             float64 `yaml:"years"                env:"YEARS"`
	OffSiteRisk       float64 `yaml:"off_site_risk"        env:"OFF_SITE_RISK"`
	StopOnLookupError bool    `yaml:"stop_on_lookup_error" env:"STOP_ON_LOOKUP_ERROR"`
}

// OutputConfig holds default rendering options for the options command.
type OutputConfig struct {
	Format string `yaml:"format" env:"FORMAT"`
	Sort   string `yaml:"sort"   env:"SORT"`
	Order  string `yaml:"order"  env:"ORDER"`
	Limit  int    `yaml:"limit"  env:"LIMIT"`
}

// New returns a Config with built-in defaults.
func New() *Config {
	return &Config{
		ReferenceData: ReferenceDataConfig{
			Source:                  refdata.SourceEmbedded,
			CarbonEncoding:          refdata.EncodingCP1252,
			DistinctivenessEncoding: refdata.EncodingUTF8,
		},
		Calculation: CalculationConfig{
			Years:       habitat.DefaultYears,
			OffSiteRisk: habitat.DefaultOffSiteRisk,
		},
		Output: OutputConfig{
			Format: string(report.FormatTable),
			Sort:   string(report.SortByOrder),
			Order:  report.SortOrderAsc,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultPath returns ~/.offsetcalc/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, DirName, FileName), nil
}

// Load builds a Config from defaults, the YAML file at path and the
// environment, then validates it. An empty path reads DefaultPath when that
// file exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := New()

	if path == "" {
		def, err := DefaultPath()
		if err == nil {
			if _, statErr := os.Stat(def); statErr == nil {
				path = def
			}
		}
	}
	if path != "" {
		if err := ShallowMergeYAML(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section and joins their errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.ReferenceData.Validate(),
		c.Calculation.Validate(),
		c.Output.Validate(),
		c.Logging.Validate(),
	)
}

// Validate checks the source kind and that the selected source has its paths.
func (r ReferenceDataConfig) Validate() error {
	kind := strings.ToLower(strings.TrimSpace(r.Source))
	switch kind {
	case "", refdata.SourceEmbedded:
		return nil
	case refdata.SourceCSV:
		if r.CarbonCSV == "" || r.DistinctivenessCSV == "" {
			return fmt.Errorf("%w: reference_data: csv source needs carbon_csv and distinctiveness_csv", ErrInvalidConfig)
		}
	case refdata.SourceBundle:
		if r.Bundle == "" {
			return fmt.Errorf("%w: reference_data: bundle source needs bundle", ErrInvalidConfig)
		}
	case refdata.SourceSQLite:
		if r.SQLite == "" {
			return fmt.Errorf("%w: reference_data: sqlite source needs sqlite", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: reference_data.source %q (valid: %v)", ErrInvalidConfig, r.Source, refdata.SourceKinds())
	}
	return nil
}

// RefdataSource converts the section into a refdata.Source.
func (r ReferenceDataConfig) RefdataSource() refdata.Source {
	return refdata.Source{
		Kind: r.Source,
		CSV: refdata.CSVSource{
			CarbonPath:              r.CarbonCSV,
			DistinctivenessPath:     r.DistinctivenessCSV,
			CarbonEncoding:          r.CarbonEncoding,
			DistinctivenessEncoding: r.DistinctivenessEncoding,
		},
		BundlePath: r.Bundle,
		SQLitePath: r.SQLite,
	}
}

// Validate checks the horizon and risk multiplier are positive.
func (c CalculationConfig) Validate() error {
	if c.Years <= 0 {
		return fmt.Errorf("%w: calculation.years must be > 0, got %g", ErrInvalidConfig, c.Years)
	}
	if c.OffSiteRisk <= 0 {
		return fmt.Errorf("%w: calculation.off_site_risk must be > 0, got %g", ErrInvalidConfig, c.OffSiteRisk)
	}
	return nil
}

// Validate checks the output defaults parse.
func (o OutputConfig) Validate() error {
	var errs []error
	if _, err := report.ParseFormat(o.Format); err != nil {
		errs = append(errs, err)
	}
	if _, err := report.ParseSortField(o.Sort); err != nil {
		errs = append(errs, err)
	}
	if _, err := report.ParseSortOrder(o.Order); err != nil {
		errs = append(errs, err)
	}
	if o.Limit < 0 {
		errs = append(errs, report.ErrInvalidLimit)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: output: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Validate checks the level and format are known.
func (l LoggingConfig) Validate() error {
	if !slices.Contains(logLevels(), strings.ToLower(l.Level)) {
		return fmt.Errorf("%w: logging.level %q (valid: %v)", ErrInvalidConfig, l.Level, logLevels())
	}
	if !slices.Contains(logFormats(), strings.ToLower(l.Format)) {
		return fmt.Errorf("%w: logging.format %q (valid: %v)", ErrInvalidConfig, l.Format, logFormats())
	}
	return nil
}

// Save writes cfg as YAML to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}
