package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/offsetcalc/internal/logging"
	"github.com/rshade/offsetcalc/internal/refdata"
	"github.com/rshade/offsetcalc/internal/report"
)

// writeConfig writes YAML content to a temp file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNew_DefaultsAreValid(t *testing.T) {
	cfg := New()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, refdata.SourceEmbedded, cfg.ReferenceData.Source)
	assert.Equal(t, 30.0, cfg.Calculation.Years)
	assert.Equal(t, 1.0, cfg.Calculation.OffSiteRisk)
	assert.False(t, cfg.Calculation.StopOnLookupError)
	assert.Equal(t, string(report.FormatTable), cfg.Output.Format)
}

func TestShallowMergeYAML_SectionReplacement(t *testing.T) {
	target := New()
	target.Output.Limit = 7
	target.Logging.Level = "warn"

	path := writeConfig(t, `
output:
  format: json
calculation:
  years: 50
unknown_section:
  ignored: true
`)
	require.NoError(t, ShallowMergeYAML(target, path))

	assert.Equal(t, "json", target.Output.Format)
	assert.Zero(t, target.Output.Limit, "replaced section drops earlier values")
	assert.Equal(t, string(report.SortByOrder), target.Output.Sort, "omitted fields fall back to defaults")
	assert.Equal(t, 50.0, target.Calculation.Years)
	assert.Equal(t, 1.0, target.Calculation.OffSiteRisk)
	assert.Equal(t, "warn", target.Logging.Level, "absent sections are untouched")
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	tests := []struct {
		name    string
		target  *Config
		path    string
		wantErr string
	}{
		{"nil target", nil, "x.yaml", "nil target"},
		{"missing file", New(), filepath.Join(t.TempDir(), "none.yaml"), "reading config file"},
		{"malformed", New(), writeConfig(t, "output: [unclosed"), "parsing config YAML"},
		{"wrong type", New(), writeConfig(t, "calculation:\n  years: forever\n"), `section "calculation"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ShallowMergeYAML(tt.target, tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestShallowMergeYAML_EmptyFile(t *testing.T) {
	cfg := New()
	require.NoError(t, ShallowMergeYAML(cfg, writeConfig(t, "# nothing here\n")))
	assert.Equal(t, New(), cfg)
}

func TestApplyEnv(t *testing.T) {
	cfg := New()
	err := applyEnv(cfg, env.Options{
		Prefix: EnvPrefix,
		Environment: map[string]string{
			"OFFSETCALC_CALCULATION_YEARS":                "25",
			"OFFSETCALC_CALCULATION_STOP_ON_LOOKUP_ERROR": "true",
			"OFFSETCALC_REFDATA_SOURCE":                   "sqlite",
			"OFFSETCALC_REFDATA_SQLITE":                   "/data/ref.db",
			"OFFSETCALC_OUTPUT_LIMIT":                     "5",
			"OFFSETCALC_LOG_LEVEL":                        "debug",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 25.0, cfg.Calculation.Years)
	assert.True(t, cfg.Calculation.StopOnLookupError)
	assert.Equal(t, 1.0, cfg.Calculation.OffSiteRisk, "unset variables keep their value")
	assert.Equal(t, "sqlite", cfg.ReferenceData.Source)
	assert.Equal(t, "/data/ref.db", cfg.ReferenceData.SQLite)
	assert.Equal(t, 5, cfg.Output.Limit)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestApplyEnv_BadValue(t *testing.T) {
	err := applyEnv(New(), env.Options{
		Prefix:      EnvPrefix,
		Environment: map[string]string{"OFFSETCALC_CALCULATION_YEARS": "many"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OFFSETCALC_OUTPUT_FORMAT", "csv")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "csv", cfg.Output.Format)

	path := writeConfig(t, "calculation:\n  years: 10\n  off_site_risk: 0.5\n")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10.0, cfg.Calculation.Years)
	assert.Equal(t, 0.5, cfg.Calculation.OffSiteRisk)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "calculation:\n  years: -1\n"))
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_DefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, DirName), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(home, DirName, FileName), []byte("output:\n  sort: carbon\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "carbon", cfg.Output.Sort)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown source", func(c *Config) { c.ReferenceData.Source = "postgres" }},
		{"csv without paths", func(c *Config) { c.ReferenceData.Source = refdata.SourceCSV }},
		{"bundle without path", func(c *Config) { c.ReferenceData.Source = refdata.SourceBundle }},
		{"sqlite without path", func(c *Config) { c.ReferenceData.Source = refdata.SourceSQLite }},
		{"zero years", func(c *Config) { c.Calculation.Years = 0 }},
		{"negative risk", func(c *Config) { c.Calculation.OffSiteRisk = -1 }},
		{"bad format", func(c *Config) { c.Output.Format = "xml" }},
		{"bad sort", func(c *Config) { c.Output.Sort = "cost" }},
		{"bad order", func(c *Config) { c.Output.Order = "sideways" }},
		{"negative limit", func(c *Config) { c.Output.Limit = -2 }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestReferenceDataConfig_RefdataSource(t *testing.T) {
	rd := ReferenceDataConfig{
		Source:             refdata.SourceCSV,
		CarbonCSV:          "carbon.csv",
		DistinctivenessCSV: "distinct.csv",
		CarbonEncoding:     refdata.EncodingCP1252,
	}
	src := rd.RefdataSource()
	assert.Equal(t, refdata.SourceCSV, src.Kind)
	assert.Equal(t, "carbon.csv", src.CSV.CarbonPath)
	assert.Equal(t, "distinct.csv", src.CSV.DistinctivenessPath)
	assert.Equal(t, refdata.EncodingCP1252, src.CSV.CarbonEncoding)
}

func TestLoggingConfig_ToLoggingConfig(t *testing.T) {
	lc := LoggingConfig{Level: "DEBUG", Format: "json"}
	got := lc.ToLoggingConfig()
	assert.Equal(t, logging.Config{Level: "debug", Format: "json", Output: logging.OutputStderr}, got)

	lc.File = "/tmp/offsetcalc.log"
	got = lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, got.Output)
	assert.Equal(t, "/tmp/offsetcalc.log", got.File)
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DirName, FileName)
	cfg := New()
	cfg.Calculation.Years = 45
	cfg.Output.Format = "json"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 45.0, loaded.Calculation.Years)
	assert.Equal(t, "json", loaded.Output.Format)
}
