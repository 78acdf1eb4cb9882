package config

import (
	"strings"

	"github.com/rshade/offsetcalc/internal/logging"
)

// LoggingConfig controls log level, format and destination.
type LoggingConfig struct {
	Level  string `yaml:"level"  env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`

	// File sends logs to a file instead of stderr when set.
	File string `yaml:"file" env:"FILE"`
}

func logLevels() []string {
	return []string{"trace", "debug", "info", "warn", "error"}
}

func logFormats() []string {
	return []string{logging.FormatConsole, logging.FormatJSON}
}

// ToLoggingConfig converts the section into a logging.Config. A set File
// selects file output, otherwise logs go to stderr.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}
	return logging.Config{
		Level:  strings.ToLower(lc.Level),
		Format: strings.ToLower(lc.Format),
		Output: output,
		File:   lc.File,
	}
}
