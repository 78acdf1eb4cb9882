package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyReferenceData = "reference_data"
	keyCalculation   = "calculation"
	keyOutput        = "output"
	keyLogging       = "logging"
)

// knownTopLevelKeys lists the YAML keys that correspond to Config fields.
// Keys not in this list are silently ignored during merge.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownTopLevelKeys = map[string]bool{
	keyReferenceData: true,
	keyCalculation:   true,
	keyOutput:        true,
	keyLogging:       true,
}

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// target. A section present in the file replaces the whole section in
// target; absent sections are left unchanged.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing config YAML from %s: %w", overlayPath, err)
	}

	// Empty or comment-only file.
	if len(overlay) == 0 {
		return nil
	}

	for key, node := range overlay {
		if !knownTopLevelKeys[key] {
			continue
		}
		if err = decodeSection(target, key, &node); err != nil {
			return fmt.Errorf("applying config section %q: %w", key, err)
		}
	}

	return nil
}

// decodeSection decodes node over the section's built-in defaults, so the
// section replaces whatever target held and omitted fields fall back to
// their defaults.
func decodeSection(target *Config, key string, node *yaml.Node) error {
	defaults := New()
	switch key {
	case keyReferenceData:
		v := defaults.ReferenceData
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.ReferenceData = v
	case keyCalculation:
		v := defaults.Calculation
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Calculation = v
	case keyOutput:
		v := defaults.Output
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Output = v
	case keyLogging:
		v := defaults.Logging
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
