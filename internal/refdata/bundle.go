package refdata

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/rshade/offsetcalc/internal/habitat"
)

// SupportedSchema is the semver constraint bundles must satisfy.
const SupportedSchema = ">= 1.0.0, < 2.0.0"

// CurrentSchema is written by WriteBundle.
const CurrentSchema = "1.0.0"

// Bundle is the YAML form of a complete reference dataset.
type Bundle struct {
	SchemaVersion   string                       `yaml:"schema_version"`
	Name            string                       `yaml:"name,omitempty"`
	Description     string                       `yaml:"description,omitempty"`
	Carbon          []habitat.CarbonRow          `yaml:"carbon"`
	Distinctiveness []habitat.DistinctivenessRow `yaml:"distinctiveness"`
}

//go:embed data/default.yaml
var embeddedBundle []byte

// Embedded returns the illustrative dataset compiled into the binary.
func Embedded() (*Tables, error) {
	t, _, err := LoadBundle(bytes.NewReader(embeddedBundle))
	if err != nil {
		return nil, fmt.Errorf("embedded dataset: %w", err)
	}
	return t, nil
}

// LoadBundleFile reads a YAML bundle from path.
func LoadBundleFile(path string) (*Tables, Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Bundle{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	t, b, err := LoadBundle(f)
	if err != nil {
		return nil, Bundle{}, fmt.Errorf("loading %s: %w", path, err)
	}
	return t, b, nil
}

// LoadBundle decodes a YAML bundle and checks its schema version against
// SupportedSchema.
func LoadBundle(r io.Reader) (*Tables, Bundle, error) {
	var b Bundle
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&b); err != nil {
		return nil, Bundle{}, fmt.Errorf("decoding bundle: %w", err)
	}
	if err := checkSchema(b.SchemaVersion); err != nil {
		return nil, Bundle{}, err
	}
	t, err := NewTables(b.Carbon, b.Distinctiveness)
	if err != nil {
		return nil, Bundle{}, err
	}
	return t, b, nil
}

// WriteBundle encodes t as a YAML bundle.
func WriteBundle(w io.Writer, t *Tables, name string) error {
	b := Bundle{
		SchemaVersion:   CurrentSchema,
		Name:            name,
		Carbon:          t.AllCarbonRows(),
		Distinctiveness: t.DistinctivenessRows(),
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encoding bundle: %w", err)
	}
	return enc.Close()
}

func checkSchema(version string) error {
	if version == "" {
		return fmt.Errorf("%w: schema_version is required", ErrUnsupportedSchema)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedSchema, version, err)
	}
	c, err := semver.NewConstraint(SupportedSchema)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedSchema, v, SupportedSchema)
	}
	return nil
}
