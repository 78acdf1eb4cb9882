package refdata

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/offsetcalc/internal/habitat"
)

func TestEmbedded(t *testing.T) {
	tables, err := Embedded()
	require.NoError(t, err)

	nc, nd := tables.Len()
	assert.Equal(t, 10, nc)
	assert.Equal(t, 11, nd)

	assert.Empty(t, Validate(tables, habitat.DefaultTransitionRules()))

	bog, err := tables.Distinctiveness(habitat.CategoryPeatland, "Blanket bog")
	require.NoError(t, err)
	assert.Equal(t, 8, bog.Score)
	assert.Equal(t, habitat.NotPermittedSentinel, bog.TimeToTarget[habitat.ConditionGood])
}

func TestWriteBundle_RoundTrip(t *testing.T) {
	carbon, distinct := sampleRows()
	tables, err := NewTables(carbon, distinct)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteBundle(&buf, tables, "sample"))
	assert.Contains(t, buf.String(), `schema_version: 1.0.0`)

	got, b, err := LoadBundle(&buf)
	require.NoError(t, err)
	assert.Equal(t, "sample", b.Name)
	assert.Equal(t, tables.AllCarbonRows(), got.AllCarbonRows())
	assert.Equal(t, tables.DistinctivenessRows(), got.DistinctivenessRows())
}

func TestLoadBundle_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		wantMsg string
	}{
		{
			name:    "missing schema version",
			input:   "carbon: []\ndistinctiveness: []\n",
			wantErr: ErrUnsupportedSchema,
		},
		{
			name:    "future major version",
			input:   "schema_version: \"2.0.0\"\ncarbon: []\ndistinctiveness: []\n",
			wantErr: ErrUnsupportedSchema,
		},
		{
			name:    "unparseable version",
			input:   "schema_version: latest\ncarbon: []\ndistinctiveness: []\n",
			wantErr: ErrUnsupportedSchema,
		},
		{
			name:    "unknown field",
			input:   "schema_version: \"1.0.0\"\ncarbon: []\nsoil: []\n",
			wantMsg: "field soil not found",
		},
		{
			name: "duplicate carbon row",
			input: "schema_version: \"1.2.0\"\ncarbon:\n" +
				"  - {habitat: Farmland, subtype: Arable, stored_t_c_ha: 1, flux_t_co2e_ha_yr: 0}\n" +
				"  - {habitat: Farmland, subtype: Arable, stored_t_c_ha: 2, flux_t_co2e_ha_yr: 0}\n",
			wantErr: ErrDuplicateRow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := LoadBundle(strings.NewReader(tt.input))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoadBundleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bundle.yaml")
	require.NoError(t, os.WriteFile(path, embeddedBundle, 0o600))

	tables, b, err := LoadBundleFile(path)
	require.NoError(t, err)
	assert.Equal(t, "illustrative", b.Name)
	nc, _ := tables.Len()
	assert.Equal(t, 10, nc)

	_, _, err = LoadBundleFile(filepath.Join(dir, "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
