package refdata

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLite_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "refdata.db")

	tables, err := Embedded()
	require.NoError(t, err)
	require.NoError(t, WriteSQLite(ctx, path, tables))

	got, err := LoadSQLite(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, tables.AllCarbonRows(), got.AllCarbonRows())
	assert.Equal(t, tables.DistinctivenessRows(), got.DistinctivenessRows())
	assert.Equal(t, tables.Categories(), got.Categories())
}

func TestWriteSQLite_Replaces(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "refdata.db")

	full, err := Embedded()
	require.NoError(t, err)
	require.NoError(t, WriteSQLite(ctx, path, full))

	carbon, distinct := sampleRows()
	small, err := NewTables(carbon, distinct)
	require.NoError(t, err)
	require.NoError(t, WriteSQLite(ctx, path, small))

	got, err := LoadSQLite(ctx, path)
	require.NoError(t, err)
	nc, nd := got.Len()
	assert.Equal(t, 3, nc)
	assert.Equal(t, 2, nd)
}

func TestLoadSQLite_MissingFile(t *testing.T) {
	_, err := LoadSQLite(context.Background(), filepath.Join(t.TempDir(), "absent.db"))
	require.Error(t, err)
}
