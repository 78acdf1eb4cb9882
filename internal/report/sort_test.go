package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func positions(rows []Row) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Position
	}
	return out
}

func TestSort(t *testing.T) {
	tests := []struct {
		name  string
		field SortField
		order string
		want  []int
	}{
		{"order asc", SortByOrder, SortOrderAsc, []int{0, 1, 2, 3}},
		{"order desc", SortByOrder, SortOrderDesc, []int{3, 2, 1, 0}},
		{"biodiversity asc", SortByBiodiversity, SortOrderAsc, []int{1, 0, 2, 3}},
		{"biodiversity desc keeps ties in order", SortByBiodiversity, SortOrderDesc, []int{2, 3, 0, 1}},
		{"carbon desc", SortByCarbon, SortOrderDesc, []int{1, 2, 3, 0}},
		{"name asc", SortByName, SortOrderAsc, []int{0, 3, 1, 2}},
		{"category asc", SortByCategory, SortOrderAsc, []int{0, 3, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := sampleRows()
			got := Sort(rows, tt.field, tt.order)
			assert.Equal(t, tt.want, positions(got))
			assert.Equal(t, []int{0, 1, 2, 3}, positions(rows), "input must not be modified")
		})
	}
}

func TestParseSortField(t *testing.T) {
	f, err := ParseSortField(" Carbon ")
	require.NoError(t, err)
	assert.Equal(t, SortByCarbon, f)

	_, err = ParseSortField("savings")
	assert.ErrorIs(t, err, ErrInvalidSortField)
}

func TestParseSortOrder(t *testing.T) {
	for in, want := range map[string]string{"": SortOrderAsc, "ASC": SortOrderAsc, "desc": SortOrderDesc} {
		got, err := ParseSortOrder(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseSortOrder("up")
	assert.ErrorIs(t, err, ErrInvalidSortOrder)
}

func TestFilterCategories(t *testing.T) {
	rows := sampleRows()

	assert.Equal(t, rows, FilterCategories(rows, nil))
	assert.Equal(t, []int{1, 2}, positions(FilterCategories(rows, []string{"woodland"})))
	assert.Equal(t, []int{0, 3}, positions(FilterCategories(rows, []string{"Heathlands", " Farmland"})))
	assert.Empty(t, FilterCategories(rows, []string{"Peatland"}))
}

func TestFilterText(t *testing.T) {
	rows := sampleRows()

	assert.Equal(t, rows, FilterText(rows, "  "))
	assert.Equal(t, []int{1, 2}, positions(FilterText(rows, "deciduous")))
	assert.Equal(t, []int{2}, positions(FilterText(rows, "moderate")))
}

func TestLimit(t *testing.T) {
	rows := sampleRows()

	got, err := Limit(rows, 0)
	require.NoError(t, err)
	assert.Len(t, got, 4)

	got, err = Limit(rows, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, positions(got))

	got, err = Limit(rows, 10)
	require.NoError(t, err)
	assert.Len(t, got, 4)

	_, err = Limit(rows, -1)
	assert.ErrorIs(t, err, ErrInvalidLimit)
}
