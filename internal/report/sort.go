package report

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortField names a sortable row attribute.
type SortField string

// Sort fields.
const (
	SortByOrder        SortField = "order"
	SortByBiodiversity SortField = "biodiversity"
	SortByCarbon       SortField = "carbon"
	SortByName         SortField = "name"
	SortByCategory     SortField = "category"
)

// Sort orders.
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// Sentinel errors for sort and filter arguments.
var (
	ErrInvalidSortField = constError("invalid sort field")
	ErrInvalidSortOrder = constError("sort order must be 'asc' or 'desc'")
	ErrInvalidLimit     = constError("limit must be >= 0")
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// SortFields returns the accepted sort fields.
func SortFields() []SortField {
	return []SortField{SortByOrder, SortByBiodiversity, SortByCarbon, SortByName, SortByCategory}
}

// ParseSortField validates a sort field name case-insensitively.
func ParseSortField(s string) (SortField, error) {
	f := SortField(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortFields(), f) {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (valid: %v)", ErrInvalidSortField, s, SortFields())
}

// ParseSortOrder validates a sort order. Empty selects ascending.
func ParseSortOrder(s string) (string, error) {
	switch o := strings.ToLower(strings.TrimSpace(s)); o {
	case "":
		return SortOrderAsc, nil
	case SortOrderAsc, SortOrderDesc:
		return o, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSortOrder, s)
	}
}

// Sort returns a sorted copy of rows. The sort is stable and falls back to
// enumeration position so equal keys keep their original relative order in
// both directions.
func Sort(rows []Row, field SortField, order string) []Row {
	sorted := slices.Clone(rows)
	desc := order == SortOrderDesc

	slices.SortStableFunc(sorted, func(a, b Row) int {
		var c int
		switch field {
		case SortByBiodiversity:
			c = cmp.Compare(a.BiodiversityChange, b.BiodiversityChange)
		case SortByCarbon:
			c = cmp.Compare(a.CarbonChange, b.CarbonChange)
		case SortByName:
			c = cmp.Compare(a.Name, b.Name)
		case SortByCategory:
			c = cmp.Compare(a.Category, b.Category)
		case SortByOrder:
			c = cmp.Compare(a.Position, b.Position)
		}
		if desc {
			c = -c
		}
		if c == 0 {
			c = cmp.Compare(a.Position, b.Position)
		}
		return c
	})
	return sorted
}

// FilterCategories keeps rows whose category matches one of categories,
// case-insensitively. No categories keeps everything.
func FilterCategories(rows []Row, categories []string) []Row {
	if len(categories) == 0 {
		return rows
	}
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		for _, c := range categories {
			if strings.EqualFold(strings.TrimSpace(c), string(r.Category)) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// FilterText keeps rows whose name or condition contains query, ignoring case.
func FilterText(rows []Row, query string) []Row {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return rows
	}
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Name), query) ||
			strings.Contains(strings.ToLower(string(r.Condition)), query) {
			out = append(out, r)
		}
	}
	return out
}

// Limit truncates rows to n. Zero means no limit.
func Limit(rows []Row, n int) ([]Row, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, n)
	}
	if n == 0 || n >= len(rows) {
		return rows, nil
	}
	return rows[:n], nil
}
