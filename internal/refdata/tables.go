// Package refdata provides the reference tables behind the habitat
// calculator and the loaders that populate them.
//
// Tables is an immutable, in-memory implementation of
// habitat.ReferenceData. It can be built directly, loaded from the CSV
// exports of the biodiversity metric, from a versioned YAML bundle, from a
// SQLite database, or taken from the dataset embedded in the binary.
package refdata

import (
	"fmt"
	"maps"
	"slices"

	"github.com/rshade/offsetcalc/internal/habitat"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Loader errors.
var (
	// ErrDuplicateRow indicates two rows share the same (habitat, subtype) key.
	ErrDuplicateRow = constError("duplicate reference row")

	// ErrMissingColumn indicates a required CSV column is absent.
	ErrMissingColumn = constError("missing reference column")

	// ErrMalformedValue indicates a cell that cannot be parsed.
	ErrMalformedValue = constError("malformed reference value")

	// ErrUnsupportedSchema indicates a bundle schema version this build cannot read.
	ErrUnsupportedSchema = constError("unsupported reference bundle schema")

	// ErrUnknownSource indicates an unrecognised reference data source name.
	ErrUnknownSource = constError("unknown reference data source")
)

type rowKey struct {
	category habitat.Category
	subtype  string
}

// Tables holds the carbon and distinctiveness tables in their original row
// order. A Tables value is never modified after NewTables returns, and every
// accessor returns copies.
type Tables struct {
	carbon      []habitat.CarbonRow
	distinct    []habitat.DistinctivenessRow
	carbonIdx   map[rowKey]int
	distinctIdx map[rowKey]int
	byCategory  map[habitat.Category][]int
}

var _ habitat.ReferenceData = (*Tables)(nil)

// NewTables indexes the given rows. Duplicate (habitat, subtype) keys within
// a table return ErrDuplicateRow.
func NewTables(carbon []habitat.CarbonRow, distinct []habitat.DistinctivenessRow) (*Tables, error) {
	t := &Tables{
		carbon:      make([]habitat.CarbonRow, 0, len(carbon)),
		distinct:    make([]habitat.DistinctivenessRow, 0, len(distinct)),
		carbonIdx:   make(map[rowKey]int, len(carbon)),
		distinctIdx: make(map[rowKey]int, len(distinct)),
		byCategory:  make(map[habitat.Category][]int),
	}

	for i, row := range carbon {
		k := rowKey{row.Category, row.Subtype}
		if _, dup := t.carbonIdx[k]; dup {
			return nil, fmt.Errorf("%w: carbon row %d (%s, %s)", ErrDuplicateRow, i+1, row.Category, row.Subtype)
		}
		t.carbonIdx[k] = len(t.carbon)
		t.byCategory[row.Category] = append(t.byCategory[row.Category], len(t.carbon))
		t.carbon = append(t.carbon, row)
	}

	for i, row := range distinct {
		k := rowKey{row.Category, row.Subtype}
		if _, dup := t.distinctIdx[k]; dup {
			return nil, fmt.Errorf("%w: distinctiveness row %d (%s, %s)",
				ErrDuplicateRow, i+1, row.Category, row.Subtype)
		}
		t.distinctIdx[k] = len(t.distinct)
		t.distinct = append(t.distinct, cloneDistinct(row))
	}

	return t, nil
}

// Carbon implements habitat.ReferenceData.
func (t *Tables) Carbon(category habitat.Category, subtype string) (habitat.CarbonRow, error) {
	i, ok := t.carbonIdx[rowKey{category, subtype}]
	if !ok {
		return habitat.CarbonRow{}, &habitat.LookupError{
			Table:    habitat.TableCarbon,
			Category: category,
			Subtype:  subtype,
		}
	}
	return t.carbon[i], nil
}

// Distinctiveness implements habitat.ReferenceData.
func (t *Tables) Distinctiveness(category habitat.Category, subtype string) (habitat.DistinctivenessRow, error) {
	i, ok := t.distinctIdx[rowKey{category, subtype}]
	if !ok {
		return habitat.DistinctivenessRow{}, &habitat.LookupError{
			Table:    habitat.TableDistinctiveness,
			Category: category,
			Subtype:  subtype,
		}
	}
	return cloneDistinct(t.distinct[i]), nil
}

// DistinctivenessRows implements habitat.ReferenceData.
func (t *Tables) DistinctivenessRows() []habitat.DistinctivenessRow {
	rows := make([]habitat.DistinctivenessRow, len(t.distinct))
	for i, row := range t.distinct {
		rows[i] = cloneDistinct(row)
	}
	return rows
}

// CarbonRows implements habitat.ReferenceData.
func (t *Tables) CarbonRows(category habitat.Category) []habitat.CarbonRow {
	idx := t.byCategory[category]
	rows := make([]habitat.CarbonRow, len(idx))
	for i, j := range idx {
		rows[i] = t.carbon[j]
	}
	return rows
}

// AllCarbonRows returns the whole carbon table in order.
func (t *Tables) AllCarbonRows() []habitat.CarbonRow {
	return slices.Clone(t.carbon)
}

// Categories returns the categories present in either table, in first-seen order.
func (t *Tables) Categories() []habitat.Category {
	var out []habitat.Category
	seen := make(map[habitat.Category]bool)
	add := func(c habitat.Category) {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, row := range t.distinct {
		add(row.Category)
	}
	for _, row := range t.carbon {
		add(row.Category)
	}
	return out
}

// Len returns the number of carbon and distinctiveness rows.
func (t *Tables) Len() (carbon, distinct int) {
	return len(t.carbon), len(t.distinct)
}

func cloneDistinct(row habitat.DistinctivenessRow) habitat.DistinctivenessRow {
	row.TimeToTarget = maps.Clone(row.TimeToTarget)
	return row
}
