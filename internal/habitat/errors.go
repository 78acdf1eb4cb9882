package habitat

import (
	"fmt"
	"strings"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors. Compare with errors.Is.
var (
	// ErrLookup matches every *LookupError.
	ErrLookup = constError("reference data lookup failed")

	// ErrUnknownCategory indicates a habitat category missing from the
	// transition table. It points at inconsistent reference data and is
	// fatal to an enumeration.
	ErrUnknownCategory = constError("unknown habitat category")

	// ErrInvalidRecord indicates a record that violates size, condition or
	// strategic location invariants.
	ErrInvalidRecord = constError("invalid habitat record")
)

// Reference tables named in lookup errors.
const (
	TableCarbon          = "carbon"
	TableDistinctiveness = "distinctiveness"
	TableTimeToTarget    = "time_to_target"
	TableConditionScale  = "condition_scale"
)

// LookupError reports a (habitat, subtype) pair or condition label with no
// matching reference row.
type LookupError struct {
	Table     string
	Category  Category
	Subtype   string
	Condition Condition
}

// Error implements error.
func (e *LookupError) Error() string {
	var parts []string
	if e.Category != "" {
		parts = append(parts, fmt.Sprintf("habitat %q", e.Category))
	}
	if e.Subtype != "" {
		parts = append(parts, fmt.Sprintf("subtype %q", e.Subtype))
	}
	if e.Condition != "" {
		parts = append(parts, fmt.Sprintf("condition %q", e.Condition))
	}
	return fmt.Sprintf("%s: no %s row for %s", ErrLookup, e.Table, strings.Join(parts, ", "))
}

// Is reports whether target is ErrLookup.
func (e *LookupError) Is(target error) bool {
	return target == ErrLookup
}
