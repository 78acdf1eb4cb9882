package habitat

import "strings"

// Condition is a categorical habitat condition label.
type Condition string

// Condition labels in enumeration order.
const (
	ConditionGood           Condition = "Good"
	ConditionFairlyGood     Condition = "Fairly Good"
	ConditionModerate       Condition = "Moderate"
	ConditionFairlyPoor     Condition = "Fairly Poor"
	ConditionPoor           Condition = "Poor"
	ConditionNAAgricultural Condition = "N/A Agricultural"
	ConditionNAOther        Condition = "N/A Other"
)

// conditionScale maps labels to numeric condition scores.
//
//nolint:gochecknoglobals // Read-only lookup table.
var conditionScale = map[Condition]float64{
	ConditionGood:           3,
	ConditionFairlyGood:     2.5,
	ConditionModerate:       2,
	ConditionFairlyPoor:     1.5,
	ConditionPoor:           1,
	ConditionNAAgricultural: 1,
	ConditionNAOther:        0,
}

// ConditionLabels returns every condition label in the fixed enumeration order.
func ConditionLabels() []Condition {
	return []Condition{
		ConditionGood,
		ConditionFairlyGood,
		ConditionModerate,
		ConditionFairlyPoor,
		ConditionPoor,
		ConditionNAAgricultural,
		ConditionNAOther,
	}
}

// ConditionScore resolves a label to its numeric score.
// Unknown labels return a *LookupError.
func ConditionScore(label Condition) (float64, error) {
	v, ok := conditionScale[label]
	if !ok {
		return 0, &LookupError{Table: TableConditionScale, Condition: label}
	}
	return v, nil
}

// ParseCondition matches a label case-insensitively against the known labels.
func ParseCondition(s string) (Condition, bool) {
	s = strings.TrimSpace(s)
	for _, label := range ConditionLabels() {
		if strings.EqualFold(string(label), s) {
			return label, true
		}
	}
	return Condition(s), false
}
