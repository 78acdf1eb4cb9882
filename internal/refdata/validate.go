package refdata

import (
	"fmt"

	"github.com/rshade/offsetcalc/internal/habitat"
)

// Severity grades a validation issue.
type Severity string

// Issue severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one finding from Validate.
type Issue struct {
	Severity Severity `json:"severity"`
	Table    string   `json:"table"`
	Category string   `json:"habitat"`
	Subtype  string   `json:"subtype,omitempty"`
	Message  string   `json:"message"`
}

// String formats the issue for console output.
func (i Issue) String() string {
	if i.Subtype == "" {
		return fmt.Sprintf("[%s] %s/%s: %s", i.Severity, i.Table, i.Category, i.Message)
	}
	return fmt.Sprintf("[%s] %s/%s/%s: %s", i.Severity, i.Table, i.Category, i.Subtype, i.Message)
}

// Validate checks the tables against the transition rules.
//
// Errors: a distinctiveness row is missing a time-to-target value for a
// condition label, or a score falls outside 0-8.
// Warnings: a category has distinctiveness rows but no carbon rows (it can
// never be enumerated), or a category is absent from the transition table
// (it can be a target only if another rule names it, and cannot be a
// before habitat).
func Validate(t *Tables, rules habitat.TransitionRules) []Issue {
	var issues []Issue

	for _, row := range t.distinct {
		if row.Score < 0 || row.Score > 8 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Table:    habitat.TableDistinctiveness,
				Category: string(row.Category),
				Subtype:  row.Subtype,
				Message:  fmt.Sprintf("distinctiveness score %d outside 0-8", row.Score),
			})
		}
		for _, label := range habitat.ConditionLabels() {
			if _, ok := row.TimeToTarget[label]; !ok {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Table:    habitat.TableTimeToTarget,
					Category: string(row.Category),
					Subtype:  row.Subtype,
					Message:  fmt.Sprintf("no time-to-target value for condition %q", label),
				})
			}
		}
	}

	for _, c := range t.Categories() {
		if len(t.byCategory[c]) == 0 {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Table:    habitat.TableCarbon,
				Category: string(c),
				Message:  "no carbon rows; category never appears as an option",
			})
		}
		if _, ok := rules[c]; !ok {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Table:    "transition_rules",
				Category: string(c),
				Message:  "category has no transition rule and cannot be a before habitat",
			})
		}
	}

	return issues
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}
