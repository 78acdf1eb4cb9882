package habitat

import (
	"fmt"
	"slices"
)

// DisallowReason explains why a conversion was excluded.
type DisallowReason int

const (
	// ReasonNone means the conversion is allowed.
	ReasonNone DisallowReason = iota

	// ReasonNotPermitted means the reference data marks the creation
	// pathway with the 999 sentinel.
	ReasonNotPermitted

	// ReasonCategoryTransition means the target category is not reachable
	// from the source category.
	ReasonCategoryTransition

	// ReasonConditionJump means condition would improve by more than one tier.
	ReasonConditionJump
)

// String returns a short identifier for the reason.
func (r DisallowReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonNotPermitted:
		return "not_permitted"
	case ReasonCategoryTransition:
		return "category_transition"
	case ReasonConditionJump:
		return "condition_jump"
	default:
		return fmt.Sprintf("DisallowReason(%d)", r)
	}
}

// MarshalText encodes the reason by name so it can key JSON objects.
func (r DisallowReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// TransitionRules maps a source category to the categories it may become.
type TransitionRules map[Category][]Category

// DefaultTransitionRules returns the built-in rule table. Farmland, Woodland,
// Semi-natural grasslands and Heathlands convert freely among each other;
// Peatland may only remain Peatland.
func DefaultTransitionRules() TransitionRules {
	open := []Category{
		CategoryFarmland,
		CategoryWoodland,
		CategorySemiNaturalGrasslands,
		CategoryHeathlands,
	}
	return TransitionRules{
		CategoryFarmland:              slices.Clone(open),
		CategoryWoodland:              slices.Clone(open),
		CategorySemiNaturalGrasslands: slices.Clone(open),
		CategoryPeatland:              {CategoryPeatland},
		CategoryHeathlands:            slices.Clone(open),
	}
}

// Targets returns the categories reachable from c.
func (t TransitionRules) Targets(c Category) ([]Category, error) {
	targets, ok := t[c]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	return slices.Clone(targets), nil
}

// Check returns ReasonNone when before may become after, or the reason it
// may not. An unknown before category returns ErrUnknownCategory.
func (t TransitionRules) Check(before, after Record) (DisallowReason, error) {
	targets, ok := t[before.Category]
	if !ok {
		return ReasonNone, fmt.Errorf("%w: %q", ErrUnknownCategory, before.Category)
	}
	if !slices.Contains(targets, after.Category) {
		return ReasonCategoryTransition, nil
	}
	if after.Condition-before.Condition > MaxConditionImprovement {
		return ReasonConditionJump, nil
	}
	return ReasonNone, nil
}

// Allowed reports whether before may become after.
func (t TransitionRules) Allowed(before, after Record) (bool, error) {
	reason, err := t.Check(before, after)
	if err != nil {
		return false, err
	}
	return reason == ReasonNone, nil
}
