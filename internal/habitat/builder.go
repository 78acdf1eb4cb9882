package habitat

import (
	"errors"
	"fmt"
)

// Outcome is the result of building a post-intervention record. It is either
// Allowed, carrying the record, or Disallowed, carrying the reason.
// Lookup failures are reported as errors, never as an Outcome.
type Outcome struct {
	record  Record
	reason  DisallowReason
	allowed bool
}

// Allowed wraps a constructed record.
func Allowed(r Record) Outcome {
	return Outcome{record: r, allowed: true}
}

// Disallowed reports an excluded conversion.
func Disallowed(reason DisallowReason) Outcome {
	return Outcome{reason: reason}
}

// Allowed reports whether the outcome carries a record.
func (o Outcome) Allowed() bool {
	return o.allowed
}

// Record returns the constructed record and true for allowed outcomes.
func (o Outcome) Record() (Record, bool) {
	return o.record, o.allowed
}

// Reason returns why the conversion was excluded, or ReasonNone.
func (o Outcome) Reason() DisallowReason {
	return o.reason
}

// BeforeParams are the raw inputs for a pre-intervention record.
type BeforeParams struct {
	Category          Category
	DistinctSubtype   string
	CarbonSubtype     string
	Size              float64
	Condition         float64
	StrategicLocation float64
}

// AfterParams select a post-intervention habitat.
type AfterParams struct {
	Size            float64
	Category        Category
	DistinctSubtype string
	CarbonSubtype   string
	Condition       Condition
}

// Builder assembles records from raw inputs and reference data.
type Builder struct {
	ref         ReferenceData
	rules       TransitionRules
	offSiteRisk float64
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithTransitionRules replaces the default transition table.
func WithTransitionRules(rules TransitionRules) BuilderOption {
	return func(b *Builder) {
		b.rules = rules
	}
}

// WithOffSiteRisk overrides DefaultOffSiteRisk for created habitat.
func WithOffSiteRisk(risk float64) BuilderOption {
	return func(b *Builder) {
		b.offSiteRisk = risk
	}
}

// NewBuilder returns a Builder over ref using the default transition rules.
func NewBuilder(ref ReferenceData, opts ...BuilderOption) *Builder {
	b := &Builder{
		ref:         ref,
		rules:       DefaultTransitionRules(),
		offSiteRisk: DefaultOffSiteRisk,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ReferenceData returns the lookup tables the builder reads.
func (b *Builder) ReferenceData() ReferenceData {
	return b.ref
}

// Rules returns the transition table the builder validates against.
func (b *Builder) Rules() TransitionRules {
	return b.rules
}

// Before builds a pre-intervention record. Missing reference rows return a
// *LookupError; size, condition or strategic location outside their allowed
// sets return ErrInvalidRecord.
func (b *Builder) Before(p BeforeParams) (Record, error) {
	if p.Size <= 0 {
		return Record{}, fmt.Errorf("%w: size must be > 0, got %g", ErrInvalidRecord, p.Size)
	}
	if !isConditionScore(p.Condition) {
		return Record{}, fmt.Errorf("%w: condition %g is not a recognised score", ErrInvalidRecord, p.Condition)
	}
	if !isStrategicLocation(p.StrategicLocation) {
		return Record{}, fmt.Errorf("%w: strategic location %g is not one of %v",
			ErrInvalidRecord, p.StrategicLocation, StrategicLocations())
	}

	distinct, err := b.ref.Distinctiveness(p.Category, p.DistinctSubtype)
	if err != nil {
		return Record{}, err
	}
	carbon, err := b.ref.Carbon(p.Category, p.CarbonSubtype)
	if err != nil {
		return Record{}, err
	}

	return Record{
		Category:          p.Category,
		DistinctSubtype:   p.DistinctSubtype,
		CarbonSubtype:     p.CarbonSubtype,
		Size:              p.Size,
		Storage:           carbon.StoredTonnesC,
		Flux:              carbon.FluxTonnesCO2e,
		Distinctiveness:   distinct.Score,
		Condition:         p.Condition,
		StrategicLocation: p.StrategicLocation,
		Connectivity:      ConnectivityFor(distinct.Score),
	}, nil
}

// After builds the post-intervention record for converting before into the
// selected habitat.
//
// The result is Disallowed when the time-to-target value for the chosen
// condition is NotPermittedSentinel, or when the transition validator
// rejects the pair. A size <= 0 returns ErrInvalidRecord, unknown labels or
// missing rows return a *LookupError and an unknown before category returns
// ErrUnknownCategory.
func (b *Builder) After(before Record, p AfterParams) (Outcome, error) {
	if p.Size <= 0 {
		return Outcome{}, fmt.Errorf("%w: size must be > 0, got %g", ErrInvalidRecord, p.Size)
	}
	condition, err := ConditionScore(p.Condition)
	if err != nil {
		return Outcome{}, err
	}

	carbon, err := b.ref.Carbon(p.Category, p.CarbonSubtype)
	if err != nil {
		return Outcome{}, err
	}
	distinct, err := b.ref.Distinctiveness(p.Category, p.DistinctSubtype)
	if err != nil {
		return Outcome{}, err
	}
	timeToTarget, ok := distinct.TimeToTarget[p.Condition]
	if !ok {
		return Outcome{}, &LookupError{
			Table:     TableTimeToTarget,
			Category:  p.Category,
			Subtype:   p.DistinctSubtype,
			Condition: p.Condition,
		}
	}
	if timeToTarget == NotPermittedSentinel {
		return Disallowed(ReasonNotPermitted), nil
	}

	after := Record{
		Category:          p.Category,
		DistinctSubtype:   p.DistinctSubtype,
		CarbonSubtype:     p.CarbonSubtype,
		Size:              p.Size,
		Storage:           carbon.StoredTonnesC,
		Flux:              carbon.FluxTonnesCO2e,
		Distinctiveness:   distinct.Score,
		Condition:         condition,
		ConditionLabel:    p.Condition,
		StrategicLocation: before.StrategicLocation,
		Connectivity:      ConnectivityFor(distinct.Score),
		PostIntervention:  true,
		Difficulty:        distinct.Difficulty,
		TimeToTarget:      timeToTarget,
		OffSiteRisk:       b.offSiteRisk,
	}

	reason, err := b.rules.Check(before, after)
	if err != nil {
		return Outcome{}, err
	}
	if reason != ReasonNone {
		return Disallowed(reason), nil
	}
	return Allowed(after), nil
}

// IsFatal reports whether err should stop an enumeration rather than skip a
// single candidate.
func IsFatal(err error) bool {
	return err != nil && !errors.Is(err, ErrLookup)
}
