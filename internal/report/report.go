// Package report turns enumerated habitat options into rows, orders and
// filters them, and renders them as tables, JSON, NDJSON or CSV.
package report

import (
	"math"

	"github.com/rshade/offsetcalc/internal/greenops"
	"github.com/rshade/offsetcalc/internal/habitat"
)

// Row is one option as presented to the user.
type Row struct {
	// Position is the option's index in enumeration order.
	Position           int               `json:"position"`
	Name               string            `json:"habitat_name"`
	Category           habitat.Category  `json:"habitat"`
	DistinctSubtype    string            `json:"distinct_subtype"`
	CarbonSubtype      string            `json:"carbon_subtype"`
	Condition          habitat.Condition `json:"condition"`
	BiodiversityChange float64           `json:"biodiversity_change"`
	CarbonChange       float64           `json:"carbon_change"`
}

// NewRow converts an enumerated option.
func NewRow(position int, opt habitat.Option) Row {
	return Row{
		Position:           position,
		Name:               opt.Name(),
		Category:           opt.Record.Category,
		DistinctSubtype:    opt.Record.DistinctSubtype,
		CarbonSubtype:      opt.Record.CarbonSubtype,
		Condition:          opt.Record.ConditionLabel,
		BiodiversityChange: opt.Delta.Biodiversity,
		CarbonChange:       opt.Delta.Carbon,
	}
}

// RowsFromOptions converts options, keeping their order.
func RowsFromOptions(opts []habitat.Option) []Row {
	rows := make([]Row, len(opts))
	for i, opt := range opts {
		rows[i] = NewRow(i, opt)
	}
	return rows
}

// Report is everything rendered for one before habitat.
type Report struct {
	Before habitat.Record `json:"habitat_before"`
	Years  float64        `json:"years"`
	Rows   []Row          `json:"options"`
	Stats  habitat.Stats  `json:"stats"`
}

// New builds a Report from an enumeration result.
func New(res habitat.Result, years float64) Report {
	return Report{
		Before: res.Before,
		Years:  years,
		Rows:   RowsFromOptions(res.Options),
		Stats:  res.Stats,
	}
}

// Summary condenses a set of rows.
type Summary struct {
	Options int `json:"options"`

	// BestBiodiversity and BestCarbon are nil when there are no rows.
	BestBiodiversity *Row `json:"best_biodiversity,omitempty"`
	BestCarbon       *Row `json:"best_carbon,omitempty"`

	// NetGainOptions counts rows that improve both metrics.
	NetGainOptions int `json:"net_gain_options"`

	// CarbonEquivalency describes the best carbon row's delta.
	CarbonEquivalency string `json:"carbon_equivalency,omitempty"`
}

// Summarize picks the best rows by each metric. Ties keep the earlier row.
func Summarize(rows []Row) Summary {
	s := Summary{Options: len(rows)}
	bestBio, bestCarbon := math.Inf(-1), math.Inf(-1)
	for i := range rows {
		r := &rows[i]
		if r.BiodiversityChange > bestBio {
			bestBio = r.BiodiversityChange
			s.BestBiodiversity = r
		}
		if r.CarbonChange > bestCarbon {
			bestCarbon = r.CarbonChange
			s.BestCarbon = r
		}
		if r.BiodiversityChange > 0 && r.CarbonChange > 0 {
			s.NetGainOptions++
		}
	}
	if s.BestCarbon != nil {
		if eq := greenops.ForCarbonDelta(s.BestCarbon.CarbonChange); !eq.IsEmpty {
			s.CarbonEquivalency = eq.DisplayText
		}
	}
	return s
}

// Evaluation is the result of evaluating one explicit conversion.
type Evaluation struct {
	Before  habitat.Record  `json:"habitat_before"`
	After   *habitat.Record `json:"habitat_after,omitempty"`
	Allowed bool            `json:"allowed"`
	Reason  string          `json:"disallow_reason,omitempty"`
	Delta   *habitat.Delta  `json:"delta,omitempty"`

	CarbonEquivalency string `json:"carbon_equivalency,omitempty"`
}

// NewEvaluation builds an Evaluation from an outcome and its delta.
func NewEvaluation(before habitat.Record, outcome habitat.Outcome, delta habitat.Delta) Evaluation {
	ev := Evaluation{Before: before, Allowed: outcome.Allowed()}
	after, ok := outcome.Record()
	if !ok {
		ev.Reason = outcome.Reason().String()
		return ev
	}
	ev.After = &after
	ev.Delta = &delta
	if eq := greenops.ForCarbonDelta(delta.Carbon); !eq.IsEmpty {
		ev.CarbonEquivalency = eq.DisplayText
	}
	return ev
}
