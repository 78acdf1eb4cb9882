package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rshade/offsetcalc/internal/greenops"
	"github.com/rshade/offsetcalc/internal/habitat"
)

// Format is an output format.
type Format string

// Output formats.
const (
	FormatTable  Format = "table"
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatCSV    Format = "csv"
)

// ErrInvalidFormat indicates an unrecognised output format.
const ErrInvalidFormat = constError("invalid output format")

// tabwriterPadding is the minimum gap between table columns.
const tabwriterPadding = 2

// Formats returns the accepted output formats.
func Formats() []Format {
	return []Format{FormatTable, FormatJSON, FormatNDJSON, FormatCSV}
}

// ParseFormat validates an output format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Formats(), f) {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (valid: %v)", ErrInvalidFormat, s, Formats())
}

// csvHeader names the CSV columns.
//
//nolint:gochecknoglobals // Read-only header row.
var csvHeader = []string{
	"position", "habitat_name", "habitat", "distinct_subtype", "carbon_subtype",
	"condition", "biodiversity_change", "carbon_change",
}

// Render writes rep in the given format.
func Render(w io.Writer, format Format, rep Report) error {
	switch format {
	case FormatTable:
		return RenderTable(w, rep)
	case FormatJSON:
		return RenderJSON(w, rep)
	case FormatNDJSON:
		return RenderNDJSON(w, rep.Rows)
	case FormatCSV:
		return RenderCSV(w, rep.Rows)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
}

// RenderTable writes the before habitat, one line per option and a stats
// footer.
func RenderTable(w io.Writer, rep Report) error {
	if err := renderBefore(w, rep.Before, rep.Years); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	if _, err := fmt.Fprint(tw, "#\tOPTION\tCONDITION\tBIODIVERSITY\tCARBON (tCO2e)\t\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rep.Rows {
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n",
			r.Position+1,
			r.Name,
			r.Condition,
			greenops.FormatSigned(r.BiodiversityChange, 2),
			greenops.FormatSigned(r.CarbonChange, 2),
		); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d options shown, %d emitted of %d considered (%d disallowed, %d lookup errors)\n",
		len(rep.Rows), rep.Stats.Emitted, rep.Stats.Considered, rep.Stats.DisallowedTotal(), rep.Stats.LookupErrors)
	return err
}

func renderBefore(w io.Writer, before habitat.Record, years float64) error {
	_, err := fmt.Fprintf(w, "Before: %s\n  size %s ha, condition %g, biodiversity %s units, carbon %s tCO2e over %g years\n\n",
		before.Name(),
		greenops.FormatFloat(before.Size, 2),
		before.Condition,
		greenops.FormatFloat(before.BiodiversityUnits(), 2),
		greenops.FormatFloat(before.CarbonTonnes(years), 2),
		years,
	)
	return err
}

// jsonOutput is the top-level JSON document.
type jsonOutput struct {
	Report

	Summary Summary `json:"summary"`
}

// RenderJSON writes rep and its summary as one indented JSON object.
func RenderJSON(w io.Writer, rep Report) error {
	if rep.Rows == nil {
		rep.Rows = []Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonOutput{Report: rep, Summary: Summarize(rep.Rows)}); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// RenderNDJSON writes one JSON object per row.
func RenderNDJSON(w io.Writer, rows []Row) error {
	for _, r := range rows {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshaling row: %w", err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("writing NDJSON line: %w", err)
		}
	}
	return nil
}

// RenderCSV writes a header and one record per row.
func RenderCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write([]string{
			strconv.Itoa(r.Position),
			r.Name,
			string(r.Category),
			r.DistinctSubtype,
			r.CarbonSubtype,
			string(r.Condition),
			strconv.FormatFloat(r.BiodiversityChange, 'f', -1, 64),
			strconv.FormatFloat(r.CarbonChange, 'f', -1, 64),
		}); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// RenderEvaluation writes a single evaluation. Table output is a short
// key/value block; every other format is one JSON object.
func RenderEvaluation(w io.Writer, format Format, ev Evaluation) error {
	if format != FormatTable {
		enc := json.NewEncoder(w)
		if format == FormatJSON {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(ev); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	lines := [][2]string{{"Before:", ev.Before.Name()}}
	if ev.Allowed {
		lines = append(lines,
			[2]string{"After:", ev.After.Name()},
			[2]string{"Condition:", string(ev.After.ConditionLabel)},
			[2]string{"Biodiversity change:", greenops.FormatSigned(ev.Delta.Biodiversity, 2) + " units"},
			[2]string{"Carbon change:", greenops.FormatSigned(ev.Delta.Carbon, 2) + " tCO2e"},
		)
		if ev.CarbonEquivalency != "" {
			lines = append(lines, [2]string{"", ev.CarbonEquivalency})
		}
	} else {
		lines = append(lines, [2]string{"Disallowed:", ev.Reason})
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", l[0], l[1]); err != nil {
			return err
		}
	}
	return tw.Flush()
}
