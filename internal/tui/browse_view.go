package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/offsetcalc/internal/greenops"
	"github.com/rshade/offsetcalc/internal/report"
)

// View renders the current view (Bubble Tea interface).
func (m BrowseModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateDetail:
		return m.renderDetailView()
	case ViewStateList:
		return m.renderListView()
	default:
		return ""
	}
}

func (m BrowseModel) renderListView() string {
	sections := []string{
		HeaderStyle.Render("Before: " + m.rep.Before.Name()),
		m.table.View(),
		m.renderStatusBar(),
	}
	if m.showFilter {
		sections = append(sections, LabelStyle.Render("Filter: ")+m.textInput.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStatusBar displays the current sort and filter status.
func (m BrowseModel) renderStatusBar() string {
	filterStatus := ""
	if m.textInput.Value() != "" {
		filterStatus = fmt.Sprintf(" | Filtered: %d/%d", len(m.rows), len(m.allRows))
	}
	status := fmt.Sprintf("Sort: %s %s%s | 's' sort, 'o' order, '/' filter, 'enter' detail, 'q' quit",
		m.sortBy, m.sortOrder, filterStatus)
	return SubtleStyle.Render(status)
}

func (m BrowseModel) renderDetailView() string {
	row, ok := m.Selected()
	if !ok {
		return "No option selected."
	}

	var content strings.Builder
	content.WriteString(HeaderStyle.Render("OPTION " + strconv.Itoa(row.Position+1)))
	content.WriteString("\n\n")
	writeField(&content, "Habitat:         ", ValueStyle.Render(string(row.Category)))
	writeField(&content, "Carbon subtype:  ", ValueStyle.Render(row.CarbonSubtype))
	writeField(&content, "Distinct subtype:", ValueStyle.Render(row.DistinctSubtype))
	writeField(&content, "Condition:       ", ValueStyle.Render(string(row.Condition)))
	content.WriteString("\n")
	writeField(&content, "Biodiversity:    ",
		signedStyle(row.BiodiversityChange).Render(greenops.FormatSigned(row.BiodiversityChange, 2)+" units"))
	writeField(&content, "Carbon:          ",
		signedStyle(row.CarbonChange).Render(greenops.FormatSigned(row.CarbonChange, 2)+" tCO2e"))

	if eq := greenops.ForCarbonDelta(row.CarbonChange); !eq.IsEmpty {
		content.WriteString(SubtleStyle.Render(eq.DisplayText))
		content.WriteString("\n")
	}

	content.WriteString(SubtleStyle.Render("\nPress ESC to return"))
	return BoxStyle.Width(m.width - borderPadding).Render(content.String())
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString(LabelStyle.Render(label))
	b.WriteString(" ")
	b.WriteString(value)
	b.WriteString("\n")
}

// RenderSummary renders a boxed summary of a report: the before habitat,
// how many options were found, the best option by each metric and a carbon
// equivalency for the best carbon option. width sets the box width.
func RenderSummary(rep report.Report, width int) string {
	if len(rep.Rows) == 0 {
		return InfoStyle.Render("No allowed options for " + rep.Before.Name() + ".")
	}
	s := report.Summarize(rep.Rows)

	var content strings.Builder
	content.WriteString(HeaderStyle.Render("OFFSET SUMMARY"))
	content.WriteString("\n")
	writeField(&content, "Before:          ", ValueStyle.Render(rep.Before.Name()))
	writeField(&content, "Options:         ", ValueStyle.Render(strconv.Itoa(s.Options))+
		LabelStyle.Render("    Net gain on both: ")+ValueStyle.Render(strconv.Itoa(s.NetGainOptions)))
	if b := s.BestBiodiversity; b != nil {
		writeBest(&content, "Best biodiversity:", *b, b.BiodiversityChange, "units", width)
	}
	if c := s.BestCarbon; c != nil {
		writeBest(&content, "Best carbon:     ", *c, c.CarbonChange, "tCO2e", width)
	}
	if s.CarbonEquivalency != "" {
		content.WriteString(SubtleStyle.Render(s.CarbonEquivalency))
	}

	return BoxStyle.Width(width - borderPadding).Render(strings.TrimRight(content.String(), "\n"))
}

// writeBest writes the option name truncated to the box width, then its
// signed value on a line of its own so the figure is never wrapped.
func writeBest(b *strings.Builder, label string, r report.Row, v float64, unit string, width int) {
	nameWidth := max(width-borderPadding-boxPaddingX-len(label)-1, minNameWidth)
	name := truncate(fmt.Sprintf("#%d %s (%s)", r.Position+1, r.Name, r.Condition), nameWidth)
	writeField(b, label, ValueStyle.Render(name))
	writeField(b, strings.Repeat(" ", len(label)), signedStyle(v).Render(greenops.FormatSigned(v, 2)+" "+unit))
}
