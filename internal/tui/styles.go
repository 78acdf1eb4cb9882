// Package tui implements the interactive option browser and the styled
// summary box shown above table output on a terminal.
package tui

import "github.com/charmbracelet/lipgloss"

// Colors.
const (
	colorHeader   = lipgloss.Color("86")
	colorLabel    = lipgloss.Color("245")
	colorValue    = lipgloss.Color("255")
	colorSubtle   = lipgloss.Color("241")
	colorGain     = lipgloss.Color("42")
	colorLoss     = lipgloss.Color("196")
	colorBorder   = lipgloss.Color("63")
	colorSelected = lipgloss.Color("57")
)

// Shared styles.
//
//nolint:gochecknoglobals // Read-only lipgloss styles.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorHeader)
	LabelStyle  = lipgloss.NewStyle().Foreground(colorLabel)
	ValueStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorValue)
	SubtleStyle = lipgloss.NewStyle().Foreground(colorSubtle).Italic(true)
	GainStyle   = lipgloss.NewStyle().Foreground(colorGain)
	LossStyle   = lipgloss.NewStyle().Foreground(colorLoss)
	InfoStyle   = lipgloss.NewStyle().Foreground(colorLabel)
	BoxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorHeader).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(colorBorder)
	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(colorValue).
				Background(colorSelected).
				Bold(true)
)

// Layout.
const (
	defaultWidth  = 100
	defaultHeight = 24
	borderPadding = 2
	statusHeight  = 2
	minHeight     = 5
	boxPaddingX   = 2
	minNameWidth  = 10
)

// Keys.
const (
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
	keyEnter = "enter"
	keyEsc   = "esc"
	keySlash = "/"
	keyS     = "s"
	keyO     = "o"
)

// ViewState is the browser's current screen.
type ViewState int

// View states.
const (
	ViewStateList ViewState = iota
	ViewStateDetail
	ViewStateQuitting
)

// signedStyle picks the gain or loss style for a delta.
func signedStyle(v float64) lipgloss.Style {
	switch {
	case v > 0:
		return GainStyle
	case v < 0:
		return LossStyle
	default:
		return ValueStyle
	}
}
