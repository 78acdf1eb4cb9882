package tui

import (
	"slices"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/offsetcalc/internal/greenops"
	"github.com/rshade/offsetcalc/internal/report"
)

// BrowseModel is the Bubble Tea model for the interactive option browser.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type BrowseModel struct {
	state   ViewState
	rep     report.Report
	allRows []report.Row // enumeration order, never re-sorted
	rows    []report.Row // filtered and sorted

	table     table.Model
	textInput textinput.Model
	selected  int

	width      int
	height     int
	sortBy     report.SortField
	sortOrder  string
	showFilter bool
}

// NewBrowseModel returns a browser over the report's rows. An empty sort
// field keeps enumeration order.
func NewBrowseModel(rep report.Report, sortBy report.SortField, order string) BrowseModel {
	if sortBy == "" {
		sortBy = report.SortByOrder
	}
	if order == "" {
		order = report.SortOrderAsc
	}
	m := BrowseModel{
		state:     ViewStateList,
		rep:       rep,
		allRows:   rep.Rows,
		rows:      rep.Rows,
		width:     defaultWidth,
		height:    defaultHeight,
		sortBy:    sortBy,
		sortOrder: order,
		textInput: newTextInput(),
	}
	m.refreshTable()
	return m
}

func newTextInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "habitat or condition"
	ti.CharLimit = 64
	return ti
}

// Init initializes the model (Bubble Tea interface).
func (m BrowseModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if winMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = winMsg.Width
		m.height = winMsg.Height
		m.rebuildTable()
		return m, nil
	}

	if m.showFilter {
		return m.handleFilterInput(msg)
	}

	switch m.state {
	case ViewStateList:
		return m.handleListUpdate(msg)
	case ViewStateDetail:
		return m.handleDetailUpdate(msg)
	default:
		return m, nil
	}
}

func (m BrowseModel) handleFilterInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter, keyEsc:
			m.showFilter = false
			m.textInput.Blur()
			m.applyFilter(m.textInput.Value())
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m BrowseModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyEnter:
		m.selected = m.table.Cursor()
		if m.selected >= 0 && m.selected < len(m.rows) {
			m.state = ViewStateDetail
		}
		return m, nil
	case keySlash:
		m.showFilter = true
		m.textInput.Focus()
		return m, textinput.Blink
	case keyS:
		m.cycleSort()
		return m, nil
	case keyO:
		m.toggleOrder()
		return m, nil
	case keyEsc:
		if m.textInput.Value() != "" {
			m.textInput.SetValue("")
			m.applyFilter("")
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(keyMsg)
		return m, cmd
	}
}

func (m BrowseModel) handleDetailUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case keyEsc:
			m.state = ViewStateList
			m.table.Focus()
			return m, nil
		}
	}
	return m, nil
}

// cycleSort advances to the next sort field.
func (m *BrowseModel) cycleSort() {
	fields := report.SortFields()
	i := slices.Index(fields, m.sortBy)
	m.sortBy = fields[(i+1)%len(fields)]
	m.refreshTable()
}

func (m *BrowseModel) toggleOrder() {
	if m.sortOrder == report.SortOrderDesc {
		m.sortOrder = report.SortOrderAsc
	} else {
		m.sortOrder = report.SortOrderDesc
	}
	m.refreshTable()
}

// applyFilter narrows allRows to those matching filterText and re-sorts.
func (m *BrowseModel) applyFilter(filterText string) {
	m.rows = report.FilterText(m.allRows, filterText)
	m.refreshTable()
}

// refreshTable re-sorts and rebuilds the table.
func (m *BrowseModel) refreshTable() {
	m.rows = report.Sort(m.rows, m.sortBy, m.sortOrder)
	m.rebuildTable()
}

func (m *BrowseModel) rebuildTable() {
	m.table = m.buildTable()
}

func (m *BrowseModel) buildTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},               //nolint:mnd // Column width.
		{Title: "Option", Width: 48},         //nolint:mnd // Column width.
		{Title: "Condition", Width: 16},      //nolint:mnd // Column width.
		{Title: "Biodiversity", Width: 13},   //nolint:mnd // Column width.
		{Title: "Carbon (tCO2e)", Width: 15}, //nolint:mnd // Column width.
	}

	rows := make([]table.Row, len(m.rows))
	for i, r := range m.rows {
		rows[i] = table.Row{
			strconv.Itoa(r.Position + 1),
			truncate(r.Name, columns[1].Width),
			string(r.Condition),
			greenops.FormatSigned(r.BiodiversityChange, 2),
			greenops.FormatSigned(r.CarbonChange, 2),
		}
	}

	availableHeight := m.height - statusHeight - 1
	if availableHeight < minHeight {
		availableHeight = minHeight
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(availableHeight),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)

	return t
}

// Rows returns the rows currently shown, in display order.
func (m BrowseModel) Rows() []report.Row {
	return m.rows
}

// Selected returns the row under the detail view, if any.
func (m BrowseModel) Selected() (report.Row, bool) {
	if m.state != ViewStateDetail || m.selected < 0 || m.selected >= len(m.rows) {
		return report.Row{}, false
	}
	return m.rows[m.selected], true
}

func truncate(s string, width int) string {
	const suffix = "..."
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-len(suffix)]) + suffix
}
