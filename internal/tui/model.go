// Package tui is the interactive terminal front end: a Bubble Tea model that
// drives a virtualized table and paints its frames.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rshade/vtable/internal/dataset"
	"github.com/rshade/vtable/internal/layout"
	"github.com/rshade/vtable/internal/logging"
	"github.com/rshade/vtable/internal/render"
	"github.com/rshade/vtable/internal/table"
	"github.com/rshade/vtable/internal/viewport"
)

// Layout defaults for the terminal.
const (
	defaultWidth  = 80
	defaultHeight = 24

	headerHeight = 1
	statusHeight = 1

	// wheelRows is the number of rows scrolled per wheel notch.
	wheelRows = 3

	// wheelCols is the number of cells scrolled per horizontal wheel notch.
	wheelCols = 4
)

// ViewState is the current screen.
type ViewState int

const (
	// ViewStateList shows the table.
	ViewStateList ViewState = iota
	// ViewStateFilter shows the table with the filter prompt focused.
	ViewStateFilter
	// ViewStateDetail shows every field of the selected row.
	ViewStateDetail
	// ViewStateQuitting is entered on quit.
	ViewStateQuitting
)

func (s ViewState) String() string {
	switch s {
	case ViewStateList:
		return "list"
	case ViewStateFilter:
		return "filter"
	case ViewStateDetail:
		return "detail"
	case ViewStateQuitting:
		return "quitting"
	default:
		return "unknown"
	}
}

// flushMsg applies a pending width one frame after a resize.
type flushMsg struct{}

// Options configures a Model.
type Options struct {
	Columns []layout.Column
	RowKey  layout.RowKey

	// RowHeight is the height of every row in lines (default 1).
	RowHeight int

	// Overscan is passed to the table; nil uses the table default.
	Overscan *int

	// ScrollbarSize is the scrollbar thickness in cells (default 1).
	ScrollbarSize int

	Theme render.Theme
	Title string

	// Width and Height are used until the first WindowSizeMsg.
	Width  int
	Height int

	Logger *zerolog.Logger
}

// Model is the Bubble Tea model for the table viewer.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type Model struct {
	ctx context.Context

	// Data
	table *table.Table
	all   []layout.Record // every loaded row (source of truth)
	rows  []layout.Record // rows after the quick filter

	// Interactive components
	keys      keyMap
	help      help.Model
	textInput textinput.Model

	// Display configuration
	theme     render.Theme
	title     string
	rowHeight int
	width     int
	height    int

	state       ViewState
	selected    int
	selectedKey string
	column      int
	query       string
	prevQuery   string

	logger zerolog.Logger
}

// NewModel creates the viewer for rows.
func NewModel(ctx context.Context, rows []layout.Record, opts Options) Model {
	if opts.RowHeight <= 0 {
		opts.RowHeight = 1
	}
	if opts.ScrollbarSize <= 0 {
		opts.ScrollbarSize = 1
	}
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	if opts.Theme.Name == "" {
		opts.Theme = render.DarkTheme()
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = logging.ComponentLogger(*opts.Logger, "tui")
	}

	m := Model{
		ctx:       ctx,
		all:       rows,
		rows:      rows,
		keys:      defaultKeyMap(),
		help:      help.New(),
		textInput: newTextInput(),
		theme:     opts.Theme,
		title:     opts.Title,
		rowHeight: opts.RowHeight,
		width:     opts.Width,
		height:    opts.Height,
		logger:    logger,
	}
	m.help.Width = opts.Width

	m.table = table.New(table.Props{
		Columns:       opts.Columns,
		DataSource:    rows,
		RowKey:        opts.RowKey,
		Scroll:        table.Scroll{X: opts.Width, Y: m.tableHeight()},
		RowHeight:     opts.RowHeight,
		Overscan:      opts.Overscan,
		ScrollbarSize: table.Int(opts.ScrollbarSize),
		Logger:        opts.Logger,
	})
	if len(rows) > 0 {
		m.selectedKey = m.table.RowKey(0)
	}
	return m
}

func newTextInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "search all fields"
	ti.Prompt = "/"
	ti.CharLimit = 256
	return ti
}

// Init initializes the model (Bubble Tea interface).
func (m Model) Init() tea.Cmd {
	if m.title != "" {
		return tea.SetWindowTitle(m.title)
	}
	return nil
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case flushMsg:
		if m.table.FlushWidth() {
			m.table.ScrollToRow(m.selected)
		}
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	switch m.state {
	case ViewStateFilter:
		return m.handleFilterInput(msg)
	case ViewStateDetail:
		return m.handleDetailUpdate(msg)
	case ViewStateList:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			return m.handleListKeypress(keyMsg)
		}
		return m, nil
	case ViewStateQuitting:
		return m, nil
	default:
		return m, nil
	}
}

// handleResize applies the height at once and defers the width by one frame
// so a burst of resize events causes a single relayout.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.table.SetHeight(m.tableHeight())
	m.table.ScrollToRow(m.selected)

	if !m.table.ObserveWidth(msg.Width) {
		return m, nil
	}
	return m, tea.Tick(viewport.FrameInterval, func(time.Time) tea.Msg {
		return flushMsg{}
	})
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || m.state == ViewStateDetail {
		return m, nil
	}
	//nolint:exhaustive // Only wheel buttons scroll.
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.table.ScrollBy(-wheelRows*m.rowHeight, 0)
	case tea.MouseButtonWheelDown:
		m.table.ScrollBy(wheelRows*m.rowHeight, 0)
	case tea.MouseButtonWheelLeft:
		m.table.ScrollBy(0, -wheelCols)
	case tea.MouseButtonWheelRight:
		m.table.ScrollBy(0, wheelCols)
	}
	return m, nil
}

func (m Model) handleListKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.state = ViewStateQuitting
		m.table.Coordinator().LogStats()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveSelection(-m.pageRows())
	case key.Matches(msg, m.keys.PageDown):
		m.moveSelection(m.pageRows())
	case key.Matches(msg, m.keys.Top):
		m.moveSelection(-m.table.Len())
	case key.Matches(msg, m.keys.Bottom):
		m.moveSelection(m.table.Len())
	case key.Matches(msg, m.keys.Left):
		m.moveColumn(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveColumn(1)
	case key.Matches(msg, m.keys.Detail):
		if m.table.Row(m.selected) != nil {
			m.state = ViewStateDetail
		}
	case key.Matches(msg, m.keys.Filter):
		m.state = ViewStateFilter
		m.prevQuery = m.query
		m.textInput.SetValue(m.query)
		m.textInput.CursorEnd()
		m.table.SetHeight(m.tableHeight())
		return m, m.textInput.Focus()
	case key.Matches(msg, m.keys.Clear):
		if m.query != "" {
			m.textInput.SetValue("")
			m.applyFilter("")
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.table.SetHeight(m.tableHeight())
		m.table.ScrollToRow(m.selected)
	}
	return m, nil
}

// handleFilterInput filters as the user types. Enter keeps the filter, esc
// restores the one in effect when the prompt opened.
func (m Model) handleFilterInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.closeFilter()
			return m, nil
		case "esc":
			m.closeFilter()
			m.textInput.SetValue(m.prevQuery)
			if m.query != m.prevQuery {
				m.applyFilter(m.prevQuery)
			}
			return m, nil
		case "ctrl+c":
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	if v := m.textInput.Value(); v != m.query {
		m.applyFilter(v)
	}
	return m, cmd
}

func (m *Model) closeFilter() {
	m.state = ViewStateList
	m.textInput.Blur()
	m.table.SetHeight(m.tableHeight())
	m.table.ScrollToRow(m.selected)
}

func (m Model) handleDetailUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Quit):
			m.state = ViewStateQuitting
			return m, tea.Quit
		case keyMsg.String() == "esc", keyMsg.String() == "enter":
			m.state = ViewStateList
		}
	}
	return m, nil
}

// applyFilter swaps the table data for the rows matching query and keeps the
// selection on the same row key when it survives.
func (m *Model) applyFilter(query string) {
	m.query = query
	rows := m.all
	if query != "" {
		f, err := dataset.NewFilter(dataset.Criteria{Query: query})
		if err == nil {
			rows = f.Apply(m.all)
		}
	}
	m.rows = rows
	m.table.SetData(rows)

	m.selected = 0
	if i, ok := m.table.IndexOf(m.selectedKey); ok {
		m.selected = i
	}
	if m.table.Len() > 0 {
		m.selectedKey = m.table.RowKey(m.selected)
	}
	m.table.ScrollToRow(m.selected)

	m.logger.Debug().
		Ctx(m.ctx).
		Str("query", query).
		Int("matches", len(rows)).
		Int("total", len(m.all)).
		Msg("filter applied")
}

func (m *Model) moveSelection(delta int) {
	n := m.table.Len()
	if n == 0 {
		return
	}
	m.selected = min(max(m.selected+delta, 0), n-1)
	m.selectedKey = m.table.RowKey(m.selected)
	m.table.ScrollToRow(m.selected)
}

// moveColumn scrolls so column i starts just right of the left pinned strip.
func (m *Model) moveColumn(delta int) {
	g := m.table.Grid()
	if g.ColumnCount() == 0 {
		return
	}
	m.column = min(max(m.column+delta, 0), g.ColumnCount()-1)
	left := g.ColumnOffset(m.column) - m.table.Model().Left.Width
	m.table.ScrollTo(g.Offset().Top, max(left, 0))
}

func (m Model) pageRows() int {
	return max(1, m.table.Grid().BodyHeight()/m.rowHeight)
}

// tableHeight is the height left for the table below the header and above
// the footer, scrollbar included.
func (m Model) tableHeight() int {
	footer := statusHeight + m.helpHeight()
	return max(m.height-headerHeight-footer, 1)
}

func (m Model) helpHeight() int {
	if m.help.ShowAll {
		most := 0
		for _, col := range m.keys.FullHelp() {
			most = max(most, len(col))
		}
		return most
	}
	return 1
}

// State returns the current screen.
func (m Model) State() ViewState {
	return m.state
}

// Selected returns the selected row index and key.
func (m Model) Selected() (int, string) {
	return m.selected, m.selectedKey
}

// Query returns the active quick filter.
func (m Model) Query() string {
	return m.query
}

// Table returns the underlying table.
func (m Model) Table() *table.Table {
	return m.table
}
