// Package grid implements the main body virtualizer: it windows rows and
// columns of the scrollable body and owns the native scroll position.
package grid

import (
	"github.com/rshade/vtable/internal/layout"
	"github.com/rshade/vtable/internal/sizing"
	"github.com/rshade/vtable/internal/viewport"
)

// DefaultOverscan is the number of extra items rendered on each edge.
const DefaultOverscan = 1

// Config holds the construction parameters of a Grid.
type Config struct {
	// Widths are the resolved column widths, in column order.
	Widths []int

	// RowCount is the number of rows in the dataset.
	RowCount int

	// RowHeight is the uniform row height. Ignored when RowHeightFunc is set.
	RowHeight int

	// RowHeightFunc returns per-row heights.
	RowHeightFunc sizing.SizeFunc

	// Width and Height are the viewport size. A non-positive Height renders
	// every row.
	Width  int
	Height int

	// ScrollbarSize is the thickness reserved for each scrollbar.
	ScrollbarSize int

	// Overscan is the number of extra rows and columns on each edge.
	Overscan int
}

// ScrollEvent is emitted after the grid commits a new scroll position.
type ScrollEvent struct {
	Prev   viewport.ScrollOffset
	Offset viewport.ScrollOffset
}

// Listener receives scroll events synchronously.
type Listener func(ScrollEvent)

// Window is the set of rows and columns rendered for the current scroll
// position, overscan included.
type Window struct {
	Rows viewport.Range
	Cols viewport.Range
}

// Cell is a positioned body cell. X and Y are relative to the viewport origin.
type Cell struct {
	Row    int
	Col    int
	X      int
	Y      int
	Width  int
	Height int
}

// Grid windows the scrollable body.
type Grid struct {
	rows *sizing.Axis
	cols *sizing.Axis

	// widths are the resolved widths; the axis applies the last-column reduction.
	widths []int

	width     int
	height    int
	scrollbar int
	overscan  int

	scroll    viewport.ScrollOffset
	listeners []Listener
	emitting  bool
}

// New creates a grid from cfg.
func New(cfg Config) *Grid {
	g := &Grid{
		width:     cfg.Width,
		height:    cfg.Height,
		scrollbar: max(cfg.ScrollbarSize, 0),
		overscan:  cfg.Overscan,
	}
	if g.overscan < 0 {
		g.overscan = 0
	}
	g.widths = append([]int(nil), cfg.Widths...)
	g.cols = sizing.New(len(g.widths), g.columnWidth)

	if cfg.RowHeightFunc != nil {
		g.rows = sizing.New(cfg.RowCount, cfg.RowHeightFunc)
	} else {
		g.rows = sizing.NewFixed(cfg.RowCount, cfg.RowHeight)
	}
	return g
}

// columnWidth is the effective width of column i. The last column gives up
// the scrollbar thickness plus one unit so the body never overflows the track.
func (g *Grid) columnWidth(i int) int {
	if i < 0 || i >= len(g.widths) {
		return 0
	}
	w := g.widths[i]
	if i == len(g.widths)-1 {
		w -= g.scrollbar + 1
	}
	return max(w, 0)
}

func (g *Grid) effectiveWidths() []int {
	out := make([]int, len(g.widths))
	for i := range g.widths {
		out[i] = g.columnWidth(i)
	}
	return out
}

// Subscribe registers l for scroll events.
func (g *Grid) Subscribe(l Listener) {
	g.listeners = append(g.listeners, l)
}

// SetWidths replaces the resolved column widths and returns the first column
// whose effective width changed, or -1. Callers must invalidate the column
// axis from that index with ResetAfterColumn.
func (g *Grid) SetWidths(widths []int) int {
	prev := g.effectiveWidths()
	g.widths = append(g.widths[:0], widths...)
	g.cols.SetCount(len(g.widths))
	return layout.FirstChanged(prev, g.effectiveWidths())
}

// SetViewport updates the viewport size.
func (g *Grid) SetViewport(width, height int) {
	g.width = width
	g.height = height
}

// SetRowCount changes the number of rows.
func (g *Grid) SetRowCount(n int) {
	g.rows.SetCount(n)
}

// SetRowHeight switches to a uniform row height.
func (g *Grid) SetRowHeight(h int) {
	g.rows.SetFixed(h)
}

// SetRowHeightFunc switches to per-row heights.
func (g *Grid) SetRowHeightFunc(fn sizing.SizeFunc) {
	g.rows.SetSizeFunc(fn)
}

// ResetAfterRow drops cached row offsets from index on.
func (g *Grid) ResetAfterRow(index int) {
	g.rows.ResetAfter(index)
}

// ResetAfterColumn drops cached column offsets from index on.
func (g *Grid) ResetAfterColumn(index int) {
	g.cols.ResetAfter(index)
}

// RowCount returns the number of rows.
func (g *Grid) RowCount() int {
	return g.rows.Count()
}

// ColumnCount returns the number of columns.
func (g *Grid) ColumnCount() int {
	return g.cols.Count()
}

// Width returns the viewport width.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the viewport height.
func (g *Grid) Height() int {
	return g.height
}

// ScrollbarSize returns the reserved scrollbar thickness.
func (g *Grid) ScrollbarSize() int {
	return g.scrollbar
}

// Overscan returns the number of extra items rendered per edge.
func (g *Grid) Overscan() int {
	return g.overscan
}

// Bounded reports whether the viewport has a usable height.
func (g *Grid) Bounded() bool {
	return g.height > 0
}

// BodyHeight is the height available to rows: the viewport height minus the
// horizontal scrollbar. An unbounded grid is as tall as its content.
func (g *Grid) BodyHeight() int {
	if !g.Bounded() {
		return g.rows.Total()
	}
	return max(g.height-g.scrollbar, 0)
}

// BodyWidth is the width available to columns: the viewport width minus the
// vertical scrollbar.
func (g *Grid) BodyWidth() int {
	return max(g.width-g.scrollbar, 0)
}

// TotalHeight returns the content height.
func (g *Grid) TotalHeight() int {
	return g.rows.Total()
}

// TotalWidth returns the content width.
func (g *Grid) TotalWidth() int {
	return g.cols.Total()
}

// RowOffset returns the content offset of row i.
func (g *Grid) RowOffset(i int) int {
	return g.rows.Offset(i)
}

// RowHeight returns the height of row i.
func (g *Grid) RowHeight(i int) int {
	return g.rows.Size(i)
}

// RowAt returns the row covering content offset y.
func (g *Grid) RowAt(y int) int {
	return g.rows.IndexAt(y)
}

// ColumnOffset returns the content offset of column i.
func (g *Grid) ColumnOffset(i int) int {
	return g.cols.Offset(i)
}

// ColumnWidth returns the effective width of column i.
func (g *Grid) ColumnWidth(i int) int {
	return g.cols.Size(i)
}

// ColumnAt returns the column covering content offset x.
func (g *Grid) ColumnAt(x int) int {
	return g.cols.IndexAt(x)
}

// MaxScroll returns the largest valid scroll position.
func (g *Grid) MaxScroll() viewport.ScrollOffset {
	return viewport.ScrollOffset{
		Top:  max(g.TotalHeight()-g.BodyHeight(), 0),
		Left: max(g.TotalWidth()-g.BodyWidth(), 0),
	}
}

// Offset returns the committed scroll position.
func (g *Grid) Offset() viewport.ScrollOffset {
	return g.scroll
}

func (g *Grid) clamp(off viewport.ScrollOffset) viewport.ScrollOffset {
	limit := g.MaxScroll()
	off.Top = min(max(off.Top, 0), limit.Top)
	off.Left = min(max(off.Left, 0), limit.Left)
	return off
}

// Scroll moves to (top, left), clamped to the content, and notifies every
// listener before returning. It reports whether the position changed. Calls
// made while listeners run are ignored.
func (g *Grid) Scroll(top, left int) bool {
	if g.emitting {
		return false
	}
	next := g.clamp(viewport.ScrollOffset{Top: top, Left: left})
	if next == g.scroll {
		return false
	}
	ev := ScrollEvent{Prev: g.scroll, Offset: next}
	g.scroll = next

	g.emitting = true
	defer func() { g.emitting = false }()
	for _, l := range g.listeners {
		l(ev)
	}
	return true
}

// ScrollBy moves by (dy, dx).
func (g *Grid) ScrollBy(dy, dx int) bool {
	return g.Scroll(g.scroll.Top+dy, g.scroll.Left+dx)
}

// Clamp re-applies the scroll bounds after the content or viewport changed.
func (g *Grid) Clamp() bool {
	return g.Scroll(g.scroll.Top, g.scroll.Left)
}

// EnsureRowVisible scrolls the least amount needed to show row i in full.
func (g *Grid) EnsureRowVisible(i int) bool {
	if i < 0 || i >= g.rows.Count() || !g.Bounded() {
		return false
	}
	top := g.scroll.Top
	start, end := g.rows.Offset(i), g.rows.End(i)
	body := g.BodyHeight()
	switch {
	case start < top:
		top = start
	case end > top+body:
		top = end - body
	default:
		return false
	}
	return g.Scroll(top, g.scroll.Left)
}

// Window returns the rows and columns intersecting the body, widened by
// overscan.
func (g *Grid) Window() Window {
	return Window{Rows: g.RowWindow(), Cols: g.ColumnWindow()}
}

// RowWindow returns the rendered row range.
func (g *Grid) RowWindow() viewport.Range {
	from, to := g.rows.Window(g.scroll.Top, g.BodyHeight(), g.overscan)
	return viewport.Range{From: from, To: to}
}

// ColumnWindow returns the rendered column range.
func (g *Grid) ColumnWindow() viewport.Range {
	from, to := g.cols.Window(g.scroll.Left, g.BodyWidth(), g.overscan)
	return viewport.Range{From: from, To: to}
}

// Cells returns every cell of the window positioned relative to the scroll
// position, row-major.
func (g *Grid) Cells() []Cell {
	w := g.Window()
	cells := make([]Cell, 0, w.Rows.Len()*w.Cols.Len())
	for r := w.Rows.From; r < w.Rows.To; r++ {
		y := g.rows.Offset(r) - g.scroll.Top
		h := g.rows.Size(r)
		for c := w.Cols.From; c < w.Cols.To; c++ {
			cells = append(cells, Cell{
				Row:    r,
				Col:    c,
				X:      g.cols.Offset(c) - g.scroll.Left,
				Y:      y,
				Width:  g.cols.Size(c),
				Height: h,
			})
		}
	}
	return cells
}
