// Package overlay implements the pinned column strips drawn over the left and
// right edges of the body. A strip windows rows only and never scrolls on its
// own: its vertical position is pushed in with SetScrollTop.
package overlay

import (
	"github.com/rshade/vtable/internal/layout"
	"github.com/rshade/vtable/internal/sizing"
	"github.com/rshade/vtable/internal/viewport"
)

// Config holds the construction parameters of an Overlay.
type Config struct {
	// Group is the pin group rendered by the strip.
	Group layout.PinGroup

	// RowCount is the number of rows in the dataset.
	RowCount int

	// RowHeight is the uniform row height. Ignored when RowHeightFunc is set.
	RowHeight int

	// RowHeightFunc returns per-row heights.
	RowHeightFunc sizing.SizeFunc

	// Width and Height are the size of the viewport the strip is anchored in.
	Width  int
	Height int

	// ScrollbarSize is the scrollbar thickness kept clear of the strip.
	ScrollbarSize int

	// Overscan is the number of extra rows on each edge.
	Overscan int
}

// Cell is one pinned cell. X and Y are relative to the strip origin; Col is
// the index of the column in the full column list.
type Cell struct {
	Row    int
	Col    int
	X      int
	Y      int
	Width  int
	Height int
}

// Overlay windows the rows of one pin group.
type Overlay struct {
	// group holds the pinned columns with their grid indices
	group layout.PinGroup

	// rows is the strip's own row axis
	rows *sizing.Axis

	// top is the last scroll position pushed by the coordinator
	top int

	// visibleFrom is the first rendered row (inclusive, overscan included)
	visibleFrom int

	// visibleTo is the last rendered row (exclusive, overscan included)
	visibleTo int

	width     int
	height    int
	scrollbar int

	// bufferSize is the number of extra rows rendered above/below the strip
	bufferSize int

	// syncs counts SetScrollTop calls
	syncs int
}

// New creates an overlay for cfg.Group.
func New(cfg Config) *Overlay {
	o := &Overlay{
		group:      cfg.Group,
		width:      cfg.Width,
		height:     cfg.Height,
		scrollbar:  max(cfg.ScrollbarSize, 0),
		bufferSize: max(cfg.Overscan, 0),
	}
	if cfg.RowHeightFunc != nil {
		o.rows = sizing.New(cfg.RowCount, cfg.RowHeightFunc)
	} else {
		o.rows = sizing.NewFixed(cfg.RowCount, cfg.RowHeight)
	}
	o.updateVisibleRange()
	return o
}

// Side returns the edge the strip is anchored to.
func (o *Overlay) Side() layout.PinSide {
	return o.group.Side
}

// Group returns the pinned columns.
func (o *Overlay) Group() layout.PinGroup {
	return o.group
}

// Mounted reports whether the strip has anything to render.
func (o *Overlay) Mounted() bool {
	return o.group.Len() > 0
}

// SetGroup replaces the pinned columns.
func (o *Overlay) SetGroup(g layout.PinGroup) {
	o.group = g
}

// SetViewport updates the size of the viewport the strip is anchored in.
func (o *Overlay) SetViewport(width, height int) {
	o.width = width
	o.height = height
	o.updateVisibleRange()
}

// SetRowCount changes the number of rows.
func (o *Overlay) SetRowCount(n int) {
	o.rows.SetCount(n)
	o.updateVisibleRange()
}

// SetRowHeight switches to a uniform row height.
func (o *Overlay) SetRowHeight(h int) {
	o.rows.SetFixed(h)
	o.updateVisibleRange()
}

// SetRowHeightFunc switches to per-row heights.
func (o *Overlay) SetRowHeightFunc(fn sizing.SizeFunc) {
	o.rows.SetSizeFunc(fn)
	o.updateVisibleRange()
}

// ResetAfterRow drops cached row offsets from index on.
func (o *Overlay) ResetAfterRow(index int) {
	o.rows.ResetAfter(index)
	o.updateVisibleRange()
}

// SetScrollTop applies the vertical position committed by the body.
func (o *Overlay) SetScrollTop(top int) {
	o.top = top
	o.syncs++
	o.updateVisibleRange()
}

// ScrollTop returns the last applied vertical position.
func (o *Overlay) ScrollTop() int {
	return o.top
}

// Syncs returns how many positions have been pushed in.
func (o *Overlay) Syncs() int {
	return o.syncs
}

// bodyHeight mirrors the body: viewport height minus the horizontal
// scrollbar, or the full content when the height is unknown.
func (o *Overlay) bodyHeight() int {
	if o.height <= 0 {
		return o.rows.Total()
	}
	return max(o.height-o.scrollbar, 0)
}

// updateVisibleRange recomputes the rendered rows for the current position.
func (o *Overlay) updateVisibleRange() {
	o.visibleFrom, o.visibleTo = o.rows.Window(o.top, o.bodyHeight(), o.bufferSize)
}

// Window returns the rendered row range.
func (o *Overlay) Window() viewport.Range {
	return viewport.Range{From: o.visibleFrom, To: o.visibleTo}
}

// VisibleFrom returns the first rendered row (inclusive).
func (o *Overlay) VisibleFrom() int {
	return o.visibleFrom
}

// VisibleTo returns the last rendered row (exclusive).
func (o *Overlay) VisibleTo() int {
	return o.visibleTo
}

// Strip returns the strip rectangle relative to the viewport origin. The
// right strip stays clear of the vertical scrollbar and both strips stay
// clear of the horizontal one.
func (o *Overlay) Strip() viewport.Rect {
	r := viewport.Rect{Width: o.group.Width, Height: o.bodyHeight()}
	if o.group.Side == layout.PinRight {
		r.X = o.width - o.scrollbar - o.group.Width
	}
	return r
}

// Cells returns every pinned cell of the window, row-major, positioned
// relative to the strip.
func (o *Overlay) Cells() []Cell {
	if !o.Mounted() {
		return nil
	}
	cells := make([]Cell, 0, (o.visibleTo-o.visibleFrom)*o.group.Len())
	for r := o.visibleFrom; r < o.visibleTo; r++ {
		y := o.rows.Offset(r) - o.top
		h := o.rows.Size(r)
		x := 0
		for i, col := range o.group.Columns {
			cells = append(cells, Cell{
				Row:    r,
				Col:    o.group.Indices[i],
				X:      x,
				Y:      y,
				Width:  col.Width,
				Height: h,
			})
			x += col.Width
		}
	}
	return cells
}
