// Package table is the host-facing adapter: it takes Props, wires the layout
// model, measurer, cell resolver, body grid, pinned strips and scroll
// coordinator together, and produces frames.
package table

import (
	"github.com/rs/zerolog"

	"github.com/rshade/vtable/internal/cell"
	"github.com/rshade/vtable/internal/grid"
	"github.com/rshade/vtable/internal/layout"
	"github.com/rshade/vtable/internal/overlay"
	"github.com/rshade/vtable/internal/scrollsync"
	"github.com/rshade/vtable/internal/sizing"
	"github.com/rshade/vtable/internal/viewport"
)

// header follows the body horizontally.
type header struct {
	left int
}

func (h *header) SetScrollLeft(left int) {
	h.left = left
}

// Table is one mounted virtual table.
type Table struct {
	props  Props
	logger zerolog.Logger

	columns []layout.Column
	data    []layout.Record
	model   layout.Model
	height  int

	keyIndex map[string]int

	heightWarning *layout.Warning

	measurer *viewport.Measurer
	resolver *cell.Resolver
	grid     *grid.Grid
	left     *overlay.Overlay
	right    *overlay.Overlay
	header   *header
	sync     *scrollsync.Coordinator
}

// New mounts a table for props.
func New(props Props) *Table {
	props = props.withDefaults()
	t := &Table{
		props:   props,
		logger:  zerolog.Nop(),
		columns: props.Columns,
		data:    props.DataSource,
		height:  props.Scroll.Y,
		header:  &header{},
	}
	if props.Logger != nil {
		t.logger = props.Logger.With().Str("component", "table").Logger()
	}

	width := props.Scroll.X
	t.model = layout.Build(t.columns, width, props.scrollbarSize())
	t.logWarnings(t.model.Warnings)
	t.checkHeight()

	opts := []cell.Option{cell.WithEditableKeys(props.EditableKeys)}
	if props.EditRenderer != nil {
		opts = append(opts, cell.WithEditRenderer(props.EditRenderer))
	}
	t.resolver = cell.NewResolver(props.RowKey, opts...)
	if props.EditFormRef != nil {
		props.EditFormRef.Form = t.resolver.Form()
	}

	t.grid = grid.New(grid.Config{
		Widths:        t.model.Widths(),
		RowCount:      len(t.data),
		RowHeight:     props.RowHeight,
		RowHeightFunc: t.rowHeightFunc(),
		Width:         width,
		Height:        t.height,
		ScrollbarSize: props.scrollbarSize(),
		Overscan:      props.overscan(),
	})
	t.left = t.newOverlay(t.model.Left, width)
	t.right = t.newOverlay(t.model.Right, width)
	t.sync = scrollsync.New(t.grid, t.header, t.logger, t.left, t.right)

	t.measurer = viewport.NewMeasurer(width, t.relayout)
	return t
}

func (t *Table) newOverlay(group layout.PinGroup, width int) *overlay.Overlay {
	return overlay.New(overlay.Config{
		Group:         group,
		RowCount:      len(t.data),
		RowHeight:     t.props.RowHeight,
		RowHeightFunc: t.rowHeightFunc(),
		Width:         width,
		Height:        t.height,
		ScrollbarSize: t.props.scrollbarSize(),
		Overscan:      t.props.overscan(),
	})
}

func (t *Table) rowHeightFunc() sizing.SizeFunc {
	if t.props.RowHeightFunc == nil {
		return nil
	}
	fn := t.props.RowHeightFunc
	return func(i int) int {
		if i < 0 || i >= len(t.data) {
			return 0
		}
		return fn(t.data[i], i)
	}
}

func (t *Table) logWarnings(warnings []layout.Warning) {
	for _, w := range warnings {
		t.logger.Warn().Str("code", w.Code).Str("column", w.Column).Msg(w.Message)
	}
}

func (t *Table) checkHeight() {
	t.heightWarning = layout.CheckHeight(t.height)
	if t.heightWarning != nil {
		t.logWarnings([]layout.Warning{*t.heightWarning})
	}
}

// relayout applies a new container width measured by the measurer.
func (t *Table) relayout(prev, next int) {
	k := t.applyLayout(next)
	t.logger.Debug().
		Int("prev_width", prev).
		Int("width", next).
		Int("first_changed", k).
		Msg("relayout applied")
}

// applyLayout rebuilds the layout model for width and pushes it to every
// surface. It returns the first column whose width changed.
func (t *Table) applyLayout(width int) int {
	t.model = layout.Build(t.columns, width, t.props.scrollbarSize())
	k := t.grid.SetWidths(t.model.Widths())
	t.grid.SetViewport(width, t.height)
	for _, o := range []*overlay.Overlay{t.left, t.right} {
		o.SetViewport(width, t.height)
	}
	t.left.SetGroup(t.model.Left)
	t.right.SetGroup(t.model.Right)

	t.sync.InvalidateColumns(k)
	t.grid.Clamp()
	t.sync.Resync()
	return k
}

// ObserveWidth reports a measured container width. It returns true when the
// caller should schedule FlushWidth after one frame.
func (t *Table) ObserveWidth(width int) bool {
	return t.measurer.Observe(width)
}

// FlushWidth applies the pending container width, if any.
func (t *Table) FlushWidth() bool {
	return t.measurer.Flush()
}

// Resize observes and applies width immediately.
func (t *Table) Resize(width int) bool {
	return t.measurer.Apply(width)
}

// SetHeight changes the viewport height.
func (t *Table) SetHeight(height int) {
	if height == t.height {
		return
	}
	t.height = height
	t.checkHeight()
	width := t.measurer.Width()
	t.grid.SetViewport(width, height)
	t.left.SetViewport(width, height)
	t.right.SetViewport(width, height)
	t.grid.Clamp()
	t.sync.Resync()
}

// SetColumns replaces the column configuration.
func (t *Table) SetColumns(cols []layout.Column) {
	t.columns = cols
	t.resolver.Invalidate()
	t.applyLayout(t.measurer.Width())
	t.logWarnings(t.model.Warnings)
}

// SetData replaces the dataset. Row identity follows RowKey, so callers can
// find a previously selected row again with IndexOf.
func (t *Table) SetData(rows []layout.Record) {
	t.data = rows
	t.keyIndex = nil
	t.resolver.Invalidate()

	t.grid.SetRowCount(len(rows))
	t.left.SetRowCount(len(rows))
	t.right.SetRowCount(len(rows))
	t.sync.InvalidateRows(0)
	t.grid.Clamp()
	t.sync.Resync()
}

// SetEditableKeys replaces the rows rendered in edit mode.
func (t *Table) SetEditableKeys(keys []string) {
	t.resolver.SetEditableKeys(keys)
}

// ScrollTo moves the body to (top, left).
func (t *Table) ScrollTo(top, left int) bool {
	return t.grid.Scroll(top, left)
}

// ScrollBy moves the body by (dy, dx).
func (t *Table) ScrollBy(dy, dx int) bool {
	return t.grid.ScrollBy(dy, dx)
}

// ScrollToRow scrolls the least amount needed to show row i.
func (t *Table) ScrollToRow(i int) bool {
	return t.grid.EnsureRowVisible(i)
}

// ScrollToColumn scrolls horizontally so column i starts at the left edge.
func (t *Table) ScrollToColumn(i int) bool {
	i = min(max(i, 0), max(t.grid.ColumnCount()-1, 0))
	return t.grid.Scroll(t.grid.Offset().Top, t.grid.ColumnOffset(i))
}

// Offset returns the committed scroll position.
func (t *Table) Offset() viewport.ScrollOffset {
	return t.sync.Offset()
}

// State returns the engine-owned viewport state.
func (t *Table) State() viewport.State {
	return viewport.State{
		ContainerWidth: t.measurer.Width(),
		Height:         t.height,
		RowHeight:      t.props.RowHeight,
		Scroll:         t.sync.Offset(),
	}
}

// Model returns the resolved layout.
func (t *Table) Model() layout.Model {
	return t.model
}

// Warnings returns every configuration warning currently in effect.
func (t *Table) Warnings() []layout.Warning {
	out := make([]layout.Warning, 0, len(t.model.Warnings)+1)
	if t.heightWarning != nil {
		out = append(out, *t.heightWarning)
	}
	return append(out, t.model.Warnings...)
}

// Grid returns the body virtualizer.
func (t *Table) Grid() *grid.Grid {
	return t.grid
}

// Overlay returns the strip pinned to side, or nil for PinNone.
func (t *Table) Overlay(side layout.PinSide) *overlay.Overlay {
	switch side {
	case layout.PinLeft:
		return t.left
	case layout.PinRight:
		return t.right
	default:
		return nil
	}
}

// Coordinator returns the scroll coordinator.
func (t *Table) Coordinator() *scrollsync.Coordinator {
	return t.sync
}

// Measurer returns the width measurer.
func (t *Table) Measurer() *viewport.Measurer {
	return t.measurer
}

// Resolver returns the cell resolver.
func (t *Table) Resolver() *cell.Resolver {
	return t.resolver
}

// Form returns the edit form state.
func (t *Table) Form() *cell.FormState {
	return t.resolver.Form()
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.data)
}

// Row returns row i, or nil when out of range.
func (t *Table) Row(i int) layout.Record {
	if i < 0 || i >= len(t.data) {
		return nil
	}
	return t.data[i]
}

// RowKey returns the identity of row i.
func (t *Table) RowKey(i int) string {
	return t.resolver.RowKey(t.Row(i), i)
}

// IndexOf returns the index of the row identified by key.
func (t *Table) IndexOf(key string) (int, bool) {
	if t.keyIndex == nil {
		t.keyIndex = make(map[string]int, len(t.data))
		for i, row := range t.data {
			k := t.resolver.RowKey(row, i)
			if _, dup := t.keyIndex[k]; !dup {
				t.keyIndex[k] = i
			}
		}
	}
	i, ok := t.keyIndex[key]
	return i, ok
}
