package table

import (
	"github.com/rs/zerolog"

	"github.com/rshade/vtable/internal/cell"
	"github.com/rshade/vtable/internal/layout"
)

// Defaults applied by New when the corresponding Props field is unset.
const (
	DefaultRowHeight      = 30
	DefaultScrollbarSize  = 12
	DefaultContainerWidth = 1920
	DefaultOverscan       = 1
)

// Int returns a pointer to v, for the optional integer fields of Props.
func Int(v int) *int {
	return &v
}

// Scroll carries the scroll configuration of the host table.
type Scroll struct {
	// X is the initial container width used until a width is measured.
	X int

	// Y is the viewport height. It is required for virtualization; without it
	// every row is rendered.
	Y int
}

// RowHeightFunc returns the height of a row.
type RowHeightFunc func(row layout.Record, index int) int

// Props is the public configuration of a Table.
type Props struct {
	Columns    []layout.Column
	DataSource []layout.Record
	RowKey     layout.RowKey
	Scroll     Scroll

	// RowHeight is the uniform row height (default 30).
	RowHeight int

	// RowHeightFunc overrides RowHeight with per-row heights.
	RowHeightFunc RowHeightFunc

	// EditableKeys lists the row keys rendered through EditRenderer.
	EditableKeys []string

	// EditFormRef receives the internal form state.
	EditFormRef *cell.FormRef

	EditRenderer cell.EditRenderer

	// Overscan is the number of extra rows and columns per edge. Nil means
	// DefaultOverscan; an explicit 0 renders only the visible items.
	Overscan *int

	// ScrollbarSize is the reserved scrollbar thickness. Nil means
	// DefaultScrollbarSize; an explicit 0 reserves nothing.
	ScrollbarSize *int

	// Logger receives configuration warnings and debug events. Nil disables logging.
	Logger *zerolog.Logger
}

func (p Props) withDefaults() Props {
	if p.RowHeight <= 0 {
		p.RowHeight = DefaultRowHeight
	}
	if p.Scroll.X <= 0 {
		p.Scroll.X = DefaultContainerWidth
	}
	return p
}

func (p Props) overscan() int {
	if p.Overscan == nil {
		return DefaultOverscan
	}
	return max(*p.Overscan, 0)
}

func (p Props) scrollbarSize() int {
	if p.ScrollbarSize == nil {
		return DefaultScrollbarSize
	}
	return max(*p.ScrollbarSize, 0)
}
