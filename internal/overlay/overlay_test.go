package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/vtable/internal/grid"
	"github.com/rshade/vtable/internal/layout"
	"github.com/rshade/vtable/internal/viewport"
)

func demoModel() layout.Model {
	return layout.Build([]layout.Column{
		{Key: "spec", Title: "FixedLeft", Width: 120, Pin: layout.PinLeft},
		{Key: "name", Title: "Name", Width: 120},
		{Key: "age", Title: "Age", Width: 80},
		{Key: "action", Title: "Action", Width: 120, Pin: layout.PinRight},
	}, 1920, 12)
}

func newDemo(group layout.PinGroup) *Overlay {
	return New(Config{
		Group:         group,
		RowCount:      10000,
		RowHeight:     30,
		Width:         1920,
		Height:        500,
		ScrollbarSize: 12,
		Overscan:      1,
	})
}

func TestOverlay_StripGeometry(t *testing.T) {
	m := demoModel()

	left := newDemo(m.Left)
	assert.Equal(t, viewport.Rect{X: 0, Y: 0, Width: 120, Height: 488}, left.Strip())

	right := newDemo(m.Right)
	assert.Equal(t, viewport.Rect{X: 1920 - 12 - 120, Y: 0, Width: 120, Height: 488}, right.Strip())
	assert.Equal(t, layout.PinRight, right.Side())
}

// TestOverlay_NarrowContainer verifies a right strip wider than the space
// left of the scrollbar keeps its anchor and starts left of the container.
func TestOverlay_NarrowContainer(t *testing.T) {
	m := layout.Build([]layout.Column{
		{Key: "name", Width: 40},
		{Key: "action", Width: 120, Pin: layout.PinRight},
	}, 100, 12)
	o := New(Config{Group: m.Right, RowCount: 10, RowHeight: 1, Width: 100, Height: 50, ScrollbarSize: 12, Overscan: 1})

	strip := o.Strip()
	assert.Equal(t, viewport.Rect{X: 100 - 12 - 120, Y: 0, Width: 120, Height: 38}, strip)
	assert.Negative(t, strip.X)

	cells := o.Cells()
	require.Len(t, cells, 10)
	assert.Equal(t, 0, cells[0].X, "cells stay relative to the strip")
	assert.Equal(t, 1, cells[0].Col)
}

func TestOverlay_MountedOnlyWithColumns(t *testing.T) {
	empty := newDemo(layout.PinGroup{Side: layout.PinLeft})
	assert.False(t, empty.Mounted())
	assert.Nil(t, empty.Cells())

	empty.SetGroup(demoModel().Left)
	assert.True(t, empty.Mounted())
}

// TestOverlay_WindowMatchesGrid verifies the strip renders exactly the body's rows.
func TestOverlay_WindowMatchesGrid(t *testing.T) {
	m := demoModel()
	g := grid.New(grid.Config{
		Widths:        m.Widths(),
		RowCount:      10000,
		RowHeight:     30,
		Width:         1920,
		Height:        500,
		ScrollbarSize: 12,
		Overscan:      1,
	})
	o := newDemo(m.Left)

	for _, top := range []int{0, 1, 29, 30, 3000, 123457, g.MaxScroll().Top} {
		g.Scroll(top, 0)
		o.SetScrollTop(g.Offset().Top)
		assert.Equal(t, g.RowWindow(), o.Window(), "top=%d", top)
	}
	assert.Equal(t, 7, o.Syncs())
}

func TestOverlay_CellsUseGridIndices(t *testing.T) {
	m := layout.Build([]layout.Column{
		{Key: "a", Width: 3, Pin: layout.PinLeft},
		{Key: "b", Width: 10},
		{Key: "c", Width: 4, Pin: layout.PinLeft},
	}, 40, 1)
	o := New(Config{Group: m.Left, RowCount: 5, RowHeight: 1, Width: 40, Height: 4, ScrollbarSize: 1})
	o.SetScrollTop(1)

	cells := o.Cells()
	require.Len(t, cells, 3*2)
	assert.Equal(t, Cell{Row: 1, Col: 0, X: 0, Y: 0, Width: 3, Height: 1}, cells[0])
	assert.Equal(t, Cell{Row: 1, Col: 2, X: 3, Y: 0, Width: 4, Height: 1}, cells[1])
	assert.Equal(t, 3, cells[4].Row)
}

func TestOverlay_VariableHeightsReset(t *testing.T) {
	heights := []int{1, 1, 1, 1, 1, 1}
	o := New(Config{
		Group:         layout.PinGroup{Side: layout.PinLeft},
		RowCount:      len(heights),
		RowHeightFunc: func(i int) int { return heights[i] },
		Height:        3,
	})
	o.SetScrollTop(2)
	assert.Equal(t, 2, o.VisibleFrom())

	heights[0] = 3
	o.ResetAfterRow(0)
	assert.Equal(t, 0, o.VisibleFrom())
	assert.Equal(t, 3, o.VisibleTo())
}
