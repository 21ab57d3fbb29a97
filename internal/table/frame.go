package table

import (
	"github.com/rshade/vtable/internal/layout"
	"github.com/rshade/vtable/internal/overlay"
	"github.com/rshade/vtable/internal/viewport"
)

// Cell is a resolved, positioned cell. X and Y are relative to the viewport
// origin (the top-left corner of the body, below the header).
type Cell struct {
	Row    int
	Col    int
	Key    string
	X      int
	Y      int
	Width  int
	Height int
	Text   string
}

// HeaderCell is a positioned column title. X is relative to the viewport.
type HeaderCell struct {
	Col   int
	X     int
	Width int
	Title string
}

// Strip is a rendered pinned overlay.
type Strip struct {
	Side   layout.PinSide
	Rect   viewport.Rect
	Header []HeaderCell
	Cells  []Cell
}

// Frame is everything needed to paint the table for the current state.
type Frame struct {
	Width      int
	Height     int
	BodyHeight int
	BodyWidth  int
	Scrollbar  int

	Offset viewport.ScrollOffset
	Max    viewport.ScrollOffset

	TotalWidth  int
	TotalHeight int

	Rows viewport.Range
	Cols viewport.Range

	Header []HeaderCell
	Body   []Cell

	// Left and Right are nil when the strip is not mounted.
	Left  *Strip
	Right *Strip

	Warnings []layout.Warning
}

// Frame resolves the cells of the current windows.
func (t *Table) Frame() Frame {
	g := t.grid
	f := Frame{
		Width:       g.Width(),
		Height:      t.height,
		BodyHeight:  g.BodyHeight(),
		BodyWidth:   g.BodyWidth(),
		Scrollbar:   g.ScrollbarSize(),
		Offset:      t.sync.Offset(),
		Max:         g.MaxScroll(),
		TotalWidth:  g.TotalWidth(),
		TotalHeight: g.TotalHeight(),
		Rows:        g.RowWindow(),
		Cols:        g.ColumnWindow(),
		Warnings:    t.Warnings(),
	}

	for c := f.Cols.From; c < f.Cols.To; c++ {
		f.Header = append(f.Header, HeaderCell{
			Col:   c,
			X:     g.ColumnOffset(c) - t.header.left,
			Width: g.ColumnWidth(c),
			Title: t.model.Columns[c].Header(),
		})
	}

	cells := g.Cells()
	f.Body = make([]Cell, 0, len(cells))
	for _, gc := range cells {
		f.Body = append(f.Body, t.resolve(gc.Row, gc.Col, gc.X, gc.Y, gc.Width, gc.Height))
	}

	f.Left = t.strip(t.left)
	f.Right = t.strip(t.right)
	return f
}

func (t *Table) strip(o *overlay.Overlay) *Strip {
	if !o.Mounted() {
		return nil
	}
	rect := o.Strip()
	s := &Strip{Side: o.Side(), Rect: rect}

	group := o.Group()
	x := rect.X
	for i, col := range group.Columns {
		s.Header = append(s.Header, HeaderCell{Col: group.Indices[i], X: x, Width: col.Width, Title: col.Header()})
		x += col.Width
	}

	cells := o.Cells()
	s.Cells = make([]Cell, 0, len(cells))
	for _, oc := range cells {
		s.Cells = append(s.Cells, t.resolve(oc.Row, oc.Col, rect.X+oc.X, rect.Y+oc.Y, oc.Width, oc.Height))
	}
	return s
}

func (t *Table) resolve(row, col, x, y, w, h int) Cell {
	rec := t.data[row]
	return Cell{
		Row:    row,
		Col:    col,
		Key:    t.resolver.RowKey(rec, row),
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
		Text:   t.resolver.Resolve(rec, row, col, t.model.Columns[col]),
	}
}
