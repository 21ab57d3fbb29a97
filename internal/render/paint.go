package render

import (
	"github.com/rshade/vtable/internal/table"
	"github.com/rshade/vtable/internal/viewport"
)

// Scrollbar glyphs.
const (
	vTrack = '│'
	vThumb = '┃'
	hTrack = '─'
	hThumb = '━'
)

// Options controls how a frame is painted.
type Options struct {
	// Selected is the highlighted row index, or -1.
	Selected int

	// HideHeader drops the header row.
	HideHeader bool

	// Gap is the number of blank columns kept at the right of each cell.
	Gap int

	// Scrollbars draws the scrollbar tracks in the reserved space.
	Scrollbars bool
}

// DefaultOptions returns the options used by the terminal UI.
func DefaultOptions() Options {
	return Options{Selected: -1, Gap: 1, Scrollbars: true}
}

func (o Options) headerHeight() int {
	if o.HideHeader {
		return 0
	}
	return 1
}

func (o Options) textWidth(w int) int {
	if w > o.Gap {
		return w - o.Gap
	}
	return w
}

// Paint composes a frame: header, body cells, then the pinned strips on top,
// then the scrollbars.
func Paint(f table.Frame, opts Options) *Canvas {
	hh := opts.headerHeight()
	c := NewCanvas(f.Width, hh+f.BodyHeight+f.Scrollbar)

	if hh > 0 {
		c.SetClip(viewport.Rect{Width: f.BodyWidth, Height: hh})
		c.Fill(viewport.Rect{Width: f.BodyWidth, Height: hh}, ' ', StyleHeader)
		for _, h := range f.Header {
			c.Text(h.X, 0, opts.textWidth(h.Width), h.Title, StyleHeader)
		}
	}

	c.SetClip(viewport.Rect{Y: hh, Width: f.BodyWidth, Height: f.BodyHeight})
	for _, cell := range f.Body {
		paintCell(c, cell, hh, StyleBody, opts)
	}

	for _, s := range []*table.Strip{f.Left, f.Right} {
		if s != nil {
			paintStrip(c, s, hh, opts)
		}
	}

	c.ResetClip()
	if opts.Scrollbars && f.Scrollbar > 0 {
		paintScrollbars(c, f, hh)
	}
	return c
}

func paintCell(c *Canvas, cell table.Cell, hh int, style StyleID, opts Options) {
	if cell.Row == opts.Selected {
		style = StyleSelected
	}
	y := hh + cell.Y
	c.Fill(viewport.Rect{X: cell.X, Y: y, Width: cell.Width, Height: cell.Height}, ' ', style)
	c.Text(cell.X, y, opts.textWidth(cell.Width), cell.Text, style)
}

func paintStrip(c *Canvas, s *table.Strip, hh int, opts Options) {
	rect := s.Rect
	rect.Y += hh
	c.SetClip(rect)
	c.Fill(rect, ' ', StylePinned)
	for _, cell := range s.Cells {
		paintCell(c, cell, hh, StylePinned, opts)
	}

	if hh > 0 {
		head := viewport.Rect{X: s.Rect.X, Width: s.Rect.Width, Height: hh}
		c.SetClip(head)
		c.Fill(head, ' ', StylePinnedHeader)
		for _, h := range s.Header {
			c.Text(h.X, 0, opts.textWidth(h.Width), h.Title, StylePinnedHeader)
		}
	}
}

// thumb returns the start and length of a scrollbar thumb on a track.
func thumb(track, visible, total, offset, maxOffset int) (start, length int) {
	if track <= 0 {
		return 0, 0
	}
	if total <= visible || maxOffset <= 0 {
		return 0, track
	}
	length = min(max(track*visible/total, 1), track)
	start = (track - length) * min(max(offset, 0), maxOffset) / maxOffset
	return start, length
}

func paintScrollbars(c *Canvas, f table.Frame, hh int) {
	sb := f.Scrollbar

	vs, vl := thumb(f.BodyHeight, f.BodyHeight, f.TotalHeight, f.Offset.Top, f.Max.Top)
	for y := 0; y < f.BodyHeight; y++ {
		r, style := vTrack, StyleScrollTrack
		if y >= vs && y < vs+vl {
			r, style = vThumb, StyleScrollThumb
		}
		c.Fill(viewport.Rect{X: f.Width - sb, Y: hh + y, Width: sb, Height: 1}, r, style)
	}

	hs, hl := thumb(f.BodyWidth, f.BodyWidth, f.TotalWidth, f.Offset.Left, f.Max.Left)
	for x := 0; x < f.BodyWidth; x++ {
		r, style := hTrack, StyleScrollTrack
		if x >= hs && x < hs+hl {
			r, style = hThumb, StyleScrollThumb
		}
		c.Fill(viewport.Rect{X: x, Y: hh + f.BodyHeight, Width: 1, Height: sb}, r, style)
	}
}
