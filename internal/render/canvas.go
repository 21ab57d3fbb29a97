// Package render paints table frames onto a character canvas and turns the
// canvas into styled terminal output.
package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/rshade/vtable/internal/viewport"
)

// StyleID selects a style from a Theme.
type StyleID uint8

// Styles used by the painter.
const (
	StyleBody StyleID = iota
	StyleHeader
	StylePinned
	StylePinnedHeader
	StyleSelected
	StyleScrollTrack
	StyleScrollThumb
	StyleStatus
	styleCount
)

// ellipsis marks truncated cell content.
const ellipsis = "…"

// continuation marks the second column of a double-width rune.
const continuation rune = 0

// Canvas is a fixed-size grid of runes with a style per position.
// Writes outside the canvas or the current clip rectangle are dropped.
type Canvas struct {
	width  int
	height int
	runes  []rune
	styles []StyleID
	clip   viewport.Rect
}

// NewCanvas creates a blank canvas.
func NewCanvas(width, height int) *Canvas {
	width, height = max(width, 0), max(height, 0)
	c := &Canvas{
		width:  width,
		height: height,
		runes:  make([]rune, width*height),
		styles: make([]StyleID, width*height),
	}
	for i := range c.runes {
		c.runes[i] = ' '
	}
	c.ResetClip()
	return c
}

// Width returns the canvas width.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height.
func (c *Canvas) Height() int { return c.height }

// SetClip restricts subsequent writes to r.
func (c *Canvas) SetClip(r viewport.Rect) {
	c.clip = r
}

// ResetClip allows writes anywhere on the canvas.
func (c *Canvas) ResetClip() {
	c.clip = viewport.Rect{Width: c.width, Height: c.height}
}

func (c *Canvas) visible(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height &&
		x >= c.clip.X && y >= c.clip.Y &&
		x < c.clip.X+c.clip.Width && y < c.clip.Y+c.clip.Height
}

// set writes one cell, repairing any double-width rune it cuts in half.
func (c *Canvas) set(x, y int, r rune, style StyleID) {
	i := y*c.width + x
	if c.runes[i] == continuation && x > 0 {
		c.runes[i-1] = ' '
	}
	if x+1 < c.width && c.runes[i+1] == continuation {
		c.runes[i+1] = ' '
	}
	c.runes[i] = r
	c.styles[i] = style
}

// Cell returns the rune and style at (x, y). The second column of a
// double-width rune reads as 0.
func (c *Canvas) Cell(x, y int) (rune, StyleID) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return ' ', StyleBody
	}
	i := y*c.width + x
	return c.runes[i], c.styles[i]
}

// Fill paints r with ch.
func (c *Canvas) Fill(r viewport.Rect, ch rune, style StyleID) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			if c.visible(x, y) {
				c.set(x, y, ch, style)
			}
		}
	}
}

// Text paints s on row y starting at x, within width columns. Escape
// sequences are stripped, content wider than width is truncated with an
// ellipsis and the remainder of the span is padded with spaces.
func (c *Canvas) Text(x, y, width int, s string, style StyleID) {
	if width <= 0 || y < 0 || y >= c.height {
		return
	}
	s = sanitize(s)
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, ellipsis)
	}

	cx := x
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if cx+rw > x+width {
			break
		}
		if rw == 2 && !(c.visible(cx, y) && c.visible(cx+1, y)) {
			// Half of a wide rune is clipped; show the visible half as blank.
			for dx := 0; dx < 2; dx++ {
				if c.visible(cx+dx, y) {
					c.set(cx+dx, y, ' ', style)
				}
			}
			cx += rw
			continue
		}
		if c.visible(cx, y) {
			c.set(cx, y, r, style)
			if rw == 2 {
				c.set(cx+1, y, continuation, style)
			}
		}
		cx += rw
	}
	for ; cx < x+width; cx++ {
		if c.visible(cx, y) {
			c.set(cx, y, ' ', style)
		}
	}
}

// sanitize strips escape sequences and flattens control characters.
func sanitize(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r < ' ' || r == 0x7f {
			return ' '
		}
		return r
	}, s)
}

// PlainLine returns row y without styling.
func (c *Canvas) PlainLine(y int) string {
	if y < 0 || y >= c.height {
		return ""
	}
	var b strings.Builder
	row := c.runes[y*c.width : (y+1)*c.width]
	for _, r := range row {
		if r != continuation {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Plain returns the canvas without styling, one line per row.
func (c *Canvas) Plain() string {
	lines := make([]string, c.height)
	for y := range lines {
		lines[y] = c.PlainLine(y)
	}
	return strings.Join(lines, "\n")
}

// Render returns the canvas styled with theme. Runs of equally styled cells
// are rendered together.
func (c *Canvas) Render(theme Theme) string {
	lines := make([]string, c.height)
	for y := 0; y < c.height; y++ {
		var line, run strings.Builder
		row := c.runes[y*c.width : (y+1)*c.width]
		styles := c.styles[y*c.width : (y+1)*c.width]

		current := StyleBody
		for x, r := range row {
			if r == continuation {
				continue
			}
			if styles[x] != current && run.Len() > 0 {
				line.WriteString(theme.Style(current).Render(run.String()))
				run.Reset()
			}
			current = styles[x]
			run.WriteRune(r)
		}
		if run.Len() > 0 {
			line.WriteString(theme.Style(current).Render(run.String()))
		}
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}
