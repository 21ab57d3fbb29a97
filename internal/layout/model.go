package layout

import "fmt"

// Warning codes reported by Build and CheckHeight.
const (
	WarnMissingHeight = "missing_height"
	WarnInvalidWidth  = "invalid_width"
)

// Warning is a non-fatal configuration problem. Rendering proceeds degraded.
type Warning struct {
	Code    string
	Column  string
	Message string
}

func (w Warning) String() string {
	if w.Column != "" {
		return fmt.Sprintf("%s (column %q): %s", w.Code, w.Column, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// PinGroup is the ordered set of columns anchored to one side.
type PinGroup struct {
	Side    PinSide
	Columns []Column

	// Indices maps each member to its position in Model.Columns.
	Indices []int

	// Width is the sum of member widths.
	Width int
}

// Len returns the number of columns in the group.
func (g PinGroup) Len() int {
	return len(g.Columns)
}

// Model is the resolved layout handed to the virtualizers.
type Model struct {
	// Columns are the visible columns with resolved widths, in original order.
	Columns []Column

	Left  PinGroup
	Right PinGroup

	Warnings []Warning
}

// Widths returns the resolved column widths.
func (m Model) Widths() []int {
	out := make([]int, len(m.Columns))
	for i, c := range m.Columns {
		out[i] = c.Width
	}
	return out
}

// TotalWidth returns the sum of resolved column widths.
func (m Model) TotalWidth() int {
	total := 0
	for _, c := range m.Columns {
		total += c.Width
	}
	return total
}

// Visible returns the columns that are not hidden, preserving order.
func Visible(cols []Column) []Column {
	out := make([]Column, 0, len(cols))
	for _, c := range cols {
		if !c.Hidden {
			out = append(out, c)
		}
	}
	return out
}

// Build filters hidden columns, resolves widths against the container and
// derives the pin groups.
func Build(cols []Column, containerWidth, scrollbar int) Model {
	visible := Visible(cols)
	widths, warnings := ResolveWidths(visible, containerWidth, scrollbar)
	for i := range visible {
		visible[i].Width = widths[i]
	}
	left, right := Groups(visible)
	return Model{Columns: visible, Left: left, Right: right, Warnings: warnings}
}

// Groups derives the left and right pin groups from already-visible columns.
// Member order follows column order and each member records its index.
func Groups(cols []Column) (left, right PinGroup) {
	left.Side = PinLeft
	right.Side = PinRight
	for i, c := range cols {
		switch c.Pin {
		case PinLeft:
			left.Columns = append(left.Columns, c)
			left.Indices = append(left.Indices, i)
			left.Width += c.Width
		case PinRight:
			right.Columns = append(right.Columns, c)
			right.Indices = append(right.Indices, i)
			right.Width += c.Width
		case PinNone:
		}
	}
	return left, right
}

// ResolveWidths returns a non-negative width for every column. Fill columns
// split whatever the container has left after the other columns and the
// scrollbar, never dropping below their own Width.
func ResolveWidths(cols []Column, containerWidth, scrollbar int) ([]int, []Warning) {
	widths := make([]int, len(cols))
	var warnings []Warning

	fixed := 0
	fills := 0
	for i, c := range cols {
		if c.Fill {
			fills++
			continue
		}
		w := c.Width
		if w <= 0 {
			warnings = append(warnings, Warning{
				Code:    WarnInvalidWidth,
				Column:  c.Key,
				Message: "width must be a positive number; column collapsed to zero width",
			})
			w = 0
		}
		widths[i] = w
		fixed += w
	}
	if fills == 0 {
		return widths, warnings
	}

	available := max(containerWidth-fixed-max(scrollbar, 0), 0)
	share := available / fills
	extra := available % fills
	for i, c := range cols {
		if !c.Fill {
			continue
		}
		w := share
		if extra > 0 {
			w++
			extra--
		}
		widths[i] = max(w, c.Width, 0)
	}
	return widths, warnings
}

// FirstChanged returns the lowest index at which the two width lists differ,
// or -1 if they are identical.
func FirstChanged(prev, next []int) int {
	n := min(len(prev), len(next))
	for i := 0; i < n; i++ {
		if prev[i] != next[i] {
			return i
		}
	}
	if len(prev) != len(next) {
		return n
	}
	return -1
}

// CheckHeight validates the vertical viewport height. Virtualization needs a
// bounded height; a missing one yields a warning and unbounded rendering.
func CheckHeight(height int) *Warning {
	if height > 0 {
		return nil
	}
	return &Warning{
		Code:    WarnMissingHeight,
		Message: "scroll height must be provided as a positive number; rendering is unbounded",
	}
}
