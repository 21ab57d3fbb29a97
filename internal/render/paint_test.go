package render

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/vtable/internal/layout"
	"github.com/rshade/vtable/internal/table"
)

func terminalTable(width int) *table.Table {
	rows := make([]layout.Record, 100)
	for i := range rows {
		rows[i] = layout.Record{"id": i + 1, "spec": "abcdef", "name": "Bob", "age": 12}
	}
	return table.New(table.Props{
		Columns: []layout.Column{
			{Key: "spec", Title: "Spec", Width: 8, Pin: layout.PinLeft},
			{Key: "name", Title: "Name", Width: 10},
			{Key: "age", Title: "Age", Width: 5},
			{Key: "action", Title: "Act", Width: 8, Pin: layout.PinRight,
				Renderer: func(_ any, row layout.Record, _ int) string {
					return strconv.Itoa(row["age"].(int))
				}},
		},
		DataSource:    rows,
		RowKey:        layout.FieldKey("id"),
		Scroll:        table.Scroll{X: width, Y: 6},
		RowHeight:     1,
		ScrollbarSize: table.Int(1),
	})
}

func TestPaint_ComposesStripsOverBody(t *testing.T) {
	tbl := terminalTable(40)
	opts := DefaultOptions()
	opts.Selected = 0

	c := Paint(tbl.Frame(), opts)
	require.Equal(t, 40, c.Width())
	require.Equal(t, 1+5+1, c.Height())

	assert.Equal(t, "Spec    Name      Age  Act     Act      ", c.PlainLine(0))
	assert.Equal(t, "abcdef  Bob       12   12      12      "+string(vThumb), c.PlainLine(1))
	assert.Equal(t, "abcdef  Bob       12   12      12      "+string(vTrack), c.PlainLine(2))

	_, style := c.Cell(10, 1)
	assert.Equal(t, StyleSelected, style)
	_, style = c.Cell(2, 2)
	assert.Equal(t, StylePinned, style)
	_, style = c.Cell(0, 0)
	assert.Equal(t, StylePinnedHeader, style)

	r, _ := c.Cell(0, 6)
	assert.Equal(t, hThumb, r, "content fits, thumb spans the track")
}

// TestPaint_HorizontalScrollUnderStrips verifies scrolled body content slides
// under the pinned strips.
func TestPaint_HorizontalScrollUnderStrips(t *testing.T) {
	tbl := terminalTable(20)
	require.True(t, tbl.ScrollTo(0, 3))

	c := Paint(tbl.Frame(), DefaultOptions())

	assert.Equal(t, "Spec    e  Act      ", c.PlainLine(0))
	assert.Equal(t, "abcdef     12      "+string(vThumb), c.PlainLine(1))
}

// TestPaint_NarrowerThanStrips verifies strips that overflow the container
// are clipped to the canvas.
func TestPaint_NarrowerThanStrips(t *testing.T) {
	tbl := terminalTable(6)
	require.Negative(t, tbl.Frame().Right.Rect.X)

	var c *Canvas
	require.NotPanics(t, func() { c = Paint(tbl.Frame(), DefaultOptions()) })
	assert.Equal(t, 6, c.Width())
	for y := 0; y < c.Height(); y++ {
		assert.Len(t, []rune(c.PlainLine(y)), 6)
	}
}

func TestPaint_HideHeaderAndScrollbars(t *testing.T) {
	tbl := terminalTable(40)
	opts := Options{Selected: -1, HideHeader: true, Gap: 1}

	c := Paint(tbl.Frame(), opts)
	assert.Equal(t, 5+1, c.Height())
	assert.Equal(t, "abcdef  Bob       12   12      12       ", c.PlainLine(0))
}

func TestThumb(t *testing.T) {
	tests := []struct {
		name                               string
		track, visible, total, off, maxOff int
		wantStart, wantLen                 int
	}{
		{name: "top", track: 5, visible: 5, total: 100, off: 0, maxOff: 95, wantStart: 0, wantLen: 1},
		{name: "bottom", track: 5, visible: 5, total: 100, off: 95, maxOff: 95, wantStart: 4, wantLen: 1},
		{name: "fits", track: 5, visible: 5, total: 3, off: 0, maxOff: 0, wantStart: 0, wantLen: 5},
		{name: "half", track: 10, visible: 10, total: 20, off: 5, maxOff: 10, wantStart: 2, wantLen: 5},
		{name: "empty track", track: 0, visible: 0, total: 9, off: 0, maxOff: 9, wantStart: 0, wantLen: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, length := thumb(tt.track, tt.visible, tt.total, tt.off, tt.maxOff)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantLen, length)
		})
	}
}
