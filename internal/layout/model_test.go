package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoColumns() []Column {
	return []Column{
		{Key: "spec", Title: "FixedLeft", Width: 120, Pin: PinLeft},
		{Key: "name", Title: "Name", Width: 120},
		{Key: "age", Title: "Age", Width: 80},
		{Key: "action", Title: "Action", Width: 120, Pin: PinRight},
	}
}

func TestBuild_FiltersHiddenColumns(t *testing.T) {
	cols := demoColumns()
	cols = append(cols, Column{Key: "secret", Width: 50, Pin: PinLeft, Hidden: true})

	m := Build(cols, 1920, 12)

	require.Len(t, m.Columns, 4)
	for _, c := range m.Columns {
		assert.NotEqual(t, "secret", c.Key)
	}
	assert.Equal(t, 1, m.Left.Len())
	assert.Equal(t, 120, m.Left.Width)
}

// TestGroups_IndexMap verifies members carry their grid column index in order.
func TestGroups_IndexMap(t *testing.T) {
	cols := []Column{
		{Key: "a", Width: 10, Pin: PinRight},
		{Key: "b", Width: 20, Pin: PinLeft},
		{Key: "c", Width: 30},
		{Key: "d", Width: 40, Pin: PinLeft},
		{Key: "e", Width: 50, Pin: PinRight},
	}

	left, right := Groups(cols)

	assert.Equal(t, []int{1, 3}, left.Indices)
	assert.Equal(t, 60, left.Width)
	assert.Equal(t, []int{0, 4}, right.Indices)
	assert.Equal(t, 60, right.Width)
	assert.Equal(t, "b", left.Columns[0].Key)
	assert.Equal(t, "e", right.Columns[1].Key)
}

// TestGroups_WidthRecomputed verifies pin group width follows member changes.
func TestGroups_WidthRecomputed(t *testing.T) {
	cols := demoColumns()
	left, _ := Groups(cols)
	assert.Equal(t, 120, left.Width)

	cols[0].Width = 90
	left, _ = Groups(cols)
	assert.Equal(t, 90, left.Width)

	cols[1].Pin = PinLeft
	left, _ = Groups(cols)
	assert.Equal(t, 210, left.Width)
	assert.Equal(t, []int{0, 1}, left.Indices)

	cols[0].Pin = PinNone
	left, _ = Groups(cols)
	assert.Equal(t, 120, left.Width)
	assert.Equal(t, []int{1}, left.Indices)
}

// TestResolveWidths_ResizeScenario covers 1920 -> 800 with one fill column and two pinned 120s.
func TestResolveWidths_ResizeScenario(t *testing.T) {
	cols := []Column{
		{Key: "left", Width: 120, Pin: PinLeft},
		{Key: "body", Fill: true},
		{Key: "right", Width: 120, Pin: PinRight},
	}

	wide, warnings := ResolveWidths(cols, 1920, 12)
	require.Empty(t, warnings)
	assert.Equal(t, []int{120, 1920 - 240 - 12, 120}, wide)

	narrow, _ := ResolveWidths(cols, 800, 12)
	assert.Equal(t, []int{120, 800 - 240 - 12, 120}, narrow)
	assert.Equal(t, 1, FirstChanged(wide, narrow))

	tiny, _ := ResolveWidths(cols, 100, 12)
	for _, w := range tiny {
		assert.GreaterOrEqual(t, w, 0)
	}
	assert.Equal(t, 0, tiny[1])
}

func TestResolveWidths_FillFloorAndRemainder(t *testing.T) {
	cols := []Column{
		{Key: "a", Fill: true, Width: 30},
		{Key: "b", Fill: true},
		{Key: "c", Width: 10},
	}

	widths, _ := ResolveWidths(cols, 41, 0)
	assert.Equal(t, []int{30, 15, 10}, widths)

	widths, _ = ResolveWidths(cols, 81, 0)
	assert.Equal(t, []int{36, 35, 10}, widths)
}

func TestResolveWidths_InvalidWidthWarns(t *testing.T) {
	widths, warnings := ResolveWidths([]Column{{Key: "x", Width: -3}}, 100, 0)
	assert.Equal(t, []int{0}, widths)
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnInvalidWidth, warnings[0].Code)
	assert.Equal(t, "x", warnings[0].Column)
}

func TestFirstChanged(t *testing.T) {
	assert.Equal(t, -1, FirstChanged([]int{1, 2}, []int{1, 2}))
	assert.Equal(t, 0, FirstChanged([]int{1, 2}, []int{3, 2}))
	assert.Equal(t, 2, FirstChanged([]int{1, 2}, []int{1, 2, 3}))
}

func TestCheckHeight(t *testing.T) {
	assert.Nil(t, CheckHeight(500))

	for _, h := range []int{0, -1} {
		w := CheckHeight(h)
		require.NotNil(t, w)
		assert.Equal(t, WarnMissingHeight, w.Code)
	}
}

func TestParsePinSide(t *testing.T) {
	tests := []struct {
		in      string
		want    PinSide
		wantErr bool
	}{
		{in: "", want: PinNone},
		{in: "Left", want: PinLeft},
		{in: " right ", want: PinRight},
		{in: "none", want: PinNone},
		{in: "top", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePinSide(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPinSide)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) PinSide {
	t.Helper()
	p, err := ParsePinSide(s)
	require.NoError(t, err)
	return p
}

func TestField_DottedPath(t *testing.T) {
	row := Record{
		"id":    7,
		"owner": map[string]any{"name": "Bob"},
		"a.b":   "literal",
	}

	assert.Equal(t, 7, Field(row, "id"))
	assert.Equal(t, "Bob", Field(row, "owner.name"))
	assert.Equal(t, "literal", Field(row, "a.b"))
	assert.Nil(t, Field(row, "owner.missing"))
	assert.Nil(t, Field(row, "id.deeper"))
	assert.Nil(t, Field(nil, "id"))
}

func TestRowKey_Of(t *testing.T) {
	row := Record{"id": float64(42), "name": "Bob"}

	assert.Equal(t, "42", FieldKey("id").Of(row, 3))
	assert.Equal(t, "Bob", FieldKey("name").Of(row, 3))
	assert.Equal(t, "3", FieldKey("missing").Of(row, 3))
	assert.Equal(t, "3", RowKey{}.Of(row, 3))
	assert.Equal(t, "Bob-3", FuncKey(func(r Record, i int) any {
		return r["name"].(string) + "-" + "3"
	}).Of(row, 3))
}
