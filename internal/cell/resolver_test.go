package cell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/vtable/internal/layout"
)

func TestResolve_RawValueAndRenderer(t *testing.T) {
	r := NewResolver(layout.FieldKey("id"))
	row := layout.Record{"id": 1, "name": "Bob", "age": float64(12)}

	assert.Equal(t, "Bob", r.Resolve(row, 0, 0, layout.Column{Key: "name"}))
	assert.Equal(t, "12", r.Resolve(row, 0, 1, layout.Column{Key: "age"}))
	assert.Empty(t, r.Resolve(row, 0, 2, layout.Column{Key: "missing"}))

	var gotValue any
	var gotIndex int
	action := layout.Column{Key: "action", Renderer: func(value any, rec layout.Record, rowIndex int) string {
		gotValue = value
		gotIndex = rowIndex
		return "<" + Format(rec["age"]) + ">"
	}}
	assert.Equal(t, "<12>", r.Resolve(row, 5, 3, action))
	assert.Nil(t, gotValue)
	assert.Equal(t, 5, gotIndex)
}

// TestResolve_MemoizedUntilInvalidated verifies the renderer runs once per cell.
func TestResolve_MemoizedUntilInvalidated(t *testing.T) {
	calls := 0
	col := layout.Column{Key: "name", Renderer: func(value any, _ layout.Record, _ int) string {
		calls++
		return value.(string)
	}}
	r := NewResolver(layout.FieldKey("id"))
	row := layout.Record{"id": "a", "name": "Bob"}

	first := r.Resolve(row, 0, 0, col)
	second := r.Resolve(row, 0, 0, col)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	// Same identity at a different position hits the memo.
	r.Resolve(row, 9, 0, col)
	assert.Equal(t, 1, calls)

	r.Invalidate()
	r.Resolve(row, 0, 0, col)
	assert.Equal(t, 2, calls)

	stats := r.Stats()
	assert.Equal(t, 2, stats.Hits)
	assert.Equal(t, 2, stats.Misses)
	assert.Equal(t, uint64(1), stats.Generation)
}

// TestResolve_SharedKeyColumns verifies columns reading the same field keep
// separate memo entries and each renderer runs.
func TestResolve_SharedKeyColumns(t *testing.T) {
	r := NewResolver(layout.FieldKey("id"))
	row := layout.Record{"id": 1, "a": "raw"}
	plain := layout.Column{Key: "a"}
	rendered := layout.Column{Key: "a", Renderer: func(any, layout.Record, int) string { return "R" }}

	assert.Equal(t, "raw", r.Resolve(row, 0, 0, plain))
	assert.Equal(t, "R", r.Resolve(row, 0, 1, rendered))
	assert.Equal(t, "raw", r.Resolve(row, 0, 0, plain))
	assert.Equal(t, 2, r.Stats().Entries)
}

func TestResolve_CacheLimit(t *testing.T) {
	r := NewResolver(layout.FieldKey("id"), WithCacheLimit(2))
	col := layout.Column{Key: "id"}
	for i := 0; i < 5; i++ {
		r.Resolve(layout.Record{"id": i}, i, 0, col)
	}
	assert.LessOrEqual(t, r.Stats().Entries, 2)

	disabled := NewResolver(layout.FieldKey("id"), WithCacheLimit(0))
	disabled.Resolve(layout.Record{"id": 1}, 0, 0, col)
	assert.Equal(t, 0, disabled.Stats().Entries)
}

// TestResolve_EditDispatch verifies rows in the editable set use the edit branch.
func TestResolve_EditDispatch(t *testing.T) {
	rows := []layout.Record{{"id": "r1", "name": "Bob"}, {"id": "r2", "name": "Ann"}}
	col := layout.Column{Key: "name"}

	r := NewResolver(layout.FieldKey("id"), WithEditableKeys([]string{"r2"}))
	assert.Equal(t, "Bob", r.Resolve(rows[0], 0, 0, col))
	assert.Equal(t, EditPlaceholder, r.Resolve(rows[1], 1, 0, col))

	form := NewFormState()
	form.Set("r1", "name", "Robert")
	custom := NewResolver(layout.FieldKey("id"),
		WithForm(form),
		WithEditRenderer(func(row layout.Record, _ int, c layout.Column, f *FormState) string {
			v, ok := f.Get(row["id"].(string), c.Key)
			if !ok {
				return "?"
			}
			return "[" + v.(string) + "]"
		}),
	)
	custom.SetEditableKeys([]string{"r1"})
	assert.True(t, custom.IsEditing("r1"))
	assert.Equal(t, "[Robert]", custom.Resolve(rows[0], 0, 0, col))
	assert.Same(t, form, custom.Form())
}

// TestResolve_RendererPanicPropagates verifies renderer faults are not shielded.
func TestResolve_RendererPanicPropagates(t *testing.T) {
	boom := errors.New("boom")
	col := layout.Column{Key: "x", Renderer: func(any, layout.Record, int) string { panic(boom) }}
	r := NewResolver(layout.RowKey{})

	assert.PanicsWithError(t, "boom", func() {
		r.Resolve(layout.Record{}, 0, 0, col)
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "nil", in: nil, want: ""},
		{name: "int", in: 10000, want: "10,000"},
		{name: "integral float", in: float64(1234567), want: "1,234,567"},
		{name: "fraction", in: 3.25, want: "3.25"},
		{name: "bool", in: true, want: "true"},
		{name: "slice", in: []int{1, 2}, want: "[1 2]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.in))
		})
	}
}

func TestFormState(t *testing.T) {
	f := NewFormState()
	f.Set("b", "x", 1)
	f.Set("a", "y", 2)
	require.Equal(t, []string{"a", "b"}, f.Rows())

	v, ok := f.Get("b", "x")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	f.Reset("b")
	_, ok = f.Get("b", "x")
	assert.False(t, ok)

	f.Reset("")
	assert.Empty(t, f.Rows())
}
