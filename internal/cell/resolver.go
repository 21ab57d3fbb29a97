// Package cell resolves the content rendered for a (row, column) address,
// independently of virtualization.
package cell

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/vtable/internal/layout"
)

// DefaultCacheLimit bounds the number of memoized cells.
const DefaultCacheLimit = 20000

// EditPlaceholder is rendered for rows in edit mode when no EditRenderer is set.
const EditPlaceholder = "edit"

// printer formats numbers with thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// EditRenderer renders a cell of a row that is currently being edited.
// Editing itself belongs to the host; the resolver only dispatches.
type EditRenderer func(row layout.Record, rowIndex int, col layout.Column, form *FormState) string

type memoKey struct {
	row string
	col int
}

// Stats reports memo effectiveness.
type Stats struct {
	Hits       int
	Misses     int
	Entries    int
	Generation uint64
}

// Resolver produces cell content and memoizes it per (row key, column index).
// Columns may share a field key, so the column position is the cell identity.
//
// A memoized value is reused until Invalidate is called, so renderers run
// once per cell while the data and columns are unchanged. Renderer panics are
// not recovered.
type Resolver struct {
	rowKey   layout.RowKey
	editable map[string]bool
	edit     EditRenderer
	form     *FormState

	memo       map[memoKey]string
	limit      int
	generation uint64
	hits       int
	misses     int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithEditRenderer sets the collaborator used for rows in edit mode.
func WithEditRenderer(fn EditRenderer) Option {
	return func(r *Resolver) { r.edit = fn }
}

// WithEditableKeys marks rows as being edited.
func WithEditableKeys(keys []string) Option {
	return func(r *Resolver) { r.setEditable(keys) }
}

// WithForm shares a form state with the edit renderer.
func WithForm(form *FormState) Option {
	return func(r *Resolver) { r.form = form }
}

// WithCacheLimit bounds the memo size. Values below 1 disable memoization.
func WithCacheLimit(n int) Option {
	return func(r *Resolver) { r.limit = n }
}

// NewResolver creates a resolver using rowKey for row identity.
func NewResolver(rowKey layout.RowKey, opts ...Option) *Resolver {
	r := &Resolver{
		rowKey:   rowKey,
		editable: map[string]bool{},
		limit:    DefaultCacheLimit,
		memo:     map[memoKey]string{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.form == nil {
		r.form = NewFormState()
	}
	return r
}

func (r *Resolver) setEditable(keys []string) {
	r.editable = make(map[string]bool, len(keys))
	for _, k := range keys {
		r.editable[k] = true
	}
}

// Form returns the form state handed to the edit renderer.
func (r *Resolver) Form() *FormState {
	return r.form
}

// RowKey returns the identity of row.
func (r *Resolver) RowKey(row layout.Record, rowIndex int) string {
	return r.rowKey.Of(row, rowIndex)
}

// SetEditableKeys replaces the set of rows in edit mode.
func (r *Resolver) SetEditableKeys(keys []string) {
	r.setEditable(keys)
	r.Invalidate()
}

// IsEditing reports whether the row with key is in edit mode.
func (r *Resolver) IsEditing(key string) bool {
	return r.editable[key]
}

// Invalidate drops every memoized cell. Call it whenever rows or columns change.
func (r *Resolver) Invalidate() {
	r.generation++
	clear(r.memo)
}

// Stats returns memo counters.
func (r *Resolver) Stats() Stats {
	return Stats{Hits: r.hits, Misses: r.misses, Entries: len(r.memo), Generation: r.generation}
}

// Resolve returns the content of the cell at (row, col). colIndex is the
// position of col in the resolved layout.
func (r *Resolver) Resolve(row layout.Record, rowIndex, colIndex int, col layout.Column) string {
	key := memoKey{row: r.rowKey.Of(row, rowIndex), col: colIndex}
	if v, ok := r.memo[key]; ok {
		r.hits++
		return v
	}
	r.misses++

	var out string
	if r.editable[key.row] {
		out = r.resolveEdit(row, rowIndex, col)
	} else {
		out = resolveView(row, rowIndex, col)
	}

	if r.limit > 0 {
		if len(r.memo) >= r.limit {
			clear(r.memo)
		}
		r.memo[key] = out
	}
	return out
}

func (r *Resolver) resolveEdit(row layout.Record, rowIndex int, col layout.Column) string {
	if r.edit == nil {
		return EditPlaceholder
	}
	return r.edit(row, rowIndex, col, r.form)
}

func resolveView(row layout.Record, rowIndex int, col layout.Column) string {
	value := layout.Field(row, col.Key)
	if col.Renderer != nil {
		return col.Renderer(value, row, rowIndex)
	}
	return Format(value)
}

// Format renders a raw field value as text. Integral numbers get thousand
// separators.
func Format(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return printer.Sprintf("%d", t)
	case int64:
		return printer.Sprintf("%d", t)
	case int32:
		return printer.Sprintf("%d", t)
	case uint64:
		return printer.Sprintf("%d", t)
	case float64:
		return formatFloat(t)
	case float32:
		return formatFloat(float64(t))
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format(time.RFC3339)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return printer.Sprintf("%d", int64(f))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
