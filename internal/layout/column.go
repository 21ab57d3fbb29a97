// Package layout turns host column/row configuration into the resolved shapes
// consumed by the virtualizers. Everything here is a pure function of its
// inputs.
package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// PinSide anchors a column to one edge of the viewport.
type PinSide int

const (
	// PinNone columns scroll horizontally with the body.
	PinNone PinSide = iota
	// PinLeft columns are drawn in the fixed-left strip.
	PinLeft
	// PinRight columns are drawn in the fixed-right strip.
	PinRight
)

// ErrInvalidPinSide is returned by ParsePinSide for unknown values.
var ErrInvalidPinSide = errors.New("pin must be one of: none, left, right")

// String returns the configuration spelling of the pin side.
func (p PinSide) String() string {
	switch p {
	case PinLeft:
		return "left"
	case PinRight:
		return "right"
	default:
		return "none"
	}
}

// ParsePinSide parses "left", "right", "none" or "" (case-insensitive).
func ParsePinSide(s string) (PinSide, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return PinNone, nil
	case "left":
		return PinLeft, nil
	case "right":
		return PinRight, nil
	default:
		return PinNone, fmt.Errorf("%w: got %q", ErrInvalidPinSide, s)
	}
}

// Record is one row of the dataset.
type Record map[string]any

// Renderer maps a cell's field value to display content.
type Renderer func(value any, row Record, rowIndex int) string

// Column describes one table column.
type Column struct {
	// Key addresses the field rendered by this column. Dotted keys descend
	// into nested records.
	Key string

	// Title is shown in the header. Defaults to Key.
	Title string

	// Width is the column width in units. For Fill columns it is the minimum.
	Width int

	// Pin anchors the column to an edge.
	Pin PinSide

	// Renderer optionally replaces the raw field value.
	Renderer Renderer

	// Hidden columns are excluded from every surface.
	Hidden bool

	// Fill columns share the container width left over by the others.
	Fill bool
}

// Header returns the title shown for the column.
func (c Column) Header() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Key
}

// Field extracts the value addressed by key from row. A dotted key such as
// "owner.name" walks nested records. Missing fields yield nil.
func Field(row Record, key string) any {
	if row == nil {
		return nil
	}
	if v, ok := row[key]; ok || !strings.Contains(key, ".") {
		return v
	}

	var cur any = row
	for _, part := range strings.Split(key, ".") {
		switch m := cur.(type) {
		case Record:
			cur = m[part]
		case map[string]any:
			cur = m[part]
		default:
			return nil
		}
	}
	return cur
}

// RowKeyFunc derives a stable identity for a record.
type RowKeyFunc func(row Record, index int) any

// RowKey is the row identity accessor: either a field name or a function.
type RowKey struct {
	Field string
	Func  RowKeyFunc
}

// FieldKey returns an accessor reading the named field.
func FieldKey(name string) RowKey {
	return RowKey{Field: name}
}

// FuncKey returns an accessor backed by fn.
func FuncKey(fn RowKeyFunc) RowKey {
	return RowKey{Func: fn}
}

// Of returns the identity of row in its string form. When the accessor is
// empty or yields nil, the positional index is used.
func (k RowKey) Of(row Record, index int) string {
	var v any
	switch {
	case k.Func != nil:
		v = k.Func(row, index)
	case k.Field != "":
		v = Field(row, k.Field)
	}
	if v == nil {
		return strconv.Itoa(index)
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
