package dataset

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/rshade/vtable/internal/layout"
)

// Sort orders.
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// sortPartsMax is the maximum number of colon-separated parts in a sort
// expression.
const sortPartsMax = 2

// Sort errors.
var (
	ErrEmptySortField   = errors.New("empty sort expression")
	ErrInvalidSortOrder = errors.New("invalid sort order")
	ErrInvalidSortField = errors.New("invalid sort field")
)

// Sorter sorts records by one of a fixed set of fields.
type Sorter struct {
	validFields map[string]bool
}

// NewSorter creates a sorter accepting the given field keys.
func NewSorter(fields ...string) *Sorter {
	s := &Sorter{validFields: make(map[string]bool, len(fields))}
	for _, f := range fields {
		s.validFields[f] = true
	}
	return s
}

// SorterForColumns accepts the keys of cols.
func SorterForColumns(cols []layout.Column) *Sorter {
	keys := make([]string, 0, len(cols))
	for _, c := range cols {
		keys = append(keys, c.Key)
	}
	return NewSorter(keys...)
}

// IsValidField reports whether field can be sorted on.
func (s *Sorter) IsValidField(field string) bool {
	return s.validFields[field]
}

// ValidFields returns the sortable fields in sorted order.
func (s *Sorter) ValidFields() []string {
	fields := make([]string, 0, len(s.validFields))
	for f := range s.validFields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Sort returns a stably sorted copy of rows. Missing values sort last in
// both orders.
func (s *Sorter) Sort(rows []layout.Record, field, order string) ([]layout.Record, error) {
	if !s.IsValidField(field) {
		return nil, fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, field,
			strings.Join(s.ValidFields(), ", "))
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return nil, fmt.Errorf("%w: %q (must be asc or desc)", ErrInvalidSortOrder, order)
	}

	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b layout.Record) int {
		va, vb := layout.Field(a, field), layout.Field(b, field)
		switch {
		case va == nil && vb == nil:
			return 0
		case va == nil:
			return 1
		case vb == nil:
			return -1
		}
		c := Compare(va, vb)
		if order == SortOrderDesc {
			return -c
		}
		return c
	})
	return sorted, nil
}

// Compare orders two field values. Numbers compare numerically, times
// chronologically, and everything else by its string form.
func Compare(a, b any) int {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}
	if ba, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ba == bb:
				return 0
			case !ba:
				return -1
			}
			return 1
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// ParseSortExpression parses a sort expression in "field:order" format.
// Supports:
//   - "field" - defaults to asc order
//   - "field:asc" - explicit ascending order
//   - "field:desc" - explicit descending order
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSortExpression(expr string) (field, order string, err error) {
	if strings.TrimSpace(expr) == "" {
		return "", "", ErrEmptySortField
	}

	parts := strings.Split(expr, ":")
	if len(parts) > sortPartsMax {
		return "", "", fmt.Errorf("invalid format: too many colons in %q", expr)
	}

	field = strings.TrimSpace(parts[0])
	if field == "" {
		return "", "", ErrEmptySortField
	}

	order = SortOrderAsc
	if len(parts) == sortPartsMax {
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: %q (must be asc or desc)", ErrInvalidSortOrder, order)
	}
	return field, order, nil
}
