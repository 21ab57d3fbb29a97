package cell

import "sort"

// FormState holds in-progress edit values keyed by row key and field.
// It is the object exposed to hosts through FormRef; the engine never
// interprets the values.
type FormState struct {
	values map[string]map[string]any
}

// NewFormState creates an empty form state.
func NewFormState() *FormState {
	return &FormState{values: map[string]map[string]any{}}
}

// Set stores value for field of the row identified by rowKey.
func (f *FormState) Set(rowKey, field string, value any) {
	row, ok := f.values[rowKey]
	if !ok {
		row = map[string]any{}
		f.values[rowKey] = row
	}
	row[field] = value
}

// Get returns the stored value for field of rowKey.
func (f *FormState) Get(rowKey, field string) (any, bool) {
	row, ok := f.values[rowKey]
	if !ok {
		return nil, false
	}
	v, ok := row[field]
	return v, ok
}

// Rows returns the keys of rows holding values, sorted.
func (f *FormState) Rows() []string {
	keys := make([]string, 0, len(f.values))
	for k := range f.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Reset drops the values of rowKey, or of every row when rowKey is empty.
func (f *FormState) Reset(rowKey string) {
	if rowKey == "" {
		clear(f.values)
		return
	}
	delete(f.values, rowKey)
}

// FormRef is the handle a host passes in to receive the internal form state.
type FormRef struct {
	Form *FormState
}
