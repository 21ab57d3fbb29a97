package dataset

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/rshade/vtable/internal/cell"
	"github.com/rshade/vtable/internal/layout"
)

// Column inference limits.
const (
	inferSample   = 200
	inferMinWidth = 4
	inferMaxWidth = 40
	inferPadding  = 2
)

// Column spec errors.
var (
	ErrInvalidColumnSpec = errors.New("invalid column spec")
	ErrUnknownFormat     = errors.New("unknown column format")
)

// ColumnSpec is the YAML form of a column.
type ColumnSpec struct {
	Key    string `yaml:"key"`
	Title  string `yaml:"title,omitempty"`
	Width  int    `yaml:"width"`
	Pin    string `yaml:"pin,omitempty"`
	Fill   bool   `yaml:"fill,omitempty"`
	Hidden bool   `yaml:"hidden,omitempty"`

	// Format is "", "raw", "upper", "lower" or a printf verb such as "%.2f".
	Format string `yaml:"format,omitempty"`
}

// ColumnFile is a column definition file.
type ColumnFile struct {
	RowKey  string       `yaml:"row_key,omitempty"`
	Columns []ColumnSpec `yaml:"columns"`
}

// LoadColumns reads a column definition file.
func LoadColumns(path string) (ColumnFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ColumnFile{}, fmt.Errorf("reading column file: %w", err)
	}
	var cf ColumnFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return ColumnFile{}, fmt.Errorf("parsing column file %s: %w", path, err)
	}
	if len(cf.Columns) == 0 {
		return ColumnFile{}, fmt.Errorf("%w: %s defines no columns", ErrInvalidColumnSpec, path)
	}
	return cf, nil
}

// Build converts specs into columns.
func Build(specs []ColumnSpec) ([]layout.Column, error) {
	cols := make([]layout.Column, 0, len(specs))
	seen := make(map[string]bool, len(specs))
	for i, s := range specs {
		col, err := s.Column()
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		if seen[col.Key] {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrInvalidColumnSpec, col.Key)
		}
		seen[col.Key] = true
		cols = append(cols, col)
	}
	return cols, nil
}

// Column converts one spec.
func (s ColumnSpec) Column() (layout.Column, error) {
	key := strings.TrimSpace(s.Key)
	if key == "" {
		return layout.Column{}, fmt.Errorf("%w: key is required", ErrInvalidColumnSpec)
	}
	if s.Width < 0 {
		return layout.Column{}, fmt.Errorf("%w: %q has negative width %d", ErrInvalidColumnSpec, key, s.Width)
	}
	pin, err := layout.ParsePinSide(s.Pin)
	if err != nil {
		return layout.Column{}, fmt.Errorf("%w: %q: %w", ErrInvalidColumnSpec, key, err)
	}
	renderer, err := formatRenderer(s.Format)
	if err != nil {
		return layout.Column{}, fmt.Errorf("%q: %w", key, err)
	}
	return layout.Column{
		Key:      key,
		Title:    s.Title,
		Width:    s.Width,
		Pin:      pin,
		Fill:     s.Fill,
		Hidden:   s.Hidden,
		Renderer: renderer,
	}, nil
}

func formatRenderer(format string) (layout.Renderer, error) {
	switch {
	case format == "":
		return nil, nil //nolint:nilnil // no renderer means the default formatting
	case format == "raw":
		return func(v any, _ layout.Record, _ int) string {
			if v == nil {
				return ""
			}
			return fmt.Sprint(v)
		}, nil
	case format == "upper":
		return func(v any, _ layout.Record, _ int) string {
			return strings.ToUpper(cell.Format(v))
		}, nil
	case format == "lower":
		return func(v any, _ layout.Record, _ int) string {
			return strings.ToLower(cell.Format(v))
		}, nil
	case strings.Contains(format, "%"):
		return func(v any, _ layout.Record, _ int) string {
			if v == nil {
				return ""
			}
			return fmt.Sprintf(format, v)
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// InferColumns derives columns from the union of keys in a sample of rows.
// Keys are ordered alphabetically with "id" first when present. Widths fit
// the widest sampled value.
func InferColumns(rows []layout.Record) []layout.Column {
	sample := rows[:min(len(rows), inferSample)]
	widths := make(map[string]int)
	for _, r := range sample {
		for k, v := range r {
			widths[k] = max(widths[k], runewidth.StringWidth(cell.Format(v)))
		}
	}

	keys := make([]string, 0, len(widths))
	for k := range widths {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if (keys[i] == "id") != (keys[j] == "id") {
			return keys[i] == "id"
		}
		return keys[i] < keys[j]
	})

	cols := make([]layout.Column, len(keys))
	for i, k := range keys {
		w := max(widths[k], runewidth.StringWidth(k)) + inferPadding
		cols[i] = layout.Column{Key: k, Width: min(max(w, inferMinWidth), inferMaxWidth)}
	}
	return cols
}
