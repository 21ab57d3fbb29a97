package dataset

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Knetic/govaluate"

	"github.com/rshade/vtable/internal/cell"
	"github.com/rshade/vtable/internal/layout"
)

// ErrInvalidFilter wraps query and expression compile failures.
var ErrInvalidFilter = errors.New("invalid filter")

// Criteria selects records.
type Criteria struct {
	Query    string // case-insensitive substring, or a regex when UseRegex is set
	UseRegex bool
	Field    string // when set, apply Query only to this field
	Expr     string // govaluate expression, e.g. "age > 10 && name == 'Bob'"
}

// Empty reports whether the criteria match everything.
func (c Criteria) Empty() bool {
	return c.Query == "" && strings.TrimSpace(c.Expr) == ""
}

// Filter is a compiled Criteria.
type Filter struct {
	criteria Criteria
	query    string
	re       *regexp.Regexp
	expr     *govaluate.EvaluableExpression
}

// NewFilter compiles c.
func NewFilter(c Criteria) (*Filter, error) {
	f := &Filter{criteria: c, query: strings.ToLower(c.Query)}
	if c.UseRegex && c.Query != "" {
		re, err := regexp.Compile(c.Query)
		if err != nil {
			return nil, fmt.Errorf("%w: query: %w", ErrInvalidFilter, err)
		}
		f.re = re
	}
	if strings.TrimSpace(c.Expr) != "" {
		expr, err := govaluate.NewEvaluableExpression(c.Expr)
		if err != nil {
			return nil, fmt.Errorf("%w: expression: %w", ErrInvalidFilter, err)
		}
		f.expr = expr
	}
	return f, nil
}

// Criteria returns the source criteria.
func (f *Filter) Criteria() Criteria {
	return f.criteria
}

// Match reports whether row satisfies the filter. Expressions that fail to
// evaluate or do not yield a boolean do not match.
func (f *Filter) Match(row layout.Record) bool {
	if f.criteria.Query != "" && !f.matchQuery(row) {
		return false
	}
	if f.expr != nil {
		result, err := f.expr.Evaluate(params(row))
		if err != nil {
			return false
		}
		b, ok := result.(bool)
		if !ok || !b {
			return false
		}
	}
	return true
}

func (f *Filter) matchQuery(row layout.Record) bool {
	if f.criteria.Field != "" {
		return f.matchText(cell.Format(layout.Field(row, f.criteria.Field)))
	}
	for _, v := range row {
		if f.matchText(cell.Format(v)) {
			return true
		}
	}
	return false
}

func (f *Filter) matchText(text string) bool {
	if f.re != nil {
		return f.re.MatchString(text)
	}
	return strings.Contains(strings.ToLower(text), f.query)
}

// Apply returns the matching rows in their original order. The result shares
// record values with rows.
func (f *Filter) Apply(rows []layout.Record) []layout.Record {
	if f.criteria.Empty() {
		return rows
	}
	out := make([]layout.Record, 0, len(rows))
	for _, r := range rows {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// params exposes a record to govaluate, which only compares float64 numbers.
func params(row layout.Record) map[string]any {
	p := make(map[string]any, len(row))
	for k, v := range row {
		if n, ok := toFloat(v); ok {
			p[k] = n
			continue
		}
		p[k] = v
	}
	return p
}
