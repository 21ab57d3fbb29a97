package dataset

import (
	"github.com/rshade/vtable/internal/cell"
	"github.com/rshade/vtable/internal/layout"
)

// DemoRows is the size of the default demonstration dataset.
const DemoRows = 10000

// Demo generates n demonstration records: {id: i+1, spec: "abcdef",
// name: "Bob", age: 12}.
func Demo(n int) []layout.Record {
	rows := make([]layout.Record, max(n, 0))
	for i := range rows {
		rows[i] = layout.Record{
			"id":   i + 1,
			"spec": "abcdef",
			"name": "Bob",
			"age":  12,
		}
	}
	return rows
}

// DemoColumns returns the demonstration columns in terminal cells: a pinned
// left "FixedLeft" column, Name, Age and a pinned right "Action" column that
// renders the age.
func DemoColumns() []layout.Column {
	return []layout.Column{
		{Key: "spec", Title: "FixedLeft", Width: 14, Pin: layout.PinLeft},
		{Key: "name", Title: "Name", Width: 14},
		{Key: "age", Title: "Age", Width: 8},
		{
			Key:   "action",
			Title: "Action",
			Width: 14,
			Pin:   layout.PinRight,
			Renderer: func(_ any, row layout.Record, _ int) string {
				return cell.Format(row["age"])
			},
		},
	}
}
