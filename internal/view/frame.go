package view

import (
	"github.com/Iron-Ham/fruitfilter/internal/fruit"
)

// Frame is a rendered table: named columns and string rows in result
// order. It is the output boundary handed to every renderer.
type Frame struct {
	Columns []string   `yaml:"columns"`
	Rows    [][]string `yaml:"rows"`
}

// Len returns the number of rows.
func (f Frame) Len() int { return len(f.Rows) }

// IsEmpty reports whether the frame has no rows.
func (f Frame) IsEmpty() bool { return len(f.Rows) == 0 }

// Project renders the given columns of every row in table. A nil or empty
// column list projects all columns.
func Project(table *fruit.Table, cols []fruit.Column) Frame {
	if len(cols) == 0 {
		cols = fruit.Columns()
	}

	f := Frame{
		Columns: make([]string, len(cols)),
		Rows:    make([][]string, 0, table.Len()),
	}
	for i, c := range cols {
		f.Columns[i] = string(c)
	}
	for _, r := range table.Records() {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = r.Value(c)
		}
		f.Rows = append(f.Rows, row)
	}
	return f
}

// Project renders table using v's display columns.
func (v View) Project(table *fruit.Table) Frame {
	return Project(table, v.Columns)
}
