package fruit

import (
	"slices"
	"sort"
	"time"
)

// Table is an immutable, ordered sequence of records. Every operation that
// narrows or reorders a table returns a new one; the receiver is never
// modified. A nil *Table behaves as an empty table.
type Table struct {
	records []Record
}

// NewTable copies records into a new Table.
func NewTable(records []Record) *Table {
	return &Table{records: slices.Clone(records)}
}

// Empty returns a table with no rows.
func Empty() *Table {
	return &Table{}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// IsEmpty reports whether the table has no rows.
func (t *Table) IsEmpty() bool {
	return t.Len() == 0
}

// At returns the i-th row.
func (t *Table) At(i int) Record {
	return t.records[i]
}

// Records returns a copy of the rows in order.
func (t *Table) Records() []Record {
	if t == nil {
		return nil
	}
	return slices.Clone(t.records)
}

// Where returns the rows for which keep reports true, in their original order.
func (t *Table) Where(keep func(Record) bool) *Table {
	out := &Table{}
	for _, r := range t.all() {
		if keep(r) {
			out.records = append(out.records, r)
		}
	}
	return out
}

// SortedBy returns the rows stably sorted ascending by col. Date columns
// sort chronologically, the weight column numerically, everything else
// lexicographically.
func (t *Table) SortedBy(col Column) *Table {
	out := NewTable(t.all())
	sort.SliceStable(out.records, func(i, j int) bool {
		a, b := out.records[i], out.records[j]
		switch col.Kind() {
		case KindDate:
			da, _ := a.Date(col)
			db, _ := b.Date(col)
			return da.Before(db)
		case KindNumber:
			return a.Weight < b.Weight
		default:
			return a.Value(col) < b.Value(col)
		}
	})
	return out
}

// Distinct returns the sorted set of values present in col.
func (t *Table) Distinct(col Column) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, r := range t.all() {
		v := r.Value(col)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	slices.Sort(values)
	return values
}

// DateBounds returns the earliest and latest values of a date column.
// ok is false when the table is empty or col is not a date column.
func (t *Table) DateBounds(col Column) (lo, hi time.Time, ok bool) {
	if col.Kind() != KindDate {
		return time.Time{}, time.Time{}, false
	}
	for i, r := range t.all() {
		d, _ := r.Date(col)
		if i == 0 || d.Before(lo) {
			lo = d
		}
		if i == 0 || d.After(hi) {
			hi = d
		}
	}
	return lo, hi, t.Len() > 0
}

// Contains reports whether every row of sub is also a row of t, ignoring order.
// Duplicate rows in sub need as many matching rows in t.
func (t *Table) Contains(sub *Table) bool {
	used := make([]bool, t.Len())
	for _, r := range sub.all() {
		found := false
		for i, cand := range t.all() {
			if !used[i] && cand.Equal(r) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (t *Table) all() []Record {
	if t == nil {
		return nil
	}
	return t.records
}

// Equal reports whether two records hold the same values.
func (r Record) Equal(o Record) bool {
	return r.Fruit == o.Fruit && r.Colour == o.Colour && r.Hardness == o.Hardness &&
		r.Weight == o.Weight && r.Expiry.Equal(o.Expiry) && r.Description == o.Description &&
		r.Origin == o.Origin && r.Shipper == o.Shipper && r.Shipped.Equal(o.Shipped)
}
