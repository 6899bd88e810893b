package engine

import (
	"strings"

	"github.com/Iron-Ham/fruitfilter/internal/fruit"
)

// Search is stage 1: rows whose name contains c.Search and whose category
// values are all selected.
func Search(table *fruit.Table, c Criteria) *fruit.Table {
	return table.Where(func(r fruit.Record) bool {
		if !strings.Contains(r.Fruit, c.Search) {
			return false
		}
		for col, sel := range c.Categories {
			if !sel.Has(r.Value(col)) {
				return false
			}
		}
		return true
	})
}

// RefinementDomain returns, per category column, the values present in a
// stage-1 result. Every list is empty when stage1 is.
func RefinementDomain(stage1 *fruit.Table) map[fruit.Column][]string {
	domain := make(map[fruit.Column][]string, len(CategoryColumns))
	for _, col := range CategoryColumns {
		domain[col] = stage1.Distinct(col)
	}
	return domain
}

// Refine is stage 2: c is applied to the stage-1 result with each category
// selection intersected with the values actually present there. Values
// outside that domain select nothing.
func Refine(stage1 *fruit.Table, c Criteria) *fruit.Table {
	domain := RefinementDomain(stage1)
	narrowed := Criteria{Search: c.Search, Categories: make(map[fruit.Column]Selection, len(c.Categories))}
	for col, sel := range c.Categories {
		var keep Selection
		for _, v := range sel {
			if Selection(domain[col]).Has(v) {
				keep = append(keep, v)
			}
		}
		narrowed.Categories[col] = keep
	}
	return Search(stage1, narrowed)
}

// RefineView is stage 3: the stage-2 result restricted to the clamped date
// range, then to rows containing vc.Text, then optionally sorted by date.
func RefineView(stage2 *fruit.Table, vc ViewCriteria) *fruit.Table {
	lo, hi, ok := stage2.DateBounds(vc.DateColumn)
	if !ok {
		return fruit.Empty()
	}

	span := DateRange{From: lo, To: hi}
	if vc.Range != nil {
		span = vc.Range.Clamp(lo, hi)
	}

	out := stage2.Where(func(r fruit.Record) bool {
		d, _ := r.Date(vc.DateColumn)
		return span.Includes(d) && containsText(r, vc.Text)
	})
	if vc.SortByDate {
		out = out.SortedBy(vc.DateColumn)
	}
	return out
}

func containsText(r fruit.Record, text string) bool {
	if text == "" {
		return true
	}
	for _, f := range r.Fields() {
		if strings.Contains(f, text) {
			return true
		}
	}
	return false
}
