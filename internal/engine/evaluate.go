package engine

import (
	"strings"

	"github.com/Iron-Ham/fruitfilter/internal/fruit"
)

// Input is the complete state of one interaction.
type Input struct {
	// Search is the raw search box text; surrounding space is ignored.
	Search string
	// Categories are the "to search" selections for stage 1.
	Categories map[fruit.Column]Selection
	// Refinements are the stage-2 selections. A category column without an
	// entry defaults to its whole refinement domain.
	Refinements map[fruit.Column]Selection
	// Views are evaluated in order against the stage-2 result.
	Views []ViewInput
}

// ViewInput names a stage-3 evaluation.
type ViewInput struct {
	Key      string
	Criteria ViewCriteria
}

// Outcome is everything a renderer needs for one interaction.
type Outcome struct {
	// Search is the trimmed search text.
	Search string
	// Searched is false when the search text is empty. Nothing but the
	// prompt is shown then, whatever the category selections are.
	Searched bool
	// Stage1 is the search result over the base table.
	Stage1 *fruit.Table
	// Domain lists the category values present in Stage1.
	Domain map[fruit.Column][]string
	// Refining is true when the refinement stage ran: a search was made and
	// Stage1 left some category values to choose from.
	Refining bool
	// Refinements are the stage-2 selections actually applied.
	Refinements map[fruit.Column]Selection
	// Stage2 is the refined result; empty when Refining is false.
	Stage2 *fruit.Table
	// Views holds the stage-3 result per view, in Input.Views order.
	Views []ViewOutcome
}

// ViewOutcome is the stage-3 result of one view.
type ViewOutcome struct {
	Key   string
	Table *fruit.Table
	// Bounds is the span of the view's date column in Stage2; HasBounds is
	// false when Stage2 is empty.
	Bounds    DateRange
	HasBounds bool
}

// Evaluate recomputes the whole cascade from the base table. Nothing is
// cached between calls.
func Evaluate(base *fruit.Table, in Input) Outcome {
	out := Outcome{
		Search:   strings.TrimSpace(in.Search),
		Stage2:   fruit.Empty(),
		Views:    make([]ViewOutcome, 0, len(in.Views)),
		Searched: strings.TrimSpace(in.Search) != "",
	}

	out.Stage1 = Search(base, Criteria{Search: out.Search, Categories: in.Categories})
	out.Domain = RefinementDomain(out.Stage1)
	out.Refining = out.Searched && len(out.Domain[CategoryColumns[0]]) > 0

	if out.Refining {
		out.Refinements = make(map[fruit.Column]Selection, len(CategoryColumns))
		for _, col := range CategoryColumns {
			if sel, ok := in.Refinements[col]; ok {
				out.Refinements[col] = sel
			} else {
				out.Refinements[col] = Selection(out.Domain[col])
			}
		}
		out.Stage2 = Refine(out.Stage1, Criteria{Search: out.Search, Categories: out.Refinements})
	}

	for _, v := range in.Views {
		vo := ViewOutcome{Key: v.Key}
		if lo, hi, ok := out.Stage2.DateBounds(v.Criteria.DateColumn); ok {
			vo.Bounds = DateRange{From: lo, To: hi}
			vo.HasBounds = true
		}
		vo.Table = RefineView(out.Stage2, v.Criteria)
		out.Views = append(out.Views, vo)
	}

	return out
}

// View returns the outcome for the view key, if it was evaluated.
func (o Outcome) View(key string) (ViewOutcome, bool) {
	for _, v := range o.Views {
		if v.Key == key {
			return v, true
		}
	}
	return ViewOutcome{}, false
}

// SelectAll returns a selection holding every value of each category
// column present in table, the default for the "to search" filters.
func SelectAll(table *fruit.Table) map[fruit.Column]Selection {
	all := make(map[fruit.Column]Selection, len(CategoryColumns))
	for _, col := range CategoryColumns {
		all[col] = Selection(table.Distinct(col))
	}
	return all
}
