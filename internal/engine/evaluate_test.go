package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Iron-Ham/fruitfilter/internal/fruit"
)

var testViews = []ViewInput{
	{Key: "descriptions", Criteria: ViewCriteria{DateColumn: fruit.ColExpiry}},
	{Key: "logistics", Criteria: ViewCriteria{DateColumn: fruit.ColShipped}},
}

func TestEvaluate_NoSearch(t *testing.T) {
	tests := []struct {
		name   string
		search string
	}{
		{"empty", ""},
		{"whitespace", "   \t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Evaluate(demoTable(), Input{
				Search:     tt.search,
				Categories: map[fruit.Column]Selection{fruit.ColColour: {"red"}},
				Views:      testViews,
			})

			if out.Searched {
				t.Error("Searched = true, want false")
			}
			if out.Refining {
				t.Error("Refining = true, want false")
			}
			if !out.Stage2.IsEmpty() {
				t.Errorf("Stage2 = %v, want empty", names(out.Stage2))
			}
			for _, v := range out.Views {
				if !v.Table.IsEmpty() || v.HasBounds {
					t.Errorf("view %s should be empty without bounds", v.Key)
				}
			}
			// Stage 1 still reflects the category selections.
			if got := out.Stage1.Len(); got != 3 {
				t.Errorf("Stage1.Len() = %d, want 3", got)
			}
		})
	}
}

func TestEvaluate_DefaultRefinements(t *testing.T) {
	out := Evaluate(demoTable(), Input{
		Search:     " berry ",
		Categories: SelectAll(demoTable()),
		Views:      testViews,
	})

	if out.Search != "berry" {
		t.Errorf("Search = %q, want trimmed %q", out.Search, "berry")
	}
	if !out.Refining {
		t.Fatal("Refining = false, want true")
	}

	wantRefinements := map[fruit.Column]Selection{
		fruit.ColColour:   {"red"},
		fruit.ColHardness: {"soft"},
	}
	if diff := cmp.Diff(wantRefinements, out.Refinements); diff != "" {
		t.Errorf("Refinements mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(names(out.Stage1), names(out.Stage2)); diff != "" {
		t.Errorf("default refinements should keep stage 1 (-stage1 +stage2):\n%s", diff)
	}

	desc, ok := out.View("descriptions")
	if !ok {
		t.Fatal("descriptions view missing")
	}
	if !desc.HasBounds {
		t.Fatal("HasBounds = false, want true")
	}
	if !desc.Bounds.From.Equal(fruit.Day(2023, 3, 1)) || !desc.Bounds.To.Equal(fruit.Day(2023, 3, 11)) {
		t.Errorf("Bounds = %v..%v, want 2023-03-01..2023-03-11", desc.Bounds.From, desc.Bounds.To)
	}
	if desc.Table.Len() != 2 {
		t.Errorf("descriptions Len() = %d, want 2", desc.Table.Len())
	}

	if _, ok := out.View("pricing"); ok {
		t.Error("View(pricing) found, want missing")
	}
}

func TestEvaluate_ExplicitRefinements(t *testing.T) {
	out := Evaluate(demoTable(), Input{
		Search:     "e",
		Categories: SelectAll(demoTable()),
		Refinements: map[fruit.Column]Selection{
			fruit.ColColour: {"red"},
		},
		Views: testViews,
	})

	if diff := cmp.Diff([]string{"strawberry", "cherry", "raspberry"}, names(out.Stage2)); diff != "" {
		t.Errorf("Stage2 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Selection{"hard", "soft"}, out.Refinements[fruit.ColHardness]); diff != "" {
		t.Errorf("hardness refinement should default to the domain (-want +got):\n%s", diff)
	}
}

func TestEvaluate_NoMatches(t *testing.T) {
	out := Evaluate(demoTable(), Input{
		Search:     "kiwi",
		Categories: SelectAll(demoTable()),
		Views:      testViews,
	})

	if !out.Searched {
		t.Error("Searched = false, want true")
	}
	if out.Refining {
		t.Error("Refining = true, want false for an empty stage 1")
	}
	for _, col := range CategoryColumns {
		if len(out.Domain[col]) != 0 {
			t.Errorf("Domain[%s] = %v, want empty", col, out.Domain[col])
		}
	}
	if len(out.Views) != len(testViews) {
		t.Fatalf("len(Views) = %d, want %d", len(out.Views), len(testViews))
	}
	for _, v := range out.Views {
		if !v.Table.IsEmpty() {
			t.Errorf("view %s = %v, want empty", v.Key, names(v.Table))
		}
	}
}

func TestEvaluate_Citrus(t *testing.T) {
	out := Evaluate(demoTable(), Input{
		Search:     "e",
		Categories: SelectAll(demoTable()),
		Views: []ViewInput{
			{Key: "descriptions", Criteria: ViewCriteria{DateColumn: fruit.ColExpiry, Text: "citrus"}},
		},
	})

	desc, _ := out.View("descriptions")
	if diff := cmp.Diff([]string{"lemon"}, names(desc.Table)); diff != "" {
		t.Errorf("descriptions mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluate_Containment(t *testing.T) {
	searches := []string{"a", "e", "an", "berry", "r", "zz"}
	colourSets := []Selection{nil, {"red"}, {"green", "yellow"}, {"orange", "purple", "red"}}

	for seed := uint64(1); seed <= 8; seed++ {
		base, err := fruit.SeededProvider{Seed: seed, Rows: fruit.MaxRows}.Load()
		if err != nil {
			t.Fatalf("seed %d: Load() error = %v", seed, err)
		}

		for _, s := range searches {
			for _, colours := range colourSets {
				in := Input{
					Search:      s,
					Categories:  SelectAll(base),
					Refinements: map[fruit.Column]Selection{},
					Views: []ViewInput{
						{Key: "descriptions", Criteria: ViewCriteria{DateColumn: fruit.ColExpiry, Text: "fruit", SortByDate: true}},
						{Key: "logistics", Criteria: ViewCriteria{DateColumn: fruit.ColShipped}},
					},
				}
				if colours != nil {
					in.Refinements[fruit.ColColour] = colours
				}

				out := Evaluate(base, in)
				if !base.Contains(out.Stage1) {
					t.Errorf("seed %d search %q: stage 1 not within base", seed, s)
				}
				if !out.Stage1.Contains(out.Stage2) {
					t.Errorf("seed %d search %q: stage 2 not within stage 1", seed, s)
				}
				for _, v := range out.Views {
					if !out.Stage2.Contains(v.Table) {
						t.Errorf("seed %d search %q: view %s not within stage 2", seed, s, v.Key)
					}
				}

				again := Evaluate(base, in)
				if diff := cmp.Diff(names(out.Stage2), names(again.Stage2)); diff != "" {
					t.Errorf("seed %d search %q: Evaluate not deterministic:\n%s", seed, s, diff)
				}
			}
		}
	}
}

func TestSelectAll(t *testing.T) {
	want := map[fruit.Column]Selection{
		fruit.ColColour:   {"green", "red", "yellow"},
		fruit.ColHardness: {"hard", "soft"},
	}
	if diff := cmp.Diff(want, SelectAll(demoTable())); diff != "" {
		t.Errorf("SelectAll mismatch (-want +got):\n%s", diff)
	}
}
