package engine

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Iron-Ham/fruitfilter/internal/fruit"
)

func demoTable() *fruit.Table {
	return fruit.NewTable(fruit.DemoRecords())
}

func names(t *fruit.Table) []string {
	out := []string{}
	for _, r := range t.Records() {
		out = append(out, r.Fruit)
	}
	return out
}

func allCategories() map[fruit.Column]Selection {
	return SelectAll(demoTable())
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{
			name: "red only with empty search",
			criteria: Criteria{Categories: map[fruit.Column]Selection{
				fruit.ColColour:   {"red"},
				fruit.ColHardness: {"hard", "soft"},
			}},
			want: []string{"strawberry", "cherry", "raspberry"},
		},
		{
			name:     "name substring",
			criteria: Criteria{Search: "berry", Categories: allCategories()},
			want:     []string{"strawberry", "raspberry"},
		},
		{
			name:     "name search is case-sensitive",
			criteria: Criteria{Search: "Berry", Categories: allCategories()},
			want:     []string{},
		},
		{
			name:     "search and hardness",
			criteria: Criteria{Search: "a", Categories: map[fruit.Column]Selection{fruit.ColHardness: {"hard"}}},
			want:     []string{"apple"},
		},
		{
			name:     "no categories means unconstrained",
			criteria: Criteria{Search: "e"},
			want:     []string{"apple", "lemon", "strawberry", "cherry", "raspberry"},
		},
		{
			name:     "empty selection selects nothing",
			criteria: Criteria{Categories: map[fruit.Column]Selection{fruit.ColColour: {}}},
			want:     []string{},
		},
		{
			name:     "nil selection selects nothing",
			criteria: Criteria{Categories: map[fruit.Column]Selection{fruit.ColHardness: nil}},
			want:     []string{},
		},
		{
			name:     "unknown category value is ineffective",
			criteria: Criteria{Categories: map[fruit.Column]Selection{fruit.ColColour: {"blue", "green"}}},
			want:     []string{"apple"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(demoTable(), tt.criteria)
			if diff := cmp.Diff(tt.want, names(got)); diff != "" {
				t.Errorf("Search mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSearch_SixRowScenario(t *testing.T) {
	table := demoTable()
	if diff := cmp.Diff([]string{"green", "yellow", "yellow", "red", "red", "red"}, colours(table)); diff != "" {
		t.Fatalf("fixture colours changed (-want +got):\n%s", diff)
	}

	got := Search(table, Criteria{Search: "", Categories: map[fruit.Column]Selection{fruit.ColColour: {"red"}}})
	if got.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", got.Len())
	}
	for _, r := range got.Records() {
		if r.Colour != "red" {
			t.Errorf("got non-red row %q", r.Fruit)
		}
	}
}

func colours(t *fruit.Table) []string {
	var out []string
	for _, r := range t.Records() {
		out = append(out, r.Colour)
	}
	return out
}

func TestSearch_DoesNotMutateBase(t *testing.T) {
	base := demoTable()
	_ = Search(base, Criteria{Search: "apple"})
	_ = RefineView(base, ViewCriteria{DateColumn: fruit.ColExpiry, SortByDate: true})

	if diff := cmp.Diff(names(demoTable()), names(base)); diff != "" {
		t.Errorf("base table changed (-want +got):\n%s", diff)
	}
}

func TestSearch_Deterministic(t *testing.T) {
	c := Criteria{Search: "r", Categories: map[fruit.Column]Selection{fruit.ColHardness: {"soft"}}}
	first := Search(demoTable(), c)
	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(names(first), names(Search(demoTable(), c))); diff != "" {
			t.Fatalf("run %d differs (-first +got):\n%s", i, diff)
		}
	}
}

func TestSearch_Idempotent(t *testing.T) {
	c := Criteria{Search: "e", Categories: map[fruit.Column]Selection{
		fruit.ColColour:   {"red", "yellow", "purple"},
		fruit.ColHardness: {"soft"},
	}}
	first := Search(demoTable(), c)

	restricted := Criteria{Search: c.Search, Categories: map[fruit.Column]Selection{}}
	domain := RefinementDomain(first)
	for col, sel := range c.Categories {
		for _, v := range sel {
			if Selection(domain[col]).Has(v) {
				restricted.Categories[col] = append(restricted.Categories[col], v)
			}
		}
	}

	again := Search(first, restricted)
	if diff := cmp.Diff(names(first), names(again)); diff != "" {
		t.Errorf("re-applying criteria changed the result (-first +again):\n%s", diff)
	}
}

func TestSearch_Monotonic(t *testing.T) {
	all := []string{"green", "red", "yellow"}
	for mask := 0; mask < 1<<len(all); mask++ {
		var narrow Selection
		for i, v := range all {
			if mask&(1<<i) != 0 {
				narrow = append(narrow, v)
			}
		}
		for i, extra := range all {
			if mask&(1<<i) != 0 {
				continue
			}
			wide := append(Selection{extra}, narrow...)

			small := Search(demoTable(), Criteria{Categories: map[fruit.Column]Selection{fruit.ColColour: narrow}})
			large := Search(demoTable(), Criteria{Categories: map[fruit.Column]Selection{fruit.ColColour: wide}})
			if !large.Contains(small) {
				t.Errorf("widening %v with %q removed rows: %v -> %v", narrow, extra, names(small), names(large))
			}
		}
	}
}

func TestRefinementDomain(t *testing.T) {
	stage1 := Search(demoTable(), Criteria{Search: "rr"})
	domain := RefinementDomain(stage1)

	want := map[fruit.Column][]string{
		fruit.ColColour:   {"red"},
		fruit.ColHardness: {"soft"},
	}
	if diff := cmp.Diff(want, domain); diff != "" {
		t.Errorf("RefinementDomain mismatch (-want +got):\n%s", diff)
	}

	empty := RefinementDomain(fruit.Empty())
	for _, col := range CategoryColumns {
		if len(empty[col]) != 0 {
			t.Errorf("domain of empty stage 1 has %s values %v", col, empty[col])
		}
	}
}

func TestRefine(t *testing.T) {
	stage1 := Search(demoTable(), Criteria{Search: "e", Categories: allCategories()})

	tests := []struct {
		name       string
		selections map[fruit.Column]Selection
		want       []string
	}{
		{
			name:       "full domain keeps stage 1",
			selections: SelectAll(stage1),
			want:       names(stage1),
		},
		{
			name:       "narrow colour",
			selections: map[fruit.Column]Selection{fruit.ColColour: {"yellow"}, fruit.ColHardness: {"hard", "soft"}},
			want:       []string{"lemon"},
		},
		{
			name:       "value outside domain is ineffective",
			selections: map[fruit.Column]Selection{fruit.ColColour: {"yellow", "purple"}},
			want:       []string{"lemon"},
		},
		{
			name:       "only values outside domain select nothing",
			selections: map[fruit.Column]Selection{fruit.ColColour: {"purple"}},
			want:       []string{},
		},
		{
			name:       "empty selection selects nothing",
			selections: map[fruit.Column]Selection{fruit.ColHardness: {}},
			want:       []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Refine(stage1, Criteria{Search: "e", Categories: tt.selections})
			if diff := cmp.Diff(tt.want, names(got)); diff != "" {
				t.Errorf("Refine mismatch (-want +got):\n%s", diff)
			}
			if !stage1.Contains(got) {
				t.Error("stage 2 is not a subset of stage 1")
			}
		})
	}
}

func TestRefine_EmptyStage1(t *testing.T) {
	got := Refine(fruit.Empty(), Criteria{Categories: allCategories()})
	if !got.IsEmpty() {
		t.Errorf("Refine of empty stage 1 = %v, want empty", names(got))
	}
}

func TestRefineView_DefaultRangeIsInclusive(t *testing.T) {
	got := RefineView(demoTable(), ViewCriteria{DateColumn: fruit.ColExpiry})

	if got.Len() != 6 {
		t.Fatalf("Len() = %d, want all 6 rows", got.Len())
	}
	gotNames := names(got)
	for _, edge := range []string{"strawberry", "apple"} {
		if !Selection(gotNames).Has(edge) {
			t.Errorf("row %q at the date bound is missing", edge)
		}
	}
}

func TestRefineView_Range(t *testing.T) {
	tests := []struct {
		name string
		r    DateRange
		want []string
	}{
		{
			name: "inner range",
			r:    DateRange{From: fruit.Day(2023, 3, 10), To: fruit.Day(2023, 3, 21)},
			want: []string{"banana", "cherry", "raspberry"},
		},
		{
			name: "clamped below",
			r:    DateRange{From: fruit.Day(2022, 1, 1), To: fruit.Day(2023, 3, 2)},
			want: []string{"lemon", "strawberry"},
		},
		{
			name: "clamped above",
			r:    DateRange{From: fruit.Day(2023, 3, 21), To: fruit.Day(2024, 1, 1)},
			want: []string{"apple", "cherry"},
		},
		{
			name: "single day",
			r:    DateRange{From: fruit.Day(2023, 3, 11), To: fruit.Day(2023, 3, 11)},
			want: []string{"raspberry"},
		},
		{
			name: "outside the data",
			r:    DateRange{From: fruit.Day(2024, 1, 1), To: fruit.Day(2024, 2, 1)},
			want: []string{},
		},
		{
			name: "inverted",
			r:    DateRange{From: fruit.Day(2023, 3, 20), To: fruit.Day(2023, 3, 5)},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.r
			got := RefineView(demoTable(), ViewCriteria{DateColumn: fruit.ColExpiry, Range: &r})
			if diff := cmp.Diff(tt.want, names(got)); diff != "" {
				t.Errorf("RefineView mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRefineView_Text(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"citrus", []string{"lemon"}},
		{"Citrus", []string{}},
		{"", []string{"apple", "banana", "lemon", "strawberry", "cherry", "raspberry"}},
		{"ontario", []string{"apple", "strawberry"}},
		{"250", []string{"apple"}},
		{"2023-02-1", []string{"banana", "raspberry"}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := RefineView(demoTable(), ViewCriteria{DateColumn: fruit.ColShipped, Text: tt.text})
			if diff := cmp.Diff(tt.want, names(got)); diff != "" {
				t.Errorf("RefineView(text=%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestRefineView_Sort(t *testing.T) {
	got := RefineView(demoTable(), ViewCriteria{DateColumn: fruit.ColShipped, SortByDate: true})

	want := []string{"strawberry", "lemon", "banana", "raspberry", "cherry", "apple"}
	if diff := cmp.Diff(want, names(got)); diff != "" {
		t.Errorf("sorted view mismatch (-want +got):\n%s", diff)
	}

	var prev time.Time
	for _, r := range got.Records() {
		if r.Shipped.Before(prev) {
			t.Errorf("%s out of order", r.Fruit)
		}
		prev = r.Shipped
	}
}

func TestRefineView_EmptyInput(t *testing.T) {
	r := DateRange{From: fruit.Day(2023, 1, 1), To: fruit.Day(2023, 12, 31)}
	got := RefineView(fruit.Empty(), ViewCriteria{DateColumn: fruit.ColExpiry, Range: &r, Text: "x", SortByDate: true})
	if !got.IsEmpty() {
		t.Errorf("RefineView(empty) = %v, want empty", names(got))
	}
}

func TestDateRange_Clamp(t *testing.T) {
	lo, hi := fruit.Day(2023, 3, 1), fruit.Day(2023, 3, 31)
	r := DateRange{From: fruit.Day(2023, 2, 1), To: fruit.Day(2023, 4, 1)}.Clamp(lo, hi)

	if !r.From.Equal(lo) || !r.To.Equal(hi) {
		t.Errorf("Clamp = %v..%v, want %v..%v", r.From, r.To, lo, hi)
	}
	if !r.Includes(lo) || !r.Includes(hi) {
		t.Error("clamped range should include both bounds")
	}
}
