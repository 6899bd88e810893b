// Package internal contains integration tests that run the data providers,
// the filter engine, the views and the table renderer together.
package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Iron-Ham/fruitfilter/internal/engine"
	"github.com/Iron-Ham/fruitfilter/internal/fruit"
	"github.com/Iron-Ham/fruitfilter/internal/tui/renderer"
	"github.com/Iron-Ham/fruitfilter/internal/view"
)

// seeds drive the generated tables every property is checked against.
var seeds = []uint64{1, 7, 42, 1234, 99991}

// searches covers empty, single-character and longer patterns.
var searches = []string{"", "a", "e", "an", "berry", "zzz"}

func loadSeeded(t *testing.T, seed uint64) *fruit.Table {
	t.Helper()
	table, err := fruit.SeededProvider{Seed: seed, Rows: fruit.MaxRows}.Load()
	if err != nil {
		t.Fatalf("SeededProvider{Seed: %d}.Load() error = %v", seed, err)
	}
	return table
}

// viewInputs evaluates every default view with the given criteria template.
func viewInputs(text string, sortByDate bool) []engine.ViewInput {
	var inputs []engine.ViewInput
	for _, v := range view.Defaults() {
		inputs = append(inputs, engine.ViewInput{
			Key: v.Key,
			Criteria: engine.ViewCriteria{
				DateColumn: v.DateColumn,
				Text:       text,
				SortByDate: sortByDate,
			},
		})
	}
	return inputs
}

// TestCascadeContainment checks that every stage only ever narrows the
// previous one, across generated tables and searches.
func TestCascadeContainment(t *testing.T) {
	for _, seed := range seeds {
		base := loadSeeded(t, seed)

		for _, search := range searches {
			out := engine.Evaluate(base, engine.Input{
				Search:     search,
				Categories: engine.SelectAll(base),
				Views:      viewInputs("fruit", true),
			})

			if !base.Contains(out.Stage1) {
				t.Errorf("seed %d, search %q: stage 1 not contained in base", seed, search)
			}
			if !out.Stage1.Contains(out.Stage2) {
				t.Errorf("seed %d, search %q: stage 2 not contained in stage 1", seed, search)
			}
			for _, vo := range out.Views {
				if !out.Stage2.Contains(vo.Table) {
					t.Errorf("seed %d, search %q: view %s not contained in stage 2", seed, search, vo.Key)
				}
			}
			if !out.Searched && !out.Stage2.IsEmpty() {
				t.Errorf("seed %d: unsearched outcome has %d stage-2 rows", seed, out.Stage2.Len())
			}
		}
	}
}

// TestEvaluateDeterministic checks that the same input always yields the
// same frames.
func TestEvaluateDeterministic(t *testing.T) {
	for _, seed := range seeds {
		base := loadSeeded(t, seed)
		in := engine.Input{
			Search:     "e",
			Categories: engine.SelectAll(base),
			Views:      viewInputs("", true),
		}

		first := engine.Evaluate(base, in)
		second := engine.Evaluate(loadSeeded(t, seed), in)

		if diff := cmp.Diff(view.Project(first.Stage2, nil), view.Project(second.Stage2, nil)); diff != "" {
			t.Errorf("seed %d: stage 2 differs between runs (-first +second):\n%s", seed, diff)
		}
		for i := range first.Views {
			a := view.Project(first.Views[i].Table, nil)
			b := view.Project(second.Views[i].Table, nil)
			if diff := cmp.Diff(a, b); diff != "" {
				t.Errorf("seed %d: view %s differs between runs (-first +second):\n%s", seed, first.Views[i].Key, diff)
			}
		}
	}
}

// TestSearchIdempotent checks that searching a result again with the same
// criteria changes nothing.
func TestSearchIdempotent(t *testing.T) {
	for _, seed := range seeds {
		base := loadSeeded(t, seed)
		for _, search := range searches {
			c := engine.Criteria{Search: search, Categories: engine.SelectAll(base)}
			once := engine.Search(base, c)
			twice := engine.Search(once, c)
			if diff := cmp.Diff(view.Project(once, nil), view.Project(twice, nil)); diff != "" {
				t.Errorf("seed %d, search %q: second search changed the result:\n%s", seed, search, diff)
			}
		}
	}
}

// TestSelectionMonotonic checks that adding a colour to the selection never
// removes a row.
func TestSelectionMonotonic(t *testing.T) {
	for _, seed := range seeds {
		base := loadSeeded(t, seed)
		colours := base.Distinct(fruit.ColColour)

		var selected engine.Selection
		prev := fruit.Empty()
		for _, colour := range colours {
			selected = append(selected, colour)
			categories := engine.SelectAll(base)
			categories[fruit.ColColour] = append(engine.Selection(nil), selected...)

			got := engine.Search(base, engine.Criteria{Categories: categories})
			if !got.Contains(prev) {
				t.Errorf("seed %d: adding %q removed rows", seed, colour)
			}
			prev = got
		}
		if prev.Len() != base.Len() {
			t.Errorf("seed %d: every colour selected gives %d rows, want %d", seed, prev.Len(), base.Len())
		}
	}
}

// TestDefaultRangeKeepsBounds checks that a view without a date range keeps
// the rows at both ends of the stage-2 dates.
func TestDefaultRangeKeepsBounds(t *testing.T) {
	for _, seed := range seeds {
		base := loadSeeded(t, seed)
		out := engine.Evaluate(base, engine.Input{
			Search:     "a",
			Categories: engine.SelectAll(base),
			Views:      viewInputs("", false),
		})

		for _, vo := range out.Views {
			if vo.Table.Len() != out.Stage2.Len() {
				t.Errorf("seed %d, view %s: %d rows, want all %d stage-2 rows", seed, vo.Key, vo.Table.Len(), out.Stage2.Len())
			}
		}
	}
}

// TestFileProviderRoundTrip checks that a table written as YAML and loaded
// back through the file provider filters exactly like the original.
func TestFileProviderRoundTrip(t *testing.T) {
	base := loadSeeded(t, 42)

	data, err := fruit.EncodeYAML(base.Records())
	if err != nil {
		t.Fatalf("EncodeYAML() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "fruit.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing dataset: %v", err)
	}

	loaded, err := fruit.FileProvider{Path: path}.Load()
	if err != nil {
		t.Fatalf("FileProvider.Load() error = %v", err)
	}

	in := engine.Input{Search: "e", Categories: engine.SelectAll(base), Views: viewInputs("", true)}
	want := engine.Evaluate(base, in)
	got := engine.Evaluate(loaded, in)

	if diff := cmp.Diff(view.Project(want.Stage2, nil), view.Project(got.Stage2, nil)); diff != "" {
		t.Errorf("stage 2 mismatch after round trip (-want +got):\n%s", diff)
	}
}

// TestRenderViews draws every default view of the demo table and checks the
// frames reach the renderer intact.
func TestRenderViews(t *testing.T) {
	base, err := fruit.StaticProvider{}.Load()
	if err != nil {
		t.Fatal(err)
	}
	out := engine.Evaluate(base, engine.Input{
		Search:     "e",
		Categories: engine.SelectAll(base),
		Views:      viewInputs("citrus", false),
	})

	for _, v := range view.Defaults() {
		vo, ok := out.View(v.Key)
		if !ok {
			t.Fatalf("view %s not evaluated", v.Key)
		}
		frame := v.Project(vo.Table)
		rendered := renderer.Table(frame, renderer.Options{Plain: true})

		for _, col := range frame.Columns {
			if !strings.Contains(rendered, col) {
				t.Errorf("view %s: header %q missing:\n%s", v.Key, col, rendered)
			}
		}
		if !strings.Contains(rendered, "lemon") {
			t.Errorf("view %s: lemon row missing:\n%s", v.Key, rendered)
		}
		if strings.Contains(rendered, "apple") {
			t.Errorf("view %s: apple row should be filtered out:\n%s", v.Key, rendered)
		}
	}
}
