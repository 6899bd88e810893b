package fruit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func fruitNames(t *Table) []string {
	var names []string
	for _, r := range t.Records() {
		names = append(names, r.Fruit)
	}
	return names
}

func TestTable_Where(t *testing.T) {
	table := NewTable(DemoRecords())

	red := table.Where(func(r Record) bool { return r.Colour == "red" })

	want := []string{"strawberry", "cherry", "raspberry"}
	if diff := cmp.Diff(want, fruitNames(red)); diff != "" {
		t.Errorf("Where(red) mismatch (-want +got):\n%s", diff)
	}
	if table.Len() != 6 {
		t.Errorf("base table was modified: Len() = %d", table.Len())
	}
}

func TestTable_NewTableCopies(t *testing.T) {
	records := DemoRecords()
	table := NewTable(records)
	records[0].Fruit = "changed"

	if table.At(0).Fruit != "apple" {
		t.Errorf("NewTable should copy its input, got %q", table.At(0).Fruit)
	}

	out := table.Records()
	out[0].Fruit = "changed"
	if table.At(0).Fruit != "apple" {
		t.Errorf("Records should return a copy, got %q", table.At(0).Fruit)
	}
}

func TestTable_SortedBy(t *testing.T) {
	table := NewTable(DemoRecords())

	tests := []struct {
		col  Column
		want []string
	}{
		{ColExpiry, []string{"strawberry", "lemon", "banana", "raspberry", "cherry", "apple"}},
		{ColWeight, []string{"raspberry", "cherry", "strawberry", "lemon", "apple", "banana"}},
		{ColOrigin, []string{"cherry", "raspberry", "banana", "lemon", "apple", "strawberry"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.col), func(t *testing.T) {
			if diff := cmp.Diff(tt.want, fruitNames(table.SortedBy(tt.col))); diff != "" {
				t.Errorf("SortedBy(%s) mismatch (-want +got):\n%s", tt.col, diff)
			}
		})
	}

	if table.At(0).Fruit != "apple" {
		t.Error("SortedBy must not reorder the receiver")
	}
}

func TestTable_Distinct(t *testing.T) {
	table := NewTable(DemoRecords())

	if diff := cmp.Diff([]string{"green", "red", "yellow"}, table.Distinct(ColColour)); diff != "" {
		t.Errorf("Distinct(colour) mismatch (-want +got):\n%s", diff)
	}
	if got := Empty().Distinct(ColColour); len(got) != 0 {
		t.Errorf("Distinct on empty table = %v, want empty", got)
	}
}

func TestTable_DateBounds(t *testing.T) {
	table := NewTable(DemoRecords())

	lo, hi, ok := table.DateBounds(ColExpiry)
	if !ok {
		t.Fatal("DateBounds(expiry) not ok")
	}
	if !lo.Equal(Day(2023, 3, 1)) || !hi.Equal(Day(2023, 3, 31)) {
		t.Errorf("DateBounds(expiry) = %v..%v", lo, hi)
	}

	if _, _, ok := table.DateBounds(ColFruit); ok {
		t.Error("DateBounds on a non-date column should not be ok")
	}
	if _, _, ok := Empty().DateBounds(ColShipped); ok {
		t.Error("DateBounds on an empty table should not be ok")
	}
}

func TestTable_NilIsEmpty(t *testing.T) {
	var table *Table
	if table.Len() != 0 || !table.IsEmpty() || table.Records() != nil {
		t.Error("nil table should behave as empty")
	}
	if table.Where(func(Record) bool { return true }).Len() != 0 {
		t.Error("Where on nil table should be empty")
	}
}

func TestTable_Contains(t *testing.T) {
	table := NewTable(DemoRecords())
	sub := table.Where(func(r Record) bool { return r.Hardness == "hard" }).SortedBy(ColWeight)

	if !table.Contains(sub) {
		t.Error("table should contain its filtered, reordered subset")
	}
	if sub.Contains(table) {
		t.Error("subset should not contain the full table")
	}
	if !table.Contains(Empty()) {
		t.Error("every table contains the empty table")
	}
}
