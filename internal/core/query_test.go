package core

import (
	"reflect"
	"testing"
)

func entry(id, date, category string) Expense {
	return Expense{ID: id, Date: date, Amount: 1, Category: category, Tags: []string{}}
}

func TestApplyFilterDateRange(t *testing.T) {
	entries := []Expense{
		entry("exp_1", "2024-01-01", "Food"),
		entry("exp_2", "2024-01-15", "Food"),
		entry("exp_3", "2024-02-01", "Food"),
	}

	got := ApplyFilter(entries, Filter{From: "2024-01-01", To: "2024-01-31"})
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Date != "2024-01-15" || got[1].Date != "2024-01-01" {
		t.Fatalf("wrong order: %q then %q", got[0].Date, got[1].Date)
	}
}

func TestApplyFilterCategory(t *testing.T) {
	entries := []Expense{
		entry("exp_1", "2024-01-01", "Food"),
		entry("exp_2", "2024-01-02", "Transport"),
	}

	got := ApplyFilter(entries, Filter{Category: "Transport"})
	if len(got) != 1 || got[0].ID != "exp_2" {
		t.Fatalf("unexpected result %v", got)
	}

	// Exact match only, no substring or case folding.
	if got := ApplyFilter(entries, Filter{Category: "food"}); len(got) != 0 {
		t.Fatalf("expected no match for 'food', got %v", got)
	}
}

func TestApplyFilterCombinesWithAnd(t *testing.T) {
	entries := []Expense{
		entry("exp_1", "2024-01-10", "Food"),
		entry("exp_2", "2024-01-10", "Transport"),
		entry("exp_3", "2024-03-10", "Food"),
	}

	got := ApplyFilter(entries, Filter{From: "2024-01-01", To: "2024-01-31", Category: "Food"})
	if len(got) != 1 || got[0].ID != "exp_1" {
		t.Fatalf("unexpected result %v", got)
	}
}

func TestApplyFilterNoFilterReturnsAllSorted(t *testing.T) {
	entries := []Expense{
		entry("exp_1", "2024-01-01", "Food"),
		entry("exp_3", "2024-02-01", "Food"),
		entry("exp_2", "2024-01-15", "Food"),
	}

	got := ApplyFilter(entries, Filter{})
	want := []string{"exp_3", "exp_2", "exp_1"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestApplyFilterTieBreakOnID(t *testing.T) {
	entries := []Expense{
		entry("exp_a", "2024-05-05", "Food"),
		entry("exp_b", "2024-05-05", "Food"),
	}

	got := ApplyFilter(entries, Filter{})
	if got[0].ID != "exp_b" || got[1].ID != "exp_a" {
		t.Fatalf("expected exp_b first, got %v then %v", got[0].ID, got[1].ID)
	}
}

func TestApplyFilterEmptyResultIsNotAnError(t *testing.T) {
	entries := []Expense{entry("exp_1", "2024-01-01", "Food")}
	got := ApplyFilter(entries, Filter{Category: "Missing"})
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestApplyFilterDoesNotMutateInput(t *testing.T) {
	entries := []Expense{
		entry("exp_1", "2024-01-01", "Food"),
		entry("exp_2", "2024-02-01", "Food"),
	}
	snapshot := make([]Expense, len(entries))
	copy(snapshot, entries)

	ApplyFilter(entries, Filter{})

	if !reflect.DeepEqual(entries, snapshot) {
		t.Fatalf("input slice was mutated: %v", entries)
	}
}
