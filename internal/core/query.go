package core

import "sort"

// Filter narrows a listing by inclusive date bounds and exact category.
// Empty fields are absent; set fields combine with logical AND. Dates compare
// lexically, which is equivalent to chronological order for ISO dates.
type Filter struct {
	From     string
	To       string
	Category string
}

// IsZero reports whether no filter field is set.
func (f Filter) IsZero() bool {
	return f.From == "" && f.To == "" && f.Category == ""
}

func (f Filter) matches(e Expense) bool {
	if f.From != "" && e.Date < f.From {
		return false
	}
	if f.To != "" && e.Date > f.To {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	return true
}

// ApplyFilter returns the entries matching f, sorted by (date, id) descending
// so the most recently created entry on the newest date comes first. The
// input slice is never mutated; no match yields an empty slice, not an error.
func ApplyFilter(entries []Expense, f Filter) []Expense {
	out := make([]Expense, 0, len(entries))
	for _, e := range entries {
		if f.matches(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID > out[j].ID
	})
	return out
}
