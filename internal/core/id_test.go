package core

import (
	"sort"
	"strings"
	"testing"
	"time"
)

func TestIDGeneratorFormat(t *testing.T) {
	fixed := time.Date(2025, 9, 7, 15, 30, 45, 123456000, time.UTC)
	g := NewIDGenerator(func() time.Time { return fixed })

	id := g.Next()
	if id != "exp_20250907_153045123456" {
		t.Fatalf("unexpected id %q", id)
	}
}

func TestIDGeneratorSameTickStaysUnique(t *testing.T) {
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	g := NewIDGenerator(func() time.Time { return fixed })

	seen := map[string]bool{}
	var ids []string
	for i := 0; i < 50; i++ {
		id := g.Next()
		if seen[id] {
			t.Fatalf("duplicate id %q at call %d", id, i)
		}
		seen[id] = true
		ids = append(ids, id)
	}

	// Frozen clock: all ids share the stamp, disambiguated by the counter,
	// and lexical order still matches creation order.
	if !sort.StringsAreSorted(ids) {
		t.Fatalf("ids not lexically ordered: %v", ids)
	}
}

func TestIDGeneratorLexicalChronologicalOrder(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	g := NewIDGenerator(func() time.Time {
		now = now.Add(time.Microsecond)
		return now
	})

	prev := g.Next()
	for i := 0; i < 100; i++ {
		id := g.Next()
		if !(id > prev) {
			t.Fatalf("id %q not greater than previous %q", id, prev)
		}
		if !strings.HasPrefix(id, "exp_") {
			t.Fatalf("id %q missing prefix", id)
		}
		prev = id
	}
}
