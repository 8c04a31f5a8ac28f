// Package selection is the reference owner of an ingredient selection: an
// ordered sequence of ids with duplicates allowed.
//
// Order records selection history only. Layout and aggregation depend on the
// per-id counts returned by [Count], never on the order.
package selection

import (
	"slices"

	"github.com/matzehuels/foodstack/pkg/catalog"
)

// Selection is an ordered sequence of ingredient ids.
type Selection []catalog.ID

// Of builds a selection from string ids.
func Of(ids ...string) Selection {
	s := make(Selection, len(ids))
	for i, id := range ids {
		s[i] = catalog.ID(id)
	}
	return s
}

// Add returns a new selection with id appended.
func (s Selection) Add(id catalog.ID) Selection {
	out := make(Selection, len(s), len(s)+1)
	copy(out, s)
	return append(out, id)
}

// RemoveOne returns a new selection without the first occurrence of id and
// whether an occurrence was found. Removing an absent id is a no-op.
func (s Selection) RemoveOne(id catalog.ID) (Selection, bool) {
	i := slices.Index(s, id)
	if i < 0 {
		return s, false
	}
	out := make(Selection, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...), true
}

// Count returns how many times id occurs.
func (s Selection) Count(id catalog.ID) int {
	n := 0
	for _, x := range s {
		if x == id {
			n++
		}
	}
	return n
}

// Counts returns the occurrence count of every distinct id.
func (s Selection) Counts() map[catalog.ID]int {
	return Count(s)
}

// Distinct returns the distinct ids in first-seen order.
func (s Selection) Distinct() []catalog.ID {
	var out []catalog.ID
	seen := make(map[catalog.ID]bool, len(s))
	for _, id := range s {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// IDs returns the selection as a plain slice.
func (s Selection) IDs() []catalog.ID { return []catalog.ID(s) }

// Count partitions ids into per-id occurrence counts.
func Count(ids []catalog.ID) map[catalog.ID]int {
	counts := make(map[catalog.ID]int, len(ids))
	for _, id := range ids {
		counts[id]++
	}
	return counts
}
