package catalog

import "sort"

// Ranking maps item ID to display rank within a single bucket. It is
// canonical when the ranks form a permutation of 1..N for the bucket's N
// items. Ranks are never compared across buckets.
type Ranking map[int64]int

// Repair turns whatever ranks the store handed us into a canonical ranking.
// Items must already be in the relative order established by Group.
//
// An item is problematic when its stored rank is missing, non-positive,
// shared with another item, or larger than the bucket size. Every item
// sharing a duplicated rank counts as problematic, not just the later ones,
// so no arbitrary first-wins choice gets hidden. Problematic items are walked
// in input order and each takes the lowest rank not yet in use. Items whose
// rank was already valid keep it untouched; a repair must never reshuffle
// what did not need repairing.
//
// Total over any input: the walk consumes ranks monotonically and the search
// space is bounded by N, so the result is always a permutation of 1..N.
func Repair(items []Item) Ranking {
	n := len(items)

	provisional := make([]int, n)
	counts := make(map[int]int, n)
	for i, item := range items {
		rank := 0
		if item.Rank != nil {
			rank = *item.Rank
		}
		provisional[i] = rank
		counts[rank]++
	}

	valid := func(rank int) bool {
		return rank >= 1 && rank <= n && counts[rank] == 1
	}

	ranking := make(Ranking, n)
	used := make(map[int]bool, n)
	for i, item := range items {
		if valid(provisional[i]) {
			ranking[item.ID] = provisional[i]
			used[provisional[i]] = true
		}
	}

	next := 1
	for i, item := range items {
		if valid(provisional[i]) {
			continue
		}
		for used[next] {
			next++
		}
		ranking[item.ID] = next
		used[next] = true
	}

	return ranking
}

// Shift moves targetID to newRank and cascades every rank between the old and
// new position by one, returning a fresh map so the caller can keep the
// previous state for undo.
//
// Precondition: ranking is canonical and 1 <= newRank <= N. The caller
// constrains the input to valid ranks before getting here.
func Shift(ranking Ranking, targetID int64, newRank int) Ranking {
	old := ranking[targetID]

	shifted := make(Ranking, len(ranking))
	for id, rank := range ranking {
		switch {
		case id == targetID:
			shifted[id] = newRank
		case old > newRank && rank >= newRank && rank < old:
			shifted[id] = rank + 1
		case old < newRank && rank > old && rank <= newRank:
			shifted[id] = rank - 1
		default:
			shifted[id] = rank
		}
	}

	return shifted
}

// OrderedIDs returns the bucket's item IDs sorted by rank, the form the
// external store persists on save.
func (r Ranking) OrderedIDs() []int64 {
	ids := make([]int64, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return r[ids[i]] < r[ids[j]]
	})
	return ids
}

// IsCanonical reports whether the ranking is a bijection onto 1..N.
func (r Ranking) IsCanonical() bool {
	seen := make(map[int]bool, len(r))
	for _, rank := range r {
		if rank < 1 || rank > len(r) || seen[rank] {
			return false
		}
		seen[rank] = true
	}
	return true
}
