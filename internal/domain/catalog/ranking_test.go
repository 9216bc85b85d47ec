package catalog

import (
	"math/rand"
	"testing"
)

func TestRepairKeepsValidPermutationUnchanged(t *testing.T) {
	items := []Item{
		{ID: 1, Rank: rankPtr(1)},
		{ID: 2, Rank: rankPtr(2)},
		{ID: 3, Rank: rankPtr(3)},
	}

	ranking := Repair(items)
	for _, item := range items {
		if ranking[item.ID] != *item.Rank {
			t.Fatalf("valid rank reshuffled: item %d got %d, had %d", item.ID, ranking[item.ID], *item.Rank)
		}
	}
}

func TestRepairDuplicatesAllProblematic(t *testing.T) {
	// A(2), B(2), C(nil): both duplicate holders are reassigned along with C,
	// in input order, so A->1 B->2 C->3.
	items := []Item{
		{ID: 1, Rank: rankPtr(2)}, // A
		{ID: 2, Rank: rankPtr(2)}, // B
		{ID: 3},                   // C
	}

	ranking := Repair(items)
	want := Ranking{1: 1, 2: 2, 3: 3}
	for id, rank := range want {
		if ranking[id] != rank {
			t.Fatalf("ranking = %v, want %v", ranking, want)
		}
	}
	if !ranking.IsCanonical() {
		t.Fatalf("repair result not canonical: %v", ranking)
	}
}

func TestRepairFillsAroundKeptRanks(t *testing.T) {
	// Item 2 keeps its valid rank 2; the others take the lowest free ranks in
	// input order.
	items := []Item{
		{ID: 1, Rank: rankPtr(0)},
		{ID: 2, Rank: rankPtr(2)},
		{ID: 3},
		{ID: 4},
	}

	ranking := Repair(items)
	if ranking[2] != 2 {
		t.Fatalf("valid rank not kept: %v", ranking)
	}
	want := Ranking{1: 1, 2: 2, 3: 3, 4: 4}
	for id, rank := range want {
		if ranking[id] != rank {
			t.Fatalf("ranking = %v, want %v", ranking, want)
		}
	}
}

func TestRepairOversizedRankIsReassigned(t *testing.T) {
	// A unique rank beyond the bucket size cannot survive: the result must be
	// a permutation of 1..N.
	items := []Item{
		{ID: 1, Rank: rankPtr(7)},
		{ID: 2, Rank: rankPtr(1)},
	}

	ranking := Repair(items)
	if !ranking.IsCanonical() {
		t.Fatalf("repair result not canonical: %v", ranking)
	}
	if ranking[2] != 1 {
		t.Fatalf("valid rank 1 reshuffled: %v", ranking)
	}
	if ranking[1] != 2 {
		t.Fatalf("oversized rank should take lowest free rank, got %v", ranking)
	}
}

func TestRepairTotalOverArbitraryInput(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(12)
		items := make([]Item, n)
		for i := range items {
			items[i].ID = int64(i + 1)
			switch rng.Intn(3) {
			case 0:
				// missing
			case 1:
				items[i].Rank = rankPtr(rng.Intn(n + 3))
			case 2:
				items[i].Rank = rankPtr(1 + rng.Intn(n))
			}
		}

		ranking := Repair(items)
		if len(ranking) != n {
			t.Fatalf("trial %d: %d ranks for %d items", trial, len(ranking), n)
		}
		if !ranking.IsCanonical() {
			t.Fatalf("trial %d: not canonical: %v", trial, ranking)
		}
	}
}

func TestShiftTowardFront(t *testing.T) {
	ranking := Ranking{1: 1, 2: 2, 3: 3, 4: 4}

	shifted := Shift(ranking, 4, 2)
	want := Ranking{1: 1, 2: 3, 3: 4, 4: 2}
	for id, rank := range want {
		if shifted[id] != rank {
			t.Fatalf("shift(D,2) = %v, want %v", shifted, want)
		}
	}
}

func TestShiftTowardBack(t *testing.T) {
	ranking := Ranking{1: 1, 2: 2, 3: 3}

	shifted := Shift(ranking, 1, 3)
	want := Ranking{1: 3, 2: 1, 3: 2}
	for id, rank := range want {
		if shifted[id] != rank {
			t.Fatalf("shift(A,3) = %v, want %v", shifted, want)
		}
	}
}

func TestShiftSameRankIsNoOp(t *testing.T) {
	ranking := Ranking{1: 1, 2: 2, 3: 3}

	shifted := Shift(ranking, 2, 2)
	for id, rank := range ranking {
		if shifted[id] != rank {
			t.Fatalf("no-op shift changed ranking: %v", shifted)
		}
	}
}

func TestShiftReturnsNewMap(t *testing.T) {
	ranking := Ranking{1: 1, 2: 2}

	shifted := Shift(ranking, 1, 2)
	if ranking[1] != 1 || ranking[2] != 2 {
		t.Fatalf("shift mutated its input: %v", ranking)
	}
	if shifted[1] != 2 || shifted[2] != 1 {
		t.Fatalf("unexpected shift result: %v", shifted)
	}
}

func TestShiftInvariantAndWindow(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	for trial := 0; trial < 200; trial++ {
		n := 2 + rng.Intn(10)
		ranking := make(Ranking, n)
		perm := rng.Perm(n)
		for i := 0; i < n; i++ {
			ranking[int64(i+1)] = perm[i] + 1
		}

		targetID := int64(1 + rng.Intn(n))
		newRank := 1 + rng.Intn(n)
		old := ranking[targetID]

		shifted := Shift(ranking, targetID, newRank)

		if !shifted.IsCanonical() {
			t.Fatalf("trial %d: shift broke canonicality: %v", trial, shifted)
		}
		if shifted[targetID] != newRank {
			t.Fatalf("trial %d: target rank = %d, want %d", trial, shifted[targetID], newRank)
		}

		lo, hi := old, newRank
		if lo > hi {
			lo, hi = hi, lo
		}
		for id, rank := range ranking {
			if id == targetID {
				continue
			}
			if rank < lo || rank > hi {
				if shifted[id] != rank {
					t.Fatalf("trial %d: item %d outside window changed %d -> %d", trial, id, rank, shifted[id])
				}
			}
		}

		// Applying the inverse move restores the original ranking.
		restored := Shift(shifted, targetID, old)
		for id, rank := range ranking {
			if restored[id] != rank {
				t.Fatalf("trial %d: inverse shift did not restore item %d", trial, id)
			}
		}
	}
}

func TestOrderedIDs(t *testing.T) {
	ranking := Ranking{7: 2, 8: 3, 9: 1}

	ids := ranking.OrderedIDs()
	want := []int64{9, 7, 8}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ordered ids = %v, want %v", ids, want)
		}
	}
}
