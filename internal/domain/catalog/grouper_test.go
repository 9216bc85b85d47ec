package catalog

import (
	"testing"
)

func rankPtr(r int) *int {
	return &r
}

func TestGroupPartitionIsExhaustiveAndDisjoint(t *testing.T) {
	today := DateOf(testNow)
	items := []Item{
		{ID: 1, SellDate: datePtr(today)},
		{ID: 2, SellDate: datePtr(today.AddDays(-10))},
		{ID: 3, SellDate: datePtr(today.AddDays(-40))},
		{ID: 4},
		{ID: 5, SellDate: datePtr(today.AddDays(2))},
	}

	buckets := Group(items, testNow)

	seen := make(map[int64]int)
	total := 0
	for _, bucket := range buckets {
		for _, item := range bucket {
			seen[item.ID]++
			total++
		}
	}
	if total != len(items) {
		t.Fatalf("expected %d items across buckets, got %d", len(items), total)
	}
	for _, item := range items {
		if seen[item.ID] != 1 {
			t.Fatalf("item %d appears %d times", item.ID, seen[item.ID])
		}
	}
}

func TestGroupOrdersRankedBeforeUnranked(t *testing.T) {
	today := DateOf(testNow)
	items := []Item{
		{ID: 1, SellDate: datePtr(today), Rank: nil},
		{ID: 2, SellDate: datePtr(today), Rank: rankPtr(2)},
		{ID: 3, SellDate: datePtr(today), Rank: nil},
		{ID: 4, SellDate: datePtr(today), Rank: rankPtr(1)},
	}

	buckets := Group(items, testNow)
	bucket := buckets[ExactDateKey(today)]
	if len(bucket) != 4 {
		t.Fatalf("expected 4 items in bucket, got %d", len(bucket))
	}

	got := []int64{bucket[0].ID, bucket[1].ID, bucket[2].ID, bucket[3].ID}
	want := []int64{4, 2, 1, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("bucket order = %v, want %v", got, want)
		}
	}
}

func TestGroupKeepsDuplicateRanksInInputOrder(t *testing.T) {
	today := DateOf(testNow)
	items := []Item{
		{ID: 10, SellDate: datePtr(today), Rank: rankPtr(2)},
		{ID: 11, SellDate: datePtr(today), Rank: rankPtr(2)},
		{ID: 12, SellDate: datePtr(today), Rank: rankPtr(2)},
	}

	bucket := Group(items, testNow)[ExactDateKey(today)]
	for i, want := range []int64{10, 11, 12} {
		if bucket[i].ID != want {
			t.Fatalf("duplicate ranks reordered: position %d = %d, want %d", i, bucket[i].ID, want)
		}
	}
}

func TestGroupDoesNotMutateInput(t *testing.T) {
	today := DateOf(testNow)
	items := []Item{
		{ID: 1, SellDate: datePtr(today), Rank: rankPtr(2)},
		{ID: 2, SellDate: datePtr(today), Rank: rankPtr(1)},
	}

	Group(items, testNow)

	if items[0].ID != 1 || items[1].ID != 2 {
		t.Fatalf("input slice was reordered: %v, %v", items[0].ID, items[1].ID)
	}
}

func TestSortedKeysDisplayOrder(t *testing.T) {
	today := DateOf(testNow)
	items := []Item{
		{ID: 1},
		{ID: 2, SellDate: datePtr(today.AddDays(-40))},
		{ID: 3, SellDate: datePtr(today.AddDays(-10))},
		{ID: 4, SellDate: datePtr(today)},
		{ID: 5, SellDate: datePtr(today.AddDays(3))},
	}

	keys := SortedKeys(Group(items, testNow))
	want := []BucketKey{
		ExactDateKey(today.AddDays(3)),
		ExactDateKey(today),
		Aged7Key,
		Aged30Key,
		UnassignedKey,
	}
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(keys))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("key order[%d] = %v, want %v", i, keys[i], want[i])
		}
	}
}
