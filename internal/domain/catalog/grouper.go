package catalog

import (
	"sort"
	"time"
)

// Group partitions items into sell-date buckets and orders each bucket by
// stored rank: ranked items ascending, unranked items after them in input
// order. Duplicate or non-positive ranks are left as stored here; they are
// only canonicalized when an edit session opens, so a plain reload never
// reshuffles what the operator sees.
func Group(items []Item, now time.Time) map[BucketKey][]Item {
	classifier := NewClassifier(now)

	buckets := make(map[BucketKey][]Item)
	for _, item := range items {
		key := classifier.Classify(item.SellDate)
		buckets[key] = append(buckets[key], item)
	}

	for key := range buckets {
		sortBucket(buckets[key])
	}

	return buckets
}

// sortBucket is stable so that the relative input order of unranked items is
// preserved; Repair depends on that order being deterministic.
func sortBucket(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		ri, rj := items[i].Rank, items[j].Rank
		if ri == nil {
			return false
		}
		if rj == nil {
			return true
		}
		return *ri < *rj
	})
}

// SortedKeys returns bucket keys in display order.
func SortedKeys(buckets map[BucketKey][]Item) []BucketKey {
	keys := make([]BucketKey, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Less(keys[j])
	})
	return keys
}
