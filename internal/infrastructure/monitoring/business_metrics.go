package monitoring

import (
	"github.com/freshdeli/console/internal/domain/catalog"
)

// RecordRankRepair counts one repair pass in which reassigned items needed a
// new rank.
func RecordRankRepair(reassigned int) {
	RankRepairsTotal.Inc()
	RankRepairItemsReassignedTotal.Add(float64(reassigned))
}

func RecordOrderStatusChange(from, to string) {
	OrderStatusChangesTotal.WithLabelValues(from, to).Inc()
}

// UpdateBucketCounts refreshes the per-bucket gauges from a grouped catalog.
// Exact-date buckets are aggregated under one label; the gauge tracks shape,
// not individual dates, which would churn label values daily.
func UpdateBucketCounts(buckets map[catalog.BucketKey][]catalog.Item) {
	counts := map[string]int{
		"exact_date": 0,
		"aged7":      0,
		"aged30":     0,
		"unassigned": 0,
	}

	total := 0
	for key, items := range buckets {
		total += len(items)
		switch key.Kind {
		case catalog.KindExactDate:
			counts["exact_date"] += len(items)
		case catalog.KindAged7:
			counts["aged7"] += len(items)
		case catalog.KindAged30:
			counts["aged30"] += len(items)
		default:
			counts["unassigned"] += len(items)
		}
	}

	CatalogItemsTotal.Set(float64(total))
	for kind, count := range counts {
		BucketItemsCount.WithLabelValues(kind).Set(float64(count))
	}
}

func RecordStorefrontCacheHit() {
	StorefrontCacheHitsTotal.Inc()
}

func RecordStorefrontCacheMiss() {
	StorefrontCacheMissesTotal.Inc()
}
