package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler", "method", "status_code"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"handler", "method", "status_code"},
	)
)

var (
	CatalogItemsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_items_total",
			Help: "Total number of catalog items",
		},
	)

	BucketItemsCount = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_bucket_items",
			Help: "Number of items per sell-date bucket kind",
		},
		[]string{"bucket_kind"},
	)

	RankRepairsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_rank_repairs_total",
			Help: "Total number of rank repair passes",
		},
	)

	RankRepairItemsReassignedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_rank_repair_items_reassigned_total",
			Help: "Total number of items whose rank was reassigned during repair",
		},
	)

	RankShiftsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_rank_shifts_total",
			Help: "Total number of interactive rank shifts",
		},
	)

	ReorderSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_reorder_sessions_active",
			Help: "Number of currently open reorder sessions",
		},
	)

	ReorderSavesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_reorder_saves_total",
			Help: "Total number of saved reorder sessions",
		},
	)

	BulkMovesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_bulk_moves_total",
			Help: "Total number of bulk sell-date moves",
		},
	)

	BulkMovedItemsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_bulk_moved_items_total",
			Help: "Total number of items moved by bulk sell-date moves",
		},
	)

	StorefrontCacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_cache_hits_total",
			Help: "Total number of storefront catalog cache hits",
		},
	)

	StorefrontCacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_cache_misses_total",
			Help: "Total number of storefront catalog cache misses",
		},
	)

	OrderStatusChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_order_status_changes_total",
			Help: "Total number of delivery order status changes",
		},
		[]string{"from", "to"},
	)
)

var (
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"query_type", "table"},
	)

	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

var (
	RedisCommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_command_duration_seconds",
			Help:    "Duration of Redis commands in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"command"},
	)
)

func TimeHTTPRequest(handler, method string) func(statusCode string) {
	start := time.Now()
	return func(statusCode string) {
		duration := time.Since(start).Seconds()
		HTTPRequestDuration.WithLabelValues(handler, method, statusCode).Observe(duration)
		HTTPRequestsTotal.WithLabelValues(handler, method, statusCode).Inc()
	}
}

func TimeDBQuery(queryType, table string) func() {
	start := time.Now()
	return func() {
		duration := time.Since(start).Seconds()
		DBQueryDuration.WithLabelValues(queryType, table).Observe(duration)
	}
}

func TimeRedisCommand(command string) func() {
	start := time.Now()
	return func() {
		duration := time.Since(start).Seconds()
		RedisCommandDuration.WithLabelValues(command).Observe(duration)
	}
}
