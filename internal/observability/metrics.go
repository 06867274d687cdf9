package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodgram_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "foodgram_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// CacheHits counts cache hits by key prefix.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodgram_cache_hits_total",
		Help: "Total number of cache hits by key prefix",
	}, []string{"prefix"})

	// CacheMisses counts cache misses by key prefix.
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodgram_cache_misses_total",
		Help: "Total number of cache misses by key prefix",
	}, []string{"prefix"})

	// RecipesWritten counts recipe write operations by kind (create, update, delete).
	RecipesWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodgram_recipes_written_total",
		Help: "Total number of recipe write operations by kind",
	}, []string{"kind"})

	// MembershipOps counts membership set operations by set and action.
	MembershipOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodgram_membership_ops_total",
		Help: "Total number of membership operations by set (favorite, cart, subscription) and action (add, remove)",
	}, []string{"set", "action"})

	// ShoppingListDownloads counts shopping list file downloads.
	ShoppingListDownloads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foodgram_shopping_list_downloads_total",
		Help: "Total number of shopping list downloads",
	})

	// ShoppingListLines records the number of aggregated lines per download.
	ShoppingListLines = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "foodgram_shopping_list_lines",
		Help:    "Number of aggregated ingredient lines per shopping list download",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
	})
)

// ObserveQuery records the latency of one database query.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// TrackQuery records query latency from call until the returned func runs.
// Repositories defer the result around their DB work.
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		ObserveQuery(operation, table, start)
	}
}
