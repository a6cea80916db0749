package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travel_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "travel_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	signupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travel_signups_total",
		Help: "Accounts created, by role",
	}, []string{"role"})

	loginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travel_logins_total",
		Help: "Login attempts by result",
	}, []string{"result"})

	ordersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travel_orders_placed_total",
		Help: "Orders placed, by order type",
	}, []string{"type"})

	orderStatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travel_order_status_changes_total",
		Help: "Order status transitions applied by admins",
	}, []string{"status"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travel_catalog_cache_lookups_total",
		Help: "Catalog list cache lookups by collection and result",
	}, []string{"collection", "result"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// ObserveSignup counts a created account.
func ObserveSignup(role string) {
	signupsTotal.WithLabelValues(role).Inc()
}

// ObserveLogin counts a login attempt; result is "success", "unknown_user" or "bad_password".
func ObserveLogin(result string) {
	loginsTotal.WithLabelValues(result).Inc()
}

// ObserveOrder counts a placed order.
func ObserveOrder(orderType string) {
	ordersTotal.WithLabelValues(orderType).Inc()
}

// ObserveOrderStatusChange counts an applied status transition.
func ObserveOrderStatusChange(status string) {
	orderStatusChanges.WithLabelValues(status).Inc()
}

// ObserveCacheLookup records a hit or miss on a catalog list cache.
func ObserveCacheLookup(collection string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(collection, result).Inc()
}
