package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkstash_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// FavoriteToggles counts favorite toggle operations by resulting state.
	FavoriteToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkstash_favorite_toggles_total",
		Help: "Total number of favorite toggles by resulting state",
	}, []string{"state"})

	// DuplicateSubmissions counts writes rejected by the in-flight guard.
	DuplicateSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkstash_duplicate_submissions_total",
		Help: "Total number of writes rejected while an identical one was in flight",
	}, []string{"operation"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the request-instrumentation handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
