package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// RedisErrors counts Redis command failures by command name.
var RedisErrors = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "warbler_redis_errors_total",
		Help: "Total number of Redis command errors.",
	},
	[]string{"command"},
)

func init() {
	prometheus.MustRegister(RedisErrors)
}

// InitMetrics creates the fiberprometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	prom := fiberprometheus.New(serviceName)
	return prom
}

// MetricsMiddleware registers the /metrics endpoint and returns the
// request-instrumentation handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return prom.Middleware(c)
	}
}

// RegisterMetricsRoute exposes the Prometheus scrape endpoint on the app.
func RegisterMetricsRoute(prom *fiberprometheus.FiberPrometheus, app *fiber.App) {
	prom.RegisterAt(app, "/metrics")
}
