package web

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// requestCounter counts handled requests by route pattern, not raw path,
// to keep label cardinality bounded.
var requestCounter = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Number of handled HTTP requests by method, route and status.",
	},
	[]string{"method", "route", "status"},
)

// newMetricsMiddleware counts every handled request.
func newMetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		route := c.Route().Path
		if route == "" {
			route = "unmatched"
		}

		requestCounter.WithLabelValues(
			c.Method(),
			route,
			strconv.Itoa(c.Response().StatusCode()),
		).Inc()

		return err
	}
}
