package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

var (
	CartMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_mutations_total",
			Help: "Cart mutations by operation and outcome",
		},
		[]string{"op", "outcome"}, // add|remove, created|incremented|removed|noop
	)
	ListingRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_requests_total",
			Help: "Seller listing requests by resolved sort attribute and result",
		},
		[]string{"sort", "result"}, // result: ok|empty
	)
	EventsPublishFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_publish_failed_total",
			Help: "Domain events that could not be published",
		},
		[]string{"topic"},
	)
)

func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests, HTTPDuration, CartMutations, ListingRequests, EventsPublishFailed)
}

// Middleware records request counts and latency labelled by the route
// pattern, not the raw URL, to keep label cardinality bounded.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
