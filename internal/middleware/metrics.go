package middleware

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/valyala/fasthttp"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "taskpress_http_request_duration_seconds",
		Help:    "Duration of handled HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "taskpress_http_requests_total",
		Help: "Total number of HTTP requests served",
	}, []string{"method", "status"})
)

// Metrics records request counts and latency. Labels stay at method and
// status so path parameters cannot blow up the cardinality.
func Metrics(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		next(ctx)

		method := string(ctx.Method())
		httpRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(method, strconv.Itoa(ctx.Response.StatusCode())).Inc()
	}
}
