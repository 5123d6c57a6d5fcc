package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpReqTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Count of HTTP requests"},
		[]string{"path", "method", "status"},
	)
	httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latency of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"},
	)
	bookingOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "booking_operations_total", Help: "Booking create/cancel outcomes"},
		[]string{"op", "outcome"},
	)
)

func init() { prometheus.MustRegister(httpReqTotal, httpLatency, bookingOps) }

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		httpReqTotal.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpLatency.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// CountBooking 业务计数，handler 在预约/取消后调用
func CountBooking(op string, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "rejected"
	}
	bookingOps.WithLabelValues(op, outcome).Inc()
}
