package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whisperconnect_http_requests_total",
			Help: "Total number of HTTP requests processed by the matchmaking service.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "whisperconnect_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	wsActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "whisperconnect_ws_active_connections",
			Help: "Number of active websocket connections.",
		},
	)
	wsEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whisperconnect_ws_events_total",
			Help: "Total number of websocket events.",
		},
		[]string{"event"},
	)
	queueDepth = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "whisperconnect_queue_depth",
			Help: "Users currently waiting for a partner, by mood.",
		},
		[]string{"mood"},
	)
	matchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whisperconnect_matches_total",
			Help: "Total number of sessions created, by mood.",
		},
		[]string{"mood"},
	)
	sessionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "whisperconnect_session_duration_seconds",
			Help:    "Duration of ended call sessions in seconds.",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800, 3600},
		},
	)
	amqpPublishErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "whisperconnect_amqp_publish_errors_total",
			Help: "Total number of AMQP publish errors.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		wsActiveConnections,
		wsEventsTotal,
		queueDepth,
		matchesTotal,
		sessionDuration,
		amqpPublishErrorsTotal,
	)
}

func HTTPMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()

		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func IncWSActive() {
	wsActiveConnections.Inc()
}

func DecWSActive() {
	wsActiveConnections.Dec()
}

func IncWSEvent(event string) {
	wsEventsTotal.WithLabelValues(event).Inc()
}

func SetQueueDepth(mood string, depth int) {
	queueDepth.WithLabelValues(mood).Set(float64(depth))
}

func IncMatchCreated(mood string) {
	matchesTotal.WithLabelValues(mood).Inc()
}

func ObserveSessionDuration(seconds float64) {
	sessionDuration.Observe(seconds)
}

func IncAMQPPublishError() {
	amqpPublishErrorsTotal.Inc()
}
