package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	PlansGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "first20_plans_generated_total",
			Help: "Number of practice plans generated",
		},
	)

	SessionsLogged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "first20_sessions_logged_total",
			Help: "Number of practice sessions logged",
		},
	)

	MinutesLogged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "first20_minutes_logged_total",
			Help: "Practice minutes logged across all users",
		},
	)

	BadgesAwarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "first20_badges_awarded_total",
			Help: "Badges awarded, by badge name",
		},
		[]string{"badge"},
	)

	SchedulesShifted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "first20_schedule_shifts_total",
			Help: "Number of schedule shift operations",
		},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			PlansGenerated,
			SessionsLogged,
			MinutesLogged,
			BadgesAwarded,
			SchedulesShifted,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
