package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kumar-97/kukkuta-Kendra/internal/common/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the api server collectors. A nil *Metrics is valid and
// records nothing, so callers never need to check whether metrics are enabled.
type Metrics struct {
	registry     *prometheus.Registry
	httpReqCnt   *prometheus.CounterVec
	httpDur      *prometheus.HistogramVec
	httpInfl     *prometheus.GaugeVec
	reportTrans  *prometheus.CounterVec
	bulkVerified *prometheus.CounterVec
	ordersPlaced prometheus.Counter
	photoUploads *prometheus.CounterVec
	authFailures *prometheus.CounterVec
}

func New(cfg config.MetricsConfig) *Metrics {
	ns := cfg.Namespace
	buckets := cfg.Buckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}

	r := prometheus.NewRegistry()
	r.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	r.MustRegister(collectors.NewGoCollector())

	m := &Metrics{
		registry:   r,
		httpReqCnt: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "http_requests_total"}, []string{"method", "route", "status"}),
		httpDur:    prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "http_request_duration_seconds", Buckets: buckets}, []string{"method", "route", "status"}),
		httpInfl:   prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: ns, Name: "http_requests_inflight"}, []string{"route"}),

		reportTrans:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "report_transitions_total", Help: "Production report lifecycle transitions by outcome."}, []string{"transition", "outcome"}),
		bulkVerified: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "farmers_bulk_verified_total", Help: "Farmer rows matched by bulk verification."}, []string{"verified"}),
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{Namespace: ns, Name: "feed_orders_placed_total"}),
		photoUploads: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "photo_uploads_total"}, []string{"outcome"}),
		authFailures: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "auth_failures_total"}, []string{"kind"}),
	}
	r.MustRegister(m.httpReqCnt, m.httpDur, m.httpInfl)
	r.MustRegister(m.reportTrans, m.bulkVerified, m.ordersPlaced, m.photoUploads, m.authFailures)
	return m
}

// ReportTransition counts an approve/reject/edit attempt; outcome is
// "ok" or the error kind that stopped it.
func (m *Metrics) ReportTransition(transition, outcome string) {
	if m == nil {
		return
	}
	m.reportTrans.WithLabelValues(transition, outcome).Inc()
}

func (m *Metrics) BulkVerified(verified bool, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.bulkVerified.WithLabelValues(strconv.FormatBool(verified)).Add(float64(n))
}

func (m *Metrics) OrderPlaced() {
	if m == nil {
		return
	}
	m.ordersPlaced.Inc()
}

func (m *Metrics) PhotoUpload(outcome string) {
	if m == nil {
		return
	}
	m.photoUploads.WithLabelValues(outcome).Inc()
}

func (m *Metrics) AuthFailure(kind string) {
	if m == nil {
		return
	}
	m.authFailures.WithLabelValues(kind).Inc()
}

func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpInfl.WithLabelValues(route).Inc()
		start := time.Now()
		c.Next()
		status := strconv.Itoa(c.Writer.Status())
		m.httpReqCnt.WithLabelValues(c.Request.Method, route, status).Inc()
		m.httpDur.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
		m.httpInfl.WithLabelValues(route).Dec()
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
