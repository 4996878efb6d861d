package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kumar-97/kukkuta-Kendra/internal/common/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestMiddlewareRecordsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New(config.MetricsConfig{Namespace: "kk"})

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/v1/farmers/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/farmers/42", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	body := scrape(t, m)
	assert.Contains(t, body, `kk_http_requests_total{method="GET",route="/api/v1/farmers/:id",status="204"} 1`)
	assert.Contains(t, body, `route="unmatched",status="404"`)
}

func TestDomainCounters(t *testing.T) {
	m := New(config.MetricsConfig{Namespace: "kk"})
	m.ReportTransition("approve", "ok")
	m.ReportTransition("approve", "InvalidState")
	m.BulkVerified(true, 2)
	m.BulkVerified(false, 0)
	m.OrderPlaced()
	m.PhotoUpload("rejected")
	m.AuthFailure("Unauthenticated")

	body := scrape(t, m)
	assert.Contains(t, body, `kk_report_transitions_total{outcome="ok",transition="approve"} 1`)
	assert.Contains(t, body, `kk_report_transitions_total{outcome="InvalidState",transition="approve"} 1`)
	assert.Contains(t, body, `kk_farmers_bulk_verified_total{verified="true"} 2`)
	assert.NotContains(t, body, `verified="false"`)
	assert.Contains(t, body, `kk_feed_orders_placed_total 1`)
	assert.Contains(t, body, `kk_photo_uploads_total{outcome="rejected"} 1`)
	assert.Contains(t, body, `kk_auth_failures_total{kind="Unauthenticated"} 1`)
}

func TestNilMetricsIsNoop(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ReportTransition("reject", "ok")
		m.BulkVerified(true, 3)
		m.OrderPlaced()
		m.PhotoUpload("ok")
		m.AuthFailure("x")
	})

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, "pong", w.Body.String())
}
