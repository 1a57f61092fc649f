package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestMiddleware_RecordsRequests(t *testing.T) {
	m := New()
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/patients/:id", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/patients/PAT000001", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	metricsReq := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	metricsRec := httptest.NewRecorder()
	e.GET("/metrics", m.Handler())
	e.ServeHTTP(metricsRec, metricsReq)

	body := metricsRec.Body.String()
	if !strings.Contains(body, "his_http_requests_total") {
		t.Error("expected his_http_requests_total in metrics output")
	}
	// Route template, not the raw path, keeps cardinality bounded.
	if !strings.Contains(body, "/api/patients/:id") {
		t.Error("expected route template label in metrics output")
	}
	if strings.Contains(body, "PAT000001") {
		t.Error("raw path must not appear as a label value")
	}
}

func TestAuditWriteFailures_Exposed(t *testing.T) {
	m := New()
	m.AuditWriteFailures.Inc()

	e := echo.New()
	e.GET("/metrics", m.Handler())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "his_audit_write_failures_total 1") {
		t.Error("expected audit write failure counter to be 1")
	}
}
