package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/JohnSili/multimodal-demo/pkg/metrics"
	"github.com/JohnSili/multimodal-demo/pkg/middleware"
)

func TestRequestLoggerCountsByRoute(t *testing.T) {
	reg := metrics.NewRegistry()
	e := echo.New()
	e.Use(middleware.RequestLogger(reg))
	e.GET("/items/:id", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/boom", func(c echo.Context) error { return errors.New("boom") })

	for _, path := range []string{"/items/1", "/items/2", "/boom"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	}

	snap := reg.SnapshotJSON()
	require.Equal(t, int64(2), snap["http_requests_total{method=GET,path=/items/:id,status=2xx}"])
	require.Equal(t, int64(1), snap["http_requests_total{method=GET,path=/boom,status=5xx}"])
	require.Equal(t, int64(1), snap["http_requests_errors_total{method=GET,path=/boom,status=5xx}"])
}

func TestRequestLoggerKeepsIncomingRequestID(t *testing.T) {
	e := echo.New()
	e.Use(middleware.RequestLogger(nil))
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "abc-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, "abc-123", rec.Header().Get(echo.HeaderXRequestID))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequestLoggerCountsClientErrorsOnly(t *testing.T) {
	reg := metrics.NewRegistry()
	e := echo.New()
	e.Use(middleware.RequestLogger(reg))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var requests, failures int64
	for key, v := range reg.SnapshotJSON() {
		switch {
		case strings.HasPrefix(key, metrics.HTTPRequests+"{") && strings.Contains(key, "status=4xx"):
			requests += v
		case strings.HasPrefix(key, metrics.HTTPErrors+"{"):
			failures += v
		}
	}
	require.Equal(t, int64(1), requests)
	require.Zero(t, failures)
}
