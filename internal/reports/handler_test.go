package reports

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
	h := NewHandler(logger, NewService(&stubRepo{}, 10))
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func TestReportEndpointsRejectBadDates(t *testing.T) {
	router := newTestHandler(t)

	paths := []string{
		"/reports/most-sold",
		"/reports/purchases?startDate=2026-01-01",
		"/reports/sales?startDate=2026-01-01&endDate=bogus",
		"/reports/transactions?startDate=2026-02-01&endDate=2026-01-01",
		"/charts/sales",
	}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code, path)
		require.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json", path)
	}
}

func TestInventoryCSVDownload(t *testing.T) {
	router := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/reports/inventory?format=csv", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "inventory.csv")
	require.Contains(t, rec.Body.String(), "Product,Category,Stock")
}

func TestDashboardStatsEndpoint(t *testing.T) {
	router := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "product_count")
}
