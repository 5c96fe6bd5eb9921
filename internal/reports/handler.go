package reports

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bodega-app/bodega/internal/platform/httpx"
	"github.com/bodega-app/bodega/internal/reports/export"
)

// Handler serves the report, dashboard and chart endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds the Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers the read-only routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/inventory", h.inventory)
		r.Get("/low-stock", h.lowStock)
		r.Get("/most-sold", h.mostSold)
		r.Get("/purchases", h.purchaseMovements)
		r.Get("/sales", h.saleMovements)
		r.Get("/transactions", h.transactions)
	})
	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/stats", h.dashboardStats)
		r.Get("/latest-purchases", h.latestPurchases)
		r.Get("/low-stock", h.dashboardLowStock)
	})
	r.Route("/charts", func(r chi.Router) {
		r.Get("/sales", h.salesChart)
		r.Get("/stock", h.stockChart)
	})
}

func (h *Handler) inventory(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.Inventory(r.Context())
	if err != nil {
		h.logger.Error("inventory report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if r.URL.Query().Get("format") == "csv" {
		writeCSV(w, "inventory.csv", func(wr http.ResponseWriter) error {
			return export.WriteInventoryCSV(wr, rows)
		})
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.LowStock(r.Context())
	if err != nil {
		h.logger.Error("low stock report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) mostSold(w http.ResponseWriter, r *http.Request) {
	rng, ok := h.parseRange(w, r)
	if !ok {
		return
	}
	rows, err := h.service.MostSold(r.Context(), rng)
	if err != nil {
		h.logger.Error("most sold report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if r.URL.Query().Get("format") == "csv" {
		writeCSV(w, "most-sold.csv", func(wr http.ResponseWriter) error {
			return export.WriteMostSoldCSV(wr, rows)
		})
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) purchaseMovements(w http.ResponseWriter, r *http.Request) {
	rng, ok := h.parseRange(w, r)
	if !ok {
		return
	}
	rows, err := h.service.PurchaseMovements(r.Context(), rng)
	if err != nil {
		h.logger.Error("purchase movements report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) saleMovements(w http.ResponseWriter, r *http.Request) {
	rng, ok := h.parseRange(w, r)
	if !ok {
		return
	}
	rows, err := h.service.SaleMovements(r.Context(), rng)
	if err != nil {
		h.logger.Error("sale movements report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) transactions(w http.ResponseWriter, r *http.Request) {
	rng, ok := h.parseRange(w, r)
	if !ok {
		return
	}
	rows, err := h.service.Transactions(r.Context(), rng)
	if err != nil {
		h.logger.Error("transactions report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) dashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.DashboardStats(r.Context())
	if err != nil {
		h.logger.Error("dashboard stats", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

func (h *Handler) latestPurchases(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.LatestPurchases(r.Context())
	if err != nil {
		h.logger.Error("latest purchases", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) dashboardLowStock(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.DashboardLowStock(r.Context())
	if err != nil {
		h.logger.Error("dashboard low stock", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) salesChart(w http.ResponseWriter, r *http.Request) {
	rng, ok := h.parseRange(w, r)
	if !ok {
		return
	}
	points, err := h.service.SalesChart(r.Context(), rng)
	if err != nil {
		h.logger.Error("sales chart", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, points)
}

func (h *Handler) stockChart(w http.ResponseWriter, r *http.Request) {
	points, err := h.service.StockChart(r.Context())
	if err != nil {
		h.logger.Error("stock chart", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, points)
}

func (h *Handler) parseRange(w http.ResponseWriter, r *http.Request) (DateRange, bool) {
	rng, err := ParseDateRange(r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"))
	if err != nil {
		httpx.RespondError(w, err)
		return DateRange{}, false
	}
	return rng, true
}

func writeCSV(w http.ResponseWriter, filename string, write func(http.ResponseWriter) error) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := write(w); err != nil {
		// Headers are already gone; nothing useful left to send.
		return
	}
}
