package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/bodega-app/bodega/internal/masterdata"
	"github.com/bodega-app/bodega/internal/purchases"
	"github.com/bodega-app/bodega/internal/reports"
	"github.com/bodega-app/bodega/internal/sales"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	MasterDataHandler *masterdata.Handler
	PurchasesHandler  *purchases.Handler
	SalesHandler      *sales.Handler
	ReportsHandler    *reports.Handler
}

// NewRouter constructs the chi.Router with Bodega defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	params.MasterDataHandler.MountRoutes(r)
	r.Route("/purchases", params.PurchasesHandler.MountRoutes)
	r.Route("/sales", params.SalesHandler.MountRoutes)
	params.ReportsHandler.MountRoutes(r)

	return r
}
