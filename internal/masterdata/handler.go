// Package masterdata groups the reference-entity modules: products,
// categories and suppliers.
package masterdata

import (
	"github.com/go-chi/chi/v5"

	"github.com/bodega-app/bodega/internal/masterdata/categories"
	"github.com/bodega-app/bodega/internal/masterdata/products"
	"github.com/bodega-app/bodega/internal/masterdata/suppliers"
)

// Handler mounts the master data sub-handlers.
type Handler struct {
	Products   *products.Handler
	Categories *categories.Handler
	Suppliers  *suppliers.Handler
}

// NewHandler builds the aggregate handler.
func NewHandler(p *products.Handler, c *categories.Handler, s *suppliers.Handler) *Handler {
	return &Handler{Products: p, Categories: c, Suppliers: s}
}

// MountRoutes registers master data routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/products", h.Products.MountRoutes)
	r.Route("/categories", h.Categories.MountRoutes)
	r.Route("/suppliers", h.Suppliers.MountRoutes)
}
