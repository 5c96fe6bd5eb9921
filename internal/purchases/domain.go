// Package purchases implements the stock-increasing purchase write path.
package purchases

import (
	"fmt"
	"time"

	"github.com/bodega-app/bodega/internal/platform/httpx"
)

// Purchase is the document header.
type Purchase struct {
	ID           int64     `json:"id"`
	Number       string    `json:"number"`
	SupplierID   int64     `json:"supplier_id"`
	SupplierName string    `json:"supplier,omitempty"`
	PurchaseDate time.Time `json:"purchase_date"`
	Total        float64   `json:"total"`
	IsActive     bool      `json:"is_active"`
}

// Line is a purchase line item.
type Line struct {
	ID          int64   `json:"-"`
	PurchaseID  int64   `json:"-"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product,omitempty"`
	Qty         int     `json:"qty"`
	UnitPrice   float64 `json:"unit_price"`
}

// Subtotal is the line contribution to the header total.
func (l Line) Subtotal() float64 {
	return float64(l.Qty) * l.UnitPrice
}

// Detail is a header with its lines, the shape every read returns.
type Detail struct {
	Purchase
	Lines []Line `json:"lines"`
}

var (
	ErrNotFound         = fmt.Errorf("purchases: purchase: %w", httpx.ErrNotFound)
	ErrSupplierNotFound = fmt.Errorf("purchases: supplier: %w", httpx.ErrNotFound)
	ErrValidation       = fmt.Errorf("purchases: %w", httpx.ErrValidation)
)

// productMissing reports the offending product id so the caller can tell
// which line aborted the transaction.
func productMissing(id int64) error {
	return fmt.Errorf("%w: product %d not found", ErrValidation, id)
}
