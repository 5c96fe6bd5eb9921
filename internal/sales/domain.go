// Package sales implements the stock-decreasing sale write path.
package sales

import (
	"fmt"
	"time"

	"github.com/bodega-app/bodega/internal/platform/httpx"
)

// PaymentStatus tracks whether a sale has been collected.
type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "PAID"
	PaymentUnpaid PaymentStatus = "UNPAID"
)

// Valid reports whether s is one of the known statuses.
func (s PaymentStatus) Valid() bool {
	return s == PaymentPaid || s == PaymentUnpaid
}

// Sale is the document header.
type Sale struct {
	ID            int64         `json:"id"`
	Number        string        `json:"number"`
	SaleDate      time.Time     `json:"sale_date"`
	Total         float64       `json:"total"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	IsActive      bool          `json:"is_active"`
}

// Line is a sale line item.
type Line struct {
	ID          int64   `json:"-"`
	SaleID      int64   `json:"-"`
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
	Sale
	Lines []Line `json:"lines"`
}

var (
	ErrNotFound   = fmt.Errorf("sales: sale: %w", httpx.ErrNotFound)
	ErrValidation = fmt.Errorf("sales: %w", httpx.ErrValidation)

	// ErrPaid guards paid sales against modification and deletion.
	ErrPaid = fmt.Errorf("sales: sale is paid: %w", httpx.ErrConflict)
)

// insufficientStock reports the product whose remaining stock could not
// cover the requested quantity.
func insufficientStock(id int64) error {
	return fmt.Errorf("%w: insufficient stock for product %d", ErrValidation, id)
}
