// Package reports implements the read-only aggregation endpoints: stock
// valuation, sales analysis, dashboard figures and chart series.
package reports

import (
	"fmt"
	"time"

	"github.com/bodega-app/bodega/internal/platform/httpx"
	"github.com/bodega-app/bodega/internal/reports/rows"
)

var ErrValidation = fmt.Errorf("reports: %w", httpx.ErrValidation)

// InventoryRow is one product's stock valuation.
type InventoryRow = rows.InventoryRow

// LowStockRow is a product whose stock fell below a threshold.
type LowStockRow struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Stock     int    `json:"stock"`
}

// MostSoldRow aggregates paid sale lines per product.
type MostSoldRow = rows.MostSoldRow

// MovementRow is one document line inside a date-range listing.
type MovementRow struct {
	Number    string    `json:"number"`
	Date      time.Time `json:"date"`
	Party     string    `json:"party,omitempty"`
	Product   string    `json:"product"`
	Qty       int       `json:"qty"`
	UnitPrice float64   `json:"unit_price"`
	Subtotal  float64   `json:"subtotal"`
}

// TransactionRow is a daily purchase/sale total in the combined listing.
type TransactionRow struct {
	Date  time.Time `json:"date"`
	Kind  string    `json:"kind"`
	Total float64   `json:"total"`
}

// DashboardStats is the headline figure block.
type DashboardStats struct {
	ProductCount   int64   `json:"product_count"`
	TotalStock     int64   `json:"total_stock"`
	PurchasesMonth float64 `json:"purchases_month"`
	SalesMonth     float64 `json:"sales_month"`
}

// LatestPurchase is a recent purchase header for the dashboard.
type LatestPurchase struct {
	ID           int64     `json:"id"`
	Number       string    `json:"number"`
	Supplier     string    `json:"supplier"`
	PurchaseDate time.Time `json:"purchase_date"`
	Total        float64   `json:"total"`
}

// SeriesPoint is one point in a chart series.
type SeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// DateRange bounds a report query, inclusive on both ends.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange validates startDate/endDate query params in ISO form.
func ParseDateRange(start, end string) (DateRange, error) {
	if start == "" || end == "" {
		return DateRange{}, fmt.Errorf("%w: startDate and endDate are required", ErrValidation)
	}
	from, err := time.Parse("2006-01-02", start)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: startDate must be YYYY-MM-DD", ErrValidation)
	}
	to, err := time.Parse("2006-01-02", end)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: endDate must be YYYY-MM-DD", ErrValidation)
	}
	if to.Before(from) {
		return DateRange{}, fmt.Errorf("%w: endDate precedes startDate", ErrValidation)
	}
	return DateRange{Start: from, End: to}, nil
}
