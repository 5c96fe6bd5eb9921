package products

import (
	"time"
)

// Product represents a product entity.
type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	PurchasePrice float64   `json:"purchase_price"`
	SalePrice     float64   `json:"sale_price"`
	Stock         int       `json:"stock"`
	EntryDate     time.Time `json:"entry_date"`
	CategoryID    int64     `json:"category_id"`
	SupplierID    int64     `json:"supplier_id"`
	IsActive      bool      `json:"is_active"`

	// Joined display names, populated on reads.
	CategoryName string `json:"category,omitempty"`
	SupplierName string `json:"supplier,omitempty"`
}
