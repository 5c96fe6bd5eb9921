// Package rows holds report row types shared between the reports package
// and its CSV export helpers, breaking the import cycle between them.
package rows

// InventoryRow is one product's stock valuation.
type InventoryRow struct {
	ProductID     int64   `json:"product_id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Stock         int     `json:"stock"`
	PurchasePrice float64 `json:"purchase_price"`
	SalePrice     float64 `json:"sale_price"`
	CostValue     float64 `json:"cost_value"`
	SaleValue     float64 `json:"sale_value"`
}

// MostSoldRow aggregates paid sale lines per product.
type MostSoldRow struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	QtySold   int     `json:"qty_sold"`
	AvgPrice  float64 `json:"avg_price"`
	Revenue   float64 `json:"revenue"`
}
