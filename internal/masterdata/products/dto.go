package products

import "time"

// UpsertRequest is the create/update payload.
type UpsertRequest struct {
	Name          string     `json:"name" validate:"required"`
	Description   string     `json:"description"`
	PurchasePrice float64    `json:"purchase_price" validate:"required,gt=0"`
	SalePrice     float64    `json:"sale_price" validate:"required,gt=0"`
	Stock         int        `json:"stock" validate:"gte=0"`
	EntryDate     *time.Time `json:"entry_date"`
	CategoryID    int64      `json:"category_id" validate:"required,gt=0"`
	SupplierID    int64      `json:"supplier_id" validate:"required,gt=0"`
}

// DeleteRequest carries the optional delete discriminator body.
type DeleteRequest struct {
	Type string `json:"type"`
}
