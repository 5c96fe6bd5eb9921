package purchases

import "time"

// LineRequest is a line item in a create/update payload.
type LineRequest struct {
	ProductID int64   `json:"product_id" validate:"required,gt=0"`
	Qty       int     `json:"qty" validate:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" validate:"required,gt=0"`
}

// UpsertRequest is the create/update payload.
type UpsertRequest struct {
	SupplierID   int64         `json:"supplier_id" validate:"required,gt=0"`
	PurchaseDate *time.Time    `json:"purchase_date"`
	Lines        []LineRequest `json:"lines" validate:"required,min=1,dive"`
}

// DeleteRequest carries the optional delete discriminator body.
type DeleteRequest struct {
	Type string `json:"type"`
}

func (r UpsertRequest) toInput() CreateInput {
	input := CreateInput{SupplierID: r.SupplierID}
	if r.PurchaseDate != nil {
		input.PurchaseDate = *r.PurchaseDate
	}
	for _, line := range r.Lines {
		input.Lines = append(input.Lines, LineInput{
			ProductID: line.ProductID,
			Qty:       line.Qty,
			UnitPrice: line.UnitPrice,
		})
	}
	return input
}
