package sales

import "time"

// LineRequest is a line item in a create/update payload.
type LineRequest struct {
	ProductID int64   `json:"product_id" validate:"required,gt=0"`
	Qty       int     `json:"qty" validate:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" validate:"required,gt=0"`
}

// UpsertRequest is the create/update payload.
type UpsertRequest struct {
	SaleDate      *time.Time    `json:"sale_date"`
	PaymentStatus PaymentStatus `json:"payment_status" validate:"omitempty,oneof=PAID UNPAID"`
	Lines         []LineRequest `json:"lines" validate:"required,min=1,dive"`
}

// DeleteRequest carries the optional delete discriminator body.
type DeleteRequest struct {
	Type string `json:"type"`
}

// PaymentRequest sets the payment status.
type PaymentRequest struct {
	PaymentStatus PaymentStatus `json:"payment_status" validate:"required,oneof=PAID UNPAID"`
}

func (r UpsertRequest) toInput() CreateInput {
	input := CreateInput{PaymentStatus: r.PaymentStatus}
	if r.SaleDate != nil {
		input.SaleDate = *r.SaleDate
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
