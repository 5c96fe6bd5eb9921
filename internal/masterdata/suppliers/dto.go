package suppliers

// UpsertRequest is the create/update payload.
type UpsertRequest struct {
	Name    string `json:"name" validate:"required"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// DeleteRequest carries the optional delete discriminator body.
type DeleteRequest struct {
	Type string `json:"type"`
}
