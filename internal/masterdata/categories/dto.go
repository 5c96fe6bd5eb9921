package categories

// UpsertRequest is the create/update payload.
type UpsertRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// DeleteRequest carries the optional delete discriminator body.
type DeleteRequest struct {
	Type string `json:"type"`
}
