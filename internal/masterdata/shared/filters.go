package shared

// ListFilters represents standard list filters.
type ListFilters struct {
	Search   string
	IsActive *bool

	// Entity specific filters
	CategoryID *int64
	SupplierID *int64
}

// DeleteMode discriminates the DELETE endpoint behavior.
type DeleteMode string

const (
	DeleteLogical  DeleteMode = "logical"
	DeletePhysical DeleteMode = "physical"
	DeleteRestore  DeleteMode = "restore"
)

// ParseDeleteMode resolves the delete discriminator from the query parameter
// and optional request body. A body type of "restore" wins over the query.
func ParseDeleteMode(queryType, bodyType string) (DeleteMode, bool) {
	if bodyType == string(DeleteRestore) {
		return DeleteRestore, true
	}
	switch queryType {
	case "", string(DeleteLogical):
		return DeleteLogical, true
	case string(DeletePhysical):
		return DeletePhysical, true
	default:
		return "", false
	}
}
