package shared

import (
	"fmt"

	"github.com/bodega-app/bodega/internal/platform/httpx"
)

// Sentinels wrap the httpx ones so httpx.RespondError can pick the status
// code without each handler maintaining its own mapping table.
var (
	ErrNotFound   = fmt.Errorf("masterdata: %w", httpx.ErrNotFound)
	ErrValidation = fmt.Errorf("masterdata: %w", httpx.ErrValidation)
	ErrReferenced = fmt.Errorf("masterdata: row is referenced: %w", httpx.ErrConflict)
)
