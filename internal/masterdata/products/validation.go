package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/bodega-app/bodega/internal/masterdata/shared"
)

func (s *Service) validate(ctx context.Context, p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", shared.ErrValidation)
	}
	if p.PurchasePrice <= 0 || p.SalePrice <= 0 {
		return fmt.Errorf("%w: prices must be positive", shared.ErrValidation)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", shared.ErrValidation)
	}
	ok, err := s.repo.CategoryExists(ctx, p.CategoryID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: category %d", shared.ErrValidation, p.CategoryID)
	}
	ok, err = s.repo.SupplierExists(ctx, p.SupplierID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: supplier %d", shared.ErrValidation, p.SupplierID)
	}
	return nil
}
