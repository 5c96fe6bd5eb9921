package products

import (
	"context"
	"fmt"

	"github.com/bodega-app/bodega/internal/masterdata/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Product, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, fmt.Errorf("%w: invalid product id", shared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, product Product) (Product, error) {
	if err := s.validate(ctx, product); err != nil {
		return Product{}, err
	}
	return s.repo.Create(ctx, product)
}

func (s *Service) Update(ctx context.Context, id int64, product Product) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid product id", shared.ErrValidation)
	}
	if err := s.validate(ctx, product); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, product)
}

// Delete applies the requested delete mode: logical disables the row,
// physical removes it, restore re-enables it.
func (s *Service) Delete(ctx context.Context, id int64, mode shared.DeleteMode) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid product id", shared.ErrValidation)
	}
	switch mode {
	case shared.DeleteLogical:
		return s.repo.SetActive(ctx, id, false)
	case shared.DeleteRestore:
		return s.repo.SetActive(ctx, id, true)
	case shared.DeletePhysical:
		return s.repo.DeleteHard(ctx, id)
	default:
		return fmt.Errorf("%w: invalid delete type", shared.ErrValidation)
	}
}
