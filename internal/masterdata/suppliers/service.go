package suppliers

import (
	"context"
	"fmt"
	"strings"

	"github.com/bodega-app/bodega/internal/masterdata/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, active bool) ([]Supplier, error) {
	return s.repo.List(ctx, active)
}

func (s *Service) Get(ctx context.Context, id int64) (Supplier, error) {
	if id <= 0 {
		return Supplier{}, fmt.Errorf("%w: invalid supplier id", shared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, supplier Supplier) (Supplier, error) {
	if strings.TrimSpace(supplier.Name) == "" {
		return Supplier{}, fmt.Errorf("%w: supplier name is required", shared.ErrValidation)
	}
	return s.repo.Create(ctx, supplier)
}

func (s *Service) Update(ctx context.Context, id int64, supplier Supplier) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid supplier id", shared.ErrValidation)
	}
	if strings.TrimSpace(supplier.Name) == "" {
		return fmt.Errorf("%w: supplier name is required", shared.ErrValidation)
	}
	return s.repo.Update(ctx, id, supplier)
}

func (s *Service) Delete(ctx context.Context, id int64, mode shared.DeleteMode) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid supplier id", shared.ErrValidation)
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
