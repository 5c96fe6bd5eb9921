package categories

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

func (s *Service) List(ctx context.Context, active bool) ([]Category, error) {
	return s.repo.List(ctx, active)
}

func (s *Service) Get(ctx context.Context, id int64) (Category, error) {
	if id <= 0 {
		return Category{}, fmt.Errorf("%w: invalid category id", shared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, category Category) (Category, error) {
	if strings.TrimSpace(category.Name) == "" {
		return Category{}, fmt.Errorf("%w: category name is required", shared.ErrValidation)
	}
	return s.repo.Create(ctx, category)
}

func (s *Service) Update(ctx context.Context, id int64, category Category) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid category id", shared.ErrValidation)
	}
	if strings.TrimSpace(category.Name) == "" {
		return fmt.Errorf("%w: category name is required", shared.ErrValidation)
	}
	return s.repo.Update(ctx, id, category)
}

func (s *Service) Delete(ctx context.Context, id int64, mode shared.DeleteMode) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid category id", shared.ErrValidation)
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
