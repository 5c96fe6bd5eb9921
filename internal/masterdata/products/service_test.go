package products

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bodega-app/bodega/internal/masterdata/shared"
)

type memoryRepo struct {
	products   map[int64]Product
	categories map[int64]bool
	suppliers  map[int64]bool
	nextID     int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		products:   make(map[int64]Product),
		categories: map[int64]bool{1: true},
		suppliers:  map[int64]bool{1: true},
	}
}

func (r *memoryRepo) List(ctx context.Context, filters shared.ListFilters) ([]Product, error) {
	var out []Product
	for _, p := range r.products {
		if filters.IsActive != nil && p.IsActive != *filters.IsActive {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (Product, error) {
	p, ok := r.products[id]
	if !ok {
		return Product{}, shared.ErrNotFound
	}
	return p, nil
}

func (r *memoryRepo) Create(ctx context.Context, product Product) (Product, error) {
	r.nextID++
	product.ID = r.nextID
	product.IsActive = true
	r.products[product.ID] = product
	return product, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, product Product) error {
	if _, ok := r.products[id]; !ok {
		return shared.ErrNotFound
	}
	product.ID = id
	product.IsActive = r.products[id].IsActive
	r.products[id] = product
	return nil
}

func (r *memoryRepo) SetActive(ctx context.Context, id int64, active bool) error {
	p, ok := r.products[id]
	if !ok {
		return shared.ErrNotFound
	}
	p.IsActive = active
	r.products[id] = p
	return nil
}

func (r *memoryRepo) DeleteHard(ctx context.Context, id int64) error {
	if _, ok := r.products[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *memoryRepo) CategoryExists(ctx context.Context, id int64) (bool, error) {
	return r.categories[id], nil
}

func (r *memoryRepo) SupplierExists(ctx context.Context, id int64) (bool, error) {
	return r.suppliers[id], nil
}

func validProduct() Product {
	return Product{
		Name:          "Cola 500ml",
		PurchasePrice: 1.2,
		SalePrice:     2,
		Stock:         10,
		CategoryID:    1,
		SupplierID:    1,
	}
}

func TestCreateProduct(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), validProduct())
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.True(t, created.IsActive)
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewService(newMemoryRepo())

	cases := map[string]func(*Product){
		"blank name":       func(p *Product) { p.Name = "   " },
		"zero price":       func(p *Product) { p.SalePrice = 0 },
		"negative stock":   func(p *Product) { p.Stock = -1 },
		"unknown category": func(p *Product) { p.CategoryID = 99 },
		"unknown supplier": func(p *Product) { p.SupplierID = 99 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := validProduct()
			mutate(&p)
			_, err := svc.Create(context.Background(), p)
			require.ErrorIs(t, err, shared.ErrValidation)
		})
	}
}

func TestDeleteModes(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), validProduct())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID, shared.DeleteLogical))
	require.False(t, repo.products[created.ID].IsActive)

	require.NoError(t, svc.Delete(context.Background(), created.ID, shared.DeleteRestore))
	require.True(t, repo.products[created.ID].IsActive)

	require.NoError(t, svc.Delete(context.Background(), created.ID, shared.DeletePhysical))
	require.Empty(t, repo.products)

	err = svc.Delete(context.Background(), created.ID, shared.DeleteLogical)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGetRejectsBadID(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Get(context.Background(), 0)
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestParseDeleteMode(t *testing.T) {
	mode, ok := shared.ParseDeleteMode("", "")
	require.True(t, ok)
	require.Equal(t, shared.DeleteLogical, mode)

	mode, ok = shared.ParseDeleteMode("physical", "")
	require.True(t, ok)
	require.Equal(t, shared.DeletePhysical, mode)

	mode, ok = shared.ParseDeleteMode("logical", "restore")
	require.True(t, ok)
	require.Equal(t, shared.DeleteRestore, mode)

	_, ok = shared.ParseDeleteMode("hard", "")
	require.False(t, ok)
}
