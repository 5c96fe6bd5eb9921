package purchases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	purchases map[int64]Purchase
	lines     map[int64][]Line
	suppliers map[int64]bool
	products  map[int64]bool
	stock     map[int64]int
	nextID    int64
}

type memoryTx struct {
	repo *memoryRepo
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		purchases: make(map[int64]Purchase),
		lines:     make(map[int64][]Line),
		suppliers: make(map[int64]bool),
		products:  make(map[int64]bool),
		stock:     make(map[int64]int),
	}
}

// WithTx snapshots state up front and restores it when fn fails, so tests
// observe the same all-or-nothing behaviour the SQL transaction gives.
func (r *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	snapshot := r.clone()
	if err := fn(ctx, &memoryTx{repo: r}); err != nil {
		*r = *snapshot
		return err
	}
	return nil
}

func (r *memoryRepo) clone() *memoryRepo {
	c := newMemoryRepo()
	c.nextID = r.nextID
	for id, p := range r.purchases {
		c.purchases[id] = p
	}
	for id, ls := range r.lines {
		c.lines[id] = append([]Line(nil), ls...)
	}
	for id, v := range r.suppliers {
		c.suppliers[id] = v
	}
	for id, v := range r.products {
		c.products[id] = v
	}
	for id, v := range r.stock {
		c.stock[id] = v
	}
	return c
}

func (r *memoryRepo) List(ctx context.Context) ([]Detail, error) {
	var details []Detail
	for id, p := range r.purchases {
		if !p.IsActive {
			continue
		}
		details = append(details, Detail{Purchase: p, Lines: append([]Line(nil), r.lines[id]...)})
	}
	return details, nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (Detail, error) {
	p, ok := r.purchases[id]
	if !ok {
		return Detail{}, ErrNotFound
	}
	return Detail{Purchase: p, Lines: append([]Line(nil), r.lines[id]...)}, nil
}

func (t *memoryTx) SupplierActive(ctx context.Context, id int64) (bool, error) {
	return t.repo.suppliers[id], nil
}

func (t *memoryTx) ProductActive(ctx context.Context, id int64) (bool, error) {
	return t.repo.products[id], nil
}

func (t *memoryTx) InsertPurchase(ctx context.Context, p Purchase) (int64, error) {
	t.repo.nextID++
	p.ID = t.repo.nextID
	p.IsActive = true
	t.repo.purchases[p.ID] = p
	return p.ID, nil
}

func (t *memoryTx) UpdatePurchase(ctx context.Context, id int64, p Purchase) error {
	current, ok := t.repo.purchases[id]
	if !ok {
		return ErrNotFound
	}
	current.SupplierID = p.SupplierID
	current.PurchaseDate = p.PurchaseDate
	current.Total = p.Total
	t.repo.purchases[id] = current
	return nil
}

func (t *memoryTx) SetActive(ctx context.Context, id int64, active bool) error {
	p, ok := t.repo.purchases[id]
	if !ok {
		return ErrNotFound
	}
	p.IsActive = active
	t.repo.purchases[id] = p
	return nil
}

func (t *memoryTx) GetHeader(ctx context.Context, id int64) (Purchase, error) {
	p, ok := t.repo.purchases[id]
	if !ok {
		return Purchase{}, ErrNotFound
	}
	return p, nil
}

func (t *memoryTx) GetLines(ctx context.Context, purchaseID int64) ([]Line, error) {
	return append([]Line(nil), t.repo.lines[purchaseID]...), nil
}

func (t *memoryTx) InsertLine(ctx context.Context, line Line) error {
	t.repo.lines[line.PurchaseID] = append(t.repo.lines[line.PurchaseID], line)
	return nil
}

func (t *memoryTx) DeleteLines(ctx context.Context, purchaseID int64) error {
	delete(t.repo.lines, purchaseID)
	return nil
}

func (t *memoryTx) AddStock(ctx context.Context, productID int64, delta int) error {
	if !t.repo.products[productID] {
		return productMissing(productID)
	}
	t.repo.stock[productID] += delta
	return nil
}

func seedRepo() *memoryRepo {
	repo := newMemoryRepo()
	repo.suppliers[1] = true
	repo.products[10] = true
	repo.products[11] = true
	repo.stock[10] = 0
	repo.stock[11] = 0
	return repo
}

func TestCreatePurchaseAddsStockAndComputesTotal(t *testing.T) {
	repo := seedRepo()
	svc := NewService(repo)

	detail, err := svc.Create(context.Background(), CreateInput{
		SupplierID: 1,
		Lines: []LineInput{
			{ProductID: 10, Qty: 5, UnitPrice: 2.5},
			{ProductID: 11, Qty: 3, UnitPrice: 10},
		},
	})
	require.NoError(t, err)
	require.InDelta(t, 42.5, detail.Total, 1e-9)
	require.Len(t, detail.Lines, 2)
	require.Equal(t, 5, repo.stock[10])
	require.Equal(t, 3, repo.stock[11])
	require.NotEmpty(t, detail.Number)
	require.False(t, detail.PurchaseDate.IsZero())
}

func TestCreatePurchaseUnknownSupplier(t *testing.T) {
	repo := seedRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateInput{
		SupplierID: 99,
		Lines:      []LineInput{{ProductID: 10, Qty: 1, UnitPrice: 1}},
	})
	require.ErrorIs(t, err, ErrSupplierNotFound)
	require.Empty(t, repo.purchases)
}

func TestCreatePurchaseRollsBackOnMissingProduct(t *testing.T) {
	repo := seedRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateInput{
		SupplierID: 1,
		Lines: []LineInput{
			{ProductID: 10, Qty: 4, UnitPrice: 1},
			{ProductID: 404, Qty: 1, UnitPrice: 1},
		},
	})
	require.ErrorIs(t, err, ErrValidation)
	require.Empty(t, repo.purchases)
	require.Equal(t, 0, repo.stock[10])
}

func TestCreatePurchaseRejectsEmptyLines(t *testing.T) {
	svc := NewService(seedRepo())

	_, err := svc.Create(context.Background(), CreateInput{SupplierID: 1})
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateReplacesLinesAndNetsStock(t *testing.T) {
	repo := seedRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), CreateInput{
		SupplierID: 1,
		Lines:      []LineInput{{ProductID: 10, Qty: 5, UnitPrice: 2}},
	})
	require.NoError(t, err)
	require.Equal(t, 5, repo.stock[10])

	updated, err := svc.Update(context.Background(), created.ID, CreateInput{
		SupplierID: 1,
		Lines: []LineInput{
			{ProductID: 10, Qty: 3, UnitPrice: 2},
			{ProductID: 11, Qty: 2, UnitPrice: 4},
		},
	})
	require.NoError(t, err)
	require.InDelta(t, 14, updated.Total, 1e-9)
	require.Equal(t, 3, repo.stock[10])
	require.Equal(t, 2, repo.stock[11])
	require.Len(t, repo.lines[created.ID], 2)
}

func TestUpdateRollsBackWhenNewLineInvalid(t *testing.T) {
	repo := seedRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), CreateInput{
		SupplierID: 1,
		Lines:      []LineInput{{ProductID: 10, Qty: 5, UnitPrice: 2}},
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, CreateInput{
		SupplierID: 1,
		Lines:      []LineInput{{ProductID: 404, Qty: 1, UnitPrice: 1}},
	})
	require.ErrorIs(t, err, ErrValidation)

	require.Equal(t, 5, repo.stock[10])
	require.Len(t, repo.lines[created.ID], 1)
	require.InDelta(t, 10, repo.purchases[created.ID].Total, 1e-9)
}

func TestDeleteReversesStockAndDisables(t *testing.T) {
	repo := seedRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), CreateInput{
		SupplierID:   1,
		PurchaseDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Lines:        []LineInput{{ProductID: 10, Qty: 7, UnitPrice: 1}},
	})
	require.NoError(t, err)
	require.Equal(t, 7, repo.stock[10])

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	require.Equal(t, 0, repo.stock[10])
	require.False(t, repo.purchases[created.ID].IsActive)

	err = svc.Delete(context.Background(), created.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(context.Background(), created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRestoreReappliesStock(t *testing.T) {
	repo := seedRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), CreateInput{
		SupplierID: 1,
		Lines:      []LineInput{{ProductID: 10, Qty: 4, UnitPrice: 3}},
	})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), created.ID))
	require.Equal(t, 0, repo.stock[10])

	require.NoError(t, svc.Restore(context.Background(), created.ID))
	require.Equal(t, 4, repo.stock[10])
	require.True(t, repo.purchases[created.ID].IsActive)

	err = svc.Restore(context.Background(), created.ID)
	require.ErrorIs(t, err, ErrValidation)
}
