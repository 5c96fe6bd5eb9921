package sales

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	sales    map[int64]Sale
	lines    map[int64][]Line
	products map[int64]bool
	stock    map[int64]int
	nextID   int64
}

type memoryTx struct {
	repo *memoryRepo
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		sales:    make(map[int64]Sale),
		lines:    make(map[int64][]Line),
		products: make(map[int64]bool),
		stock:    make(map[int64]int),
	}
}

// WithTx snapshots state up front and restores it when fn fails, matching
// the all-or-nothing behaviour of the SQL transaction.
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
	for id, s := range r.sales {
		c.sales[id] = s
	}
	for id, ls := range r.lines {
		c.lines[id] = append([]Line(nil), ls...)
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
	for id, s := range r.sales {
		if !s.IsActive {
			continue
		}
		details = append(details, Detail{Sale: s, Lines: append([]Line(nil), r.lines[id]...)})
	}
	return details, nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (Detail, error) {
	s, ok := r.sales[id]
	if !ok {
		return Detail{}, ErrNotFound
	}
	return Detail{Sale: s, Lines: append([]Line(nil), r.lines[id]...)}, nil
}

func (t *memoryTx) InsertSale(ctx context.Context, s Sale) (int64, error) {
	t.repo.nextID++
	s.ID = t.repo.nextID
	s.IsActive = true
	t.repo.sales[s.ID] = s
	return s.ID, nil
}

func (t *memoryTx) UpdateSale(ctx context.Context, id int64, s Sale) error {
	current, ok := t.repo.sales[id]
	if !ok {
		return ErrNotFound
	}
	current.SaleDate = s.SaleDate
	current.Total = s.Total
	t.repo.sales[id] = current
	return nil
}

func (t *memoryTx) SetActive(ctx context.Context, id int64, active bool) error {
	s, ok := t.repo.sales[id]
	if !ok {
		return ErrNotFound
	}
	s.IsActive = active
	t.repo.sales[id] = s
	return nil
}

func (t *memoryTx) SetPaymentStatus(ctx context.Context, id int64, status PaymentStatus) error {
	s, ok := t.repo.sales[id]
	if !ok {
		return ErrNotFound
	}
	s.PaymentStatus = status
	t.repo.sales[id] = s
	return nil
}

func (t *memoryTx) GetHeader(ctx context.Context, id int64) (Sale, error) {
	s, ok := t.repo.sales[id]
	if !ok {
		return Sale{}, ErrNotFound
	}
	return s, nil
}

func (t *memoryTx) GetLines(ctx context.Context, saleID int64) ([]Line, error) {
	return append([]Line(nil), t.repo.lines[saleID]...), nil
}

func (t *memoryTx) InsertLine(ctx context.Context, line Line) error {
	t.repo.lines[line.SaleID] = append(t.repo.lines[line.SaleID], line)
	return nil
}

func (t *memoryTx) DeleteLines(ctx context.Context, saleID int64) error {
	delete(t.repo.lines, saleID)
	return nil
}

func (t *memoryTx) DeductStock(ctx context.Context, productID int64, qty int) error {
	if !t.repo.products[productID] || t.repo.stock[productID] < qty {
		return insufficientStock(productID)
	}
	t.repo.stock[productID] -= qty
	return nil
}

func (t *memoryTx) ReturnStock(ctx context.Context, productID int64, qty int) error {
	t.repo.stock[productID] += qty
	return nil
}

func seedRepo() *memoryRepo {
	repo := newMemoryRepo()
	repo.products[10] = true
	repo.products[11] = true
	repo.stock[10] = 8
	repo.stock[11] = 3
	return repo
}

func TestCreateSaleDeductsStock(t *testing.T) {
	repo := seedRepo()
	svc := NewService(repo)

	detail, err := svc.Create(context.Background(), CreateInput{
		Lines: []LineInput{
			{ProductID: 10, Qty: 5, UnitPrice: 4},
			{ProductID: 11, Qty: 2, UnitPrice: 10},
		},
	})
	require.NoError(t, err)
	require.InDelta(t, 40, detail.Total, 1e-9)
	require.Equal(t, PaymentUnpaid, detail.PaymentStatus)
	require.Equal(t, 3, repo.stock[10])
	require.Equal(t, 1, repo.stock[11])
}

func TestCreateSaleInsufficientStockRollsBack(t *testing.T) {
	repo := seedRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateInput{
		Lines: []LineInput{
			{ProductID: 10, Qty: 2, UnitPrice: 4},
			{ProductID: 11, Qty: 5, UnitPrice: 10},
		},
	})
	require.ErrorIs(t, err, ErrValidation)
	require.Empty(t, repo.sales)
	require.Equal(t, 8, repo.stock[10])
	require.Equal(t, 3, repo.stock[11])
}

func TestCreateSaleRejectsBadStatus(t *testing.T) {
	svc := NewService(seedRepo())

	_, err := svc.Create(context.Background(), CreateInput{
		PaymentStatus: "PENDING",
		Lines:         []LineInput{{ProductID: 10, Qty: 1, UnitPrice: 1}},
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateReplacesLinesWithSufficiencyCheck(t *testing.T) {
	repo := seedRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), CreateInput{
		Lines: []LineInput{{ProductID: 10, Qty: 5, UnitPrice: 4}},
	})
	require.NoError(t, err)
	require.Equal(t, 3, repo.stock[10])

	// 3 remaining + 5 returned covers the new qty of 7.
	updated, err := svc.Update(context.Background(), created.ID, CreateInput{
		Lines: []LineInput{{ProductID: 10, Qty: 7, UnitPrice: 4}},
	})
	require.NoError(t, err)
	require.InDelta(t, 28, updated.Total, 1e-9)
	require.Equal(t, 1, repo.stock[10])
}

func TestUpdateInsufficientStockRollsBack(t *testing.T) {
	repo := seedRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), CreateInput{
		Lines: []LineInput{{ProductID: 10, Qty: 5, UnitPrice: 4}},
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, CreateInput{
		Lines: []LineInput{{ProductID: 10, Qty: 20, UnitPrice: 4}},
	})
	require.ErrorIs(t, err, ErrValidation)

	require.Equal(t, 3, repo.stock[10])
	require.Len(t, repo.lines[created.ID], 1)
	require.Equal(t, 5, repo.lines[created.ID][0].Qty)
}

func TestPaidSaleIsImmutable(t *testing.T) {
	repo := seedRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), CreateInput{
		PaymentStatus: PaymentPaid,
		Lines:         []LineInput{{ProductID: 10, Qty: 2, UnitPrice: 4}},
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, CreateInput{
		Lines: []LineInput{{ProductID: 10, Qty: 1, UnitPrice: 4}},
	})
	require.ErrorIs(t, err, ErrPaid)

	err = svc.Delete(context.Background(), created.ID)
	require.ErrorIs(t, err, ErrPaid)
	require.Equal(t, 6, repo.stock[10])
}

func TestDeleteReturnsStock(t *testing.T) {
	repo := seedRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), CreateInput{
		Lines: []LineInput{{ProductID: 10, Qty: 5, UnitPrice: 4}},
	})
	require.NoError(t, err)
	require.Equal(t, 3, repo.stock[10])

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	require.Equal(t, 8, repo.stock[10])
	require.False(t, repo.sales[created.ID].IsActive)

	_, err = svc.Get(context.Background(), created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRestoreRedeductsWithSufficiencyCheck(t *testing.T) {
	repo := seedRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), CreateInput{
		Lines: []LineInput{{ProductID: 10, Qty: 5, UnitPrice: 4}},
	})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), created.ID))
	require.Equal(t, 8, repo.stock[10])

	// Someone else consumed the stock in the meantime.
	repo.stock[10] = 2
	err = svc.Restore(context.Background(), created.ID)
	require.ErrorIs(t, err, ErrValidation)
	require.Equal(t, 2, repo.stock[10])
	require.False(t, repo.sales[created.ID].IsActive)

	repo.stock[10] = 8
	require.NoError(t, svc.Restore(context.Background(), created.ID))
	require.Equal(t, 3, repo.stock[10])
	require.True(t, repo.sales[created.ID].IsActive)
}

func TestSetPaymentStatus(t *testing.T) {
	repo := seedRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), CreateInput{
		Lines: []LineInput{{ProductID: 10, Qty: 1, UnitPrice: 4}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.SetPaymentStatus(context.Background(), created.ID, PaymentPaid))
	require.Equal(t, PaymentPaid, repo.sales[created.ID].PaymentStatus)

	err = svc.SetPaymentStatus(context.Background(), created.ID, "LATER")
	require.ErrorIs(t, err, ErrValidation)
}
