package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	productCount  int64
	totalStock    int64
	purchaseTotal float64
	saleTotal     float64
	lowStockCalls []int
	statsErr      error
	window        DateRange
}

func (r *stubRepo) Inventory(ctx context.Context) ([]InventoryRow, error) { return nil, nil }

func (r *stubRepo) LowStock(ctx context.Context, threshold int) ([]LowStockRow, error) {
	r.lowStockCalls = append(r.lowStockCalls, threshold)
	return nil, nil
}

func (r *stubRepo) MostSold(ctx context.Context, rng DateRange) ([]MostSoldRow, error) {
	return nil, nil
}

func (r *stubRepo) PurchaseMovements(ctx context.Context, rng DateRange) ([]MovementRow, error) {
	return nil, nil
}

func (r *stubRepo) SaleMovements(ctx context.Context, rng DateRange) ([]MovementRow, error) {
	return nil, nil
}

func (r *stubRepo) Transactions(ctx context.Context, rng DateRange) ([]TransactionRow, error) {
	return nil, nil
}

func (r *stubRepo) ProductCount(ctx context.Context) (int64, error) {
	return r.productCount, r.statsErr
}

func (r *stubRepo) TotalStock(ctx context.Context) (int64, error) { return r.totalStock, nil }

func (r *stubRepo) PurchaseTotalSince(ctx context.Context, rng DateRange) (float64, error) {
	r.window = rng
	return r.purchaseTotal, nil
}

func (r *stubRepo) SaleTotalSince(ctx context.Context, rng DateRange) (float64, error) {
	return r.saleTotal, nil
}

func (r *stubRepo) LatestPurchases(ctx context.Context, limit int) ([]LatestPurchase, error) {
	return make([]LatestPurchase, limit), nil
}

func (r *stubRepo) SalesSeries(ctx context.Context, rng DateRange) ([]SeriesPoint, error) {
	return nil, nil
}

func (r *stubRepo) StockSeries(ctx context.Context, limit int) ([]SeriesPoint, error) {
	return nil, nil
}

func TestDashboardStatsFanOut(t *testing.T) {
	repo := &stubRepo{productCount: 12, totalStock: 340, purchaseTotal: 1500, saleTotal: 2100}
	svc := NewService(repo, 10)
	now := time.Date(2026, 5, 31, 12, 0, 0, 0, time.UTC)
	svc.WithNow(func() time.Time { return now })

	stats, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(12), stats.ProductCount)
	require.Equal(t, int64(340), stats.TotalStock)
	require.InDelta(t, 1500, stats.PurchasesMonth, 1e-9)
	require.InDelta(t, 2100, stats.SalesMonth, 1e-9)
	require.Equal(t, now.AddDate(0, 0, -30), repo.window.Start)
	require.Equal(t, now, repo.window.End)
}

func TestDashboardStatsPropagatesError(t *testing.T) {
	repo := &stubRepo{statsErr: errors.New("boom")}
	svc := NewService(repo, 10)

	_, err := svc.DashboardStats(context.Background())
	require.Error(t, err)
}

func TestLowStockThresholds(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, 10)

	_, err := svc.LowStock(context.Background())
	require.NoError(t, err)
	_, err = svc.DashboardLowStock(context.Background())
	require.NoError(t, err)
	require.Equal(t, []int{10, 5}, repo.lowStockCalls)
}

func TestParseDateRange(t *testing.T) {
	rng, err := ParseDateRange("2026-01-01", "2026-01-31")
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), rng.Start)
	require.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), rng.End)

	_, err = ParseDateRange("", "2026-01-31")
	require.ErrorIs(t, err, ErrValidation)

	_, err = ParseDateRange("01/01/2026", "2026-01-31")
	require.ErrorIs(t, err, ErrValidation)

	_, err = ParseDateRange("2026-02-01", "2026-01-31")
	require.ErrorIs(t, err, ErrValidation)
}
