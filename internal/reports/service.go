package reports

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	dashboardWindowDays = 30
	latestPurchaseLimit = 5
	dashboardStockFloor = 5
	stockChartLimit     = 20
)

// RepositoryPort describes the queries the service depends on.
type RepositoryPort interface {
	Inventory(ctx context.Context) ([]InventoryRow, error)
	LowStock(ctx context.Context, threshold int) ([]LowStockRow, error)
	MostSold(ctx context.Context, rng DateRange) ([]MostSoldRow, error)
	PurchaseMovements(ctx context.Context, rng DateRange) ([]MovementRow, error)
	SaleMovements(ctx context.Context, rng DateRange) ([]MovementRow, error)
	Transactions(ctx context.Context, rng DateRange) ([]TransactionRow, error)
	ProductCount(ctx context.Context) (int64, error)
	TotalStock(ctx context.Context) (int64, error)
	PurchaseTotalSince(ctx context.Context, rng DateRange) (float64, error)
	SaleTotalSince(ctx context.Context, rng DateRange) (float64, error)
	LatestPurchases(ctx context.Context, limit int) ([]LatestPurchase, error)
	SalesSeries(ctx context.Context, rng DateRange) ([]SeriesPoint, error)
	StockSeries(ctx context.Context, limit int) ([]SeriesPoint, error)
}

// Service exposes the report and dashboard reads.
type Service struct {
	repo              RepositoryPort
	lowStockThreshold int
	now               func() time.Time
}

// NewService constructs the report service.
func NewService(repo RepositoryPort, lowStockThreshold int) *Service {
	return &Service{repo: repo, lowStockThreshold: lowStockThreshold, now: time.Now}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

func (s *Service) Inventory(ctx context.Context) ([]InventoryRow, error) {
	return s.repo.Inventory(ctx)
}

func (s *Service) LowStock(ctx context.Context) ([]LowStockRow, error) {
	return s.repo.LowStock(ctx, s.lowStockThreshold)
}

func (s *Service) MostSold(ctx context.Context, rng DateRange) ([]MostSoldRow, error) {
	return s.repo.MostSold(ctx, rng)
}

func (s *Service) PurchaseMovements(ctx context.Context, rng DateRange) ([]MovementRow, error) {
	return s.repo.PurchaseMovements(ctx, rng)
}

func (s *Service) SaleMovements(ctx context.Context, rng DateRange) ([]MovementRow, error) {
	return s.repo.SaleMovements(ctx, rng)
}

func (s *Service) Transactions(ctx context.Context, rng DateRange) ([]TransactionRow, error) {
	return s.repo.Transactions(ctx, rng)
}

// DashboardStats fans the four headline queries out concurrently; the first
// failure cancels the rest.
func (s *Service) DashboardStats(ctx context.Context) (DashboardStats, error) {
	now := s.now()
	window := DateRange{Start: now.AddDate(0, 0, -dashboardWindowDays), End: now}

	var stats DashboardStats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.repo.ProductCount(ctx)
		stats.ProductCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.TotalStock(ctx)
		stats.TotalStock = n
		return err
	})
	g.Go(func() error {
		total, err := s.repo.PurchaseTotalSince(ctx, window)
		stats.PurchasesMonth = total
		return err
	})
	g.Go(func() error {
		total, err := s.repo.SaleTotalSince(ctx, window)
		stats.SalesMonth = total
		return err
	})

	if err := g.Wait(); err != nil {
		return DashboardStats{}, err
	}
	return stats, nil
}

func (s *Service) LatestPurchases(ctx context.Context) ([]LatestPurchase, error) {
	return s.repo.LatestPurchases(ctx, latestPurchaseLimit)
}

// DashboardLowStock uses a tighter floor than the report endpoint so the
// dashboard only surfaces near-stockouts.
func (s *Service) DashboardLowStock(ctx context.Context) ([]LowStockRow, error) {
	return s.repo.LowStock(ctx, dashboardStockFloor)
}

func (s *Service) SalesChart(ctx context.Context, rng DateRange) ([]SeriesPoint, error) {
	return s.repo.SalesSeries(ctx, rng)
}

func (s *Service) StockChart(ctx context.Context) ([]SeriesPoint, error) {
	return s.repo.StockSeries(ctx, stockChartLimit)
}
