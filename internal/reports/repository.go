package reports

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository runs the aggregation queries against PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Inventory returns the per-product stock valuation for active products.
func (r *Repository) Inventory(ctx context.Context) ([]InventoryRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.name, COALESCE(c.name, '') AS category, p.stock,
			p.purchase_price, p.sale_price,
			p.stock * p.purchase_price AS cost_value,
			p.stock * p.sale_price AS sale_value
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.is_active
		ORDER BY p.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (InventoryRow, error) {
		var v InventoryRow
		err := row.Scan(&v.ProductID, &v.Name, &v.Category, &v.Stock,
			&v.PurchasePrice, &v.SalePrice, &v.CostValue, &v.SaleValue)
		return v, err
	})
}

// LowStock returns active products with stock below the threshold.
func (r *Repository) LowStock(ctx context.Context, threshold int) ([]LowStockRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.name, COALESCE(c.name, '') AS category, p.stock
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.is_active AND p.stock < $1
		ORDER BY p.stock, p.name`, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (LowStockRow, error) {
		var v LowStockRow
		err := row.Scan(&v.ProductID, &v.Name, &v.Category, &v.Stock)
		return v, err
	})
}

// MostSold aggregates paid sale lines per product within the range.
func (r *Repository) MostSold(ctx context.Context, rng DateRange) ([]MostSoldRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT i.product_id, COALESCE(p.name, '') AS name,
			SUM(i.qty) AS qty_sold,
			AVG(i.unit_price) AS avg_price,
			SUM(i.qty * i.unit_price) AS revenue
		FROM sale_items i
		JOIN sales v ON v.id = i.sale_id
		LEFT JOIN products p ON p.id = i.product_id
		WHERE v.is_active AND v.payment_status = 'PAID'
			AND v.sale_date::date BETWEEN $1 AND $2
		GROUP BY i.product_id, p.name
		ORDER BY qty_sold DESC`, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (MostSoldRow, error) {
		var v MostSoldRow
		err := row.Scan(&v.ProductID, &v.Name, &v.QtySold, &v.AvgPrice, &v.Revenue)
		return v, err
	})
}

// PurchaseMovements lists purchase lines in the range, newest first.
func (r *Repository) PurchaseMovements(ctx context.Context, rng DateRange) ([]MovementRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.number, c.purchase_date, COALESCE(s.name, '') AS party,
			COALESCE(p.name, '') AS product, i.qty, i.unit_price,
			i.qty * i.unit_price AS subtotal
		FROM purchase_items i
		JOIN purchases c ON c.id = i.purchase_id
		LEFT JOIN suppliers s ON s.id = c.supplier_id
		LEFT JOIN products p ON p.id = i.product_id
		WHERE c.is_active AND c.purchase_date::date BETWEEN $1 AND $2
		ORDER BY c.purchase_date DESC, c.id DESC`, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMovements(rows)
}

// SaleMovements lists sale lines in the range, newest first.
func (r *Repository) SaleMovements(ctx context.Context, rng DateRange) ([]MovementRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT v.number, v.sale_date, '' AS party,
			COALESCE(p.name, '') AS product, i.qty, i.unit_price,
			i.qty * i.unit_price AS subtotal
		FROM sale_items i
		JOIN sales v ON v.id = i.sale_id
		LEFT JOIN products p ON p.id = i.product_id
		WHERE v.is_active AND v.sale_date::date BETWEEN $1 AND $2
		ORDER BY v.sale_date DESC, v.id DESC`, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]MovementRow, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (MovementRow, error) {
		var v MovementRow
		err := row.Scan(&v.Number, &v.Date, &v.Party, &v.Product, &v.Qty, &v.UnitPrice, &v.Subtotal)
		return v, err
	})
}

// Transactions merges daily purchase and sale totals inside the range.
func (r *Repository) Transactions(ctx context.Context, rng DateRange) ([]TransactionRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT day, kind, total FROM (
			SELECT purchase_date::date AS day, 'purchase' AS kind, SUM(total) AS total
			FROM purchases
			WHERE is_active AND purchase_date::date BETWEEN $1 AND $2
			GROUP BY purchase_date::date
			UNION ALL
			SELECT sale_date::date AS day, 'sale' AS kind, SUM(total) AS total
			FROM sales
			WHERE is_active AND sale_date::date BETWEEN $1 AND $2
			GROUP BY sale_date::date
		) t
		ORDER BY day, kind`, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (TransactionRow, error) {
		var v TransactionRow
		err := row.Scan(&v.Date, &v.Kind, &v.Total)
		return v, err
	})
}

// ProductCount counts active products.
func (r *Repository) ProductCount(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE is_active`).Scan(&n)
	return n, err
}

// TotalStock sums units on hand across active products.
func (r *Repository) TotalStock(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(stock), 0) FROM products WHERE is_active`).Scan(&n)
	return n, err
}

// PurchaseTotalSince sums active purchase totals on or after the cut-off.
func (r *Repository) PurchaseTotalSince(ctx context.Context, rng DateRange) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(total), 0) FROM purchases WHERE is_active AND purchase_date::date BETWEEN $1 AND $2`,
		rng.Start, rng.End).Scan(&total)
	return total, err
}

// SaleTotalSince sums active sale totals on or after the cut-off.
func (r *Repository) SaleTotalSince(ctx context.Context, rng DateRange) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(total), 0) FROM sales WHERE is_active AND sale_date::date BETWEEN $1 AND $2`,
		rng.Start, rng.End).Scan(&total)
	return total, err
}

// LatestPurchases returns the most recent active purchases.
func (r *Repository) LatestPurchases(ctx context.Context, limit int) ([]LatestPurchase, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.number, COALESCE(s.name, '') AS supplier, c.purchase_date, c.total
		FROM purchases c
		LEFT JOIN suppliers s ON s.id = c.supplier_id
		WHERE c.is_active
		ORDER BY c.purchase_date DESC, c.id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (LatestPurchase, error) {
		var v LatestPurchase
		err := row.Scan(&v.ID, &v.Number, &v.Supplier, &v.PurchaseDate, &v.Total)
		return v, err
	})
}

// SalesSeries returns daily sale totals in the range for charting.
func (r *Repository) SalesSeries(ctx context.Context, rng DateRange) ([]SeriesPoint, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT TO_CHAR(sale_date::date, 'YYYY-MM-DD') AS label, SUM(total) AS value
		FROM sales
		WHERE is_active AND sale_date::date BETWEEN $1 AND $2
		GROUP BY sale_date::date
		ORDER BY sale_date::date`, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSeries(rows)
}

// StockSeries returns current stock per product for charting.
func (r *Repository) StockSeries(ctx context.Context, limit int) ([]SeriesPoint, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT name AS label, stock::float8 AS value
		FROM products
		WHERE is_active
		ORDER BY stock DESC, name
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSeries(rows)
}

func collectSeries(rows pgx.Rows) ([]SeriesPoint, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (SeriesPoint, error) {
		var v SeriesPoint
		err := row.Scan(&v.Label, &v.Value)
		return v, err
	})
}
