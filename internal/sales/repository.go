package sales

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bodega-app/bodega/internal/platform/db"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// TxRepository exposes the statements available inside a sale write
// transaction. Every method runs on the same pgx.Tx.
type TxRepository interface {
	InsertSale(ctx context.Context, s Sale) (int64, error)
	UpdateSale(ctx context.Context, id int64, s Sale) error
	SetActive(ctx context.Context, id int64, active bool) error
	SetPaymentStatus(ctx context.Context, id int64, status PaymentStatus) error
	GetHeader(ctx context.Context, id int64) (Sale, error)
	GetLines(ctx context.Context, saleID int64) ([]Line, error)
	InsertLine(ctx context.Context, line Line) error
	DeleteLines(ctx context.Context, saleID int64) error
	DeductStock(ctx context.Context, productID int64, qty int) error
	ReturnStock(ctx context.Context, productID int64, qty int) error
}

type txRepo struct {
	tx pgx.Tx
}

// WithTx wraps callback in a transaction; any error rolls back.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepo{tx: tx})
	})
}

const detailQuery = `SELECT v.id, v.number, v.sale_date, v.total, v.payment_status, v.is_active,
		i.product_id, COALESCE(p.name, '') AS product, i.qty, i.unit_price
	FROM sales v
	JOIN sale_items i ON i.sale_id = v.id
	LEFT JOIN products p ON p.id = i.product_id`

// List returns active sales with their lines, newest first.
func (r *Repository) List(ctx context.Context) ([]Detail, error) {
	rows, err := r.pool.Query(ctx, detailQuery+`
		WHERE v.is_active
		ORDER BY v.sale_date DESC, v.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return groupDetails(rows)
}

// Get returns one sale with its lines regardless of the enabled flag;
// callers decide whether a disabled document is visible.
func (r *Repository) Get(ctx context.Context, id int64) (Detail, error) {
	rows, err := r.pool.Query(ctx, detailQuery+` WHERE v.id = $1`, id)
	if err != nil {
		return Detail{}, err
	}
	defer rows.Close()

	details, err := groupDetails(rows)
	if err != nil {
		return Detail{}, err
	}
	if len(details) == 0 {
		return Detail{}, ErrNotFound
	}
	return details[0], nil
}

func groupDetails(rows pgx.Rows) ([]Detail, error) {
	var details []Detail
	index := make(map[int64]int)
	for rows.Next() {
		var header Sale
		var line Line
		if err := rows.Scan(&header.ID, &header.Number, &header.SaleDate, &header.Total,
			&header.PaymentStatus, &header.IsActive,
			&line.ProductID, &line.ProductName, &line.Qty, &line.UnitPrice); err != nil {
			return nil, err
		}
		pos, ok := index[header.ID]
		if !ok {
			details = append(details, Detail{Sale: header})
			pos = len(details) - 1
			index[header.ID] = pos
		}
		line.SaleID = header.ID
		details[pos].Lines = append(details[pos].Lines, line)
	}
	return details, rows.Err()
}

func (t *txRepo) InsertSale(ctx context.Context, s Sale) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx,
		`INSERT INTO sales (number, sale_date, total, payment_status, is_active) VALUES ($1, $2, $3, $4, TRUE) RETURNING id`,
		s.Number, s.SaleDate, s.Total, s.PaymentStatus).Scan(&id)
	return id, err
}

func (t *txRepo) UpdateSale(ctx context.Context, id int64, s Sale) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE sales SET sale_date = $1, total = $2 WHERE id = $3`,
		s.SaleDate, s.Total, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *txRepo) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := t.tx.Exec(ctx, `UPDATE sales SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *txRepo) SetPaymentStatus(ctx context.Context, id int64, status PaymentStatus) error {
	tag, err := t.tx.Exec(ctx, `UPDATE sales SET payment_status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *txRepo) GetHeader(ctx context.Context, id int64) (Sale, error) {
	var s Sale
	err := t.tx.QueryRow(ctx,
		`SELECT id, number, sale_date, total, payment_status, is_active FROM sales WHERE id = $1`, id).
		Scan(&s.ID, &s.Number, &s.SaleDate, &s.Total, &s.PaymentStatus, &s.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return Sale{}, ErrNotFound
	}
	return s, err
}

func (t *txRepo) GetLines(ctx context.Context, saleID int64) ([]Line, error) {
	rows, err := t.tx.Query(ctx,
		`SELECT id, sale_id, product_id, qty, unit_price FROM sale_items WHERE sale_id = $1`, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.Qty, &l.UnitPrice); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (t *txRepo) InsertLine(ctx context.Context, line Line) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO sale_items (sale_id, product_id, qty, unit_price) VALUES ($1, $2, $3, $4)`,
		line.SaleID, line.ProductID, line.Qty, line.UnitPrice)
	return err
}

func (t *txRepo) DeleteLines(ctx context.Context, saleID int64) error {
	_, err := t.tx.Exec(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, saleID)
	return err
}

// DeductStock decrements in one conditional statement. Zero rows affected
// means either a missing/disabled product or not enough stock; both abort
// the sale, so the single error covers them.
func (t *txRepo) DeductStock(ctx context.Context, productID int64, qty int) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE products SET stock = stock - $1 WHERE id = $2 AND is_active AND stock >= $1`,
		qty, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return insufficientStock(productID)
	}
	return nil
}

func (t *txRepo) ReturnStock(ctx context.Context, productID int64, qty int) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE products SET stock = stock + $1 WHERE id = $2`, qty, productID)
	return err
}
