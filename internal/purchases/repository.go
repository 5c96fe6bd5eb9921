package purchases

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

// TxRepository exposes the statements available inside a purchase write
// transaction. Every method runs on the same pgx.Tx, so a write path cannot
// accidentally issue a statement outside the transaction.
type TxRepository interface {
	SupplierActive(ctx context.Context, id int64) (bool, error)
	ProductActive(ctx context.Context, id int64) (bool, error)
	InsertPurchase(ctx context.Context, p Purchase) (int64, error)
	UpdatePurchase(ctx context.Context, id int64, p Purchase) error
	SetActive(ctx context.Context, id int64, active bool) error
	GetHeader(ctx context.Context, id int64) (Purchase, error)
	GetLines(ctx context.Context, purchaseID int64) ([]Line, error)
	InsertLine(ctx context.Context, line Line) error
	DeleteLines(ctx context.Context, purchaseID int64) error
	AddStock(ctx context.Context, productID int64, delta int) error
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

const detailQuery = `SELECT c.id, c.number, c.supplier_id, COALESCE(s.name, '') AS supplier,
		c.purchase_date, c.total, c.is_active,
		i.product_id, COALESCE(p.name, '') AS product, i.qty, i.unit_price
	FROM purchases c
	JOIN purchase_items i ON i.purchase_id = c.id
	LEFT JOIN suppliers s ON s.id = c.supplier_id
	LEFT JOIN products p ON p.id = i.product_id`

// List returns active purchases with their lines, newest first.
func (r *Repository) List(ctx context.Context) ([]Detail, error) {
	rows, err := r.pool.Query(ctx, detailQuery+`
		WHERE c.is_active
		ORDER BY c.purchase_date DESC, c.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return groupDetails(rows)
}

// Get returns one purchase with its lines regardless of the enabled flag;
// callers decide whether a disabled document is visible.
func (r *Repository) Get(ctx context.Context, id int64) (Detail, error) {
	rows, err := r.pool.Query(ctx, detailQuery+` WHERE c.id = $1`, id)
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
		var header Purchase
		var line Line
		if err := rows.Scan(&header.ID, &header.Number, &header.SupplierID, &header.SupplierName,
			&header.PurchaseDate, &header.Total, &header.IsActive,
			&line.ProductID, &line.ProductName, &line.Qty, &line.UnitPrice); err != nil {
			return nil, err
		}
		pos, ok := index[header.ID]
		if !ok {
			details = append(details, Detail{Purchase: header})
			pos = len(details) - 1
			index[header.ID] = pos
		}
		line.PurchaseID = header.ID
		details[pos].Lines = append(details[pos].Lines, line)
	}
	return details, rows.Err()
}

func (t *txRepo) SupplierActive(ctx context.Context, id int64) (bool, error) {
	var active bool
	err := t.tx.QueryRow(ctx, `SELECT is_active FROM suppliers WHERE id = $1`, id).Scan(&active)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return active, err
}

func (t *txRepo) ProductActive(ctx context.Context, id int64) (bool, error) {
	var active bool
	err := t.tx.QueryRow(ctx, `SELECT is_active FROM products WHERE id = $1`, id).Scan(&active)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return active, err
}

func (t *txRepo) InsertPurchase(ctx context.Context, p Purchase) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx,
		`INSERT INTO purchases (number, supplier_id, purchase_date, total, is_active) VALUES ($1, $2, $3, $4, TRUE) RETURNING id`,
		p.Number, p.SupplierID, p.PurchaseDate, p.Total).Scan(&id)
	return id, err
}

func (t *txRepo) UpdatePurchase(ctx context.Context, id int64, p Purchase) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE purchases SET supplier_id = $1, purchase_date = $2, total = $3 WHERE id = $4`,
		p.SupplierID, p.PurchaseDate, p.Total, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *txRepo) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := t.tx.Exec(ctx, `UPDATE purchases SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *txRepo) GetHeader(ctx context.Context, id int64) (Purchase, error) {
	var p Purchase
	err := t.tx.QueryRow(ctx,
		`SELECT id, number, supplier_id, purchase_date, total, is_active FROM purchases WHERE id = $1`, id).
		Scan(&p.ID, &p.Number, &p.SupplierID, &p.PurchaseDate, &p.Total, &p.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return Purchase{}, ErrNotFound
	}
	return p, err
}

func (t *txRepo) GetLines(ctx context.Context, purchaseID int64) ([]Line, error) {
	rows, err := t.tx.Query(ctx,
		`SELECT id, purchase_id, product_id, qty, unit_price FROM purchase_items WHERE purchase_id = $1`, purchaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ID, &l.PurchaseID, &l.ProductID, &l.Qty, &l.UnitPrice); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (t *txRepo) InsertLine(ctx context.Context, line Line) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO purchase_items (purchase_id, product_id, qty, unit_price) VALUES ($1, $2, $3, $4)`,
		line.PurchaseID, line.ProductID, line.Qty, line.UnitPrice)
	return err
}

func (t *txRepo) DeleteLines(ctx context.Context, purchaseID int64) error {
	_, err := t.tx.Exec(ctx, `DELETE FROM purchase_items WHERE purchase_id = $1`, purchaseID)
	return err
}

func (t *txRepo) AddStock(ctx context.Context, productID int64, delta int) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE products SET stock = stock + $1 WHERE id = $2`, delta, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return productMissing(productID)
	}
	return nil
}
