package products

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bodega-app/bodega/internal/masterdata/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, error)
	Create(ctx context.Context, product Product) (Product, error)
	Update(ctx context.Context, id int64, product Product) error
	SetActive(ctx context.Context, id int64, active bool) error
	DeleteHard(ctx context.Context, id int64) error
	CategoryExists(ctx context.Context, id int64) (bool, error)
	SupplierExists(ctx context.Context, id int64) (bool, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const selectColumns = `p.id, p.name, p.description, p.purchase_price, p.sale_price, p.stock,
	p.entry_date, p.category_id, p.supplier_id, p.is_active,
	COALESCE(c.name, '') AS category, COALESCE(s.name, '') AS supplier`

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Product, error) {
	query := `SELECT ` + selectColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		LEFT JOIN suppliers s ON s.id = p.supplier_id
		WHERE 1=1`
	args := []any{}
	argCount := 0

	if filters.IsActive != nil {
		argCount++
		query += ` AND p.is_active = $` + strconv.Itoa(argCount)
		args = append(args, *filters.IsActive)
	}
	if filters.CategoryID != nil {
		argCount++
		query += ` AND p.category_id = $` + strconv.Itoa(argCount)
		args = append(args, *filters.CategoryID)
	}
	if filters.Search != "" {
		argCount++
		query += ` AND p.name ILIKE $` + strconv.Itoa(argCount)
		args = append(args, "%"+filters.Search+"%")
	}
	query += ` ORDER BY p.name ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.PurchasePrice, &p.SalePrice,
			&p.Stock, &p.EntryDate, &p.CategoryID, &p.SupplierID, &p.IsActive,
			&p.CategoryName, &p.SupplierName); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Product, error) {
	query := `SELECT ` + selectColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		LEFT JOIN suppliers s ON s.id = p.supplier_id
		WHERE p.id = $1`
	var p Product
	err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description,
		&p.PurchasePrice, &p.SalePrice, &p.Stock, &p.EntryDate, &p.CategoryID,
		&p.SupplierID, &p.IsActive, &p.CategoryName, &p.SupplierName)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, shared.ErrNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, product Product) (Product, error) {
	query := `INSERT INTO products (name, description, purchase_price, sale_price, stock, entry_date, category_id, supplier_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE) RETURNING id`
	if product.EntryDate.IsZero() {
		product.EntryDate = time.Now()
	}
	err := r.db.QueryRow(ctx, query, product.Name, product.Description,
		product.PurchasePrice, product.SalePrice, product.Stock, product.EntryDate,
		product.CategoryID, product.SupplierID).Scan(&product.ID)
	if err != nil {
		return Product{}, err
	}
	product.IsActive = true
	return product, nil
}

func (r *repository) Update(ctx context.Context, id int64, product Product) error {
	query := `UPDATE products SET name = $1, description = $2, purchase_price = $3,
		sale_price = $4, stock = $5, entry_date = $6, category_id = $7, supplier_id = $8
		WHERE id = $9 AND is_active`
	tag, err := r.db.Exec(ctx, query, product.Name, product.Description,
		product.PurchasePrice, product.SalePrice, product.Stock, product.EntryDate,
		product.CategoryID, product.SupplierID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE products SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) DeleteHard(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23503 foreign_key_violation: purchase or sale lines still reference the row.
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return shared.ErrReferenced
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) CategoryExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *repository) SupplierExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM suppliers WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}
