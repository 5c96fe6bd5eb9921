package purchases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RepositoryPort describes repository operations used by Service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	List(ctx context.Context) ([]Detail, error)
	Get(ctx context.Context, id int64) (Detail, error)
}

// Service orchestrates purchase flows.
type Service struct {
	repo RepositoryPort
}

// NewService constructs the purchase service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// LineInput describes a requested line item.
type LineInput struct {
	ProductID int64
	Qty       int
	UnitPrice float64
}

// CreateInput describes the creation payload.
type CreateInput struct {
	SupplierID   int64
	PurchaseDate time.Time
	Lines        []LineInput
}

// List returns all active purchases.
func (s *Service) List(ctx context.Context) ([]Detail, error) {
	return s.repo.List(ctx)
}

// Get returns an active purchase by id.
func (s *Service) Get(ctx context.Context, id int64) (Detail, error) {
	detail, err := s.repo.Get(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	if !detail.IsActive {
		return Detail{}, ErrNotFound
	}
	return detail, nil
}

// Create inserts header and lines and increments each product's stock by the
// line quantity, all inside one transaction.
func (s *Service) Create(ctx context.Context, input CreateInput) (Detail, error) {
	if err := validateLines(input.Lines); err != nil {
		return Detail{}, err
	}
	if input.SupplierID <= 0 {
		return Detail{}, fmt.Errorf("%w: supplier id is required", ErrValidation)
	}
	header := Purchase{
		Number:       generateNumber("PUR"),
		SupplierID:   input.SupplierID,
		PurchaseDate: orNow(input.PurchaseDate),
		Total:        linesTotal(input.Lines),
	}

	var purchaseID int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		active, err := tx.SupplierActive(ctx, input.SupplierID)
		if err != nil {
			return err
		}
		if !active {
			return ErrSupplierNotFound
		}
		purchaseID, err = tx.InsertPurchase(ctx, header)
		if err != nil {
			return err
		}
		return applyLines(ctx, tx, purchaseID, input.Lines)
	})
	if err != nil {
		return Detail{}, err
	}
	return s.repo.Get(ctx, purchaseID)
}

// Update replaces the entire line set: the old lines' stock effect is
// reversed, the lines are deleted and the new set is applied. Net stock is
// therefore consistent with the new lines regardless of overlap.
func (s *Service) Update(ctx context.Context, id int64, input CreateInput) (Detail, error) {
	if err := validateLines(input.Lines); err != nil {
		return Detail{}, err
	}
	if input.SupplierID <= 0 {
		return Detail{}, fmt.Errorf("%w: supplier id is required", ErrValidation)
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		header, err := tx.GetHeader(ctx, id)
		if err != nil {
			return err
		}
		if !header.IsActive {
			return ErrNotFound
		}
		active, err := tx.SupplierActive(ctx, input.SupplierID)
		if err != nil {
			return err
		}
		if !active {
			return ErrSupplierNotFound
		}

		previous, err := tx.GetLines(ctx, id)
		if err != nil {
			return err
		}
		for _, line := range previous {
			if err := tx.AddStock(ctx, line.ProductID, -line.Qty); err != nil {
				return err
			}
		}
		if err := tx.DeleteLines(ctx, id); err != nil {
			return err
		}

		header.SupplierID = input.SupplierID
		header.PurchaseDate = orNow(input.PurchaseDate)
		header.Total = linesTotal(input.Lines)
		if err := tx.UpdatePurchase(ctx, id, header); err != nil {
			return err
		}
		return applyLines(ctx, tx, id, input.Lines)
	})
	if err != nil {
		return Detail{}, err
	}
	return s.repo.Get(ctx, id)
}

// Delete logically disables the purchase and reverses the stock effect of
// its current lines. There is no physical delete for purchase documents.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		header, err := tx.GetHeader(ctx, id)
		if err != nil {
			return err
		}
		if !header.IsActive {
			return ErrNotFound
		}
		lines, err := tx.GetLines(ctx, id)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if err := tx.AddStock(ctx, line.ProductID, -line.Qty); err != nil {
				return err
			}
		}
		return tx.SetActive(ctx, id, false)
	})
}

// Restore re-enables a disabled purchase and re-applies its stock effect.
func (s *Service) Restore(ctx context.Context, id int64) error {
	return s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		header, err := tx.GetHeader(ctx, id)
		if err != nil {
			return err
		}
		if header.IsActive {
			return fmt.Errorf("%w: purchase %d is not disabled", ErrValidation, id)
		}
		lines, err := tx.GetLines(ctx, id)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if err := tx.AddStock(ctx, line.ProductID, line.Qty); err != nil {
				return err
			}
		}
		return tx.SetActive(ctx, id, true)
	})
}

func applyLines(ctx context.Context, tx TxRepository, purchaseID int64, lines []LineInput) error {
	for _, line := range lines {
		active, err := tx.ProductActive(ctx, line.ProductID)
		if err != nil {
			return err
		}
		if !active {
			return productMissing(line.ProductID)
		}
		if err := tx.InsertLine(ctx, Line{
			PurchaseID: purchaseID,
			ProductID:  line.ProductID,
			Qty:        line.Qty,
			UnitPrice:  line.UnitPrice,
		}); err != nil {
			return err
		}
		if err := tx.AddStock(ctx, line.ProductID, line.Qty); err != nil {
			return err
		}
	}
	return nil
}

func validateLines(lines []LineInput) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: at least one line item is required", ErrValidation)
	}
	for _, line := range lines {
		if line.ProductID <= 0 || line.Qty <= 0 || line.UnitPrice <= 0 {
			return fmt.Errorf("%w: line items need a product, a positive qty and a positive unit price", ErrValidation)
		}
	}
	return nil
}

func linesTotal(lines []LineInput) float64 {
	var total float64
	for _, line := range lines {
		total += float64(line.Qty) * line.UnitPrice
	}
	return total
}

func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

func generateNumber(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}
