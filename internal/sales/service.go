package sales

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

// Service orchestrates sale flows.
type Service struct {
	repo RepositoryPort
}

// NewService constructs the sale service.
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
	SaleDate      time.Time
	PaymentStatus PaymentStatus
	Lines         []LineInput
}

// List returns all active sales.
func (s *Service) List(ctx context.Context) ([]Detail, error) {
	return s.repo.List(ctx)
}

// Get returns an active sale by id.
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

// Create inserts header and lines and deducts each product's stock inside
// one transaction. Any line without sufficient stock aborts the whole sale.
func (s *Service) Create(ctx context.Context, input CreateInput) (Detail, error) {
	if err := validateLines(input.Lines); err != nil {
		return Detail{}, err
	}
	status := input.PaymentStatus
	if status == "" {
		status = PaymentUnpaid
	}
	if !status.Valid() {
		return Detail{}, fmt.Errorf("%w: payment_status must be PAID or UNPAID", ErrValidation)
	}
	header := Sale{
		Number:        generateNumber("SAL"),
		SaleDate:      orNow(input.SaleDate),
		Total:         linesTotal(input.Lines),
		PaymentStatus: status,
	}

	var saleID int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		var err error
		saleID, err = tx.InsertSale(ctx, header)
		if err != nil {
			return err
		}
		return applyLines(ctx, tx, saleID, input.Lines)
	})
	if err != nil {
		return Detail{}, err
	}
	return s.repo.Get(ctx, saleID)
}

// Update replaces the entire line set of an unpaid sale: the old lines'
// stock is returned, the lines are deleted and the new set is deducted
// with the same sufficiency check as Create. Paid sales are immutable.
func (s *Service) Update(ctx context.Context, id int64, input CreateInput) (Detail, error) {
	if err := validateLines(input.Lines); err != nil {
		return Detail{}, err
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		header, err := tx.GetHeader(ctx, id)
		if err != nil {
			return err
		}
		if !header.IsActive {
			return ErrNotFound
		}
		if header.PaymentStatus == PaymentPaid {
			return ErrPaid
		}

		previous, err := tx.GetLines(ctx, id)
		if err != nil {
			return err
		}
		for _, line := range previous {
			if err := tx.ReturnStock(ctx, line.ProductID, line.Qty); err != nil {
				return err
			}
		}
		if err := tx.DeleteLines(ctx, id); err != nil {
			return err
		}

		header.SaleDate = orNow(input.SaleDate)
		header.Total = linesTotal(input.Lines)
		if err := tx.UpdateSale(ctx, id, header); err != nil {
			return err
		}
		return applyLines(ctx, tx, id, input.Lines)
	})
	if err != nil {
		return Detail{}, err
	}
	return s.repo.Get(ctx, id)
}

// Delete logically disables an unpaid sale and returns its stock.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		header, err := tx.GetHeader(ctx, id)
		if err != nil {
			return err
		}
		if !header.IsActive {
			return ErrNotFound
		}
		if header.PaymentStatus == PaymentPaid {
			return ErrPaid
		}
		lines, err := tx.GetLines(ctx, id)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if err := tx.ReturnStock(ctx, line.ProductID, line.Qty); err != nil {
				return err
			}
		}
		return tx.SetActive(ctx, id, false)
	})
}

// Restore re-enables a disabled sale and deducts its stock again, subject
// to the same sufficiency check as a new sale.
func (s *Service) Restore(ctx context.Context, id int64) error {
	return s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		header, err := tx.GetHeader(ctx, id)
		if err != nil {
			return err
		}
		if header.IsActive {
			return fmt.Errorf("%w: sale %d is not disabled", ErrValidation, id)
		}
		lines, err := tx.GetLines(ctx, id)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if err := tx.DeductStock(ctx, line.ProductID, line.Qty); err != nil {
				return err
			}
		}
		return tx.SetActive(ctx, id, true)
	})
}

// SetPaymentStatus flips the payment flag on an active sale.
func (s *Service) SetPaymentStatus(ctx context.Context, id int64, status PaymentStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: payment_status must be PAID or UNPAID", ErrValidation)
	}
	return s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		header, err := tx.GetHeader(ctx, id)
		if err != nil {
			return err
		}
		if !header.IsActive {
			return ErrNotFound
		}
		return tx.SetPaymentStatus(ctx, id, status)
	})
}

func applyLines(ctx context.Context, tx TxRepository, saleID int64, lines []LineInput) error {
	for _, line := range lines {
		if err := tx.InsertLine(ctx, Line{
			SaleID:    saleID,
			ProductID: line.ProductID,
			Qty:       line.Qty,
			UnitPrice: line.UnitPrice,
		}); err != nil {
			return err
		}
		if err := tx.DeductStock(ctx, line.ProductID, line.Qty); err != nil {
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
