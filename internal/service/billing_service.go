package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/Sreejithpr/Costume-rentals/internal/database"
	"github.com/Sreejithpr/Costume-rentals/internal/model"
	"github.com/Sreejithpr/Costume-rentals/internal/queue"
	"github.com/Sreejithpr/Costume-rentals/internal/repository"
)

// Bills fall due this long after generation.
const billDueAfter = 30 * 24 * time.Hour

// BillingService derives bills from rentals and manages their
// payment lifecycle.  All monetary values are integer cents.  The
// late fee is half the daily rate per late day, computed with
// integer halving of (daily rate x late days).
type BillingService struct {
	runner   database.TxRunner
	costumes CostumeStore
	rentals  RentalStore
	bills    BillStore
	events   *queue.Publisher
	now      func() time.Time
}

// NewBillingService wires the billing calculator.  events may be
// nil, in which case no broker messages are published.
func NewBillingService(runner database.TxRunner, costumes CostumeStore, rentals RentalStore, bills BillStore, events *queue.Publisher) *BillingService {
	return &BillingService{
		runner:   runner,
		costumes: costumes,
		rentals:  rentals,
		bills:    bills,
		events:   events,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// dateOnly truncates a timestamp to midnight UTC so day arithmetic
// is insensitive to the time-of-day component of parsed dates.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// wholeDays returns the number of whole days from a to b.
func wholeDays(a, b time.Time) int64 {
	return int64(dateOnly(b).Sub(dateOnly(a)) / (24 * time.Hour))
}

// generateForRentalTx creates the bill for a rental inside an
// existing transaction, or returns the existing bill unchanged.
// Charged days run from the rental date through the effective end
// date inclusive, where the effective end is the actual return date
// when set and the expected return date otherwise.  The bill is
// never recomputed once it exists, even if the rental's dates have
// changed since.
func (s *BillingService) generateForRentalTx(ctx context.Context, tx *sql.Tx, rental *model.Rental) (*model.Bill, bool, error) {
	existing, err := s.bills.GetByRentalTx(ctx, tx, rental.ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrBillNotFound) {
		return nil, false, err
	}

	costume, err := s.costumes.GetByIDTx(ctx, tx, rental.CostumeID)
	if err != nil {
		return nil, false, err
	}

	end := rental.ExpectedReturnDate
	if rental.ActualReturnDate != nil {
		end = *rental.ActualReturnDate
	}
	rentalDays := wholeDays(rental.RentalDate, end) + 1
	baseAmount := costume.DailyRentalPriceCents * rentalDays

	var lateFee int64
	if rental.ActualReturnDate != nil && rental.ActualReturnDate.After(rental.ExpectedReturnDate) {
		lateDays := wholeDays(rental.ExpectedReturnDate, *rental.ActualReturnDate)
		lateFee = costume.DailyRentalPriceCents * lateDays / 2
	}

	now := s.now()
	due := now.Add(billDueAfter)
	bill, err := s.bills.CreateTx(ctx, tx, &model.Bill{
		RentalID:         rental.ID,
		TotalAmountCents: baseAmount + lateFee,
		LateFeeCents:     lateFee,
		BillDate:         now,
		DueDate:          &due,
		Status:           model.BillStatusPending,
	})
	if err != nil {
		return nil, false, err
	}
	return bill, true, nil
}

// GenerateBill creates the bill for a rental, or returns the
// existing one unchanged.  Returns ErrRentalNotFound when the
// rental id does not resolve.
func (s *BillingService) GenerateBill(ctx context.Context, rentalID uint64) (*model.Bill, error) {
	var (
		bill    *model.Bill
		created bool
	)
	err := s.runner.RunTx(ctx, func(tx *sql.Tx) error {
		rental, err := s.rentals.GetByIDTx(ctx, tx, rentalID)
		if err != nil {
			return err
		}
		bill, created, err = s.generateForRentalTx(ctx, tx, rental)
		return err
	})
	if err != nil {
		return nil, err
	}
	if created {
		s.publishIssued(ctx, bill)
	}
	return bill, nil
}

// UpdateBillWithFees overwrites the damage fee, discount and notes
// of a bill and recomputes the total.  Nil fee values reset the
// corresponding field to zero rather than leaving it unchanged.
// The base amount is recovered from the previous total, so the
// recomputation is idempotent across repeated calls.
func (s *BillingService) UpdateBillWithFees(ctx context.Context, billID uint64, damageFee, discount *int64, notes *string) (*model.Bill, error) {
	var bill *model.Bill
	err := s.runner.RunTx(ctx, func(tx *sql.Tx) error {
		b, err := s.bills.GetByIDTx(ctx, tx, billID)
		if err != nil {
			return err
		}
		var df, dc int64
		if damageFee != nil {
			df = *damageFee
		}
		if discount != nil {
			dc = *discount
		}
		baseAmount := b.TotalAmountCents - b.LateFeeCents - b.DamageFeeCents + b.DiscountCents
		total := baseAmount + b.LateFeeCents + df - dc
		if err := s.bills.UpdateFeesTx(ctx, tx, b.ID, df, dc, total, notes); err != nil {
			return err
		}
		b.DamageFeeCents = df
		b.DiscountCents = dc
		b.TotalAmountCents = total
		b.Notes = notes
		bill = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// MarkBillAsPaid settles a bill: status PAID, paid date now, and
// the given payment method.
func (s *BillingService) MarkBillAsPaid(ctx context.Context, billID uint64, paymentMethod string) (*model.Bill, error) {
	var bill *model.Bill
	err := s.runner.RunTx(ctx, func(tx *sql.Tx) error {
		b, err := s.bills.GetByIDTx(ctx, tx, billID)
		if err != nil {
			return err
		}
		paidAt := s.now()
		if err := s.bills.MarkPaidTx(ctx, tx, b.ID, paidAt, paymentMethod); err != nil {
			return err
		}
		b.Status = model.BillStatusPaid
		b.PaidDate = &paidAt
		b.PaymentMethod = &paymentMethod
		bill = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// AllBills returns every bill.
func (s *BillingService) AllBills(ctx context.Context) ([]model.Bill, error) {
	return s.bills.List(ctx)
}

// BillByID returns one bill or ErrBillNotFound.
func (s *BillingService) BillByID(ctx context.Context, id uint64) (*model.Bill, error) {
	return s.bills.GetByID(ctx, id)
}

// PendingBills returns bills awaiting payment.
func (s *BillingService) PendingBills(ctx context.Context) ([]model.Bill, error) {
	return s.bills.ListByStatus(ctx, model.BillStatusPending)
}

// OverdueBills returns PENDING bills past their due date.
func (s *BillingService) OverdueBills(ctx context.Context) ([]model.Bill, error) {
	return s.bills.ListOverdue(ctx, s.now())
}

// BillsByCustomer returns a customer's bills, joined through the
// rentals table.
func (s *BillingService) BillsByCustomer(ctx context.Context, customerID uint64) ([]model.Bill, error) {
	return s.bills.ListByCustomer(ctx, customerID)
}

// BillsBetween returns bills generated in [start, end].
func (s *BillingService) BillsBetween(ctx context.Context, start, end time.Time) ([]model.Bill, error) {
	return s.bills.ListBilledBetween(ctx, start, end)
}

// BillsPaidBetween returns bills paid in [start, end].
func (s *BillingService) BillsPaidBetween(ctx context.Context, start, end time.Time) ([]model.Bill, error) {
	return s.bills.ListPaidBetween(ctx, start, end)
}

// TotalRevenue sums PAID bills with a paid date in [start, end],
// bounds inclusive.  Zero, not an error, when nothing matches.
func (s *BillingService) TotalRevenue(ctx context.Context, start, end time.Time) (int64, error) {
	return s.bills.TotalRevenue(ctx, start, end)
}

func (s *BillingService) publishIssued(ctx context.Context, b *model.Bill) {
	if s.events == nil {
		return
	}
	due := ""
	if b.DueDate != nil {
		due = b.DueDate.Format(time.RFC3339)
	}
	ev := queue.BillIssuedEvent{
		BillID:           b.ID,
		RentalID:         b.RentalID,
		TotalAmountCents: b.TotalAmountCents,
		LateFeeCents:     b.LateFeeCents,
		BillDate:         b.BillDate.Format(time.RFC3339),
		DueDate:          due,
	}
	if err := s.events.PublishBillIssued(ctx, ev); err != nil {
		log.Printf("billing: publish bill.issued failed: %v", err)
	}
}
