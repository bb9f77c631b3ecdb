package service

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/Sreejithpr/Costume-rentals/internal/database"
	"github.com/Sreejithpr/Costume-rentals/internal/model"
	"github.com/Sreejithpr/Costume-rentals/internal/queue"
	"github.com/Sreejithpr/Costume-rentals/internal/repository"
)

// RentalService manages the rental lifecycle: creation against
// available stock, returns, cancellations and note updates.
// Capacity tracking never decrements stock_quantity; remaining
// capacity is the computed available stock (stock minus ACTIVE
// rentals) and the stored available flag is flipped as a side
// effect exactly where the shop's original workflow flipped it.
type RentalService struct {
	runner    database.TxRunner
	customers CustomerStore
	costumes  CostumeStore
	rentals   RentalStore
	billing   *BillingService
	events    *queue.Publisher
	now       func() time.Time
}

// NewRentalService wires the lifecycle manager.  billing must be
// non-nil; events may be nil to disable broker messages.
func NewRentalService(runner database.TxRunner, customers CustomerStore, costumes CostumeStore, rentals RentalStore, billing *BillingService, events *queue.Publisher) *RentalService {
	return &RentalService{
		runner:    runner,
		customers: customers,
		costumes:  costumes,
		rentals:   rentals,
		billing:   billing,
		events:    events,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateRental opens a new ACTIVE rental for a customer and
// costume.  It fails with ErrCustomerNotFound / ErrCostumeNotFound
// when either id does not resolve, and with ErrCostumeUnavailable
// when the costume's stored flag is off or its computed available
// stock is zero.  When this rental takes the last available unit
// the stored flag is switched off in the same transaction.  With
// generateBill set, the rental's bill is generated immediately.
func (s *RentalService) CreateRental(ctx context.Context, customerID, costumeID uint64, rentalDate, expectedReturnDate time.Time, notes *string, generateBill bool) (*model.Rental, error) {
	var rental *model.Rental
	err := s.runner.RunTx(ctx, func(tx *sql.Tx) error {
		if _, err := s.customers.GetByIDTx(ctx, tx, customerID); err != nil {
			return err
		}
		costume, err := s.costumes.GetByIDTx(ctx, tx, costumeID)
		if err != nil {
			return err
		}
		if !costume.Available || costume.AvailableStock <= 0 {
			return repository.ErrCostumeUnavailable
		}

		rental, err = s.rentals.CreateTx(ctx, tx, &model.Rental{
			CustomerID:         customerID,
			CostumeID:          costumeID,
			RentalDate:         dateOnly(rentalDate),
			ExpectedReturnDate: dateOnly(expectedReturnDate),
			Status:             model.RentalStatusActive,
			Notes:              notes,
		})
		if err != nil {
			return err
		}

		// This rental consumes the last unit.
		if costume.AvailableStock <= 1 {
			if err := s.costumes.SetAvailableTx(ctx, tx, costume.ID, false); err != nil {
				return err
			}
		}

		if generateBill {
			if _, _, err := s.billing.generateForRentalTx(ctx, tx, rental); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

// ReturnCostume closes an ACTIVE rental: records the actual return
// date, moves the rental to RETURNED, restores the costume's
// stored available flag when it has any stock, and generates the
// rental's bill (idempotently) in the same transaction.  Fails
// with ErrRentalNotFound / ErrRentalNotActive.
func (s *RentalService) ReturnCostume(ctx context.Context, rentalID uint64, actualReturnDate time.Time) (*model.Rental, error) {
	var (
		rental  *model.Rental
		costume *model.Costume
	)
	err := s.runner.RunTx(ctx, func(tx *sql.Tx) error {
		r, err := s.rentals.GetByIDTx(ctx, tx, rentalID)
		if err != nil {
			return err
		}
		if r.Status != model.RentalStatusActive {
			return repository.ErrRentalNotActive
		}

		returned := dateOnly(actualReturnDate)
		if err := s.rentals.SetReturnedTx(ctx, tx, r.ID, returned); err != nil {
			return err
		}
		r.ActualReturnDate = &returned
		r.Status = model.RentalStatusReturned

		// Original behavior: any positive stock flips the flag back
		// on, regardless of other rentals still out on this costume.
		costume, err = s.costumes.GetByIDTx(ctx, tx, r.CostumeID)
		if err != nil {
			return err
		}
		if costume.StockQuantity > 0 {
			if err := s.costumes.SetAvailableTx(ctx, tx, costume.ID, true); err != nil {
				return err
			}
		}

		if _, _, err := s.billing.generateForRentalTx(ctx, tx, r); err != nil {
			return err
		}
		rental = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publishReturned(ctx, rental, costume)
	return rental, nil
}

// CancelRental aborts an ACTIVE rental without generating a bill.
// The costume-availability side effect matches ReturnCostume.
func (s *RentalService) CancelRental(ctx context.Context, rentalID uint64) (*model.Rental, error) {
	var rental *model.Rental
	err := s.runner.RunTx(ctx, func(tx *sql.Tx) error {
		r, err := s.rentals.GetByIDTx(ctx, tx, rentalID)
		if err != nil {
			return err
		}
		if r.Status != model.RentalStatusActive {
			return repository.ErrRentalNotActive
		}
		if err := s.rentals.SetStatusTx(ctx, tx, r.ID, model.RentalStatusCancelled); err != nil {
			return err
		}
		r.Status = model.RentalStatusCancelled

		costume, err := s.costumes.GetByIDTx(ctx, tx, r.CostumeID)
		if err != nil {
			return err
		}
		if costume.StockQuantity > 0 {
			if err := s.costumes.SetAvailableTx(ctx, tx, costume.ID, true); err != nil {
				return err
			}
		}
		rental = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

// UpdateRentalNotes overwrites the rental's notes field.  A nil
// value clears it.
func (s *RentalService) UpdateRentalNotes(ctx context.Context, rentalID uint64, notes *string) (*model.Rental, error) {
	var rental *model.Rental
	err := s.runner.RunTx(ctx, func(tx *sql.Tx) error {
		r, err := s.rentals.GetByIDTx(ctx, tx, rentalID)
		if err != nil {
			return err
		}
		if err := s.rentals.SetNotesTx(ctx, tx, r.ID, notes); err != nil {
			return err
		}
		r.Notes = notes
		rental = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

// AllRentals returns every rental.
func (s *RentalService) AllRentals(ctx context.Context) ([]model.Rental, error) {
	return s.rentals.List(ctx)
}

// RentalByID returns one rental or ErrRentalNotFound.
func (s *RentalService) RentalByID(ctx context.Context, id uint64) (*model.Rental, error) {
	return s.rentals.GetByID(ctx, id)
}

// ActiveRentals returns rentals currently out.
func (s *RentalService) ActiveRentals(ctx context.Context) ([]model.Rental, error) {
	return s.rentals.ListByStatus(ctx, model.RentalStatusActive)
}

// OverdueRentals returns ACTIVE rentals whose expected return date
// has passed, evaluated at call time.
func (s *RentalService) OverdueRentals(ctx context.Context) ([]model.Rental, error) {
	return s.rentals.ListOverdue(ctx, s.now())
}

// RentalsByCustomer returns a customer's rentals.
func (s *RentalService) RentalsByCustomer(ctx context.Context, customerID uint64) ([]model.Rental, error) {
	return s.rentals.ListByCustomer(ctx, customerID)
}

// RentalsByCostume returns a costume's rentals.
func (s *RentalService) RentalsByCostume(ctx context.Context, costumeID uint64) ([]model.Rental, error) {
	return s.rentals.ListByCostume(ctx, costumeID)
}

// RentalsBetween returns rentals started in [start, end].
func (s *RentalService) RentalsBetween(ctx context.Context, start, end time.Time) ([]model.Rental, error) {
	return s.rentals.ListBetween(ctx, start, end)
}

// RentalsByCustomerAndStatus filters on both owner and state.
func (s *RentalService) RentalsByCustomerAndStatus(ctx context.Context, customerID uint64, status string) ([]model.Rental, error) {
	return s.rentals.ListByCustomerAndStatus(ctx, customerID, status)
}

func (s *RentalService) publishReturned(ctx context.Context, r *model.Rental, c *model.Costume) {
	if s.events == nil || r == nil {
		return
	}
	var lateDays int64
	if r.ActualReturnDate != nil && r.ActualReturnDate.After(r.ExpectedReturnDate) {
		lateDays = wholeDays(r.ExpectedReturnDate, *r.ActualReturnDate)
	}
	ev := queue.RentalReturnedEvent{
		RentalID:    r.ID,
		CustomerID:  r.CustomerID,
		CostumeID:   r.CostumeID,
		CostumeName: c.Name,
		ReturnedAt:  r.ActualReturnDate.Format("2006-01-02"),
		LateDays:    lateDays,
	}
	if err := s.events.PublishRentalReturned(ctx, ev); err != nil {
		log.Printf("rental: publish rental.returned failed: %v", err)
	}
}
