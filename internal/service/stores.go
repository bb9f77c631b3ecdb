// Package service implements the rental lifecycle manager and the
// billing calculator.  Each operation runs as exactly one database
// transaction via database.TxRunner; the store interfaces below are
// satisfied by the repository types and substituted with mocks in
// tests.
package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/Sreejithpr/Costume-rentals/internal/model"
)

// CustomerStore is the slice of the customer repository the
// lifecycle manager needs.
type CustomerStore interface {
	GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Customer, error)
}

// CostumeStore is the slice of the costume repository the core
// needs: transactional reads with computed available stock, plus
// the stored-flag side effect.
type CostumeStore interface {
	GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Costume, error)
	SetAvailableTx(ctx context.Context, tx *sql.Tx, id uint64, available bool) error
}

// RentalStore covers rental persistence and the derived queries
// exposed by the lifecycle manager.
type RentalStore interface {
	List(ctx context.Context) ([]model.Rental, error)
	GetByID(ctx context.Context, id uint64) (*model.Rental, error)
	GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Rental, error)
	ListByStatus(ctx context.Context, status string) ([]model.Rental, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]model.Rental, error)
	ListByCustomer(ctx context.Context, customerID uint64) ([]model.Rental, error)
	ListByCostume(ctx context.Context, costumeID uint64) ([]model.Rental, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]model.Rental, error)
	ListByCustomerAndStatus(ctx context.Context, customerID uint64, status string) ([]model.Rental, error)
	CreateTx(ctx context.Context, tx *sql.Tx, rec *model.Rental) (*model.Rental, error)
	SetReturnedTx(ctx context.Context, tx *sql.Tx, id uint64, actualReturnDate time.Time) error
	SetStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error
	SetNotesTx(ctx context.Context, tx *sql.Tx, id uint64, notes *string) error
}

// BillStore covers bill persistence and the derived queries exposed
// by the billing calculator.
type BillStore interface {
	List(ctx context.Context) ([]model.Bill, error)
	GetByID(ctx context.Context, id uint64) (*model.Bill, error)
	GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Bill, error)
	GetByRentalTx(ctx context.Context, tx *sql.Tx, rentalID uint64) (*model.Bill, error)
	ListByStatus(ctx context.Context, status string) ([]model.Bill, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]model.Bill, error)
	ListByCustomer(ctx context.Context, customerID uint64) ([]model.Bill, error)
	ListBilledBetween(ctx context.Context, start, end time.Time) ([]model.Bill, error)
	ListPaidBetween(ctx context.Context, start, end time.Time) ([]model.Bill, error)
	TotalRevenue(ctx context.Context, start, end time.Time) (int64, error)
	CreateTx(ctx context.Context, tx *sql.Tx, b *model.Bill) (*model.Bill, error)
	UpdateFeesTx(ctx context.Context, tx *sql.Tx, id uint64, damageFee, discount, total int64, notes *string) error
	MarkPaidTx(ctx context.Context, tx *sql.Tx, id uint64, paidDate time.Time, method string) error
}
