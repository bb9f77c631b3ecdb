package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/Sreejithpr/Costume-rentals/internal/database"
	"github.com/Sreejithpr/Costume-rentals/internal/model"
	"github.com/Sreejithpr/Costume-rentals/internal/repository"
)

// stubRunner satisfies database.TxRunner without a database: it
// invokes the body with a nil *sql.Tx, which the mocks below
// ignore.
type stubRunner struct{}

func (stubRunner) RunTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return fn(nil)
}

var _ database.TxRunner = stubRunner{}

type mockCustomerStore struct {
	GetByIDTxFn func(id uint64) (*model.Customer, error)
}

func (m *mockCustomerStore) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Customer, error) {
	return m.GetByIDTxFn(id)
}

type mockCostumeStore struct {
	GetByIDTxFn      func(id uint64) (*model.Costume, error)
	SetAvailableTxFn func(id uint64, available bool) error
}

func (m *mockCostumeStore) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Costume, error) {
	return m.GetByIDTxFn(id)
}

func (m *mockCostumeStore) SetAvailableTx(ctx context.Context, tx *sql.Tx, id uint64, available bool) error {
	if m.SetAvailableTxFn == nil {
		return nil
	}
	return m.SetAvailableTxFn(id, available)
}

type mockRentalStore struct {
	GetByIDTxFn     func(id uint64) (*model.Rental, error)
	CreateTxFn      func(rec *model.Rental) (*model.Rental, error)
	SetReturnedTxFn func(id uint64, actualReturnDate time.Time) error
	SetStatusTxFn   func(id uint64, status string) error
	SetNotesTxFn    func(id uint64, notes *string) error
}

func (m *mockRentalStore) List(ctx context.Context) ([]model.Rental, error) { return nil, nil }

func (m *mockRentalStore) GetByID(ctx context.Context, id uint64) (*model.Rental, error) {
	return m.GetByIDTxFn(id)
}

func (m *mockRentalStore) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Rental, error) {
	return m.GetByIDTxFn(id)
}

func (m *mockRentalStore) ListByStatus(ctx context.Context, status string) ([]model.Rental, error) {
	return nil, nil
}

func (m *mockRentalStore) ListOverdue(ctx context.Context, asOf time.Time) ([]model.Rental, error) {
	return nil, nil
}

func (m *mockRentalStore) ListByCustomer(ctx context.Context, customerID uint64) ([]model.Rental, error) {
	return nil, nil
}

func (m *mockRentalStore) ListByCostume(ctx context.Context, costumeID uint64) ([]model.Rental, error) {
	return nil, nil
}

func (m *mockRentalStore) ListBetween(ctx context.Context, start, end time.Time) ([]model.Rental, error) {
	return nil, nil
}

func (m *mockRentalStore) ListByCustomerAndStatus(ctx context.Context, customerID uint64, status string) ([]model.Rental, error) {
	return nil, nil
}

func (m *mockRentalStore) CreateTx(ctx context.Context, tx *sql.Tx, rec *model.Rental) (*model.Rental, error) {
	return m.CreateTxFn(rec)
}

func (m *mockRentalStore) SetReturnedTx(ctx context.Context, tx *sql.Tx, id uint64, actualReturnDate time.Time) error {
	return m.SetReturnedTxFn(id, actualReturnDate)
}

func (m *mockRentalStore) SetStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	return m.SetStatusTxFn(id, status)
}

func (m *mockRentalStore) SetNotesTx(ctx context.Context, tx *sql.Tx, id uint64, notes *string) error {
	return m.SetNotesTxFn(id, notes)
}

type mockBillStore struct {
	GetByIDTxFn     func(id uint64) (*model.Bill, error)
	GetByRentalTxFn func(rentalID uint64) (*model.Bill, error)
	CreateTxFn      func(b *model.Bill) (*model.Bill, error)
	UpdateFeesTxFn  func(id uint64, damageFee, discount, total int64, notes *string) error
	MarkPaidTxFn    func(id uint64, paidDate time.Time, method string) error
	TotalRevenueFn  func(start, end time.Time) (int64, error)
}

func (m *mockBillStore) List(ctx context.Context) ([]model.Bill, error) { return nil, nil }

func (m *mockBillStore) GetByID(ctx context.Context, id uint64) (*model.Bill, error) {
	return m.GetByIDTxFn(id)
}

func (m *mockBillStore) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Bill, error) {
	return m.GetByIDTxFn(id)
}

func (m *mockBillStore) GetByRentalTx(ctx context.Context, tx *sql.Tx, rentalID uint64) (*model.Bill, error) {
	if m.GetByRentalTxFn == nil {
		return nil, repository.ErrBillNotFound
	}
	return m.GetByRentalTxFn(rentalID)
}

func (m *mockBillStore) ListByStatus(ctx context.Context, status string) ([]model.Bill, error) {
	return nil, nil
}

func (m *mockBillStore) ListOverdue(ctx context.Context, asOf time.Time) ([]model.Bill, error) {
	return nil, nil
}

func (m *mockBillStore) ListByCustomer(ctx context.Context, customerID uint64) ([]model.Bill, error) {
	return nil, nil
}

func (m *mockBillStore) ListBilledBetween(ctx context.Context, start, end time.Time) ([]model.Bill, error) {
	return nil, nil
}

func (m *mockBillStore) ListPaidBetween(ctx context.Context, start, end time.Time) ([]model.Bill, error) {
	return nil, nil
}

func (m *mockBillStore) TotalRevenue(ctx context.Context, start, end time.Time) (int64, error) {
	if m.TotalRevenueFn == nil {
		return 0, nil
	}
	return m.TotalRevenueFn(start, end)
}

func (m *mockBillStore) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Bill) (*model.Bill, error) {
	return m.CreateTxFn(b)
}

func (m *mockBillStore) UpdateFeesTx(ctx context.Context, tx *sql.Tx, id uint64, damageFee, discount, total int64, notes *string) error {
	return m.UpdateFeesTxFn(id, damageFee, discount, total, notes)
}

func (m *mockBillStore) MarkPaidTx(ctx context.Context, tx *sql.Tx, id uint64, paidDate time.Time, method string) error {
	return m.MarkPaidTxFn(id, paidDate, method)
}

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func ptrTime(t time.Time) *time.Time { return &t }

func ptrStr(s string) *string { return &s }

func ptrInt64(v int64) *int64 { return &v }
