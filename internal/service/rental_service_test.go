package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Sreejithpr/Costume-rentals/internal/model"
	"github.com/Sreejithpr/Costume-rentals/internal/repository"
)

func newRentalForTest(customers CustomerStore, costumes CostumeStore, rentals RentalStore, bills BillStore) *RentalService {
	billing := newBillingForTest(costumes, rentals, bills)
	s := NewRentalService(stubRunner{}, customers, costumes, rentals, billing, nil)
	s.now = billing.now
	return s
}

func okCustomer() *mockCustomerStore {
	return &mockCustomerStore{
		GetByIDTxFn: func(id uint64) (*model.Customer, error) {
			return &model.Customer{ID: id, FirstName: "Asha"}, nil
		},
	}
}

func TestCreateRental(t *testing.T) {
	costumes := &mockCostumeStore{
		GetByIDTxFn: func(id uint64) (*model.Costume, error) {
			return &model.Costume{ID: 3, Available: true, StockQuantity: 3, AvailableStock: 3, DailyRentalPriceCents: 2000}, nil
		},
		SetAvailableTxFn: func(id uint64, available bool) error {
			t.Fatal("flag must not flip while stock remains")
			return nil
		},
	}
	var created *model.Rental
	rentals := &mockRentalStore{
		CreateTxFn: func(rec *model.Rental) (*model.Rental, error) {
			rec.ID = 7
			created = rec
			return rec, nil
		},
	}
	bills := &mockBillStore{
		CreateTxFn: func(b *model.Bill) (*model.Bill, error) { b.ID = 42; return b, nil },
	}

	s := newRentalForTest(okCustomer(), costumes, rentals, bills)
	rental, err := s.CreateRental(context.Background(), 1, 3, day("2026-01-10"), day("2026-01-14"), ptrStr("wedding"), true)
	require.NoError(t, err)
	require.Equal(t, created, rental)
	require.Equal(t, model.RentalStatusActive, rental.Status)
	require.Equal(t, day("2026-01-10"), rental.RentalDate)
	require.Nil(t, rental.ActualReturnDate)
	require.Equal(t, "wedding", *rental.Notes)
}

func TestCreateRental_GenerateBillInSameTransaction(t *testing.T) {
	costumes := &mockCostumeStore{
		GetByIDTxFn: func(id uint64) (*model.Costume, error) {
			return &model.Costume{ID: 3, Available: true, StockQuantity: 3, AvailableStock: 2, DailyRentalPriceCents: 2000}, nil
		},
	}
	rentals := &mockRentalStore{
		CreateTxFn: func(rec *model.Rental) (*model.Rental, error) { rec.ID = 7; return rec, nil },
	}
	var billed *model.Bill
	bills := &mockBillStore{
		CreateTxFn: func(b *model.Bill) (*model.Bill, error) { billed = b; return b, nil },
	}

	s := newRentalForTest(okCustomer(), costumes, rentals, bills)
	_, err := s.CreateRental(context.Background(), 1, 3, day("2026-01-10"), day("2026-01-14"), nil, true)
	require.NoError(t, err)
	require.NotNil(t, billed)
	// 5 inclusive days at 20.00, no actual return date yet.
	require.Equal(t, int64(10000), billed.TotalAmountCents)
	require.Equal(t, uint64(7), billed.RentalID)
}

func TestCreateRental_SkipBill(t *testing.T) {
	costumes := &mockCostumeStore{
		GetByIDTxFn: func(id uint64) (*model.Costume, error) {
			return &model.Costume{ID: 3, Available: true, StockQuantity: 3, AvailableStock: 2}, nil
		},
	}
	rentals := &mockRentalStore{
		CreateTxFn: func(rec *model.Rental) (*model.Rental, error) { rec.ID = 7; return rec, nil },
	}
	bills := &mockBillStore{
		CreateTxFn: func(b *model.Bill) (*model.Bill, error) {
			t.Fatal("no bill expected")
			return nil, nil
		},
	}

	s := newRentalForTest(okCustomer(), costumes, rentals, bills)
	_, err := s.CreateRental(context.Background(), 1, 3, day("2026-01-10"), day("2026-01-14"), nil, false)
	require.NoError(t, err)
}

func TestCreateRental_LastUnitFlipsFlag(t *testing.T) {
	var flipped []bool
	costumes := &mockCostumeStore{
		GetByIDTxFn: func(id uint64) (*model.Costume, error) {
			return &model.Costume{ID: 3, Available: true, StockQuantity: 1, AvailableStock: 1}, nil
		},
		SetAvailableTxFn: func(id uint64, available bool) error {
			flipped = append(flipped, available)
			return nil
		},
	}
	rentals := &mockRentalStore{
		CreateTxFn: func(rec *model.Rental) (*model.Rental, error) { rec.ID = 7; return rec, nil },
	}

	s := newRentalForTest(okCustomer(), costumes, rentals, &mockBillStore{})
	_, err := s.CreateRental(context.Background(), 1, 3, day("2026-01-10"), day("2026-01-14"), nil, false)
	require.NoError(t, err)
	require.Equal(t, []bool{false}, flipped)
}

func TestCreateRental_NoStockLeft(t *testing.T) {
	costumes := &mockCostumeStore{
		GetByIDTxFn: func(id uint64) (*model.Costume, error) {
			// Flag still on but every unit is out.
			return &model.Costume{ID: 3, Available: true, StockQuantity: 2, AvailableStock: 0}, nil
		},
	}
	rentals := &mockRentalStore{
		CreateTxFn: func(rec *model.Rental) (*model.Rental, error) {
			t.Fatal("rental must not be created")
			return nil, nil
		},
	}

	s := newRentalForTest(okCustomer(), costumes, rentals, &mockBillStore{})
	_, err := s.CreateRental(context.Background(), 1, 3, day("2026-01-10"), day("2026-01-14"), nil, true)
	require.ErrorIs(t, err, repository.ErrCostumeUnavailable)
}

func TestCreateRental_FlagOff(t *testing.T) {
	costumes := &mockCostumeStore{
		GetByIDTxFn: func(id uint64) (*model.Costume, error) {
			return &model.Costume{ID: 3, Available: false, StockQuantity: 2, AvailableStock: 2}, nil
		},
	}
	s := newRentalForTest(okCustomer(), costumes, &mockRentalStore{}, &mockBillStore{})
	_, err := s.CreateRental(context.Background(), 1, 3, day("2026-01-10"), day("2026-01-14"), nil, true)
	require.ErrorIs(t, err, repository.ErrCostumeUnavailable)
}

func TestCreateRental_CustomerNotFound(t *testing.T) {
	customers := &mockCustomerStore{
		GetByIDTxFn: func(id uint64) (*model.Customer, error) { return nil, repository.ErrCustomerNotFound },
	}
	s := newRentalForTest(customers, &mockCostumeStore{}, &mockRentalStore{}, &mockBillStore{})
	_, err := s.CreateRental(context.Background(), 999, 3, day("2026-01-10"), day("2026-01-14"), nil, true)
	require.ErrorIs(t, err, repository.ErrCustomerNotFound)
}

func TestReturnCostume(t *testing.T) {
	rental := &model.Rental{
		ID:                 7,
		CustomerID:         1,
		CostumeID:          3,
		RentalDate:         day("2026-01-10"),
		ExpectedReturnDate: day("2026-01-14"),
		Status:             model.RentalStatusActive,
	}
	var flipped []bool
	costumes := &mockCostumeStore{
		GetByIDTxFn: func(id uint64) (*model.Costume, error) {
			return &model.Costume{ID: 3, Name: "Pirate", StockQuantity: 2, DailyRentalPriceCents: 2000}, nil
		},
		SetAvailableTxFn: func(id uint64, available bool) error {
			flipped = append(flipped, available)
			return nil
		},
	}
	rentals := &mockRentalStore{
		GetByIDTxFn:     func(id uint64) (*model.Rental, error) { r := *rental; return &r, nil },
		SetReturnedTxFn: func(id uint64, actualReturnDate time.Time) error { return nil },
	}
	var billed *model.Bill
	bills := &mockBillStore{
		CreateTxFn: func(b *model.Bill) (*model.Bill, error) { billed = b; return b, nil },
	}

	s := newRentalForTest(okCustomer(), costumes, rentals, bills)
	got, err := s.ReturnCostume(context.Background(), 7, day("2026-01-17"))
	require.NoError(t, err)
	require.Equal(t, model.RentalStatusReturned, got.Status)
	require.Equal(t, day("2026-01-17"), *got.ActualReturnDate)
	require.Equal(t, []bool{true}, flipped)
	require.NotNil(t, billed)
	// 8 inclusive days at 20.00 plus 3 late days at half rate.
	require.Equal(t, int64(19000), billed.TotalAmountCents)
	require.Equal(t, int64(3000), billed.LateFeeCents)
}

func TestReturnCostume_ExistingBillKept(t *testing.T) {
	rental := &model.Rental{ID: 7, CostumeID: 3, RentalDate: day("2026-01-10"),
		ExpectedReturnDate: day("2026-01-14"), Status: model.RentalStatusActive}
	costumes := &mockCostumeStore{
		GetByIDTxFn: func(id uint64) (*model.Costume, error) {
			return &model.Costume{ID: 3, StockQuantity: 1}, nil
		},
		SetAvailableTxFn: func(id uint64, available bool) error { return nil },
	}
	rentals := &mockRentalStore{
		GetByIDTxFn:     func(id uint64) (*model.Rental, error) { r := *rental; return &r, nil },
		SetReturnedTxFn: func(id uint64, actualReturnDate time.Time) error { return nil },
	}
	bills := &mockBillStore{
		GetByRentalTxFn: func(rentalID uint64) (*model.Bill, error) {
			return &model.Bill{ID: 42, RentalID: 7}, nil
		},
		CreateTxFn: func(b *model.Bill) (*model.Bill, error) {
			t.Fatal("bill already exists")
			return nil, nil
		},
	}

	s := newRentalForTest(okCustomer(), costumes, rentals, bills)
	_, err := s.ReturnCostume(context.Background(), 7, day("2026-01-14"))
	require.NoError(t, err)
}

func TestReturnCostume_NotActive(t *testing.T) {
	rentals := &mockRentalStore{
		GetByIDTxFn: func(id uint64) (*model.Rental, error) {
			return &model.Rental{ID: 7, Status: model.RentalStatusReturned}, nil
		},
	}
	s := newRentalForTest(okCustomer(), &mockCostumeStore{}, rentals, &mockBillStore{})
	_, err := s.ReturnCostume(context.Background(), 7, day("2026-01-14"))
	require.ErrorIs(t, err, repository.ErrRentalNotActive)
}

func TestReturnCostume_NotFound(t *testing.T) {
	rentals := &mockRentalStore{
		GetByIDTxFn: func(id uint64) (*model.Rental, error) { return nil, repository.ErrRentalNotFound },
	}
	s := newRentalForTest(okCustomer(), &mockCostumeStore{}, rentals, &mockBillStore{})
	_, err := s.ReturnCostume(context.Background(), 999, day("2026-01-14"))
	require.ErrorIs(t, err, repository.ErrRentalNotFound)
}

func TestCancelRental(t *testing.T) {
	rental := &model.Rental{ID: 7, CostumeID: 3, Status: model.RentalStatusActive}
	var gotStatus string
	var flipped []bool
	costumes := &mockCostumeStore{
		GetByIDTxFn: func(id uint64) (*model.Costume, error) {
			return &model.Costume{ID: 3, StockQuantity: 1}, nil
		},
		SetAvailableTxFn: func(id uint64, available bool) error {
			flipped = append(flipped, available)
			return nil
		},
	}
	rentals := &mockRentalStore{
		GetByIDTxFn: func(id uint64) (*model.Rental, error) { r := *rental; return &r, nil },
		SetStatusTxFn: func(id uint64, status string) error {
			gotStatus = status
			return nil
		},
	}
	bills := &mockBillStore{
		CreateTxFn: func(b *model.Bill) (*model.Bill, error) {
			t.Fatal("cancellation must not bill")
			return nil, nil
		},
	}

	s := newRentalForTest(okCustomer(), costumes, rentals, bills)
	got, err := s.CancelRental(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, model.RentalStatusCancelled, got.Status)
	require.Equal(t, model.RentalStatusCancelled, gotStatus)
	require.Equal(t, []bool{true}, flipped)
}

func TestCancelRental_NotActive(t *testing.T) {
	rentals := &mockRentalStore{
		GetByIDTxFn: func(id uint64) (*model.Rental, error) {
			return &model.Rental{ID: 7, Status: model.RentalStatusCancelled}, nil
		},
	}
	s := newRentalForTest(okCustomer(), &mockCostumeStore{}, rentals, &mockBillStore{})
	_, err := s.CancelRental(context.Background(), 7)
	require.ErrorIs(t, err, repository.ErrRentalNotActive)
}

func TestUpdateRentalNotes(t *testing.T) {
	var gotNotes *string
	rentals := &mockRentalStore{
		GetByIDTxFn: func(id uint64) (*model.Rental, error) {
			return &model.Rental{ID: 7, Status: model.RentalStatusActive, Notes: ptrStr("old")}, nil
		},
		SetNotesTxFn: func(id uint64, notes *string) error {
			gotNotes = notes
			return nil
		},
	}
	s := newRentalForTest(okCustomer(), &mockCostumeStore{}, rentals, &mockBillStore{})

	got, err := s.UpdateRentalNotes(context.Background(), 7, ptrStr("fitted"))
	require.NoError(t, err)
	require.Equal(t, "fitted", *got.Notes)
	require.Equal(t, "fitted", *gotNotes)

	got, err = s.UpdateRentalNotes(context.Background(), 7, nil)
	require.NoError(t, err)
	require.Nil(t, got.Notes)
	require.Nil(t, gotNotes)
}
