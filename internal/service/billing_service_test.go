package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Sreejithpr/Costume-rentals/internal/model"
	"github.com/Sreejithpr/Costume-rentals/internal/repository"
)

func newBillingForTest(costumes CostumeStore, rentals RentalStore, bills BillStore) *BillingService {
	s := NewBillingService(stubRunner{}, costumes, rentals, bills, nil)
	s.now = func() time.Time { return day("2026-03-01") }
	return s
}

func TestGenerateBill_OnTimeReturn(t *testing.T) {
	// 20.00/day, rented Jan 10 through Jan 14 inclusive: 5 charged
	// days, 100.00 total, no late fee.
	rental := &model.Rental{
		ID:                 7,
		CostumeID:          3,
		RentalDate:         day("2026-01-10"),
		ExpectedReturnDate: day("2026-01-14"),
		ActualReturnDate:   ptrTime(day("2026-01-14")),
		Status:             model.RentalStatusReturned,
	}
	costumes := &mockCostumeStore{
		GetByIDTxFn: func(id uint64) (*model.Costume, error) {
			return &model.Costume{ID: 3, DailyRentalPriceCents: 2000}, nil
		},
	}
	rentals := &mockRentalStore{
		GetByIDTxFn: func(id uint64) (*model.Rental, error) { return rental, nil },
	}
	var created *model.Bill
	bills := &mockBillStore{
		CreateTxFn: func(b *model.Bill) (*model.Bill, error) {
			b.ID = 42
			created = b
			return b, nil
		},
	}

	s := newBillingForTest(costumes, rentals, bills)
	bill, err := s.GenerateBill(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, created, bill)
	require.Equal(t, int64(10000), bill.TotalAmountCents)
	require.Zero(t, bill.LateFeeCents)
	require.Equal(t, model.BillStatusPending, bill.Status)
	require.Equal(t, day("2026-03-01"), bill.BillDate)
	require.NotNil(t, bill.DueDate)
	require.Equal(t, day("2026-03-31"), *bill.DueDate)
}

func TestGenerateBill_LateReturn(t *testing.T) {
	// Expected back Jan 14, returned Jan 17: 8 charged days at
	// 20.00 = 160.00, plus 3 late days at half rate = 30.00.
	rental := &model.Rental{
		ID:                 7,
		CostumeID:          3,
		RentalDate:         day("2026-01-10"),
		ExpectedReturnDate: day("2026-01-14"),
		ActualReturnDate:   ptrTime(day("2026-01-17")),
		Status:             model.RentalStatusReturned,
	}
	costumes := &mockCostumeStore{
		GetByIDTxFn: func(id uint64) (*model.Costume, error) {
			return &model.Costume{ID: 3, DailyRentalPriceCents: 2000}, nil
		},
	}
	rentals := &mockRentalStore{
		GetByIDTxFn: func(id uint64) (*model.Rental, error) { return rental, nil },
	}
	bills := &mockBillStore{
		CreateTxFn: func(b *model.Bill) (*model.Bill, error) { b.ID = 42; return b, nil },
	}

	s := newBillingForTest(costumes, rentals, bills)
	bill, err := s.GenerateBill(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, int64(3000), bill.LateFeeCents)
	require.Equal(t, int64(19000), bill.TotalAmountCents)
}

func TestGenerateBill_OddLateFeeHalving(t *testing.T) {
	// 15.55/day, 1 late day: half of 1555 truncates to 777.
	rental := &model.Rental{
		ID:                 9,
		CostumeID:          4,
		RentalDate:         day("2026-01-10"),
		ExpectedReturnDate: day("2026-01-10"),
		ActualReturnDate:   ptrTime(day("2026-01-11")),
		Status:             model.RentalStatusReturned,
	}
	costumes := &mockCostumeStore{
		GetByIDTxFn: func(id uint64) (*model.Costume, error) {
			return &model.Costume{ID: 4, DailyRentalPriceCents: 1555}, nil
		},
	}
	rentals := &mockRentalStore{
		GetByIDTxFn: func(id uint64) (*model.Rental, error) { return rental, nil },
	}
	bills := &mockBillStore{
		CreateTxFn: func(b *model.Bill) (*model.Bill, error) { return b, nil },
	}

	s := newBillingForTest(costumes, rentals, bills)
	bill, err := s.GenerateBill(context.Background(), 9)
	require.NoError(t, err)
	require.Equal(t, int64(777), bill.LateFeeCents)
}

func TestGenerateBill_Idempotent(t *testing.T) {
	existing := &model.Bill{ID: 42, RentalID: 7, TotalAmountCents: 10000, Status: model.BillStatusPending}
	rentals := &mockRentalStore{
		GetByIDTxFn: func(id uint64) (*model.Rental, error) {
			return &model.Rental{ID: 7, CostumeID: 3, Status: model.RentalStatusActive}, nil
		},
	}
	bills := &mockBillStore{
		GetByRentalTxFn: func(rentalID uint64) (*model.Bill, error) { return existing, nil },
		CreateTxFn: func(b *model.Bill) (*model.Bill, error) {
			t.Fatal("bill must not be recreated")
			return nil, nil
		},
	}

	s := newBillingForTest(&mockCostumeStore{}, rentals, bills)
	bill, err := s.GenerateBill(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, existing, bill)
}

func TestGenerateBill_ActiveRentalUsesExpectedDate(t *testing.T) {
	// No actual return date yet: billing falls back to the expected
	// return date and no late fee applies.
	rental := &model.Rental{
		ID:                 7,
		CostumeID:          3,
		RentalDate:         day("2026-01-10"),
		ExpectedReturnDate: day("2026-01-12"),
		Status:             model.RentalStatusActive,
	}
	costumes := &mockCostumeStore{
		GetByIDTxFn: func(id uint64) (*model.Costume, error) {
			return &model.Costume{ID: 3, DailyRentalPriceCents: 2000}, nil
		},
	}
	rentals := &mockRentalStore{
		GetByIDTxFn: func(id uint64) (*model.Rental, error) { return rental, nil },
	}
	bills := &mockBillStore{
		CreateTxFn: func(b *model.Bill) (*model.Bill, error) { return b, nil },
	}

	s := newBillingForTest(costumes, rentals, bills)
	bill, err := s.GenerateBill(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, int64(6000), bill.TotalAmountCents)
	require.Zero(t, bill.LateFeeCents)
}

func TestGenerateBill_RentalNotFound(t *testing.T) {
	rentals := &mockRentalStore{
		GetByIDTxFn: func(id uint64) (*model.Rental, error) { return nil, repository.ErrRentalNotFound },
	}
	s := newBillingForTest(&mockCostumeStore{}, rentals, &mockBillStore{})
	_, err := s.GenerateBill(context.Background(), 999)
	require.ErrorIs(t, err, repository.ErrRentalNotFound)
}

func TestUpdateBillWithFees(t *testing.T) {
	// 190.00 total with a 30.00 late fee.  Adding 20.00 damage and
	// 10.00 discount yields 200.00.
	stored := &model.Bill{
		ID:               42,
		RentalID:         7,
		TotalAmountCents: 19000,
		LateFeeCents:     3000,
		Status:           model.BillStatusPending,
	}
	var gotTotal int64
	bills := &mockBillStore{
		GetByIDTxFn: func(id uint64) (*model.Bill, error) { b := *stored; return &b, nil },
		UpdateFeesTxFn: func(id uint64, damageFee, discount, total int64, notes *string) error {
			gotTotal = total
			return nil
		},
	}

	s := newBillingForTest(&mockCostumeStore{}, &mockRentalStore{}, bills)
	bill, err := s.UpdateBillWithFees(context.Background(), 42, ptrInt64(2000), ptrInt64(1000), ptrStr("torn sleeve"))
	require.NoError(t, err)
	require.Equal(t, int64(20000), gotTotal)
	require.Equal(t, int64(20000), bill.TotalAmountCents)
	require.Equal(t, int64(2000), bill.DamageFeeCents)
	require.Equal(t, int64(1000), bill.DiscountCents)
	require.Equal(t, "torn sleeve", *bill.Notes)
}

func TestUpdateBillWithFees_NilResetsAndRepeats(t *testing.T) {
	// Applying fees twice must not compound: the base amount is
	// recovered from the previous total each time.
	stored := &model.Bill{
		ID:               42,
		TotalAmountCents: 20000,
		LateFeeCents:     3000,
		DamageFeeCents:   2000,
		DiscountCents:    1000,
		Status:           model.BillStatusPending,
	}
	bills := &mockBillStore{
		GetByIDTxFn: func(id uint64) (*model.Bill, error) { b := *stored; return &b, nil },
		UpdateFeesTxFn: func(id uint64, damageFee, discount, total int64, notes *string) error {
			return nil
		},
	}

	s := newBillingForTest(&mockCostumeStore{}, &mockRentalStore{}, bills)
	bill, err := s.UpdateBillWithFees(context.Background(), 42, nil, nil, nil)
	require.NoError(t, err)
	require.Zero(t, bill.DamageFeeCents)
	require.Zero(t, bill.DiscountCents)
	require.Equal(t, int64(19000), bill.TotalAmountCents)
}

func TestUpdateBillWithFees_NotFound(t *testing.T) {
	bills := &mockBillStore{
		GetByIDTxFn: func(id uint64) (*model.Bill, error) { return nil, repository.ErrBillNotFound },
	}
	s := newBillingForTest(&mockCostumeStore{}, &mockRentalStore{}, bills)
	_, err := s.UpdateBillWithFees(context.Background(), 999, nil, nil, nil)
	require.ErrorIs(t, err, repository.ErrBillNotFound)
}

func TestMarkBillAsPaid(t *testing.T) {
	stored := &model.Bill{ID: 42, TotalAmountCents: 10000, Status: model.BillStatusPending}
	var gotMethod string
	bills := &mockBillStore{
		GetByIDTxFn: func(id uint64) (*model.Bill, error) { b := *stored; return &b, nil },
		MarkPaidTxFn: func(id uint64, paidDate time.Time, method string) error {
			gotMethod = method
			return nil
		},
	}

	s := newBillingForTest(&mockCostumeStore{}, &mockRentalStore{}, bills)
	bill, err := s.MarkBillAsPaid(context.Background(), 42, model.PaymentMethodCreditCard)
	require.NoError(t, err)
	require.Equal(t, model.PaymentMethodCreditCard, gotMethod)
	require.Equal(t, model.BillStatusPaid, bill.Status)
	require.NotNil(t, bill.PaidDate)
	require.Equal(t, day("2026-03-01"), *bill.PaidDate)
}

func TestTotalRevenue_EmptyRangeIsZero(t *testing.T) {
	bills := &mockBillStore{
		TotalRevenueFn: func(start, end time.Time) (int64, error) { return 0, nil },
	}
	s := newBillingForTest(&mockCostumeStore{}, &mockRentalStore{}, bills)
	total, err := s.TotalRevenue(context.Background(), day("2030-01-01"), day("2030-12-31"))
	require.NoError(t, err)
	require.Zero(t, total)
}
