package model

import "time"

// Bill statuses.  OVERDUE is never stored by the billing code;
// overdue bills are a computed view (status PENDING with a due
// date in the past).
const (
	BillStatusPending   = "PENDING"
	BillStatusPaid      = "PAID"
	BillStatusOverdue   = "OVERDUE"
	BillStatusCancelled = "CANCELLED"
)

// Accepted payment methods for marking a bill as paid.
const (
	PaymentMethodCash         = "CASH"
	PaymentMethodCreditCard   = "CREDIT_CARD"
	PaymentMethodDebitCard    = "DEBIT_CARD"
	PaymentMethodBankTransfer = "BANK_TRANSFER"
	PaymentMethodPayPal       = "PAYPAL"
)

// ValidPaymentMethod reports whether s is one of the accepted
// payment method values.
func ValidPaymentMethod(s string) bool {
	switch s {
	case PaymentMethodCash, PaymentMethodCreditCard, PaymentMethodDebitCard,
		PaymentMethodBankTransfer, PaymentMethodPayPal:
		return true
	}
	return false
}

// Bill is the monetary settlement document derived from a rental.
// Exactly one bill may exist per rental; the unique index on
// bills.rental_id enforces this.  All monetary fields are integer
// cents and non-negative.  This struct corresponds to a row in
// the `bills` table.
//
// Fields:
//  ID               – primary key identifier.
//  RentalID         – the rental this bill settles (unique).
//  TotalAmountCents – base amount + late fee + damage fee − discount.
//  LateFeeCents     – half the daily rate per day returned late.
//  DamageFeeCents   – fee for damage, set after inspection.
//  DiscountCents    – discount applied to the total.
//  BillDate         – when the bill was generated.
//  DueDate          – payment deadline (nil when unset).
//  PaidDate         – when the bill was paid (nil while pending).
//  Status           – PENDING, PAID or CANCELLED.
//  PaymentMethod    – how the bill was paid (nil while pending).
//  Notes            – optional free-text notes.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Bill struct {
	ID               uint64     `json:"id"`                 // bills.id
	RentalID         uint64     `json:"rental_id"`          // bills.rental_id
	TotalAmountCents int64      `json:"total_amount_cents"` // bills.total_amount_cents
	LateFeeCents     int64      `json:"late_fee_cents"`     // bills.late_fee_cents
	DamageFeeCents   int64      `json:"damage_fee_cents"`   // bills.damage_fee_cents
	DiscountCents    int64      `json:"discount_cents"`     // bills.discount_cents
	BillDate         time.Time  `json:"bill_date"`          // bills.bill_date
	DueDate          *time.Time `json:"due_date"`           // bills.due_date (nullable)
	PaidDate         *time.Time `json:"paid_date"`          // bills.paid_date (nullable)
	Status           string     `json:"status"`             // bills.status
	PaymentMethod    *string    `json:"payment_method"`     // bills.payment_method (nullable)
	Notes            *string    `json:"notes"`              // bills.notes (nullable)
	CreatedAt        time.Time  `json:"created_at"`         // bills.created_at
	UpdatedAt        time.Time  `json:"updated_at"`         // bills.updated_at
}
