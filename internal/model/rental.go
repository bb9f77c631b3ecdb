package model

import "time"

// Rental statuses.  OVERDUE exists in the enumeration for parity
// with the bills table but is never written by the lifecycle code;
// overdue rentals are a computed view (status ACTIVE with an
// expected return date in the past).
const (
	RentalStatusActive    = "ACTIVE"
	RentalStatusReturned  = "RETURNED"
	RentalStatusOverdue   = "OVERDUE"
	RentalStatusCancelled = "CANCELLED"
)

// Rental records a time-bounded loan of one costume unit to one
// customer.  Each rental owns at most one bill.  This struct
// corresponds to a row in the `rentals` table.
//
// Fields:
//  ID                 – primary key identifier.
//  CustomerID         – customer who rented the costume.
//  CostumeID          – costume being rented.
//  RentalDate         – day the rental started.
//  ExpectedReturnDate – day the costume is due back.
//  ActualReturnDate   – day the costume came back (nil while out).
//  Status             – lifecycle state (ACTIVE, RETURNED, CANCELLED).
//  Notes              – optional free-text notes.
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type Rental struct {
	ID                 uint64     `json:"id"`                   // rentals.id
	CustomerID         uint64     `json:"customer_id"`          // rentals.customer_id
	CostumeID          uint64     `json:"costume_id"`           // rentals.costume_id
	RentalDate         time.Time  `json:"rental_date"`          // rentals.rental_date
	ExpectedReturnDate time.Time  `json:"expected_return_date"` // rentals.expected_return_date
	ActualReturnDate   *time.Time `json:"actual_return_date"`   // rentals.actual_return_date (nullable)
	Status             string     `json:"status"`               // rentals.status
	Notes              *string    `json:"notes"`                // rentals.notes (nullable)
	CreatedAt          time.Time  `json:"created_at"`           // rentals.created_at
	UpdatedAt          time.Time  `json:"updated_at"`           // rentals.updated_at
}
