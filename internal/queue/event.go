// Package queue defines the domain events exchanged over RabbitMQ
// and the publisher/consumer that move them.  Publishing is always
// best-effort: a broker outage must never fail a rental or billing
// request.
package queue

// RentalReturnedEvent is published when a costume comes back and
// the rental is closed.  Downstream consumers can log or notify
// without querying the primary database.
type RentalReturnedEvent struct {
	RentalID    uint64 `json:"rental_id"`
	CustomerID  uint64 `json:"customer_id"`
	CostumeID   uint64 `json:"costume_id"`
	CostumeName string `json:"costume_name"`
	ReturnedAt  string `json:"returned_at"`
	LateDays    int64  `json:"late_days"`
}

// BillIssuedEvent is published when a new bill is generated for a
// rental.  It is not published when bill generation is idempotent
// and returns an existing bill.
type BillIssuedEvent struct {
	BillID           uint64 `json:"bill_id"`
	RentalID         uint64 `json:"rental_id"`
	TotalAmountCents int64  `json:"total_amount_cents"`
	LateFeeCents     int64  `json:"late_fee_cents"`
	BillDate         string `json:"bill_date"`
	DueDate          string `json:"due_date"`
}
