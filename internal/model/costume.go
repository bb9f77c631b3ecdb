package model

import "time"

// Costume describes a rentable costume item in the shop's
// inventory.  A costume may exist in multiple physical units
// (StockQuantity) and can be rented concurrently up to that
// count.  This struct corresponds to a row in the `costumes`
// table plus one derived column.
//
// Fields:
//  ID                   – primary key identifier.
//  Name                 – display name of the costume.
//  Description          – optional free-text description.
//  Size                 – size label (e.g. "S", "M", "XL", "One Size").
//  Category             – category label (e.g. "Horror", "Fairy Tale").
//  DailyRentalPriceCents – rental price per day, in cents.
//  StockQuantity        – number of physical units owned (>= 0).
//  Available            – stored availability flag.  The lifecycle
//                         operations flip this imperatively; with
//                         StockQuantity > 1 and overlapping rentals
//                         it can go stale, so callers should prefer
//                         AvailableStock.
//  AvailableStock       – units not currently out on an ACTIVE rental,
//                         floored at zero.  Never stored; recomputed
//                         by the repository on every read.
//  CreatedAt            – creation timestamp.
//  UpdatedAt            – last update timestamp.
type Costume struct {
	ID                    uint64     `json:"id"`                       // costumes.id
	Name                  string     `json:"name"`                     // costumes.name
	Description           *string    `json:"description"`              // costumes.description (nullable)
	Size                  string     `json:"size"`                     // costumes.size
	Category              string     `json:"category"`                 // costumes.category
	DailyRentalPriceCents int64      `json:"daily_rental_price_cents"` // costumes.daily_rental_price_cents
	StockQuantity         int        `json:"stock_quantity"`           // costumes.stock_quantity
	Available             bool       `json:"available"`                // costumes.available
	AvailableStock        int        `json:"available_stock"`          // derived: max(0, stock - active rentals)
	CreatedAt             time.Time  `json:"created_at"`               // costumes.created_at
	UpdatedAt             time.Time  `json:"updated_at"`               // costumes.updated_at
}
