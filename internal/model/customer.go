package model

import "time"

// Customer represents a person who rents costumes from the shop.
// A customer owns zero or more rentals.  This struct corresponds
// to a row in the `customers` table.
//
// Fields:
//  ID        – primary key identifier.
//  FirstName – customer's first name.
//  LastName  – customer's last name.
//  Email     – contact email address.
//  Phone     – contact phone number.
//  Address   – postal address.
//  CreatedAt – timestamp when the customer was created.
//  UpdatedAt – timestamp of last update.
type Customer struct {
	ID        uint64    `json:"id"`         // customers.id
	FirstName string    `json:"first_name"` // customers.first_name
	LastName  string    `json:"last_name"`  // customers.last_name
	Email     string    `json:"email"`      // customers.email
	Phone     string    `json:"phone"`      // customers.phone
	Address   string    `json:"address"`    // customers.address
	CreatedAt time.Time `json:"created_at"` // customers.created_at
	UpdatedAt time.Time `json:"updated_at"` // customers.updated_at
}
