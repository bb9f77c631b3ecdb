// Package repository implements the persistence gateway over MySQL.
// Each entity gets explicit, named SQL query functions instead of
// any form of generated queries.  This file defines the sentinel
// error values shared across repositories and services.  Higher
// layers use errors.Is against these to decide on HTTP status
// codes: the *NotFound family maps to 404, the invalid-state pair
// (ErrCostumeUnavailable, ErrRentalNotActive) maps to 400.
package repository

import "errors"

// ErrCustomerNotFound is returned when a customer id does not resolve.
var ErrCustomerNotFound = errors.New("customer not found")

// ErrCostumeNotFound is returned when a costume id does not resolve.
var ErrCostumeNotFound = errors.New("costume not found")

// ErrRentalNotFound is returned when a rental id does not resolve.
var ErrRentalNotFound = errors.New("rental not found")

// ErrBillNotFound is returned when a bill id does not resolve.
var ErrBillNotFound = errors.New("bill not found")

// ErrCostumeUnavailable is returned when a rental is requested
// against a costume whose available flag is false or whose
// computed available stock is zero.
var ErrCostumeUnavailable = errors.New("costume is not available for rental")

// ErrRentalNotActive is returned when a return, cancel or similar
// transition is attempted on a rental that is not in ACTIVE state.
var ErrRentalNotActive = errors.New("rental is not active")

// ErrEmailExists is returned when a staff account registration
// collides with an existing email.
var ErrEmailExists = errors.New("email already exists")
