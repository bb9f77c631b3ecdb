package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Sreejithpr/Costume-rentals/internal/model"
)

// RentalRepo provides access to the rentals table.  State
// transitions (return, cancel) run inside the caller's transaction
// so the rental update and the costume availability side effect
// commit atomically.
type RentalRepo struct {
	db *sql.DB
}

// NewRentalRepo returns a RentalRepo bound to the given database.
func NewRentalRepo(db *sql.DB) *RentalRepo { return &RentalRepo{db: db} }

const rentalCols = "id, customer_id, costume_id, rental_date, expected_return_date, actual_return_date, status, notes, created_at, updated_at"

func scanRentalRow(scan func(dest ...any) error) (*model.Rental, error) {
	var (
		r        model.Rental
		returned sql.NullTime
		notes    sql.NullString
	)
	err := scan(&r.ID, &r.CustomerID, &r.CostumeID, &r.RentalDate, &r.ExpectedReturnDate,
		&returned, &r.Status, &notes, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if returned.Valid {
		t := returned.Time
		r.ActualReturnDate = &t
	}
	if notes.Valid {
		n := notes.String
		r.Notes = &n
	}
	return &r, nil
}

func (r *RentalRepo) queryRentals(ctx context.Context, q string, args ...any) ([]model.Rental, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Rental{}
	for rows.Next() {
		rec, err := scanRentalRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// List returns all rentals ordered by id.
func (r *RentalRepo) List(ctx context.Context) ([]model.Rental, error) {
	return r.queryRentals(ctx, "SELECT "+rentalCols+" FROM rentals ORDER BY id")
}

// GetByID returns one rental or ErrRentalNotFound.
func (r *RentalRepo) GetByID(ctx context.Context, id uint64) (*model.Rental, error) {
	rec, err := scanRentalRow(r.db.QueryRowContext(ctx, "SELECT "+rentalCols+" FROM rentals WHERE id = ?", id).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrRentalNotFound
	}
	return rec, err
}

// GetByIDTx is GetByID within an existing transaction.
func (r *RentalRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Rental, error) {
	rec, err := scanRentalRow(tx.QueryRowContext(ctx, "SELECT "+rentalCols+" FROM rentals WHERE id = ?", id).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrRentalNotFound
	}
	return rec, err
}

// ListByStatus returns rentals in the given lifecycle state.
func (r *RentalRepo) ListByStatus(ctx context.Context, status string) ([]model.Rental, error) {
	return r.queryRentals(ctx, "SELECT "+rentalCols+" FROM rentals WHERE status = ? ORDER BY id", status)
}

// ListOverdue returns ACTIVE rentals whose expected return date is
// before asOf.  Overdue is a point-in-time view computed here, not
// a stored status.
func (r *RentalRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]model.Rental, error) {
	return r.queryRentals(ctx,
		"SELECT "+rentalCols+" FROM rentals WHERE status = ? AND expected_return_date < ? ORDER BY id",
		model.RentalStatusActive, asOf)
}

// ListByCustomer returns a customer's rentals.
func (r *RentalRepo) ListByCustomer(ctx context.Context, customerID uint64) ([]model.Rental, error) {
	return r.queryRentals(ctx, "SELECT "+rentalCols+" FROM rentals WHERE customer_id = ? ORDER BY id", customerID)
}

// ListByCostume returns a costume's rentals.
func (r *RentalRepo) ListByCostume(ctx context.Context, costumeID uint64) ([]model.Rental, error) {
	return r.queryRentals(ctx, "SELECT "+rentalCols+" FROM rentals WHERE costume_id = ? ORDER BY id", costumeID)
}

// ListBetween returns rentals whose rental date falls in
// [start, end], bounds inclusive.
func (r *RentalRepo) ListBetween(ctx context.Context, start, end time.Time) ([]model.Rental, error) {
	return r.queryRentals(ctx,
		"SELECT "+rentalCols+" FROM rentals WHERE rental_date BETWEEN ? AND ? ORDER BY id", start, end)
}

// ListByCustomerAndStatus filters on both owner and state.
func (r *RentalRepo) ListByCustomerAndStatus(ctx context.Context, customerID uint64, status string) ([]model.Rental, error) {
	return r.queryRentals(ctx,
		"SELECT "+rentalCols+" FROM rentals WHERE customer_id = ? AND status = ? ORDER BY id", customerID, status)
}

// CreateTx inserts a new ACTIVE rental within an existing
// transaction and returns the stored row.
func (r *RentalRepo) CreateTx(ctx context.Context, tx *sql.Tx, rec *model.Rental) (*model.Rental, error) {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO rentals (customer_id, costume_id, rental_date, expected_return_date, status, notes) VALUES (?,?,?,?,?,?)",
		rec.CustomerID, rec.CostumeID, rec.RentalDate, rec.ExpectedReturnDate, rec.Status, rec.Notes)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByIDTx(ctx, tx, uint64(id))
}

// SetReturnedTx records the actual return date and moves the rental
// to RETURNED within an existing transaction.
func (r *RentalRepo) SetReturnedTx(ctx context.Context, tx *sql.Tx, id uint64, actualReturnDate time.Time) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE rentals SET actual_return_date = ?, status = ? WHERE id = ?",
		actualReturnDate, model.RentalStatusReturned, id)
	return err
}

// SetStatusTx moves the rental to the given state within an
// existing transaction.
func (r *RentalRepo) SetStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	_, err := tx.ExecContext(ctx, "UPDATE rentals SET status = ? WHERE id = ?", status, id)
	return err
}

// SetNotesTx overwrites the notes field within an existing
// transaction.  A nil value clears the column.
func (r *RentalRepo) SetNotesTx(ctx context.Context, tx *sql.Tx, id uint64, notes *string) error {
	_, err := tx.ExecContext(ctx, "UPDATE rentals SET notes = ? WHERE id = ?", notes, id)
	return err
}
