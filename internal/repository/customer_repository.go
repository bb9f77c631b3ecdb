package repository

import (
	"context"
	"database/sql"

	"github.com/Sreejithpr/Costume-rentals/internal/model"
)

// CustomerRepo provides CRUD and search access to the customers
// table.  Deletion removes the customer's rentals first, matching
// the original cascade on the owning side of the relation.
type CustomerRepo struct {
	db *sql.DB
}

// NewCustomerRepo returns a CustomerRepo bound to the given database.
func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{db: db} }

const customerCols = "id, first_name, last_name, email, phone, address, created_at, updated_at"

func scanCustomer(row *sql.Row) (*model.Customer, error) {
	var c model.Customer
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func collectCustomers(rows *sql.Rows) ([]model.Customer, error) {
	defer rows.Close()
	out := []model.Customer{}
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// List returns all customers ordered by id.
func (r *CustomerRepo) List(ctx context.Context) ([]model.Customer, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+customerCols+" FROM customers ORDER BY id")
	if err != nil {
		return nil, err
	}
	return collectCustomers(rows)
}

// GetByID returns one customer or ErrCustomerNotFound.
func (r *CustomerRepo) GetByID(ctx context.Context, id uint64) (*model.Customer, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+customerCols+" FROM customers WHERE id = ?", id)
	return scanCustomer(row)
}

// GetByIDTx is GetByID within an existing transaction.
func (r *CustomerRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Customer, error) {
	row := tx.QueryRowContext(ctx, "SELECT "+customerCols+" FROM customers WHERE id = ?", id)
	return scanCustomer(row)
}

// Search returns customers whose name, email or phone contains the
// term, case-insensitively.
func (r *CustomerRepo) Search(ctx context.Context, term string) ([]model.Customer, error) {
	const q = `SELECT ` + customerCols + ` FROM customers
		WHERE LOWER(first_name) LIKE LOWER(CONCAT('%', ?, '%'))
		   OR LOWER(last_name)  LIKE LOWER(CONCAT('%', ?, '%'))
		   OR LOWER(email)      LIKE LOWER(CONCAT('%', ?, '%'))
		   OR phone             LIKE CONCAT('%', ?, '%')
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, term, term, term, term)
	if err != nil {
		return nil, err
	}
	return collectCustomers(rows)
}

// Create inserts a customer and returns the stored row.
func (r *CustomerRepo) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO customers (first_name, last_name, email, phone, address) VALUES (?,?,?,?,?)",
		c.FirstName, c.LastName, c.Email, c.Phone, c.Address)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update overwrites all mutable fields of an existing customer and
// returns the stored row, or ErrCustomerNotFound.
func (r *CustomerRepo) Update(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	if _, err := r.GetByID(ctx, c.ID); err != nil {
		return nil, err
	}
	_, err := r.db.ExecContext(ctx,
		"UPDATE customers SET first_name=?, last_name=?, email=?, phone=?, address=? WHERE id=?",
		c.FirstName, c.LastName, c.Email, c.Phone, c.Address, c.ID)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, c.ID)
}

// Delete removes a customer together with its rentals.  Returns
// ErrCustomerNotFound when the id does not resolve.
func (r *CustomerRepo) Delete(ctx context.Context, id uint64) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM bills WHERE rental_id IN (SELECT id FROM rentals WHERE customer_id = ?)", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM rentals WHERE customer_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM customers WHERE id = ?", id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
