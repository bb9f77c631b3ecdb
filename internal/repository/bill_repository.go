package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Sreejithpr/Costume-rentals/internal/model"
)

// BillRepo provides access to the bills table.  Bill creation and
// mutation run inside the caller's transaction; read-side queries
// go straight to the pool.
type BillRepo struct {
	db *sql.DB
}

// NewBillRepo returns a BillRepo bound to the given database.
func NewBillRepo(db *sql.DB) *BillRepo { return &BillRepo{db: db} }

const billCols = "id, rental_id, total_amount_cents, late_fee_cents, damage_fee_cents, discount_cents, bill_date, due_date, paid_date, status, payment_method, notes, created_at, updated_at"

func scanBillRow(scan func(dest ...any) error) (*model.Bill, error) {
	var (
		b      model.Bill
		due    sql.NullTime
		paid   sql.NullTime
		method sql.NullString
		notes  sql.NullString
	)
	err := scan(&b.ID, &b.RentalID, &b.TotalAmountCents, &b.LateFeeCents, &b.DamageFeeCents,
		&b.DiscountCents, &b.BillDate, &due, &paid, &b.Status, &method, &notes,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if due.Valid {
		t := due.Time
		b.DueDate = &t
	}
	if paid.Valid {
		t := paid.Time
		b.PaidDate = &t
	}
	if method.Valid {
		m := method.String
		b.PaymentMethod = &m
	}
	if notes.Valid {
		n := notes.String
		b.Notes = &n
	}
	return &b, nil
}

func (r *BillRepo) queryBills(ctx context.Context, q string, args ...any) ([]model.Bill, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Bill{}
	for rows.Next() {
		b, err := scanBillRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// List returns all bills ordered by id.
func (r *BillRepo) List(ctx context.Context) ([]model.Bill, error) {
	return r.queryBills(ctx, "SELECT "+billCols+" FROM bills ORDER BY id")
}

// GetByID returns one bill or ErrBillNotFound.
func (r *BillRepo) GetByID(ctx context.Context, id uint64) (*model.Bill, error) {
	b, err := scanBillRow(r.db.QueryRowContext(ctx, "SELECT "+billCols+" FROM bills WHERE id = ?", id).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrBillNotFound
	}
	return b, err
}

// GetByIDTx is GetByID within an existing transaction.
func (r *BillRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Bill, error) {
	b, err := scanBillRow(tx.QueryRowContext(ctx, "SELECT "+billCols+" FROM bills WHERE id = ?", id).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrBillNotFound
	}
	return b, err
}

// GetByRentalTx returns the bill owned by a rental, or
// ErrBillNotFound when none has been generated yet.  Runs within
// an existing transaction so bill generation can check-then-insert
// atomically.
func (r *BillRepo) GetByRentalTx(ctx context.Context, tx *sql.Tx, rentalID uint64) (*model.Bill, error) {
	b, err := scanBillRow(tx.QueryRowContext(ctx, "SELECT "+billCols+" FROM bills WHERE rental_id = ?", rentalID).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrBillNotFound
	}
	return b, err
}

// ListByStatus returns bills in the given state.
func (r *BillRepo) ListByStatus(ctx context.Context, status string) ([]model.Bill, error) {
	return r.queryBills(ctx, "SELECT "+billCols+" FROM bills WHERE status = ? ORDER BY id", status)
}

// ListOverdue returns PENDING bills whose due date is before asOf.
// Like overdue rentals this is a computed view, never a stored
// status transition.
func (r *BillRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]model.Bill, error) {
	return r.queryBills(ctx,
		"SELECT "+billCols+" FROM bills WHERE status = ? AND due_date < ? ORDER BY id",
		model.BillStatusPending, asOf)
}

// ListByCustomer returns bills joined through the rentals table.
func (r *BillRepo) ListByCustomer(ctx context.Context, customerID uint64) ([]model.Bill, error) {
	const q = `SELECT b.id, b.rental_id, b.total_amount_cents, b.late_fee_cents, b.damage_fee_cents,
		b.discount_cents, b.bill_date, b.due_date, b.paid_date, b.status, b.payment_method, b.notes,
		b.created_at, b.updated_at
		FROM bills b JOIN rentals r ON r.id = b.rental_id
		WHERE r.customer_id = ? ORDER BY b.id`
	return r.queryBills(ctx, q, customerID)
}

// ListBilledBetween returns bills whose bill date falls in
// [start, end], bounds inclusive.
func (r *BillRepo) ListBilledBetween(ctx context.Context, start, end time.Time) ([]model.Bill, error) {
	return r.queryBills(ctx,
		"SELECT "+billCols+" FROM bills WHERE bill_date BETWEEN ? AND ? ORDER BY id", start, end)
}

// ListPaidBetween returns bills whose paid date falls in
// [start, end], bounds inclusive.
func (r *BillRepo) ListPaidBetween(ctx context.Context, start, end time.Time) ([]model.Bill, error) {
	return r.queryBills(ctx,
		"SELECT "+billCols+" FROM bills WHERE paid_date BETWEEN ? AND ? ORDER BY id", start, end)
}

// TotalRevenue sums total_amount_cents over PAID bills whose paid
// date falls in [start, end], bounds inclusive.  Returns 0 when
// nothing matches.
func (r *BillRepo) TotalRevenue(ctx context.Context, start, end time.Time) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(total_amount_cents), 0) FROM bills WHERE status = ? AND paid_date BETWEEN ? AND ?",
		model.BillStatusPaid, start, end).Scan(&total)
	return total, err
}

// CreateTx inserts a bill within an existing transaction and
// returns the stored row.
func (r *BillRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Bill) (*model.Bill, error) {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO bills (rental_id, total_amount_cents, late_fee_cents, damage_fee_cents, discount_cents, bill_date, due_date, status) VALUES (?,?,?,?,?,?,?,?)",
		b.RentalID, b.TotalAmountCents, b.LateFeeCents, b.DamageFeeCents, b.DiscountCents,
		b.BillDate, b.DueDate, b.Status)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByIDTx(ctx, tx, uint64(id))
}

// UpdateFeesTx overwrites damage fee, discount, notes and the
// recomputed total within an existing transaction.
func (r *BillRepo) UpdateFeesTx(ctx context.Context, tx *sql.Tx, id uint64, damageFee, discount, total int64, notes *string) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE bills SET damage_fee_cents = ?, discount_cents = ?, total_amount_cents = ?, notes = ? WHERE id = ?",
		damageFee, discount, total, notes, id)
	return err
}

// MarkPaidTx sets status PAID, the paid date and the payment method
// within an existing transaction.
func (r *BillRepo) MarkPaidTx(ctx context.Context, tx *sql.Tx, id uint64, paidDate time.Time, method string) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE bills SET status = ?, paid_date = ?, payment_method = ? WHERE id = ?",
		model.BillStatusPaid, paidDate, method, id)
	return err
}
