package repository

import (
	"context"
	"database/sql"

	"github.com/Sreejithpr/Costume-rentals/internal/model"
)

// CostumeRepo provides CRUD and catalog queries for the costumes
// table.  Every read computes available_stock from the live count
// of ACTIVE rentals instead of trusting the stored available flag;
// the flag itself is still persisted and flipped by the lifecycle
// operations to preserve the original behavior.
type CostumeRepo struct {
	db *sql.DB
}

// NewCostumeRepo returns a CostumeRepo bound to the given database.
func NewCostumeRepo(db *sql.DB) *CostumeRepo { return &CostumeRepo{db: db} }

// costumeSelect projects all columns plus the derived
// available_stock: max(0, stock_quantity − count of ACTIVE rentals).
const costumeSelect = `SELECT c.id, c.name, c.description, c.size, c.category,
	c.daily_rental_price_cents, c.stock_quantity, c.available,
	GREATEST(0, c.stock_quantity - (
		SELECT COUNT(*) FROM rentals r WHERE r.costume_id = c.id AND r.status = 'ACTIVE'
	)) AS available_stock,
	c.created_at, c.updated_at
	FROM costumes c`

func scanCostumeRow(scan func(dest ...any) error) (*model.Costume, error) {
	var (
		c    model.Costume
		desc sql.NullString
	)
	err := scan(&c.ID, &c.Name, &desc, &c.Size, &c.Category,
		&c.DailyRentalPriceCents, &c.StockQuantity, &c.Available,
		&c.AvailableStock, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		c.Description = &desc.String
	}
	return &c, nil
}

func (r *CostumeRepo) queryCostumes(ctx context.Context, q string, args ...any) ([]model.Costume, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Costume{}
	for rows.Next() {
		c, err := scanCostumeRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// List returns all costumes ordered by id.
func (r *CostumeRepo) List(ctx context.Context) ([]model.Costume, error) {
	return r.queryCostumes(ctx, costumeSelect+" ORDER BY c.id")
}

// GetByID returns one costume or ErrCostumeNotFound.
func (r *CostumeRepo) GetByID(ctx context.Context, id uint64) (*model.Costume, error) {
	c, err := scanCostumeRow(r.db.QueryRowContext(ctx, costumeSelect+" WHERE c.id = ?", id).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrCostumeNotFound
	}
	return c, err
}

// GetByIDTx is GetByID within an existing transaction, used by the
// rental lifecycle so the availability check and the rental insert
// see the same snapshot.
func (r *CostumeRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Costume, error) {
	c, err := scanCostumeRow(tx.QueryRowContext(ctx, costumeSelect+" WHERE c.id = ?", id).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrCostumeNotFound
	}
	return c, err
}

// ListAvailable returns costumes whose stored available flag matches.
func (r *CostumeRepo) ListAvailable(ctx context.Context, available bool) ([]model.Costume, error) {
	return r.queryCostumes(ctx, costumeSelect+" WHERE c.available = ? ORDER BY c.id", available)
}

// ListWithStock returns costumes with stock_quantity > 0.
func (r *CostumeRepo) ListWithStock(ctx context.Context) ([]model.Costume, error) {
	return r.queryCostumes(ctx, costumeSelect+" WHERE c.stock_quantity > 0 ORDER BY c.id")
}

// Search returns costumes whose name, category or description
// contains the term, case-insensitively.
func (r *CostumeRepo) Search(ctx context.Context, term string) ([]model.Costume, error) {
	const cond = ` WHERE LOWER(c.name) LIKE LOWER(CONCAT('%', ?, '%'))
		OR LOWER(c.category) LIKE LOWER(CONCAT('%', ?, '%'))
		OR LOWER(c.description) LIKE LOWER(CONCAT('%', ?, '%'))
		ORDER BY c.id`
	return r.queryCostumes(ctx, costumeSelect+cond, term, term, term)
}

// ListByCategory returns costumes with an exact category match.
func (r *CostumeRepo) ListByCategory(ctx context.Context, category string) ([]model.Costume, error) {
	return r.queryCostumes(ctx, costumeSelect+" WHERE c.category = ? ORDER BY c.id", category)
}

// ListBySize returns costumes with an exact size match.
func (r *CostumeRepo) ListBySize(ctx context.Context, size string) ([]model.Costume, error) {
	return r.queryCostumes(ctx, costumeSelect+" WHERE c.size = ? ORDER BY c.id", size)
}

// ListByCategoryAndAvailable filters on category and the stored
// available flag.
func (r *CostumeRepo) ListByCategoryAndAvailable(ctx context.Context, category string, available bool) ([]model.Costume, error) {
	return r.queryCostumes(ctx, costumeSelect+" WHERE c.category = ? AND c.available = ? ORDER BY c.id", category, available)
}

// ListBySizeAndAvailable filters on size and the stored available flag.
func (r *CostumeRepo) ListBySizeAndAvailable(ctx context.Context, size string, available bool) ([]model.Costume, error) {
	return r.queryCostumes(ctx, costumeSelect+" WHERE c.size = ? AND c.available = ? ORDER BY c.id", size, available)
}

// DistinctCategories returns the sorted set of category values.
func (r *CostumeRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "SELECT DISTINCT category FROM costumes ORDER BY category")
}

// DistinctSizes returns the sorted set of size values.
func (r *CostumeRepo) DistinctSizes(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "SELECT DISTINCT size FROM costumes ORDER BY size")
}

func (r *CostumeRepo) distinct(ctx context.Context, q string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Create inserts a costume and returns the stored row.  The
// available flag is derived from the initial stock.
func (r *CostumeRepo) Create(ctx context.Context, c *model.Costume) (*model.Costume, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO costumes (name, description, size, category, daily_rental_price_cents, stock_quantity, available) VALUES (?,?,?,?,?,?,?)",
		c.Name, c.Description, c.Size, c.Category, c.DailyRentalPriceCents, c.StockQuantity, c.StockQuantity > 0)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update overwrites all mutable fields, including the stored
// available flag, and returns the stored row.
func (r *CostumeRepo) Update(ctx context.Context, c *model.Costume) (*model.Costume, error) {
	if _, err := r.GetByID(ctx, c.ID); err != nil {
		return nil, err
	}
	_, err := r.db.ExecContext(ctx,
		"UPDATE costumes SET name=?, description=?, size=?, category=?, daily_rental_price_cents=?, stock_quantity=?, available=? WHERE id=?",
		c.Name, c.Description, c.Size, c.Category, c.DailyRentalPriceCents, c.StockQuantity, c.Available, c.ID)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, c.ID)
}

// SetAvailableTx flips the stored available flag within an existing
// transaction.  The lifecycle operations call this as their
// availability side effect; stock_quantity itself never changes.
func (r *CostumeRepo) SetAvailableTx(ctx context.Context, tx *sql.Tx, id uint64, available bool) error {
	_, err := tx.ExecContext(ctx, "UPDATE costumes SET available = ? WHERE id = ?", available, id)
	return err
}

// Delete removes a costume.  Returns ErrCostumeNotFound when the
// id does not resolve.
func (r *CostumeRepo) Delete(ctx context.Context, id uint64) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, "DELETE FROM costumes WHERE id = ?", id)
	return err
}
