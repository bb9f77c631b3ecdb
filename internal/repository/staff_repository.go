package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Sreejithpr/Costume-rentals/internal/model"
	"github.com/Sreejithpr/Costume-rentals/internal/utils"
)

// StaffRepo manages shop employee accounts used for API
// authentication.
type StaffRepo struct {
	db *sql.DB
}

// NewStaffRepo returns a StaffRepo bound to the given database.
func NewStaffRepo(db *sql.DB) *StaffRepo { return &StaffRepo{db: db} }

const staffCols = "id, email, password_hash, role, is_active, created_at, updated_at"

// Create hashes the password and inserts a staff account, returning
// its id.  Email is normalized to lower case; a duplicate email
// yields ErrEmailExists.
func (r *StaffRepo) Create(ctx context.Context, email, password, role string, bcryptCost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, bcryptCost)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO staff (email, password_hash, role) VALUES (?,?,?)", email, hash, role)
	if err != nil {
		// MySQL duplicate-key error code
		if strings.Contains(err.Error(), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a staff account by normalized email.
func (r *StaffRepo) GetByEmail(ctx context.Context, email string) (model.Staff, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var s model.Staff
	err := r.db.QueryRowContext(ctx,
		"SELECT "+staffCols+" FROM staff WHERE email = ? LIMIT 1", email).
		Scan(&s.ID, &s.Email, &s.PasswordHash, &s.Role, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// GetByID fetches a staff account by id.
func (r *StaffRepo) GetByID(ctx context.Context, id uint64) (model.Staff, error) {
	var s model.Staff
	err := r.db.QueryRowContext(ctx,
		"SELECT "+staffCols+" FROM staff WHERE id = ? LIMIT 1", id).
		Scan(&s.ID, &s.Email, &s.PasswordHash, &s.Role, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}
