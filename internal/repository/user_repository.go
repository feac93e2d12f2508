package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lehoangphuc/notary-office-server/internal/model"
	"github.com/lehoangphuc/notary-office-server/internal/utils"
)

// UserRepo encapsulates all database queries against the users table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var (
	// ErrUserExists is returned when a username or email is already taken.
	ErrUserExists = errors.New("username or email already exists")
	// ErrUserNotFound is returned when no user row matches.
	ErrUserNotFound = errors.New("user not found")
)

const userCols = "id, username, email, password_hash, full_name, role, is_active, created_at, updated_at"

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName,
		&u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Create inserts a user with a freshly hashed password and returns its ID.
func (r *UserRepo) Create(ctx context.Context, username, email, password, fullName, role string, cost int) (uint64, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, full_name, role) VALUES (?,?,?,?,?)",
		username, email, hash, fullName, role)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrUserExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByIdentifier fetches a user by username or email. Login accepts
// either, matching against both columns with one query.
func (r *UserRepo) GetByIdentifier(ctx context.Context, identifier string) (model.User, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE username=? OR email=? LIMIT 1",
		identifier, identifier))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// List returns all users ordered by id. The admin console is the only
// caller; the user base is a handful of office employees so no
// pagination is applied here.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+userCols+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.User, 0, 8)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateAdminFields sets role and is_active for a user. Accounts are
// never hard-deleted; deactivation only gates login.
func (r *UserRepo) UpdateAdminFields(ctx context.Context, id uint64, role string, isActive bool) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET role=?, is_active=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
		role, isActive, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is also 0 when the values did not change, so
		// confirm the row is actually missing before reporting not found.
		var exists int
		if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id=?", id).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrUserNotFound
			}
			return err
		}
	}
	return nil
}

// Count returns the number of user rows. The seed endpoint uses it as
// its already-populated guard.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n)
	return n, err
}
