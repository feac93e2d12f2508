package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lehoangphuc/notary-office-server/internal/model"
)

// SessionRepo persists revocable session rows in user_sessions. A
// token is only honored while its row exists and is unexpired, which
// gives the server a kill switch independent of the JWT expiry.
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// ErrSessionNotFound is returned when a session row is absent, expired
// or already revoked.
var ErrSessionNotFound = errors.New("session not found")

// Create inserts a session row keyed by the generated session id.
func (r *SessionRepo) Create(ctx context.Context, id string, userID uint64, expiresAt time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO user_sessions (id, user_id, expires_at) VALUES (?,?,?)",
		id, userID, expiresAt)
	return err
}

// Get returns the session for id if it exists and has not expired.
func (r *SessionRepo) Get(ctx context.Context, id string) (model.Session, error) {
	var s model.Session
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, expires_at, created_at FROM user_sessions WHERE id=? LIMIT 1",
		id).Scan(&s.ID, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return model.Session{}, err
	}
	if time.Now().UTC().After(s.ExpiresAt) {
		return model.Session{}, ErrSessionNotFound
	}
	return s, nil
}

// DeleteByUser removes every session row belonging to a user. Logout
// calls this; deleting zero rows is not an error, so the operation is
// idempotent.
func (r *SessionRepo) DeleteByUser(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM user_sessions WHERE user_id=?", userID)
	return err
}

// DeleteExpired removes rows past their expiry and reports how many
// were swept. A background goroutine runs this periodically so the
// table does not grow without bound.
func (r *SessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM user_sessions WHERE expires_at < UTC_TIMESTAMP()")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
