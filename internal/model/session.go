package model

import "time"

// Session models a row in the `user_sessions` table. One row exists
// per issued token; the row must be present and unexpired for the
// token to be accepted, which lets the server revoke access before
// the JWT itself expires. Rows are deleted on logout or by the
// periodic expiry sweep.
//
// Fields:
//  ID        – random hex session identifier, carried in the JWT "sid" claim.
//  UserID    – owner of the session.
//  ExpiresAt – when the session stops being honored.
//  CreatedAt – when the session was issued.
type Session struct {
	ID        string    // user_sessions.id
	UserID    uint64    // user_sessions.user_id
	ExpiresAt time.Time // user_sessions.expires_at
	CreatedAt time.Time // user_sessions.created_at
}
