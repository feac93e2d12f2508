package utils // package utils provides helpers for token creation and session identifiers

import (
	"crypto/rand"  // secure random generation for session identifiers
	"encoding/hex" // hex encoding of random bytes
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// AccessToken represents a signed JWT along with its expiry. The token
// embeds the session identifier so the server can check the matching
// user_sessions row on every request and revoke access early.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// Claims are the values extracted from a verified access token.
type Claims struct {
	UserID    uint64 // "sub" claim
	Role      string // "role" claim
	SessionID string // "sid" claim
}

// ErrInvalidToken is returned when a token fails signature, expiry or
// claim-shape validation.
var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken builds and signs an HS256 JWT for a user session. It
// takes the signing secret, the user ID and role, the session row id
// and a TTL in hours. The JWT carries sub, role, sid, exp and iat.
func NewAccessToken(secret string, userID uint64, role, sessionID string, ttlHours int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlHours) * time.Hour)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"sid":  sessionID,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of a token and
// extracts its claims. Only HMAC-signed tokens are accepted; anything
// else is rejected with ErrInvalidToken.
func ParseAccessToken(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	var out Claims
	// Numeric JWT values decode as float64.
	sub, ok := mc["sub"].(float64)
	if !ok || sub <= 0 {
		return Claims{}, ErrInvalidToken
	}
	out.UserID = uint64(sub)
	if role, ok := mc["role"].(string); ok {
		out.Role = role
	}
	sid, ok := mc["sid"].(string)
	if !ok || sid == "" {
		return Claims{}, ErrInvalidToken
	}
	out.SessionID = sid
	return out, nil
}

// NewSessionID returns a cryptographically random 64-character hex
// string used as the primary key of a user_sessions row.
func NewSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
