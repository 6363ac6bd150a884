package utils // package utils provides helper functions for session tokens and password checks

import (
	"errors"
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrInvalidToken is returned by ParseSessionToken for tokens that are
// malformed, expired, signed with another key or missing the session id.
var ErrInvalidToken = errors.New("invalid session token")

// SessionToken represents the signed cookie value that carries a session id.
// Token holds the JWT string and Exp its expiration.  The principal itself
// is never encoded in the token; it stays in the session store keyed by the
// session id.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// SessionClaims are the claims read back from a valid session token.
type SessionClaims struct {
	SessionID string
	Subject   string
	Role      string
	ExpiresAt time.Time
}

// NewSessionToken builds and signs an HS256 JWT for a session.  The claims
// are sid (session id), sub (principal id), role, exp and iat.
func NewSessionToken(secret, sessionID, subject, role string, ttl time.Duration) (SessionToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sid":  sessionID,
		"sub":  subject,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken validates raw against secret and returns its claims.
// Only HMAC signing methods are accepted.
func ParseSessionToken(secret, raw string) (SessionClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject any token not signed with HMAC.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return SessionClaims{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return SessionClaims{}, ErrInvalidToken
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return SessionClaims{}, ErrInvalidToken
	}
	out := SessionClaims{SessionID: sid}
	out.Subject, _ = claims["sub"].(string)
	out.Role, _ = claims["role"].(string)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
