package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	tok, err := NewSessionToken("secret", "sid-1", "user_1", "admin", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.Exp, 5*time.Second)

	claims, err := ParseSessionToken("secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", claims.SessionID)
	assert.Equal(t, "user_1", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, tok.Exp.Unix(), claims.ExpiresAt.Unix())
}

func TestParseSessionToken_Rejects(t *testing.T) {
	good, err := NewSessionToken("secret", "sid", "u", "admin", time.Hour)
	require.NoError(t, err)
	expired, err := NewSessionToken("secret", "sid", "u", "admin", -time.Minute)
	require.NoError(t, err)
	noSID, err := NewSessionToken("secret", "", "u", "admin", time.Hour)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sid": "sid", "exp": time.Now().Add(time.Hour).Unix()})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]struct{ secret, raw string }{
		"wrong secret": {"other", good.Token},
		"expired":      {"secret", expired.Token},
		"missing sid":  {"secret", noSID.Token},
		"alg none":     {"secret", unsigned},
		"garbage":      {"secret", "not-a-token"},
		"empty":        {"secret", ""},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSessionToken(tt.secret, tt.raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestMatchStoredPassword(t *testing.T) {
	hash, err := HashPassword("admin123", bcrypt.MinCost)
	require.NoError(t, err)
	require.True(t, IsBcryptHash(hash))

	assert.True(t, MatchStoredPassword(hash, "admin123"))
	assert.False(t, MatchStoredPassword(hash, "admin124"))
	assert.True(t, MatchStoredPassword("admin123", "admin123"))
	assert.False(t, MatchStoredPassword("admin123", "Admin123"))
	assert.False(t, MatchStoredPassword("", ""))
	assert.False(t, IsBcryptHash("$2a$short"))
}
