package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryGrantExactMatch(t *testing.T) {
	signer := newTestSigner()
	validator := NewCapabilityValidator(signer)
	issued := time.Now().Truncate(time.Second)

	token, err := signer.SignContent("bob", "abc", "0-1", issued)
	require.NoError(t, err)

	granted, ok := validator.TryGrant("abc", "0-1", token)
	require.True(t, ok)

	// The synthesized credential survives the mandatory session check
	// and keeps the original issuance time.
	cred, err := signer.Verify(granted)
	require.NoError(t, err)
	assert.Equal(t, "bob", cred.Username)
	assert.Equal(t, issued.Unix(), cred.IssuedAt.Unix())
}

func TestTryGrantNoToken(t *testing.T) {
	validator := NewCapabilityValidator(newTestSigner())
	_, ok := validator.TryGrant("abc", "0-1", "")
	assert.False(t, ok)
}

// Flipping any single condition of a valid grant must yield no grant.
func TestTryGrantSingleFactorFalsification(t *testing.T) {
	signer := newTestSigner()
	validator := NewCapabilityValidator(signer)
	now := time.Now()

	valid, err := signer.SignContent("bob", "abc", "0-1", now)
	require.NoError(t, err)

	badSig, err := NewSigner([]byte("wrong-secret"), time.Hour).SignContent("bob", "abc", "0-1", now)
	require.NoError(t, err)

	expired, err := NewSigner(signer.secret, time.Minute).SignContent("bob", "abc", "0-1", now.Add(-2*time.Minute))
	require.NoError(t, err)

	tests := []struct {
		name    string
		hash    string
		indices string
		token   string
	}{
		{"hash mismatch", "xyz", "0-1", valid},
		{"indices mismatch", "abc", "2", valid},
		{"case differs", "ABC", "0-1", valid},
		{"prefix is not a match", "ab", "0-1", valid},
		{"bad signature", "abc", "0-1", badSig},
		{"expired", "abc", "0-1", expired},
		{"garbage token", "abc", "0-1", "garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := validator.TryGrant(tt.hash, tt.indices, tt.token)
			assert.False(t, ok)
		})
	}

	// Sanity: the unmodified tuple still grants.
	_, ok := validator.TryGrant("abc", "0-1", valid)
	assert.True(t, ok)
}

// A signed session credential without the resource claims must not be
// usable as a capability token.
func TestTryGrantRejectsPlainSessionToken(t *testing.T) {
	signer := newTestSigner()
	validator := NewCapabilityValidator(signer)

	session, err := signer.Sign("bob", time.Now())
	require.NoError(t, err)

	_, ok := validator.TryGrant("abc", "0-1", session)
	assert.False(t, ok)
}

// Mistyped claims fail schema validation even under a valid signature.
func TestTryGrantRejectsMistypedClaims(t *testing.T) {
	signer := newTestSigner()
	validator := NewCapabilityValidator(signer)
	now := time.Now()

	sign := func(claims jwt.MapClaims) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signer.secret)
		require.NoError(t, err)
		return tok
	}

	tests := []struct {
		name  string
		token string
	}{
		{"numeric hash", sign(jwt.MapClaims{
			"sub": "bob", "hash": 42, "indices": "0-1",
			"iat": now.Unix(), "exp": now.Add(time.Hour).Unix(),
		})},
		{"missing indices", sign(jwt.MapClaims{
			"sub": "bob", "hash": "abc",
			"iat": now.Unix(), "exp": now.Add(time.Hour).Unix(),
		})},
		{"string iat", sign(jwt.MapClaims{
			"sub": "bob", "hash": "abc", "indices": "0-1",
			"iat": "1000", "exp": now.Add(time.Hour).Unix(),
		})},
		{"empty sub", sign(jwt.MapClaims{
			"sub": "", "hash": "abc", "indices": "0-1",
			"iat": now.Unix(), "exp": now.Add(time.Hour).Unix(),
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := validator.TryGrant("abc", "0-1", tt.token)
			assert.False(t, ok)
		})
	}
}
