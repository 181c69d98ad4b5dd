package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSigner() *Signer {
	return NewSigner([]byte("test-secret-for-signing"), 7*24*time.Hour)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	signer := newTestSigner()
	issued := time.Now().Truncate(time.Second)

	token, err := signer.Sign("alice", issued)
	require.NoError(t, err)

	cred, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", cred.Username)
	assert.Equal(t, issued.Unix(), cred.IssuedAt.Unix())
	assert.Equal(t, issued.Add(7*24*time.Hour).Unix(), cred.ExpiresAt.Unix())
}

func TestVerifyMalformedInput(t *testing.T) {
	signer := newTestSigner()

	for _, token := range []string{
		"",
		"not-a-token",
		"a.b.c",
		strings.Repeat("x", 4096),
	} {
		_, err := signer.Verify(token)
		assert.ErrorIs(t, err, ErrMalformedToken, "token %q", token)
	}
}

func TestVerifyBadSignature(t *testing.T) {
	other := NewSigner([]byte("a-different-secret"), time.Hour)
	token, err := other.Sign("alice", time.Now())
	require.NoError(t, err)

	_, err = newTestSigner().Verify(token)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestVerifyExpired(t *testing.T) {
	signer := NewSigner([]byte("test-secret-for-signing"), time.Minute)
	token, err := signer.Sign("alice", time.Now().Add(-2*time.Minute))
	require.NoError(t, err)

	_, err = signer.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyTamperedPayload(t *testing.T) {
	signer := newTestSigner()
	token, err := signer.Sign("alice", time.Now())
	require.NoError(t, err)

	// Swap the payload segment for one from a token signed with a
	// different secret. The signature no longer covers the payload.
	other := NewSigner([]byte("a-different-secret"), time.Hour)
	forged, err := other.Sign("mallory", time.Now())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	forgedParts := strings.Split(forged, ".")
	require.Len(t, parts, 3)
	require.Len(t, forgedParts, 3)

	_, err = signer.Verify(parts[0] + "." + forgedParts[1] + "." + parts[2])
	assert.Error(t, err)
}

func TestSignContentCarriesScope(t *testing.T) {
	signer := newTestSigner()
	issued := time.Now()

	token, err := signer.SignContent("alice", "abc", "0-1", issued)
	require.NoError(t, err)

	claims, err := signer.parse(token)
	require.NoError(t, err)
	assert.Equal(t, "abc", claims["hash"])
	assert.Equal(t, "0-1", claims["indices"])
	assert.Equal(t, "alice", claims["sub"])
}
