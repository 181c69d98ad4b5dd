package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures. Verify never panics on hostile input; every
// outcome is one of these values.
var (
	ErrMalformedToken = errors.New("malformed token")
	ErrBadSignature   = errors.New("bad signature")
	ErrExpiredToken   = errors.New("token expired")
)

// Credential is a verified identity extracted from a signed token.
// Immutable once issued; it lives only for the duration of a request.
type Credential struct {
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Signer signs and verifies identity credentials with an HS256 secret.
// The secret is loaded once at startup and never rotated: changing it
// invalidates every outstanding credential.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

// NewSigner creates a Signer. ttl is the fixed credential lifetime
// measured from issuance.
func NewSigner(secret []byte, ttl time.Duration) *Signer {
	return &Signer{secret: secret, ttl: ttl}
}

// TTL returns the fixed credential lifetime.
func (s *Signer) TTL() time.Duration {
	return s.ttl
}

// Sign issues a session credential for username. Expiry is derived from
// issuedAt, not from the current time, so a credential re-signed at its
// original issuance keeps its original lifetime.
func (s *Signer) Sign(username string, issuedAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": username,
		"iat": issuedAt.Unix(),
		"exp": issuedAt.Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// SignContent issues a capability token scoped to exactly one
// (hash, indices) resource for username.
func (s *Signer) SignContent(username, hash, indices string, issuedAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":     username,
		"hash":    hash,
		"indices": indices,
		"iat":     issuedAt.Unix(),
		"exp":     issuedAt.Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature integrity and expiry and returns the embedded
// identity. Failures map to ErrMalformedToken, ErrBadSignature or
// ErrExpiredToken.
func (s *Signer) Verify(tokenString string) (*Credential, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}
	return credentialFromClaims(claims)
}

// parse validates the raw token and returns its claims.
func (s *Signer) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrBadSignature
		default:
			return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
		}
	}
	if !token.Valid {
		return nil, ErrMalformedToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrMalformedToken
	}
	return claims, nil
}

func credentialFromClaims(claims jwt.MapClaims) (*Credential, error) {
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, fmt.Errorf("%w: missing sub claim", ErrMalformedToken)
	}
	iat, ok := numericClaim(claims, "iat")
	if !ok {
		return nil, fmt.Errorf("%w: missing iat claim", ErrMalformedToken)
	}
	exp, ok := numericClaim(claims, "exp")
	if !ok {
		return nil, fmt.Errorf("%w: missing exp claim", ErrMalformedToken)
	}
	return &Credential{
		Username:  sub,
		IssuedAt:  time.Unix(iat, 0),
		ExpiresAt: time.Unix(exp, 0),
	}, nil
}

// numericClaim reads an integer-seconds claim. JSON decoding yields
// float64 for numbers; anything else fails schema validation.
func numericClaim(claims jwt.MapClaims, name string) (int64, bool) {
	v, ok := claims[name].(float64)
	if !ok {
		return 0, false
	}
	return int64(v), true
}
