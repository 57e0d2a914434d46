// internal/app/system/auth/verifier.go
// Package auth verifies bearer tokens issued by the external identity
// provider and attaches the resulting user to the request context.
//
// The service never mints tokens; it only checks signature, issuer and
// audience on tokens presented by clients.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingToken means no Authorization header (or not a Bearer one).
	ErrMissingToken = errors.New("missing bearer token")

	// ErrInvalidToken covers bad signatures, expired tokens and claim
	// mismatches. The wrapped cause is for logs only.
	ErrInvalidToken = errors.New("invalid bearer token")

	// ErrNotConfigured means the verifier has no signing secret. This is a
	// deploy-time fault, not a client error.
	ErrNotConfigured = errors.New("token verification not configured")
)

// Identity is the claim set the rest of the service cares about.
type Identity struct {
	SubjectID string
	Email     string
	Name      string
}

// Verifier turns a raw bearer token into an Identity.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (Identity, error)
}

type tokenClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// jwtVerifier validates HMAC-signed tokens against a shared secret.
type jwtVerifier struct {
	secret   []byte
	issuer   string
	audience string
}

// NewJWTVerifier builds a Verifier for HMAC-signed provider tokens.
// issuer and audience are matched exactly when non-empty.
func NewJWTVerifier(secret, issuer, audience string) Verifier {
	return &jwtVerifier{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
	}
}

func (v *jwtVerifier) Verify(_ context.Context, rawToken string) (Identity, error) {
	if rawToken == "" {
		return Identity{}, ErrMissingToken
	}
	if len(v.secret) == 0 {
		return Identity{}, ErrNotConfigured
	}

	parsed, err := jwt.ParseWithClaims(rawToken, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return Identity{}, fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}
	if v.issuer != "" && claims.Issuer != v.issuer {
		return Identity{}, fmt.Errorf("%w: issuer mismatch", ErrInvalidToken)
	}
	if v.audience != "" && !hasAudience(claims.Audience, v.audience) {
		return Identity{}, fmt.Errorf("%w: audience mismatch", ErrInvalidToken)
	}

	return Identity{
		SubjectID: claims.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
	}, nil
}

func hasAudience(auds jwt.ClaimStrings, want string) bool {
	for _, aud := range auds {
		if aud == want {
			return true
		}
	}
	return false
}

// bypassVerifier returns a fixed development identity for every request,
// valid token or not. Enabled with auth_disable; never use in production.
type bypassVerifier struct {
	identity Identity
}

// NewBypassVerifier builds the dev-mode verifier.
func NewBypassVerifier() Verifier {
	return &bypassVerifier{
		identity: Identity{
			SubjectID: "dev-local",
			Email:     "dev@localhost",
			Name:      "Local Developer",
		},
	}
}

func (v *bypassVerifier) Verify(context.Context, string) (Identity, error) {
	return v.identity, nil
}
