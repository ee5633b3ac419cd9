package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken indicates a bearer token that failed verification.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the assertion carried inside a session token. Only these
// strings travel in the token; they are not re-checked against the store
// on every request.
type Identity struct {
	Username string
	Role     string
}

type sessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// SessionIssuer mints and verifies HS256 bearer tokens for authenticated
// sessions. A zero ttl issues tokens without an expiry.
type SessionIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionIssuer(secret string, ttl time.Duration) *SessionIssuer {
	return &SessionIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue produces a signed bearer token asserting the given identity.
func (s *SessionIssuer) Issue(identity Identity) (string, error) {
	now := s.now()
	claims := sessionClaims{
		Username: identity.Username,
		Role:     identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  identity.Username,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify parses a bearer token and returns the identity it asserts.
func (s *SessionIssuer) Verify(tokenStr string) (Identity, error) {
	var claims sessionClaims
	tok, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil || !tok.Valid {
		return Identity{}, ErrInvalidToken
	}
	if claims.Username == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{Username: claims.Username, Role: claims.Role}, nil
}
