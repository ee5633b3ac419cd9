package token

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const resetNamespace = "password-reset"

var (
	// ErrResetExpired indicates a reset token older than the allowed window.
	ErrResetExpired = errors.New("reset token expired")
	// ErrResetInvalid indicates a reset token that failed signature or claims checks.
	ErrResetInvalid = errors.New("reset token invalid")
)

type resetClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// ResetIssuer mints and verifies short-lived tokens that authorize a single
// password change for the bound email address. The signing key is derived
// from the shared secret plus a reset-only namespace, so a reset token can
// never verify as a session token or vice versa.
type ResetIssuer struct {
	key    []byte
	maxAge time.Duration
	now    func() time.Time
}

func NewResetIssuer(secret string, maxAge time.Duration) *ResetIssuer {
	sum := sha256.Sum256([]byte(secret + ":" + resetNamespace))
	return &ResetIssuer{
		key:    sum[:],
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Issue produces a signed, timestamped token binding the given email address.
func (r *ResetIssuer) Issue(email string) (string, error) {
	claims := resetClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			Audience: jwt.ClaimStrings{resetNamespace},
			IssuedAt: jwt.NewNumericDate(r.now()),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.key)
	if err != nil {
		return "", fmt.Errorf("sign reset token: %w", err)
	}
	return signed, nil
}

// Verify returns the email address the token binds. A token whose age
// exceeds the configured window fails with ErrResetExpired regardless of
// signature validity; any other failure is ErrResetInvalid.
func (r *ResetIssuer) Verify(tokenStr string) (string, error) {
	var claims resetClaims
	tok, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return r.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(resetNamespace),
		jwt.WithTimeFunc(func() time.Time { return r.now() }),
	)
	if err != nil || !tok.Valid {
		return "", ErrResetInvalid
	}
	if claims.Email == "" || claims.IssuedAt == nil {
		return "", ErrResetInvalid
	}
	if r.now().Sub(claims.IssuedAt.Time) > r.maxAge {
		return "", ErrResetExpired
	}
	return claims.Email, nil
}
