package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	DefaultCSRFTTL = time.Hour
	csrfAudience   = "csrf"
)

// CSRFGuard issues and checks double-submit CSRF tokens. A token is a
// nonce signed with the CSRF key; it carries no subject.
type CSRFGuard struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCSRFGuard(secret string, ttl time.Duration) (*CSRFGuard, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: CSRF_KEY is required", ErrMisconfigured)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("%w: CSRF_TTL must be positive", ErrMisconfigured)
	}
	return &CSRFGuard{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (g *CSRFGuard) TTL() time.Duration {
	return g.ttl
}

func (g *CSRFGuard) Issue() (string, error) {
	now := g.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Audience:  jwt.ClaimStrings{csrfAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
}

// Verify checks the header token against the cookie copy and the CSRF key.
// Every failure is a *CSRFError.
func (g *CSRFGuard) Verify(headerToken, cookieToken string) error {
	if headerToken == "" {
		return newCSRFError("Missing CSRF token header")
	}
	if cookieToken == "" {
		return newCSRFError("Missing CSRF cookie")
	}
	if subtle.ConstantTimeCompare([]byte(headerToken), []byte(cookieToken)) != 1 {
		return newCSRFError("The CSRF tokens do not match")
	}

	_, err := jwt.ParseWithClaims(headerToken, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(csrfAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return newCSRFError("The CSRF token has expired")
	default:
		return newCSRFError("The CSRF token is invalid")
	}
}
