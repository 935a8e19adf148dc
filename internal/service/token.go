package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultSessionTTL = 5 * time.Minute

// TokenAuthority mints and verifies identity tokens. Every successful
// verification re-mints the token so the session slides forward by ttl.
type TokenAuthority struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type identityClaims struct {
	jwt.RegisteredClaims
}

func NewTokenAuthority(secret string, ttl time.Duration) (*TokenAuthority, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: JWT_KEY is required", ErrMisconfigured)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("%w: JWT_TTL must be positive", ErrMisconfigured)
	}
	return &TokenAuthority{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (a *TokenAuthority) TTL() time.Duration {
	return a.ttl
}

// Encode signs a token for subject that expires ttl from now.
func (a *TokenAuthority) Encode(subject string) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", withDetail(ErrInvalidInput, "empty subject")
	}

	now := a.now()
	return a.mint(subject, now, now.Add(a.ttl))
}

func (a *TokenAuthority) mint(subject string, issuedAt, expiresAt time.Time) (string, error) {
	claims := identityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Decode returns the subject of a valid, unexpired token.
func (a *TokenAuthority) Decode(tokenStr string) (string, error) {
	claims, err := a.parse(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// VerifyAndReissue decodes tokenStr and mints a fresh token for the same subject.
// The new expiration is always strictly after the old one, even when the
// reissue lands in the same second as the original mint.
func (a *TokenAuthority) VerifyAndReissue(tokenStr string) (string, string, error) {
	if strings.TrimSpace(tokenStr) == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := a.parse(tokenStr)
	if err != nil {
		return "", "", err
	}

	now := a.now()
	expiresAt := now.Add(a.ttl)
	// exp는 초 단위로 잘리므로 이전 exp + 1s 이상을 보장한다
	if floor := claims.ExpiresAt.Time.Add(time.Second); expiresAt.Before(floor) {
		expiresAt = floor
	}

	newToken, err := a.mint(claims.Subject, now, expiresAt)
	if err != nil {
		return "", "", err
	}
	return newToken, claims.Subject, nil
}

// ExpiresAt reports the expiration of a token that verifies against this authority.
func (a *TokenAuthority) ExpiresAt(tokenStr string) (time.Time, error) {
	claims, err := a.parse(tokenStr)
	if err != nil {
		return time.Time{}, err
	}
	return claims.ExpiresAt.Time, nil
}

func (a *TokenAuthority) parse(tokenStr string) (*identityClaims, error) {
	claims := &identityClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthorized
		}
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, ErrUnauthorized
	}
	return claims, nil
}
