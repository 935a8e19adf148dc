package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/kube-rca/todo/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:      "jwt-secret",
		JWTTTL:         "5m",
		CookieSameSite: "none",
		BcryptCost:     "4",
	}
}

func newTestAuthService(t *testing.T, repo credentialRepo) *AuthService {
	t.Helper()
	svc, err := NewAuthService(repo, testAuthConfig(), nil)
	if err != nil {
		t.Fatalf("NewAuthService error: %v", err)
	}
	return svc
}

func TestSignupAndConflict(t *testing.T) {
	repo := newFakeCredentialRepo()
	svc := newTestAuthService(t, repo)
	ctx := context.Background()

	user, err := svc.Signup(ctx, "a@b.com", "secret1")
	if err != nil {
		t.Fatalf("Signup error: %v", err)
	}
	if user.ID == "" || user.Email != "a@b.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if stored := repo.users["a@b.com"].PasswordHash; stored == "" || stored == "secret1" {
		t.Fatalf("password must be stored hashed, got %q", stored)
	}

	_, err = svc.Signup(ctx, "a@b.com", "anything6")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err.Error() != "Email is already taken" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestSignupValidation(t *testing.T) {
	repo := newFakeCredentialRepo()
	svc := newTestAuthService(t, repo)

	if _, err := svc.Signup(context.Background(), "a@b.com", "short"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Signup(context.Background(), "  ", "secret1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank email, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("nothing should be stored, got %d users", len(repo.users))
	}
}

func TestSignupDuplicateOnInsert(t *testing.T) {
	repo := newFakeCredentialRepo()
	repo.dupOnly = true
	svc := newTestAuthService(t, repo)

	if _, err := svc.Signup(context.Background(), "a@b.com", "secret1"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc := newTestAuthService(t, newFakeCredentialRepo())
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "a@b.com", "secret1"); err != nil {
		t.Fatalf("Signup error: %v", err)
	}

	token, err := svc.Login(ctx, "a@b.com", "secret1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	subject, err := svc.Tokens().Decode(token)
	if err != nil || subject != "a@b.com" {
		t.Fatalf("token should decode to the email: %q %v", subject, err)
	}

	_, wrongErr := svc.Login(ctx, "a@b.com", "wrong12")
	if !errors.Is(wrongErr, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", wrongErr)
	}
	_, unknownErr := svc.Login(ctx, "nobody@b.com", "secret1")
	if !errors.Is(unknownErr, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", unknownErr)
	}
	if wrongErr.Error() != unknownErr.Error() {
		t.Fatalf("login errors should not reveal which part failed: %q vs %q", wrongErr, unknownErr)
	}
}

func TestLoginUnknownEmailPaysHashCost(t *testing.T) {
	svc := newTestAuthService(t, newFakeCredentialRepo())

	cost, err := bcrypt.Cost([]byte(svc.dummyHash))
	if err != nil {
		t.Fatalf("dummy hash should be a bcrypt hash: %v", err)
	}
	if cost != svc.bcryptCost {
		t.Fatalf("dummy hash cost = %d, want %d", cost, svc.bcryptCost)
	}

	if _, err := svc.Login(context.Background(), "nobody@b.com", "secret1"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestNewAuthServiceConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.AuthConfig)
	}{
		{name: "missing-secret", mutate: func(c *config.AuthConfig) { c.JWTSecret = "" }},
		{name: "bad-ttl", mutate: func(c *config.AuthConfig) { c.JWTTTL = "soon" }},
		{name: "bad-cost", mutate: func(c *config.AuthConfig) { c.BcryptCost = "99" }},
		{name: "bad-secure", mutate: func(c *config.AuthConfig) { c.CookieSecure = "maybe" }},
		{name: "bad-samesite", mutate: func(c *config.AuthConfig) { c.CookieSameSite = "sometimes" }},
		{name: "none-without-secure", mutate: func(c *config.AuthConfig) { c.CookieSecure = "false" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testAuthConfig()
			tt.mutate(&cfg)
			if _, err := NewAuthService(newFakeCredentialRepo(), cfg, nil); !errors.Is(err, ErrMisconfigured) {
				t.Fatalf("expected ErrMisconfigured, got %v", err)
			}
		})
	}
}

func TestNewAuthServiceCookieDefaults(t *testing.T) {
	svc := newTestAuthService(t, newFakeCredentialRepo())
	cookie := svc.CookieConfig()
	if cookie.Name != "access_token" || !cookie.Secure || cookie.SameSite != http.SameSiteNoneMode {
		t.Fatalf("unexpected cookie config: %+v", cookie)
	}
	if svc.Tokens().TTL() != DefaultSessionTTL {
		t.Fatalf("ttl = %v", svc.Tokens().TTL())
	}
}

func TestCSRFGuardFromConfig(t *testing.T) {
	if _, err := CSRFGuardFromConfig(config.CSRFConfig{Secret: "s", TTL: "never"}); !errors.Is(err, ErrMisconfigured) {
		t.Fatalf("expected ErrMisconfigured, got %v", err)
	}
	g, err := CSRFGuardFromConfig(config.CSRFConfig{Secret: "s"})
	if err != nil {
		t.Fatalf("CSRFGuardFromConfig error: %v", err)
	}
	if g.TTL() != DefaultCSRFTTL {
		t.Fatalf("ttl = %v", g.TTL())
	}
}
