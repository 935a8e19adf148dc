package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kube-rca/todo/internal/config"
	"github.com/kube-rca/todo/internal/db"
	"github.com/kube-rca/todo/internal/model"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const sessionCookieName = "access_token"

// credentialRepo - 사용자 저장소 인터페이스
type credentialRepo interface {
	GetUserByEmail(ctx context.Context, email string) (*model.Credential, error)
	CreateUser(ctx context.Context, email, passwordHash string) (*model.Credential, error)
}

type CookieConfig struct {
	Name     string
	Path     string
	Secure   bool
	SameSite http.SameSite
}

// AuthService handles signup and login and owns the session token authority.
type AuthService struct {
	repo       credentialRepo
	tokens     *TokenAuthority
	bcryptCost int
	cookieCfg  CookieConfig
	// 존재하지 않는 email 로그인에도 같은 bcrypt 비용을 치르기 위한 hash
	dummyHash string
	log       *zap.Logger
}

func NewAuthService(repo credentialRepo, cfg config.AuthConfig, log *zap.Logger) (*AuthService, error) {
	ttl, err := parseDuration(cfg.JWTTTL, DefaultSessionTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JWT_TTL", ErrMisconfigured)
	}

	tokens, err := NewTokenAuthority(cfg.JWTSecret, ttl)
	if err != nil {
		return nil, err
	}

	cost := bcrypt.DefaultCost
	if strings.TrimSpace(cfg.BcryptCost) != "" {
		cost, err = strconv.Atoi(strings.TrimSpace(cfg.BcryptCost))
		if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return nil, fmt.Errorf("%w: invalid BCRYPT_COST", ErrMisconfigured)
		}
	}

	cookieSecure, err := parseBool(cfg.CookieSecure, true)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid AUTH_COOKIE_SECURE", ErrMisconfigured)
	}

	cookieSameSite, err := parseSameSite(cfg.CookieSameSite)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid AUTH_COOKIE_SAMESITE", ErrMisconfigured)
	}

	if cookieSameSite == http.SameSiteNoneMode && !cookieSecure {
		return nil, fmt.Errorf("%w: SameSite=None requires Secure cookie", ErrMisconfigured)
	}

	dummyHash, err := bcrypt.GenerateFromPassword([]byte("dummy-password-for-unknown-users"), cost)
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &AuthService{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: cost,
		cookieCfg: CookieConfig{
			Name:     sessionCookieName,
			Path:     "/",
			Secure:   cookieSecure,
			SameSite: cookieSameSite,
		},
		dummyHash: string(dummyHash),
		log:       log,
	}, nil
}

func (s *AuthService) Tokens() *TokenAuthority {
	return s.tokens
}

func (s *AuthService) CookieConfig() CookieConfig {
	return s.cookieCfg
}

// Signup stores a new credential. The email must be unused.
func (s *AuthService) Signup(ctx context.Context, email, password string) (model.UserInfo, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return model.UserInfo{}, withDetail(ErrInvalidInput, "Email is required")
	}

	_, err := s.repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return model.UserInfo{}, withDetail(ErrConflict, "Email is already taken")
	case !errors.Is(err, db.ErrNotFound):
		return model.UserInfo{}, err
	}

	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return model.UserInfo{}, err
	}

	user, err := s.repo.CreateUser(ctx, email, hash)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return model.UserInfo{}, withDetail(ErrConflict, "Email is already taken")
		}
		return model.UserInfo{}, err
	}

	s.log.Info("user registered", zap.String("user_id", user.ID))
	return user.ToUserInfo(), nil
}

// Login returns a fresh identity token. Unknown email and wrong password
// produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			VerifyPassword(password, s.dummyHash)
			s.log.Debug("login rejected: unknown email")
			return "", withDetail(ErrUnauthorized, "Invalid email or password")
		}
		return "", err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		s.log.Debug("login rejected: password mismatch", zap.String("user_id", user.ID))
		return "", withDetail(ErrUnauthorized, "Invalid email or password")
	}

	return s.tokens.Encode(user.Email)
}

// CSRFGuardFromConfig builds the guard from the CSRF section of the config.
func CSRFGuardFromConfig(cfg config.CSRFConfig) (*CSRFGuard, error) {
	ttl, err := parseDuration(cfg.TTL, DefaultCSRFTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid CSRF_TTL", ErrMisconfigured)
	}
	return NewCSRFGuard(cfg.Secret, ttl)
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	return time.ParseDuration(value)
}

func parseBool(value string, fallback bool) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, err
	}
	return parsed, nil
}

func parseSameSite(value string) (http.SameSite, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return http.SameSiteNoneMode, nil
	}
	switch value {
	case "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	default:
		return 0, ErrInvalidInput
	}
}
