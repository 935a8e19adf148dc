package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	CSRF     CSRFConfig
	Postgres PostgresConfig
}

type ServerConfig struct {
	Port           string
	LogLevel       string
	AllowedOrigins []string
}

// AuthConfig - identity token / session cookie 설정
type AuthConfig struct {
	JWTSecret      string
	JWTTTL         string
	CookieSecure   string
	CookieSameSite string
	BcryptCost     string
}

// CSRFConfig - double-submit CSRF 설정
type CSRFConfig struct {
	Secret     string
	TTL        string
	HeaderName string
	CookieName string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

// Load reads .env (if present) and then the process environment.
// Values that are already set in the environment are never overridden by .env.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Server: ServerConfig{
			Port:           getenv("PORT", "8080"),
			LogLevel:       getenv("LOG_LEVEL", "info"),
			AllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Auth: AuthConfig{
			JWTSecret:      os.Getenv("JWT_KEY"),
			JWTTTL:         getenv("JWT_TTL", "5m"),
			CookieSecure:   os.Getenv("AUTH_COOKIE_SECURE"),
			CookieSameSite: getenv("AUTH_COOKIE_SAMESITE", "none"),
			BcryptCost:     os.Getenv("BCRYPT_COST"),
		},
		CSRF: CSRFConfig{
			Secret:     os.Getenv("CSRF_KEY"),
			TTL:        getenv("CSRF_TTL", "1h"),
			HeaderName: getenv("CSRF_HEADER", "X-CSRF-Token"),
			CookieName: getenv("CSRF_COOKIE", "fastapi-csrf-token"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
