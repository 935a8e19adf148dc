package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kube-rca/todo/internal/service"
	"go.uber.org/zap"
)

const (
	authSubjectKey = "auth_subject"
	sessionKey     = "auth_session"
	bearerPrefix   = "Bearer "
)

// CSRFSettings names the header and cookie that carry the double-submit token.
type CSRFSettings struct {
	HeaderName string
	CookieName string
	Secure     bool
	SameSite   http.SameSite
}

type session struct {
	token  string
	cookie service.CookieConfig
}

// CSRFMiddleware rejects the request unless the CSRF header matches the CSRF cookie
// and carries a valid signature.
func CSRFMiddleware(guard *service.CSRFGuard, settings CSRFSettings) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := c.Cookie(settings.CookieName)
		if err := guard.Verify(c.GetHeader(settings.HeaderName), cookie); err != nil {
			writeError(c, err)
			return
		}
		c.Next()
	}
}

// IdentityMiddleware verifies the access_token cookie and stores the subject and
// the reissued token for the handler.
func IdentityMiddleware(authService *service.AuthService) gin.HandlerFunc {
	cookieCfg := authService.CookieConfig()
	tokens := authService.Tokens()

	return func(c *gin.Context) {
		raw, _ := c.Cookie(cookieCfg.Name)
		token, ok := strings.CutPrefix(raw, bearerPrefix)
		if !ok {
			writeError(c, service.ErrUnauthorized)
			return
		}

		newToken, subject, err := tokens.VerifyAndReissue(strings.TrimSpace(token))
		if err != nil {
			writeError(c, err)
			return
		}

		c.Set(authSubjectKey, subject)
		c.Set(sessionKey, session{token: newToken, cookie: cookieCfg})
		c.Next()
	}
}

func GetAuthSubject(c *gin.Context) string {
	return c.GetString(authSubjectKey)
}

// writeWithSession renews the session cookie, if the identity guard ran, and writes body.
func writeWithSession(c *gin.Context, status int, body any) {
	if value, ok := c.Get(sessionKey); ok {
		if sess, ok := value.(session); ok {
			setSessionCookie(c, sess.cookie, sess.token)
		}
	}
	c.JSON(status, body)
}

func setSessionCookie(c *gin.Context, cfg service.CookieConfig, token string) {
	c.SetSameSite(cfg.SameSite)
	c.SetCookie(cfg.Name, bearerPrefix+token, 0, cfg.Path, "", cfg.Secure, true)
}

func clearSessionCookie(c *gin.Context, cfg service.CookieConfig) {
	c.SetSameSite(cfg.SameSite)
	c.SetCookie(cfg.Name, "", -1, cfg.Path, "", cfg.Secure, true)
}

func CORSMiddleware(allowedOrigins []string, csrfHeader string) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}
	allowHeaders := "Content-Type"
	if csrfHeader != "" {
		allowHeaders += ", " + csrfHeader
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := originMap[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				c.Header("Access-Control-Allow-Credentials", "true")
				c.Header("Access-Control-Allow-Headers", allowHeaders)
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestLogger logs one line per request.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.String()))
			log.Error("request failed", fields...)
			return
		}
		log.Info("request", fields...)
	}
}
