package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kube-rca/todo/internal/model"
	"github.com/kube-rca/todo/internal/service"
)

type AuthHandler struct {
	svc  *service.AuthService
	csrf *service.CSRFGuard
	cfg  CSRFSettings
}

func NewAuthHandler(svc *service.AuthService, csrf *service.CSRFGuard, cfg CSRFSettings) *AuthHandler {
	return &AuthHandler{svc: svc, csrf: csrf, cfg: cfg}
}

// CsrfToken godoc
// @Summary Issue a CSRF token
// @Description Returns a signed token and sets the matching double-submit cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} model.CsrfResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/csrftoken [get]
func (h *AuthHandler) CsrfToken(c *gin.Context) {
	token, err := h.csrf.Issue()
	if err != nil {
		writeError(c, err)
		return
	}

	c.SetSameSite(h.cfg.SameSite)
	c.SetCookie(h.cfg.CookieName, token, int(h.csrf.TTL().Seconds()), "/", "", h.cfg.Secure, true)
	c.JSON(http.StatusOK, model.CsrfResponse{CsrfToken: token})
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param X-CSRF-Token header string true "CSRF token"
// @Param request body model.AuthRequest true "Email and password"
// @Success 200 {object} model.UserInfo
// @Failure 400 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /api/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Detail: "invalid request"})
		return
	}

	user, err := h.svc.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Login godoc
// @Summary Login
// @Description Sets the access_token session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param X-CSRF-Token header string true "CSRF token"
// @Param request body model.AuthRequest true "Email and password"
// @Success 200 {object} model.SuccessMsg
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /api/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Detail: "invalid request"})
		return
	}

	token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	setSessionCookie(c, h.svc.CookieConfig(), token)
	c.JSON(http.StatusOK, model.SuccessMsg{Message: "Successfully logged-in"})
}

// Logout godoc
// @Summary Logout
// @Description Clears the access_token session cookie.
// @Tags auth
// @Produce json
// @Param X-CSRF-Token header string true "CSRF token"
// @Success 200 {object} model.SuccessMsg
// @Failure 403 {object} model.ErrorResponse
// @Router /api/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	clearSessionCookie(c, h.svc.CookieConfig())
	c.JSON(http.StatusOK, model.SuccessMsg{Message: "Successfully logged-out"})
}

// User godoc
// @Summary Get current user
// @Tags auth
// @Produce json
// @Success 200 {object} model.UserInfo
// @Failure 401 {object} model.ErrorResponse
// @Router /api/user [get]
func (h *AuthHandler) User(c *gin.Context) {
	subject := GetAuthSubject(c)
	if subject == "" {
		writeError(c, service.ErrUnauthorized)
		return
	}
	writeWithSession(c, http.StatusOK, model.UserInfo{Email: subject})
}
