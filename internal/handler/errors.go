package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kube-rca/todo/internal/model"
	"github.com/kube-rca/todo/internal/service"
)

// writeError maps service errors onto HTTP statuses and aborts the chain.
func writeError(c *gin.Context, err error) {
	var csrfErr *service.CSRFError
	switch {
	case errors.As(err, &csrfErr):
		c.AbortWithStatusJSON(csrfErr.Status, model.ErrorResponse{Detail: csrfErr.Message})
	case errors.Is(err, service.ErrUnauthorized):
		c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{Detail: err.Error()})
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrConflict):
		c.AbortWithStatusJSON(http.StatusBadRequest, model.ErrorResponse{Detail: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, model.ErrorResponse{Detail: err.Error()})
	default:
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, model.ErrorResponse{Detail: "server error"})
	}
}
