package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kube-rca/todo/internal/model"
	"github.com/kube-rca/todo/internal/service"
)

type TodoHandler struct {
	svc *service.TodoService
}

func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// CreateTodo godoc
// @Summary Create a task
// @Tags todo
// @Accept json
// @Produce json
// @Param X-CSRF-Token header string true "CSRF token"
// @Param request body model.TodoBody true "Task"
// @Success 201 {object} model.Todo
// @Failure 400,401,403 {object} model.ErrorResponse
// @Router /api/todo [post]
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	var req model.TodoBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Detail: err.Error()})
		return
	}

	todo, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	writeWithSession(c, http.StatusCreated, todo)
}

// GetTodos godoc
// @Summary List tasks
// @Tags todo
// @Produce json
// @Success 200 {array} model.Todo
// @Failure 401 {object} model.ErrorResponse
// @Router /api/todo [get]
func (h *TodoHandler) GetTodos(c *gin.Context) {
	todos, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	writeWithSession(c, http.StatusOK, todos)
}

// GetTodo godoc
// @Summary Get a task
// @Tags todo
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} model.Todo
// @Failure 401,404 {object} model.ErrorResponse
// @Router /api/todo/{id} [get]
func (h *TodoHandler) GetTodo(c *gin.Context) {
	todo, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	writeWithSession(c, http.StatusOK, todo)
}

// UpdateTodo godoc
// @Summary Update a task
// @Tags todo
// @Accept json
// @Produce json
// @Param X-CSRF-Token header string true "CSRF token"
// @Param id path string true "Task ID"
// @Param request body model.TodoBody true "Task"
// @Success 200 {object} model.Todo
// @Failure 400,401,403,404 {object} model.ErrorResponse
// @Router /api/todo/{id} [put]
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	var req model.TodoBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Detail: err.Error()})
		return
	}

	todo, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	writeWithSession(c, http.StatusOK, todo)
}

// DeleteTodo godoc
// @Summary Delete a task
// @Tags todo
// @Produce json
// @Param X-CSRF-Token header string true "CSRF token"
// @Param id path string true "Task ID"
// @Success 200 {object} model.SuccessMsg
// @Failure 401,403,404 {object} model.ErrorResponse
// @Router /api/todo/{id} [delete]
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	writeWithSession(c, http.StatusOK, model.SuccessMsg{Message: "Successfully deleted"})
}
