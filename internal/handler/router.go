package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kube-rca/todo/internal/service"
	"go.uber.org/zap"
)

// Route declares one endpoint and the guards it needs. When both guards are set
// the CSRF check always runs first.
type Route struct {
	Method   string
	Path     string
	CSRF     bool
	Identity bool
	Handle   gin.HandlerFunc
}

type RouterDeps struct {
	Auth           *service.AuthService
	CSRF           *service.CSRFGuard
	Todos          *service.TodoService
	CSRFSettings   CSRFSettings
	AllowedOrigins []string
	Log            *zap.Logger
}

func Routes(auth *AuthHandler, todos *TodoHandler) []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/", Handle: Root},
		{Method: http.MethodGet, Path: "/ping", Handle: Ping},
		{Method: http.MethodGet, Path: "/openapi.json", Handle: OpenAPIDoc},

		{Method: http.MethodGet, Path: "/api/csrftoken", Handle: auth.CsrfToken},
		{Method: http.MethodPost, Path: "/api/register", CSRF: true, Handle: auth.Register},
		{Method: http.MethodPost, Path: "/api/login", CSRF: true, Handle: auth.Login},
		{Method: http.MethodPost, Path: "/api/logout", CSRF: true, Handle: auth.Logout},
		{Method: http.MethodGet, Path: "/api/user", Identity: true, Handle: auth.User},

		{Method: http.MethodPost, Path: "/api/todo", CSRF: true, Identity: true, Handle: todos.CreateTodo},
		{Method: http.MethodGet, Path: "/api/todo", Identity: true, Handle: todos.GetTodos},
		{Method: http.MethodGet, Path: "/api/todo/:id", Identity: true, Handle: todos.GetTodo},
		{Method: http.MethodPut, Path: "/api/todo/:id", CSRF: true, Identity: true, Handle: todos.UpdateTodo},
		{Method: http.MethodDelete, Path: "/api/todo/:id", CSRF: true, Identity: true, Handle: todos.DeleteTodo},
	}
}

func NewRouter(deps RouterDeps) *gin.Engine {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log), CORSMiddleware(deps.AllowedOrigins, deps.CSRFSettings.HeaderName))

	authHandler := NewAuthHandler(deps.Auth, deps.CSRF, deps.CSRFSettings)
	todoHandler := NewTodoHandler(deps.Todos)

	csrfGuard := CSRFMiddleware(deps.CSRF, deps.CSRFSettings)
	identityGuard := IdentityMiddleware(deps.Auth)

	for _, rt := range Routes(authHandler, todoHandler) {
		var chain []gin.HandlerFunc
		if rt.CSRF {
			chain = append(chain, csrfGuard)
		}
		if rt.Identity {
			chain = append(chain, identityGuard)
		}
		chain = append(chain, rt.Handle)
		router.Handle(rt.Method, rt.Path, chain...)
	}

	return router
}
