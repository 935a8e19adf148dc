package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kube-rca/todo/internal/config"
	"github.com/kube-rca/todo/internal/db"
	"github.com/kube-rca/todo/internal/handler"
	"github.com/kube-rca/todo/internal/logger"
	"github.com/kube-rca/todo/internal/service"
	"go.uber.org/zap"
)

// @title Todo API
// @version 1.0
// @description Task list API with cookie sessions and double-submit CSRF protection.
// @BasePath /
func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Server.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer pool.Close()

	store := db.NewPostgres(pool)
	if err := store.Migrate(ctx); err != nil {
		return err
	}

	authService, err := service.NewAuthService(store, cfg.Auth, log.Named("auth"))
	if err != nil {
		return err
	}
	csrfGuard, err := service.CSRFGuardFromConfig(cfg.CSRF)
	if err != nil {
		return err
	}

	// CSRF 쿠키는 세션 쿠키와 같은 속성을 따른다
	cookieCfg := authService.CookieConfig()

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(handler.RouterDeps{
		Auth:  authService,
		CSRF:  csrfGuard,
		Todos: service.NewTodoService(store),
		CSRFSettings: handler.CSRFSettings{
			HeaderName: cfg.CSRF.HeaderName,
			CookieName: cfg.CSRF.CookieName,
			Secure:     cookieCfg.Secure,
			SameSite:   cookieCfg.SameSite,
		},
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Log:            log.Named("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
