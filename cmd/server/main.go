package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/etams/internal/config"
	"github.com/yukikurage/etams/internal/database"
	"github.com/yukikurage/etams/internal/handlers"
	"github.com/yukikurage/etams/internal/logger"
	"github.com/yukikurage/etams/internal/repository"
	"github.com/yukikurage/etams/internal/router"
	"github.com/yukikurage/etams/internal/services"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	zapLogger, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg, zapLogger); err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(zapLogger); err != nil {
		zapLogger.Fatal("failed to run migrations", zap.Error(err))
	}

	db := database.GetDB()
	employeeRepo := repository.NewEmployeeRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	authService := services.NewAuthService(employeeRepo, tokens)
	if err := authService.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword, zapLogger); err != nil {
		zapLogger.Fatal("failed to bootstrap admin", zap.Error(err))
	}

	var generator services.TaskGenerator
	if cfg.OpenAIAPIKey != "" {
		generator = services.NewAIService(cfg.OpenAIAPIKey)
	} else {
		zapLogger.Info("OPENAI_API_KEY not set, task generation disabled")
	}

	store, err := newSessionStore(cfg)
	if err != nil {
		zapLogger.Fatal("failed to create session store", zap.Error(err))
	}

	r := router.New(router.Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		Employee: handlers.NewEmployeeHandler(services.NewEmployeeService(employeeRepo)),
		Task:     handlers.NewTaskHandler(services.NewTaskService(taskRepo, employeeRepo, generator)),
		Metrics:  handlers.NewMetricsHandler(services.NewMetricsService(employeeRepo, taskRepo)),
	}, tokens, authService, store, zapLogger)

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}

// newSessionStore uses Redis when REDIS_HOST is set and a signed cookie otherwise.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	options := sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	}

	if addr := cfg.RedisAddr(); addr != "" {
		store, err := redisStore.NewStore(10, "tcp", addr, "", []byte(cfg.SessionSecret))
		if err != nil {
			return nil, err
		}
		store.Options(options)
		return store, nil
	}

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(options)
	return store, nil
}
