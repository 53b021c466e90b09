package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/campuskit/leave-service/internal/adapters/handler"
	"github.com/campuskit/leave-service/internal/adapters/middleware"
	"github.com/campuskit/leave-service/internal/adapters/repository"
	sessionadapter "github.com/campuskit/leave-service/internal/adapters/session"
	"github.com/campuskit/leave-service/internal/config"
	"github.com/campuskit/leave-service/internal/core/services"
)

func main() {
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, disconnect, err := repository.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logger.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	defer func() { _ = disconnect(context.Background()) }()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}

	accountRepo := repository.NewMongoAccountRepository(db)
	leaveRepo := repository.NewMongoLeaveRepository(db)
	outboxStore := repository.NewMongoOutboxStore(db)
	sessions := sessionadapter.NewRedisSessionManager(redisClient, cfg.SessionTTL)

	authService := services.NewAuthService(accountRepo)
	registrationService := services.NewRegistrationService(accountRepo)
	accountService := services.NewAccountService(accountRepo)
	leaveService := services.NewLeaveService(leaveRepo, accountRepo, outboxStore)

	gate := middleware.NewSessionGate(sessions)

	router := handler.NewRouter(
		handler.NewAuthHandler(authService, sessions, cfg.SessionTTL),
		handler.NewRegistrationHandler(registrationService),
		handler.NewProfileHandler(accountService, leaveService),
		handler.NewLeaveHandler(leaveService, accountService),
		handler.NewHealthHandler(db, redisClient),
		gate,
		logger,
	)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
}
