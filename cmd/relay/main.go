package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/campuskit/leave-service/internal/adapters/messaging"
	"github.com/campuskit/leave-service/internal/adapters/outbox"
	"github.com/campuskit/leave-service/internal/adapters/repository"
	"github.com/campuskit/leave-service/internal/config"
)

// The relay is deployed as its own process so broker outages never slow down
// the request path: the API only appends outbox documents.
func main() {
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, disconnect, err := repository.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logger.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	defer func() { _ = disconnect(context.Background()) }()

	broker, err := messaging.NewRabbitMQBroker(cfg.AMQPURL, cfg.LeaveQueue)
	if err != nil {
		logger.Fatal("failed to connect to rabbitmq", zap.Error(err))
	}
	defer broker.Close()

	relay := outbox.NewRelay(repository.NewMongoOutboxStore(db), broker, cfg.OutboxPollInterval, logger)

	// Liveness/readiness endpoints for the relay process.
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		if !relay.IsHealthy() {
			http.Error(w, "unhealthy", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		if !relay.IsReady() {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	go func() {
		if err := http.ListenAndServe(":8081", mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server", zap.Error(err))
		}
	}()

	if err := relay.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("relay stopped", zap.Error(err))
	}
}
