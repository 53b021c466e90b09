// Package outbox drains pending integration events from the store to the
// message broker. Services append events in the same write path as the domain
// change; the relay is the only component that publishes them.
package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/campuskit/leave-service/internal/config"
	"github.com/campuskit/leave-service/internal/core/domain"
	"github.com/campuskit/leave-service/internal/core/ports"
)

const (
	// Health check configuration
	healthCheckStaleThreshold = 5 * time.Minute

	// Batch processing limits
	maxEventsPerBatch = 100

	batchProcessTimeout = 60 * time.Second
)

// Relay polls the outbox collection for unprocessed events and publishes
// them to RabbitMQ. MongoDB has no NOTIFY equivalent outside replica-set
// change streams, so the relay runs on a fixed polling interval.
type Relay struct {
	store         ports.OutboxStore
	publisher     ports.LeaveEventPublisher
	logger        *zap.Logger
	interval      time.Duration
	storeCB       *gobreaker.CircuitBreaker
	lastProcessed time.Time
	isHealthy     bool
}

func NewRelay(store ports.OutboxStore, publisher ports.LeaveEventPublisher, interval time.Duration, logger *zap.Logger) *Relay {
	return &Relay{
		store:         store,
		publisher:     publisher,
		logger:        logger,
		interval:      interval,
		storeCB:       config.NewCircuitBreaker("Relay-MongoDB"),
		lastProcessed: time.Now(),
		isHealthy:     true,
	}
}

// IsHealthy reports whether the relay process is alive and responding.
// Liveness only; an open circuit is degraded but recoverable and should not
// kill the process.
func (r *Relay) IsHealthy() bool {
	return r.isHealthy
}

// IsReady reports whether the relay can currently process events.
func (r *Relay) IsReady() bool {
	if r.storeCB.State() == gobreaker.StateOpen {
		return false
	}
	if time.Since(r.lastProcessed) > healthCheckStaleThreshold {
		return false
	}
	return r.isHealthy
}

// Start drains the backlog, then polls until the context is cancelled.
func (r *Relay) Start(ctx context.Context) error {
	r.logger.Info("outbox relay: polling for events", zap.Duration("interval", r.interval))

	if err := r.processBatch(ctx); err != nil {
		r.logger.Warn("outbox relay: error processing startup backlog", zap.Error(err))
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay: shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := r.processBatch(ctx); err != nil {
				r.logger.Warn("outbox relay: error processing batch", zap.Error(err))
				r.isHealthy = false
				continue
			}
			r.lastProcessed = time.Now()
			r.isHealthy = true
		}
	}
}

// processBatch fetches one batch of unprocessed events and publishes them in
// order. A failed publish leaves the event unprocessed for the next pass.
func (r *Relay) processBatch(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, batchProcessTimeout)
	defer cancel()

	eventsAny, err := r.storeCB.Execute(func() (interface{}, error) {
		return r.store.FetchUnprocessed(ctx, maxEventsPerBatch)
	})
	if err != nil {
		return err
	}
	events := eventsAny.([]*domain.OutboxEvent)

	for _, event := range events {
		if err := r.publishEvent(ctx, event); err != nil {
			r.logger.Warn("outbox relay: publish failed",
				zap.String("event_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.Error(err))
			return err
		}

		if _, err := r.storeCB.Execute(func() (interface{}, error) {
			return nil, r.store.MarkProcessed(ctx, event.ID)
		}); err != nil {
			return err
		}
	}
	return nil
}

func (r *Relay) publishEvent(ctx context.Context, event *domain.OutboxEvent) error {
	switch event.EventType {
	case ports.EventLeaveSubmitted:
		var evt ports.LeaveSubmittedEvent
		if err := json.Unmarshal(event.Payload, &evt); err != nil {
			// Bad payloads are marked processed to avoid infinite retries.
			r.logger.Warn("outbox relay: invalid payload", zap.String("event_id", event.ID), zap.Error(err))
			return nil
		}
		return r.publisher.PublishLeaveSubmitted(ctx, evt)

	case ports.EventLeaveReviewed:
		var evt ports.LeaveReviewedEvent
		if err := json.Unmarshal(event.Payload, &evt); err != nil {
			r.logger.Warn("outbox relay: invalid payload", zap.String("event_id", event.ID), zap.Error(err))
			return nil
		}
		return r.publisher.PublishLeaveReviewed(ctx, evt)

	default:
		r.logger.Warn("outbox relay: unknown event type",
			zap.String("event_id", event.ID),
			zap.String("event_type", event.EventType))
		return nil
	}
}
