package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/campuskit/leave-service/internal/core/ports"
	amqp "github.com/rabbitmq/amqp091-go"
)

var _ ports.LeaveEventPublisher = (*RabbitMQBroker)(nil)

func (rmq *RabbitMQBroker) PublishLeaveSubmitted(ctx context.Context, evt ports.LeaveSubmittedEvent) error {
	return rmq.publish(ctx, ports.EventLeaveSubmitted, evt)
}

func (rmq *RabbitMQBroker) PublishLeaveReviewed(ctx context.Context, evt ports.LeaveReviewedEvent) error {
	return rmq.publish(ctx, ports.EventLeaveReviewed, evt)
}

func (rmq *RabbitMQBroker) publish(ctx context.Context, eventType string, evt any) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	// Respect context deadline
	if deadline, ok := ctx.Deadline(); ok {
		if time.Until(deadline) <= 0 {
			return ctx.Err()
		}
	}

	// Use circuit breaker to protect RabbitMQ publish operation
	_, err = rmq.cb.Execute(func() (interface{}, error) {
		err := rmq.ch.PublishWithContext(
			ctx,
			"",            // exchange (default)
			rmq.queueName, // routing key == queue name
			false,         // mandatory
			false,         // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				Type:         eventType,
				DeliveryMode: amqp.Persistent,
				Body:         body,
			},
		)
		return nil, err
	})
	return err
}
