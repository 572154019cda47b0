// Package notifier publishes booking lifecycle events to a Redis stream.
// Publishing is best-effort: a booking is never failed because its event
// could not be emitted.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/redis/go-redis/v9"
)

type event interface {
	Type() string
}

// Notifier is the outbound event port used by the booking handlers.
type Notifier interface {
	BookingConfirmed(ctx context.Context, e BookingConfirmed)
	BookingCancelled(ctx context.Context, e BookingCancelled)
}

type RedisNotifier struct {
	publisher message.Publisher
	logger    *slog.Logger
}

func NewRedisNotifier(rdb redis.UniversalClient, logger *slog.Logger) (*RedisNotifier, error) {
	publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
		Client: rdb,
	}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("creating redis stream publisher: %w", err)
	}

	return &RedisNotifier{
		publisher: publisher,
		logger:    logger,
	}, nil
}

func (n *RedisNotifier) BookingConfirmed(ctx context.Context, e BookingConfirmed) {
	n.publish(ctx, e)
}

func (n *RedisNotifier) BookingCancelled(ctx context.Context, e BookingCancelled) {
	n.publish(ctx, e)
}

func (n *RedisNotifier) publish(ctx context.Context, e event) {
	payload, err := json.Marshal(e)
	if err != nil {
		n.logger.ErrorContext(ctx, "marshalling event", "topic", e.Type(), "error", err)
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)

	if err := n.publisher.Publish(e.Type(), msg); err != nil {
		n.logger.ErrorContext(ctx, "publishing event", "topic", e.Type(), "error", err)
	}
}

func (n *RedisNotifier) Close() error {
	return n.publisher.Close()
}
