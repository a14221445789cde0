package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Publisher adds events to a stream.
type Publisher interface {
	// Publish returns the message ID assigned by Redis.
	Publish(ctx context.Context, stream string, event SentimentEvent) (messageID string, err error)
}

// RedisPublisher implements Publisher using Redis Streams.
type RedisPublisher struct {
	client *redis.Client
	log    *zap.Logger
}

func NewPublisher(client *redis.Client, log *zap.Logger) Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisPublisher{client: client, log: log.Named("publisher")}
}

// Publish adds an event with XADD and an auto-generated ID.
func (p *RedisPublisher) Publish(ctx context.Context, stream string, event SentimentEvent) (string, error) {
	start := time.Now()

	values, err := event.ToMap()
	if err != nil {
		return "", fmt.Errorf("serialize event: %w", err)
	}

	messageID, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: values,
	}).Result()
	if err != nil {
		p.log.Error("publish failed", zap.String("stream", stream), zap.String("type", event.Type), zap.Error(err))
		return "", fmt.Errorf("xadd to stream: %w", err)
	}

	p.log.Debug("published",
		zap.String("stream", stream),
		zap.String("type", event.Type),
		zap.String("msg_id", messageID),
		zap.String("device_id", event.DeviceID),
		zap.Duration("duration", time.Since(start)),
	)
	return messageID, nil
}
