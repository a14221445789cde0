package queue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Message is one event read from a stream.
type Message struct {
	ID    string // Redis message ID (e.g., "1702000000000-0")
	Event SentimentEvent
	Err   error // set when the payload could not be parsed
}

// Consumer reads events from a stream through a consumer group.
type Consumer interface {
	// EnsureGroup creates the consumer group (and stream) if missing.
	EnsureGroup(ctx context.Context, stream, group string) error

	// Read returns new messages for this consumer, blocking up to block.
	Read(ctx context.Context, stream, group, consumer string, count int64, block time.Duration) ([]Message, error)

	// ReadPending returns messages delivered to this consumer but never acknowledged.
	ReadPending(ctx context.Context, stream, group, consumer string, count int64) ([]Message, error)

	Ack(ctx context.Context, stream, group string, messageIDs ...string) error
}

// RedisConsumer implements Consumer using Redis Streams.
type RedisConsumer struct {
	client *redis.Client
	log    *zap.Logger
}

func NewConsumer(client *redis.Client, log *zap.Logger) Consumer {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisConsumer{client: client, log: log.Named("consumer")}
}

// EnsureGroup runs XGROUP CREATE ... 0 MKSTREAM; an existing group is fine.
func (c *RedisConsumer) EnsureGroup(ctx context.Context, stream, group string) error {
	err := c.client.XGroupCreateMkStream(ctx, stream, group, "0").Err()
	if err != nil {
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			c.log.Debug("group exists", zap.String("stream", stream), zap.String("group", group))
			return nil
		}
		return fmt.Errorf("create consumer group: %w", err)
	}

	c.log.Info("group created", zap.String("stream", stream), zap.String("group", group))
	return nil
}

// Read uses XREADGROUP with ">" so only undelivered messages are returned.
func (c *RedisConsumer) Read(ctx context.Context, stream, group, consumer string, count int64, block time.Duration) ([]Message, error) {
	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{stream, ">"},
		Count:    count,
		Block:    block,
	}).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("xreadgroup: %w", err)
	}
	return c.parse(streams), nil
}

// ReadPending uses "0" instead of ">" to replay this consumer's pending list.
func (c *RedisConsumer) ReadPending(ctx context.Context, stream, group, consumer string, count int64) ([]Message, error) {
	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{stream, "0"},
		Count:    count,
	}).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("xreadgroup pending: %w", err)
	}
	return c.parse(streams), nil
}

func (c *RedisConsumer) parse(streams []redis.XStream) []Message {
	var messages []Message
	for _, s := range streams {
		for _, msg := range s.Messages {
			event, err := ParseSentimentEvent(msg.Values)
			if err != nil {
				c.log.Warn("malformed message", zap.String("msg_id", msg.ID), zap.Error(err))
			}
			event.MessageID = msg.ID
			messages = append(messages, Message{ID: msg.ID, Event: event, Err: err})
		}
	}
	return messages
}

func (c *RedisConsumer) Ack(ctx context.Context, stream, group string, messageIDs ...string) error {
	if len(messageIDs) == 0 {
		return nil
	}

	acked, err := c.client.XAck(ctx, stream, group, messageIDs...).Result()
	if err != nil {
		return fmt.Errorf("xack: %w", err)
	}
	c.log.Debug("acked", zap.String("stream", stream), zap.Int64("count", acked))
	return nil
}
