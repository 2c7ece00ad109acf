package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"mockly/interview/internal/models"
)

// ChannelInterviewScored carries one message per interview, on first scoring.
const ChannelInterviewScored = "interview_scored"

type Publisher interface {
	PublishScored(ctx context.Context, event models.ScoredEvent) error
}

type RedisPublisher struct {
	rdb *redis.Client
}

func NewRedisPublisher(redisAddr string) *RedisPublisher {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) PublishScored(ctx context.Context, event models.ScoredEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode scored event: %w", err)
	}
	if err := p.rdb.Publish(ctx, ChannelInterviewScored, string(payload)).Err(); err != nil {
		return fmt.Errorf("failed to publish scored event: %w", err)
	}
	return nil
}

func (p *RedisPublisher) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}

func (p *RedisPublisher) Close() error {
	return p.rdb.Close()
}

// NopPublisher is used when no Redis address is configured.
type NopPublisher struct{}

func (NopPublisher) PublishScored(context.Context, models.ScoredEvent) error { return nil }
