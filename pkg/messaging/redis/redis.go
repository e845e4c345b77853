package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jwalitptl/hospital-api/pkg/circuitbreaker"
	"github.com/jwalitptl/hospital-api/pkg/messaging"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

// client is the subset of *redis.Client the publisher needs.
type client interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Close() error
}

type RedisPublisher struct {
	client  client
	channel string
	cb      *circuitbreaker.CircuitBreaker
	metrics *metrics.Metrics
}

type Config struct {
	URL          string
	Channel      string
	MaxRetries   int
	RetryBackoff time.Duration
	PoolSize     int
}

func NewRedisPublisher(ctx context.Context, config Config, m *metrics.Metrics) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	// Configure connection pooling
	opts.MaxRetries = config.MaxRetries
	opts.MinRetryBackoff = config.RetryBackoff
	if config.PoolSize > 0 {
		opts.PoolSize = config.PoolSize
	}

	c := redis.NewClient(opts)

	// Test connection
	if err := c.Ping(ctx).Err(); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return newPublisher(c, config.Channel, m), nil
}

func newPublisher(c client, channel string, m *metrics.Metrics) *RedisPublisher {
	return &RedisPublisher{
		client:  c,
		channel: channel,
		cb: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:                "redis-publisher",
			MaxRequests:         1,
			Interval:            10 * time.Second,
			Timeout:             5 * time.Second,
			ConsecutiveFailures: 5,
		}),
		metrics: m,
	}
}

func (p *RedisPublisher) Publish(ctx context.Context, event messaging.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.cb.Execute(func() error {
		return p.client.Publish(ctx, p.channel, payload).Err()
	})
	p.metrics.ObservePublish(event.Type, err)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
