package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// MaxHealthCheckRetries is the maximum number of retries for the health check
	MaxHealthCheckRetries = 3
)

// Config is the configuration for the Redis store
type Config struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Store is a Redis store
type Store struct {
	client *redis.Client
}

// healthCheck pings Redis, backing off between attempts until ctx is done.
func healthCheck(ctx context.Context, client *redis.Client) error {
	var err error

	backoff := 100 * time.Millisecond
	for i := 1; i <= MaxHealthCheckRetries; i++ {
		if err = client.Ping(ctx).Err(); err == nil {
			return nil
		}
		if i == MaxHealthCheckRetries {
			break
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}

	return err
}

// New creates a new Redis store instance
func New(ctx context.Context, cfg *Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to instrument redis tracing: %v", err)
	}

	if err := healthCheck(ctx, client); err != nil {
		return nil, status.Errorf(codes.Unavailable, "failed to connect to redis: %v", err)
	}

	return &Store{client: client}, nil
}

// NewFromClient wraps an existing client.
func NewFromClient(client *redis.Client) *Store {
	return &Store{client: client}
}

// Close closes the Redis store
func (s *Store) Close() error {
	return s.client.Close()
}

// Publish publishes a message to a channel and returns the number of receivers.
func (s *Store) Publish(ctx context.Context, channel string, message any) (int64, error) {
	receivers, err := s.client.Publish(ctx, channel, message).Result()
	if err != nil {
		return 0, status.Errorf(codes.Unavailable, "failed to publish to %s: %v", channel, err)
	}

	return receivers, nil
}
