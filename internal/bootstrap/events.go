package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"

	"github.com/tebnews/TEBNews_Go/internal/config"
	"github.com/tebnews/TEBNews_Go/internal/event"
)

// EventSystem is the wired event bus and its publisher. Subscribers register on Bus;
// with redis enabled Bus is the relay, so published events also reach other instances.
type EventSystem struct {
	Bus       event.Bus
	Publisher *event.ResilientPublisher
	Relay     *event.RedisBus       // nil unless REDIS_ADDR is set
	Redis     redis.UniversalClient // nil unless REDIS_ADDR is set
}

// InitializeEventSystem creates the in-memory bus, wraps it with the redis relay when
// configured, and puts a resilient publisher with a dead-letter file in front.
func InitializeEventSystem(ctx context.Context, cfg *config.Config) (*EventSystem, error) {
	var bus event.Bus = event.NewMemoryBus()

	var relay *event.RedisBus
	var redisClient redis.UniversalClient
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

		connectCtx, cancel := context.WithTimeout(ctx, RedisConnectTimeout)
		defer cancel()

		if err := client.Ping(connectCtx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("%s: %w", LogMsgFailedConnectRedis, err)
		}

		relay = event.NewRedisBus(bus, client, cfg.RedisChannel)
		if err := relay.Start(connectCtx); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("%s: %w", LogMsgFailedStartRedisRelay, err)
		}
		bus = relay
		redisClient = client
		slog.Info(LogMsgRedisRelayEnabled, "addr", cfg.RedisAddr, "channel", cfg.RedisChannel)
	}

	deadLetterPath := cfg.DeadLetterPath
	if deadLetterPath == "" {
		deadLetterPath = config.DefaultDeadLetterPath
	}

	// Ensure dead-letter directory exists
	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	publisher, err := event.NewResilientPublisher(bus, EventDefaultMaxRetries, EventDefaultRetryDelay, deadLetterPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", EventDefaultMaxRetries,
		"retry_delay", EventDefaultRetryDelay,
		"deadletter_path", deadLetterPath)

	return &EventSystem{Bus: bus, Publisher: publisher, Relay: relay, Redis: redisClient}, nil
}
