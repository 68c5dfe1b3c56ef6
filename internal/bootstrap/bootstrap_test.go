package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tebnews/TEBNews_Go/internal/config"
	"github.com/tebnews/TEBNews_Go/internal/domain"
	"github.com/tebnews/TEBNews_Go/internal/event"
	"github.com/tebnews/TEBNews_Go/internal/sse"
	"github.com/tebnews/TEBNews_Go/internal/user"
)

func TestCleanupLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf(LogFileNamePattern, fmt.Sprintf("2026-01-01_00-00-%02d", i))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dead_letter.jsonl"), nil, 0o600))

	cleanupLogs(dir, LogFileRetentionCount)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var logs []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == LogFileExtension {
			logs = append(logs, e.Name())
		}
	}
	require.Len(t, logs, LogFileRetentionCount)
	assert.Equal(t, "session_2026-01-01_00-00-03.log", logs[0], "oldest files are removed first")
	assert.FileExists(t, filepath.Join(dir, "dead_letter.jsonl"))
}

func TestInitializeEventSystem_InMemory(t *testing.T) {
	cfg := &config.Config{DeadLetterPath: filepath.Join(t.TempDir(), "events", "dead_letter.jsonl")}

	events, err := InitializeEventSystem(context.Background(), cfg)
	require.NoError(t, err)
	defer func() { _ = events.Publisher.Shutdown(context.Background()) }()

	assert.Nil(t, events.Relay)
	assert.Nil(t, events.Redis)
	assert.DirExists(t, filepath.Dir(cfg.DeadLetterPath))

	delivered := make(chan event.Event, 1)
	events.Bus.Subscribe(event.ItemSold, func(_ context.Context, evt event.Event) error {
		delivered <- evt
		return nil
	})

	events.Publisher.PublishWithRetry(context.Background(), event.Event{Type: event.ItemSold})

	select {
	case evt := <-delivered:
		assert.Equal(t, event.ItemSold, evt.Type)
	case <-time.After(time.Second):
		t.Fatal("event was not delivered to the bus")
	}
}

func TestInitializeEventSystem_UnreachableRedis(t *testing.T) {
	cfg := &config.Config{
		RedisAddr:      "127.0.0.1:1",
		RedisChannel:   "games",
		DeadLetterPath: filepath.Join(t.TempDir(), "dead_letter.jsonl"),
	}

	_, err := InitializeEventSystem(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), LogMsgFailedConnectRedis)
}

func TestRegisterEventHandlers_BridgesBattlesToLobby(t *testing.T) {
	bus := event.NewMemoryBus()
	hub := sse.NewHub()
	hub.Start()
	defer hub.Stop()

	err := RegisterEventHandlers(EventHandlerDependencies{
		EventBus:    bus,
		UserService: user.NewService(nil, 1000, "house", user.DefaultCacheConfig()),
		Hub:         hub,
	})
	require.NoError(t, err)

	client := hub.Register(sse.LobbyTopic, nil)
	defer hub.Unregister(client.ID)

	battle := &domain.Battle{
		ID:            uuid.New(),
		Status:        domain.BattleStatusWaiting,
		CreatorID:     uuid.New(),
		CaseID:        1,
		PricePerRound: 250,
		RoundCount:    2,
	}
	require.NoError(t, bus.Publish(context.Background(), event.NewBattleCreatedEvent(battle)))

	select {
	case evt := <-client.EventChannel:
		assert.Equal(t, sse.EventTypeBattleCreated, evt.Type)
	case <-time.After(time.Second):
		t.Fatal("lobby client did not receive the battle")
	}
}

func TestGracefulShutdown_ToleratesMissingComponents(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.NotPanics(t, func() {
		GracefulShutdown(ctx, ShutdownComponents{})
	})
}

func TestGracefulShutdown_ClosesRedisClient(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	GracefulShutdown(ctx, ShutdownComponents{Redis: client})

	assert.ErrorIs(t, client.Ping(ctx).Err(), redis.ErrClosed)
}
