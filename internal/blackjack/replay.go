package blackjack

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
)

// SpentTokenStore remembers spent state token ids so each state blob is played once.
type SpentTokenStore interface {
	// Consume marks id as spent for ttl. It returns false if id was already spent.
	Consume(ctx context.Context, id string, ttl time.Duration) (bool, error)
	// Release returns id to the unspent pool after an action failed before committing.
	Release(ctx context.Context, id string) error
}

// memorySpentTokens keeps spent ids in process until their state would have expired anyway.
type memorySpentTokens struct {
	mu    sync.Mutex
	spent *expirable.LRU[string, struct{}]
}

func newMemorySpentTokens(size int, ttl time.Duration) *memorySpentTokens {
	return &memorySpentTokens{
		spent: expirable.NewLRU[string, struct{}](size, nil, ttl),
	}
}

func (m *memorySpentTokens) Consume(_ context.Context, id string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.spent.Contains(id) {
		return false, nil
	}
	m.spent.Add(id, struct{}{})
	return true, nil
}

func (m *memorySpentTokens) Release(_ context.Context, id string) error {
	m.spent.Remove(id)
	return nil
}

// RedisSpentTokens shares spent ids between instances behind the same redis.
type RedisSpentTokens struct {
	client redis.UniversalClient
}

// NewRedisSpentTokens creates a store on client.
func NewRedisSpentTokens(client redis.UniversalClient) *RedisSpentTokens {
	return &RedisSpentTokens{client: client}
}

func (r *RedisSpentTokens) Consume(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	if ttl < time.Second {
		ttl = time.Second
	}
	return r.client.SetNX(ctx, spentTokenKeyPrefix+id, 1, ttl).Result()
}

func (r *RedisSpentTokens) Release(ctx context.Context, id string) error {
	return r.client.Del(ctx, spentTokenKeyPrefix+id).Err()
}
