package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// JwtBlacklistStore remembers logged out tokens until they expire
type JwtBlacklistStore interface {
	// IsBlacklisted checks if the given token is blacklisted.
	IsBlacklisted(ctx context.Context, token string) (bool, error)
	// AddToBlacklist adds the given token to the blacklist until exp.
	AddToBlacklist(ctx context.Context, token string, exp time.Time) error
}

// InMemoryBlacklistStore keeps the blacklist in process memory
type InMemoryBlacklistStore struct {
	blacklist map[string]time.Time
	mu        sync.RWMutex
	stop      chan struct{}
	stopOnce  sync.Once
}

// NewInMemoryBlacklistStore returns a store that drops expired entries every five minutes
func NewInMemoryBlacklistStore() *InMemoryBlacklistStore {
	store := &InMemoryBlacklistStore{
		blacklist: make(map[string]time.Time),
		stop:      make(chan struct{}),
	}
	go periodicallyCleanUp(store, time.Minute*5)
	return store
}

func periodicallyCleanUp(store *InMemoryBlacklistStore, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			store.CleanUpExpired()
		case <-store.stop:
			return
		}
	}
}

// Close stops the cleanup goroutine
func (s *InMemoryBlacklistStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// CleanUpExpired removes entries whose token has already expired
func (s *InMemoryBlacklistStore) CleanUpExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for token, exp := range s.blacklist {
		if exp.Before(now) {
			delete(s.blacklist, token)
		}
	}
}

func (s *InMemoryBlacklistStore) IsBlacklisted(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.blacklist[token]
	return exists, nil
}

func (s *InMemoryBlacklistStore) AddToBlacklist(_ context.Context, token string, exp time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blacklist[token] = exp
	return nil
}

// RedisBlacklistStore shares the blacklist between server instances
type RedisBlacklistStore struct {
	client *redis.Client
	prefix string
}

// NewRedisBlacklistStore stores entries under "onestop:jwt-blacklist:<token>"
func NewRedisBlacklistStore(client *redis.Client) *RedisBlacklistStore {
	return &RedisBlacklistStore{client: client, prefix: "onestop:jwt-blacklist:"}
}

func (s *RedisBlacklistStore) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, s.prefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisBlacklistStore) AddToBlacklist(ctx context.Context, token string, exp time.Time) error {
	ttl := time.Until(exp)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, s.prefix+token, "1", ttl).Err()
}
