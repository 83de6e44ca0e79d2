package session

import (
	"context"
	"time"

	"github.com/waitlyst/waitlyst/pkg/circuitbreaker"
)

// Cache mirrors the application cache surface without importing the config
// package.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CacheStore keeps sessions in the shared cache (Redis) so they survive
// restarts and are visible to every instance. Calls run behind a circuit
// breaker: a cache outage fails sessions fast instead of hanging signups.
type CacheStore struct {
	cache     Cache
	keyPrefix string
	breaker   circuitbreaker.CircuitBreaker
}

func NewCacheStore(cache Cache) *CacheStore {
	return &CacheStore{
		cache:     cache,
		keyPrefix: "session:",
		breaker:   circuitbreaker.NewCircuitBreaker(nil),
	}
}

func (s *CacheStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.breaker.Call(func() error {
		v, err := s.cache.Get(ctx, s.keyPrefix+key)
		if err != nil {
			return err
		}
		value = v
		return nil
	})
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *CacheStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return s.breaker.Call(func() error {
		return s.cache.Set(ctx, s.keyPrefix+key, value, ttl)
	})
}

func (s *CacheStore) Delete(ctx context.Context, key string) error {
	return s.breaker.Call(func() error {
		return s.cache.Delete(ctx, s.keyPrefix+key)
	})
}
