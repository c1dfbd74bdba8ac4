package kvstore

import (
	"context"

	"github.com/patrickmn/go-cache"
)

// MemoryStorage keeps values for the lifetime of the process.
type MemoryStorage struct {
	cache *cache.Cache
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (s *MemoryStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if !validKey(key) {
		return "", false, ErrInvalidKey
	}
	x, found := s.cache.Get(key)
	if !found {
		return "", false, nil
	}
	return x.(string), true, nil
}

func (s *MemoryStorage) Set(ctx context.Context, key, value string) error {
	if !validKey(key) {
		return ErrInvalidKey
	}
	s.cache.Set(key, value, cache.NoExpiration)
	return nil
}
