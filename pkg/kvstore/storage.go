// Package kvstore provides the string key-value capability the note and
// session stores persist through. Backends are interchangeable; callers never
// see which one is in use.
package kvstore

import (
	"context"
	"errors"
)

// Storage is scoped to one process. Get reports ok=false for an absent key.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverBolt     = "bolt"
)

var ErrInvalidKey = errors.New("invalid storage key")

func validKey(key string) bool {
	if key == "" || len(key) > 128 {
		return false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return false
		}
	}
	return key != "." && key != ".."
}
