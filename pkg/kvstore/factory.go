package kvstore

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"ai-brain-be/pkg/database"
)

type Options struct {
	Driver      string
	Dir         string // file driver
	BoltPath    string // bolt driver; defaults to <Dir>/brain.db
	RedisURL    string
	RedisPrefix string
	DSN         string // postgres driver
}

// Open returns the backend named by opts.Driver and a closer that releases it.
func Open(ctx context.Context, opts Options) (Storage, io.Closer, error) {
	switch opts.Driver {
	case "", DriverMemory:
		return NewMemoryStorage(), nopCloser{}, nil
	case DriverFile:
		s, err := NewFileStorage(opts.Dir)
		if err != nil {
			return nil, nil, err
		}
		return s, nopCloser{}, nil
	case DriverBolt:
		path := opts.BoltPath
		if path == "" {
			path = filepath.Join(opts.Dir, "brain.db")
		}
		s, err := NewBoltStorage(path)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case DriverRedis:
		s, err := NewRedisStorage(ctx, opts.RedisURL, opts.RedisPrefix)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case DriverPostgres:
		if opts.DSN == "" {
			return nil, nil, fmt.Errorf("postgres storage requires DB_CONNECTION_STRING")
		}
		db, err := database.NewGormDBFromDSN(opts.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		s, err := NewGormStorage(db)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver: %s", opts.Driver)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
