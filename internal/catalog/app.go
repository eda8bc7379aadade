package catalog

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	DriverMemory   = "memory"
	DriverBolt     = "bolt"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type SlotOptions struct {
	Driver string
	Key    string

	BoltPath    string
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// OpenSlot builds the durable slot for opts.Driver. The returned close func
// releases whatever the backend holds open.
func OpenSlot(ctx context.Context, opts SlotOptions) (Slot, func() error, error) {
	key := opts.Key
	if key == "" {
		key = DefaultSlotKey
	}
	noop := func() error { return nil }

	switch opts.Driver {
	case "", DriverMemory:
		return NewMemSlot(), noop, nil

	case DriverBolt:
		s, err := OpenBoltSlot(opts.BoltPath, key)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "open bolt %s", opts.BoltPath)
		}
		return s, s.Close, nil

	case DriverPostgres:
		db, err := OpenPostgres(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open postgres")
		}
		s := NewPostgresSlot(db, key)
		if err := s.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, errors.Wrap(err, "ensure schema")
		}
		return s, db.Close, nil

	case DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		s := NewRedisSlot(rdb, key)
		if err := s.Ping(ctx); err != nil {
			_ = rdb.Close()
			return nil, nil, errors.Wrap(err, "ping redis")
		}
		return s, rdb.Close, nil
	}

	return nil, nil, errors.Errorf("unknown store driver %q", opts.Driver)
}
