package catalog

import (
	"context"
	"time"

	bolt "go.etcd.io/bbolt"
)

var slotsBucket = []byte("slots")

// BoltSlot keeps the slot in a local bbolt file, one key in the "slots" bucket.
type BoltSlot struct {
	db  *bolt.DB
	key []byte
}

func OpenBoltSlot(path, key string) (*BoltSlot, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(slotsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BoltSlot{db: db, key: []byte(key)}, nil
}

func (s *BoltSlot) Close() error { return s.db.Close() }

func (s *BoltSlot) Ping(ctx context.Context) error {
	return s.db.View(func(tx *bolt.Tx) error { return nil })
}

func (s *BoltSlot) Load(ctx context.Context) ([]byte, bool, error) {
	var (
		data []byte
		ok   bool
	)

	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(slotsBucket).Get(s.key)
		if v == nil {
			return nil
		}
		// bolt values are only valid inside the transaction.
		data = append([]byte(nil), v...)
		ok = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return data, ok, nil
}

func (s *BoltSlot) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(slotsBucket).Put(s.key, data)
	})
}
