package boltdb

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dictioquiz/internal/domain"

	bolt "go.etcd.io/bbolt"
)

const bucketWords = "words"

// WordRepo implements repository.WordRepository on an embedded bbolt database.
// Each entry is stored under its big-endian position so iteration preserves order.
type WordRepo struct {
	db   *bolt.DB
	path string
}

// Open opens (creating if needed) the database file
func Open(path string) (*WordRepo, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database %s: %w", path, err)
	}
	return &WordRepo{db: db, path: path}, nil
}

// Close releases the database file lock
func (r *WordRepo) Close() error {
	return r.db.Close()
}

// Load returns all entries in position order
func (r *WordRepo) Load() (domain.WordList, error) {
	list := domain.WordList{}
	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketWords))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var e domain.Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return fmt.Errorf("entry %d: %w", unmarshalSeq(k), err)
			}
			list = append(list, e)
			return nil
		})
	})
	if err != nil {
		return nil, &domain.StorageReadError{Source: r.path, Err: err}
	}
	return list, nil
}

// Save replaces the bucket contents with the given list
func (r *WordRepo) Save(list domain.WordList) error {
	err := r.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketWords)); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		b, err := tx.CreateBucket([]byte(bucketWords))
		if err != nil {
			return err
		}
		for i, e := range list {
			v, err := json.Marshal(e)
			if err != nil {
				return err
			}
			if err := b.Put(marshalSeq(uint64(i)), v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &domain.StorageWriteError{Source: r.path, Err: err}
	}
	return nil
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	if len(key) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(key)
}
