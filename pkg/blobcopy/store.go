package blobcopy

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/arthur-debert/viur/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

// knownBucket holds one empty value per blob key known to the destination
var knownBucket = []byte("known")

// KnownStore remembers blobs the destination already holds, so they are not
// asked for again in a later run
type KnownStore interface {
	Has(key string) (bool, error)
	Add(key string) error
	Len() (int, error)
	Close() error
}

// boltStore is a KnownStore kept in a bbolt database file
type boltStore struct {
	db *bolt.DB
}

// OpenBoltStore opens or creates the database at path
func OpenBoltStore(path string) (KnownStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, errors.ErrFileWrite, "cannot create database directory").WithDetail("path", path)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot open blob database").WithDetail("path", path)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(knownBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, errors.ErrFileWrite, "cannot create bucket").WithDetail("path", path)
	}

	return &boltStore{db: db}, nil
}

func (s *boltStore) Has(key string) (bool, error) {
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket(knownBucket).Get([]byte(key)) != nil
		return nil
	})
	return found, err
}

func (s *boltStore) Add(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(knownBucket).Put([]byte(key), []byte{})
	})
}

func (s *boltStore) Len() (int, error) {
	n := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(knownBucket).Stats().KeyN
		return nil
	})
	return n, err
}

func (s *boltStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// memoryStore is a KnownStore that lives for one run
type memoryStore struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

// NewMemoryStore returns an empty in-memory store
func NewMemoryStore() KnownStore {
	return &memoryStore{keys: make(map[string]struct{})}
}

func (s *memoryStore) Has(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.keys[key]
	return ok, nil
}

func (s *memoryStore) Add(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[key] = struct{}{}
	return nil
}

func (s *memoryStore) Len() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys), nil
}

func (s *memoryStore) Close() error {
	return nil
}
