package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/LeJamon/goAMMd/internal/core/ledger/keylet"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	"github.com/LeJamon/goAMMd/internal/storage/compression"
	"github.com/LeJamon/goAMMd/internal/storage/database"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// stateKeyPrefix namespaces ledger entries in the key-value store.
const stateKeyPrefix = 's'

// DefaultCacheSize is the number of decoded entries kept by a Store.
const DefaultCacheSize = 4096

// StoreConfig holds configuration for a Store.
type StoreConfig struct {
	// CacheSize is the number of entries kept in memory. Zero means DefaultCacheSize.
	CacheSize int

	// Compression names the compressor for new writes ("none" or "lz4").
	// Entries written with any registered compressor remain readable.
	Compression string

	Logger *zap.Logger
}

// Store is a ledger view persisted in a key-value database.
type Store struct {
	mu         sync.RWMutex
	db         database.DB
	cache      *lru.Cache[[32]byte, []byte]
	compressor compression.Compressor
	logger     *zap.Logger

	hits, misses atomic.Uint64
}

// NewStore creates a view over db.
func NewStore(db database.DB, cfg StoreConfig) (*Store, error) {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.Compression == "" {
		cfg.Compression = "none"
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	cache, err := lru.New[[32]byte, []byte](cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	c, err := compression.Get(cfg.Compression)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:         db,
		cache:      cache,
		compressor: c,
		logger:     cfg.Logger,
	}, nil
}

func stateKey(key [32]byte) []byte {
	out := make([]byte, 0, 1+len(key))
	out = append(out, stateKeyPrefix)
	return append(out, key[:]...)
}

func (s *Store) Read(k keylet.Keylet) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(k.Key)
}

func (s *Store) read(key [32]byte) ([]byte, error) {
	if data, ok := s.cache.Get(key); ok {
		s.hits.Add(1)
		return append([]byte(nil), data...), nil
	}
	s.misses.Add(1)

	blob, err := s.db.Read(context.Background(), stateKey(key))
	if errors.Is(err, database.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %x: %w", key, err)
	}
	data, err := compression.Open(blob)
	if err != nil {
		return nil, fmt.Errorf("decode %x: %w", key, err)
	}
	s.cache.Add(key, data)
	return append([]byte(nil), data...), nil
}

func (s *Store) Exists(k keylet.Keylet) (bool, error) {
	data, err := s.Read(k)
	return data != nil, err
}

func (s *Store) Insert(k keylet.Keylet, data []byte) error {
	return s.ApplyChanges([]tx.Change{{Action: tx.ActionInsert, Key: k.Key, Data: data}})
}

func (s *Store) Update(k keylet.Keylet, data []byte) error {
	return s.ApplyChanges([]tx.Change{{Action: tx.ActionModify, Key: k.Key, Data: data}})
}

func (s *Store) Erase(k keylet.Keylet) error {
	return s.ApplyChanges([]tx.Change{{Action: tx.ActionErase, Key: k.Key}})
}

// ApplyChanges writes all changes in one database batch.
func (s *Store) ApplyChanges(changes []tx.Change) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ops := make([]database.BatchOperation, 0, len(changes))
	for _, c := range changes {
		current, err := s.read(c.Key)
		if err != nil {
			return err
		}
		if err := checkChange(c, current != nil); err != nil {
			return err
		}
		if c.Action == tx.ActionErase {
			ops = append(ops, database.Del(stateKey(c.Key)))
			continue
		}
		blob, err := compression.Seal(s.compressor, c.Data)
		if err != nil {
			return fmt.Errorf("encode %x: %w", c.Key, err)
		}
		ops = append(ops, database.Put(stateKey(c.Key), blob))
	}

	if err := s.db.Batch(context.Background(), ops); err != nil {
		// The cache may hold entries read above; they still match the db.
		return fmt.Errorf("commit %d changes: %w", len(changes), err)
	}

	for _, c := range changes {
		if c.Action == tx.ActionErase {
			s.cache.Remove(c.Key)
		} else {
			s.cache.Add(c.Key, append([]byte(nil), c.Data...))
		}
	}
	s.logger.Debug("ledger changes committed", zap.Int("changes", len(changes)))
	return nil
}

// ForEach visits stored entries in ascending key order.
func (s *Store) ForEach(fn func(key [32]byte, data []byte) bool) error {
	it, err := s.db.Iterator(context.Background(), []byte{stateKeyPrefix}, []byte{stateKeyPrefix + 1})
	if err != nil {
		return err
	}
	defer it.Close()

	for it.Next() {
		raw := it.Key()
		if len(raw) != 33 {
			continue
		}
		var key [32]byte
		copy(key[:], raw[1:])
		data, err := compression.Open(it.Value())
		if err != nil {
			return fmt.Errorf("decode %x: %w", key, err)
		}
		if !fn(key, data) {
			break
		}
	}
	return it.Error()
}

// CacheStats returns cache hits and misses since the store was created.
func (s *Store) CacheStats() (hits, misses uint64) {
	return s.hits.Load(), s.misses.Load()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
