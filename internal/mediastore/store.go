// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

// Package mediastore keeps habit logos and book covers in BadgerDB.
//
// Values are stored once, keyed by the SHA-256 of their content, so the
// relational tables only carry short "media:<hex>" keys instead of
// multi-megabyte data URLs.
package mediastore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/habitline/internal/config"
	"github.com/tomtom215/habitline/internal/logging"
	"github.com/tomtom215/habitline/internal/metrics"
)

// KeyPrefix starts every media key.
const KeyPrefix = "media:"

var (
	// ErrNotFound is returned by Get for unknown keys.
	ErrNotFound = errors.New("media not found")

	// ErrEmptyValue is returned by Put for blank values.
	ErrEmptyValue = errors.New("media value cannot be empty")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("media store is closed")
)

// Store is a content-addressed blob store. It is safe for concurrent use.
type Store struct {
	db           *badger.DB
	inMemory     bool
	discardRatio float64

	mu     sync.RWMutex
	closed bool
}

// Open opens the store described by cfg, creating the directory if needed.
func Open(cfg *config.MediaConfig) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create media directory: %w", err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithLogger(newBadgerLogger())

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open media store: %w", err)
	}

	ratio := cfg.GCDiscardRatio
	if ratio <= 0 || ratio >= 1 {
		ratio = 0.5
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Msg("Media store opened")

	return &Store{db: db, inMemory: cfg.InMemory, discardRatio: ratio}, nil
}

// OpenInMemory opens a throwaway store for tests and one-off commands.
func OpenInMemory() (*Store, error) {
	return Open(&config.MediaConfig{InMemory: true, GCDiscardRatio: 0.5})
}

// KeyFor returns the key value would be stored under.
func KeyFor(value string) string {
	sum := sha256.Sum256([]byte(value))
	return KeyPrefix + hex.EncodeToString(sum[:])
}

// IsKey reports whether s has the shape of a media key.
func IsKey(s string) bool {
	digest, ok := strings.CutPrefix(s, KeyPrefix)
	if !ok || len(digest) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(digest)
	return err == nil
}

// Put stores value and returns its key. Storing the same value twice
// returns the same key and writes nothing the second time.
func (s *Store) Put(ctx context.Context, value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", ErrEmptyValue
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := s.checkOpen(); err != nil {
		return "", err
	}

	key := KeyFor(value)
	wrote := false
	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("lookup media: %w", err)
		}
		if err := txn.Set([]byte(key), []byte(value)); err != nil {
			return fmt.Errorf("set media: %w", err)
		}
		wrote = true
		return nil
	})
	if err != nil {
		return "", err
	}
	if wrote {
		metrics.RecordMediaWrite(len(value))
	}
	return key, nil
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := s.checkOpen(); err != nil {
		return "", err
	}

	var value string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get media: %w", err)
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})
	metrics.RecordMediaLookup(err == nil)
	if err != nil {
		return "", err
	}
	return value, nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(key)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete media: %w", err)
		}
		return nil
	})
}

// Len counts stored values.
func (s *Store) Len() (int, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(KeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// RunGC runs value log garbage collection until badger reports nothing left
// to rewrite. In-memory stores have no value log and return nil.
func (s *Store) RunGC() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if s.inMemory {
		metrics.RecordMediaGC("noop")
		return nil
	}

	rewrites := 0
	for {
		err := s.db.RunValueLogGC(s.discardRatio)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
			break
		}
		if err != nil {
			metrics.RecordMediaGC("error")
			return fmt.Errorf("run media GC: %w", err)
		}
		rewrites++
	}

	if rewrites > 0 {
		metrics.RecordMediaGC("rewritten")
		logging.Debug().Int("rewrites", rewrites).Msg("Media value log compacted")
	} else {
		metrics.RecordMediaGC("noop")
	}
	return nil
}

// Close flushes and closes the store. It is safe to call more than once.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close media store: %w", err)
	}
	return nil
}

func (s *Store) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}
