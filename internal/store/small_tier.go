// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/MKhiriev/facility-ops/internal/config"
	"github.com/MKhiriev/facility-ops/internal/logger"
)

// BadgerSmallTier is a [SmallTier] on top of badger. The quota counts key
// and value bytes of every live entry.
type BadgerSmallTier struct {
	db    *badger.DB
	quota int64

	// mu serialises writes so that the quota check and the write are atomic.
	mu     sync.Mutex
	used   int64
	closed bool

	logger *logger.Logger
}

// NewBadgerSmallTier opens the small tier in cfg.Dir, or in memory when
// cfg.Dir is empty. A non-positive cfg.QuotaBytes disables the quota.
func NewBadgerSmallTier(cfg config.SmallTier, log *logger.Logger) (*BadgerSmallTier, error) {
	if log == nil {
		log = logger.Nop()
	}

	opts := badger.DefaultOptions(cfg.Dir).WithLogger(nil)
	if cfg.Dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		log.Err(err).Str("func", "NewBadgerSmallTier").Str("dir", cfg.Dir).Msg("failed to open badger")
		return nil, fmt.Errorf("failed to open small tier: %w", err)
	}

	s := &BadgerSmallTier{db: db, quota: cfg.QuotaBytes, logger: log}
	if s.used, err = s.measure(); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Debug().Str("func", "NewBadgerSmallTier").
		Bool("in_memory", cfg.Dir == "").
		Int64("used_bytes", s.used).
		Int64("quota_bytes", s.quota).
		Msg("small tier opened")

	return s, nil
}

func (s *BadgerSmallTier) measure() (int64, error) {
	var used int64
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			used += int64(len(item.Key())) + item.ValueSize()
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to measure small tier: %w", err)
	}
	return used, nil
}

// Get implements [SmallTier].
func (s *BadgerSmallTier) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.isClosed() {
		return nil, false, ErrStorageClosed
	}

	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		logger.Ctx(ctx, s.logger).Err(err).Str("func", "BadgerSmallTier.Get").Str("key", key).Msg("failed to read small tier")
		return nil, false, fmt.Errorf("small tier get %q: %w", key, err)
	}

	return value, true, nil
}

// Set implements [SmallTier].
func (s *BadgerSmallTier) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	entry := int64(len(key) + len(value))
	var delta int64
	err := s.db.Update(func(txn *badger.Txn) error {
		var previous int64
		item, err := txn.Get([]byte(key))
		switch {
		case err == nil:
			previous = int64(len(key)) + item.ValueSize()
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}

		delta = entry - previous
		if s.quota > 0 && s.used+delta > s.quota {
			return fmt.Errorf("%w: need %d bytes, %d of %d used", ErrStorageQuota, entry, s.used, s.quota)
		}

		return txn.Set([]byte(key), value)
	})
	if errors.Is(err, badger.ErrTxnTooBig) {
		err = fmt.Errorf("%w: %w", ErrStorageQuota, err)
	}
	if err != nil {
		logger.Ctx(ctx, s.logger).Err(err).Str("func", "BadgerSmallTier.Set").Str("key", key).Int("size", len(value)).Msg("failed to write small tier")
		return fmt.Errorf("small tier set %q: %w", key, err)
	}

	s.used += delta
	return nil
}

// Delete implements [SmallTier].
func (s *BadgerSmallTier) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	var freed int64
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		freed = int64(len(key)) + item.ValueSize()
		return txn.Delete([]byte(key))
	})
	if err != nil {
		logger.Ctx(ctx, s.logger).Err(err).Str("func", "BadgerSmallTier.Delete").Str("key", key).Msg("failed to delete from small tier")
		return fmt.Errorf("small tier delete %q: %w", key, err)
	}

	s.used -= freed
	return nil
}

// Keys implements [SmallTier].
func (s *BadgerSmallTier) Keys(ctx context.Context, prefix string) ([]string, error) {
	if s.isClosed() {
		return nil, ErrStorageClosed
	}

	keys := make([]string, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("small tier keys %q: %w", prefix, err)
	}

	return keys, nil
}

// Used returns the bytes currently counted against the quota.
func (s *BadgerSmallTier) Used() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.used
}

// Close implements [SmallTier]. Closing twice is a no-op.
func (s *BadgerSmallTier) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *BadgerSmallTier) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
