// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/facility-ops/internal/config"
	"github.com/MKhiriev/facility-ops/internal/logger"
)

// ClientStorages groups every client-side storage into a single value that
// can be passed around the service layer.
type ClientStorages struct {
	Small   *BadgerSmallTier
	Large   *LargeTier
	Blobs   *TieredBlobStore
	Vectors *VectorStore
}

// NewClientStorages opens the small tier and prepares the large tier. The
// large tier connection is opened lazily on first use.
func NewClientStorages(cfg config.Storage, namespace string, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Msg("creating new storages...")

	small, err := NewBadgerSmallTier(cfg.Small, log)
	if err != nil {
		return nil, fmt.Errorf("small tier error: %w", err)
	}

	large := NewLargeTier(cfg.Large, log)
	large.OnRecreate(func() {
		log.Warn().Str("func", "ClientStorages.OnRecreate").Msg("large tier was recreated, stored blobs were lost")
	})

	return &ClientStorages{
		Small:   small,
		Large:   large,
		Blobs:   NewTieredBlobStore(small, large, namespace, cfg.InlineThreshold, log),
		Vectors: NewVectorStore(large, log),
	}, nil
}

// Close closes both tiers.
func (s *ClientStorages) Close() error {
	return errors.Join(s.Small.Close(), s.Large.Close())
}
