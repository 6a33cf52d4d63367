// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/facility-ops/internal/logger"
	"github.com/MKhiriev/facility-ops/models"
)

// VectorStore persists extracted floor-plan vectors in the large tier under
// "<scopeId>-<logicalKey>".
type VectorStore struct {
	large  LargeStore
	logger *logger.Logger
}

func NewVectorStore(large LargeStore, log *logger.Logger) *VectorStore {
	if log == nil {
		log = logger.Nop()
	}
	return &VectorStore{large: large, logger: log}
}

// VectorKey returns the large-tier key of a vector record.
func VectorKey(scopeID, logicalKey string) string {
	return scopeID + "-" + logicalKey
}

// Save replaces the vector data stored for scopeID and logicalKey.
func (v *VectorStore) Save(ctx context.Context, scopeID, logicalKey string, data models.VectorData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode vector data: %w", err)
	}

	key := VectorKey(scopeID, logicalKey)
	if err = v.large.PutVector(ctx, key, scopeID, payload); err != nil {
		return fmt.Errorf("save vector data %s: %w", key, err)
	}

	logger.Ctx(ctx, v.logger).Debug().
		Str("func", "VectorStore.Save").
		Str("key", key).
		Int("paths", len(data.Paths)).
		Msg("vector data saved")
	return nil
}

// Load returns the vector data of scopeID and logicalKey. ok is false when
// nothing was saved.
func (v *VectorStore) Load(ctx context.Context, scopeID, logicalKey string) (models.VectorData, bool, error) {
	key := VectorKey(scopeID, logicalKey)

	payload, err := v.large.GetVector(ctx, key)
	if errors.Is(err, ErrBlobNotFound) {
		return models.VectorData{}, false, nil
	}
	if err != nil {
		return models.VectorData{}, false, fmt.Errorf("load vector data %s: %w", key, err)
	}

	var data models.VectorData
	if err = json.Unmarshal(payload, &data); err != nil {
		logger.Ctx(ctx, v.logger).Err(err).Str("func", "VectorStore.Load").Str("key", key).Msg("corrupt vector data")
		return models.VectorData{}, false, fmt.Errorf("decode vector data %s: %w", key, err)
	}

	return data, true, nil
}
