// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the two client storage tiers and the
// [TieredBlobStore] that selects between them.
//
// The small tier ([BadgerSmallTier]) is a low-capacity key-value store with a
// byte quota. The large tier ([LargeTier]) is a sqlite database with a goose
// versioned schema that heals itself by recreation when tables are missing.
package store

import (
	"context"

	"github.com/MKhiriev/facility-ops/models"
)

// SmallTier is the low-capacity key-value tier.
type SmallTier interface {
	// Get returns the value stored under key. ok is false when the key is
	// absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores value under key. It returns [ErrStorageQuota] (wrapped)
	// when the write would exceed the tier quota.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists every key with the given prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)

	Close() error
}

// LargeStore is the record-oriented high-capacity tier.
type LargeStore interface {
	PutBlob(ctx context.Context, rec models.BlobRecord) error
	// GetBlob returns [ErrBlobNotFound] (wrapped) for an unknown id.
	GetBlob(ctx context.Context, id string) (models.BlobRecord, error)
	// DeleteBlob removes the record id. Deleting an absent id is not an error.
	DeleteBlob(ctx context.Context, id string) error
	DeleteBlobsByScope(ctx context.Context, scopeID string) (int64, error)

	PutVector(ctx context.Context, key, scopeID string, payload []byte) error
	// GetVector returns [ErrBlobNotFound] (wrapped) for an unknown key.
	GetVector(ctx context.Context, key string) ([]byte, error)
	DeleteVectorsByScope(ctx context.Context, scopeID string) (int64, error)

	Close() error
}
