// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/MKhiriev/facility-ops/internal/logger"
	"github.com/MKhiriev/facility-ops/internal/utils"
	"github.com/MKhiriev/facility-ops/models"
)

// TieredBlobStore stores payloads in the small tier when they are smaller
// than the threshold and in the large tier otherwise, keeping a reference in
// the small tier. Readers never see which tier holds a payload.
type TieredBlobStore struct {
	small SmallTier
	large LargeStore

	namespace string
	threshold int64

	ids *utils.UUIDGenerator
	now func() time.Time

	logger *logger.Logger
}

// NewTieredBlobStore wires the two tiers. Keys are "<namespace>_<scopeId>".
func NewTieredBlobStore(small SmallTier, large LargeStore, namespace string, threshold int64, log *logger.Logger) *TieredBlobStore {
	if log == nil {
		log = logger.Nop()
	}

	return &TieredBlobStore{
		small:     small,
		large:     large,
		namespace: namespace,
		threshold: threshold,
		ids:       utils.NewUUIDGenerator(),
		now:       time.Now,
		logger:    log,
	}
}

// Key returns the small-tier key of scopeID.
func (s *TieredBlobStore) Key(scopeID string) string {
	return s.namespace + "_" + scopeID
}

// Store saves payload for scopeID and returns the key to read it back with.
// Payloads of at least the threshold go to the large tier. A failed small
// tier write falls back to the large tier once; when that fails too
// [ErrStorageFatal] is returned. A large-tier record the key referenced
// before is deleted once the new value is in place.
func (s *TieredBlobStore) Store(ctx context.Context, scopeID string, payload []byte, filename, mimeType string) (string, error) {
	log := logger.Ctx(ctx, s.logger)
	key := s.Key(scopeID)
	prev := s.previous(ctx, key)

	if int64(len(payload)) < s.threshold {
		err := s.small.Set(ctx, key, models.InlineRef(payload).Encode())
		if err == nil {
			s.reclaim(ctx, key, prev, "")
			return key, nil
		}

		log.Warn().Err(err).
			Str("func", "TieredBlobStore.Store").
			Str("key", key).
			Bool("quota", errors.Is(err, ErrStorageQuota)).
			Int("size", len(payload)).
			Msg("small tier write failed, forcing large tier")
	}

	id, err := s.storeLarge(ctx, key, scopeID, payload, filename, mimeType)
	if err != nil {
		return "", err
	}
	s.reclaim(ctx, key, prev, id)
	return key, nil
}

// previous returns the large-tier id key references, or "" when it holds
// none or cannot be read.
func (s *TieredBlobStore) previous(ctx context.Context, key string) string {
	ref, err := s.Resolve(ctx, key)
	if err != nil {
		logger.Ctx(ctx, s.logger).Warn().Err(err).
			Str("func", "TieredBlobStore.previous").
			Str("key", key).
			Msg("failed to read previous value")
		return ""
	}
	if ref.Kind != models.BlobRefReference {
		return ""
	}
	return ref.RefID
}

// reclaim deletes the record prevID once key points elsewhere. A failure
// leaves an orphan record and is only logged.
func (s *TieredBlobStore) reclaim(ctx context.Context, key, prevID, currentID string) {
	if prevID == "" || prevID == currentID {
		return
	}

	log := logger.Ctx(ctx, s.logger)
	if err := s.large.DeleteBlob(ctx, prevID); err != nil {
		log.Warn().Err(err).
			Str("func", "TieredBlobStore.reclaim").
			Str("key", key).
			Str("blob_id", prevID).
			Msg("failed to delete replaced blob")
		return
	}

	log.Debug().Str("func", "TieredBlobStore.reclaim").Str("key", key).Str("blob_id", prevID).Msg("replaced blob deleted")
}

func (s *TieredBlobStore) storeLarge(ctx context.Context, key, scopeID string, payload []byte, filename, mimeType string) (string, error) {
	log := logger.Ctx(ctx, s.logger)

	now := s.now().UTC()
	rec := models.BlobRecord{
		ID:         fmt.Sprintf("%s-%d-%s", scopeID, now.UnixMilli(), s.ids.Short()),
		ScopeID:    scopeID,
		Payload:    payload,
		MimeType:   mimeType,
		Filename:   filename,
		UploadedAt: now,
		Size:       int64(len(payload)),
		Checksum:   checksum(payload),
	}

	if err := s.large.PutBlob(ctx, rec); err != nil {
		log.Err(err).Str("func", "TieredBlobStore.storeLarge").Str("key", key).Msg("large tier write failed")
		return "", fmt.Errorf("%w: %w", ErrStorageFatal, err)
	}

	if err := s.small.Set(ctx, key, models.ReferenceRef(rec.ID).Encode()); err != nil {
		log.Err(err).Str("func", "TieredBlobStore.storeLarge").Str("key", key).Str("blob_id", rec.ID).Msg("failed to store blob reference")
		if delErr := s.large.DeleteBlob(ctx, rec.ID); delErr != nil {
			log.Warn().Err(delErr).Str("func", "TieredBlobStore.storeLarge").Str("blob_id", rec.ID).Msg("failed to delete unreferenced blob")
		}
		return "", fmt.Errorf("%w: reference: %w", ErrStorageFatal, err)
	}

	log.Debug().Str("func", "TieredBlobStore.storeLarge").
		Str("key", key).
		Str("blob_id", rec.ID).
		Int64("size", rec.Size).
		Msg("payload stored in large tier")
	return rec.ID, nil
}

// Resolve returns the decoded small-tier value of key. A missing key yields
// a [models.BlobRefNone] ref. Values in neither encoding are returned as
// inline payloads.
func (s *TieredBlobStore) Resolve(ctx context.Context, key string) (models.BlobRef, error) {
	raw, ok, err := s.small.Get(ctx, key)
	if err != nil {
		return models.BlobRef{}, err
	}
	if !ok {
		return models.BlobRef{}, nil
	}

	ref, ok := models.DecodeBlobRef(raw)
	if !ok {
		return models.InlineRef(raw), nil
	}
	return ref, nil
}

// Get returns the payload stored under key, or nil when nothing is stored.
// References are dereferenced and their checksum verified.
func (s *TieredBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	ref, err := s.Resolve(ctx, key)
	if err != nil {
		return nil, err
	}

	switch ref.Kind {
	case models.BlobRefInline:
		return ref.Inline, nil
	case models.BlobRefReference:
		rec, err := s.Record(ctx, ref.RefID)
		if err != nil {
			return nil, err
		}
		return rec.Payload, nil
	default:
		return nil, nil
	}
}

// Record returns the large-tier record id with its checksum verified.
func (s *TieredBlobStore) Record(ctx context.Context, id string) (models.BlobRecord, error) {
	rec, err := s.large.GetBlob(ctx, id)
	if err != nil {
		return models.BlobRecord{}, err
	}

	if rec.Checksum != "" && rec.Checksum != checksum(rec.Payload) {
		logger.Ctx(ctx, s.logger).Error().
			Str("func", "TieredBlobStore.Record").
			Str("blob_id", id).
			Msg("blob checksum mismatch")
		return models.BlobRecord{}, fmt.Errorf("%w: %s", ErrChecksumMismatch, id)
	}

	return rec, nil
}

// DeleteScope removes the small-tier key and every large-tier blob and
// vector record of scopeID.
func (s *TieredBlobStore) DeleteScope(ctx context.Context, scopeID string) error {
	var errs []error

	if err := s.small.Delete(ctx, s.Key(scopeID)); err != nil {
		errs = append(errs, err)
	}

	blobs, err := s.large.DeleteBlobsByScope(ctx, scopeID)
	if err != nil {
		errs = append(errs, err)
	}

	vectors, err := s.large.DeleteVectorsByScope(ctx, scopeID)
	if err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		joined := errors.Join(errs...)
		logger.Ctx(ctx, s.logger).Err(joined).Str("func", "TieredBlobStore.DeleteScope").Str("scope_id", scopeID).Msg("scope cleanup incomplete")
		return fmt.Errorf("delete scope %s: %w", scopeID, joined)
	}

	logger.Ctx(ctx, s.logger).Debug().
		Str("func", "TieredBlobStore.DeleteScope").
		Str("scope_id", scopeID).
		Int64("blobs", blobs).
		Int64("vectors", vectors).
		Msg("scope deleted")
	return nil
}

func checksum(payload []byte) string {
	sum := blake2b.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
