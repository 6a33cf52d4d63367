// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/facility-ops/internal/logger"
	"github.com/MKhiriev/facility-ops/models"
)

// vectorsKey is the logical key of the vectors extracted from a site plan.
const vectorsKey = "floorplan-vectors"

// BlobStore stores opaque payloads. Implemented by store.TieredBlobStore.
type BlobStore interface {
	Store(ctx context.Context, scopeID string, payload []byte, filename, mimeType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	DeleteScope(ctx context.Context, scopeID string) error
}

// VectorRepository persists extracted vectors. Implemented by
// store.VectorStore.
type VectorRepository interface {
	Save(ctx context.Context, scopeID, logicalKey string, data models.VectorData) error
	Load(ctx context.Context, scopeID, logicalKey string) (models.VectorData, bool, error)
}

// FloorPlanService keeps site floor plans and their vectors on the client.
// Payloads bypass the entity caches.
type FloorPlanService struct {
	blobs   BlobStore
	vectors VectorRepository
	logger  *logger.Logger
}

func NewFloorPlanService(blobs BlobStore, vectors VectorRepository, log *logger.Logger) *FloorPlanService {
	if log == nil {
		log = logger.Nop()
	}
	return &FloorPlanService{blobs: blobs, vectors: vectors, logger: log}
}

// Upload stores the plan image of siteID and returns the key to put into
// [models.Site.FloorPlanKey].
func (s *FloorPlanService) Upload(ctx context.Context, siteID string, image []byte, filename, mimeType string) (string, error) {
	key, err := s.blobs.Store(ctx, siteID, image, filename, mimeType)
	if err != nil {
		return "", fmt.Errorf("upload floor plan of %s: %w", siteID, err)
	}

	logger.Ctx(ctx, s.logger).Info().
		Str("func", "FloorPlanService.Upload").
		Str("site_id", siteID).
		Str("key", key).
		Int("size", len(image)).
		Msg("floor plan stored")
	return key, nil
}

// Image returns the plan image stored under key, or nil when there is none.
func (s *FloorPlanService) Image(ctx context.Context, key string) ([]byte, error) {
	return s.blobs.Get(ctx, key)
}

func (s *FloorPlanService) SaveVectors(ctx context.Context, siteID string, data models.VectorData) error {
	return s.vectors.Save(ctx, siteID, vectorsKey, data)
}

// Vectors returns the vectors of siteID. ok is false when none were saved.
func (s *FloorPlanService) Vectors(ctx context.Context, siteID string) (models.VectorData, bool, error) {
	return s.vectors.Load(ctx, siteID, vectorsKey)
}

// Delete removes the plan image and vectors of siteID.
func (s *FloorPlanService) Delete(ctx context.Context, siteID string) error {
	return s.blobs.DeleteScope(ctx, siteID)
}
