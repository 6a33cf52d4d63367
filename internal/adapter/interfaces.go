// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating
// with the facility-ops remote API.
//
// Every entity collection is reached through a [Collection]; the idempotent
// site upsert through [SiteAdapter]. [NewHTTPServerAdapter] returns the
// HTTP/REST implementation of all of them bundled as a [ServerAdapter].
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrValidationFailure] for 400 and 422).
package adapter

import (
	"context"

	"github.com/MKhiriev/facility-ops/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// Collection is the remote CRUD contract of one entity type.
type Collection[T models.Record[T], P models.Patch[T]] interface {
	// List returns every entity of the scope (site id).
	List(ctx context.Context, scope string) ([]T, error)

	// Create persists item and returns the server copy with the
	// server-assigned id.
	Create(ctx context.Context, item T) (T, error)

	// Update applies patch to the entity id and returns the canonical
	// server value.
	Update(ctx context.Context, id string, patch P) (T, error)

	// Delete removes the entity id and returns its last server value.
	Delete(ctx context.Context, id string) (T, error)

	// DeleteMany removes all of ids in a single call.
	DeleteMany(ctx context.Context, ids []string) error
}

// DeviceCollection is the remote collection of devices.
type DeviceCollection interface {
	Collection[models.Device, models.DevicePatch]
}

// PersonCollection is the remote collection of people.
type PersonCollection interface {
	Collection[models.Person, models.PersonPatch]
}

// GroupCollection is the remote collection of groups.
type GroupCollection interface {
	Collection[models.Group, models.GroupPatch]
}

// SiteAdapter exposes the idempotent create-if-missing site upsert.
type SiteAdapter interface {
	// EnsureSite creates the site described by desc unless a site with
	// desc.ID already exists, and returns the server copy in both cases.
	EnsureSite(ctx context.Context, desc models.SiteDescriptor) (models.Site, error)
}
