// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"

	"github.com/google/uuid"
)

// placeholderPrefix marks ids assigned on the client before the first
// successful create. The server never issues ids with this prefix.
const placeholderPrefix = "tmp-"

// Entity is implemented by every record mirrored from the remote API.
type Entity interface {
	// EntityID returns the server-assigned id, or a placeholder id for
	// records that have not been persisted yet.
	EntityID() string
}

// Record is an [Entity] that can produce a copy of itself carrying a
// different id. It is used to swap a placeholder id for the server id.
type Record[T any] interface {
	Entity
	WithID(id string) T
}

// Patch is a partial update of T. Only non-nil fields of the concrete
// patch type are applied.
type Patch[T any] interface {
	ApplyTo(item T) T
}

// NewPlaceholderID returns a fresh client-side id for a record that has not
// been created on the server yet.
func NewPlaceholderID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return placeholderPrefix + uuid.NewString()
	}

	return placeholderPrefix + v7.String()
}

// IsPlaceholderID reports whether id was produced by [NewPlaceholderID].
func IsPlaceholderID(id string) bool {
	return strings.HasPrefix(id, placeholderPrefix)
}
