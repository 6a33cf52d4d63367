// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Site is the top-level scope: every device, person and group belongs to
// exactly one site.
type Site struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`

	// FloorPlanKey is the blob store key of the site floor plan image,
	// empty when no plan was uploaded.
	FloorPlanKey string `json:"floor_plan_key,omitempty"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// EntityID implements [Entity].
func (s Site) EntityID() string { return s.ID }

// SiteDescriptor is the payload of an idempotent "ensure site exists"
// upsert. ID is the logical id the caller wants the site to have.
type SiteDescriptor struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}
