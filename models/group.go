// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"slices"
	"time"
)

// Group is a named set of devices on a site (the tag UI groups devices by
// dragging them onto a group).
type Group struct {
	ID        string   `json:"id"`
	SiteID    string   `json:"site_id"`
	Name      string   `json:"name"`
	Color     string   `json:"color,omitempty"`
	DeviceIDs []string `json:"device_ids,omitempty"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// EntityID implements [Entity].
func (g Group) EntityID() string { return g.ID }

// WithID implements [Record].
func (g Group) WithID(id string) Group {
	g.ID = id
	return g
}

// GroupPatch is a partial update of a [Group].
type GroupPatch struct {
	Name      *string   `json:"name,omitempty"`
	Color     *string   `json:"color,omitempty"`
	DeviceIDs *[]string `json:"device_ids,omitempty"`
}

// ApplyTo implements [Patch].
func (p GroupPatch) ApplyTo(g Group) Group {
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.Color != nil {
		g.Color = *p.Color
	}
	if p.DeviceIDs != nil {
		g.DeviceIDs = slices.Clone(*p.DeviceIDs)
	}
	return g
}
