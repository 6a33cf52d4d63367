// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Device statuses reported by the remote API.
const (
	DeviceStatusOnline  = "online"
	DeviceStatusOffline = "offline"
	DeviceStatusFault   = "fault"
)

// Device is a piece of equipment placed on a site floor plan.
type Device struct {
	// ID is the server-assigned identifier (or a placeholder before create).
	ID string `json:"id"`

	// SiteID is the scope the device belongs to.
	SiteID string `json:"site_id"`

	// ZoneID is the zone on the floor plan the device is placed in.
	ZoneID string `json:"zone_id,omitempty"`

	// GroupID is the optional group the device is assigned to.
	GroupID string `json:"group_id,omitempty"`

	Name   string `json:"name"`
	Kind   string `json:"kind,omitempty"`
	Status string `json:"status,omitempty"`

	// X and Y are the device position on the floor plan, in plan units.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// EntityID implements [Entity].
func (d Device) EntityID() string { return d.ID }

// WithID implements [Record].
func (d Device) WithID(id string) Device {
	d.ID = id
	return d
}

// DevicePatch is a partial update of a [Device]. Nil fields are left as is
// and are omitted from the request body.
type DevicePatch struct {
	Name    *string  `json:"name,omitempty"`
	ZoneID  *string  `json:"zone_id,omitempty"`
	GroupID *string  `json:"group_id,omitempty"`
	Status  *string  `json:"status,omitempty"`
	X       *float64 `json:"x,omitempty"`
	Y       *float64 `json:"y,omitempty"`
}

// ApplyTo implements [Patch].
func (p DevicePatch) ApplyTo(d Device) Device {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.ZoneID != nil {
		d.ZoneID = *p.ZoneID
	}
	if p.GroupID != nil {
		d.GroupID = *p.GroupID
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	if p.X != nil {
		d.X = *p.X
	}
	if p.Y != nil {
		d.Y = *p.Y
	}
	return d
}

// PositionPatch builds a [DevicePatch] that only moves the device.
func PositionPatch(x, y float64) DevicePatch {
	return DevicePatch{X: &x, Y: &y}
}
