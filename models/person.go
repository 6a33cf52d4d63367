// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"slices"
	"time"
)

// Person is a site operator or contact who can be attached to groups.
type Person struct {
	ID       string   `json:"id"`
	SiteID   string   `json:"site_id"`
	Name     string   `json:"name"`
	Email    string   `json:"email,omitempty"`
	Role     string   `json:"role,omitempty"`
	GroupIDs []string `json:"group_ids,omitempty"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// EntityID implements [Entity].
func (p Person) EntityID() string { return p.ID }

// WithID implements [Record].
func (p Person) WithID(id string) Person {
	p.ID = id
	return p
}

// PersonPatch is a partial update of a [Person].
type PersonPatch struct {
	Name     *string   `json:"name,omitempty"`
	Email    *string   `json:"email,omitempty"`
	Role     *string   `json:"role,omitempty"`
	GroupIDs *[]string `json:"group_ids,omitempty"`
}

// ApplyTo implements [Patch].
func (p PersonPatch) ApplyTo(person Person) Person {
	if p.Name != nil {
		person.Name = *p.Name
	}
	if p.Email != nil {
		person.Email = *p.Email
	}
	if p.Role != nil {
		person.Role = *p.Role
	}
	if p.GroupIDs != nil {
		person.GroupIDs = slices.Clone(*p.GroupIDs)
	}
	return person
}
