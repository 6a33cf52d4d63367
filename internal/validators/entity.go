// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"math"
	"net/mail"
	"regexp"
	"strings"

	"github.com/MKhiriev/facility-ops/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldID targets the entity identifier.
	FieldID = "id"

	// FieldSiteID targets the owning site of an entity.
	FieldSiteID = "site_id"

	// FieldName targets the display name.
	FieldName = "name"

	// FieldStatus targets the device status.
	FieldStatus = "status"

	// FieldPosition targets the device X and Y coordinates.
	FieldPosition = "position"

	// FieldEmail targets the person email.
	FieldEmail = "email"

	// FieldColor targets the group color.
	FieldColor = "color"

	// FieldPatchNotEmpty requires at least one field of a patch to be set.
	FieldPatchNotEmpty = "patch not empty"
)

var allowedDeviceStatuses = []string{
	models.DeviceStatusOnline,
	models.DeviceStatusOffline,
	models.DeviceStatusFault,
}

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// EntityValidator implements the Validator interface for the facility
// entities and their patches: Device, DevicePatch, Person, PersonPatch,
// Group, GroupPatch and SiteDescriptor.
//
// Both value and pointer forms are accepted.
type EntityValidator struct {
}

// NewEntityValidator constructs a new EntityValidator and returns it as the
// Validator interface.
func NewEntityValidator() Validator {
	return &EntityValidator{}
}

// Validate dispatches validation to the type-specific method based on the
// dynamic type of obj. Returns ErrUnsupportedType if obj does not match any
// known model. Optional fields restrict validation to the named subset; when
// omitted, the default set of the type is validated.
func (v *EntityValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Device:
		return v.validateDevice(ctx, value, fields...)
	case *models.Device:
		return v.validateDevice(ctx, *value, fields...)

	case models.DevicePatch:
		return v.validateDevicePatch(ctx, value, fields...)
	case *models.DevicePatch:
		return v.validateDevicePatch(ctx, *value, fields...)

	case models.Person:
		return v.validatePerson(ctx, value, fields...)
	case *models.Person:
		return v.validatePerson(ctx, *value, fields...)

	case models.PersonPatch:
		return v.validatePersonPatch(ctx, value, fields...)
	case *models.PersonPatch:
		return v.validatePersonPatch(ctx, *value, fields...)

	case models.Group:
		return v.validateGroup(ctx, value, fields...)
	case *models.Group:
		return v.validateGroup(ctx, *value, fields...)

	case models.GroupPatch:
		return v.validateGroupPatch(ctx, value, fields...)
	case *models.GroupPatch:
		return v.validateGroupPatch(ctx, *value, fields...)

	case models.SiteDescriptor:
		return v.validateSiteDescriptor(ctx, value, fields...)
	case *models.SiteDescriptor:
		return v.validateSiteDescriptor(ctx, *value, fields...)

	case []string:
		return v.validateIDs(ctx, value)

	default:
		return ErrUnsupportedType
	}
}

// validateDevice validates a device about to be created.
//
// Default validated fields: SiteID, Name, Status, Position.
func (v *EntityValidator) validateDevice(ctx context.Context, d models.Device, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSiteID, FieldName, FieldStatus, FieldPosition}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(d.ID) == "" {
				return ErrInvalidID
			}
		case FieldSiteID:
			if strings.TrimSpace(d.SiteID) == "" {
				return ErrInvalidSiteID
			}
		case FieldName:
			if strings.TrimSpace(d.Name) == "" {
				return ErrEmptyName
			}
		case FieldStatus:
			if d.Status != "" && !isValidStatus(d.Status) {
				return fmt.Errorf("%w: %q", ErrInvalidStatus, d.Status)
			}
		case FieldPosition:
			if !isFinite(d.X) || !isFinite(d.Y) {
				return ErrInvalidPosition
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateDevicePatch validates a partial device update. Only set fields are
// checked.
//
// Default validated fields: PatchNotEmpty, Name, Status, Position.
func (v *EntityValidator) validateDevicePatch(ctx context.Context, p models.DevicePatch, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPatchNotEmpty, FieldName, FieldStatus, FieldPosition}
	}

	for _, f := range fields {
		switch f {
		case FieldPatchNotEmpty:
			if p == (models.DevicePatch{}) {
				return ErrNoFieldsToUpdate
			}
		case FieldName:
			if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
				return ErrEmptyName
			}
		case FieldStatus:
			if p.Status != nil && !isValidStatus(*p.Status) {
				return fmt.Errorf("%w: %q", ErrInvalidStatus, *p.Status)
			}
		case FieldPosition:
			if (p.X != nil && !isFinite(*p.X)) || (p.Y != nil && !isFinite(*p.Y)) {
				return ErrInvalidPosition
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validatePerson validates a person about to be created.
//
// Default validated fields: SiteID, Name, Email.
func (v *EntityValidator) validatePerson(ctx context.Context, p models.Person, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSiteID, FieldName, FieldEmail}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(p.ID) == "" {
				return ErrInvalidID
			}
		case FieldSiteID:
			if strings.TrimSpace(p.SiteID) == "" {
				return ErrInvalidSiteID
			}
		case FieldName:
			if strings.TrimSpace(p.Name) == "" {
				return ErrEmptyName
			}
		case FieldEmail:
			if p.Email != "" && !isValidEmail(p.Email) {
				return fmt.Errorf("%w: %q", ErrInvalidEmail, p.Email)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validatePersonPatch validates a partial person update.
//
// Default validated fields: PatchNotEmpty, Name, Email.
func (v *EntityValidator) validatePersonPatch(ctx context.Context, p models.PersonPatch, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPatchNotEmpty, FieldName, FieldEmail}
	}

	for _, f := range fields {
		switch f {
		case FieldPatchNotEmpty:
			if p.Name == nil && p.Email == nil && p.Role == nil && p.GroupIDs == nil {
				return ErrNoFieldsToUpdate
			}
		case FieldName:
			if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
				return ErrEmptyName
			}
		case FieldEmail:
			// an empty string clears the email
			if p.Email != nil && *p.Email != "" && !isValidEmail(*p.Email) {
				return fmt.Errorf("%w: %q", ErrInvalidEmail, *p.Email)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateGroup validates a group about to be created.
//
// Default validated fields: SiteID, Name, Color.
func (v *EntityValidator) validateGroup(ctx context.Context, g models.Group, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSiteID, FieldName, FieldColor}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(g.ID) == "" {
				return ErrInvalidID
			}
		case FieldSiteID:
			if strings.TrimSpace(g.SiteID) == "" {
				return ErrInvalidSiteID
			}
		case FieldName:
			if strings.TrimSpace(g.Name) == "" {
				return ErrEmptyName
			}
		case FieldColor:
			if g.Color != "" && !colorPattern.MatchString(g.Color) {
				return fmt.Errorf("%w: %q", ErrInvalidColor, g.Color)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateGroupPatch validates a partial group update.
//
// Default validated fields: PatchNotEmpty, Name, Color.
func (v *EntityValidator) validateGroupPatch(ctx context.Context, p models.GroupPatch, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPatchNotEmpty, FieldName, FieldColor}
	}

	for _, f := range fields {
		switch f {
		case FieldPatchNotEmpty:
			if p.Name == nil && p.Color == nil && p.DeviceIDs == nil {
				return ErrNoFieldsToUpdate
			}
		case FieldName:
			if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
				return ErrEmptyName
			}
		case FieldColor:
			if p.Color != nil && *p.Color != "" && !colorPattern.MatchString(*p.Color) {
				return fmt.Errorf("%w: %q", ErrInvalidColor, *p.Color)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateSiteDescriptor validates the payload of an ensure-site upsert.
//
// Default validated fields: ID, Name.
func (v *EntityValidator) validateSiteDescriptor(ctx context.Context, s models.SiteDescriptor, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldName}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(s.ID) == "" {
				return ErrInvalidID
			}
		case FieldName:
			if strings.TrimSpace(s.Name) == "" {
				return ErrEmptyName
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateIDs validates the id list of a bulk operation.
func (v *EntityValidator) validateIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return ErrEmptyIDs
	}
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return ErrInvalidID
		}
	}
	return nil
}

func isValidStatus(status string) bool {
	for _, s := range allowedDeviceStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// isValidEmail accepts a bare address only, "Ann <ann@x.io>" is rejected.
func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
