// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidID        = errors.New("invalid id")
	ErrInvalidSiteID    = errors.New("invalid site id")
	ErrEmptyName        = errors.New("name is required")
	ErrInvalidStatus    = errors.New("invalid device status")
	ErrInvalidPosition  = errors.New("position must be a finite number")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidColor     = errors.New("color must be a #rrggbb hex value")
	ErrNoFieldsToUpdate = errors.New("at least one field must be provided for update")
	ErrEmptyIDs         = errors.New("IDs list cannot be empty")
)
