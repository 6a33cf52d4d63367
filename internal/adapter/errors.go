// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	// ErrNetworkFailure covers transport errors, 5xx and every other non-2xx
	// status without a more specific mapping.
	ErrNetworkFailure = errors.New("remote call failed")
	// ErrValidationFailure is returned when the remote rejects the payload
	// shape (400, 422).
	ErrValidationFailure = errors.New("remote rejected payload")
	// ErrNotFound is returned for 404.
	ErrNotFound = errors.New("remote entity not found")
	// ErrDecodeResponse is returned when a 2xx body cannot be decoded.
	ErrDecodeResponse = errors.New("cannot decode remote response")
)
