// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrCoordinatorStopped    = errors.New("ensure coordinator stopped")
	ErrCoordinatorNotRunning = errors.New("ensure coordinator is not running")
	ErrCoordinatorRunning    = errors.New("ensure coordinator already started")
	ErrInvalidEnsureKey      = errors.New("invalid ensure key")

	ErrBulkMutationFailed = errors.New("bulk mutation failed")
	ErrEntityNotPersisted = errors.New("entity is not persisted yet")
	ErrUnexpectedResult   = errors.New("unexpected ensure result type")
)
