// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors of the storage tiers. Callers should use [errors.Is] to
// match against these values.
var (
	// ErrStorageQuota is returned by the small tier when a write would exceed
	// its byte quota.
	ErrStorageQuota = errors.New("small tier quota exceeded")

	// ErrSchemaMismatch is returned when the large tier is missing one of the
	// expected tables on open.
	ErrSchemaMismatch = errors.New("large tier schema mismatch")

	// ErrLargeTierUnavailable is returned when the large tier cannot be
	// opened or recreating it after a schema mismatch failed. It is not
	// retried.
	ErrLargeTierUnavailable = errors.New("large tier unavailable")

	// ErrStorageFatal is returned by [TieredBlobStore.Store] when both the
	// small tier write and the forced large tier fallback failed.
	ErrStorageFatal = errors.New("payload could not be stored in any tier")

	// ErrChecksumMismatch is returned when a large tier payload does not
	// match its stored blake2b digest.
	ErrChecksumMismatch = errors.New("blob checksum mismatch")

	// ErrBlobNotFound is returned when a large tier record does not exist.
	ErrBlobNotFound = errors.New("blob was not found")

	// ErrStorageClosed is returned by operations on a closed tier.
	ErrStorageClosed = errors.New("storage is closed")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when squirrel fails to build a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query or statement
	// against the large tier fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan row")
)
