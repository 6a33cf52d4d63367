// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/facility-ops/internal/config"
	"github.com/MKhiriev/facility-ops/internal/logger"
	"github.com/MKhiriev/facility-ops/migrations"
	"github.com/MKhiriev/facility-ops/models"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func testLargeTierConfig(t *testing.T) config.LargeTier {
	t.Helper()
	return config.LargeTier{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "nested", "large.db"),
	}
}

func newTestLargeTier(t *testing.T) *LargeTier {
	t.Helper()
	lt := NewLargeTier(testLargeTierConfig(t), logger.Nop())
	t.Cleanup(func() { _ = lt.Close() })
	return lt
}

func testBlob(scopeID, id string, payload []byte) models.BlobRecord {
	return models.BlobRecord{
		ID:         id,
		ScopeID:    scopeID,
		Payload:    payload,
		MimeType:   "image/png",
		Filename:   "floor.png",
		UploadedAt: time.UnixMilli(1760000000000).UTC(),
		Size:       int64(len(payload)),
		Checksum:   checksum(payload),
	}
}

func dropTable(t *testing.T, lt *LargeTier, table string) {
	t.Helper()
	db, err := lt.conn(context.Background())
	require.NoError(t, err)
	_, err = db.Exec("DROP TABLE " + table)
	require.NoError(t, err)
}

// newMockLargeTier returns a tier whose connection is a sqlmock.
func newMockLargeTier(t *testing.T) (*LargeTier, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	lt := NewLargeTier(config.LargeTier{Driver: "sqlmock", DSN: "mock.db"}, logger.Nop())
	lt.open = func(ctx context.Context) (*sql.DB, error) { return db, nil }
	lt.migrate = func(ctx context.Context, db *sql.DB) error { return nil }
	lt.remove = func() error { return nil }
	return lt, mock
}

func expectVerify(mock sqlmock.Sqlmock, tables ...string) {
	rows := sqlmock.NewRows([]string{"name"})
	for _, table := range tables {
		rows.AddRow(table)
	}
	mock.ExpectQuery("FROM sqlite_master").WillReturnRows(rows)
}

// ── blobs ─────────────────────────────────────────────────────────────────────

func TestLargeTier_BlobRoundTrip(t *testing.T) {
	lt := newTestLargeTier(t)
	ctx := context.Background()
	rec := testBlob("s1", "s1-1-abc", []byte("payload bytes"))

	require.NoError(t, lt.PutBlob(ctx, rec))

	got, err := lt.GetBlob(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
	assert.Zero(t, lt.Recreated())
}

func TestLargeTier_PutBlobOverwrites(t *testing.T) {
	lt := newTestLargeTier(t)
	ctx := context.Background()

	require.NoError(t, lt.PutBlob(ctx, testBlob("s1", "id", []byte("old"))))
	require.NoError(t, lt.PutBlob(ctx, testBlob("s1", "id", []byte("new"))))

	got, err := lt.GetBlob(ctx, "id")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got.Payload)
}

func TestLargeTier_GetBlobNotFound(t *testing.T) {
	lt := newTestLargeTier(t)

	_, err := lt.GetBlob(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func TestLargeTier_DeleteBlob(t *testing.T) {
	lt := newTestLargeTier(t)
	ctx := context.Background()

	require.NoError(t, lt.PutBlob(ctx, testBlob("s1", "s1-1-a", []byte("a"))))
	require.NoError(t, lt.PutBlob(ctx, testBlob("s1", "s1-2-b", []byte("b"))))

	require.NoError(t, lt.DeleteBlob(ctx, "s1-1-a"))
	_, err := lt.GetBlob(ctx, "s1-1-a")
	assert.ErrorIs(t, err, ErrBlobNotFound)

	_, err = lt.GetBlob(ctx, "s1-2-b")
	assert.NoError(t, err)

	// повторное удаление не ошибка
	assert.NoError(t, lt.DeleteBlob(ctx, "s1-1-a"))
}

func TestLargeTier_DeleteByScope(t *testing.T) {
	lt := newTestLargeTier(t)
	ctx := context.Background()

	require.NoError(t, lt.PutBlob(ctx, testBlob("s1", "a", []byte("1"))))
	require.NoError(t, lt.PutBlob(ctx, testBlob("s1", "b", []byte("2"))))
	require.NoError(t, lt.PutBlob(ctx, testBlob("s2", "c", []byte("3"))))
	require.NoError(t, lt.PutVector(ctx, "s1-walls", "s1", []byte("{}")))

	n, err := lt.DeleteBlobsByScope(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = lt.DeleteVectorsByScope(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = lt.GetBlob(ctx, "a")
	assert.ErrorIs(t, err, ErrBlobNotFound)
	_, err = lt.GetBlob(ctx, "c")
	assert.NoError(t, err)
}

// ── vectors ───────────────────────────────────────────────────────────────────

func TestLargeTier_VectorUpsert(t *testing.T) {
	lt := newTestLargeTier(t)
	ctx := context.Background()

	_, err := lt.GetVector(ctx, "s1-walls")
	assert.ErrorIs(t, err, ErrBlobNotFound)

	require.NoError(t, lt.PutVector(ctx, "s1-walls", "s1", []byte("v1")))
	require.NoError(t, lt.PutVector(ctx, "s1-walls", "s1", []byte("v2")))

	got, err := lt.GetVector(ctx, "s1-walls")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)
}

// ── self-healing ──────────────────────────────────────────────────────────────

// TestLargeTier_RecreatesOnMissingTable drops a table under an open
// connection; the next write recreates the database and succeeds.
func TestLargeTier_RecreatesOnMissingTable(t *testing.T) {
	lt := newTestLargeTier(t)
	ctx := context.Background()

	var hooked atomic.Int32
	lt.OnRecreate(func() { hooked.Add(1) })

	require.NoError(t, lt.PutBlob(ctx, testBlob("s1", "lost", []byte("old"))))
	dropTable(t, lt, "blobs")

	require.NoError(t, lt.PutBlob(ctx, testBlob("s1", "fresh", []byte("new"))))
	assert.Equal(t, int64(1), lt.Recreated())
	assert.Equal(t, int32(1), hooked.Load())

	got, err := lt.GetBlob(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got.Payload)

	// the recreation is lossy
	_, err = lt.GetBlob(ctx, "lost")
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

// TestLargeTier_RecreatesOnOpenSchemaMismatch prepares a database file whose
// migrations are recorded as applied but whose vector table is gone.
func TestLargeTier_RecreatesOnOpenSchemaMismatch(t *testing.T) {
	cfg := testLargeTierConfig(t)
	ctx := context.Background()

	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.DSN), 0o755))
	raw, err := sql.Open(cfg.Driver, cfg.DSN)
	require.NoError(t, err)
	require.NoError(t, migrations.Migrate(ctx, raw))
	_, err = raw.Exec("DROP TABLE vector_data")
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	lt := NewLargeTier(cfg, logger.Nop())
	defer lt.Close()

	require.NoError(t, lt.PutVector(ctx, "s1-walls", "s1", []byte("data")))
	assert.Equal(t, int64(1), lt.Recreated())

	got, err := lt.GetVector(ctx, "s1-walls")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), got)
}

func TestLargeTier_RecreateFailureIsFatal(t *testing.T) {
	lt, mock := newMockLargeTier(t)
	lt.remove = func() error { return os.ErrPermission }

	expectVerify(mock, "blobs")

	err := lt.PutBlob(context.Background(), testBlob("s1", "id", []byte("x")))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLargeTierUnavailable)
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Zero(t, lt.Recreated())
}

func TestLargeTier_RecreateRetriesOnce(t *testing.T) {
	lt, _ := newMockLargeTier(t)
	missing := errors.New("no such table: blobs")

	// every open hands out a fresh connection, recreation closes the old one
	var opens atomic.Int32
	lt.open = func(ctx context.Context) (*sql.DB, error) {
		opens.Add(1)
		db, mock, err := sqlmock.New()
		if err != nil {
			return nil, err
		}
		expectVerify(mock, migrations.Tables...)
		mock.ExpectExec("INSERT INTO blobs").WillReturnError(missing)
		return db, nil
	}

	err := lt.PutBlob(context.Background(), testBlob("s1", "id", []byte("x")))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.Equal(t, int64(1), lt.Recreated())
	assert.Equal(t, int32(2), opens.Load())
}

func TestLargeTier_OpenFailure(t *testing.T) {
	lt := NewLargeTier(config.LargeTier{Driver: "no-such-driver", DSN: filepath.Join(t.TempDir(), "x.db")}, nil)

	_, err := lt.GetBlob(context.Background(), "id")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLargeTierUnavailable)
}

// TestLargeTier_ConcurrentFirstOpenCoalesces verifies that callers racing on
// a cold tier share a single open.
func TestLargeTier_ConcurrentFirstOpenCoalesces(t *testing.T) {
	lt := newTestLargeTier(t)

	var opens atomic.Int32
	open := lt.open
	lt.open = func(ctx context.Context) (*sql.DB, error) {
		opens.Add(1)
		time.Sleep(50 * time.Millisecond)
		return open(ctx)
	}

	const callers = 10
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = lt.GetVector(context.Background(), "missing")
		}()
	}
	wg.Wait()

	for _, err := range errs {
		assert.ErrorIs(t, err, ErrBlobNotFound)
	}
	assert.Equal(t, int32(1), opens.Load())
}

// ── sql failure paths ─────────────────────────────────────────────────────────

func TestLargeTier_ExecFailure(t *testing.T) {
	lt, mock := newMockLargeTier(t)

	expectVerify(mock, migrations.Tables...)
	mock.ExpectExec("INSERT INTO blobs").WillReturnError(errors.New("disk I/O error"))

	err := lt.PutBlob(context.Background(), testBlob("s1", "id", []byte("x")))
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.Zero(t, lt.Recreated())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLargeTier_VerifyQueryFailure(t *testing.T) {
	lt, mock := newMockLargeTier(t)

	mock.ExpectQuery("FROM sqlite_master").WillReturnError(errors.New("database is locked"))

	_, err := lt.DeleteBlobsByScope(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestLargeTier_Closed(t *testing.T) {
	lt := newTestLargeTier(t)
	require.NoError(t, lt.Close())
	require.NoError(t, lt.Close())

	err := lt.PutVector(context.Background(), "k", "s", nil)
	assert.ErrorIs(t, err, ErrStorageClosed)
}
