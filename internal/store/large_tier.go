// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/sync/singleflight"
	_ "modernc.org/sqlite"

	"github.com/MKhiriev/facility-ops/internal/config"
	"github.com/MKhiriev/facility-ops/internal/logger"
	"github.com/MKhiriev/facility-ops/migrations"
	"github.com/MKhiriev/facility-ops/models"
)

// sqlite companion files removed together with the database on recreation.
var sqliteSidecars = []string{"", "-wal", "-shm", "-journal"}

// LargeTier is the sqlite-backed [LargeStore].
//
// The connection is opened lazily on first use; concurrent first uses share
// one open. On open the schema is migrated and verified. When a table is
// missing, on open or during an operation, the database files are deleted,
// the database is recreated and the operation is retried exactly once.
// A failed recreation returns [ErrLargeTierUnavailable] and is not retried.
type LargeTier struct {
	driver string
	dsn    string

	group singleflight.Group
	// lifecycle serialises open and recreate bodies.
	lifecycle sync.Mutex

	mu     sync.RWMutex
	db     *sql.DB
	closed bool

	recreated  atomic.Int64
	onRecreate atomic.Pointer[func()]

	// open, migrate and remove are replaced in tests.
	open    func(ctx context.Context) (*sql.DB, error)
	migrate func(ctx context.Context, db *sql.DB) error
	remove  func() error
	now     func() time.Time

	logger *logger.Logger
}

// NewLargeTier prepares the large tier described by cfg. No connection is
// opened until the first operation.
func NewLargeTier(cfg config.LargeTier, log *logger.Logger) *LargeTier {
	if log == nil {
		log = logger.Nop()
	}

	t := &LargeTier{
		driver:  cfg.Driver,
		dsn:     cfg.DSN,
		migrate: migrations.Migrate,
		now:     time.Now,
		logger:  log,
	}
	t.open = t.openSQLite
	t.remove = t.removeFiles

	return t
}

// Recreated returns how many times the database was recreated.
func (t *LargeTier) Recreated() int64 {
	return t.recreated.Load()
}

// OnRecreate registers fn to be called after every successful recreation.
func (t *LargeTier) OnRecreate(fn func()) {
	t.onRecreate.Store(&fn)
}

func (t *LargeTier) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := createLocalDBDirIfNotExists(t.dsn); err != nil {
		return nil, err
	}

	conn, err := sql.Open(t.driver, t.dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening connection to large tier: %w", err)
	}
	// sqlite serialises writers, one connection avoids SQLITE_BUSY.
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("error connecting large tier (ping): %w", err)
	}

	return conn, nil
}

func createLocalDBDirIfNotExists(dsn string) error {
	dir := filepath.Dir(dsn)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating large tier dir: %w", err)
	}
	return nil
}

func (t *LargeTier) removeFiles() error {
	var errs []error
	for _, suffix := range sqliteSidecars {
		if err := os.Remove(t.dsn + suffix); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// conn returns the open connection, opening it on first use.
func (t *LargeTier) conn(ctx context.Context) (*sql.DB, error) {
	t.mu.RLock()
	db, closed := t.db, t.closed
	t.mu.RUnlock()
	if closed {
		return nil, ErrStorageClosed
	}
	if db != nil {
		return db, nil
	}

	v, err, _ := t.group.Do("open", func() (any, error) {
		t.lifecycle.Lock()
		defer t.lifecycle.Unlock()

		t.mu.RLock()
		current := t.db
		t.mu.RUnlock()
		if current != nil {
			return current, nil
		}

		db, err := t.openVerified(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		t.mu.Lock()
		defer t.mu.Unlock()
		if t.closed {
			_ = db.Close()
			return nil, ErrStorageClosed
		}
		t.db = db
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*sql.DB), nil
}

// openVerified opens, migrates and verifies the schema. A schema that is
// still incomplete after migration yields ErrSchemaMismatch; the connection
// is closed in every failure case.
func (t *LargeTier) openVerified(ctx context.Context) (*sql.DB, error) {
	db, err := t.open(ctx)
	if err != nil {
		t.logger.Err(err).Str("func", "LargeTier.openVerified").Str("dsn", t.dsn).Msg("failed to open large tier")
		return nil, fmt.Errorf("%w: %w", ErrLargeTierUnavailable, err)
	}

	if err = t.migrate(ctx, db); err != nil {
		_ = db.Close()
		if isMissingTable(err) {
			return nil, fmt.Errorf("%w: %w", ErrSchemaMismatch, err)
		}
		t.logger.Err(err).Str("func", "LargeTier.openVerified").Msg("failed to migrate large tier")
		return nil, fmt.Errorf("%w: %w", ErrLargeTierUnavailable, err)
	}

	if err = verifySchema(ctx, db); err != nil {
		_ = db.Close()
		t.logger.Warn().Err(err).Str("func", "LargeTier.openVerified").Msg("large tier schema verification failed")
		return nil, err
	}

	t.logger.Debug().Str("func", "LargeTier.openVerified").Str("dsn", t.dsn).Msg("large tier opened")
	return db, nil
}

func verifySchema(ctx context.Context, db *sql.DB) error {
	query, args, err := buildVerifySchemaQuery(migrations.Tables)
	if err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	found := make(map[string]bool, len(migrations.Tables))
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		found[name] = true
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var missing []string
	for _, table := range migrations.Tables {
		if !found[table] {
			missing = append(missing, table)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing tables %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}

	return nil
}

// recreate replaces stale with a fresh database. When another caller has
// already replaced stale, the current connection is returned as is.
func (t *LargeTier) recreate(ctx context.Context, stale *sql.DB) (*sql.DB, error) {
	v, err, _ := t.group.Do("recreate", func() (any, error) {
		t.lifecycle.Lock()
		defer t.lifecycle.Unlock()

		t.mu.Lock()
		current := t.db
		if t.closed {
			t.mu.Unlock()
			return nil, ErrStorageClosed
		}
		if current != nil && current != stale {
			t.mu.Unlock()
			return current, nil
		}
		t.db = nil
		t.mu.Unlock()

		if current != nil {
			_ = current.Close()
		}

		log := t.logger.With().Str("func", "LargeTier.recreate").Str("dsn", t.dsn).Logger()
		log.Warn().Msg("recreating large tier, existing records are dropped")

		if err := t.remove(); err != nil {
			log.Err(err).Msg("failed to delete large tier files")
			return nil, fmt.Errorf("%w: delete database: %w", ErrLargeTierUnavailable, err)
		}

		db, err := t.openVerified(context.WithoutCancel(ctx))
		if err != nil {
			log.Err(err).Msg("failed to recreate large tier")
			return nil, fmt.Errorf("%w: recreate: %w", ErrLargeTierUnavailable, err)
		}

		t.mu.Lock()
		t.db = db
		t.mu.Unlock()

		t.recreated.Add(1)
		if fn := t.onRecreate.Load(); fn != nil {
			(*fn)()
		}
		log.Info().Int64("recreated", t.recreated.Load()).Msg("large tier recreated")

		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*sql.DB), nil
}

// withDB runs fn on the connection with the self-healing policy applied.
func (t *LargeTier) withDB(ctx context.Context, fn func(db *sql.DB) error) error {
	db, err := t.conn(ctx)
	if errors.Is(err, ErrSchemaMismatch) {
		db, err = t.recreate(ctx, nil)
	}
	if err != nil {
		return err
	}

	err = fn(db)
	if err == nil || !isMissingTable(err) {
		return err
	}

	t.logger.Warn().Err(err).Str("func", "LargeTier.withDB").Msg("large tier table missing, recreating")
	if db, err = t.recreate(ctx, db); err != nil {
		return err
	}
	return fn(db)
}

// isMissingTable recognises the "no such table" error of both sqlite drivers.
func isMissingTable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}

// PutBlob implements [LargeStore].
func (t *LargeTier) PutBlob(ctx context.Context, rec models.BlobRecord) error {
	query, args, err := buildInsertBlobQuery(rec)
	if err != nil {
		return err
	}

	err = t.withDB(ctx, func(db *sql.DB) error {
		_, execErr := db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		logger.Ctx(ctx, t.logger).Err(err).
			Str("func", "LargeTier.PutBlob").
			Str("id", rec.ID).
			Int64("size", rec.Size).
			Msg("failed to save blob")
		return wrapExec(err)
	}

	return nil
}

// GetBlob implements [LargeStore].
func (t *LargeTier) GetBlob(ctx context.Context, id string) (models.BlobRecord, error) {
	query, args, err := buildSelectBlobQuery(id)
	if err != nil {
		return models.BlobRecord{}, err
	}

	var (
		rec        models.BlobRecord
		uploadedAt int64
	)
	err = t.withDB(ctx, func(db *sql.DB) error {
		return db.QueryRowContext(ctx, query, args...).Scan(
			&rec.ID,
			&rec.ScopeID,
			&rec.Payload,
			&rec.MimeType,
			&rec.Filename,
			&uploadedAt,
			&rec.Size,
			&rec.Checksum,
		)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.BlobRecord{}, fmt.Errorf("%w: %s", ErrBlobNotFound, id)
	}
	if err != nil {
		logger.Ctx(ctx, t.logger).Err(err).Str("func", "LargeTier.GetBlob").Str("id", id).Msg("failed to read blob")
		return models.BlobRecord{}, wrapExec(err)
	}

	rec.UploadedAt = time.UnixMilli(uploadedAt).UTC()
	return rec, nil
}

// DeleteBlob implements [LargeStore].
func (t *LargeTier) DeleteBlob(ctx context.Context, id string) error {
	query, args, err := buildDeleteBlobQuery(id)
	if err != nil {
		return err
	}

	err = t.withDB(ctx, func(db *sql.DB) error {
		_, execErr := db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		logger.Ctx(ctx, t.logger).Err(err).Str("func", "LargeTier.DeleteBlob").Str("id", id).Msg("failed to delete blob")
		return wrapExec(err)
	}

	return nil
}

// DeleteBlobsByScope implements [LargeStore].
func (t *LargeTier) DeleteBlobsByScope(ctx context.Context, scopeID string) (int64, error) {
	return t.deleteByScope(ctx, tableBlobs, scopeID)
}

// PutVector implements [LargeStore].
func (t *LargeTier) PutVector(ctx context.Context, key, scopeID string, payload []byte) error {
	query, args, err := buildUpsertVectorQuery(key, scopeID, payload, t.now().UnixMilli())
	if err != nil {
		return err
	}

	err = t.withDB(ctx, func(db *sql.DB) error {
		_, execErr := db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		logger.Ctx(ctx, t.logger).Err(err).Str("func", "LargeTier.PutVector").Str("key", key).Msg("failed to save vector data")
		return wrapExec(err)
	}

	return nil
}

// GetVector implements [LargeStore].
func (t *LargeTier) GetVector(ctx context.Context, key string) ([]byte, error) {
	query, args, err := buildSelectVectorQuery(key)
	if err != nil {
		return nil, err
	}

	var payload []byte
	err = t.withDB(ctx, func(db *sql.DB) error {
		return db.QueryRowContext(ctx, query, args...).Scan(&payload)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrBlobNotFound, key)
	}
	if err != nil {
		logger.Ctx(ctx, t.logger).Err(err).Str("func", "LargeTier.GetVector").Str("key", key).Msg("failed to read vector data")
		return nil, wrapExec(err)
	}

	return payload, nil
}

// DeleteVectorsByScope implements [LargeStore].
func (t *LargeTier) DeleteVectorsByScope(ctx context.Context, scopeID string) (int64, error) {
	return t.deleteByScope(ctx, tableVectors, scopeID)
}

func (t *LargeTier) deleteByScope(ctx context.Context, table, scopeID string) (int64, error) {
	query, args, err := buildDeleteByScopeQuery(table, scopeID)
	if err != nil {
		return 0, err
	}

	var affected int64
	err = t.withDB(ctx, func(db *sql.DB) error {
		res, execErr := db.ExecContext(ctx, query, args...)
		if execErr != nil {
			return execErr
		}
		affected, execErr = res.RowsAffected()
		return execErr
	})
	if err != nil {
		logger.Ctx(ctx, t.logger).Err(err).
			Str("func", "LargeTier.deleteByScope").
			Str("table", table).
			Str("scope_id", scopeID).
			Msg("failed to delete scope records")
		return 0, wrapExec(err)
	}

	return affected, nil
}

// Close implements [LargeStore].
func (t *LargeTier) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true
	if t.db == nil {
		return nil
	}
	return t.db.Close()
}

// wrapExec tags driver errors with ErrExecutingQuery and leaves tier
// sentinels untouched.
func wrapExec(err error) error {
	switch {
	case errors.Is(err, ErrLargeTierUnavailable),
		errors.Is(err, ErrStorageClosed),
		errors.Is(err, ErrBuildingSQLQuery):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}
