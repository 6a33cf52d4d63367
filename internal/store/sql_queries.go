// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/facility-ops/models"
)

const (
	tableBlobs   = "blobs"
	tableVectors = "vector_data"
)

var blobColumns = []string{
	"id",
	"scope_id",
	"payload",
	"mime_type",
	"filename",
	"uploaded_at",
	"size",
	"checksum",
}

// sqlb builds sqlite statements with "?" placeholders.
var sqlb = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func buildVerifySchemaQuery(tables []string) (string, []any, error) {
	query, args, err := sqlb.
		Select("name").
		From("sqlite_master").
		Where(sq.Eq{"type": "table", "name": tables}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildInsertBlobQuery(rec models.BlobRecord) (string, []any, error) {
	query, args, err := sqlb.
		Insert(tableBlobs).
		Columns(blobColumns...).
		Values(
			rec.ID,
			rec.ScopeID,
			rec.Payload,
			rec.MimeType,
			rec.Filename,
			rec.UploadedAt.UnixMilli(),
			rec.Size,
			rec.Checksum,
		).
		Suffix("ON CONFLICT(id) DO UPDATE SET " +
			"payload = excluded.payload, mime_type = excluded.mime_type, " +
			"filename = excluded.filename, uploaded_at = excluded.uploaded_at, " +
			"size = excluded.size, checksum = excluded.checksum").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSelectBlobQuery(id string) (string, []any, error) {
	query, args, err := sqlb.
		Select(blobColumns...).
		From(tableBlobs).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteBlobQuery(id string) (string, []any, error) {
	query, args, err := sqlb.
		Delete(tableBlobs).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteByScopeQuery(table, scopeID string) (string, []any, error) {
	query, args, err := sqlb.
		Delete(table).
		Where(sq.Eq{"scope_id": scopeID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildUpsertVectorQuery(key, scopeID string, payload []byte, updatedAtMillis int64) (string, []any, error) {
	query, args, err := sqlb.
		Insert(tableVectors).
		Columns("key", "scope_id", "payload", "updated_at").
		Values(key, scopeID, payload, updatedAtMillis).
		Suffix("ON CONFLICT(key) DO UPDATE SET " +
			"scope_id = excluded.scope_id, payload = excluded.payload, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSelectVectorQuery(key string) (string, []any, error) {
	query, args, err := sqlb.
		Select("payload").
		From(tableVectors).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
