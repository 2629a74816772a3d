// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/uteqlabs/authcore/internal/auth"
)

// ResetRecordRepository implements auth.ResetRecordRepository using
// PostgreSQL.
type ResetRecordRepository struct {
	db DBTX
}

// NewResetRecordRepository creates a new ResetRecordRepository.
func NewResetRecordRepository(db DBTX) *ResetRecordRepository {
	return &ResetRecordRepository{db: db}
}

// Create stores a new reset record and fills in its generated ID.
func (r *ResetRecordRepository) Create(ctx context.Context, rec *auth.ResetRecord) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO pl_reset_pass (user_id, request_id, created_at, expires_at, registered_at, old_password_hash, new_password_hash, used)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, rec.UserID, rec.RequestID, rec.CreatedAt, rec.ExpiresAt, rec.RegisteredAt, rec.OldPasswordHash, rec.NewPasswordHash, rec.Used).Scan(&rec.ID)
	if err != nil {
		return oops.Code("RESET_CREATE_FAILED").
			With("operation", "insert pl_reset_pass").
			With("request_id", rec.RequestID.String()).
			Wrap(err)
	}
	return nil
}

// GetUnusedByRequestID retrieves the unused record for a request ID.
// Consumed records are out of query scope.
func (r *ResetRecordRepository) GetUnusedByRequestID(ctx context.Context, requestID uuid.UUID) (*auth.ResetRecord, error) {
	row := r.db.QueryRow(ctx, resetSelect+`
		WHERE request_id = $1 AND NOT used
		FOR UPDATE
	`, requestID)
	rec, err := scanReset(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("RESET_NOT_FOUND").
			With("request_id", requestID.String()).
			Wrap(auth.ErrNotFound)
	}
	return rec, err
}

// ActiveForUser retrieves the unused, unexpired record for a user.
func (r *ResetRecordRepository) ActiveForUser(ctx context.Context, userID uuid.UUID, now time.Time) (*auth.ResetRecord, error) {
	row := r.db.QueryRow(ctx, resetSelect+`
		WHERE user_id = $1 AND NOT used AND expires_at > $2
		ORDER BY created_at DESC
		LIMIT 1
		FOR UPDATE
	`, userID, now)
	rec, err := scanReset(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("RESET_NOT_FOUND").
			With("user_id", userID.String()).
			Wrap(auth.ErrNotFound)
	}
	return rec, err
}

// HistoryForUser returns up to limit records for the user, newest first.
func (r *ResetRecordRepository) HistoryForUser(ctx context.Context, userID uuid.UUID, limit int) ([]*auth.ResetRecord, error) {
	rows, err := r.db.Query(ctx, resetSelect+`
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, oops.Code("RESET_HISTORY_FAILED").
			With("operation", "query pl_reset_pass history").
			With("user_id", userID.String()).
			Wrap(err)
	}
	defer rows.Close()

	var records []*auth.ResetRecord
	for rows.Next() {
		rec, err := scanReset(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("RESET_HISTORY_FAILED").
			With("operation", "iterate pl_reset_pass history").
			Wrap(err)
	}
	return records, nil
}

// Consume marks a record used, recording the new hash and the moment the
// new password took effect.
func (r *ResetRecordRepository) Consume(ctx context.Context, id int64, newPasswordHash string, registeredAt time.Time) error {
	result, err := r.db.Exec(ctx, `
		UPDATE pl_reset_pass
		SET used = TRUE, new_password_hash = $2, registered_at = $3
		WHERE id = $1 AND NOT used
	`, id, newPasswordHash, registeredAt)
	if err != nil {
		return oops.Code("RESET_CONSUME_FAILED").
			With("operation", "update pl_reset_pass").
			With("id", id).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("RESET_NOT_FOUND").
			With("id", id).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

const resetSelect = `
	SELECT id, user_id, request_id, created_at, expires_at, registered_at, old_password_hash, new_password_hash, used
	FROM pl_reset_pass`

// scanReset scans a single row into a ResetRecord.
// Callers are responsible for handling pgx.ErrNoRows.
func scanReset(row pgx.Row) (*auth.ResetRecord, error) {
	var rec auth.ResetRecord
	err := row.Scan(&rec.ID, &rec.UserID, &rec.RequestID, &rec.CreatedAt, &rec.ExpiresAt, &rec.RegisteredAt, &rec.OldPasswordHash, &rec.NewPasswordHash, &rec.Used)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, oops.Code("RESET_SCAN_FAILED").
			With("operation", "scan pl_reset_pass").
			Wrap(err)
	}
	return &rec, nil
}

// Compile-time interface check.
var _ auth.ResetRecordRepository = (*ResetRecordRepository)(nil)
