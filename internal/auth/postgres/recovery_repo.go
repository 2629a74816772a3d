// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/uteqlabs/authcore/internal/auth"
)

// RecoveryRequestRepository implements auth.RecoveryRequestRepository
// using PostgreSQL.
type RecoveryRequestRepository struct {
	db DBTX
}

// NewRecoveryRequestRepository creates a new RecoveryRequestRepository.
func NewRecoveryRequestRepository(db DBTX) *RecoveryRequestRepository {
	return &RecoveryRequestRepository{db: db}
}

// Create stores a new recovery request. A partial unique index allows at
// most one unused request per user; a violation means another request won
// the race and maps to the active-code conflict.
func (r *RecoveryRequestRepository) Create(ctx context.Context, req *auth.RecoveryRequest) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO pl_request_recv_pass (id, user_id, generated_code, created_at, expires_at, used)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, req.ID, req.UserID, req.GeneratedCode, req.CreatedAt, req.ExpiresAt, req.Used)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return auth.Failure(auth.KindConflict, auth.CodeActiveCodeExists, "an unexpired recovery code already exists")
		}
		return oops.Code("RECOVERY_CREATE_FAILED").
			With("operation", "insert pl_request_recv_pass").
			With("request_id", req.ID.String()).
			Wrap(err)
	}
	return nil
}

// RetireExpired marks the user's expired, unused requests as used. Run
// before Create so the partial unique index only ever guards a live
// request.
func (r *RecoveryRequestRepository) RetireExpired(ctx context.Context, userID uuid.UUID, now time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE pl_request_recv_pass SET used = TRUE
		WHERE user_id = $1 AND NOT used AND expires_at <= $2
	`, userID, now)
	if err != nil {
		return oops.Code("RECOVERY_RETIRE_FAILED").
			With("operation", "update pl_request_recv_pass").
			With("user_id", userID.String()).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a request by ID.
func (r *RecoveryRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.RecoveryRequest, error) {
	row := r.db.QueryRow(ctx, requestSelect+` WHERE id = $1`, id)
	req, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("RECOVERY_NOT_FOUND").
			With("request_id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	return req, err
}

// ActiveForUser retrieves the unused, unexpired request for a user. The
// row is locked so concurrent recovery attempts serialize on it.
func (r *RecoveryRequestRepository) ActiveForUser(ctx context.Context, userID uuid.UUID, now time.Time) (*auth.RecoveryRequest, error) {
	row := r.db.QueryRow(ctx, requestSelect+`
		WHERE user_id = $1 AND NOT used AND expires_at > $2
		ORDER BY created_at DESC
		LIMIT 1
		FOR UPDATE
	`, userID, now)
	req, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("RECOVERY_NOT_FOUND").
			With("user_id", userID.String()).
			Wrap(auth.ErrNotFound)
	}
	return req, err
}

// MarkUsed flags a request as consumed.
func (r *RecoveryRequestRepository) MarkUsed(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `
		UPDATE pl_request_recv_pass SET used = TRUE WHERE id = $1
	`, id)
	if err != nil {
		return oops.Code("RECOVERY_MARK_USED_FAILED").
			With("operation", "update pl_request_recv_pass").
			With("request_id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("RECOVERY_NOT_FOUND").
			With("request_id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

const requestSelect = `
	SELECT id, user_id, generated_code, created_at, expires_at, used
	FROM pl_request_recv_pass`

// scanRequest scans a single row into a RecoveryRequest.
// Callers are responsible for handling pgx.ErrNoRows.
func scanRequest(row pgx.Row) (*auth.RecoveryRequest, error) {
	var req auth.RecoveryRequest
	err := row.Scan(&req.ID, &req.UserID, &req.GeneratedCode, &req.CreatedAt, &req.ExpiresAt, &req.Used)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, oops.Code("RECOVERY_SCAN_FAILED").
			With("operation", "scan pl_request_recv_pass").
			Wrap(err)
	}
	return &req, nil
}

// Compile-time interface check.
var _ auth.RecoveryRequestRepository = (*RecoveryRequestRepository)(nil)
