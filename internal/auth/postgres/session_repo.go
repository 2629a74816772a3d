// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/samber/oops"

	"github.com/uteqlabs/authcore/internal/auth"
)

// SessionRepository implements auth.SessionRepository using PostgreSQL.
type SessionRepository struct {
	db DBTX
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create stores a new session record.
func (r *SessionRepository) Create(ctx context.Context, session *auth.SessionRecord) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO pl_session_user (id, user_id, started_at, ended_at, closed)
		VALUES ($1, $2, $3, $4, $5)
	`, session.ID, session.UserID, session.StartedAt, session.EndedAt, session.Closed)
	if err != nil {
		return oops.Code("SESSION_CREATE_FAILED").
			With("operation", "insert pl_session_user").
			With("session_id", session.ID.String()).
			Wrap(err)
	}
	return nil
}

// Close marks a session closed with an end timestamp.
func (r *SessionRepository) Close(ctx context.Context, id uuid.UUID, endedAt time.Time) error {
	result, err := r.db.Exec(ctx, `
		UPDATE pl_session_user SET closed = TRUE, ended_at = $2 WHERE id = $1
	`, id, endedAt)
	if err != nil {
		return oops.Code("SESSION_CLOSE_FAILED").
			With("operation", "update pl_session_user").
			With("session_id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("SESSION_NOT_FOUND").
			With("session_id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// Compile-time interface check.
var _ auth.SessionRepository = (*SessionRepository)(nil)
