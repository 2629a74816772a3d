// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionRecord is the persisted trace of a login. Tokens remain the sole
// trust anchor; these rows exist for accounting, not authorization, and
// nothing in the core reads them back on the hot path.
type SessionRecord struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	StartedAt time.Time
	EndedAt   *time.Time
	Closed    bool
}

// NewSessionRecord creates an open session for a user.
func NewSessionRecord(userID uuid.UUID) *SessionRecord {
	return &SessionRecord{
		ID:        uuid.New(),
		UserID:    userID,
		StartedAt: time.Now(),
	}
}

// SessionRepository manages session record persistence.
type SessionRepository interface {
	// Create stores a new session record.
	Create(ctx context.Context, session *SessionRecord) error

	// Close marks a session closed with an end timestamp.
	Close(ctx context.Context, id uuid.UUID, endedAt time.Time) error
}
