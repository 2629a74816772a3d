// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uteqlabs/authcore/internal/auth"
	"github.com/uteqlabs/authcore/internal/auth/postgres"
)

func TestSessionRepository_Create(t *testing.T) {
	ctx := context.Background()
	mock := newMockPool(t)
	repo := postgres.NewSessionRepository(mock)

	session := auth.NewSessionRecord(uuid.New())

	mock.ExpectExec("INSERT INTO pl_session_user").
		WithArgs(session.ID, session.UserID, session.StartedAt, session.EndedAt, session.Closed).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(ctx, session))
}

func TestSessionRepository_Close(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	endedAt := time.Now()

	t.Run("closes the session", func(t *testing.T) {
		mock := newMockPool(t)
		repo := postgres.NewSessionRepository(mock)

		mock.ExpectExec("UPDATE pl_session_user SET closed").
			WithArgs(id, endedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, repo.Close(ctx, id, endedAt))
	})

	t.Run("unknown session wraps ErrNotFound", func(t *testing.T) {
		mock := newMockPool(t)
		repo := postgres.NewSessionRepository(mock)

		mock.ExpectExec("UPDATE pl_session_user SET closed").
			WithArgs(id, endedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.Close(ctx, id, endedAt)
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})
}
