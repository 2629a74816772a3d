// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uteqlabs/authcore/internal/auth"
	"github.com/uteqlabs/authcore/internal/auth/postgres"
)

func resetColumns() []string {
	return []string{"id", "user_id", "request_id", "created_at", "expires_at", "registered_at", "old_password_hash", "new_password_hash", "used"}
}

func TestResetRecordRepository_Create(t *testing.T) {
	ctx := context.Background()
	mock := newMockPool(t)
	repo := postgres.NewResetRecordRepository(mock)

	rec := auth.NewResetRecord(uuid.New(), uuid.New(), "$2a$12$oldhash", 30*time.Minute)

	mock.ExpectQuery("INSERT INTO pl_reset_pass").
		WithArgs(rec.UserID, rec.RequestID, rec.CreatedAt, rec.ExpiresAt, rec.RegisteredAt, rec.OldPasswordHash, rec.NewPasswordHash, rec.Used).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))

	require.NoError(t, repo.Create(ctx, rec))
	assert.Equal(t, int64(42), rec.ID)
}

func TestResetRecordRepository_GetUnusedByRequestID(t *testing.T) {
	ctx := context.Background()
	requestID := uuid.New()

	t.Run("returns the open record", func(t *testing.T) {
		mock := newMockPool(t)
		repo := postgres.NewResetRecordRepository(mock)

		userID := uuid.New()
		now := time.Now()
		mock.ExpectQuery("SELECT (.+) FROM pl_reset_pass").
			WithArgs(requestID).
			WillReturnRows(pgxmock.NewRows(resetColumns()).
				AddRow(int64(7), userID, requestID, now, now.Add(20*time.Minute), nil, "$2a$12$oldhash", nil, false))

		rec, err := repo.GetUnusedByRequestID(ctx, requestID)
		require.NoError(t, err)
		assert.Equal(t, int64(7), rec.ID)
		assert.Nil(t, rec.NewPasswordHash)
		assert.Nil(t, rec.RegisteredAt)
	})

	t.Run("consumed or missing record wraps ErrNotFound", func(t *testing.T) {
		mock := newMockPool(t)
		repo := postgres.NewResetRecordRepository(mock)

		mock.ExpectQuery("SELECT (.+) FROM pl_reset_pass").
			WithArgs(requestID).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetUnusedByRequestID(ctx, requestID)
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})
}

func TestResetRecordRepository_HistoryForUser(t *testing.T) {
	ctx := context.Background()
	mock := newMockPool(t)
	repo := postgres.NewResetRecordRepository(mock)

	userID := uuid.New()
	now := time.Now()
	newHash := "$2a$12$newhash"
	registeredAt := now.Add(-time.Hour)

	mock.ExpectQuery("SELECT (.+) FROM pl_reset_pass").
		WithArgs(userID, auth.HistoryWindow).
		WillReturnRows(pgxmock.NewRows(resetColumns()).
			AddRow(int64(9), userID, uuid.New(), now, now.Add(20*time.Minute), &registeredAt, "$2a$12$older", &newHash, true).
			AddRow(int64(8), userID, uuid.New(), now.Add(-48*time.Hour), now.Add(-47*time.Hour), nil, "$2a$12$oldest", nil, true))

	records, err := repo.HistoryForUser(ctx, userID, auth.HistoryWindow)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(9), records[0].ID)
	require.NotNil(t, records[0].NewPasswordHash)
	assert.Equal(t, newHash, *records[0].NewPasswordHash)
}

func TestResetRecordRepository_Consume(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("consumes the record", func(t *testing.T) {
		mock := newMockPool(t)
		repo := postgres.NewResetRecordRepository(mock)

		mock.ExpectExec("UPDATE pl_reset_pass").
			WithArgs(int64(7), "$2a$12$newhash", now).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, repo.Consume(ctx, 7, "$2a$12$newhash", now))
	})

	t.Run("already consumed wraps ErrNotFound", func(t *testing.T) {
		mock := newMockPool(t)
		repo := postgres.NewResetRecordRepository(mock)

		mock.ExpectExec("UPDATE pl_reset_pass").
			WithArgs(int64(7), "$2a$12$newhash", now).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.Consume(ctx, 7, "$2a$12$newhash", now)
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})
}
