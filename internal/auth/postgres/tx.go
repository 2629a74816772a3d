// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"

	"github.com/uteqlabs/authcore/internal/auth"
)

// TxManager runs recovery scopes inside pgx transactions.
type TxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager creates a TxManager over the pool.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// InTx begins a transaction, hands fn repositories bound to it, and
// commits on success. Any error from fn rolls the whole scope back.
func (m *TxManager) InTx(ctx context.Context, fn func(ctx context.Context, repos auth.TxRepos) error) error {
	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return oops.Code("TX_BEGIN_FAILED").With("operation", "begin transaction").Wrap(err)
	}
	defer func() {
		// No-op after a successful commit.
		_ = tx.Rollback(ctx)
	}()

	if err := fn(ctx, txRepos{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return oops.Code("TX_COMMIT_FAILED").With("operation", "commit transaction").Wrap(err)
	}
	return nil
}

// txRepos binds the repositories to one transaction.
type txRepos struct {
	tx pgx.Tx
}

func (r txRepos) Users() auth.UserRepository { return NewUserRepository(r.tx) }

func (r txRepos) RecoveryRequests() auth.RecoveryRequestRepository {
	return NewRecoveryRequestRepository(r.tx)
}

func (r txRepos) ResetRecords() auth.ResetRecordRepository { return NewResetRecordRepository(r.tx) }

// Compile-time interface checks.
var (
	_ auth.TxManager = (*TxManager)(nil)
	_ auth.TxRepos   = txRepos{}
)
