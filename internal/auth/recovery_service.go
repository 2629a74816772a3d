// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RecoveryConfig carries the lifetimes of the two recovery artifacts.
type RecoveryConfig struct {
	RequestTTL time.Duration
	ResetTTL   time.Duration
}

// RecoveryStart is the outcome of a successful recovery request. The code
// travels back to the caller as well as out through the notifier; the
// transport layer decides how much of it to expose.
type RecoveryStart struct {
	RequestID uuid.UUID
	Code      string
	ExpiresAt time.Time
}

// RecoveryVerified is the outcome of a successful code verification. The
// reset window it opens is bounded by ResetExpiresAt.
type RecoveryVerified struct {
	RequestID      uuid.UUID
	ResetExpiresAt time.Time
}

// RecoveryFlow drives the three-stage credential recovery state machine:
// request a code, verify it, reset the password. Each stage runs its
// check-then-write sequence inside one store transaction so concurrent
// attempts cannot interleave into duplicate active requests or double
// resets.
type RecoveryFlow struct {
	txm      TxManager
	verifier *Verifier
	guard    *HistoryGuard
	events   Events
	logger   *slog.Logger
	cfg      RecoveryConfig
}

// NewRecoveryFlow creates a RecoveryFlow. Zero TTLs fall back to the
// defaults.
func NewRecoveryFlow(txm TxManager, verifier *Verifier, events Events, logger *slog.Logger, cfg RecoveryConfig) *RecoveryFlow {
	if cfg.RequestTTL <= 0 {
		cfg.RequestTTL = DefaultRequestTTL
	}
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = DefaultResetTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RecoveryFlow{
		txm:      txm,
		verifier: verifier,
		guard:    NewHistoryGuard(verifier),
		events:   events,
		logger:   logger,
		cfg:      cfg,
	}
}

// RequestRecovery starts a recovery for the account behind email. It
// refuses while an unused, unexpired request or reset window already
// exists for the user, keeping at most one recovery in flight per account.
func (f *RecoveryFlow) RequestRecovery(ctx context.Context, email string) (*RecoveryStart, error) {
	email = strings.TrimSpace(email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}

	var (
		req       *RecoveryRequest
		userEmail string
	)
	now := time.Now()
	err := f.txm.InTx(ctx, func(ctx context.Context, repos TxRepos) error {
		user, err := repos.Users().GetByEmail(ctx, email)
		if errors.Is(err, ErrNotFound) {
			return Failure(KindNotFound, CodeEmailNotFound, "no account registered for this email")
		}
		if err != nil {
			return Internal(err)
		}

		if _, err := repos.RecoveryRequests().ActiveForUser(ctx, user.ID, now); err == nil {
			return Failure(KindConflict, CodeActiveCodeExists, "an unexpired recovery code already exists")
		} else if !errors.Is(err, ErrNotFound) {
			return Internal(err)
		}

		if _, err := repos.ResetRecords().ActiveForUser(ctx, user.ID, now); err == nil {
			return Failure(KindConflict, CodeActiveResetExists, "an unexpired reset window already exists")
		} else if !errors.Is(err, ErrNotFound) {
			return Internal(err)
		}

		if err := repos.RecoveryRequests().RetireExpired(ctx, user.ID, now); err != nil {
			return Internal(err)
		}

		req, err = NewRecoveryRequest(user.ID, f.cfg.RequestTTL)
		if err != nil {
			return err
		}
		// A unique index allows one live request per user. Losing the
		// insert race surfaces as the same conflict the check above
		// reports.
		if err := repos.RecoveryRequests().Create(ctx, req); err != nil {
			if IsBusiness(err) {
				return err
			}
			return Internal(err)
		}
		userEmail = user.Email
		return nil
	})
	if err != nil {
		return nil, err
	}

	f.events.RecoveryCode(userEmail, req.GeneratedCode, req.ID.String())
	f.logger.InfoContext(ctx, "recovery requested",
		"request_id", req.ID,
		"expires_at", req.ExpiresAt,
	)
	return &RecoveryStart{
		RequestID: req.ID,
		Code:      req.GeneratedCode,
		ExpiresAt: req.ExpiresAt,
	}, nil
}

// VerifyCode checks a submitted code against its request. On success the
// request is consumed and a reset record opens the password-change window.
// A request that was already used reads as not found; its existence is not
// acknowledged once consumed.
func (f *RecoveryFlow) VerifyCode(ctx context.Context, requestID, code string) (*RecoveryVerified, error) {
	requestID = strings.TrimSpace(requestID)
	code = strings.TrimSpace(code)
	if requestID == "" {
		return nil, Failure(KindValidation, CodeRequestIDBlank, "request id is required")
	}
	if code == "" {
		return nil, Failure(KindValidation, CodeGeneratedBlank, "code is required")
	}
	id, err := uuid.Parse(requestID)
	if err != nil {
		return nil, Failure(KindValidation, CodeRequestIDInvalid, "request id is not a valid identifier")
	}

	var (
		rec       *ResetRecord
		userEmail string
	)
	now := time.Now()
	err = f.txm.InTx(ctx, func(ctx context.Context, repos TxRepos) error {
		req, err := repos.RecoveryRequests().GetByID(ctx, id)
		if errors.Is(err, ErrNotFound) {
			return Failure(KindNotFound, CodeRequestNotFound, "recovery request does not exist")
		}
		if err != nil {
			return Internal(err)
		}
		if req.Used {
			return Failure(KindNotFound, CodeRequestNotFound, "recovery request does not exist")
		}
		if req.IsExpiredAt(now) {
			return Failure(KindExpired, CodeRequestExpired, "recovery request has expired")
		}
		if !req.MatchesCode(code) {
			return Failure(KindValidation, CodeCodeMismatch, "code does not match")
		}

		user, err := repos.Users().GetByID(ctx, req.UserID)
		if err != nil {
			return Internal(err)
		}

		if err := repos.RecoveryRequests().MarkUsed(ctx, req.ID); err != nil {
			return Internal(err)
		}
		rec = NewResetRecord(req.UserID, req.ID, user.PasswordHash, f.cfg.ResetTTL)
		if err := repos.ResetRecords().Create(ctx, rec); err != nil {
			return Internal(err)
		}
		userEmail = user.Email
		return nil
	})
	if err != nil {
		return nil, err
	}

	f.events.CodeVerified(userEmail, id.String())
	f.logger.InfoContext(ctx, "recovery code verified",
		"request_id", id,
		"reset_expires_at", rec.ExpiresAt,
	)
	return &RecoveryVerified{
		RequestID:      id,
		ResetExpiresAt: rec.ExpiresAt,
	}, nil
}

// ResetPassword completes the recovery by installing a new password. The
// candidate is rejected when it matches the current password or any hash
// in the recent reset history. Hash update and record consumption commit
// together or not at all.
func (f *RecoveryFlow) ResetPassword(ctx context.Context, requestID, newPassword string) error {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return Failure(KindValidation, CodeRequestIDBlank, "request id is required")
	}
	if strings.TrimSpace(newPassword) == "" {
		return Failure(KindValidation, CodeNewPasswordBlank, "new password is required")
	}
	if len(newPassword) < MinPasswordLength || len(newPassword) > 72 {
		return Failure(KindValidation, CodeNewPasswordBlank, "new password must be %d-72 characters", MinPasswordLength)
	}
	id, err := uuid.Parse(requestID)
	if err != nil {
		return Failure(KindValidation, CodeRequestIDInvalid, "request id is not a valid identifier")
	}

	var userEmail string
	now := time.Now()
	err = f.txm.InTx(ctx, func(ctx context.Context, repos TxRepos) error {
		rec, err := repos.ResetRecords().GetUnusedByRequestID(ctx, id)
		if errors.Is(err, ErrNotFound) {
			return Failure(KindNotFound, CodeRequestNotFound, "no pending reset for this request")
		}
		if err != nil {
			return Internal(err)
		}
		if rec.IsExpiredAt(now) {
			return Failure(KindExpired, CodeResetExpired, "reset window has expired")
		}

		user, err := repos.Users().GetByID(ctx, rec.UserID)
		if err != nil {
			return Internal(err)
		}

		history, err := repos.ResetRecords().HistoryForUser(ctx, user.ID, HistoryWindow)
		if err != nil {
			return Internal(err)
		}
		if f.guard.IsReused(newPassword, user.PasswordHash, HistoryHashes(history)) {
			return Failure(KindValidation, CodePasswordReused, "new password was used recently")
		}

		newHash, err := f.verifier.Hash(newPassword)
		if err != nil {
			return err
		}
		if err := repos.Users().UpdatePassword(ctx, user.ID, newHash); err != nil {
			return Internal(err)
		}
		if err := repos.ResetRecords().Consume(ctx, rec.ID, newHash, now); err != nil {
			return Internal(err)
		}
		userEmail = user.Email
		return nil
	})
	if err != nil {
		return err
	}

	f.events.PasswordUpdated(userEmail)
	f.logger.InfoContext(ctx, "password reset completed", "request_id", id)
	return nil
}
