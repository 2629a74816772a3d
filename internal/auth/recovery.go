// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/samber/oops"
)

// Default lifetimes for the recovery artifacts. Both are configurable via
// Config; these match the original deployment values.
const (
	DefaultRequestTTL = 15 * time.Minute
	DefaultResetTTL   = 30 * time.Minute
)

// RecoveryCodeDigits is the length of the generated recovery code.
const RecoveryCodeDigits = 6

// RecoveryRequest is a short-lived, single-use 6-digit code tied to one
// user. At most one unused, unexpired request may exist per user.
type RecoveryRequest struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	GeneratedCode string
	CreatedAt     time.Time
	ExpiresAt     time.Time
	Used          bool
}

// IsExpiredAt reports whether the request is expired at t. Expiry is
// strict: t equal to ExpiresAt counts as expired.
func (r *RecoveryRequest) IsExpiredAt(t time.Time) bool {
	return !t.Before(r.ExpiresAt)
}

// MatchesCode compares a candidate code in constant time.
func (r *RecoveryRequest) MatchesCode(candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(r.GeneratedCode), []byte(candidate)) == 1
}

// NewRecoveryRequest creates a request with a fresh random code and TTL.
func NewRecoveryRequest(userID uuid.UUID, ttl time.Duration) (*RecoveryRequest, error) {
	code, err := GenerateRecoveryCode()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &RecoveryRequest{
		ID:            uuid.New(),
		UserID:        userID,
		GeneratedCode: code,
		CreatedAt:     now,
		ExpiresAt:     now.Add(ttl),
	}, nil
}

// GenerateRecoveryCode returns a random 6-digit decimal code. The code is
// opaque and single-use; leading zeros are preserved.
func GenerateRecoveryCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < RecoveryCodeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", oops.Code(CodeInternal).With("operation", "generate recovery code").Wrap(err)
	}
	return fmt.Sprintf("%0*d", RecoveryCodeDigits, n), nil
}

// ResetRecord gates the final password change after a code has been
// verified. OldPasswordHash captures the hash in force when the code was
// verified; NewPasswordHash and RegisteredAt are set when the record is
// consumed. The set of all records for a user is the password-reuse
// history.
type ResetRecord struct {
	ID              int64
	UserID          uuid.UUID
	RequestID       uuid.UUID
	CreatedAt       time.Time
	ExpiresAt       time.Time
	RegisteredAt    *time.Time
	OldPasswordHash string
	NewPasswordHash *string
	Used            bool
}

// IsExpiredAt reports whether the record is expired at t (strict).
func (r *ResetRecord) IsExpiredAt(t time.Time) bool {
	return !t.Before(r.ExpiresAt)
}

// NewResetRecord creates a record for a verified request.
func NewResetRecord(userID, requestID uuid.UUID, oldPasswordHash string, ttl time.Duration) *ResetRecord {
	now := time.Now()
	return &ResetRecord{
		UserID:          userID,
		RequestID:       requestID,
		CreatedAt:       now,
		ExpiresAt:       now.Add(ttl),
		OldPasswordHash: oldPasswordHash,
	}
}

// RecoveryRequestRepository manages recovery request persistence. All
// methods that participate in check-then-create sequences are invoked
// inside a store transaction scope (see TxManager).
type RecoveryRequestRepository interface {
	// Create stores a new recovery request.
	Create(ctx context.Context, req *RecoveryRequest) error

	// GetByID retrieves a request by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*RecoveryRequest, error)

	// ActiveForUser retrieves the unused, unexpired request for a user,
	// or ErrNotFound when none exists. The row is locked for the duration
	// of the enclosing transaction.
	ActiveForUser(ctx context.Context, userID uuid.UUID, now time.Time) (*RecoveryRequest, error)

	// RetireExpired marks the user's expired, unused requests as used,
	// clearing the way for a new request under the one-live-request
	// constraint.
	RetireExpired(ctx context.Context, userID uuid.UUID, now time.Time) error

	// MarkUsed flags a request as consumed.
	MarkUsed(ctx context.Context, id uuid.UUID) error
}

// ResetRecordRepository manages reset record persistence.
type ResetRecordRepository interface {
	// Create stores a new reset record.
	Create(ctx context.Context, rec *ResetRecord) error

	// GetUnusedByRequestID retrieves the unused record for a request ID,
	// or ErrNotFound. Used records never match.
	GetUnusedByRequestID(ctx context.Context, requestID uuid.UUID) (*ResetRecord, error)

	// ActiveForUser retrieves the unused, unexpired record for a user,
	// or ErrNotFound.
	ActiveForUser(ctx context.Context, userID uuid.UUID, now time.Time) (*ResetRecord, error)

	// HistoryForUser returns up to limit records for the user ordered
	// newest-first, forming the password-reuse history.
	HistoryForUser(ctx context.Context, userID uuid.UUID, limit int) ([]*ResetRecord, error)

	// Consume marks a record used, recording the new password hash and
	// the registration timestamp.
	Consume(ctx context.Context, id int64, newPasswordHash string, registeredAt time.Time) error
}

// TxManager runs fn inside one atomic transaction scope. Repositories
// obtained through Repos see the transaction's connection; any error from
// fn rolls the whole scope back, leaving no partial state.
type TxManager interface {
	InTx(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}

// TxRepos bundles the repositories bound to one transaction.
type TxRepos interface {
	Users() UserRepository
	RecoveryRequests() RecoveryRequestRepository
	ResetRecords() ResetRecordRepository
}
