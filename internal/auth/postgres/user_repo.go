// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/uteqlabs/authcore/internal/auth"
)

// Unique constraint names from the initial migration. Violations map to
// the stable register conflict codes.
const (
	emailConstraint    = "pl_user_email_key"
	usernameConstraint = "pl_user_username_key"
)

// UserRepository implements auth.UserRepository using PostgreSQL.
type UserRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create stores a new user. Unique violations on email or username come
// back as the corresponding business failures.
func (r *UserRepository) Create(ctx context.Context, user *auth.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO pl_user (id, full_name, email, username, password_hash, country_id, registered_at, is_temp_password)
		VALUES ($1, $2, lower($3), $4, $5, $6, $7, $8)
	`, user.ID, user.FullName, user.Email, user.Username, user.PasswordHash, user.CountryID, user.RegisteredAt, user.IsTempPassword)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			switch pgErr.ConstraintName {
			case emailConstraint:
				return auth.Failure(auth.KindConflict, auth.CodeEmailTaken, "email already registered")
			case usernameConstraint:
				return auth.Failure(auth.KindConflict, auth.CodeUsernameTaken, "username already registered")
			}
		}
		return oops.Code("USER_CREATE_FAILED").
			With("operation", "insert pl_user").
			With("user_id", user.ID.String()).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	row := r.db.QueryRow(ctx, userSelect+` WHERE id = $1`, id)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("user_id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	return user, err
}

// GetByUsername retrieves a user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	row := r.db.QueryRow(ctx, userSelect+` WHERE username = $1`, username)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("username", username).
			Wrap(auth.ErrNotFound)
	}
	return user, err
}

// GetByEmail retrieves a user by email, case-insensitively.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	row := r.db.QueryRow(ctx, userSelect+` WHERE email = lower($1)`, email)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").Wrap(auth.ErrNotFound)
	}
	return user, err
}

// UpdatePassword updates only the password hash for a user.
func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result, err := r.db.Exec(ctx, `
		UPDATE pl_user SET password_hash = $2, is_temp_password = FALSE WHERE id = $1
	`, id, passwordHash)
	if err != nil {
		return oops.Code("USER_UPDATE_PASSWORD_FAILED").
			With("operation", "update pl_user password").
			With("user_id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("user_id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// CheckLegacy compares a raw password against the stored legacy hash in
// SQL. The legacy scheme is hex MD5 owned by the store; the application
// never reimplements it.
func (r *UserRepository) CheckLegacy(ctx context.Context, userID uuid.UUID, rawPassword string) (bool, error) {
	var match bool
	err := r.db.QueryRow(ctx, `
		SELECT password_hash = md5($2) FROM pl_user WHERE id = $1
	`, userID, rawPassword).Scan(&match)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, oops.Code("USER_NOT_FOUND").
			With("user_id", userID.String()).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return false, oops.Code("USER_LEGACY_CHECK_FAILED").
			With("operation", "compare legacy hash").
			With("user_id", userID.String()).
			Wrap(err)
	}
	return match, nil
}

const userSelect = `
	SELECT id, full_name, email, username, password_hash, country_id, registered_at, is_temp_password
	FROM pl_user`

// scanUser scans a single row into a User.
// Callers are responsible for handling pgx.ErrNoRows.
func scanUser(row pgx.Row) (*auth.User, error) {
	var u auth.User
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Username, &u.PasswordHash, &u.CountryID, &u.RegisteredAt, &u.IsTempPassword)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, oops.Code("USER_SCAN_FAILED").
			With("operation", "scan pl_user").
			Wrap(err)
	}
	return &u, nil
}

// Compile-time interface checks.
var (
	_ auth.UserRepository          = (*UserRepository)(nil)
	_ auth.LegacyCredentialChecker = (*UserRepository)(nil)
)
