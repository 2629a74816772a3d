// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package auth

import (
	"context"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Username validation constraints.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MinPasswordLength = 8
	MaxFullNameLength = 300
)

// usernameRegex matches usernames that start with a letter and contain only
// letters, numbers, and underscores.
var usernameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// User is a registered account. PasswordHash is never empty; its prefix
// determines which hash scheme it belongs to (see IsModernHash).
type User struct {
	ID             uuid.UUID
	FullName       string
	Email          string
	Username       string
	PasswordHash   string
	CountryID      int
	RegisteredAt   time.Time
	IsTempPassword bool
}

// NewUser creates a User with a fresh ID and registration timestamp.
// Field validation is the caller's job; see ValidateRegistration.
func NewUser(fullName, email, username, passwordHash string, countryID int) *User {
	return &User{
		ID:           uuid.New(),
		FullName:     fullName,
		Email:        strings.ToLower(email),
		Username:     username,
		PasswordHash: passwordHash,
		CountryID:    countryID,
		RegisteredAt: time.Now(),
	}
}

// ValidateUsername checks a new username's length and character rules.
func ValidateUsername(username string) error {
	if username == "" || len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return Failure(KindValidation, CodeNewUsernameInvalid, "username must be %d-%d characters", MinUsernameLength, MaxUsernameLength)
	}
	if !usernameRegex.MatchString(username) {
		return Failure(KindValidation, CodeNewUsernameInvalid, "username must start with a letter and contain only letters, numbers, and underscores")
	}
	return nil
}

// ValidateEmail checks that email parses as an RFC 5322 address.
func ValidateEmail(email string) error {
	if email == "" {
		return Failure(KindValidation, CodeEmailInvalid, "email cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return Failure(KindValidation, CodeEmailInvalid, "email is not a valid address")
	}
	return nil
}

// ValidatePassword checks minimum length and the bcrypt 72-byte input limit.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength || len(password) > 72 {
		return Failure(KindValidation, CodePasswordInvalid, "password must be %d-72 characters", MinPasswordLength)
	}
	return nil
}

// ValidateRegistration checks all register fields before any store access.
func ValidateRegistration(fullName, email, username, password string, countryID int) error {
	if strings.TrimSpace(fullName) == "" || len(fullName) > MaxFullNameLength {
		return Failure(KindValidation, CodeFullNameInvalid, "full name is required")
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidateUsername(username); err != nil {
		return err
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}
	if countryID <= 0 {
		return Failure(KindValidation, CodeCountryInvalid, "country is required")
	}
	return nil
}

// UserRepository manages user persistence.
type UserRepository interface {
	// Create stores a new user. Uniqueness constraint violations surface
	// as business failures carrying CodeEmailTaken or CodeUsernameTaken.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByUsername retrieves a user by username.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetByEmail retrieves a user by email (case-insensitive).
	GetByEmail(ctx context.Context, email string) (*User, error)

	// UpdatePassword updates only the password hash for a user.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}
