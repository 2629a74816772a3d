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

// dummyPasswordHash is compared against when the user does not exist, so
// lookups for present and absent usernames take comparable time.
const dummyPasswordHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// LegacyCredentialChecker compares a raw password against a user's stored
// legacy hash with the store's own equality logic. Only consulted for
// hashes that are not in the modern scheme.
type LegacyCredentialChecker interface {
	CheckLegacy(ctx context.Context, userID uuid.UUID, rawPassword string) (bool, error)
}

// LoginResult carries a successful authentication: the account, its new
// session, and the signed token pair.
type LoginResult struct {
	User         *User
	SessionID    uuid.UUID
	AccessToken  string
	RefreshToken string
}

// Service is the authentication gateway. It orchestrates credential
// verification, registration, recovery, session accounting, and token
// issuance; all outbound notifications are fire-and-forget.
type Service struct {
	users    UserRepository
	sessions SessionRepository
	legacy   LegacyCredentialChecker
	verifier *Verifier
	tokens   *TokenIssuer
	recovery *RecoveryFlow
	captcha  CaptchaVerifier
	events   Events
	logger   *slog.Logger
}

// NewService creates the authentication gateway.
func NewService(
	users UserRepository,
	sessions SessionRepository,
	legacy LegacyCredentialChecker,
	verifier *Verifier,
	tokens *TokenIssuer,
	recovery *RecoveryFlow,
	captcha CaptchaVerifier,
	events Events,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		users:    users,
		sessions: sessions,
		legacy:   legacy,
		verifier: verifier,
		tokens:   tokens,
		recovery: recovery,
		captcha:  captcha,
		events:   events,
		logger:   logger,
	}
}

// Login authenticates username/password and opens a session. The error
// codes distinguish unknown users from wrong passwords; response timing
// does not.
func (s *Service) Login(ctx context.Context, username, password, captchaToken, remoteIP string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, Failure(KindValidation, CodeUsernameInvalid, "username is required")
	}
	if password == "" {
		return nil, Failure(KindValidation, CodePasswordInvalid, "password is required")
	}
	if err := s.captcha.Verify(ctx, captchaToken, remoteIP); err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		// Burn a comparison so absent users cost the same as wrong passwords.
		s.verifier.Matches(password, dummyPasswordHash)
		return nil, Failure(KindNotFound, CodeUserNotFound, "user does not exist")
	}
	if err != nil {
		return nil, Internal(err)
	}

	ok, err := s.verifier.Verify(ctx, password, user.PasswordHash, s.legacyProbe(user.ID))
	if err != nil {
		return nil, Internal(err)
	}
	if !ok {
		return nil, Failure(KindAuthentication, CodePasswordIncorrect, "password is incorrect")
	}

	session := NewSessionRecord(user.ID)
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, Internal(err)
	}

	access, err := s.tokens.Issue(user.ID, user.Email, user.Username, session.ID, TokenKindAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.Issue(user.ID, user.Email, user.Username, session.ID, TokenKindRefresh)
	if err != nil {
		return nil, err
	}

	s.events.LoginNotification(user.Email, user.Username)
	s.logger.InfoContext(ctx, "user logged in",
		"user_id", user.ID,
		"session_id", session.ID,
	)
	return &LoginResult{
		User:         user,
		SessionID:    session.ID,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Register creates a new account. Email and username uniqueness is
// enforced by the store; the repository surfaces constraint violations as
// the corresponding business failures.
func (s *Service) Register(ctx context.Context, fullName, email, username, password string, countryID int, captchaToken, remoteIP string) (*User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)
	if err := ValidateRegistration(fullName, email, username, password, countryID); err != nil {
		return nil, err
	}
	if err := s.captcha.Verify(ctx, captchaToken, remoteIP); err != nil {
		return nil, err
	}

	hash, err := s.verifier.Hash(password)
	if err != nil {
		return nil, err
	}
	user := NewUser(fullName, email, username, hash, countryID)
	if err := s.users.Create(ctx, user); err != nil {
		if IsBusiness(err) {
			return nil, err
		}
		return nil, Internal(err)
	}

	s.events.Welcome(user.Email, user.FullName)
	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// RequestRecovery starts password recovery for an email.
func (s *Service) RequestRecovery(ctx context.Context, email, captchaToken, remoteIP string) (*RecoveryStart, error) {
	if err := s.captcha.Verify(ctx, captchaToken, remoteIP); err != nil {
		return nil, err
	}
	return s.recovery.RequestRecovery(ctx, email)
}

// VerifyRecoveryCode checks a recovery code and opens the reset window.
func (s *Service) VerifyRecoveryCode(ctx context.Context, requestID, code, captchaToken, remoteIP string) (*RecoveryVerified, error) {
	if err := s.captcha.Verify(ctx, captchaToken, remoteIP); err != nil {
		return nil, err
	}
	return s.recovery.VerifyCode(ctx, requestID, code)
}

// ResetPassword completes a recovery with a new password.
func (s *Service) ResetPassword(ctx context.Context, requestID, newPassword, captchaToken, remoteIP string) error {
	if err := s.captcha.Verify(ctx, captchaToken, remoteIP); err != nil {
		return err
	}
	return s.recovery.ResetPassword(ctx, requestID, newPassword)
}

// Logout closes the session named by a valid access token. Outstanding
// tokens stay usable until they expire; the session row records when the
// login ended.
func (s *Service) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.tokens.Validate(accessToken)
	if err != nil {
		return err
	}
	if claims.Kind != TokenKindAccess {
		return Failure(KindAuthentication, CodeInternal, "token is not an access token")
	}
	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return Failure(KindAuthentication, CodeInternal, "token carries a malformed session id")
	}
	if err := s.sessions.Close(ctx, sessionID, time.Now()); err != nil {
		return Internal(err)
	}
	s.logger.InfoContext(ctx, "user logged out", "session_id", sessionID)
	return nil
}

// RefreshToken mints a new access token from a refresh token.
func (s *Service) RefreshToken(_ context.Context, refreshToken string) (string, error) {
	return s.tokens.Refresh(refreshToken)
}

// ValidateToken parses and verifies a session token.
func (s *Service) ValidateToken(token string) (*Claims, error) {
	return s.tokens.Validate(token)
}

func (s *Service) legacyProbe(userID uuid.UUID) LegacyProbe {
	if s.legacy == nil {
		return nil
	}
	return func(ctx context.Context, rawPassword string) (bool, error) {
		return s.legacy.CheckLegacy(ctx, userID, rawPassword)
	}
}
