// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/uteqlabs/authcore/internal/auth"
	"github.com/uteqlabs/authcore/internal/auth/mocks"
	"github.com/uteqlabs/authcore/pkg/errutil"
)

type serviceFixture struct {
	users    *mocks.MockUserRepository
	sessions *mocks.MockSessionRepository
	legacy   *mocks.MockLegacyCredentialChecker
	captcha  *mocks.MockCaptchaVerifier
	events   *mocks.MockEvents
	svc      *auth.Service
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		users:    mocks.NewMockUserRepository(t),
		sessions: mocks.NewMockSessionRepository(t),
		legacy:   mocks.NewMockLegacyCredentialChecker(t),
		captcha:  mocks.NewMockCaptchaVerifier(t),
		events:   mocks.NewMockEvents(t),
	}
	verifier := auth.NewVerifier()
	tokens, err := auth.NewTokenIssuer(auth.TokenConfig{
		Secret: []byte("test-signing-secret"),
		Issuer: "authcore-test",
	})
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	txm := fakeTxManager{repos: fakeTxRepos{
		users:    f.users,
		requests: mocks.NewMockRecoveryRequestRepository(t),
		resets:   mocks.NewMockResetRecordRepository(t),
	}}
	flow := auth.NewRecoveryFlow(txm, verifier, f.events, logger, auth.RecoveryConfig{})

	f.svc = auth.NewService(f.users, f.sessions, f.legacy, verifier, tokens, flow, f.captcha, f.events, logger)
	return f
}

func (f *serviceFixture) allowCaptcha(ctx context.Context) {
	f.captcha.On("Verify", ctx, "captcha-token", "10.0.0.1").Return(nil)
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("successful login issues token pair", func(t *testing.T) {
		f := newServiceFixture(t)
		hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass-1"), bcrypt.MinCost)
		require.NoError(t, err)
		user := &auth.User{
			ID:           uuid.New(),
			Email:        "user@example.com",
			Username:     "someuser",
			PasswordHash: string(hash),
		}

		f.allowCaptcha(ctx)
		f.users.On("GetByUsername", ctx, "someuser").Return(user, nil)
		f.sessions.On("Create", ctx, mock.MatchedBy(func(s *auth.SessionRecord) bool {
			return s.UserID == user.ID && !s.Closed
		})).Return(nil)
		f.events.On("LoginNotification", "user@example.com", "someuser").Return()

		res, err := f.svc.Login(ctx, "someuser", "secret-pass-1", "captcha-token", "10.0.0.1")
		require.NoError(t, err)
		assert.Equal(t, user, res.User)
		assert.NotEqual(t, uuid.Nil, res.SessionID)

		access, err := f.svc.ValidateToken(res.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, auth.TokenKindAccess, access.Kind)
		assert.Equal(t, res.SessionID.String(), access.SessionID)

		refresh, err := f.svc.ValidateToken(res.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, auth.TokenKindRefresh, refresh.Kind)
	})

	t.Run("blank username", func(t *testing.T) {
		f := newServiceFixture(t)
		_, err := f.svc.Login(ctx, "  ", "secret-pass-1", "captcha-token", "10.0.0.1")
		errutil.AssertErrorCode(t, err, auth.CodeUsernameInvalid)
	})

	t.Run("blank password", func(t *testing.T) {
		f := newServiceFixture(t)
		_, err := f.svc.Login(ctx, "someuser", "", "captcha-token", "10.0.0.1")
		errutil.AssertErrorCode(t, err, auth.CodePasswordInvalid)
	})

	t.Run("failed captcha", func(t *testing.T) {
		f := newServiceFixture(t)
		f.captcha.On("Verify", ctx, "bad-token", "10.0.0.1").
			Return(auth.Failure(auth.KindAuthentication, auth.CodeCaptchaFailed, "captcha verification failed"))

		_, err := f.svc.Login(ctx, "someuser", "secret-pass-1", "bad-token", "10.0.0.1")
		errutil.AssertErrorCode(t, err, auth.CodeCaptchaFailed)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newServiceFixture(t)
		f.allowCaptcha(ctx)
		f.users.On("GetByUsername", ctx, "ghost").Return(nil, auth.ErrNotFound)

		_, err := f.svc.Login(ctx, "ghost", "secret-pass-1", "captcha-token", "10.0.0.1")
		errutil.AssertErrorCode(t, err, auth.CodeUserNotFound)
		assert.Equal(t, auth.KindNotFound, auth.KindOf(err))
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newServiceFixture(t)
		hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass-1"), bcrypt.MinCost)
		require.NoError(t, err)
		user := &auth.User{ID: uuid.New(), Username: "someuser", PasswordHash: string(hash)}

		f.allowCaptcha(ctx)
		f.users.On("GetByUsername", ctx, "someuser").Return(user, nil)

		_, err = f.svc.Login(ctx, "someuser", "wrong-pass", "captcha-token", "10.0.0.1")
		errutil.AssertErrorCode(t, err, auth.CodePasswordIncorrect)
		assert.Equal(t, auth.KindAuthentication, auth.KindOf(err))
	})

	t.Run("legacy hash delegates to the store", func(t *testing.T) {
		f := newServiceFixture(t)
		user := &auth.User{
			ID:           uuid.New(),
			Email:        "legacy@example.com",
			Username:     "legacyuser",
			PasswordHash: "5f4dcc3b5aa765d61d8327deb882cf99",
		}

		f.allowCaptcha(ctx)
		f.users.On("GetByUsername", ctx, "legacyuser").Return(user, nil)
		f.legacy.On("CheckLegacy", ctx, user.ID, "legacy-pass").Return(true, nil)
		f.sessions.On("Create", ctx, mock.AnythingOfType("*auth.SessionRecord")).Return(nil)
		f.events.On("LoginNotification", "legacy@example.com", "legacyuser").Return()

		res, err := f.svc.Login(ctx, "legacyuser", "legacy-pass", "captcha-token", "10.0.0.1")
		require.NoError(t, err)
		assert.NotEmpty(t, res.AccessToken)
	})
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the account", func(t *testing.T) {
		f := newServiceFixture(t)

		f.allowCaptcha(ctx)
		f.users.On("Create", ctx, mock.MatchedBy(func(u *auth.User) bool {
			return u.Email == "new@example.com" &&
				u.Username == "newuser" &&
				auth.IsModernHash(u.PasswordHash)
		})).Return(nil)
		f.events.On("Welcome", "new@example.com", "New User").Return()

		user, err := f.svc.Register(ctx, "New User", "New@Example.com", "newuser", "secret-pass-1", 52, "captcha-token", "10.0.0.1")
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", user.Email)
		assert.NotEqual(t, uuid.Nil, user.ID)
	})

	t.Run("field validation", func(t *testing.T) {
		tests := []struct {
			name      string
			fullName  string
			email     string
			username  string
			password  string
			countryID int
			wantCode  string
		}{
			{"blank full name", " ", "a@b.com", "newuser", "secret-pass-1", 1, auth.CodeFullNameInvalid},
			{"bad email", "New User", "not-an-email", "newuser", "secret-pass-1", 1, auth.CodeEmailInvalid},
			{"short username", "New User", "a@b.com", "ab", "secret-pass-1", 1, auth.CodeNewUsernameInvalid},
			{"username starts with digit", "New User", "a@b.com", "1user", "secret-pass-1", 1, auth.CodeNewUsernameInvalid},
			{"short password", "New User", "a@b.com", "newuser", "short", 1, auth.CodePasswordInvalid},
			{"missing country", "New User", "a@b.com", "newuser", "secret-pass-1", 0, auth.CodeCountryInvalid},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newServiceFixture(t)
				_, err := f.svc.Register(ctx, tt.fullName, tt.email, tt.username, tt.password, tt.countryID, "captcha-token", "10.0.0.1")
				require.Error(t, err)
				errutil.AssertErrorCode(t, err, tt.wantCode)
			})
		}
	})

	t.Run("duplicate email surfaces the store code", func(t *testing.T) {
		f := newServiceFixture(t)
		f.allowCaptcha(ctx)
		f.users.On("Create", ctx, mock.AnythingOfType("*auth.User")).
			Return(auth.Failure(auth.KindConflict, auth.CodeEmailTaken, "email already registered"))

		_, err := f.svc.Register(ctx, "New User", "dup@example.com", "newuser", "secret-pass-1", 52, "captcha-token", "10.0.0.1")
		errutil.AssertErrorCode(t, err, auth.CodeEmailTaken)
	})

	t.Run("duplicate username surfaces the store code", func(t *testing.T) {
		f := newServiceFixture(t)
		f.allowCaptcha(ctx)
		f.users.On("Create", ctx, mock.AnythingOfType("*auth.User")).
			Return(auth.Failure(auth.KindConflict, auth.CodeUsernameTaken, "username already registered"))

		_, err := f.svc.Register(ctx, "New User", "new@example.com", "dupuser", "secret-pass-1", 52, "captcha-token", "10.0.0.1")
		errutil.AssertErrorCode(t, err, auth.CodeUsernameTaken)
	})
}

func TestService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass-1"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &auth.User{ID: uuid.New(), Email: "user@example.com", Username: "someuser", PasswordHash: string(hash)}

	f.allowCaptcha(ctx)
	f.users.On("GetByUsername", ctx, "someuser").Return(user, nil)
	f.sessions.On("Create", ctx, mock.AnythingOfType("*auth.SessionRecord")).Return(nil)
	f.events.On("LoginNotification", "user@example.com", "someuser").Return()

	res, err := f.svc.Login(ctx, "someuser", "secret-pass-1", "captcha-token", "10.0.0.1")
	require.NoError(t, err)

	t.Run("refresh token yields a new access token", func(t *testing.T) {
		access, err := f.svc.RefreshToken(ctx, res.RefreshToken)
		require.NoError(t, err)

		claims, err := f.svc.ValidateToken(access)
		require.NoError(t, err)
		assert.Equal(t, auth.TokenKindAccess, claims.Kind)
		assert.Equal(t, user.ID.String(), claims.UserID)
	})

	t.Run("access token cannot refresh", func(t *testing.T) {
		_, err := f.svc.RefreshToken(ctx, res.AccessToken)
		require.Error(t, err)
	})
}

func TestService_Logout(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass-1"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &auth.User{ID: uuid.New(), Email: "user@example.com", Username: "someuser", PasswordHash: string(hash)}

	f.allowCaptcha(ctx)
	f.users.On("GetByUsername", ctx, "someuser").Return(user, nil)
	f.sessions.On("Create", ctx, mock.AnythingOfType("*auth.SessionRecord")).Return(nil)
	f.events.On("LoginNotification", "user@example.com", "someuser").Return()

	res, err := f.svc.Login(ctx, "someuser", "secret-pass-1", "captcha-token", "10.0.0.1")
	require.NoError(t, err)

	t.Run("closes the session behind the access token", func(t *testing.T) {
		f.sessions.On("Close", ctx, res.SessionID, mock.AnythingOfType("time.Time")).Return(nil)
		require.NoError(t, f.svc.Logout(ctx, res.AccessToken))
	})

	t.Run("refresh token cannot log out", func(t *testing.T) {
		err := f.svc.Logout(ctx, res.RefreshToken)
		require.Error(t, err)
		assert.Equal(t, auth.KindAuthentication, auth.KindOf(err))
	})

	t.Run("garbage token is refused", func(t *testing.T) {
		err := f.svc.Logout(ctx, "not.a.token")
		require.Error(t, err)
	})
}

func TestService_RecoveryGate(t *testing.T) {
	ctx := context.Background()

	t.Run("captcha failure blocks recovery request", func(t *testing.T) {
		f := newServiceFixture(t)
		f.captcha.On("Verify", ctx, "bad-token", "10.0.0.1").
			Return(auth.Failure(auth.KindAuthentication, auth.CodeCaptchaFailed, "captcha verification failed"))

		_, err := f.svc.RequestRecovery(ctx, "user@example.com", "bad-token", "10.0.0.1")
		errutil.AssertErrorCode(t, err, auth.CodeCaptchaFailed)
	})

	t.Run("captcha failure blocks code verification", func(t *testing.T) {
		f := newServiceFixture(t)
		f.captcha.On("Verify", ctx, "bad-token", "10.0.0.1").
			Return(auth.Failure(auth.KindAuthentication, auth.CodeCaptchaFailed, "captcha verification failed"))

		_, err := f.svc.VerifyRecoveryCode(ctx, uuid.NewString(), "123456", "bad-token", "10.0.0.1")
		errutil.AssertErrorCode(t, err, auth.CodeCaptchaFailed)
	})

	t.Run("captcha failure blocks password reset", func(t *testing.T) {
		f := newServiceFixture(t)
		f.captcha.On("Verify", ctx, "bad-token", "10.0.0.1").
			Return(auth.Failure(auth.KindAuthentication, auth.CodeCaptchaFailed, "captcha verification failed"))

		err := f.svc.ResetPassword(ctx, uuid.NewString(), "fresh-password-9", "bad-token", "10.0.0.1")
		errutil.AssertErrorCode(t, err, auth.CodeCaptchaFailed)
	})
}
