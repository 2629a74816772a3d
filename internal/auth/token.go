// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/samber/oops"
)

// Token kinds carried in the "kind" claim.
const (
	TokenKindAccess  = "access"
	TokenKindRefresh = "refresh"
)

// Default token lifetimes.
const (
	DefaultAccessTTL  = time.Hour
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// TokenConfig is the immutable signing configuration, constructed once at
// process start and injected into the issuer. The signing key is the sole
// trust anchor: there is no revocation store, and key rotation invalidates
// every outstanding token.
type TokenConfig struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Issuer     string
}

// Claims are the session token claims. Email and Username are carried on
// refresh tokens for convenience when re-minting, but are never a
// server-side authorization source.
type Claims struct {
	UserID    string `json:"userId"`
	Email     string `json:"email,omitempty"`
	Username  string `json:"username,omitempty"`
	SessionID string `json:"sessionId"`
	Kind      string `json:"kind"`
	jwt.RegisteredClaims
}

// TokenIssuer mints, validates, and refreshes HS256-signed session tokens.
// Validation is pure computation over the token and key; no locking and no
// store access.
type TokenIssuer struct {
	cfg TokenConfig
}

// NewTokenIssuer creates a TokenIssuer. An empty secret is rejected at
// construction so a misconfigured process fails at startup, not at login.
func NewTokenIssuer(cfg TokenConfig) (*TokenIssuer, error) {
	if len(cfg.Secret) == 0 {
		return nil, oops.Code(CodeInternal).Errorf("token signing secret is required")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	return &TokenIssuer{cfg: cfg}, nil
}

// Issue signs a token of the given kind for the user/session identity.
func (i *TokenIssuer) Issue(userID uuid.UUID, email, username string, sessionID uuid.UUID, kind string) (string, error) {
	ttl := i.cfg.AccessTTL
	if kind == TokenKindRefresh {
		ttl = i.cfg.RefreshTTL
	}
	now := time.Now()
	claims := Claims{
		UserID:    userID.String(),
		Email:     email,
		Username:  username,
		SessionID: sessionID.String(),
		Kind:      kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.cfg.Issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.cfg.Secret)
	if err != nil {
		return "", oops.Code(CodeInternal).With("operation", "sign token").Wrap(err)
	}
	return signed, nil
}

// Validate parses and verifies a token, returning its claims. Expired or
// tampered tokens fail with an authentication error.
func (i *TokenIssuer) Validate(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, Failure(KindAuthentication, CodeInternal, "unexpected signing method %v", t.Header["alg"])
		}
		return i.cfg.Secret, nil
	})
	if err != nil {
		return nil, Failure(KindAuthentication, CodeInternal, "token is invalid or expired")
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, Failure(KindAuthentication, CodeInternal, "token is invalid")
	}
	return claims, nil
}

// IsExpired reports whether token is expired or unparseable. Mirrors the
// permissive probe used by clients; a malformed token reads as expired.
func (i *TokenIssuer) IsExpired(token string) bool {
	_, err := i.Validate(token)
	return err != nil
}

// Refresh validates a refresh token and mints a new access token from its
// claims. No store access: the refresh token itself is the only authority
// consulted, so a revoked session stays usable until its token expires.
func (i *TokenIssuer) Refresh(refreshToken string) (string, error) {
	claims, err := i.Validate(refreshToken)
	if err != nil {
		return "", err
	}
	if claims.Kind != TokenKindRefresh {
		return "", Failure(KindAuthentication, CodeInternal, "token is not a refresh token")
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return "", Failure(KindAuthentication, CodeInternal, "token carries a malformed user id")
	}
	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return "", Failure(KindAuthentication, CodeInternal, "token carries a malformed session id")
	}
	return i.Issue(userID, claims.Email, claims.Username, sessionID, TokenKindAccess)
}
