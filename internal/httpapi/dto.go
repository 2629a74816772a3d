// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package httpapi

import "time"

// Request bodies. Every public operation carries a recaptcha token.

type loginRequest struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	RecaptchaToken string `json:"recaptchaToken"`
}

type registerRequest struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	CountryID      int    `json:"countryId"`
	RecaptchaToken string `json:"recaptchaToken"`
}

type recoverRequest struct {
	Email          string `json:"email"`
	RecaptchaToken string `json:"recaptchaToken"`
}

type verifyCodeRequest struct {
	RequestID      string `json:"requestId"`
	Code           string `json:"code"`
	RecaptchaToken string `json:"recaptchaToken"`
}

type resetPasswordRequest struct {
	RequestID      string `json:"requestId"`
	NewPassword    string `json:"newPassword"`
	RecaptchaToken string `json:"recaptchaToken"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type logoutRequest struct {
	AccessToken string `json:"accessToken"`
}

// apiResponse is the envelope every endpoint answers with. Code is the
// stable business code clients dispatch on.
type apiResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type userData struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	CountryID    int       `json:"countryId"`
	RegisteredAt time.Time `json:"registeredAt"`
}

type loginData struct {
	User         userData `json:"user"`
	SessionID    string   `json:"sessionId"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
}

type recoveryData struct {
	RequestID string    `json:"requestId"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type verifyData struct {
	RequestID      string    `json:"requestId"`
	ResetExpiresAt time.Time `json:"resetExpiresAt"`
}

type refreshData struct {
	AccessToken string `json:"accessToken"`
}
