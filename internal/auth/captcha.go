// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CaptchaVerifier gates the public entry points against automated abuse.
// A failed or unverifiable challenge is a business failure, not an
// internal error.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// AllowAllCaptcha accepts every challenge. Used when no captcha secret is
// configured, typically in development.
type AllowAllCaptcha struct{}

// Verify always succeeds.
func (AllowAllCaptcha) Verify(_ context.Context, _, _ string) error { return nil }

// DefaultRecaptchaEndpoint is Google's siteverify endpoint.
const DefaultRecaptchaEndpoint = "https://www.google.com/recaptcha/api/siteverify"

// RecaptchaVerifier validates reCAPTCHA tokens against the siteverify
// endpoint. A v3 score below MinScore fails verification; v2 responses
// carry no score and pass on success alone.
type RecaptchaVerifier struct {
	secret   string
	endpoint string
	minScore float64
	client   *http.Client
}

var _ CaptchaVerifier = (*RecaptchaVerifier)(nil)

// NewRecaptchaVerifier creates a verifier for the given secret. minScore
// of zero disables score checking.
func NewRecaptchaVerifier(secret string, minScore float64) *RecaptchaVerifier {
	return NewRecaptchaVerifierForEndpoint(secret, minScore, DefaultRecaptchaEndpoint)
}

// NewRecaptchaVerifierForEndpoint creates a verifier against a custom
// siteverify endpoint.
func NewRecaptchaVerifierForEndpoint(secret string, minScore float64, endpoint string) *RecaptchaVerifier {
	return &RecaptchaVerifier{
		secret:   secret,
		endpoint: endpoint,
		minScore: minScore,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type recaptchaResponse struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	Action     string   `json:"action"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify posts the token to siteverify and interprets the result.
func (v *RecaptchaVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	if strings.TrimSpace(token) == "" {
		return Failure(KindAuthentication, CodeCaptchaFailed, "captcha token is required")
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return Internal(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return Failure(KindAuthentication, CodeCaptchaFailed, "captcha verification unavailable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return Failure(KindAuthentication, CodeCaptchaFailed, "captcha verification unreadable")
	}
	var parsed recaptchaResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Failure(KindAuthentication, CodeCaptchaFailed, "captcha verification unreadable")
	}
	if !parsed.Success {
		return Failure(KindAuthentication, CodeCaptchaFailed, "captcha verification failed")
	}
	if v.minScore > 0 && parsed.Score > 0 && parsed.Score < v.minScore {
		return Failure(KindAuthentication, CodeCaptchaFailed, "captcha score too low")
	}
	return nil
}
