// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

// Package mail delivers account notifications over email.
package mail

import (
	"bytes"
	"context"
	"embed"
	"log/slog"
	"text/template"
	"time"

	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"

	"github.com/uteqlabs/authcore/internal/auth"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Message is one outbound email.
type Message struct {
	To       string
	Subject  string
	TextBody string
}

// Provider delivers a rendered message. Implementations are expected to
// be safe for concurrent use.
type Provider interface {
	Send(ctx context.Context, msg Message) error
}

// Retry policy for transient provider failures. Sends happen off the
// request path, so a few retries cost nothing user-visible.
const (
	retryBase     = 500 * time.Millisecond
	retryAttempts = 3
)

// Mailer renders notification templates and sends them through a
// Provider. It implements auth.Notifier.
type Mailer struct {
	provider  Provider
	from      string
	templates *template.Template
	logger    *slog.Logger
}

// NewMailer creates a Mailer. from is the sender address stamped on every
// message.
func NewMailer(provider Provider, from string, logger *slog.Logger) (*Mailer, error) {
	if provider == nil {
		return nil, oops.Errorf("mail provider is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, oops.With("operation", "parse mail templates").Wrap(err)
	}
	return &Mailer{
		provider:  provider,
		from:      from,
		templates: tmpl,
		logger:    logger,
	}, nil
}

// From returns the configured sender address.
func (m *Mailer) From() string { return m.from }

func (m *Mailer) send(ctx context.Context, to, subject, templateName string, data any) error {
	var body bytes.Buffer
	if err := m.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return oops.With("operation", "render mail template").With("template", templateName).Wrap(err)
	}

	msg := Message{To: to, Subject: subject, TextBody: body.String()}

	backoff := retry.WithMaxRetries(retryAttempts, retry.NewExponential(retryBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if sendErr := m.provider.Send(ctx, msg); sendErr != nil {
			return retry.RetryableError(sendErr)
		}
		return nil
	})
	if err != nil {
		return oops.With("operation", "send mail").With("template", templateName).Wrap(err)
	}
	return nil
}

// SendWelcome greets a newly registered account.
func (m *Mailer) SendWelcome(ctx context.Context, email, fullName string) error {
	return m.send(ctx, email, "Welcome", "welcome.tmpl", map[string]string{
		"FullName": fullName,
	})
}

// SendRecoveryCode delivers a recovery code. The raw password never
// appears here; the code is the only secret in transit.
func (m *Mailer) SendRecoveryCode(ctx context.Context, email, code, requestID string) error {
	return m.send(ctx, email, "Your recovery code", "recovery_code.tmpl", map[string]string{
		"Code":      code,
		"RequestID": requestID,
	})
}

// SendCodeVerified confirms that a recovery code was accepted.
func (m *Mailer) SendCodeVerified(ctx context.Context, email, requestID string) error {
	return m.send(ctx, email, "Recovery code verified", "code_verified.tmpl", map[string]string{
		"RequestID": requestID,
	})
}

// SendPasswordUpdated confirms a completed password reset.
func (m *Mailer) SendPasswordUpdated(ctx context.Context, email string) error {
	return m.send(ctx, email, "Your password was updated", "password_updated.tmpl", nil)
}

// SendLoginNotification reports a new login on the account.
func (m *Mailer) SendLoginNotification(ctx context.Context, email, username string) error {
	return m.send(ctx, email, "New login to your account", "login_notification.tmpl", map[string]string{
		"Username": username,
	})
}

// Compile-time interface check.
var _ auth.Notifier = (*Mailer)(nil)
