// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package mail

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/smtp"
	"net/url"
	"strings"
	"time"

	"github.com/samber/oops"
)

// MailgunProvider sends messages through the Mailgun HTTP API.
type MailgunProvider struct {
	domain string
	apiKey string
	from   string
	base   string
	client *http.Client
}

// DefaultMailgunBase is the Mailgun API base URL.
const DefaultMailgunBase = "https://api.mailgun.net/v3"

// NewMailgunProvider creates a MailgunProvider for the given sending
// domain.
func NewMailgunProvider(domain, apiKey, from string) *MailgunProvider {
	return &MailgunProvider{
		domain: domain,
		apiKey: apiKey,
		from:   from,
		base:   DefaultMailgunBase,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// NewMailgunProviderForBase creates a MailgunProvider against a custom
// API base URL.
func NewMailgunProviderForBase(domain, apiKey, from, base string) *MailgunProvider {
	p := NewMailgunProvider(domain, apiKey, from)
	p.base = base
	return p
}

// Send posts the message to the Mailgun messages endpoint.
func (p *MailgunProvider) Send(ctx context.Context, msg Message) error {
	form := url.Values{}
	form.Set("from", p.from)
	form.Set("to", msg.To)
	form.Set("subject", msg.Subject)
	form.Set("text", msg.TextBody)

	endpoint := fmt.Sprintf("%s/%s/messages", p.base, p.domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return oops.With("operation", "build mailgun request").Wrap(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("api", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return oops.With("operation", "post mailgun message").Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<12))
		return oops.
			With("operation", "post mailgun message").
			With("status", resp.StatusCode).
			Errorf("mailgun rejected message: %s", strings.TrimSpace(string(body)))
	}
	return nil
}

// SMTPProvider sends messages through a plain SMTP relay.
type SMTPProvider struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTPProvider creates an SMTPProvider. addr is host:port; auth may
// be nil for an open relay.
func NewSMTPProvider(addr string, auth smtp.Auth, from string) *SMTPProvider {
	return &SMTPProvider{addr: addr, auth: auth, from: from}
}

// Send delivers the message over SMTP. The context bounds only the
// caller's patience; net/smtp has no native cancellation.
func (p *SMTPProvider) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return oops.With("operation", "smtp send").Wrap(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", p.from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.TextBody)

	if err := smtp.SendMail(p.addr, p.auth, p.from, []string{msg.To}, []byte(b.String())); err != nil {
		return oops.With("operation", "smtp send").With("addr", p.addr).Wrap(err)
	}
	return nil
}

// Compile-time interface checks.
var (
	_ Provider = (*MailgunProvider)(nil)
	_ Provider = (*SMTPProvider)(nil)
)
