// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/uteqlabs/authcore/internal/auth"
)

// recordingNotifier collects sends so tests can wait on delivery.
type recordingNotifier struct {
	mu    sync.Mutex
	sent  []string
	errOn string
	wake  chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{wake: make(chan struct{}, 16)}
}

func (n *recordingNotifier) record(name string) error {
	n.mu.Lock()
	n.sent = append(n.sent, name)
	n.mu.Unlock()
	n.wake <- struct{}{}
	if name == n.errOn {
		return errors.New("send failed")
	}
	return nil
}

func (n *recordingNotifier) names() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.sent...)
}

func (n *recordingNotifier) SendWelcome(_ context.Context, _, _ string) error {
	return n.record("welcome")
}

func (n *recordingNotifier) SendRecoveryCode(_ context.Context, _, _, _ string) error {
	return n.record("recovery_code")
}

func (n *recordingNotifier) SendCodeVerified(_ context.Context, _, _ string) error {
	return n.record("code_verified")
}

func (n *recordingNotifier) SendPasswordUpdated(_ context.Context, _ string) error {
	return n.record("password_updated")
}

func (n *recordingNotifier) SendLoginNotification(_ context.Context, _, _ string) error {
	return n.record("login_notification")
}

var _ auth.Notifier = (*recordingNotifier)(nil)

func waitForSends(t *testing.T, n *recordingNotifier, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		select {
		case <-n.wake:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for send %d of %d", i+1, count)
		}
	}
}

func TestDispatcher_DeliversQueuedNotifications(t *testing.T) {
	defer goleak.VerifyNone(t)

	notifier := newRecordingNotifier()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	d := auth.NewDispatcher(notifier, logger)

	d.Welcome("user@example.com", "New User")
	d.RecoveryCode("user@example.com", "123456", "req-1")
	d.CodeVerified("user@example.com", "req-1")
	d.PasswordUpdated("user@example.com")
	d.LoginNotification("user@example.com", "someuser")

	waitForSends(t, notifier, 5)
	d.Close()

	assert.Equal(t, []string{
		"welcome",
		"recovery_code",
		"code_verified",
		"password_updated",
		"login_notification",
	}, notifier.names())
}

func TestDispatcher_SendFailureDoesNotStopLater(t *testing.T) {
	defer goleak.VerifyNone(t)

	notifier := newRecordingNotifier()
	notifier.errOn = "welcome"
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	d := auth.NewDispatcher(notifier, logger)

	d.Welcome("user@example.com", "New User")
	d.PasswordUpdated("user@example.com")

	waitForSends(t, notifier, 2)
	d.Close()

	assert.Equal(t, []string{"welcome", "password_updated"}, notifier.names())
}

func TestDispatcher_SubmitAfterCloseIsDropped(t *testing.T) {
	defer goleak.VerifyNone(t)

	notifier := newRecordingNotifier()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	d := auth.NewDispatcher(notifier, logger)
	d.Close()

	// Must not panic or deliver.
	d.Welcome("user@example.com", "New User")
	assert.Empty(t, notifier.names())
}

func TestDispatcher_CloseIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	notifier := newRecordingNotifier()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	d := auth.NewDispatcher(notifier, logger)
	d.Close()
	d.Close()
}
