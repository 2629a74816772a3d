// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package auth

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Notifier delivers outbound notifications. Implementations may fail
// independently; callers must never let that failure reach a business
// result. Raw passwords are never part of any notification.
type Notifier interface {
	SendWelcome(ctx context.Context, email, fullName string) error
	SendRecoveryCode(ctx context.Context, email, code, requestID string) error
	SendCodeVerified(ctx context.Context, email, requestID string) error
	SendPasswordUpdated(ctx context.Context, email string) error
	SendLoginNotification(ctx context.Context, email, username string) error
}

// Events is the fire-and-forget notification surface consumed by the
// services. Calls return immediately; delivery happens off the request
// path and delivery failure never surfaces as a business error.
type Events interface {
	Welcome(email, fullName string)
	RecoveryCode(email, code, requestID string)
	CodeVerified(email, requestID string)
	PasswordUpdated(email string)
	LoginNotification(email, username string)
}

// notifyTask is one queued notification send.
type notifyTask struct {
	id   ulid.ULID
	name string
	send func(ctx context.Context) error
}

// Dispatcher runs notification sends off the request path. Submissions
// never block the caller and errors are logged, not returned: the
// business result of the operation that triggered the notification is
// already committed by the time the send runs.
type Dispatcher struct {
	notifier Notifier
	logger   *slog.Logger
	timeout  time.Duration

	tasks chan notifyTask
	done  chan struct{}

	mu     sync.Mutex
	closed bool
}

var _ Events = (*Dispatcher)(nil)

// DefaultNotifyTimeout bounds a single notification send.
const DefaultNotifyTimeout = 30 * time.Second

// notifyQueueDepth is the dispatch buffer size. When the queue is full the
// task is dropped with a warning rather than delaying the caller.
const notifyQueueDepth = 256

// NewDispatcher creates and starts a Dispatcher.
func NewDispatcher(notifier Notifier, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{
		notifier: notifier,
		logger:   logger,
		timeout:  DefaultNotifyTimeout,
		tasks:    make(chan notifyTask, notifyQueueDepth),
		done:     make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for task := range d.tasks {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		start := time.Now()
		err := task.send(ctx)
		cancel()
		if err != nil {
			d.logger.Warn("notification send failed",
				"task_id", task.id.String(),
				"notification", task.name,
				"elapsed", time.Since(start),
				"error", err,
			)
			continue
		}
		d.logger.Debug("notification sent",
			"task_id", task.id.String(),
			"notification", task.name,
			"elapsed", time.Since(start),
		)
	}
}

// submit queues a send. Drops with a warning when the queue is full or the
// dispatcher has been closed.
func (d *Dispatcher) submit(name string, send func(ctx context.Context) error) {
	task := notifyTask{id: ulid.Make(), name: name, send: send}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		d.logger.Warn("dispatcher closed, dropping task",
			"task_id", task.id.String(),
			"notification", name,
		)
		return
	}
	select {
	case d.tasks <- task:
	default:
		d.logger.Warn("notification queue full, dropping task",
			"task_id", task.id.String(),
			"notification", name,
		)
	}
}

// Welcome queues a welcome notification.
func (d *Dispatcher) Welcome(email, fullName string) {
	d.submit("welcome", func(ctx context.Context) error {
		return d.notifier.SendWelcome(ctx, email, fullName)
	})
}

// RecoveryCode queues a recovery code delivery.
func (d *Dispatcher) RecoveryCode(email, code, requestID string) {
	d.submit("recovery_code", func(ctx context.Context) error {
		return d.notifier.SendRecoveryCode(ctx, email, code, requestID)
	})
}

// CodeVerified queues a code-verified notification.
func (d *Dispatcher) CodeVerified(email, requestID string) {
	d.submit("code_verified", func(ctx context.Context) error {
		return d.notifier.SendCodeVerified(ctx, email, requestID)
	})
}

// PasswordUpdated queues a password-updated notification.
func (d *Dispatcher) PasswordUpdated(email string) {
	d.submit("password_updated", func(ctx context.Context) error {
		return d.notifier.SendPasswordUpdated(ctx, email)
	})
}

// LoginNotification queues a login notification.
func (d *Dispatcher) LoginNotification(email, username string) {
	d.submit("login_notification", func(ctx context.Context) error {
		return d.notifier.SendLoginNotification(ctx, email, username)
	})
}

// Close stops accepting tasks and waits for in-flight sends to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.tasks)
	}
	d.mu.Unlock()
	<-d.done
}
