// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package main

import (
	"context"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uteqlabs/authcore/internal/auth"
	"github.com/uteqlabs/authcore/internal/mail"
	"github.com/uteqlabs/authcore/internal/observability"
	"github.com/uteqlabs/authcore/internal/store"
)

// ServeDeps contains injectable dependencies for the serve command.
// All fields with nil values will use their default implementations.
type ServeDeps struct {
	// PoolFactory opens the database connection pool.
	// Default: store.NewPool
	PoolFactory func(ctx context.Context, dsn string) (*pgxpool.Pool, error)

	// ObservabilityServerFactory creates an observability server.
	// Default: observability.NewServer
	ObservabilityServerFactory func(addr string, readinessChecker observability.ReadinessChecker) ObservabilityServer

	// NotifierFactory builds the outbound notifier from the mail config.
	// Default: buildNotifier
	NotifierFactory func(cfg *serveConfig) (auth.Notifier, error)

	// DatabaseURLGetter returns the database URL.
	// Default: reads from DATABASE_URL environment variable
	DatabaseURLGetter func() string

	// JWTSecretGetter returns the token signing secret.
	// Default: reads from AUTHCORE_JWT_SECRET environment variable
	JWTSecretGetter func() string
}

func (d *ServeDeps) applyDefaults() {
	if d.PoolFactory == nil {
		d.PoolFactory = store.NewPool
	}
	if d.ObservabilityServerFactory == nil {
		d.ObservabilityServerFactory = func(addr string, readinessChecker observability.ReadinessChecker) ObservabilityServer {
			return observability.NewServer(addr, readinessChecker)
		}
	}
	if d.NotifierFactory == nil {
		d.NotifierFactory = buildNotifier
	}
	if d.DatabaseURLGetter == nil {
		d.DatabaseURLGetter = func() string { return os.Getenv("DATABASE_URL") }
	}
	if d.JWTSecretGetter == nil {
		d.JWTSecretGetter = func() string { return os.Getenv("AUTHCORE_JWT_SECRET") }
	}
}

// ObservabilityServer interface wraps the methods used from
// observability.Server.
type ObservabilityServer interface {
	Start() (<-chan error, error)
	Stop(ctx context.Context) error
	Addr() string
	Metrics() *observability.Metrics
}

var _ ObservabilityServer = (*observability.Server)(nil)

// Compile-time check that the log provider satisfies mail.Provider.
var _ mail.Provider = (*logProvider)(nil)
