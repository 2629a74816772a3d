// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/uteqlabs/authcore/internal/auth"
	authpg "github.com/uteqlabs/authcore/internal/auth/postgres"
	"github.com/uteqlabs/authcore/internal/httpapi"
	"github.com/uteqlabs/authcore/internal/logging"
	"github.com/uteqlabs/authcore/internal/mail"
	"github.com/uteqlabs/authcore/internal/observability"
)

// serveConfig holds configuration for the serve command.
type serveConfig struct {
	listenAddr  string
	metricsAddr string
	logFormat   string
	logLevel    string

	accessTTL  time.Duration
	refreshTTL time.Duration
	requestTTL time.Duration
	resetTTL   time.Duration

	recaptchaMinScore float64

	mailProvider  string
	mailFrom      string
	mailgunDomain string
	smtpAddr      string
}

// Validate checks that the configuration is valid.
func (cfg *serveConfig) Validate() error {
	if cfg.listenAddr == "" {
		return fmt.Errorf("listen-addr is required")
	}
	if cfg.logFormat != "json" && cfg.logFormat != "text" {
		return fmt.Errorf("log-format must be 'json' or 'text', got %q", cfg.logFormat)
	}
	switch cfg.mailProvider {
	case "mailgun":
		if cfg.mailgunDomain == "" {
			return fmt.Errorf("mailgun-domain is required for the mailgun provider")
		}
	case "smtp":
		if cfg.smtpAddr == "" {
			return fmt.Errorf("smtp-addr is required for the smtp provider")
		}
	case "log":
	default:
		return fmt.Errorf("mail-provider must be 'mailgun', 'smtp', or 'log', got %q", cfg.mailProvider)
	}
	return nil
}

// Default values for serve command flags.
const (
	defaultListenAddr  = ":8080"
	defaultMetricsAddr = "127.0.0.1:9100"
	defaultLogFormat   = "json"
	defaultLogLevel    = "info"
	defaultMailFrom    = "no-reply@localhost"
)

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cfg := &serveConfig{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the authentication API server",
		Long: `Start the HTTP server exposing login, registration, token refresh,
and the password recovery endpoints.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServeWithDeps(cmd.Context(), cfg, cmd, nil)
		},
	}

	cmd.Flags().StringVar(&cfg.listenAddr, "listen-addr", defaultListenAddr, "API listen address")
	cmd.Flags().StringVar(&cfg.metricsAddr, "metrics-addr", defaultMetricsAddr, "metrics/health HTTP address (empty = disabled)")
	cmd.Flags().StringVar(&cfg.logFormat, "log-format", defaultLogFormat, "log format (json or text)")
	cmd.Flags().StringVar(&cfg.logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	cmd.Flags().DurationVar(&cfg.accessTTL, "access-ttl", auth.DefaultAccessTTL, "access token lifetime")
	cmd.Flags().DurationVar(&cfg.refreshTTL, "refresh-ttl", auth.DefaultRefreshTTL, "refresh token lifetime")
	cmd.Flags().DurationVar(&cfg.requestTTL, "recovery-request-ttl", auth.DefaultRequestTTL, "recovery code lifetime")
	cmd.Flags().DurationVar(&cfg.resetTTL, "recovery-reset-ttl", auth.DefaultResetTTL, "reset window lifetime")
	cmd.Flags().Float64Var(&cfg.recaptchaMinScore, "recaptcha-min-score", 0.5, "minimum acceptable recaptcha score")
	cmd.Flags().StringVar(&cfg.mailProvider, "mail-provider", "log", "mail provider (mailgun, smtp, or log)")
	cmd.Flags().StringVar(&cfg.mailFrom, "mail-from", defaultMailFrom, "sender address for outbound mail")
	cmd.Flags().StringVar(&cfg.mailgunDomain, "mailgun-domain", "", "mailgun sending domain")
	cmd.Flags().StringVar(&cfg.smtpAddr, "smtp-addr", "", "SMTP relay address (host:port)")

	return cmd
}

// runServeWithDeps starts the API server with injectable dependencies.
// If deps is nil, default implementations are used.
func runServeWithDeps(ctx context.Context, cfg *serveConfig, cmd *cobra.Command, deps *ServeDeps) error {
	if deps == nil {
		deps = &ServeDeps{}
	}
	deps.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.SetDefault(logging.Options{
		Service: "authcore",
		Version: version,
		Format:  cfg.logFormat,
		Level:   logging.ParseLevel(cfg.logLevel),
	})

	databaseURL := deps.DatabaseURLGetter()
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	jwtSecret := deps.JWTSecretGetter()
	if jwtSecret == "" {
		return fmt.Errorf("AUTHCORE_JWT_SECRET environment variable is required")
	}

	pool, err := deps.PoolFactory(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	logger.Info("connected to database")

	users := authpg.NewUserRepository(pool)
	sessions := authpg.NewSessionRepository(pool)
	txm := authpg.NewTxManager(pool)

	notifier, err := deps.NotifierFactory(cfg)
	if err != nil {
		return fmt.Errorf("failed to build notifier: %w", err)
	}
	dispatcher := auth.NewDispatcher(notifier, logger)
	defer dispatcher.Close()

	verifier := auth.NewVerifier()
	tokens, err := auth.NewTokenIssuer(auth.TokenConfig{
		Secret:     []byte(jwtSecret),
		AccessTTL:  cfg.accessTTL,
		RefreshTTL: cfg.refreshTTL,
		Issuer:     "authcore",
	})
	if err != nil {
		return fmt.Errorf("failed to create token issuer: %w", err)
	}

	captcha := buildCaptcha(cfg.recaptchaMinScore, logger)

	flow := auth.NewRecoveryFlow(txm, verifier, dispatcher, logger, auth.RecoveryConfig{
		RequestTTL: cfg.requestTTL,
		ResetTTL:   cfg.resetTTL,
	})
	svc := auth.NewService(users, sessions, users, verifier, tokens, flow, captcha, dispatcher, logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Start observability server if configured.
	var obsServer ObservabilityServer
	if cfg.metricsAddr != "" {
		obsServer = deps.ObservabilityServerFactory(cfg.metricsAddr, func() bool {
			pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer pingCancel()
			return pool.Ping(pingCtx) == nil
		})
		obsErrChan, err := obsServer.Start()
		if err != nil {
			return fmt.Errorf("failed to start observability server: %w", err)
		}
		go monitorServerErrors(ctx, cancel, obsErrChan, "observability")
		logger.Info("observability server started", "addr", obsServer.Addr())
	}

	var metrics *observability.Metrics
	if obsServer != nil {
		metrics = obsServer.Metrics()
	}
	api := httpapi.NewServer(svc, metrics, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		if serveErr := api.Listen(cfg.listenAddr); serveErr != nil {
			errChan <- serveErr
		}
	}()

	cmd.Println("API server started")
	logger.Info("api server ready", "addr", cfg.listenAddr)

	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errChan:
		return fmt.Errorf("api server error: %w", err)
	case <-ctx.Done():
		logger.Info("context cancelled, shutting down")
	}

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := api.Shutdown(shutdownCtx); err != nil {
		logger.Warn("error stopping api server", "error", err)
	}
	if obsServer != nil {
		if err := obsServer.Stop(shutdownCtx); err != nil {
			logger.Warn("error stopping observability server", "error", err)
		}
	}

	logger.Info("shutdown complete")
	return nil
}

// buildCaptcha selects the captcha verifier. Without a configured secret
// every token is accepted, which is only suitable for development.
func buildCaptcha(minScore float64, logger *slog.Logger) auth.CaptchaVerifier {
	secret := os.Getenv("RECAPTCHA_SECRET")
	if secret == "" {
		logger.Warn("RECAPTCHA_SECRET not set, captcha verification disabled")
		return auth.AllowAllCaptcha{}
	}
	return auth.NewRecaptchaVerifier(secret, minScore)
}

// buildNotifier constructs the mail notifier from the serve config.
func buildNotifier(cfg *serveConfig) (auth.Notifier, error) {
	var provider mail.Provider
	switch cfg.mailProvider {
	case "mailgun":
		apiKey := os.Getenv("MAILGUN_API_KEY")
		if apiKey == "" {
			return nil, oops.Code("CONFIG_INVALID").Errorf("MAILGUN_API_KEY environment variable is required")
		}
		provider = mail.NewMailgunProvider(cfg.mailgunDomain, apiKey, cfg.mailFrom)
	case "smtp":
		var smtpAuth smtp.Auth
		if user := os.Getenv("SMTP_USERNAME"); user != "" {
			smtpAuth = smtp.PlainAuth("", user, os.Getenv("SMTP_PASSWORD"), smtpHost(cfg.smtpAddr))
		}
		provider = mail.NewSMTPProvider(cfg.smtpAddr, smtpAuth, cfg.mailFrom)
	default:
		provider = &logProvider{}
	}
	return mail.NewMailer(provider, cfg.mailFrom, slog.Default())
}

// smtpHost strips the port from a host:port address.
func smtpHost(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[:i]
		}
	}
	return addr
}

// logProvider writes messages to the log instead of sending them.
type logProvider struct{}

func (*logProvider) Send(_ context.Context, msg mail.Message) error {
	slog.Info("mail (log provider)",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.TextBody,
	)
	return nil
}

// monitorServerErrors monitors a server's error channel and cancels the
// context on error so a failed server triggers graceful shutdown.
// It exits when an error arrives, the channel closes, or the context is
// cancelled.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errCh <-chan error, serverName string) {
	select {
	case err, ok := <-errCh:
		if !ok {
			return
		}
		if err != nil {
			slog.Error("server error, triggering shutdown",
				"server", serverName,
				"error", err,
			)
			cancel()
		}
	case <-ctx.Done():
	}
}
