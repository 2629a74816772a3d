// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

// Package httpapi exposes the authentication operations over HTTP.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/oops"

	"github.com/uteqlabs/authcore/internal/auth"
	"github.com/uteqlabs/authcore/internal/observability"
	"github.com/uteqlabs/authcore/pkg/errutil"
)

// Server serves the authentication HTTP API.
type Server struct {
	app     *fiber.App
	svc     *auth.Service
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewServer creates the API server. metrics may be nil when
// observability is disabled.
func NewServer(svc *auth.Service, metrics *observability.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	app := fiber.New(fiber.Config{
		AppName:               "authcore",
		DisableStartupMessage: true,
	})

	s := &Server{
		app:     app,
		svc:     svc,
		metrics: metrics,
		logger:  logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.app.Group("/api/auth")
	api.Post("/login", s.handleLogin)
	api.Post("/register", s.handleRegister)
	api.Post("/request-recovery", s.handleRequestRecovery)
	api.Post("/verify-code", s.handleVerifyCode)
	api.Post("/reset-password", s.handleResetPassword)
	api.Post("/refresh", s.handleRefresh)
	api.Post("/logout", s.handleLogout)
}

// Listen blocks serving on addr.
func (s *Server) Listen(addr string) error {
	if err := s.app.Listen(addr); err != nil {
		return oops.With("addr", addr).Wrap(err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		return oops.With("operation", "shutdown api server").Wrap(err)
	}
	return nil
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// statusFor maps a failure kind to an HTTP status.
func statusFor(kind auth.Kind) int {
	switch kind {
	case auth.KindValidation:
		return http.StatusBadRequest
	case auth.KindAuthentication:
		return http.StatusUnauthorized
	case auth.KindNotFound:
		return http.StatusNotFound
	case auth.KindConflict:
		return http.StatusConflict
	case auth.KindExpired:
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// fail renders a failure. Internal causes are logged but never exposed;
// clients see only the stable code.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	kind := auth.KindOf(err)
	code := auth.CodeOf(err)
	if kind == auth.KindInternal {
		errutil.LogError(s.logger, "request failed", err)
		return c.Status(http.StatusInternalServerError).JSON(apiResponse{
			Code:    auth.CodeInternal,
			Message: "internal error",
		})
	}
	return c.Status(statusFor(kind)).JSON(apiResponse{
		Code:    code,
		Message: err.Error(),
	})
}

func (s *Server) ok(c *fiber.Ctx, status int, code, message string, data any) error {
	return c.Status(status).JSON(apiResponse{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(http.StatusBadRequest).JSON(apiResponse{
		Code:    auth.CodeInternal,
		Message: "request body is not valid JSON",
	})
}
