// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package httpapi

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/uteqlabs/authcore/internal/auth"
)

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	res, err := s.svc.Login(c.UserContext(), req.Username, req.Password, req.RecaptchaToken, c.IP())
	if s.metrics != nil {
		s.metrics.RecordLogin(outcomeCode(err, auth.CodeLoginOK))
	}
	if err != nil {
		return s.fail(c, err)
	}

	return s.ok(c, http.StatusOK, auth.CodeLoginOK, "login successful", loginData{
		User:         toUserData(res.User),
		SessionID:    res.SessionID.String(),
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	})
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	user, err := s.svc.Register(c.UserContext(), req.FullName, req.Email, req.Username, req.Password, req.CountryID, req.RecaptchaToken, c.IP())
	if s.metrics != nil {
		s.metrics.RecordRegistration(outcomeCode(err, auth.CodeRegisterOK))
	}
	if err != nil {
		return s.fail(c, err)
	}

	return s.ok(c, http.StatusCreated, auth.CodeRegisterOK, "user registered", toUserData(user))
}

func (s *Server) handleRequestRecovery(c *fiber.Ctx) error {
	var req recoverRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	start, err := s.svc.RequestRecovery(c.UserContext(), req.Email, req.RecaptchaToken, c.IP())
	if s.metrics != nil {
		s.metrics.RecordRecovery("request", outcomeCode(err, auth.CodeRecoveryRequested))
	}
	if err != nil {
		return s.fail(c, err)
	}

	return s.ok(c, http.StatusOK, auth.CodeRecoveryRequested, "recovery code generated", recoveryData{
		RequestID: start.RequestID.String(),
		Code:      start.Code,
		ExpiresAt: start.ExpiresAt,
	})
}

func (s *Server) handleVerifyCode(c *fiber.Ctx) error {
	var req verifyCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	verified, err := s.svc.VerifyRecoveryCode(c.UserContext(), req.RequestID, req.Code, req.RecaptchaToken, c.IP())
	if s.metrics != nil {
		s.metrics.RecordRecovery("verify", outcomeCode(err, auth.CodeCodeVerified))
	}
	if err != nil {
		return s.fail(c, err)
	}

	return s.ok(c, http.StatusOK, auth.CodeCodeVerified, "code verified", verifyData{
		RequestID:      verified.RequestID.String(),
		ResetExpiresAt: verified.ResetExpiresAt,
	})
}

func (s *Server) handleResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	err := s.svc.ResetPassword(c.UserContext(), req.RequestID, req.NewPassword, req.RecaptchaToken, c.IP())
	if s.metrics != nil {
		s.metrics.RecordRecovery("reset", outcomeCode(err, auth.CodePasswordUpdated))
	}
	if err != nil {
		return s.fail(c, err)
	}

	return s.ok(c, http.StatusOK, auth.CodePasswordUpdated, "password updated", nil)
}

func (s *Server) handleRefresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	access, err := s.svc.RefreshToken(c.UserContext(), req.RefreshToken)
	if err != nil {
		return s.fail(c, err)
	}

	return s.ok(c, http.StatusOK, auth.CodeLoginOK, "token refreshed", refreshData{
		AccessToken: access,
	})
}

func (s *Server) handleLogout(c *fiber.Ctx) error {
	var req logoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	if err := s.svc.Logout(c.UserContext(), req.AccessToken); err != nil {
		return s.fail(c, err)
	}

	return s.ok(c, http.StatusOK, auth.CodeLogoutOK, "session closed", nil)
}

func toUserData(u *auth.User) userData {
	return userData{
		ID:           u.ID.String(),
		FullName:     u.FullName,
		Email:        u.Email,
		Username:     u.Username,
		CountryID:    u.CountryID,
		RegisteredAt: u.RegisteredAt,
	}
}

// outcomeCode picks the metric label for an operation result.
func outcomeCode(err error, successCode string) string {
	if err == nil {
		return successCode
	}
	return auth.CodeOf(err)
}
