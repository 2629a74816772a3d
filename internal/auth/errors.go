// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package auth

import (
	"errors"

	"github.com/samber/oops"
)

// ErrNotFound is returned by repositories when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Kind classifies a business failure. The HTTP layer maps kinds to status
// codes; the code itself is the contract surface for clients.
type Kind string

// Failure kinds.
const (
	KindValidation     Kind = "validation"
	KindAuthentication Kind = "authentication"
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
	KindExpired        Kind = "expired"
	KindInternal       Kind = "internal"
)

// Business codes. These are a stable contract with API clients and must not
// change meaning.
const (
	// Login.
	CodeUsernameInvalid   = "USNVLD"
	CodePasswordInvalid   = "PSWNVD"
	CodeUserNotFound      = "USRNEX"
	CodePasswordIncorrect = "PSWINC"
	CodeLoginOK           = "USRCCT"
	CodeLogoutOK          = "SSNCLS"

	// Register. NUSNVD, not USNVLD: the original contract distinguishes a
	// malformed new username from a malformed login username.
	CodeFullNameInvalid    = "FNMNVD"
	CodeEmailInvalid       = "EMLNVD"
	CodeNewUsernameInvalid = "NUSNVD"
	CodeCountryInvalid     = "CTRNVD"
	CodeEmailTaken         = "EMLYRG"
	CodeUsernameTaken      = "NUSYRG"
	CodeRegisterOK         = "USRREX"

	// Recovery request.
	CodeEmailNotFound     = "EMLNEX"
	CodeActiveCodeExists  = "CDNEXP"
	CodeActiveResetExists = "SUNEXP"
	CodeRecoveryRequested = "CODGEN"

	// Code verification.
	CodeRequestIDBlank   = "CRQNVD"
	CodeGeneratedBlank   = "CGNNVD"
	CodeRequestNotFound  = "CRQNEX"
	CodeRequestExpired   = "CRQEXP"
	CodeCodeMismatch     = "CDNIGL"
	CodeRequestIDInvalid = "CRQINV"
	CodeCodeVerified     = "CRQCOR"

	// Password reset.
	CodeNewPasswordBlank = "PASNVD"
	CodeResetExpired     = "SLYEXP"
	CodePasswordReused   = "PSWEQS"
	CodePasswordUpdated  = "PASUEX"

	// Cross-cutting.
	CodeCaptchaFailed = "RCPTER"
	CodeInternal      = "ERRORE"
)

// Failure builds a business error carrying a stable code and a kind tag.
func Failure(kind Kind, code, format string, args ...any) error {
	return oops.Code(code).With("kind", string(kind)).Errorf(format, args...)
}

// Internal wraps an unexpected error. The underlying cause stays available
// for logging but is never exposed to API clients.
func Internal(err error) error {
	return oops.Code(CodeInternal).With("kind", string(KindInternal)).Wrap(err)
}

// CodeOf extracts the business code from err, defaulting to ERRORE for
// non-business errors.
func CodeOf(err error) string {
	if oopsErr, ok := oops.AsOops(err); ok {
		if code, ok := oopsErr.Code().(string); ok && code != "" {
			return code
		}
	}
	return CodeInternal
}

// KindOf extracts the failure kind from err, defaulting to internal.
func KindOf(err error) Kind {
	if oopsErr, ok := oops.AsOops(err); ok {
		if kind, ok := oopsErr.Context()["kind"].(string); ok {
			return Kind(kind)
		}
	}
	return KindInternal
}

// IsBusiness reports whether err carries a non-internal business kind.
func IsBusiness(err error) bool {
	return KindOf(err) != KindInternal
}
