// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

// Package auth implements authentication and credential recovery.
//
// # Domain Types
//
// Domain types (User, RecoveryRequest, ResetRecord, SessionRecord) should
// be created using their respective constructors:
//   - NewUser - creates a User with a normalized email and password hash
//   - NewRecoveryRequest - creates a request with a fresh random code and TTL
//   - NewResetRecord - opens the reset window for a verified request
//   - NewSessionRecord - creates an open session for a user
//
// Direct struct initialization bypasses normalization and may create
// invalid state. Repository implementations receive pre-built types from
// these constructors.
//
// # Services
//
// Service types coordinate domain operations:
//   - Service - login, registration, token refresh, recovery orchestration
//   - RecoveryFlow - the three-stage recovery state machine
//   - Dispatcher - fire-and-forget notification delivery
//
// All errors crossing the service boundary carry a stable business code;
// see Failure, CodeOf, and KindOf.
package auth
