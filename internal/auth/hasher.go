// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package auth

import (
	"context"
	"strings"

	"github.com/samber/oops"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for the modern hash scheme.
const BcryptCost = 12

// modernHashPrefixes identify bcrypt hashes. Anything else is a legacy
// hash whose comparison algorithm belongs to the credential store.
var modernHashPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// IsModernHash reports whether hash carries a recognizable bcrypt prefix.
func IsModernHash(hash string) bool {
	for _, p := range modernHashPrefixes {
		if strings.HasPrefix(hash, p) {
			return true
		}
	}
	return false
}

// LegacyProbe checks a raw password against a legacy hash using the
// store's own equality logic. The verifier never interprets legacy
// hashes itself; the algorithm is unspecified and owned by the store.
type LegacyProbe func(ctx context.Context, rawPassword string) (bool, error)

// Verifier decides whether a plaintext password matches a stored hash,
// dispatching on the hash scheme recoverable from its prefix. It is a pure
// decision function with no side effects; passwords are never logged.
type Verifier struct {
	cost int
}

// NewVerifier creates a Verifier hashing at BcryptCost.
func NewVerifier() *Verifier {
	return &Verifier{cost: BcryptCost}
}

// Hash produces a bcrypt hash of password under the modern scheme.
func (v *Verifier) Hash(password string) (string, error) {
	if password == "" {
		return "", Failure(KindValidation, CodePasswordInvalid, "password cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), v.cost)
	if err != nil {
		return "", oops.Code(CodeInternal).With("operation", "bcrypt hash").Wrap(err)
	}
	return string(hashed), nil
}

// Verify checks rawPassword against storedHash. Modern hashes are compared
// directly; legacy hashes are delegated to probe. A nil probe with a
// legacy hash is an error, never a silent mismatch.
func (v *Verifier) Verify(ctx context.Context, rawPassword, storedHash string, probe LegacyProbe) (bool, error) {
	if storedHash == "" {
		return false, oops.Code(CodeInternal).Errorf("stored hash cannot be empty")
	}
	if IsModernHash(storedHash) {
		err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(rawPassword))
		switch {
		case err == nil:
			return true, nil
		case err == bcrypt.ErrMismatchedHashAndPassword:
			return false, nil
		default:
			return false, oops.Code(CodeInternal).With("operation", "bcrypt compare").Wrap(err)
		}
	}
	if probe == nil {
		return false, oops.Code(CodeInternal).Errorf("legacy hash requires a probe")
	}
	return probe(ctx, rawPassword)
}

// Matches compares rawPassword against a modern hash only. Legacy entries
// return false; callers that need legacy semantics must use Verify with a
// probe. Used by the history guard, where a legacy entry is skipped
// rather than misjudged.
func (v *Verifier) Matches(rawPassword, storedHash string) bool {
	if !IsModernHash(storedHash) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(rawPassword)) == nil
}
