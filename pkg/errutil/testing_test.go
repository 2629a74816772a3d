// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package errutil_test

import (
	"testing"

	"github.com/samber/oops"

	"github.com/uteqlabs/authcore/pkg/errutil"
)

func TestAssertErrorCode_MatchingCode(t *testing.T) {
	err := oops.Code("MY_CODE").Errorf("test error")
	// Should not fail
	errutil.AssertErrorCode(t, err, "MY_CODE")
}

func TestAssertFailure_MatchingCodeAndKind(t *testing.T) {
	err := oops.Code("MY_CODE").With("kind", "validation").Errorf("test error")
	// Should not fail
	errutil.AssertFailure(t, err, "MY_CODE", "validation")
}

func TestAssertErrorContext_MatchingKeyValue(t *testing.T) {
	err := oops.With("user_id", "123").Errorf("test error")
	// Should not fail
	errutil.AssertErrorContext(t, err, "user_id", "123")
}
