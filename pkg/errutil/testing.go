// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package errutil

import (
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// codeOf extracts the string business code from an oops error. oops stores
// the code as any; non-string codes read as empty.
func codeOf(t *testing.T, err error) string {
	t.Helper()
	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok, "expected oops error, got %T", err)
	code, _ := oopsErr.Code().(string)
	return code
}

// AssertErrorCode asserts that err is an oops error with the given business code.
func AssertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	assert.Equal(t, code, codeOf(t, err))
}

// AssertFailure asserts that err carries both the given business code and
// the given kind tag in its context.
func AssertFailure(t *testing.T, err error, code, kind string) {
	t.Helper()
	assert.Equal(t, code, codeOf(t, err))
	AssertErrorContext(t, err, "kind", kind)
}

// AssertErrorContext asserts that err is an oops error with the given context key/value.
func AssertErrorContext(t *testing.T, err error, key string, value any) {
	t.Helper()
	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok, "expected oops error, got %T", err)
	ctx := oopsErr.Context()
	assert.Contains(t, ctx, key)
	assert.Equal(t, value, ctx[key])
}
