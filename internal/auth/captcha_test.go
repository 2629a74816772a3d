// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uteqlabs/authcore/internal/auth"
	"github.com/uteqlabs/authcore/pkg/errutil"
)

func TestAllowAllCaptcha(t *testing.T) {
	assert.NoError(t, auth.AllowAllCaptcha{}.Verify(context.Background(), "", ""))
}

func TestRecaptchaVerifier_Verify(t *testing.T) {
	ctx := context.Background()

	newServer := func(t *testing.T, response string) *httptest.Server {
		t.Helper()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "test-secret", r.PostForm.Get("secret"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(response))
		}))
		t.Cleanup(srv.Close)
		return srv
	}

	t.Run("success response passes", func(t *testing.T) {
		srv := newServer(t, `{"success":true,"score":0.9}`)
		v := auth.NewRecaptchaVerifierForEndpoint("test-secret", 0.5, srv.URL)
		assert.NoError(t, v.Verify(ctx, "some-token", "10.0.0.1"))
	})

	t.Run("unsuccessful response fails", func(t *testing.T) {
		srv := newServer(t, `{"success":false,"error-codes":["invalid-input-response"]}`)
		v := auth.NewRecaptchaVerifierForEndpoint("test-secret", 0, srv.URL)
		err := v.Verify(ctx, "some-token", "")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, auth.CodeCaptchaFailed)
	})

	t.Run("low score fails", func(t *testing.T) {
		srv := newServer(t, `{"success":true,"score":0.1}`)
		v := auth.NewRecaptchaVerifierForEndpoint("test-secret", 0.5, srv.URL)
		err := v.Verify(ctx, "some-token", "")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, auth.CodeCaptchaFailed)
	})

	t.Run("blank token fails without calling out", func(t *testing.T) {
		v := auth.NewRecaptchaVerifier("test-secret", 0)
		err := v.Verify(ctx, "   ", "")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, auth.CodeCaptchaFailed)
	})

	t.Run("unreachable endpoint fails closed", func(t *testing.T) {
		v := auth.NewRecaptchaVerifierForEndpoint("test-secret", 0, "http://127.0.0.1:1")
		err := v.Verify(ctx, "some-token", "")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, auth.CodeCaptchaFailed)
	})
}
