// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/taibuivan/erapp/internal/platform/constants"
	"github.com/taibuivan/erapp/internal/platform/ctxutil"
	"github.com/taibuivan/erapp/internal/platform/middleware"
	"github.com/taibuivan/erapp/internal/platform/sec"
)

type stubVerifier map[string]*sec.AuthClaims

func (stub stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if claims, ok := stub[token]; ok {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

var verifier = stubVerifier{
	"user-token":  {UserID: "u-1", Role: string(sec.RoleUser)},
	"admin-token": {UserID: "a-1", Role: string(sec.RoleAdmin)},
}

// echoUser writes the authenticated user id, or "anonymous".
var echoUser = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
	if claims := ctxutil.GetAuthUser(request.Context()); claims != nil {
		_, _ = writer.Write([]byte(claims.UserID))
		return
	}
	_, _ = writer.Write([]byte("anonymous"))
})

func call(handler http.Handler, authorization string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		request.Header.Set("Authorization", authorization)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestAuthenticate covers anonymous, malformed, rejected and accepted credentials.
*/
func TestAuthenticate(t *testing.T) {
	handler := middleware.Authenticate(verifier)(echoUser)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"anonymous", "", http.StatusOK, "anonymous"},
		{"valid", "Bearer user-token", http.StatusOK, "u-1"},
		{"lowercase_scheme", "bearer admin-token", http.StatusOK, "a-1"},
		{"wrong_scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, ""},
		{"rejected", "Bearer forged", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := call(handler, tt.header)
			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, recorder.Body.String())
			}
		})
	}
}

/*
TestRequireRole separates anonymous, user and admin callers.
*/
func TestRequireRole(t *testing.T) {
	handler := middleware.Authenticate(verifier)(middleware.RequireRole(sec.RoleAdmin)(echoUser))

	assert.Equal(t, http.StatusUnauthorized, call(handler, "").Code)
	assert.Equal(t, http.StatusForbidden, call(handler, "Bearer user-token").Code)
	assert.Equal(t, http.StatusOK, call(handler, "Bearer admin-token").Code)

	authOnly := middleware.Authenticate(verifier)(middleware.RequireAuth(echoUser))
	assert.Equal(t, http.StatusUnauthorized, call(authOnly, "").Code)
	assert.Equal(t, http.StatusOK, call(authOnly, "Bearer user-token").Code)
}

/*
TestRateLimit rejects requests beyond the burst per client and stops its
janitor when the context ends.
*/
func TestRateLimit(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx, 0.001, 2)(echoUser)

	send := func(ip string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constants.HeaderXRealIP, ip)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)

	limited := send("10.0.0.1")
	require.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "1", limited.Header().Get("Retry-After"))
	assert.Contains(t, limited.Body.String(), "RATE_LIMITED")

	assert.Equal(t, http.StatusOK, send("10.0.0.2").Code)

	cancel()
}

/*
TestRequestID keeps a caller-supplied ID and generates one otherwise.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "req-42")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "req-42", seen)
	assert.Equal(t, "req-42", recorder.Header().Get(constants.HeaderXRequestID))

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))
}

/*
TestPanicRecovery converts a handler panic into a 500.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"An unexpected error occurred","code":"INTERNAL_ERROR"}`, recorder.Body.String())
}
