// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/fleetadmin/internal/platform/apperr"
	"github.com/taibuivan/fleetadmin/internal/platform/ctxutil"
	"github.com/taibuivan/fleetadmin/internal/platform/middleware"
	"github.com/taibuivan/fleetadmin/internal/platform/sec"
	"github.com/taibuivan/fleetadmin/internal/platform/session"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

// resolverFunc adapts a function to middleware.SessionResolver.
type resolverFunc func(ctx context.Context, header string) (*session.Session, error)

func (fn resolverFunc) Resolve(ctx context.Context, header string) (*session.Session, error) {
	return fn(ctx, header)
}

type authorizerFunc func(ctx context.Context, current *session.Session, required sec.UserRole) error

func (fn authorizerFunc) Authorize(ctx context.Context, current *session.Session, required sec.UserRole) error {
	return fn(ctx, current, required)
}

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
	writer.WriteHeader(http.StatusNoContent)
})

/*
TestAuthenticate verifies that resolved sessions reach the handler and rejections do not.
*/
func TestAuthenticate(t *testing.T) {
	resolver := resolverFunc(func(_ context.Context, header string) (*session.Session, error) {
		switch header {
		case "Bearer good":
			return &session.Session{UserID: "user-1", RawToken: "good"}, nil
		case "Bearer revoked":
			return nil, apperr.New(apperr.KindBlacklisted, "Blacklisted token")
		case "Bearer down":
			return nil, apperr.Wrap(apperr.KindStoreUnavailable, "Service unavailable", assert.AnError)
		default:
			return nil, apperr.New(apperr.KindMissingToken, "Please provide a token")
		}
	})

	var seen *session.Session
	handler := middleware.Authenticate(resolver)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetSession(request.Context())
		writer.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{"accepted", "Bearer good", http.StatusNoContent, ""},
		{"missing", "", http.StatusUnauthorized, "Please provide a token"},
		{"blacklisted", "Bearer revoked", http.StatusUnauthorized, "Blacklisted token"},
		{"store_down", "Bearer down", http.StatusInternalServerError, "Service unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			request := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code)
			if tt.message == "" {
				require.NotNil(t, seen)
				assert.Equal(t, "user-1", seen.UserID)
				return
			}

			assert.Nil(t, seen)
			body := decode(t, recorder)
			assert.Equal(t, "fail", body.Status)
			assert.Equal(t, tt.message, body.Message)
			assert.Empty(t, body.Data)
			assert.NotContains(t, recorder.Body.String(), assert.AnError.Error())
		})
	}
}

/*
TestRequireRole checks that the authorizer verdict is rendered through the envelope.
*/
func TestRequireRole(t *testing.T) {
	authorizer := authorizerFunc(func(_ context.Context, current *session.Session, required sec.UserRole) error {
		if current.UserID == "admin" {
			return nil
		}
		return apperr.Forbidden("Insufficient permissions")
	})
	handler := middleware.RequireRole(authorizer, sec.RoleAdmin)(okHandler)

	for userID, status := range map[string]int{"admin": http.StatusNoContent, "driver": http.StatusForbidden} {
		request := httptest.NewRequest(http.MethodGet, "/users", nil)
		request = request.WithContext(ctxutil.WithSession(request.Context(), &session.Session{UserID: userID}))
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request)
		assert.Equal(t, status, recorder.Code, userID)
	}
}

/*
TestStructuredLogger_UserID verifies the access log names the authenticated user.
*/
func TestStructuredLogger_UserID(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	resolver := resolverFunc(func(context.Context, string) (*session.Session, error) {
		return &session.Session{UserID: "user-42"}, nil
	})
	handler := middleware.StructuredLogger(logger)(middleware.Authenticate(resolver)(okHandler))

	request := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	handler.ServeHTTP(httptest.NewRecorder(), request)

	assert.Contains(t, logs.String(), `"msg":"http_request_finished"`)
	assert.Contains(t, logs.String(), `"user_id":"user-42"`)
}

/*
TestRateLimit verifies that the burst is enforced per client IP.
*/
func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	handler := middleware.RateLimit(ctx, 0.001, 2)(okHandler)

	codes := make([]int, 0, 3)
	for range 3 {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = "10.0.0.1:5000"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		codes = append(codes, recorder.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	// A different client has its own bucket
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "10.0.0.2:5000"
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

/*
TestPanicRecovery verifies that a panicking handler yields a generic 500 envelope.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("database exploded at 10.1.2.3")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	body := decode(t, recorder)
	assert.Equal(t, "fail", body.Status)
	assert.Equal(t, "An unexpected error occurred", body.Message)
	assert.NotContains(t, recorder.Body.String(), "10.1.2.3")
}

/*
TestCORS_Preflight verifies allowed origins receive CORS headers.
*/
func TestCORS_Preflight(t *testing.T) {
	handler := middleware.CORS([]string{"https://fleet.example.com"})(okHandler)

	request := httptest.NewRequest(http.MethodOptions, "/api/v1/auth/login", nil)
	request.Header.Set("Origin", "https://fleet.example.com")
	request.Header.Set("Access-Control-Request-Method", http.MethodPost)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, "https://fleet.example.com", recorder.Header().Get("Access-Control-Allow-Origin"))

	request = httptest.NewRequest(http.MethodOptions, "/api/v1/auth/login", nil)
	request.Header.Set("Origin", "https://evil.example.com")
	request.Header.Set("Access-Control-Request-Method", http.MethodPost)
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", middleware.RealIP(request))

	request.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	assert.Equal(t, "203.0.113.5", middleware.RealIP(request))

	request.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", middleware.RealIP(request))
}
