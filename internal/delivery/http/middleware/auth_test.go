package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	userID string
	err    error
}

func (v *stubVerifier) Verify(token string) (string, error) {
	if v.err != nil {
		return "", v.err
	}
	return v.userID, nil
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		verifier   *stubVerifier
		wantStatus int
		wantUserID string
	}{
		{
			name:       "valid token",
			header:     "Bearer good-token",
			verifier:   &stubVerifier{userID: "user-1"},
			wantStatus: http.StatusOK,
			wantUserID: "user-1",
		},
		{
			name:       "missing header",
			header:     "",
			verifier:   &stubVerifier{userID: "user-1"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic abc123",
			verifier:   &stubVerifier{userID: "user-1"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty token",
			header:     "Bearer ",
			verifier:   &stubVerifier{userID: "user-1"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "verifier rejects",
			header:     "Bearer bad-token",
			verifier:   &stubVerifier{err: errors.New("expired")},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			var gotUserID string
			next := func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotUserID, _ = UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}

			req := httptest.NewRequest(http.MethodGet, "/events/ev-1/tickets/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			RequireAuth(tt.verifier)(next)(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.True(t, called)
				assert.Equal(t, tt.wantUserID, gotUserID)
			} else {
				assert.False(t, called, "next must not run on auth failure")
			}
		})
	}
}

func TestUserIDFromContextAbsent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := UserIDFromContext(req.Context())
	assert.False(t, ok)
}
