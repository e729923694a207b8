package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestServer(ja *jwtauth.JWTAuth) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return jwtauth.Verifier(ja)(AuthRequired(ja)(ok))
}

func encodeAuthTestToken(t *testing.T, ja *jwtauth.JWTAuth, claims map[string]interface{}) string {
	_, tokenString, err := ja.Encode(claims)
	require.NoError(t, err)
	return tokenString
}

func TestAuthRequired(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil)
	handler := authTestServer(ja)

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{
			name: "access token passes",
			token: encodeAuthTestToken(t, ja, map[string]interface{}{
				"user_id": "user-1", "type": "access",
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			wantStatus: http.StatusOK,
		},
		{
			name: "refresh token rejected",
			token: encodeAuthTestToken(t, ja, map[string]interface{}{
				"user_id": "user-1", "type": "refresh",
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "expired token rejected",
			token: encodeAuthTestToken(t, ja, map[string]interface{}{
				"user_id": "user-1", "type": "access",
				"exp": time.Now().Add(-time.Hour).Unix(),
			}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing token rejected",
			token:      "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "token without type claim rejected",
			token: encodeAuthTestToken(t, ja, map[string]interface{}{
				"user_id": "user-1",
				"exp":     time.Now().Add(time.Hour).Unix(),
			}),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
