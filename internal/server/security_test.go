package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tebnews/TEBNews_Go/internal/auth"
)

func TestAPIKeyMiddleware(t *testing.T) {
	apiKey := "secret-key"
	middleware := APIKeyMiddleware(apiKey, nil, NewSuspiciousActivityDetector())

	tests := []struct {
		name           string
		providedKey    string
		expectedStatus int
	}{
		{
			name:           "Valid API Key",
			providedKey:    apiKey,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid API Key",
			providedKey:    "wrong-key",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Missing API Key",
			providedKey:    "",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/v1/admin/users", nil)
			if tt.providedKey != "" {
				req.Header.Set("X-API-Key", tt.providedKey)
			}
			rec := httptest.NewRecorder()

			handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}

type stubVerifier struct {
	id  uuid.UUID
	err error
}

func (s stubVerifier) Parse(string) (uuid.UUID, error) {
	return s.id, s.err
}

func TestBearerAuthMiddleware(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		header         string
		verifier       stubVerifier
		expectedStatus int
	}{
		{name: "Valid Token", header: "Bearer good", verifier: stubVerifier{id: userID}, expectedStatus: http.StatusOK},
		{name: "Missing Header", header: "", verifier: stubVerifier{id: userID}, expectedStatus: http.StatusUnauthorized},
		{name: "Wrong Scheme", header: "Basic dXNlcjpwYXNz", verifier: stubVerifier{id: userID}, expectedStatus: http.StatusUnauthorized},
		{name: "Empty Token", header: "Bearer ", verifier: stubVerifier{id: userID}, expectedStatus: http.StatusUnauthorized},
		{name: "Rejected Token", header: "Bearer forged", verifier: stubVerifier{err: auth.ErrInvalidToken}, expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen uuid.UUID
			handler := BearerAuthMiddleware(tt.verifier, nil, NewSuspiciousActivityDetector())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = auth.UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("GET", "/api/v1/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, userID, seen)
			}
		})
	}
}

func TestBearerAuthMiddleware_RecordsFailures(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	handler := BearerAuthMiddleware(stubVerifier{err: auth.ErrInvalidToken}, nil, detector)(http.NotFoundHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/api/v1/me", nil)
		req.RemoteAddr = "10.0.0.9:5555"
		req.Header.Set("Authorization", "Bearer nope")
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	detector.mu.Lock()
	defer detector.mu.Unlock()
	assert.Equal(t, 3, detector.failedAuthByIP["10.0.0.9"])
}

func TestExtractIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:4000"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 198.51.100.2")

	assert.Equal(t, "10.0.0.1", extractIP(req, nil), "untrusted peers cannot spoof the client ip")
	assert.Equal(t, "198.51.100.2", extractIP(req, []string{"10.0.0.1"}))
}
