package jwtmw

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain sets Gin to test mode before running tests.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// stubVerifier records the token it was given and returns a fixed result.
type stubVerifier struct {
	userID uint
	err    error
	got    string
}

func (s *stubVerifier) Verify(token string) (uint, error) {
	s.got = token
	return s.userID, s.err
}

// TestAuthRequired_MissingBearerToken verifies 401 when the bearer prefix is missing or malformed.
func TestAuthRequired_MissingBearerToken(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
	}{
		{"no header", ""},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"bearer lowercase", "bearer token123"},
		{"no space after Bearer", "Bearertoken123"},
		{"empty token", "Bearer    "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &stubVerifier{userID: 1}

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				c.Request.Header.Set("Authorization", tt.authHeader)
			}

			AuthRequired(v)(c)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.True(t, c.IsAborted(), "expected request to be aborted")
			assert.JSONEq(t, `{"error":"missing bearer token"}`, w.Body.String())
			assert.Empty(t, v.got, "verifier should not be called")
		})
	}
}

// TestAuthRequired_RejectedToken verifies 401 when the verifier rejects the credential.
func TestAuthRequired_RejectedToken(t *testing.T) {
	v := &stubVerifier{err: errors.New("expired")}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "Bearer sometoken")

	AuthRequired(v)(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
	assert.JSONEq(t, `{"error":"invalid token"}`, w.Body.String())
	assert.Equal(t, "sometoken", v.got)
	_, exists := c.Get(ContextUserID)
	assert.False(t, exists)
}

// TestAuthRequired_ValidToken verifies the identity is stored in the context and the chain continues.
func TestAuthRequired_ValidToken(t *testing.T) {
	m := NewManager("test-secret", "", time.Hour)

	tests := []struct {
		name   string
		userID uint
	}{
		{"user id 1", 1},
		{"user id 42", 42},
		{"user id 999", 999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := m.GenerateToken(tt.userID, "test@example.com")
			require.NoError(t, err)

			var seen uint
			r := gin.New()
			r.GET("/protected", AuthRequired(m), func(c *gin.Context) {
				seen = c.GetUint(ContextUserID)
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, tt.userID, seen)
		})
	}
}

// TestAuthRequired_ForeignToken verifies a token signed with another secret never reaches the handler.
func TestAuthRequired_ForeignToken(t *testing.T) {
	foreign := NewManager("other-secret", "", time.Hour)
	token, err := foreign.GenerateToken(1, "test@example.com")
	require.NoError(t, err)

	called := false
	r := gin.New()
	r.GET("/protected", AuthRequired(NewManager("test-secret", "", time.Hour)), func(c *gin.Context) {
		called = true
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
}
