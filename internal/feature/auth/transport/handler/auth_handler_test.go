package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user_backend/internal/feature/auth/usecase"
	"user_backend/internal/feature/users/domain/entity"
)

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	RegisterFunc func(ctx context.Context, name, email, password string) (*entity.User, string, error)
	LoginFunc    func(ctx context.Context, email, password string) (string, error)
	called       bool
}

// Register is the mock implementation of the Register method.
func (m *mockAuthUsecase) Register(ctx context.Context, name, email, password string) (*entity.User, string, error) {
	m.called = true
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, name, email, password)
	}
	return &entity.User{ID: 1, Name: name, Email: email}, "mock-token", nil
}

// Login is the mock implementation of the Login method.
func (m *mockAuthUsecase) Login(ctx context.Context, email, password string) (string, error) {
	m.called = true
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return "", errors.New("login failed") // Default: failure
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name             string
		requestBody      any
		mockRegisterFunc func(ctx context.Context, name, email, password string) (*entity.User, string, error)
		expectedStatus   int
		expectedBody     string
		expectCall       bool
	}{
		{
			name:        "success: user registration",
			requestBody: gin.H{"name": "Ana", "email": "ana@x.com", "password": "secret1"},
			mockRegisterFunc: func(ctx context.Context, name, email, password string) (*entity.User, string, error) {
				return &entity.User{ID: 7, Name: name, Email: email, Password: "$2a$hash"}, "jwt-token", nil
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"user":{"id":7,"name":"Ana","email":"ana@x.com"},"token":"jwt-token"}`,
			expectCall:     true,
		},
		{
			name:           "failure: missing name",
			requestBody:    gin.H{"email": "ana@x.com", "password": "secret1"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"the name field is required"}`,
		},
		{
			name:           "failure: invalid email address",
			requestBody:    gin.H{"name": "Ana", "email": "invalid-email", "password": "secret1"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"the email field must be a valid email address"}`,
		},
		{
			name:           "failure: short password",
			requestBody:    gin.H{"name": "Ana", "email": "ana@x.com", "password": "short"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"the password field must be at least 6 characters"}`,
		},
		{
			name:           "failure: malformed json",
			requestBody:    `{"name":`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request body"}`,
		},
		{
			name:        "failure: duplicate email",
			requestBody: gin.H{"name": "Ana", "email": "ana@x.com", "password": "secret1"},
			mockRegisterFunc: func(ctx context.Context, name, email, password string) (*entity.User, string, error) {
				return nil, "", usecase.ErrEmailAlreadyExists
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"email already exists"}`,
			expectCall:     true,
		},
		{
			name:           "failure: password longer than bcrypt accepts",
			requestBody:    gin.H{"name": "Ana", "email": "ana@x.com", "password": strings.Repeat("p", 80)},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"the password field must not be greater than 72 bytes"}`,
		},
		{
			name:        "failure: unexpected error is hidden",
			requestBody: gin.H{"name": "Ana", "email": "ana@x.com", "password": "secret1"},
			mockRegisterFunc: func(ctx context.Context, name, email, password string) (*entity.User, string, error) {
				return nil, "", errors.New("connection reset by peer")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"registration failed"}`,
			expectCall:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{RegisterFunc: tt.mockRegisterFunc}
			handler := NewAuthHandler(mockUC)

			router := gin.New()
			router.POST("/register", handler.Register)

			w := performJSON(t, router, http.MethodPost, "/register", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			assert.Equal(t, tt.expectCall, mockUC.called)
			assert.NotContains(t, w.Body.String(), "$2a$", "password hash must never be returned")
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    any
		mockLoginFunc  func(ctx context.Context, email, password string) (string, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success: user login",
			requestBody:    gin.H{"email": "test@example.com", "password": "password123"},
			mockLoginFunc:  func(ctx context.Context, email, password string) (string, error) { return "dummy-jwt-token", nil },
			expectedStatus: http.StatusOK,
			expectedBody:   `{"token":"dummy-jwt-token"}`,
		},
		{
			name:           "failure: invalid credentials",
			requestBody:    gin.H{"email": "wrong@example.com", "password": "wrong-password"},
			mockLoginFunc:  func(ctx context.Context, email, password string) (string, error) { return "", usecase.ErrInvalidCredentials },
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"invalid credentials"}`,
		},
		{
			name:           "failure: missing password is an authentication failure",
			requestBody:    gin.H{"email": "test@example.com"},
			mockLoginFunc:  func(ctx context.Context, email, password string) (string, error) { return "", usecase.ErrInvalidCredentials },
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"invalid credentials"}`,
		},
		{
			name:        "failure: token signing error is a server error",
			requestBody: gin.H{"email": "test@example.com", "password": "password123"},
			mockLoginFunc: func(ctx context.Context, email, password string) (string, error) {
				return "", errors.New("failed to generate token: bad key")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal server error"}`,
		},
		{
			name:        "failure: user lookup error is a server error",
			requestBody: gin.H{"email": "test@example.com", "password": "password123"},
			mockLoginFunc: func(ctx context.Context, email, password string) (string, error) {
				return "", fmt.Errorf("failed to look up user: %w", errors.New("connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal server error"}`,
		},
		{
			name:        "failure: wrapped invalid credentials stays 401",
			requestBody: gin.H{"email": "test@example.com", "password": "password123"},
			mockLoginFunc: func(ctx context.Context, email, password string) (string, error) {
				return "", fmt.Errorf("login: %w", usecase.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"invalid credentials"}`,
		},
		{
			name:           "failure: malformed json",
			requestBody:    `not json`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{LoginFunc: tt.mockLoginFunc}
			handler := NewAuthHandler(mockUC)

			router := gin.New()
			router.POST("/login", handler.Login)

			w := performJSON(t, router, http.MethodPost, "/login", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
