package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authentity "wellness_backend/internal/feature/auth/domain/entity"
	"wellness_backend/internal/feature/profile/usecase"
)

// mockProfileUsecase is a mock implementation of the ProfileUsecase interface.
type mockProfileUsecase struct {
	GetProfileFunc func(ctx context.Context, email string) (*usecase.Profile, error)
}

func (m *mockProfileUsecase) GetProfile(ctx context.Context, email string) (*usecase.Profile, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, email)
	}
	return &usecase.Profile{
		User:  &authentity.User{ID: 1, Email: email, Name: "Test User"},
		Dates: []string{},
	}, nil
}

func setupRouter(h *ProfileHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/profile", h.GetProfile)
	return router
}

func postJSON(router *gin.Engine, path string, body gin.H) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestProfileHandler_GetProfile(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    gin.H
		mockFunc       func(ctx context.Context, email string) (*usecase.Profile, error)
		expectedStatus int
	}{
		{
			name:           "success: profile fetched",
			requestBody:    gin.H{"email": "user@example.com"},
			mockFunc:       nil, // default mock returns a bundle
			expectedStatus: http.StatusOK,
		},
		{
			name:        "failure: missing email",
			requestBody: gin.H{},
			mockFunc: func(ctx context.Context, email string) (*usecase.Profile, error) {
				return nil, usecase.ErrEmailRequired
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "failure: unknown user",
			requestBody: gin.H{"email": "ghost@example.com"},
			mockFunc: func(ctx context.Context, email string) (*usecase.Profile, error) {
				return nil, usecase.ErrUserNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:        "failure: repository error",
			requestBody: gin.H{"email": "user@example.com"},
			mockFunc: func(ctx context.Context, email string) (*usecase.Profile, error) {
				return nil, errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewProfileHandler(&mockProfileUsecase{GetProfileFunc: tt.mockFunc})
			router := setupRouter(handler)

			w := postJSON(router, "/api/profile", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}

	t.Run("success body carries message and bundle", func(t *testing.T) {
		handler := NewProfileHandler(&mockProfileUsecase{})
		router := setupRouter(handler)

		w := postJSON(router, "/api/profile", gin.H{"email": "user@example.com"})

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Profile data fetched successfully", body["message"])
		data := body["data"].(map[string]any)
		user := data["user"].(map[string]any)
		assert.Equal(t, "user@example.com", user["email"])
		_, hasPassword := user["password"]
		assert.False(t, hasPassword, "password hash must never leave the server")
	})
}
