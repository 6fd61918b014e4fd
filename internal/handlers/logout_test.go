package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/DuJao22/Senhas-Wani/internal/jwt"
	"github.com/DuJao22/Senhas-Wani/internal/middlewares"
	"github.com/DuJao22/Senhas-Wani/internal/models"
)

func TestLogoutHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockLogouter(ctrl)
	handler := NewLogoutHandler(mockSvc)

	t.Run("revokes session and clears cookie", func(t *testing.T) {
		mockSvc.EXPECT().Logout(gomock.Any(), "sid-1").Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		req = req.WithContext(middlewares.SetSessionIDToContext(req.Context(), "sid-1"))
		w := httptest.NewRecorder()

		handler(w, req)

		resp := w.Result()
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body LogoutResponse
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Logged out successfully", body.Message)

		var sessionCookie *http.Cookie
		for _, c := range resp.Cookies() {
			if c.Name == jwt.SessionCookie {
				sessionCookie = c
			}
		}
		assert.NotNil(t, sessionCookie)
		assert.Empty(t, sessionCookie.Value)
		assert.Equal(t, -1, sessionCookie.MaxAge)
	})

	t.Run("no session id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("revocation error", func(t *testing.T) {
		mockSvc.EXPECT().Logout(gomock.Any(), "sid-2").Return(errors.New("redis error"))

		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		req = req.WithContext(middlewares.SetSessionIDToContext(req.Context(), "sid-2"))
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHomeHandler(t *testing.T) {
	handler := NewHomeHandler()

	t.Run("greets the authenticated user", func(t *testing.T) {
		identity := models.Identity{
			UserID:   uuid.New(),
			Username: "admin",
			FullName: "System Administrator",
			Unit:     models.UnitBoth,
			Role:     models.RoleAdmin,
		}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(middlewares.SetIdentityToContext(req.Context(), identity))
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body HomeResponse
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "Welcome, System Administrator", body.Message)
		assert.Equal(t, identity.Username, body.Identity.Username)
	})

	t.Run("no identity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
