package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/DuJao22/Senhas-Wani/internal/jwt"
	"github.com/DuJao22/Senhas-Wani/internal/models"
)

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTokener := NewMockTokener(ctrl)
	mockSessions := NewMockSessionChecker(ctrl)

	identity := models.Identity{
		UserID:   uuid.New(),
		Username: "op1",
		FullName: "First Operator",
		Unit:     models.UnitA,
		Role:     models.RoleOperator,
	}
	claims := &jwt.Claims{SessionID: "sid-1", Identity: identity}

	var gotIdentity models.Identity
	var gotOK bool
	var gotSessionID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIdentity, gotOK = GetIdentityFromContext(r.Context())
		gotSessionID = GetSessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	mw := AuthMiddleware(mockTokener, mockSessions)(next)

	t.Run("valid token with active session passes through", func(t *testing.T) {
		mockTokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("token123", nil)
		mockTokener.EXPECT().GetClaims(gomock.Any(), "token123").Return(claims, nil)
		mockSessions.EXPECT().Exists(gomock.Any(), "sid-1").Return(true, nil)

		w := httptest.NewRecorder()
		mw.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, gotOK)
		assert.Equal(t, identity, gotIdentity)
		assert.Equal(t, "sid-1", gotSessionID)
	})

	t.Run("missing token", func(t *testing.T) {
		mockTokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("", errors.New("authorization header missing"))

		w := httptest.NewRecorder()
		mw.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		mockTokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("bad", nil)
		mockTokener.EXPECT().GetClaims(gomock.Any(), "bad").Return(nil, errors.New("invalid token"))

		w := httptest.NewRecorder()
		mw.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("revoked session", func(t *testing.T) {
		mockTokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("token123", nil)
		mockTokener.EXPECT().GetClaims(gomock.Any(), "token123").Return(claims, nil)
		mockSessions.EXPECT().Exists(gomock.Any(), "sid-1").Return(false, nil)

		w := httptest.NewRecorder()
		mw.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("session lookup error", func(t *testing.T) {
		mockTokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("token123", nil)
		mockTokener.EXPECT().GetClaims(gomock.Any(), "token123").Return(claims, nil)
		mockSessions.EXPECT().Exists(gomock.Any(), "sid-1").Return(false, errors.New("redis error"))

		w := httptest.NewRecorder()
		mw.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestIdentityContext(t *testing.T) {
	identity := models.Identity{UserID: uuid.New(), Username: "op1"}

	ctx := SetIdentityToContext(httptest.NewRequest(http.MethodGet, "/", nil).Context(), identity)
	got, ok := GetIdentityFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, identity, got)

	_, ok = GetIdentityFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}
