package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/DuJao22/Senhas-Wani/internal/middlewares"
	"github.com/DuJao22/Senhas-Wani/internal/models"
	"github.com/DuJao22/Senhas-Wani/internal/services"
)

func TestExportHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockExporter(ctrl)
	handler := NewExportHandler(mockSvc)

	identity := models.Identity{UserID: uuid.New(), Username: "op1", Unit: models.UnitA, Role: models.RoleOperator}

	t.Run("streams csv attachment", func(t *testing.T) {
		mockSvc.EXPECT().
			ExportCSV(gomock.Any(), identity, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ models.Identity, w io.Writer) error {
				_, err := w.Write([]byte("id,card_id\n"))
				return err
			})

		req := httptest.NewRequest(http.MethodGet, "/export", nil)
		req = req.WithContext(middlewares.SetIdentityToContext(req.Context(), identity))
		w := httptest.NewRecorder()

		handler(w, req)

		resp := w.Result()
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment; filename=")
		assert.Contains(t, resp.Header.Get("Content-Disposition"), ".csv")
		assert.Equal(t, "id,card_id\n", w.Body.String())
	})

	t.Run("no identity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/export", nil)
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("denial resets headers to json", func(t *testing.T) {
		mockSvc.EXPECT().
			ExportCSV(gomock.Any(), identity, gomock.Any()).
			Return(services.ErrAccessDenied)

		req := httptest.NewRequest(http.MethodGet, "/export", nil)
		req = req.WithContext(middlewares.SetIdentityToContext(req.Context(), identity))
		w := httptest.NewRecorder()

		handler(w, req)

		resp := w.Result()
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		assert.Empty(t, resp.Header.Get("Content-Disposition"))
	})

	t.Run("internal error", func(t *testing.T) {
		mockSvc.EXPECT().
			ExportCSV(gomock.Any(), identity, gomock.Any()).
			Return(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/export", nil)
		req = req.WithContext(middlewares.SetIdentityToContext(req.Context(), identity))
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
