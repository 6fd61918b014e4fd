package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/DuJao22/Senhas-Wani/internal/middlewares"
	"github.com/DuJao22/Senhas-Wani/internal/models"
	"github.com/DuJao22/Senhas-Wani/internal/services"
)

func TestCreateRecordHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockRecordCreator(ctrl)
	handler := NewCreateRecordHandler(mockSvc)

	identity := models.Identity{UserID: uuid.New(), Username: "op1", FullName: "First Operator", Unit: models.UnitA, Role: models.RoleOperator}

	created := &models.Record{
		RecordID:  uuid.New(),
		CardID:    "C100",
		Unit:      models.UnitA,
		Passwords: []string{"111", "222"},
		UserID:    identity.UserID,
		CreatedAt: time.Now(),
	}

	tests := []struct {
		name       string
		body       string
		setupMock  func()
		wantStatus int
		wantError  string
	}{
		{
			name: "record created",
			body: `{"card_id":"C100","unit":"Unit A","passwords":"111,222"}`,
			setupMock: func() {
				mockSvc.EXPECT().
					Create(gomock.Any(), identity, "C100", "Unit A", "111,222").
					Return(created, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "malformed body",
			body:       `{"card_id":`,
			setupMock:  func() {},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request body",
		},
		{
			name: "validation error surfaces the message",
			body: `{"card_id":"","unit":"Unit A","passwords":"111"}`,
			setupMock: func() {
				mockSvc.EXPECT().
					Create(gomock.Any(), identity, "", "Unit A", "111").
					Return(nil, services.ErrCardIDRequired)
			},
			wantStatus: http.StatusBadRequest,
			wantError:  services.ErrCardIDRequired.Error(),
		},
		{
			name: "too many passwords",
			body: `{"card_id":"C1","unit":"Unit A","passwords":"1,2,3,4,5,6"}`,
			setupMock: func() {
				mockSvc.EXPECT().
					Create(gomock.Any(), identity, "C1", "Unit A", "1,2,3,4,5,6").
					Return(nil, services.ErrTooManyPasswords)
			},
			wantStatus: http.StatusBadRequest,
			wantError:  services.ErrTooManyPasswords.Error(),
		},
		{
			name: "unit mismatch is a generic denial",
			body: `{"card_id":"C1","unit":"Unit B","passwords":"111"}`,
			setupMock: func() {
				mockSvc.EXPECT().
					Create(gomock.Any(), identity, "C1", "Unit B", "111").
					Return(nil, services.ErrUnitMismatch)
			},
			wantStatus: http.StatusForbidden,
			wantError:  "Access denied",
		},
		{
			name: "internal error",
			body: `{"card_id":"C1","unit":"Unit A","passwords":"111"}`,
			setupMock: func() {
				mockSvc.EXPECT().
					Create(gomock.Any(), identity, "C1", "Unit A", "111").
					Return(nil, errors.New("db error"))
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			req := httptest.NewRequest(http.MethodPost, "/records", strings.NewReader(tt.body))
			req = req.WithContext(middlewares.SetIdentityToContext(req.Context(), identity))
			w := httptest.NewRecorder()

			handler(w, req)

			resp := w.Result()
			defer resp.Body.Close()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus == http.StatusCreated {
				var body CreateRecordResponse
				assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, "Record saved successfully", body.Message)
				assert.Equal(t, created.CardID, body.Record.CardID)
				assert.Equal(t, created.Passwords, body.Record.Passwords)
			} else {
				var body CreateRecordErrorResponse
				assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tt.wantError, body.Error)
			}
		})
	}
}

func TestCreateRecordHandler_NoIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewCreateRecordHandler(NewMockRecordCreator(ctrl))

	req := httptest.NewRequest(http.MethodPost, "/records", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	handler(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
