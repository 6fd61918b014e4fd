package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/DuJao22/Senhas-Wani/internal/models"
	"github.com/DuJao22/Senhas-Wani/internal/services"
)

func TestUserService_CreateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockAdminUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockCounter := services.NewMockRecordCounter(ctrl)

	svc := services.NewUserService(mockReader, mockWriter, mockCounter)

	admin := models.Identity{UserID: uuid.New(), Username: "admin", Unit: models.UnitBoth, Role: models.RoleAdmin}
	operator := models.Identity{UserID: uuid.New(), Username: "op1", Unit: models.UnitA, Role: models.RoleOperator}

	tests := []struct {
		name       string
		identity   models.Identity
		username   string
		password   string
		fullName   string
		unit       string
		role       string
		saveErr    error
		expectSave bool
		wantErr    error
	}{
		{
			name:       "admin creates operator",
			identity:   admin,
			username:   "bob",
			password:   "secret",
			fullName:   "Bob Builder",
			unit:       models.UnitA,
			role:       models.RoleOperator,
			expectSave: true,
		},
		{
			name:       "empty role defaults to operator",
			identity:   admin,
			username:   "carol",
			password:   "secret",
			fullName:   "Carol",
			unit:       models.UnitBoth,
			role:       "",
			expectSave: true,
		},
		{
			name:     "operator denied",
			identity: operator,
			username: "mallory",
			password: "secret",
			fullName: "Mallory",
			unit:     models.UnitA,
			role:     models.RoleOperator,
			wantErr:  services.ErrAccessDenied,
		},
		{
			name:     "blank username rejected",
			identity: admin,
			username: "   ",
			password: "secret",
			fullName: "Nobody",
			unit:     models.UnitA,
			wantErr:  services.ErrMissingFields,
		},
		{
			name:     "short password rejected",
			identity: admin,
			username: "dave",
			password: "abc",
			fullName: "Dave",
			unit:     models.UnitA,
			wantErr:  services.ErrPasswordTooShort,
		},
		{
			name:     "unknown unit rejected",
			identity: admin,
			username: "erin",
			password: "secret",
			fullName: "Erin",
			unit:     "Unit C",
			wantErr:  services.ErrInvalidUserUnit,
		},
		{
			name:     "unknown role rejected",
			identity: admin,
			username: "frank",
			password: "secret",
			fullName: "Frank",
			unit:     models.UnitA,
			role:     "superuser",
			wantErr:  services.ErrInvalidRole,
		},
		{
			name:       "duplicate username maps the constraint violation",
			identity:   admin,
			username:   "bob",
			password:   "secret",
			fullName:   "Bob Again",
			unit:       models.UnitA,
			role:       models.RoleOperator,
			saveErr:    &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"},
			expectSave: true,
			wantErr:    services.ErrUserAlreadyExists,
		},
		{
			name:       "writer error passes through",
			identity:   admin,
			username:   "grace",
			password:   "secret",
			fullName:   "Grace",
			unit:       models.UnitA,
			role:       models.RoleOperator,
			saveErr:    errors.New("db error"),
			expectSave: true,
			wantErr:    errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var saved models.UserDB
			if tt.expectSave {
				mockWriter.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user models.UserDB) error {
						saved = user
						return tt.saveErr
					})
			}

			err := svc.CreateUser(context.Background(), tt.identity, tt.username, tt.password, tt.fullName, tt.unit, tt.role)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.username, saved.Username)
			assert.True(t, saved.Active)
			assert.Equal(t, models.RoleOperator, saved.Role)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte(tt.password)))
		})
	}
}

func TestUserService_Dashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockAdminUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockCounter := services.NewMockRecordCounter(ctrl)

	svc := services.NewUserService(mockReader, mockWriter, mockCounter)

	admin := models.Identity{UserID: uuid.New(), Username: "admin", Unit: models.UnitBoth, Role: models.RoleAdmin}
	operator := models.Identity{UserID: uuid.New(), Username: "op1", Unit: models.UnitA, Role: models.RoleOperator}

	t.Run("admin gets users and totals", func(t *testing.T) {
		users := []models.UserDB{
			{UserID: uuid.New(), Username: "admin"},
			{UserID: uuid.New(), Username: "op1"},
		}
		mockReader.EXPECT().ListAll(gomock.Any()).Return(users, nil)
		mockCounter.EXPECT().CountByUnit(gomock.Any()).Return(map[string]int64{models.UnitA: 2, models.UnitB: 3}, nil)

		stats, err := svc.Dashboard(context.Background(), admin)
		assert.NoError(t, err)
		assert.Len(t, stats.Users, 2)
		assert.Equal(t, int64(5), stats.TotalRecords)
		assert.Equal(t, int64(2), stats.RecordsByUnit[models.UnitA])
	})

	t.Run("operator denied", func(t *testing.T) {
		stats, err := svc.Dashboard(context.Background(), operator)
		assert.ErrorIs(t, err, services.ErrAccessDenied)
		assert.Nil(t, stats)
	})

	t.Run("reader error", func(t *testing.T) {
		mockReader.EXPECT().ListAll(gomock.Any()).Return(nil, errors.New("db error"))

		stats, err := svc.Dashboard(context.Background(), admin)
		assert.Error(t, err)
		assert.Nil(t, stats)
	})

	t.Run("counter error", func(t *testing.T) {
		mockReader.EXPECT().ListAll(gomock.Any()).Return([]models.UserDB{}, nil)
		mockCounter.EXPECT().CountByUnit(gomock.Any()).Return(nil, errors.New("db error"))

		stats, err := svc.Dashboard(context.Background(), admin)
		assert.Error(t, err)
		assert.Nil(t, stats)
	})
}
