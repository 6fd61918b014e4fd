package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/DuJao22/Senhas-Wani/internal/logger"
	"github.com/DuJao22/Senhas-Wani/internal/models"
)

// pgUniqueViolation is the Postgres error code for a unique constraint hit.
const pgUniqueViolation = "23505"

// minPasswordLen is the minimum account password length.
const minPasswordLen = 4

// Error variables
var (
	ErrUserAlreadyExists = errors.New("username already exists")
	ErrMissingFields     = errors.New("all fields are required")
	ErrPasswordTooShort  = errors.New("password must have at least 4 characters")
	ErrInvalidUserUnit   = errors.New("invalid user unit")
	ErrInvalidRole       = errors.New("invalid role")
)

// AdminUserReader lists accounts for the admin dashboard.
type AdminUserReader interface {
	ListAll(ctx context.Context) ([]models.UserDB, error)
}

// UserWriter persists new accounts.
type UserWriter interface {
	Save(ctx context.Context, user models.UserDB) error
}

// RecordCounter provides record statistics for the dashboard.
type RecordCounter interface {
	CountByUnit(ctx context.Context) (map[string]int64, error)
}

// UserService handles admin-only account management and dashboard stats.
type UserService struct {
	reader  AdminUserReader
	writer  UserWriter
	records RecordCounter
}

// NewUserService creates a new UserService instance.
func NewUserService(reader AdminUserReader, writer UserWriter, records RecordCounter) *UserService {
	return &UserService{
		reader:  reader,
		writer:  writer,
		records: records,
	}
}

// CreateUser creates a new account. Username uniqueness is closed at the
// storage layer: concurrent duplicates surface as a constraint violation
// mapped to ErrUserAlreadyExists, never a check-then-insert race.
func (svc *UserService) CreateUser(ctx context.Context, identity models.Identity, username, password, fullName, unit, role string) error {
	if err := Authorize(identity, ActionManageUsers, ""); err != nil {
		logger.Log.Infow("user creation denied", "username", identity.Username, "err", err)
		return err
	}

	username = strings.TrimSpace(username)
	fullName = strings.TrimSpace(fullName)
	unit = strings.TrimSpace(unit)
	if role == "" {
		role = models.RoleOperator
	}

	if username == "" || password == "" || fullName == "" || unit == "" {
		return ErrMissingFields
	}
	if len(password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	if !models.IsValidUserUnit(unit) {
		return ErrInvalidUserUnit
	}
	if !models.IsValidRole(role) {
		return ErrInvalidRole
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	user := models.UserDB{
		UserID:       uuid.New(),
		Username:     username,
		PasswordHash: string(hashedPassword),
		FullName:     fullName,
		Unit:         unit,
		Role:         role,
		Active:       true,
	}

	if err := svc.writer.Save(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			logger.Log.Infow("user already exists", "username", username)
			return ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return err
	}

	return nil
}

// Dashboard returns the admin dashboard data: all accounts plus record
// statistics.
func (svc *UserService) Dashboard(ctx context.Context, identity models.Identity) (*models.DashboardStats, error) {
	if err := Authorize(identity, ActionViewDashboard, ""); err != nil {
		logger.Log.Infow("dashboard access denied", "username", identity.Username, "err", err)
		return nil, err
	}

	users, err := svc.reader.ListAll(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, err
	}

	counts, err := svc.records.CountByUnit(ctx)
	if err != nil {
		logger.Log.Errorw("failed to count records", "err", err)
		return nil, err
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	return &models.DashboardStats{
		Users:         users,
		TotalRecords:  total,
		RecordsByUnit: counts,
	}, nil
}
