package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/DuJao22/Senhas-Wani/internal/logger"
	"github.com/DuJao22/Senhas-Wani/internal/models"
)

// Error variables
var (
	// ErrInvalidCredentials is returned for every login failure: unknown
	// username, deactivated account or wrong password. The caller never
	// learns which factor failed.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserReader defines read-only operations for user accounts.
type UserReader interface {
	GetActiveByUsername(ctx context.Context, username string) (*models.UserDB, error)
}

// LastLoginWriter stamps the last successful login time.
type LastLoginWriter interface {
	SetLastLogin(ctx context.Context, userID uuid.UUID) error
}

// SessionWriter manages active sessions.
type SessionWriter interface {
	Save(ctx context.Context, sessionID string, userID uuid.UUID) error
	Delete(ctx context.Context, sessionID string) error
}

// TokenGenerator defines an interface for generating session tokens.
type TokenGenerator interface {
	Generate(ctx context.Context, identity models.Identity, sessionID string) (string, error)
}

// AuthService handles login and logout.
type AuthService struct {
	reader   UserReader
	writer   LastLoginWriter
	sessions SessionWriter
	jwt      TokenGenerator
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer LastLoginWriter, sessions SessionWriter, jwt TokenGenerator) *AuthService {
	return &AuthService{
		reader:   reader,
		writer:   writer,
		sessions: sessions,
		jwt:      jwt,
	}
}

// Login authenticates a user and returns a session token.
func (svc *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := svc.reader.GetActiveByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		// Unknown username or deactivated account: same generic failure.
		logger.Log.Infow("login failed, no active account", "username", username)
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Infow("login failed, password mismatch", "username", username)
		return "", ErrInvalidCredentials
	}

	// The identity is already validated; a failed timestamp update must not
	// fail the login.
	if err := svc.writer.SetLastLogin(ctx, user.UserID); err != nil {
		logger.Log.Warnw("failed to update last login", "username", username, "err", err)
	}

	sessionID := uuid.NewString()

	token, err := svc.jwt.Generate(ctx, user.Identity(), sessionID)
	if err != nil {
		logger.Log.Errorw("failed to generate session token", "err", err)
		return "", err
	}

	if err := svc.sessions.Save(ctx, sessionID, user.UserID); err != nil {
		logger.Log.Errorw("failed to save session", "err", err)
		return "", err
	}

	return token, nil
}

// Logout revokes the session behind the token.
func (svc *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := svc.sessions.Delete(ctx, sessionID); err != nil {
		logger.Log.Errorw("failed to delete session", "session_id", sessionID, "err", err)
		return err
	}
	return nil
}
