package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user account row in the database
type UserDB struct {
	UserID       uuid.UUID    `json:"user_id" db:"user_id"`             // Primary key
	Username     string       `json:"username" db:"username"`           // Unique username
	PasswordHash string       `json:"-" db:"password_hash"`             // Hashed password, never serialized
	FullName     string       `json:"full_name" db:"full_name"`         // Display name
	Unit         string       `json:"unit" db:"unit"`                   // "Unit A", "Unit B" or "Both"
	Role         string       `json:"role" db:"role"`                   // "admin" or "operator"
	Active       bool         `json:"active" db:"active"`               // Soft-deactivation flag
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`       // Creation timestamp
	LastLoginAt  sql.NullTime `json:"last_login_at" db:"last_login_at"` // Last successful login, nullable
}

// Identity returns the policy-facing view of the account.
func (u *UserDB) Identity() Identity {
	return Identity{
		UserID:   u.UserID,
		Username: u.Username,
		FullName: u.FullName,
		Unit:     u.Unit,
		Role:     u.Role,
	}
}
