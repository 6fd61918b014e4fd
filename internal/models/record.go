package models

import (
	"time"

	"github.com/google/uuid"
)

// RecordDB represents a card record row as stored: the password list is kept
// as a JSON-encoded text column, not a child table.
type RecordDB struct {
	RecordID  uuid.UUID `json:"record_id" db:"record_id"` // Primary key
	CardID    string    `json:"card_id" db:"card_id"`     // Free-text card identifier
	Unit      string    `json:"unit" db:"unit"`           // Concrete unit only
	Passwords string    `json:"-" db:"passwords"`         // JSON array of passwords
	UserID    uuid.UUID `json:"user_id" db:"user_id"`     // Owning user
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Record is the decoded view of a card record handed to handlers.
type Record struct {
	RecordID  uuid.UUID `json:"record_id"`
	CardID    string    `json:"card_id"`
	Unit      string    `json:"unit"`
	Passwords []string  `json:"passwords"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
