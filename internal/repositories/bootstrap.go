package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/DuJao22/Senhas-Wani/internal/logger"
	"github.com/DuJao22/Senhas-Wani/internal/models"
)

const schema = `
	CREATE TABLE IF NOT EXISTS users (
		user_id UUID PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		full_name VARCHAR(100) NOT NULL,
		unit VARCHAR(20) NOT NULL,
		role VARCHAR(20) NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		last_login_at TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS records (
		record_id UUID PRIMARY KEY,
		card_id VARCHAR(100) NOT NULL,
		unit VARCHAR(20) NOT NULL,
		passwords TEXT NOT NULL,
		user_id UUID NOT NULL REFERENCES users(user_id),
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_records_unit ON records(unit);
	CREATE INDEX IF NOT EXISTS idx_records_created_at ON records(created_at);
`

// Bootstrap creates the schema if needed and seeds a default admin account
// when no admin exists yet.
func Bootstrap(ctx context.Context, db *sqlx.DB, adminUsername, adminPassword string) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		logger.Log.Errorw("failed to create schema", "error", err)
		return err
	}

	var adminCount int
	const countQuery = `SELECT COUNT(*) FROM users WHERE role = $1`
	if err := db.GetContext(ctx, &adminCount, countQuery, models.RoleAdmin); err != nil {
		logger.Log.Errorw("failed to count admin users", "error", err)
		return err
	}
	if adminCount > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	const insertQuery = `
		INSERT INTO users (user_id, username, password_hash, full_name, unit, role, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, NOW())
	`
	if _, err := db.ExecContext(ctx, insertQuery,
		uuid.New(), adminUsername, string(hash), "System Administrator",
		models.UnitBoth, models.RoleAdmin); err != nil {
		logger.Log.Errorw("failed to seed default admin", "error", err)
		return err
	}

	logger.Log.Infow("default admin user created", "username", adminUsername)
	return nil
}
