package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/DuJao22/Senhas-Wani/internal/logger"
)

// SessionRepository stores active session ids in Redis. A session entry is
// the source of truth for revocation: logout deletes it and the token stops
// working even though the JWT itself has not expired.
type SessionRepository struct {
	client *redis.Client
	exp    time.Duration // session time-to-live
}

// NewSessionRepository creates a new repository instance with the session TTL
func NewSessionRepository(client *redis.Client, expiration time.Duration) *SessionRepository {
	return &SessionRepository{
		client: client,
		exp:    expiration,
	}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// Save stores a new session for the given user with the configured TTL.
func (r *SessionRepository) Save(ctx context.Context, sessionID string, userID uuid.UUID) error {
	key := sessionKey(sessionID)
	err := r.client.Set(ctx, key, userID.String(), r.exp).Err()

	logger.Log.Infow(
		"key", key,
		"user_id", userID,
		"result", "ok",
		"error", err,
	)

	return err
}

// Exists reports whether the session is still active.
func (r *SessionRepository) Exists(ctx context.Context, sessionID string) (bool, error) {
	key := sessionKey(sessionID)

	_, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow(
			"key", key,
			"error", err,
		)
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// Delete revokes the session.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	key := sessionKey(sessionID)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow(
		"key", key,
		"result", "deleted",
		"error", err,
	)

	return err
}
