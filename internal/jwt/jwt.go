package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/DuJao22/Senhas-Wani/internal/models"
)

// SessionCookie is the cookie the login handler sets with the session token.
const SessionCookie = "session_token"

// Claims carries the authenticated identity plus the revocable session id.
type Claims struct {
	SessionID string
	Identity  models.Identity
}

// JWT signs and verifies session tokens.
type JWT struct {
	SecretKey string        // Secret key for signing tokens
	Exp       time.Duration // Token expiration duration
}

// New creates a new JWT instance
func New(secretKey string, expiration time.Duration) *JWT {
	return &JWT{
		SecretKey: secretKey,
		Exp:       expiration,
	}
}

// Generate creates a signed session token for the given identity.
func (j *JWT) Generate(ctx context.Context, identity models.Identity, sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sid":       sessionID,
		"user_id":   identity.UserID.String(),
		"username":  identity.Username,
		"full_name": identity.FullName,
		"unit":      identity.Unit,
		"role":      identity.Role,
		"exp":       time.Now().Add(j.Exp).Unix(),
		"iat":       time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.SecretKey))
}

// GetClaims parses the token string and returns the session claims if valid.
func (j *JWT) GetClaims(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sid, _ := mapClaims["sid"].(string)
	if sid == "" {
		return nil, errors.New("session id not found in token")
	}

	userIDStr, _ := mapClaims["user_id"].(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("invalid user_id format")
	}

	username, _ := mapClaims["username"].(string)
	fullName, _ := mapClaims["full_name"].(string)
	unit, _ := mapClaims["unit"].(string)
	role, _ := mapClaims["role"].(string)

	return &Claims{
		SessionID: sid,
		Identity: models.Identity{
			UserID:   userID,
			Username: username,
			FullName: fullName,
			Unit:     unit,
			Role:     role,
		},
	}, nil
}

// GetTokenFromRequest extracts the token string from the Authorization header,
// falling back to the session cookie set at login.
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return "", errors.New("invalid authorization header format")
		}
		return parts[1], nil
	}

	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return "", errors.New("authorization header missing")
	}
	return cookie.Value, nil
}
