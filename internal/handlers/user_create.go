package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/DuJao22/Senhas-Wani/internal/logger"
	"github.com/DuJao22/Senhas-Wani/internal/middlewares"
	"github.com/DuJao22/Senhas-Wani/internal/models"
	"github.com/DuJao22/Senhas-Wani/internal/services"
)

// UserCreator defines the interface that the user service must implement.
type UserCreator interface {
	CreateUser(ctx context.Context, identity models.Identity, username, password, fullName, unit, role string) error
}

// CreateUserRequest represents the JSON body for user creation
// swagger:model CreateUserRequest
type CreateUserRequest struct {
	// Username
	// required: true
	// default: op1
	Username string `json:"username"`

	// Password, at least 4 characters
	// required: true
	// default: secret123
	Password string `json:"password"`

	// Full name
	// required: true
	// default: First Operator
	FullName string `json:"full_name"`

	// Unit scope
	// required: true
	// default: Unit A
	Unit string `json:"unit"`

	// Role, defaults to operator
	// default: operator
	Role string `json:"role"`
}

// CreateUserResponse represents a successful user creation response
// swagger:model CreateUserResponse
type CreateUserResponse struct {
	// Success message
	// default: User created successfully
	Message string `json:"message"`
}

// CreateUserErrorResponse represents an error response for user creation
// swagger:model CreateUserErrorResponse
type CreateUserErrorResponse struct {
	// Error message
	// default: username already exists
	Error string `json:"error"`
}

// NewCreateUserHandler returns an HTTP handler for creating a user account.
// @Summary Create user account
// @Description Creates an operator or admin account. Admin only. Username must be unique.
// @Tags admin
// @Accept json
// @Produce json
// @Param createUserRequest body handlers.CreateUserRequest true "User creation request"
// @Success 201 {object} handlers.CreateUserResponse "User created"
// @Failure 400 {object} handlers.CreateUserErrorResponse "Validation error or username taken"
// @Failure 403 {object} handlers.CreateUserErrorResponse "Access denied"
// @Failure 500 {object} handlers.CreateUserErrorResponse "Internal server error"
// @Router /admin/users [post]
// @Security BearerAuth
func NewCreateUserHandler(svc UserCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middlewares.GetIdentityFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var req CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(CreateUserErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		err := svc.CreateUser(r.Context(), identity, req.Username, req.Password, req.FullName, req.Unit, req.Role)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserAlreadyExists),
				errors.Is(err, services.ErrMissingFields),
				errors.Is(err, services.ErrPasswordTooShort),
				errors.Is(err, services.ErrInvalidUserUnit),
				errors.Is(err, services.ErrInvalidRole):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(CreateUserErrorResponse{
					Error: err.Error(),
				})
			case errors.Is(err, services.ErrAccessDenied):
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(CreateUserErrorResponse{
					Error: "Access denied",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(CreateUserErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(CreateUserResponse{
			Message: "User created successfully",
		})
	}
}
