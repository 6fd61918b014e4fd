package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/DuJao22/Senhas-Wani/internal/middlewares"
	"github.com/DuJao22/Senhas-Wani/internal/models"
)

// HomeResponse represents the home view for an authenticated user
// swagger:model HomeResponse
type HomeResponse struct {
	// Greeting
	// default: Welcome, System Administrator
	Message string `json:"message"`

	// Authenticated identity
	Identity models.Identity `json:"identity"`
}

// NewHomeHandler returns the home view with the authenticated identity.
// @Summary Home
// @Description Returns a greeting and the authenticated identity
// @Tags home
// @Produce json
// @Success 200 {object} handlers.HomeResponse "Home view"
// @Failure 401 "Unauthorized"
// @Router / [get]
// @Security BearerAuth
func NewHomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middlewares.GetIdentityFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(HomeResponse{
			Message:  fmt.Sprintf("Welcome, %s", identity.FullName),
			Identity: identity,
		})
	}
}
