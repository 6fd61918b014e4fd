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

// Dashboarder defines the interface that the user service must implement.
type Dashboarder interface {
	Dashboard(ctx context.Context, identity models.Identity) (*models.DashboardStats, error)
}

// DashboardErrorResponse represents an error response for the admin dashboard
// swagger:model DashboardErrorResponse
type DashboardErrorResponse struct {
	// Error message
	// default: Access denied
	Error string `json:"error"`
}

// NewDashboardHandler returns an HTTP handler for the admin dashboard.
// @Summary Admin dashboard
// @Description Returns all user accounts and aggregate record statistics. Admin only.
// @Tags admin
// @Produce json
// @Success 200 {object} models.DashboardStats "Dashboard data"
// @Failure 401 {object} handlers.DashboardErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.DashboardErrorResponse "Access denied"
// @Failure 500 {object} handlers.DashboardErrorResponse "Internal server error"
// @Router /admin [get]
// @Security BearerAuth
func NewDashboardHandler(svc Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middlewares.GetIdentityFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		stats, err := svc.Dashboard(r.Context(), identity)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrAccessDenied):
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(DashboardErrorResponse{
					Error: "Access denied",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(DashboardErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(stats)
	}
}
