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

// RecordsLister defines the listing interface the record service must implement.
type RecordsLister interface {
	List(ctx context.Context, identity models.Identity, requestedUnit string) ([]models.Record, error)
}

// RecordsCounter provides per-unit record counts shown next to the listing.
type RecordsCounter interface {
	CountByUnit(ctx context.Context) (map[string]int64, error)
}

// ListRecordsResponse represents the record listing with per-unit statistics
// swagger:model ListRecordsResponse
type ListRecordsResponse struct {
	// Visible records, most recent first
	Records []models.Record `json:"records"`

	// Record count per unit
	Stats map[string]int64 `json:"stats"`
}

// ListRecordsErrorResponse represents an error response for the listing
// swagger:model ListRecordsErrorResponse
type ListRecordsErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

// NewListRecordsHandler returns an HTTP handler for browsing card records.
// A non-admin bound to a concrete unit always sees only that unit, whatever
// the query parameter says.
// @Summary List card records
// @Description Returns the records visible to the caller, optionally filtered by unit
// @Tags records
// @Produce json
// @Param unit query string false "Unit filter" Enums(Unit A, Unit B)
// @Success 200 {object} handlers.ListRecordsResponse "Records"
// @Failure 401 {object} handlers.ListRecordsErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ListRecordsErrorResponse "Internal server error"
// @Router /records [get]
// @Security BearerAuth
func NewListRecordsHandler(lister RecordsLister, counter RecordsCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middlewares.GetIdentityFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		requestedUnit := r.URL.Query().Get("unit")

		records, err := lister.List(r.Context(), identity, requestedUnit)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrAccessDenied),
				errors.Is(err, services.ErrUnitMismatch):
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(ListRecordsErrorResponse{
					Error: "Access denied",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ListRecordsErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		stats, err := counter.CountByUnit(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ListRecordsErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ListRecordsResponse{
			Records: records,
			Stats:   stats,
		})
	}
}
