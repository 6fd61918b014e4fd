package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/DuJao22/Senhas-Wani/internal/logger"
	"github.com/DuJao22/Senhas-Wani/internal/middlewares"
	"github.com/DuJao22/Senhas-Wani/internal/models"
	"github.com/DuJao22/Senhas-Wani/internal/services"
)

// Exporter defines the interface that the export service must implement.
type Exporter interface {
	ExportCSV(ctx context.Context, identity models.Identity, w io.Writer) error
}

// ExportErrorResponse represents an error response for export
// swagger:model ExportErrorResponse
type ExportErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

// NewExportHandler returns an HTTP handler that streams the caller's visible
// records as a CSV attachment.
// @Summary Export records as CSV
// @Description Exports the records within the caller's permitted scope
// @Tags records
// @Produce text/csv
// @Success 200 "CSV attachment"
// @Failure 401 {object} handlers.ExportErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ExportErrorResponse "Internal server error"
// @Router /export [get]
// @Security BearerAuth
func NewExportHandler(svc Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middlewares.GetIdentityFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		filename := fmt.Sprintf("records_%s.csv", time.Now().Format("20060102_150405"))
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

		if err := svc.ExportCSV(r.Context(), identity, w); err != nil {
			switch {
			case errors.Is(err, services.ErrAccessDenied):
				w.Header().Del("Content-Disposition")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(ExportErrorResponse{Error: "Access denied"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.Header().Del("Content-Disposition")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ExportErrorResponse{Error: "Internal server error"})
			}
			return
		}
	}
}
