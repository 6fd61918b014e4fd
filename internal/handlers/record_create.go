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

// RecordCreator defines the interface that the record service must implement.
type RecordCreator interface {
	Create(ctx context.Context, identity models.Identity, cardID, unit, rawPasswords string) (*models.Record, error)
}

// CreateRecordRequest represents the JSON body for record creation
// swagger:model CreateRecordRequest
type CreateRecordRequest struct {
	// Card identifier
	// required: true
	// default: C100
	CardID string `json:"card_id"`

	// Concrete unit
	// required: true
	// default: Unit A
	Unit string `json:"unit"`

	// Comma-separated passwords, up to five
	// required: true
	// default: 111,222,333
	Passwords string `json:"passwords"`
}

// CreateRecordResponse represents a successful record creation response
// swagger:model CreateRecordResponse
type CreateRecordResponse struct {
	// Success message
	// default: Record saved successfully
	Message string `json:"message"`

	// Created record
	Record *models.Record `json:"record"`
}

// CreateRecordErrorResponse represents an error response for record creation
// swagger:model CreateRecordErrorResponse
type CreateRecordErrorResponse struct {
	// Error message
	// default: card id required
	Error string `json:"error"`
}

// NewCreateRecordHandler returns an HTTP handler for creating a card record.
// @Summary Create card record
// @Description Creates a card record with up to five passwords for a concrete unit the caller may write to
// @Tags records
// @Accept json
// @Produce json
// @Param createRecordRequest body handlers.CreateRecordRequest true "Record creation request"
// @Success 201 {object} handlers.CreateRecordResponse "Record created"
// @Failure 400 {object} handlers.CreateRecordErrorResponse "Validation error"
// @Failure 403 {object} handlers.CreateRecordErrorResponse "Access denied"
// @Failure 500 {object} handlers.CreateRecordErrorResponse "Internal server error"
// @Router /records [post]
// @Security BearerAuth
func NewCreateRecordHandler(svc RecordCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middlewares.GetIdentityFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var req CreateRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(CreateRecordErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		record, err := svc.Create(r.Context(), identity, req.CardID, req.Unit, req.Passwords)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrCardIDRequired),
				errors.Is(err, services.ErrInvalidUnit),
				errors.Is(err, services.ErrNoPasswords),
				errors.Is(err, services.ErrTooManyPasswords):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(CreateRecordErrorResponse{
					Error: err.Error(),
				})
			case errors.Is(err, services.ErrUnitMismatch),
				errors.Is(err, services.ErrAccessDenied):
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(CreateRecordErrorResponse{
					Error: "Access denied",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(CreateRecordErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(CreateRecordResponse{
			Message: "Record saved successfully",
			Record:  record,
		})
	}
}
