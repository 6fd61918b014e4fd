package services

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/DuJao22/Senhas-Wani/internal/logger"
	"github.com/DuJao22/Senhas-Wani/internal/models"
)

// RecordLister lists decoded records within an identity's permitted scope.
type RecordLister interface {
	List(ctx context.Context, identity models.Identity, requestedUnit string) ([]models.Record, error)
}

// ExportService serializes the identity's visible records to CSV.
type ExportService struct {
	records RecordLister
}

// NewExportService creates a new ExportService.
func NewExportService(records RecordLister) *ExportService {
	return &ExportService{records: records}
}

// ExportCSV writes one row per visible record. Rows with unreadable password
// lists have already been skipped by the lister, so a single bad record never
// aborts the export.
func (svc *ExportService) ExportCSV(ctx context.Context, identity models.Identity, w io.Writer) error {
	if err := Authorize(identity, ActionExportRecords, ""); err != nil {
		return err
	}

	records, err := svc.records.List(ctx, identity, "")
	if err != nil {
		logger.Log.Errorw("failed to list records for export", "err", err)
		return err
	}

	cw := csv.NewWriter(w)

	header := []string{"id", "card_id", "unit", "passwords", "created_at", "user_id"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, rec := range records {
		row := []string{
			rec.RecordID.String(),
			rec.CardID,
			rec.Unit,
			strings.Join(rec.Passwords, "; "),
			rec.CreatedAt.Format("2006-01-02 15:04:05"),
			rec.UserID.String(),
		}
		if err := cw.Write(row); err != nil {
			logger.Log.Errorw("skipping record that failed to serialize", "record_id", rec.RecordID, "err", err)
			continue
		}
	}

	cw.Flush()
	return cw.Error()
}
