package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/DuJao22/Senhas-Wani/internal/logger"
	"github.com/DuJao22/Senhas-Wani/internal/models"
)

// maxPasswords is the upper bound on passwords per card.
const maxPasswords = 5

// Error variables
var (
	ErrCardIDRequired   = errors.New("card id required")
	ErrInvalidUnit      = errors.New("invalid unit")
	ErrNoPasswords      = errors.New("at least one password required")
	ErrTooManyPasswords = errors.New("maximum five passwords")
)

// RecordWriter defines write operations for card records.
type RecordWriter interface {
	Save(ctx context.Context, rec models.RecordDB) error
}

// RecordReader defines read operations for card records.
type RecordReader interface {
	List(ctx context.Context, unit string) ([]models.RecordDB, error)
	CountByUnit(ctx context.Context) (map[string]int64, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// recordEvent is the audit event published when a record is created.
type recordEvent struct {
	EventID   string `json:"event_id"`
	Timestamp int64  `json:"timestamp"`
	RecordID  string `json:"record_id"`
	CardID    string `json:"card_id"`
	Unit      string `json:"unit"`
	UserID    string `json:"user_id"`
	Operation string `json:"operation"`
}

// RecordService handles card record creation, listing and counting.
type RecordService struct {
	writer      RecordWriter
	reader      RecordReader
	kafkaWriter KafkaWriter
}

// NewRecordService creates a new RecordService.
func NewRecordService(writer RecordWriter, reader RecordReader, kafkaWriter KafkaWriter) *RecordService {
	return &RecordService{
		writer:      writer,
		reader:      reader,
		kafkaWriter: kafkaWriter,
	}
}

// splitPasswords turns the free-form comma-separated field into a bounded
// list: entries are trimmed, empties dropped, input order and duplicates kept.
func splitPasswords(raw string) []string {
	parts := strings.Split(raw, ",")
	passwords := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			passwords = append(passwords, p)
		}
	}
	return passwords
}

// publishRecordCreated publishes an audit event to Kafka.
func (svc *RecordService) publishRecordCreated(ctx context.Context, rec models.RecordDB) {
	if svc.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "record_id", rec.RecordID)
		return
	}

	event := recordEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().Unix(),
		RecordID:  rec.RecordID.String(),
		CardID:    rec.CardID,
		Unit:      rec.Unit,
		UserID:    rec.UserID.String(),
		Operation: "record_created",
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal record event for Kafka", "record_id", rec.RecordID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.RecordID),
		Value: data,
	}

	if err := svc.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish record event to Kafka", "record_id", rec.RecordID, "error", err)
	} else {
		logger.Log.Infow("record event published to Kafka", "record_id", rec.RecordID)
	}
}

// Create validates and normalizes a submission, checks the access policy and
// persists the record owned by the submitting identity.
func (svc *RecordService) Create(ctx context.Context, identity models.Identity, cardID, unit, rawPasswords string) (*models.Record, error) {
	cardID = strings.TrimSpace(cardID)
	if cardID == "" {
		return nil, ErrCardIDRequired
	}

	unit = strings.TrimSpace(unit)
	if !models.IsConcreteUnit(unit) {
		return nil, ErrInvalidUnit
	}

	if err := Authorize(identity, ActionCreateRecord, unit); err != nil {
		logger.Log.Infow("record creation denied",
			"username", identity.Username, "user_unit", identity.Unit, "target_unit", unit, "err", err)
		return nil, err
	}

	passwords := splitPasswords(rawPasswords)
	if len(passwords) == 0 {
		return nil, ErrNoPasswords
	}
	if len(passwords) > maxPasswords {
		return nil, ErrTooManyPasswords
	}

	encoded, err := json.Marshal(passwords)
	if err != nil {
		logger.Log.Errorw("failed to encode password list", "err", err)
		return nil, err
	}

	rec := models.RecordDB{
		RecordID:  uuid.New(),
		CardID:    cardID,
		Unit:      unit,
		Passwords: string(encoded),
		UserID:    identity.UserID,
		CreatedAt: time.Now(),
	}

	if err := svc.writer.Save(ctx, rec); err != nil {
		logger.Log.Errorw("failed to save record", "card_id", cardID, "err", err)
		return nil, err
	}

	svc.publishRecordCreated(ctx, rec)

	return &models.Record{
		RecordID:  rec.RecordID,
		CardID:    rec.CardID,
		Unit:      rec.Unit,
		Passwords: passwords,
		UserID:    rec.UserID,
		CreatedAt: rec.CreatedAt,
	}, nil
}

// effectiveUnitFilter resolves the unit filter actually applied to a listing.
// A non-admin bound to a concrete unit is always forced to it, whatever was
// requested; everyone else gets the requested concrete unit or the full scope.
func effectiveUnitFilter(identity models.Identity, requestedUnit string) string {
	if !identity.IsAdmin() && models.IsConcreteUnit(identity.Unit) {
		return identity.Unit
	}
	if models.IsConcreteUnit(requestedUnit) {
		return requestedUnit
	}
	return ""
}

// List returns the records visible to the identity, most recent first.
// Rows whose stored password list cannot be decoded are skipped, never fatal.
func (svc *RecordService) List(ctx context.Context, identity models.Identity, requestedUnit string) ([]models.Record, error) {
	if err := Authorize(identity, ActionViewRecords, ""); err != nil {
		return nil, err
	}

	unit := effectiveUnitFilter(identity, requestedUnit)

	rows, err := svc.reader.List(ctx, unit)
	if err != nil {
		logger.Log.Errorw("failed to list records", "unit", unit, "err", err)
		return nil, err
	}

	records := make([]models.Record, 0, len(rows))
	for _, row := range rows {
		var passwords []string
		if err := json.Unmarshal([]byte(row.Passwords), &passwords); err != nil {
			logger.Log.Errorw("skipping record with unreadable password list",
				"record_id", row.RecordID, "err", err)
			continue
		}
		records = append(records, models.Record{
			RecordID:  row.RecordID,
			CardID:    row.CardID,
			Unit:      row.Unit,
			Passwords: passwords,
			UserID:    row.UserID,
			CreatedAt: row.CreatedAt,
		})
	}

	return records, nil
}

// CountByUnit returns the number of records per unit.
func (svc *RecordService) CountByUnit(ctx context.Context) (map[string]int64, error) {
	counts, err := svc.reader.CountByUnit(ctx)
	if err != nil {
		logger.Log.Errorw("failed to count records by unit", "err", err)
		return nil, err
	}
	return counts, nil
}
