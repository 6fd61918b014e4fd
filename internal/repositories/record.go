package repositories

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/DuJao22/Senhas-Wani/internal/logger"
	"github.com/DuJao22/Senhas-Wani/internal/models"
)

// RecordWriteRepository handles card record inserts. Records are immutable
// after creation, so this is the only write.
type RecordWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewRecordWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *RecordWriteRepository {
	return &RecordWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a new card record.
func (r *RecordWriteRepository) Save(ctx context.Context, rec models.RecordDB) error {
	query := `
		INSERT INTO records (record_id, card_id, unit, passwords, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	args := []any{rec.RecordID, rec.CardID, rec.Unit, rec.Passwords, rec.UserID}

	var executor sqlx.ExtContext = r.db
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			executor = tx
		}
	}

	res, err := executor.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{rec.RecordID, rec.CardID, rec.Unit, rec.UserID},
		"result", rowsAffected,
		"error", err,
	)

	return err
}

// RecordReadRepository handles card record reads
type RecordReadRepository struct {
	db *sqlx.DB
}

func NewRecordReadRepository(db *sqlx.DB) *RecordReadRepository {
	return &RecordReadRepository{db: db}
}

// List returns records ordered most recent first, filtered by unit when
// unit is non-empty.
func (r *RecordReadRepository) List(ctx context.Context, unit string) ([]models.RecordDB, error) {
	const query = `
		SELECT record_id, card_id, unit, passwords, user_id, created_at
		FROM records
		WHERE ($1::VARCHAR = '' OR unit = $1)
		ORDER BY created_at DESC, record_id DESC
	`

	var records []models.RecordDB
	err := r.db.SelectContext(ctx, &records, query, unit)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{unit},
		"result_count", len(records),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return records, nil
}

// CountByUnit returns the number of records per concrete unit.
func (r *RecordReadRepository) CountByUnit(ctx context.Context) (map[string]int64, error) {
	const query = `
		SELECT unit, COUNT(*) AS total
		FROM records
		GROUP BY unit
	`

	var rows []struct {
		Unit  string `db:"unit"`
		Total int64  `db:"total"`
	}

	err := r.db.SelectContext(ctx, &rows, query)

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Unit] = row.Total
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"result", counts,
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return counts, nil
}

// Count returns the total number of records.
func (r *RecordReadRepository) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM records`

	var total int64
	err := r.db.GetContext(ctx, &total, query)

	logger.Log.Infow(
		"query", query,
		"result", total,
		"error", err,
	)

	if err != nil {
		return 0, err
	}

	return total, nil
}
