package repository

import (
	"context"
	"fmt"

	"github.com/futig/census-agent/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgxpool.Pool used by the postgres repositories
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const upsertCensusRecord = `
INSERT INTO census_responses (case_id, record_key, record_type, payload)
VALUES ($1, $2, $3, $4)
ON CONFLICT (case_id, record_key) DO UPDATE
SET record_type = EXCLUDED.record_type,
    payload     = EXCLUDED.payload,
    updated_at  = NOW()`

const listCensusRecords = `
SELECT case_id, record_key, record_type, payload
FROM census_responses
WHERE case_id = $1
ORDER BY record_key`

var _ CensusRepository = &CensusPostgres{}

// CensusPostgres implements CensusRepository on the census_responses table
type CensusPostgres struct {
	db DBTX
}

func NewCensusPostgres(db DBTX) *CensusPostgres {
	return &CensusPostgres{db: db}
}

func (r *CensusPostgres) WriteSurvey(ctx context.Context, record *entity.SurveyRecord) error {
	row, err := surveyRow(record)
	if err != nil {
		return err
	}
	return r.upsert(ctx, row)
}

func (r *CensusPostgres) WriteCallback(ctx context.Context, record *entity.CallbackRecord) error {
	row, err := callbackRow(record)
	if err != nil {
		return err
	}
	return r.upsert(ctx, row)
}

func (r *CensusPostgres) upsert(ctx context.Context, row *censusRow) error {
	_, err := r.db.Exec(ctx, upsertCensusRecord, row.caseID, row.recordKey, string(row.recordType), row.payload)
	if err != nil {
		return fmt.Errorf("upsert census record: %w", err)
	}
	return nil
}

func (r *CensusPostgres) ListRecords(ctx context.Context, caseID string) ([]*entity.CensusRecord, error) {
	rows, err := r.db.Query(ctx, listCensusRecords, caseID)
	if err != nil {
		return nil, fmt.Errorf("query census records: %w", err)
	}
	defer rows.Close()

	var records []*entity.CensusRecord
	for rows.Next() {
		var (
			row        censusRow
			recordType string
		)
		if err := rows.Scan(&row.caseID, &row.recordKey, &recordType, &row.payload); err != nil {
			return nil, fmt.Errorf("scan census record: %w", err)
		}
		row.recordType = entity.RecordType(recordType)
		records = append(records, row.toEntity())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate census records: %w", err)
	}

	return records, nil
}
