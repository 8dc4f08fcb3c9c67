package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/futig/census-agent/internal/entity"
)

// CensusRepository defines the interface for census record persistence.
// Records are keyed by case id and a per-record-type sort key; writing the
// same key twice replaces the record.
type CensusRepository interface {
	WriteSurvey(ctx context.Context, record *entity.SurveyRecord) error
	WriteCallback(ctx context.Context, record *entity.CallbackRecord) error
	ListRecords(ctx context.Context, caseID string) ([]*entity.CensusRecord, error)
}

// censusRow is the flattened record shared by the backends
type censusRow struct {
	caseID     string
	recordKey  string
	recordType entity.RecordType
	payload    []byte
}

func surveyRow(record *entity.SurveyRecord) (*censusRow, error) {
	return newCensusRow(record.CaseID, record.SortKey(), record.Type, record)
}

func callbackRow(record *entity.CallbackRecord) (*censusRow, error) {
	return newCensusRow(record.CaseID, record.SortKey(), record.Type, record)
}

func newCensusRow(caseID, recordKey string, recordType entity.RecordType, record any) (*censusRow, error) {
	if caseID == "" {
		return nil, entity.ErrMissingCaseID
	}

	payload, err := sonic.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal %s record: %w", recordType, err)
	}

	return &censusRow{
		caseID:     caseID,
		recordKey:  recordKey,
		recordType: recordType,
		payload:    payload,
	}, nil
}

func (r *censusRow) toEntity() *entity.CensusRecord {
	return &entity.CensusRecord{
		CaseID:    r.caseID,
		RecordKey: r.recordKey,
		Type:      r.recordType,
		Payload:   r.payload,
	}
}

// recordTypeOf recovers the record type from a "<TYPE>#<timestamp>" key
func recordTypeOf(recordKey string) entity.RecordType {
	recordType, _, _ := strings.Cut(recordKey, "#")
	return entity.RecordType(recordType)
}
