package repository

import (
	"context"
	"slices"
	"strings"

	"github.com/futig/census-agent/internal/entity"
	"github.com/patrickmn/go-cache"
)

const memoryKeySeparator = "|"

var _ CensusRepository = &CensusMemory{}

// CensusMemory keeps records in process; used for local runs and the CLI
type CensusMemory struct {
	records *cache.Cache
}

func NewCensusMemory() *CensusMemory {
	return &CensusMemory{
		records: cache.New(cache.NoExpiration, 0),
	}
}

func (r *CensusMemory) WriteSurvey(_ context.Context, record *entity.SurveyRecord) error {
	row, err := surveyRow(record)
	if err != nil {
		return err
	}
	r.put(row)
	return nil
}

func (r *CensusMemory) WriteCallback(_ context.Context, record *entity.CallbackRecord) error {
	row, err := callbackRow(record)
	if err != nil {
		return err
	}
	r.put(row)
	return nil
}

func (r *CensusMemory) put(row *censusRow) {
	r.records.Set(row.caseID+memoryKeySeparator+row.recordKey, row, cache.NoExpiration)
}

func (r *CensusMemory) ListRecords(_ context.Context, caseID string) ([]*entity.CensusRecord, error) {
	prefix := caseID + memoryKeySeparator

	var records []*entity.CensusRecord
	for key, item := range r.records.Items() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		records = append(records, item.Object.(*censusRow).toEntity())
	}

	slices.SortFunc(records, func(a, b *entity.CensusRecord) int {
		return strings.Compare(a.RecordKey, b.RecordKey)
	})
	return records, nil
}

// Len returns the number of stored records
func (r *CensusMemory) Len() int {
	return r.records.ItemCount()
}
