package repository

import (
	"context"
	"fmt"
	"slices"

	"github.com/futig/census-agent/internal/entity"
	"github.com/redis/go-redis/v9"
)

var _ CensusRepository = &CensusRedis{}

// CensusRedis keeps one hash per case: field <recordKey>, value the JSON record
type CensusRedis struct {
	client redis.Cmdable
	prefix string
}

func NewCensusRedis(client redis.Cmdable, prefix string) *CensusRedis {
	return &CensusRedis{
		client: client,
		prefix: prefix,
	}
}

func (r *CensusRedis) key(caseID string) string {
	return r.prefix + caseID
}

func (r *CensusRedis) WriteSurvey(ctx context.Context, record *entity.SurveyRecord) error {
	row, err := surveyRow(record)
	if err != nil {
		return err
	}
	return r.put(ctx, row)
}

func (r *CensusRedis) WriteCallback(ctx context.Context, record *entity.CallbackRecord) error {
	row, err := callbackRow(record)
	if err != nil {
		return err
	}
	return r.put(ctx, row)
}

func (r *CensusRedis) put(ctx context.Context, row *censusRow) error {
	if err := r.client.HSet(ctx, r.key(row.caseID), row.recordKey, row.payload).Err(); err != nil {
		return fmt.Errorf("hset census record: %w", err)
	}
	return nil
}

func (r *CensusRedis) ListRecords(ctx context.Context, caseID string) ([]*entity.CensusRecord, error) {
	fields, err := r.client.HGetAll(ctx, r.key(caseID)).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall census records: %w", err)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	records := make([]*entity.CensusRecord, 0, len(keys))
	for _, k := range keys {
		records = append(records, &entity.CensusRecord{
			CaseID:    caseID,
			RecordKey: k,
			Type:      recordTypeOf(k),
			Payload:   []byte(fields[k]),
		})
	}
	return records, nil
}
