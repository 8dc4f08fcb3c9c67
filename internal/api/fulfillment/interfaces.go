package fulfillment

import (
	"context"

	"github.com/futig/census-agent/internal/entity"
)

type Bot interface {
	HandleTurn(ctx context.Context, event *entity.LexEvent) *entity.LexResponse
}

type RecordReader interface {
	ListRecords(ctx context.Context, caseID string) ([]*entity.CensusRecord, error)
}
