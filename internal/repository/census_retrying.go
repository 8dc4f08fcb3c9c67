package repository

import (
	"context"
	"errors"

	"github.com/avast/retry-go/v4"
	"github.com/futig/census-agent/internal/entity"
	pkgRetry "github.com/futig/census-agent/internal/pkg/retry"
	"go.uber.org/zap"
)

var _ CensusRepository = &CensusRetrying{}

// CensusRetrying retries writes of the wrapped repository. Reads pass through.
type CensusRetrying struct {
	next   CensusRepository
	cfg    pkgRetry.RetryConfig
	logger *zap.Logger
}

func NewCensusRetrying(next CensusRepository, cfg pkgRetry.RetryConfig, logger *zap.Logger) *CensusRetrying {
	return &CensusRetrying{
		next:   next,
		cfg:    cfg,
		logger: logger,
	}
}

func (r *CensusRetrying) WriteSurvey(ctx context.Context, record *entity.SurveyRecord) error {
	return r.do(ctx, record.CaseID, func(ctx context.Context) error {
		return r.next.WriteSurvey(ctx, record)
	})
}

func (r *CensusRetrying) WriteCallback(ctx context.Context, record *entity.CallbackRecord) error {
	return r.do(ctx, record.CaseID, func(ctx context.Context) error {
		return r.next.WriteCallback(ctx, record)
	})
}

func (r *CensusRetrying) ListRecords(ctx context.Context, caseID string) ([]*entity.CensusRecord, error) {
	return r.next.ListRecords(ctx, caseID)
}

func (r *CensusRetrying) do(ctx context.Context, caseID string, write func(ctx context.Context) error) error {
	return r.cfg.Do(ctx, write,
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			r.logger.Warn("retrying census write",
				zap.Uint("attempt", n+1),
				zap.String("case_id", caseID),
				zap.Error(err),
			)
		}),
	)
}

// isRetryable rejects errors a second attempt cannot fix
func isRetryable(err error) bool {
	return !errors.Is(err, entity.ErrMissingCaseID) &&
		!errors.Is(err, context.Canceled)
}
