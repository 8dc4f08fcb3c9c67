package handlers

import (
	"context"

	"github.com/futig/census-agent/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// EventPersistenceOutcome is the log event alerting keys on
const EventPersistenceOutcome = "persistence_outcome"

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// persist runs a best-effort write. A failure is logged and swallowed so the
// caller still gets its confirmation.
func persist(ctx context.Context, recordType entity.RecordType, caseID string, write func(context.Context) error) bool {
	fields := []zap.Field{
		zap.String("event", EventPersistenceOutcome),
		zap.String("record_type", string(recordType)),
		zap.String("case_id", caseID),
	}

	var err error
	if caseID == "" {
		err = entity.ErrMissingCaseID
	} else {
		err = write(ctx)
	}

	if err != nil {
		ctxzap.Error(ctx, "record not persisted",
			append(fields, zap.String("outcome", outcomeFailure), zap.Error(err))...,
		)
		return false
	}

	ctxzap.Info(ctx, "record persisted", append(fields, zap.String("outcome", outcomeSuccess))...)
	return true
}
