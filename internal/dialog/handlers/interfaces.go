package handlers

import (
	"context"
	"time"

	"github.com/futig/census-agent/internal/entity"
)

// SurveyStore persists final interview outcomes
type SurveyStore interface {
	WriteSurvey(ctx context.Context, record *entity.SurveyRecord) error
	WriteCallback(ctx context.Context, record *entity.CallbackRecord) error
}

// IDGenerator mints identifiers and timestamps
type IDGenerator interface {
	Now() time.Time
	CaseID() string
	CallbackCaseID() string
	ConfirmationNumber() string
}
