package middleware

import (
	"context"

	"github.com/futig/census-agent/internal/dialog/slots"
	"github.com/futig/census-agent/internal/entity"
)

// TurnFunc handles one normalized turn
type TurnFunc func(ctx context.Context, turn *slots.Turn) *entity.LexResponse
