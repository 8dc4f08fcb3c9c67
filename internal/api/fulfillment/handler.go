package fulfillment

import (
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/futig/census-agent/internal/entity"
	"github.com/futig/census-agent/internal/pkg/formatter"
	"github.com/futig/census-agent/internal/pkg/logger"
	"github.com/futig/census-agent/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// maxEventSize bounds a single platform event body
const maxEventSize = 1 << 20

type Handler struct {
	bot        Bot
	records    RecordReader
	formatters *formatter.Factory
}

func NewHandler(bot Bot, records RecordReader) *Handler {
	return &Handler{
		bot:        bot,
		records:    records,
		formatters: formatter.NewFactory(),
	}
}

// HandleTurn handles POST /lex/fulfillment
func (h *Handler) HandleTurn(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "HandleTurn")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxEventSize))
	if err != nil {
		response.Error(ctx, w, http.StatusBadRequest, "failed to read request body", err)
		return
	}

	var event entity.LexEvent
	if err := sonic.Unmarshal(body, &event); err != nil {
		response.UsecaseError(ctx, w, fmt.Errorf("%w: %v", entity.ErrMalformedEvent, err))
		return
	}

	response.Success(w, h.bot.HandleTurn(ctx, &event))
}

// ListRecords handles GET /census/{case_id}/records
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	caseID := chi.URLParam(r, "case_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("case_id", caseID),
		zap.String("action", "ListRecords"),
	)

	records, err := h.records.ListRecords(ctx, caseID)
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	ctxzap.Debug(ctx, "census records listed", zap.Int("count", len(records)))

	response.Success(w, &entity.ListRecordsResponse{
		CaseID:  caseID,
		Records: records,
	})
}

// Summary handles GET /census/{case_id}/summary?format=md|pdf
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	caseID := chi.URLParam(r, "case_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("case_id", caseID),
		zap.String("action", "Summary"),
	)

	f, err := h.formatters.Create(formatter.Format(r.URL.Query().Get("format")))
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	records, err := h.records.ListRecords(ctx, caseID)
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	summary, err := formatter.NewCaseSummary(caseID, records)
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	body, err := f.Format(summary)
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s%s"`, caseID, f.FileExtension()))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
