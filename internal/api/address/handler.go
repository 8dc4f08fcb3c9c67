package address

import (
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/futig/census-agent/internal/entity"
	"github.com/futig/census-agent/internal/pkg/logger"
	"github.com/futig/census-agent/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase AddressUsecase
}

func NewHandler(usecase AddressUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// Lookup handles GET /address/lookup?phone=
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "LookupAddress")

	resp, err := h.usecase.Lookup(ctx, r.URL.Query().Get("phone"))
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "address lookup answered",
		zap.String("case_id", resp.CaseID),
		zap.Bool("demo", resp.Demo),
	)

	response.Success(w, resp)
}

// Verify handles POST /address/verify
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "VerifyAddress")

	var req entity.VerifyAddressRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	ctx = logger.WithCase(ctx, req.CaseID)

	resp, err := h.usecase.Verify(ctx, &req)
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	response.Success(w, resp)
}
