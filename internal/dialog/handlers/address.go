package handlers

import (
	"context"

	"github.com/futig/census-agent/internal/dialog/render"
	"github.com/futig/census-agent/internal/dialog/slots"
	"github.com/futig/census-agent/internal/dialog/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// AddressHandler handles VerifyAddressIntent
type AddressHandler struct {
	BaseHandler
}

// NewAddressHandler creates a new address verification handler
func NewAddressHandler() *AddressHandler {
	return &AddressHandler{
		BaseHandler: BaseHandler{intentName: IntentVerifyAddress},
	}
}

// Handle records whether the caller confirmed or corrected the address on file
func (h *AddressHandler) Handle(ctx context.Context, turn *slots.Turn, st *state.State) (*Directive, error) {
	if turn.Slots.IsNo(slots.IsAdultResident) {
		ctxzap.Info(ctx, "caller is not an adult resident")
		return Close(render.MsgNoAdultResident), nil
	}

	if turn.Slots.IsNo(slots.AddressConfirmation) {
		st.Address.Corrected = true
		setIfPresent(&st.Address.Street, turn.Slots, slots.StreetAddress)
		setIfPresent(&st.Address.City, turn.Slots, slots.City)
		setIfPresent(&st.Address.State, turn.Slots, slots.State)
		setIfPresent(&st.Address.ZipCode, turn.Slots, slots.ZipCode)

		ctxzap.Info(ctx, "address corrected",
			zap.String("case_id", st.CaseID),
			zap.String("zip_code", st.Address.ZipCode),
		)
	}

	st.Address.Verified = true
	return Close(render.MsgAddressVerified), nil
}

// setIfPresent overwrites dst only when the slot was filled
func setIfPresent(dst *string, values slots.Values, name string) {
	if v := values.TextOrEmpty(name); v != "" {
		*dst = v
	}
}
