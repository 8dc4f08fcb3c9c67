package handlers

import (
	"context"

	"github.com/futig/census-agent/internal/dialog/render"
	"github.com/futig/census-agent/internal/dialog/slots"
	"github.com/futig/census-agent/internal/dialog/state"
)

// HousingHandler handles HousingInfoIntent
type HousingHandler struct {
	BaseHandler
}

// NewHousingHandler creates a new housing handler
func NewHousingHandler() *HousingHandler {
	return &HousingHandler{
		BaseHandler: BaseHandler{intentName: IntentHousingInfo},
	}
}

// Handle records tenure and contact phone when supplied
func (h *HousingHandler) Handle(ctx context.Context, turn *slots.Turn, st *state.State) (*Directive, error) {
	setIfPresent(&st.HousingTenure, turn.Slots, slots.HousingTenure)
	setIfPresent(&st.ContactPhone, turn.Slots, slots.PhoneNumber)
	return Close(render.MsgHousingRecorded), nil
}
