package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	addressapi "github.com/futig/census-agent/internal/api/address"
	fulfillmentapi "github.com/futig/census-agent/internal/api/fulfillment"
	"github.com/futig/census-agent/internal/config"
	"github.com/futig/census-agent/internal/dialog"
	"github.com/futig/census-agent/internal/dialog/slots"
	"github.com/futig/census-agent/internal/dialog/state"
	"github.com/futig/census-agent/internal/entity"
	"github.com/futig/census-agent/internal/pkg/idgen"
	"github.com/futig/census-agent/internal/pkg/validator"
	"github.com/futig/census-agent/internal/repository"
	addressuc "github.com/futig/census-agent/internal/usecase/address"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := zap.NewNop()
	ids := idgen.New()
	store := repository.NewCensusMemory()
	addresses := repository.NewAddressMemory(entity.Address{
		AddressID:     "ADDR-1",
		PhoneNumber:   "5551234567",
		StreetAddress: "42 Elm Street",
		City:          "Dayton",
		State:         "OH",
		ZipCode:       "45402",
		CaseID:        "CASE-ELM42",
	})

	bot := dialog.NewBot(&config.DialogConfig{FallbackThreshold: 3}, store, ids, logger)
	uc := addressuc.NewUsecase(addresses, ids, validator.New(), config.AddressConfig{DemoFallback: true})

	router := SetupRouter(
		fulfillmentapi.NewHandler(bot, store),
		addressapi.NewHandler(uc),
		5*time.Second,
		logger,
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func postTurn(t *testing.T, srv *httptest.Server, intent string, values, attrs map[string]string) *entity.LexResponse {
	t.Helper()

	raw := make(map[string]*entity.LexSlot, len(values))
	for name, v := range values {
		raw[name] = &entity.LexSlot{Value: &entity.LexSlotValue{InterpretedValue: v, OriginalValue: v}}
	}
	body, err := sonic.Marshal(&entity.LexEvent{
		SessionID: "http-session",
		SessionState: entity.LexSessionState{
			Intent:            entity.LexIntent{Name: intent, Slots: raw},
			SessionAttributes: attrs,
		},
	})
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}

	resp, err := http.Post(srv.URL+"/lex/fulfillment", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post turn: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("%s: status = %d", intent, resp.StatusCode)
	}

	var out entity.LexResponse
	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return &out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestFulfillmentRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	resp := postTurn(t, srv, "WelcomeIntent", map[string]string{slots.ConsentToProceed: "yes"}, map[string]string{"contactId": "c-1"})
	attrs := resp.SessionState.SessionAttributes
	if attrs["contactId"] != "c-1" {
		t.Error("unknown attributes must survive the turn")
	}
	caseID := attrs[state.KeyCaseID]
	if !strings.HasPrefix(caseID, "CASE-") {
		t.Fatalf("case id = %q", caseID)
	}

	resp = postTurn(t, srv, "HouseholdCountIntent", map[string]string{slots.HouseholdCount: "1", slots.CountConfirmation: "yes"}, attrs)
	resp = postTurn(t, srv, "CollectPersonInfoIntent", map[string]string{slots.FirstName: "Ana", slots.Age: "41"}, resp.SessionState.SessionAttributes)
	resp = postTurn(t, srv, "CompleteSurveyIntent", nil, resp.SessionState.SessionAttributes)

	if resp.SessionState.DialogAction.Type != entity.DialogActionClose {
		t.Errorf("dialog action = %s", resp.SessionState.DialogAction.Type)
	}
	if resp.SessionState.SessionAttributes[state.KeySurveyStatus] != string(entity.SurveyStatusComplete) {
		t.Errorf("status = %q", resp.SessionState.SessionAttributes[state.KeySurveyStatus])
	}

	records, err := http.Get(srv.URL + "/census/" + caseID + "/records")
	if err != nil {
		t.Fatalf("list records: %v", err)
	}
	defer records.Body.Close()

	var listed entity.ListRecordsResponse
	if err := sonic.ConfigDefault.NewDecoder(records.Body).Decode(&listed); err != nil {
		t.Fatalf("decode records: %v", err)
	}
	if len(listed.Records) != 1 || listed.Records[0].Type != entity.RecordTypeSurveyComplete {
		t.Errorf("records = %+v", listed.Records)
	}

	summary, err := http.Get(srv.URL + "/census/" + caseID + "/summary?format=md")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	text, _ := io.ReadAll(summary.Body)
	summary.Body.Close()
	confirmation := resp.SessionState.SessionAttributes[state.KeyConfirmationNumber]
	if summary.StatusCode != http.StatusOK || !strings.Contains(string(text), confirmation) {
		t.Errorf("summary = %d %s", summary.StatusCode, text)
	}

	summary, err = http.Get(srv.URL + "/census/" + caseID + "/summary?format=docx")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	summary.Body.Close()
	if summary.StatusCode != http.StatusBadRequest {
		t.Errorf("unsupported format status = %d, want 400", summary.StatusCode)
	}
}

func TestFulfillmentUnknownIntentDelegates(t *testing.T) {
	srv := newTestServer(t)

	attrs := map[string]string{"caseId": "CASE-1", "custom": "kept"}
	resp := postTurn(t, srv, "OrderPizzaIntent", nil, attrs)

	if resp.SessionState.DialogAction.Type != entity.DialogActionDelegate {
		t.Errorf("dialog action = %s", resp.SessionState.DialogAction.Type)
	}
	if resp.SessionState.SessionAttributes["custom"] != "kept" {
		t.Errorf("attributes = %v", resp.SessionState.SessionAttributes)
	}
}

func TestFulfillmentMalformedEvent(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/lex/fulfillment", "application/json", strings.NewReader(`{"sessionState":`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestAddressRoutes(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/address/lookup?phone=%2B1%20555-123-4567")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	var lookup entity.AddressLookupResponse
	sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&lookup)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || lookup.AddressID != "ADDR-1" || lookup.AttemptNumber != 1 {
		t.Errorf("lookup = %d %+v", resp.StatusCode, lookup)
	}

	resp, err = http.Get(srv.URL + "/address/lookup")
	if err != nil {
		t.Fatalf("lookup without phone: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing phone status = %d, want 400", resp.StatusCode)
	}

	body := `{"caseId":"CASE-ELM42","addressId":"ADDR-1","isCorrect":false,"correctedAddress":"44 Elm Street"}`
	resp, err = http.Post(srv.URL+"/address/verify", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	var verify entity.VerifyAddressResponse
	sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&verify)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || verify.ProceedWithSurvey || verify.CaseID != "CASE-ELM42" {
		t.Errorf("verify = %d %+v", resp.StatusCode, verify)
	}

	resp, err = http.Post(srv.URL+"/address/verify", "application/json", strings.NewReader(`{"isCorrect":true}`))
	if err != nil {
		t.Fatalf("verify without case: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing case status = %d, want 400", resp.StatusCode)
	}
}

func TestDocsServed(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/docs/swagger.yaml")
	if err != nil {
		t.Fatalf("get docs: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}
