package response

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/futig/census-agent/internal/entity"
)

func TestUsecaseError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: phone 555", entity.ErrAddressNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: caseId", entity.ErrMissingField), http.StatusBadRequest},
		{entity.ErrMalformedEvent, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		UsecaseError(context.Background(), rec, tt.err)

		if rec.Code != tt.want {
			t.Errorf("%v: status = %d, want %d", tt.err, rec.Code, tt.want)
		}
		var body entity.ErrorResponse
		if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Error != http.StatusText(tt.want) {
			t.Errorf("%v: error = %q", tt.err, body.Error)
		}
	}
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]string{"status": "healthy"})

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	if got := rec.Body.String(); got != `{"status":"healthy"}` {
		t.Errorf("body = %s", got)
	}
}
