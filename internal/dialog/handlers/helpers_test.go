package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/futig/census-agent/internal/dialog/slots"
	"github.com/futig/census-agent/internal/dialog/state"
	"github.com/futig/census-agent/internal/entity"
	"github.com/futig/census-agent/internal/pkg/idgen"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	fixedNow       = time.Date(2026, 4, 1, 14, 30, 0, 123e6, time.UTC)
	errStoreFailed = errors.New("store unavailable")
)

// recordingStore captures writes, or fails every write when err is set
type recordingStore struct {
	err       error
	surveys   []*entity.SurveyRecord
	callbacks []*entity.CallbackRecord
}

func (s *recordingStore) WriteSurvey(_ context.Context, record *entity.SurveyRecord) error {
	if s.err != nil {
		return s.err
	}
	s.surveys = append(s.surveys, record)
	return nil
}

func (s *recordingStore) WriteCallback(_ context.Context, record *entity.CallbackRecord) error {
	if s.err != nil {
		return s.err
	}
	s.callbacks = append(s.callbacks, record)
	return nil
}

func fixedIDs() *idgen.Generator {
	return idgen.NewWith(func() time.Time { return fixedNow }, func(int) int { return 0 })
}

// observedContext returns a context carrying a logger whose entries can be inspected
func observedContext() (context.Context, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return ctxzap.ToContext(context.Background(), zap.New(core)), logs
}

// newTurn builds a turn the way the platform delivers it
func newTurn(intent string, slotValues map[string]string, attrs map[string]string) *slots.Turn {
	raw := make(map[string]*entity.LexSlot, len(slotValues))
	for name, v := range slotValues {
		raw[name] = &entity.LexSlot{Value: &entity.LexSlotValue{InterpretedValue: v, OriginalValue: v}}
	}
	return slots.Extract(&entity.LexEvent{
		SessionID: "session-1",
		SessionState: entity.LexSessionState{
			Intent:            entity.LexIntent{Name: intent, Slots: raw},
			SessionAttributes: attrs,
		},
	})
}

// run applies h to the bag and returns the directive and the encoded bag
func run(t *testing.T, ctx context.Context, h Handler, slotValues, attrs map[string]string) (*Directive, map[string]string) {
	t.Helper()

	turn := newTurn(h.GetIntent(), slotValues, attrs)
	st, err := state.Decode(turn.Attributes)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	directive, err := h.Handle(ctx, turn, st)
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	return directive, state.Encode(turn.Attributes, st)
}

func assertClose(t *testing.T, d *Directive, message string) {
	t.Helper()
	if d.Kind != DirectiveClose {
		t.Fatalf("directive = %s, want close", d.Kind)
	}
	if message != "" && d.Message != message {
		t.Errorf("message = %q, want %q", d.Message, message)
	}
}
