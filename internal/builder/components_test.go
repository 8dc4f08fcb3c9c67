package builder

import (
	"context"
	"testing"

	"github.com/futig/census-agent/internal/config"
	"github.com/futig/census-agent/internal/entity"
	"github.com/futig/census-agent/internal/repository"
	"go.uber.org/zap"
)

func memoryConfig(t *testing.T, attempts string) *config.Config {
	t.Helper()
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("STORE_RETRY_ATTEMPTS", attempts)

	cfg, err := config.Parse()
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	return cfg
}

func TestBuildComponentsMemory(t *testing.T) {
	ctx := context.Background()

	c, err := BuildComponents(ctx, memoryConfig(t, "1"), zap.NewNop())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer c.Close(ctx)

	if _, ok := c.Census.(*repository.CensusMemory); !ok {
		t.Errorf("census store = %T, want *CensusMemory", c.Census)
	}
	if _, ok := c.Address.(*repository.AddressMemory); !ok {
		t.Errorf("address store = %T, want *AddressMemory", c.Address)
	}

	resp := c.Bot.HandleTurn(ctx, &entity.LexEvent{
		SessionState: entity.LexSessionState{Intent: entity.LexIntent{Name: "SpeakToAgentIntent"}},
	})
	if resp.SessionState.SessionAttributes["requestedAction"] != "TRANSFER_TO_AGENT" {
		t.Errorf("attributes = %v", resp.SessionState.SessionAttributes)
	}
}

func TestBuildComponentsWrapsRetries(t *testing.T) {
	ctx := context.Background()

	c, err := BuildComponents(ctx, memoryConfig(t, "3"), zap.NewNop())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer c.Close(ctx)

	if _, ok := c.Census.(*repository.CensusRetrying); !ok {
		t.Errorf("census store = %T, want *CensusRetrying", c.Census)
	}
}

func TestSetupLogger(t *testing.T) {
	if _, err := SetupLogger("debug"); err != nil {
		t.Errorf("debug: %v", err)
	}
	if _, err := SetupLogger("chatty"); err == nil {
		t.Error("unknown level must fail")
	}
}
