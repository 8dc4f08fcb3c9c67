package commands

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/futig/census-agent/internal/builder"
	"github.com/futig/census-agent/internal/config"
	"github.com/futig/census-agent/internal/entity"
	pkghttp "github.com/futig/census-agent/pkg/http"
	"go.uber.org/zap"
)

// runner plays turns against a bot and reads back what it stored
type runner interface {
	Turn(ctx context.Context, event *entity.LexEvent) (*entity.LexResponse, error)
	Records(ctx context.Context, caseID string) ([]*entity.CensusRecord, error)
	Close(ctx context.Context) error
}

// newRunner returns a remote runner when --endpoint is set, otherwise an
// in-process bot. forceMemory keeps local runs off the configured store.
func (o *rootOptions) newRunner(ctx context.Context, forceMemory bool) (runner, error) {
	if o.endpoint != "" {
		logger, err := builder.SetupLogger("info")
		if err != nil {
			return nil, err
		}
		return newRemoteRunner(o.endpoint, o.token, logger), nil
	}

	cfg, err := config.LoadConfig(o.env)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if forceMemory {
		cfg.StoreBackend = config.StoreBackendMemory
	}

	logger, err := builder.SetupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	components, err := builder.BuildComponents(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build components: %w", err)
	}
	return &localRunner{components: components}, nil
}

type localRunner struct {
	components *builder.Components
}

func (r *localRunner) Turn(ctx context.Context, event *entity.LexEvent) (*entity.LexResponse, error) {
	return r.components.Bot.HandleTurn(ctx, event), nil
}

func (r *localRunner) Records(ctx context.Context, caseID string) ([]*entity.CensusRecord, error) {
	return r.components.Census.ListRecords(ctx, caseID)
}

func (r *localRunner) Close(ctx context.Context) error {
	return r.components.Close(ctx)
}

type remoteRunner struct {
	conn *pkghttp.Connector
}

func newRemoteRunner(endpoint, token string, logger *zap.Logger) *remoteRunner {
	return &remoteRunner{
		conn: pkghttp.NewConnector(
			&pkghttp.ConnectorConfig{BaseURL: endpoint, Logger: logger},
			pkghttp.WithAuthToken(token),
			pkghttp.WithRequestLogging(),
		),
	}
}

func (r *remoteRunner) Turn(ctx context.Context, event *entity.LexEvent) (*entity.LexResponse, error) {
	var resp entity.LexResponse
	if err := r.conn.DoRequest(ctx, http.MethodPost, "/lex/fulfillment", event, &resp); err != nil {
		return nil, fmt.Errorf("fulfill turn: %w", err)
	}
	return &resp, nil
}

func (r *remoteRunner) Records(ctx context.Context, caseID string) ([]*entity.CensusRecord, error) {
	var resp entity.ListRecordsResponse
	if err := r.conn.DoRequest(ctx, http.MethodGet, "/census/"+url.PathEscape(caseID)+"/records", nil, &resp); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return resp.Records, nil
}

func (r *remoteRunner) Close(context.Context) error {
	return nil
}
