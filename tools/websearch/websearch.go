package websearch

import (
	"context"
	"fmt"

	"github.com/mohammad-safakhou/qbit/config"
	"github.com/mohammad-safakhou/qbit/pkg/httpx"
	"github.com/mohammad-safakhou/qbit/tools/websearch/brave"
	"github.com/mohammad-safakhou/qbit/tools/websearch/google"
	"github.com/mohammad-safakhou/qbit/tools/websearch/models"
	"github.com/mohammad-safakhou/qbit/tools/websearch/serper"
)

// WebSearcher backs the model's searchWeb function tool.
type WebSearcher interface {
	Search(ctx context.Context, q string, k int) ([]models.Result, error)
}

type Provider string

const (
	GoogleProvider Provider = "google"
	SerperProvider Provider = "serper"
	BraveProvider  Provider = "brave"
)

func NewWebSearcher(cfg config.SearchConfig, hc *httpx.Client) (WebSearcher, error) {
	if hc == nil {
		hc = httpx.Default()
	}
	switch Provider(cfg.Provider) {
	case GoogleProvider:
		return google.Search{ApiKey: cfg.APIKey, EngineID: cfg.EngineID, Client: hc}, nil
	case SerperProvider:
		return serper.Search{ApiKey: cfg.APIKey, Client: hc}, nil
	case BraveProvider:
		return brave.Search{ApiKey: cfg.APIKey, Client: hc}, nil
	default:
		return nil, fmt.Errorf("unsupported search provider: %s", cfg.Provider)
	}
}
