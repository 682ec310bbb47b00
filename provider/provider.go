package provider

import (
	"context"
	"errors"

	"github.com/mohammad-safakhou/qbit/config"
	"github.com/mohammad-safakhou/qbit/pkg/httpx"
	gemini_provider "github.com/mohammad-safakhou/qbit/provider/gemini"
	openai_provider "github.com/mohammad-safakhou/qbit/provider/openai"
	"github.com/mohammad-safakhou/qbit/provider/types"
)

// Client names an LLM provider implementation.
type Client string

const (
	Gemini Client = "gemini"
	OpenAI Client = "openai"
)

// Provider is the interface all LLM implementations satisfy. StartChat
// opens a multi-turn conversation with function tools; Generate is a
// one-shot text completion.
type Provider interface {
	StartChat(model string, tools []types.ToolDecl) types.Chat
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// NewProvider builds the configured LLM client. Constructed explicitly
// and passed into handlers; there is no package-global instance.
func NewProvider(cfg config.LLMConfig, hc *httpx.Client) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("llm api key not configured")
	}
	if hc == nil {
		hc = httpx.New(cfg.Timeout, cfg.MaxRetries, cfg.RetryBackoff)
	}
	switch Client(cfg.Provider) {
	case Gemini:
		return gemini_provider.New(cfg.APIKey, cfg.BaseURL, cfg.Temperature, cfg.MaxTokens, hc), nil
	case OpenAI:
		return openai_provider.New(cfg.APIKey, cfg.BaseURL, cfg.Temperature, cfg.MaxTokens, hc), nil
	default:
		return nil, errors.New("unsupported LLM provider: " + cfg.Provider)
	}
}
