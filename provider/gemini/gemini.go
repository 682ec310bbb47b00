package gemini_provider

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/mohammad-safakhou/qbit/pkg/httpx"
	"github.com/mohammad-safakhou/qbit/provider/types"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// client talks to the Gemini generateContent REST API.
type client struct {
	apiKey      string
	baseURL     string
	temperature float64
	maxTokens   int
	hc          *httpx.Client
}

func New(apiKey, baseURL string, temperature float64, maxTokens int, hc *httpx.Client) *client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &client{apiKey: apiKey, baseURL: baseURL, temperature: temperature, maxTokens: maxTokens, hc: hc}
}

// Wire shapes, trimmed to what the briefing flow uses.

type part struct {
	Text             string            `json:"text,omitempty"`
	FunctionCall     *functionCall     `json:"functionCall,omitempty"`
	FunctionResponse *functionResponse `json:"functionResponse,omitempty"`
}

type functionCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

type functionResponse struct {
	Name     string         `json:"name"`
	Response map[string]any `json:"response"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type functionDeclaration struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	Tools            []toolsDecl       `json:"tools,omitempty"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type toolsDecl struct {
	FunctionDeclarations []functionDeclaration `json:"functionDeclarations"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

type chat struct {
	c       *client
	model   string
	tools   []toolsDecl
	history []content
}

func (c *client) StartChat(model string, tools []types.ToolDecl) types.Chat {
	var decls []functionDeclaration
	for _, t := range tools {
		decls = append(decls, functionDeclaration{Name: t.Name, Description: t.Description, Parameters: t.Parameters})
	}
	ch := &chat{c: c, model: model}
	if decls != nil {
		ch.tools = []toolsDecl{{FunctionDeclarations: decls}}
	}
	return ch
}

func (ch *chat) SendText(ctx context.Context, text string) (types.Turn, error) {
	ch.history = append(ch.history, content{Role: "user", Parts: []part{{Text: text}}})
	return ch.send(ctx)
}

func (ch *chat) SendToolResults(ctx context.Context, results []types.ToolResult) (types.Turn, error) {
	parts := make([]part, 0, len(results))
	for _, r := range results {
		parts = append(parts, part{FunctionResponse: &functionResponse{Name: r.Name, Response: r.Response}})
	}
	ch.history = append(ch.history, content{Role: "user", Parts: parts})
	return ch.send(ctx)
}

func (ch *chat) send(ctx context.Context) (types.Turn, error) {
	req := generateRequest{
		Contents: ch.history,
		Tools:    ch.tools,
		GenerationConfig: &generationConfig{
			Temperature:     ch.c.temperature,
			MaxOutputTokens: ch.c.maxTokens,
		},
	}

	var resp generateResponse
	if err := ch.c.hc.PostJSON(ctx, ch.c.endpoint(ch.model), nil, req, &resp); err != nil {
		return types.Turn{}, err
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return types.Turn{}, fmt.Errorf("response blocked: %s", resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return types.Turn{}, errors.New("no candidates in response")
	}

	model := resp.Candidates[0].Content
	ch.history = append(ch.history, model)

	var turn types.Turn
	for _, p := range model.Parts {
		if p.FunctionCall != nil {
			turn.ToolCalls = append(turn.ToolCalls, types.ToolCall{Name: p.FunctionCall.Name, Args: p.FunctionCall.Args})
		}
		if p.Text != "" {
			turn.Text += p.Text
		}
	}
	return turn, nil
}

func (c *client) endpoint(model string) string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, model, url.QueryEscape(c.apiKey))
}

// Generate is a one-shot completion without tools or history.
func (c *client) Generate(ctx context.Context, model, prompt string) (string, error) {
	req := generateRequest{
		Contents:         []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{Temperature: c.temperature, MaxOutputTokens: c.maxTokens},
	}
	var resp generateResponse
	if err := c.hc.PostJSON(ctx, c.endpoint(model), nil, req, &resp); err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 {
		return "", errors.New("no candidates in response")
	}
	var text string
	for _, p := range resp.Candidates[0].Content.Parts {
		text += p.Text
	}
	if text == "" {
		return "", errors.New("empty response text")
	}
	return text, nil
}
