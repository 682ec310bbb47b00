package openai_provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mohammad-safakhou/qbit/pkg/httpx"
	"github.com/mohammad-safakhou/qbit/provider/types"
)

const defaultBaseURL = "https://api.openai.com/v1"

// client talks to the OpenAI chat completions API.
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

type message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []toolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

type toolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type tool struct {
	Type     string `json:"type"`
	Function struct {
		Name        string         `json:"name"`
		Description string         `json:"description,omitempty"`
		Parameters  map[string]any `json:"parameters,omitempty"`
	} `json:"function"`
}

type request struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Tools       []tool    `json:"tools,omitempty"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type response struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

type chat struct {
	c       *client
	model   string
	tools   []tool
	history []message
}

func (c *client) StartChat(model string, decls []types.ToolDecl) types.Chat {
	var tools []tool
	for _, d := range decls {
		var t tool
		t.Type = "function"
		t.Function.Name = d.Name
		t.Function.Description = d.Description
		t.Function.Parameters = d.Parameters
		tools = append(tools, t)
	}
	return &chat{c: c, model: model, tools: tools}
}

func (ch *chat) SendText(ctx context.Context, text string) (types.Turn, error) {
	ch.history = append(ch.history, message{Role: "user", Content: text})
	return ch.send(ctx)
}

func (ch *chat) SendToolResults(ctx context.Context, results []types.ToolResult) (types.Turn, error) {
	for _, r := range results {
		body, err := json.Marshal(r.Response)
		if err != nil {
			return types.Turn{}, fmt.Errorf("marshal tool result: %w", err)
		}
		ch.history = append(ch.history, message{Role: "tool", ToolCallID: r.ID, Content: string(body)})
	}
	return ch.send(ctx)
}

func (ch *chat) send(ctx context.Context) (types.Turn, error) {
	req := request{
		Model:       ch.model,
		Messages:    ch.history,
		Tools:       ch.tools,
		Temperature: ch.c.temperature,
		MaxTokens:   ch.c.maxTokens,
	}

	var resp response
	headers := map[string]string{"Authorization": "Bearer " + ch.c.apiKey}
	if err := ch.c.hc.PostJSON(ctx, ch.c.baseURL+"/chat/completions", headers, req, &resp); err != nil {
		return types.Turn{}, err
	}
	if len(resp.Choices) == 0 {
		return types.Turn{}, errors.New("no choices in response")
	}

	msg := resp.Choices[0].Message
	ch.history = append(ch.history, msg)

	turn := types.Turn{Text: msg.Content}
	for _, tc := range msg.ToolCalls {
		var args map[string]any
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
			return types.Turn{}, fmt.Errorf("decode tool arguments: %w", err)
		}
		turn.ToolCalls = append(turn.ToolCalls, types.ToolCall{ID: tc.ID, Name: tc.Function.Name, Args: args})
	}
	return turn, nil
}

// Generate is a one-shot completion without tools or history.
func (c *client) Generate(ctx context.Context, model, prompt string) (string, error) {
	req := request{
		Model:       model,
		Messages:    []message{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}
	var resp response
	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}
	if err := c.hc.PostJSON(ctx, c.baseURL+"/chat/completions", headers, req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("empty completion")
	}
	return resp.Choices[0].Message.Content, nil
}
