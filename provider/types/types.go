// Package types holds the provider-neutral chat shapes. Both the
// gemini and openai clients translate these to their wire formats.
package types

import "context"

// ToolDecl declares a function tool the model may call. Parameters is
// a JSON-schema object.
type ToolDecl struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// ToolCall is the model asking for a tool invocation. ID is set by
// providers that correlate calls and results (openai); empty otherwise.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}

// ToolResult feeds one tool invocation's outcome back to the model.
type ToolResult struct {
	ID       string
	Name     string
	Response map[string]any
}

// Turn is one model reply: either final text, or one or more tool
// calls the caller must answer before the conversation continues.
type Turn struct {
	Text      string
	ToolCalls []ToolCall
}

// Chat is a stateful conversation. Implementations keep the history;
// they are not safe for concurrent use.
type Chat interface {
	SendText(ctx context.Context, text string) (Turn, error)
	SendToolResults(ctx context.Context, results []ToolResult) (Turn, error)
}
