package briefing

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mohammad-safakhou/qbit/internal/apperr"
	"github.com/mohammad-safakhou/qbit/models"
	"github.com/mohammad-safakhou/qbit/provider/types"
	searchmodels "github.com/mohammad-safakhou/qbit/tools/websearch/models"
)

// fakeChat replays a scripted sequence of turns.
type fakeChat struct {
	turns []types.Turn
	idx   int

	toolResults [][]types.ToolResult
}

func (f *fakeChat) next() (types.Turn, error) {
	if f.idx >= len(f.turns) {
		return types.Turn{}, errors.New("script exhausted")
	}
	t := f.turns[f.idx]
	f.idx++
	return t, nil
}

func (f *fakeChat) SendText(ctx context.Context, text string) (types.Turn, error) {
	return f.next()
}

func (f *fakeChat) SendToolResults(ctx context.Context, results []types.ToolResult) (types.Turn, error) {
	f.toolResults = append(f.toolResults, results)
	return f.next()
}

type fakeProvider struct{ chat *fakeChat }

func (f *fakeProvider) StartChat(model string, tools []types.ToolDecl) types.Chat { return f.chat }

type fakeSearcher struct {
	hits    map[string][]searchmodels.Result
	queries []string
	err     error
}

func (f *fakeSearcher) Search(ctx context.Context, q string, k int) ([]searchmodels.Result, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return f.hits[q], nil
}

func searchCall(query string) types.Turn {
	return types.Turn{ToolCalls: []types.ToolCall{{Name: "searchWeb", Args: map[string]any{"query": query}}}}
}

func finalText(s string) types.Turn { return types.Turn{Text: s} }

var validContent = `{"greeting":"Καλησπέρα","intro":"i","dailySummary":"ds","stories":[{"category":"Politics","title":"A","summary":"B","importance":2}],"outro":"o"}`

func params() models.GenerationParams {
	return models.GenerationParams{Date: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), Country: "Ελλάδα"}
}

func TestGenerateRunsToolLoopAndCollectsSources(t *testing.T) {
	chat := &fakeChat{turns: []types.Turn{
		searchCall("q1"),
		searchCall("q2"),
		finalText("```json\n" + validContent + "\n```"),
	}}
	searcher := &fakeSearcher{hits: map[string][]searchmodels.Result{
		"q1": {{Title: "X", URL: "https://x.test"}, {Title: "Y", URL: "https://y.test"}},
		"q2": {{Title: "X dup", URL: "https://x.test"}},
	}}
	g := &Generator{Provider: &fakeProvider{chat: chat}, Searcher: searcher, Model: "m", MaxToolRounds: 8}

	b, err := g.Generate(context.Background(), params())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(searcher.queries) != 2 {
		t.Fatalf("expected 2 searches, got %v", searcher.queries)
	}
	if len(b.Sources) != 2 {
		t.Fatalf("sources not deduped: %+v", b.Sources)
	}
	if b.Sources[0].Title != "X" {
		t.Fatalf("first-seen title must win: %+v", b.Sources[0])
	}
	if b.Content.Stories[0].ID == "" {
		t.Fatal("stories must get ids assigned")
	}
	// Search results must be fed back to the model.
	if len(chat.toolResults) != 2 {
		t.Fatalf("expected 2 tool-result turns, got %d", len(chat.toolResults))
	}
	if chat.toolResults[0][0].Name != "searchWeb" {
		t.Fatalf("unexpected tool result %+v", chat.toolResults[0][0])
	}
}

func TestGenerateBoundsToolRounds(t *testing.T) {
	// A model that never stops asking for searches.
	turns := make([]types.Turn, 0, 20)
	for i := 0; i < 20; i++ {
		turns = append(turns, searchCall("again"))
	}
	chat := &fakeChat{turns: turns}
	g := &Generator{Provider: &fakeProvider{chat: chat}, Searcher: &fakeSearcher{}, Model: "m", MaxToolRounds: 3}

	_, err := g.Generate(context.Background(), params())
	var ue *apperr.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if !strings.Contains(ue.Message, "tool-call budget") {
		t.Fatalf("unexpected message %q", ue.Message)
	}
	// 3 rounds allowed: SendText + 3 SendToolResults at most.
	if chat.idx > 4 {
		t.Fatalf("loop ran %d turns past the budget", chat.idx)
	}
}

func TestGenerateSearchFailureFeedsEmptyResults(t *testing.T) {
	chat := &fakeChat{turns: []types.Turn{
		searchCall("q"),
		finalText(validContent),
	}}
	g := &Generator{
		Provider: &fakeProvider{chat: chat},
		Searcher: &fakeSearcher{err: errors.New("search api down")},
		Model:    "m",
	}

	b, err := g.Generate(context.Background(), params())
	if err != nil {
		t.Fatalf("search failure must not abort generation: %v", err)
	}
	if len(b.Sources) != 0 {
		t.Fatalf("expected no sources, got %+v", b.Sources)
	}
}

func TestGenerateEmptyAnswerIsUpstreamFailure(t *testing.T) {
	chat := &fakeChat{turns: []types.Turn{finalText("   ")}}
	g := &Generator{Provider: &fakeProvider{chat: chat}, Searcher: &fakeSearcher{}, Model: "m"}

	var ue *apperr.UpstreamError
	if _, err := g.Generate(context.Background(), params()); !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}

func TestGenerateUnparseableAnswerIsUpstreamFailure(t *testing.T) {
	chat := &fakeChat{turns: []types.Turn{finalText("Sorry, I cannot help with that.")}}
	g := &Generator{Provider: &fakeProvider{chat: chat}, Searcher: &fakeSearcher{}, Model: "m"}

	var ue *apperr.UpstreamError
	if _, err := g.Generate(context.Background(), params()); !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}

func TestGenerateEmptyBriefingIsUpstreamFailure(t *testing.T) {
	chat := &fakeChat{turns: []types.Turn{
		finalText(`{"greeting":"Καλησπέρα","intro":"","stories":[],"outro":""}`),
	}}
	g := &Generator{Provider: &fakeProvider{chat: chat}, Searcher: &fakeSearcher{}, Model: "m"}

	var ue *apperr.UpstreamError
	if _, err := g.Generate(context.Background(), params()); !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError for empty briefing, got %v", err)
	}
}

func TestParseContentStripsFences(t *testing.T) {
	for _, raw := range []string{
		validContent,
		"```json\n" + validContent + "\n```",
		"```\n" + validContent + "\n```",
		"  \n```json" + validContent + "```  ",
	} {
		content, err := parseContent(raw)
		if err != nil {
			t.Fatalf("parseContent(%q): %v", raw[:20], err)
		}
		if content.Greeting != "Καλησπέρα" {
			t.Fatalf("unexpected greeting %q", content.Greeting)
		}
	}
}
