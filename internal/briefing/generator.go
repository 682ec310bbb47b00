package briefing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mohammad-safakhou/qbit/internal/apperr"
	"github.com/mohammad-safakhou/qbit/models"
	"github.com/mohammad-safakhou/qbit/provider/types"
	"github.com/mohammad-safakhou/qbit/tools/websearch"
	searchmodels "github.com/mohammad-safakhou/qbit/tools/websearch/models"
)

// ChatProvider is the slice of the LLM provider the generator needs.
type ChatProvider interface {
	StartChat(model string, tools []types.ToolDecl) types.Chat
}

// Generator runs one briefing generation: a chat against the model
// with a searchWeb function tool, a bounded tool loop, and structural
// parsing of the final answer.
type Generator struct {
	Provider      ChatProvider
	Searcher      websearch.WebSearcher
	Cache         *Cache
	Model         string
	MaxToolRounds int
	MaxHits       int
}

const searchToolName = "searchWeb"

var searchTool = types.ToolDecl{
	Name:        searchToolName,
	Description: "Searches the web for recent news articles based on a query.",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The search query to find news articles.",
			},
		},
		"required": []string{"query"},
	},
}

// Generate produces the briefing for the given parameters, consulting
// the cache first. The tool loop is capped at MaxToolRounds; a model
// that keeps asking for searches past that fails upstream instead of
// spinning.
func (g *Generator) Generate(ctx context.Context, params models.GenerationParams) (*models.Briefing, error) {
	if b, ok := g.Cache.Get(ctx, params); ok {
		slog.Info("briefing served from cache", "date", params.Date.Format("2006-01-02"), "country", params.Country)
		return b, nil
	}

	chat := g.Provider.StartChat(g.Model, []types.ToolDecl{searchTool})
	prompt := BuildPrompt(params.Date, params.Country, params.Category)

	turn, err := chat.SendText(ctx, prompt)
	if err != nil {
		return nil, apperr.NewUpstreamWrap("η δημιουργία της ενημέρωσης απέτυχε", err)
	}

	var allSources []models.StorySource
	rounds := 0
	for len(turn.ToolCalls) > 0 {
		rounds++
		toolRounds.Inc()
		if rounds > g.maxRounds() {
			return nil, apperr.NewUpstream(fmt.Sprintf("tool-call budget exhausted after %d rounds", g.maxRounds()))
		}

		results := make([]types.ToolResult, 0, len(turn.ToolCalls))
		for _, call := range turn.ToolCalls {
			if call.Name != searchToolName {
				results = append(results, types.ToolResult{ID: call.ID, Name: call.Name, Response: map[string]any{"error": "unknown tool"}})
				continue
			}
			query, _ := call.Args["query"].(string)
			hits := g.runSearch(ctx, query)
			for _, h := range hits {
				allSources = append(allSources, models.StorySource{Title: h.Title, URI: h.URL})
			}
			results = append(results, types.ToolResult{ID: call.ID, Name: call.Name, Response: map[string]any{"results": hits}})
		}

		turn, err = chat.SendToolResults(ctx, results)
		if err != nil {
			return nil, apperr.NewUpstreamWrap("η δημιουργία της ενημέρωσης απέτυχε", err)
		}
	}

	if strings.TrimSpace(turn.Text) == "" {
		return nil, apperr.NewUpstream("η AI δεν παρείχε απάντηση")
	}

	content, err := parseContent(turn.Text)
	if err != nil {
		slog.Error("unparseable model response", "error", err, "raw", truncate(turn.Text, 2048))
		return nil, apperr.NewUpstreamWrap("η απάντηση της AI δεν ήταν έγκυρη", err)
	}

	b := &models.Briefing{Content: *content, Sources: models.DedupSources(allSources)}
	if b.Empty() {
		return nil, apperr.NewUpstream("δεν βρέθηκαν ειδήσεις για τα δεδομένα κριτήρια")
	}
	assignStoryIDs(b)

	g.Cache.Put(ctx, params, b)
	slog.Info("briefing generated", "stories", len(b.Content.Stories), "sources", len(b.Sources), "tool_rounds", rounds)
	return b, nil
}

func (g *Generator) maxRounds() int {
	if g.MaxToolRounds > 0 {
		return g.MaxToolRounds
	}
	return 8
}

// runSearch never fails the generation: a search error feeds an empty
// result set back to the model and the model works with what it has.
func (g *Generator) runSearch(ctx context.Context, query string) []searchmodels.Result {
	if query == "" {
		return nil
	}
	hits, err := g.Searcher.Search(ctx, query, g.MaxHits)
	if err != nil {
		slog.Warn("web search failed", "query", query, "error", err)
		return nil
	}
	return hits
}

// parseContent strips markdown code fences and parses the briefing
// content object.
func parseContent(raw string) (*models.BriefingContent, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var content models.BriefingContent
	if err := json.Unmarshal([]byte(text), &content); err != nil {
		return nil, fmt.Errorf("unmarshal content: %w", err)
	}
	return &content, nil
}

func assignStoryIDs(b *models.Briefing) {
	for i := range b.Content.Stories {
		if b.Content.Stories[i].ID == "" {
			b.Content.Stories[i].ID = uuid.NewString()
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
