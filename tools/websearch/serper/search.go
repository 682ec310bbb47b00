package serper

import (
	"context"

	"github.com/mohammad-safakhou/qbit/pkg/httpx"
	"github.com/mohammad-safakhou/qbit/tools/websearch/models"
)

const endpoint = "https://google.serper.dev/search"

type Search struct {
	ApiKey  string
	BaseURL string
	Client  *httpx.Client
}

func (s Search) Search(ctx context.Context, q string, k int) ([]models.Result, error) {
	base := s.BaseURL
	if base == "" {
		base = endpoint
	}
	payload := map[string]any{"q": q, "num": k}

	var raw struct {
		Organic []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"organic"`
	}
	headers := map[string]string{"X-API-KEY": s.ApiKey}
	if err := s.Client.PostJSON(ctx, base, headers, payload, &raw); err != nil {
		return nil, err
	}

	var out []models.Result
	for i, it := range raw.Organic {
		if k > 0 && i >= k {
			break
		}
		out = append(out, models.Result{Title: it.Title, URL: it.Link, Snippet: it.Snippet})
	}
	return out, nil
}
