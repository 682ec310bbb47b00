package brave

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mohammad-safakhou/qbit/pkg/httpx"
	"github.com/mohammad-safakhou/qbit/tools/websearch/models"
)

const endpoint = "https://api.search.brave.com/res/v1/web/search"

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
	u := fmt.Sprintf("%s?q=%s&count=%d", base, url.QueryEscape(q), k)

	var raw struct {
		Web struct {
			Results []struct {
				Title   string `json:"title"`
				URL     string `json:"url"`
				Snippet string `json:"description"`
			} `json:"results"`
		} `json:"web"`
	}
	headers := map[string]string{
		"Accept":               "application/json",
		"X-Subscription-Token": s.ApiKey,
	}
	if err := s.Client.GetJSON(ctx, u, headers, &raw); err != nil {
		return nil, err
	}

	var out []models.Result
	for i, r := range raw.Web.Results {
		if k > 0 && i >= k {
			break
		}
		out = append(out, models.Result{Title: r.Title, URL: r.URL, Snippet: r.Snippet})
	}
	return out, nil
}
