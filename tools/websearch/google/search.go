package google

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mohammad-safakhou/qbit/pkg/httpx"
	"github.com/mohammad-safakhou/qbit/tools/websearch/models"
)

const endpoint = "https://www.googleapis.com/customsearch/v1"

// Search queries a Google Programmable Search Engine.
type Search struct {
	ApiKey   string
	EngineID string
	BaseURL  string
	Client   *httpx.Client
}

func (s Search) Search(ctx context.Context, q string, k int) ([]models.Result, error) {
	base := s.BaseURL
	if base == "" {
		base = endpoint
	}
	u := fmt.Sprintf("%s?key=%s&cx=%s&q=%s", base, url.QueryEscape(s.ApiKey), url.QueryEscape(s.EngineID), url.QueryEscape(q))

	var raw struct {
		Items []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"items"`
	}
	if err := s.Client.GetJSON(ctx, u, nil, &raw); err != nil {
		return nil, err
	}

	var out []models.Result
	for i, it := range raw.Items {
		if k > 0 && i >= k {
			break
		}
		out = append(out, models.Result{Title: it.Title, URL: it.Link, Snippet: it.Snippet})
	}
	return out, nil
}
