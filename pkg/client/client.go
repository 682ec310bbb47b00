// Package client is a small Go consumer of the qbit HTTP API. It is
// what the CLI and integration tests talk through, and it carries the
// retry and last-request-wins semantics callers expect from the
// briefing endpoint.
package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/mohammad-safakhou/qbit/models"
	"github.com/mohammad-safakhou/qbit/pkg/httpx"
)

// APIClient calls the qbit API over HTTP. BaseURL has no trailing
// slash, e.g. "http://localhost:8080".
type APIClient struct {
	BaseURL string
	HTTP    *httpx.Client
}

// New returns a client with the default retry policy.
func New(baseURL string) *APIClient {
	return &APIClient{BaseURL: baseURL, HTTP: httpx.Default()}
}

// GetBriefing fetches the briefing for the given day. Country and
// category are optional.
func (c *APIClient) GetBriefing(ctx context.Context, date time.Time, country, category string) (*models.Briefing, error) {
	q := url.Values{}
	q.Set("date", date.Format("2006-01-02"))
	if country != "" {
		q.Set("country", country)
	}
	if category != "" {
		q.Set("category", category)
	}
	var out models.Briefing
	if err := c.HTTP.GetJSON(ctx, c.BaseURL+"/api/briefing?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateShare persists a briefing and returns its share ID.
func (c *APIClient) CreateShare(ctx context.Context, b *models.Briefing) (string, error) {
	var out struct {
		ShareID string `json:"shareId"`
	}
	if err := c.HTTP.PostJSON(ctx, c.BaseURL+"/api/share", nil, b, &out); err != nil {
		return "", err
	}
	if out.ShareID == "" {
		return "", fmt.Errorf("share create: empty shareId in response")
	}
	return out.ShareID, nil
}

// GetShare resolves a share ID back into the frozen briefing.
func (c *APIClient) GetShare(ctx context.Context, id string) (*models.Briefing, error) {
	var out models.Briefing
	if err := c.HTTP.GetJSON(ctx, c.BaseURL+"/api/share?id="+url.QueryEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetWeather fetches the weather-and-time line for the coordinates.
func (c *APIClient) GetWeather(ctx context.Context, lat, lon float64) (*models.Weather, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	var out models.Weather
	if err := c.HTTP.GetJSON(ctx, c.BaseURL+"/api/weather-time?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
