package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/qbit/internal/apperr"
	"github.com/mohammad-safakhou/qbit/models"
)

type fakeGenerator struct {
	got models.GenerationParams
	b   *models.Briefing
	err error
}

func (f *fakeGenerator) Generate(ctx context.Context, params models.GenerationParams) (*models.Briefing, error) {
	f.got = params
	if f.err != nil {
		return nil, f.err
	}
	return f.b, nil
}

func newBriefingTestServer(gen BriefingGenerator) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	api := e.Group("/api")
	(&BriefingHandler{Generator: gen, Deadline: time.Minute}).Register(api)
	return e
}

func TestBriefingRequiresDate(t *testing.T) {
	e := newBriefingTestServer(&fakeGenerator{})

	req := httptest.NewRequest(http.MethodGet, "/api/briefing", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestBriefingRejectsBadDate(t *testing.T) {
	e := newBriefingTestServer(&fakeGenerator{})

	req := httptest.NewRequest(http.MethodGet, "/api/briefing?date=yesterday", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestBriefingPassesParamsAndReturnsBody(t *testing.T) {
	gen := &fakeGenerator{b: &models.Briefing{
		Content: models.BriefingContent{DailySummary: "Σύνοψη ημέρας."},
	}}
	e := newBriefingTestServer(gen)

	req := httptest.NewRequest(http.MethodGet, "/api/briefing?date=2026-08-30&country=GR&category=tech", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if gen.got.Country != "GR" || gen.got.Category != "tech" {
		t.Errorf("generator params = %+v", gen.got)
	}
	if gen.got.Date.Year() != 2026 || gen.got.Date.Month() != time.August {
		t.Errorf("generator date = %v", gen.got.Date)
	}
	if cc := rec.Header().Get("Cache-Control"); cc == "" {
		t.Error("missing Cache-Control header")
	}

	var got models.Briefing
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if got.Content.DailySummary != "Σύνοψη ημέρας." {
		t.Errorf("body = %+v", got)
	}
}

func TestBriefingUpstreamFailureIs502(t *testing.T) {
	e := newBriefingTestServer(&fakeGenerator{err: apperr.NewUpstream("model unavailable")})

	req := httptest.NewRequest(http.MethodGet, "/api/briefing?date=2026-08-30", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestParseDate(t *testing.T) {
	if _, err := parseDate("2026-08-30T10:00:00Z"); err != nil {
		t.Errorf("RFC3339 rejected: %v", err)
	}
	if _, err := parseDate("2026-08-30"); err != nil {
		t.Errorf("bare date rejected: %v", err)
	}
	if _, err := parseDate("30/08/2026"); err == nil {
		t.Error("slash date accepted")
	}
}
