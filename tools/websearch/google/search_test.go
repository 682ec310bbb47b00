package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mohammad-safakhou/qbit/pkg/httpx"
)

func TestSearchParsesOrganicResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("cx"); got != "engine-1" {
			t.Errorf("engine id not forwarded, got %q", got)
		}
		if got := r.URL.Query().Get("q"); got != "ειδήσεις σήμερα" {
			t.Errorf("query not forwarded, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[
			{"title":"A","link":"https://a.test","snippet":"sa"},
			{"title":"B","link":"https://b.test","snippet":"sb"},
			{"title":"C","link":"https://c.test","snippet":"sc"}
		]}`))
	}))
	defer srv.Close()

	s := Search{ApiKey: "k", EngineID: "engine-1", BaseURL: srv.URL, Client: httpx.New(time.Second, 0, 0)}
	got, err := s.Search(context.Background(), "ειδήσεις σήμερα", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected k=2 results, got %d", len(got))
	}
	if got[0].Title != "A" || got[0].URL != "https://a.test" || got[0].Snippet != "sa" {
		t.Fatalf("unexpected first result %+v", got[0])
	}
}

func TestSearchEmptyItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	s := Search{ApiKey: "k", EngineID: "e", BaseURL: srv.URL, Client: httpx.New(time.Second, 0, 0)}
	got, err := s.Search(context.Background(), "anything", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no results, got %+v", got)
	}
}
