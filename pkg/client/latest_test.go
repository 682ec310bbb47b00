package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mohammad-safakhou/qbit/models"
)

func TestLoaderSupersedesInFlightLoad(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	firstCtxDone := make(chan struct{})

	calls := 0
	l := &Loader{
		Fetch: func(ctx context.Context, p models.GenerationParams) (*models.Briefing, error) {
			calls++
			if calls == 1 {
				close(firstStarted)
				go func() {
					<-ctx.Done()
					close(firstCtxDone)
				}()
				// Complete only after the second load has taken over.
				<-releaseFirst
				return &models.Briefing{Content: models.BriefingContent{DailySummary: "stale"}}, nil
			}
			return &models.Briefing{Content: models.BriefingContent{DailySummary: "fresh"}}, nil
		},
	}

	type result struct {
		b   *models.Briefing
		err error
	}
	firstDone := make(chan result, 1)
	go func() {
		b, err := l.Load(context.Background(), models.GenerationParams{Country: "GR"})
		firstDone <- result{b, err}
	}()

	<-firstStarted
	b, err := l.Load(context.Background(), models.GenerationParams{Country: "GR"})
	if err != nil {
		t.Fatalf("second load failed: %v", err)
	}
	if got := b.Content.DailySummary; got != "fresh" {
		t.Fatalf("second load returned %q, want fresh", got)
	}

	select {
	case <-firstCtxDone:
	case <-time.After(2 * time.Second):
		t.Fatal("first load's context was not cancelled by the second load")
	}

	// Let the first fetch finish late; its result must be discarded.
	close(releaseFirst)
	select {
	case r := <-firstDone:
		if !errors.Is(r.err, ErrSuperseded) {
			t.Fatalf("first load error = %v, want ErrSuperseded", r.err)
		}
		if r.b != nil {
			t.Fatalf("first load surfaced a result: %+v", r.b)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("first load never returned")
	}
}

func TestLoaderSingleLoadReturnsResult(t *testing.T) {
	l := &Loader{
		Fetch: func(ctx context.Context, p models.GenerationParams) (*models.Briefing, error) {
			return &models.Briefing{Content: models.BriefingContent{DailySummary: "only"}}, nil
		},
	}
	b, err := l.Load(context.Background(), models.GenerationParams{})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if b.Content.DailySummary != "only" {
		t.Fatalf("unexpected summary %q", b.Content.DailySummary)
	}
}

func TestLoaderPropagatesFetchError(t *testing.T) {
	boom := errors.New("boom")
	l := &Loader{
		Fetch: func(ctx context.Context, p models.GenerationParams) (*models.Briefing, error) {
			return nil, boom
		},
	}
	if _, err := l.Load(context.Background(), models.GenerationParams{}); !errors.Is(err, boom) {
		t.Fatalf("load error = %v, want boom", err)
	}
}
