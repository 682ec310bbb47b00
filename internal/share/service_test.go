package share

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mohammad-safakhou/qbit/internal/apperr"
	"github.com/mohammad-safakhou/qbit/models"
	"github.com/mohammad-safakhou/qbit/repository/inmemory"
)

func TestCreateAndGet(t *testing.T) {
	svc := NewService(inmemory.NewShareStore(), 24*time.Hour, 10)
	ctx := context.Background()

	in := &models.Briefing{
		Content: models.BriefingContent{
			Greeting: "Καλησπέρα",
			Stories:  []models.Story{{Title: "A", Summary: "B", Importance: 1}},
		},
		Sources: []models.StorySource{
			{Title: "X", URI: "https://x.test"},
			{Title: "X2", URI: "https://x.test"},
		},
	}

	id, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(id) != 10 {
		t.Fatalf("expected a 10-character id, got %q", id)
	}

	got, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Content.Greeting != "Καλησπέρα" {
		t.Fatalf("unexpected greeting %q", got.Content.Greeting)
	}
	if len(got.Sources) != 1 {
		t.Fatalf("expected deduped sources, got %+v", got.Sources)
	}
	if got.Sources[0].URI != "https://x.test" || got.Sources[0].Title != "X" {
		t.Fatalf("dedup should keep the first-seen title: %+v", got.Sources[0])
	}
}

func TestCreateRejectsEmptyBriefing(t *testing.T) {
	svc := NewService(inmemory.NewShareStore(), time.Hour, 10)
	var ie *apperr.InvalidInputError

	_, err := svc.Create(context.Background(), nil)
	if !errors.As(err, &ie) {
		t.Fatalf("expected InvalidInputError for nil briefing, got %v", err)
	}

	_, err = svc.Create(context.Background(), &models.Briefing{})
	if !errors.As(err, &ie) {
		t.Fatalf("expected InvalidInputError for empty briefing, got %v", err)
	}
}

func TestCreateIsNotIdempotent(t *testing.T) {
	svc := NewService(inmemory.NewShareStore(), time.Hour, 10)
	b := &models.Briefing{Content: models.BriefingContent{Stories: []models.Story{{Title: "A"}}}}

	id1, err := svc.Create(context.Background(), b)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id2, err := svc.Create(context.Background(), b)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id1 == id2 {
		t.Fatal("two creates of identical content must produce distinct ids")
	}
}

func TestGetMissingAndEmptyID(t *testing.T) {
	svc := NewService(inmemory.NewShareStore(), time.Hour, 10)

	if _, err := svc.Get(context.Background(), "absentabse"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	var ie *apperr.InvalidInputError
	if _, err := svc.Get(context.Background(), ""); !errors.As(err, &ie) {
		t.Fatalf("expected InvalidInputError for empty id, got %v", err)
	}
}

func TestGetCorruptRecord(t *testing.T) {
	st := inmemory.NewShareStore()
	svc := NewService(st, time.Hour, 10)

	// A value no codec version will ever produce.
	if err := st.Put(context.Background(), "badrecord0", "!!!garbage!!!", time.Hour); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var ce *apperr.CorruptError
	_, err := svc.Get(context.Background(), "badrecord0")
	if !errors.As(err, &ce) {
		t.Fatalf("expected CorruptError, got %v", err)
	}
	if ce.Key != "badrecord0" {
		t.Fatalf("corrupt error should carry the key, got %q", ce.Key)
	}
}

func TestShareExpiresAfterTTL(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	st := inmemory.NewShareStoreWithClock(func() time.Time { return now })
	svc := NewService(st, 24*time.Hour, 10)
	ctx := context.Background()

	id, err := svc.Create(ctx, &models.Briefing{Content: models.BriefingContent{Stories: []models.Story{{Title: "A"}}}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	now = now.Add(23 * time.Hour)
	if _, err := svc.Get(ctx, id); err != nil {
		t.Fatalf("share should resolve before expiry: %v", err)
	}

	now = now.Add(2 * time.Hour)
	if _, err := svc.Get(ctx, id); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after TTL, got %v", err)
	}
}
