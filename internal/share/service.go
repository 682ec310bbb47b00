package share

import (
	"context"
	"log/slog"
	"time"

	"github.com/mohammad-safakhou/qbit/internal/apperr"
	"github.com/mohammad-safakhou/qbit/models"
	"github.com/mohammad-safakhou/qbit/repository"
)

// DefaultTTL is how long a share link stays resolvable.
const DefaultTTL = 24 * time.Hour

// Service implements share creation and resolution over an expiring
// KV store. Records are write-once: no update or delete path exists,
// expiry is the only way out.
type Service struct {
	store    repository.ShareStore
	ttl      time.Duration
	idLength int
}

func NewService(store repository.ShareStore, ttl time.Duration, idLength int) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if idLength <= 0 {
		idLength = DefaultIDLength
	}
	return &Service{store: store, ttl: ttl, idLength: idLength}
}

// Create validates, encodes and stores a briefing, returning the new
// share ID. Not idempotent: identical briefings get distinct IDs.
func (s *Service) Create(ctx context.Context, b *models.Briefing) (string, error) {
	if b == nil || (len(b.Content.Stories) == 0 && b.Content.DailySummary == "") {
		return "", apperr.NewInvalidInput("briefing has no content to share")
	}

	id, err := NewID(s.idLength)
	if err != nil {
		return "", err
	}
	encoded, err := Encode(b)
	if err != nil {
		return "", err
	}
	if err := s.store.Put(ctx, id, encoded, s.ttl); err != nil {
		return "", err
	}
	slog.Info("share created", "id", id, "bytes", len(encoded))
	return id, nil
}

// Get resolves a share ID back into a briefing. An absent or expired
// ID is apperr.ErrNotFound; a present record that will not decode is a
// CorruptError: a stored record should always decode, so this means
// the writer and reader disagree about the format.
func (s *Service) Get(ctx context.Context, id string) (*models.Briefing, error) {
	if id == "" {
		return nil, apperr.NewInvalidInput("share id is required")
	}
	stored, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	b, err := Decode(stored)
	if err != nil {
		return nil, apperr.NewCorrupt(id, err)
	}
	b.Sources = models.DedupSources(b.Sources)
	return b, nil
}
