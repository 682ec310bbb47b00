package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mohammad-safakhou/qbit/models"
)

// ErrSuperseded is returned from Load when a newer Load started while
// this one was in flight. The caller should drop the result.
var ErrSuperseded = errors.New("load superseded by a newer request")

// Loader serializes briefing loads so callers only ever observe the
// result of the newest request. Starting a load cancels the previous
// one in flight; a slow predecessor that completes anyway is
// discarded, even when it finishes after the successor.
type Loader struct {
	Fetch func(ctx context.Context, p models.GenerationParams) (*models.Briefing, error)

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewLoader wraps an API client's briefing fetch.
func NewLoader(c *APIClient) *Loader {
	return &Loader{
		Fetch: func(ctx context.Context, p models.GenerationParams) (*models.Briefing, error) {
			return c.GetBriefing(ctx, p.Date, p.Country, p.Category)
		},
	}
}

// Load fetches a briefing, taking over from any load still in flight.
// The superseded load's context is cancelled immediately and its
// result, should it arrive anyway, is never surfaced.
func (l *Loader) Load(ctx context.Context, p models.GenerationParams) (*models.Briefing, error) {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.seq++
	seq := l.seq
	l.mu.Unlock()

	b, err := l.Fetch(ctx, p)

	l.mu.Lock()
	defer l.mu.Unlock()
	if seq != l.seq {
		cancel()
		return nil, ErrSuperseded
	}
	l.cancel = nil
	cancel()
	return b, err
}

// LoadToday is the common case: today's briefing for a country.
func (l *Loader) LoadToday(ctx context.Context, country string) (*models.Briefing, error) {
	return l.Load(ctx, models.GenerationParams{Date: time.Now(), Country: country})
}
