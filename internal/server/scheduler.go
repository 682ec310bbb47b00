package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/gorhill/cronexpr"

	"github.com/mohammad-safakhou/qbit/models"
)

// Prefetcher warms the briefing cache on a cron schedule so the first
// reader of the day does not pay the full generation latency.
type Prefetcher struct {
	Generator BriefingGenerator
	Spec      string
	Country   string
	Deadline  time.Duration
}

// Run blocks until ctx is cancelled, generating the default briefing
// at each cron tick. Failures are logged and the loop keeps going; the
// next tick is another chance.
func (p *Prefetcher) Run(ctx context.Context) error {
	expr, err := cronexpr.Parse(p.Spec)
	if err != nil {
		return err
	}
	for {
		next := expr.Next(time.Now())
		if next.IsZero() {
			slog.Warn("prefetch cron has no next activation, stopping", "spec", p.Spec)
			return nil
		}
		select {
		case <-time.After(time.Until(next)):
			p.prefetch(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// PrefetchOnce runs a single warmup pass, used by the CLI subcommand.
func (p *Prefetcher) PrefetchOnce(ctx context.Context) error {
	if p.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Deadline)
		defer cancel()
	}
	_, err := p.Generator.Generate(ctx, models.GenerationParams{Date: time.Now(), Country: p.Country})
	return err
}

func (p *Prefetcher) prefetch(ctx context.Context) {
	start := time.Now()
	if err := p.PrefetchOnce(ctx); err != nil {
		slog.Error("briefing prefetch failed", "error", err)
		return
	}
	slog.Info("briefing prefetched", "took", time.Since(start))
}
