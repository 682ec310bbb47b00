package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mohammad-safakhou/qbit/config"
	"github.com/mohammad-safakhou/qbit/internal/apperr"
	"github.com/mohammad-safakhou/qbit/internal/briefing"
	"github.com/mohammad-safakhou/qbit/internal/share"
	"github.com/mohammad-safakhou/qbit/pkg/httpx"
	"github.com/mohammad-safakhou/qbit/pkg/middleware"
	"github.com/mohammad-safakhou/qbit/provider"
	"github.com/mohammad-safakhou/qbit/repository"
	"github.com/mohammad-safakhou/qbit/tools/websearch"
)

// Deps are the constructed collaborators the server runs on. Built
// once in the entry point and injected; nothing here is initialized at
// import time.
type Deps struct {
	LLM        provider.Provider
	Searcher   websearch.WebSearcher
	ShareStore repository.ShareStore
	Cache      *briefing.Cache
}

// BuildDeps constructs the default dependency set from config.
func BuildDeps(ctx context.Context, cfg *config.Config) (*Deps, error) {
	hc := httpx.New(cfg.LLM.Timeout, cfg.LLM.MaxRetries, cfg.LLM.RetryBackoff)

	llm, err := provider.NewProvider(cfg.LLM, hc)
	if err != nil {
		return nil, err
	}
	searcher, err := websearch.NewWebSearcher(cfg.Search, hc)
	if err != nil {
		return nil, err
	}

	store, rc, err := repository.NewShareStore(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	return &Deps{
		LLM:        llm,
		Searcher:   searcher,
		ShareStore: store,
		// rc is nil for the in-memory store; the cache then always misses.
		Cache: briefing.NewCache(rc, cfg.Share.CacheTTL),
	}, nil
}

// NewGenerator builds the briefing generator used by the handler and
// the prefetcher.
func NewGenerator(cfg *config.Config, deps *Deps) *briefing.Generator {
	return &briefing.Generator{
		Provider:      deps.LLM,
		Searcher:      deps.Searcher,
		Cache:         deps.Cache,
		Model:         cfg.LLM.BriefingModel,
		MaxToolRounds: cfg.LLM.MaxToolRounds,
		MaxHits:       cfg.Search.MaxHits,
	}
}

// NewEcho wires routes, middleware and handlers onto a fresh echo
// instance.
func NewEcho(cfg *config.Config, deps *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	e.Use(echomw.Recover())
	e.Use(middleware.Logger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Content-Type"},
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	gen := NewGenerator(cfg, deps)
	shares := share.NewService(deps.ShareStore, cfg.Share.TTL, cfg.Share.IDLength)

	api := e.Group("/api")
	(&BriefingHandler{Generator: gen, Deadline: cfg.Server.GenerationDeadline}).Register(api)
	(&ShareHandler{Shares: shares}).Register(api)
	(&WeatherHandler{LLM: deps.LLM, Model: cfg.LLM.WeatherModel}).Register(api)

	return e
}

// Run builds dependencies, starts the prefetch scheduler when
// configured, and serves until the listener fails or ctx ends.
func Run(ctx context.Context, cfg *config.Config) error {
	setupLogger(cfg.General.LogLevel)

	deps, err := BuildDeps(ctx, cfg)
	if err != nil {
		return err
	}
	e := NewEcho(cfg, deps)

	if spec := strings.TrimSpace(cfg.Server.PrefetchCron); spec != "" {
		pf := &Prefetcher{
			Generator: NewGenerator(cfg, deps),
			Spec:      spec,
			Country:   cfg.Server.PrefetchCountry,
			Deadline:  cfg.Server.GenerationDeadline,
		}
		go func() {
			if err := pf.Run(ctx); err != nil && ctx.Err() == nil {
				slog.Error("prefetch scheduler stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		_ = e.Shutdown(context.Background())
	}()

	slog.Info("qbit api listening", "addr", cfg.Server.Address)
	if err := e.Start(cfg.Server.Address); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func setupLogger(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
