package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mohammad-safakhou/qbit/config"
	"github.com/mohammad-safakhou/qbit/internal/server"
)

func prefetchCMD() *cobra.Command {
	var cfgPath string
	var country string
	prefetch := &cobra.Command{
		Use:   "prefetch",
		Short: "Generate today's briefing once to warm the cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			if country == "" {
				country = cfg.Server.PrefetchCountry
			}
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			deps, err := server.BuildDeps(ctx, cfg)
			if err != nil {
				return err
			}
			pf := &server.Prefetcher{
				Generator: server.NewGenerator(cfg, deps),
				Country:   country,
				Deadline:  cfg.Server.GenerationDeadline,
			}
			return pf.PrefetchOnce(ctx)
		},
	}
	prefetch.Flags().StringVarP(&cfgPath, "config", "c", "", "config file (default is ./config/config.json)")
	prefetch.Flags().StringVar(&country, "country", "", "country to brief (defaults to the configured prefetch country)")
	return prefetch
}
