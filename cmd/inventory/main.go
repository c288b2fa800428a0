package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"StockRoom/internal/config"
	"StockRoom/internal/inventory"
	"StockRoom/pkg/kit"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	service := "inventory"
	log := kit.NewLogger(service, kit.LoggerConfig{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	defer func() { _ = log.Sync() }()

	lookup := inventory.NewLookupClient(cfg.Lookup.BaseURL, cfg.Lookup.Timeout)
	lookup.UserAgent = cfg.Lookup.UserAgent

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &inventory.Server{
		Store:   inventory.NewStore(),
		Lookup:  lookup,
		Log:     log,
		Lookups: inventory.NewLookupMetrics(reg),
	}
	if cfg.Server.FetchLimitPerMin > 0 {
		s.FetchLimiter = kit.NewIPRateLimiter(cfg.Server.FetchLimitPerMin, time.Minute)
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Token == "" {
		log.Warn("METRICS_TOKEN is empty; /metrics will reject every scrape")
	}

	h := inventory.NewHandler(s, inventory.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
	})

	log.Info("inventory configured",
		zap.String("env", cfg.Server.AppEnv),
		zap.String("lookup_url", cfg.Lookup.BaseURL),
		zap.Duration("lookup_timeout", cfg.Lookup.Timeout),
		zap.Int("fetch_limit_per_min", cfg.Server.FetchLimitPerMin),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := kit.RunHTTPServer(ctx, cfg.Addr(), h, log, cfg.Server.ShutdownTimeout); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
