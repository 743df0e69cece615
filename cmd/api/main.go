package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/auth"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/config"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/db"
	httpx "github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/http"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/news"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/observability"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/repo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

const shutdownGrace = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load the config set up
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	shutdownTracer, err := observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Env,
		Endpoint:    cfg.OTLPEndpoint,
		SampleRatio: cfg.OTelSampleRatio,
	})
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracer(sctx)
	}()

	var (
		prom     *observability.Prom
		gatherer prometheus.Gatherer
		observe  repo.ObserveFunc
	)
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		prom = observability.NewProm(reg)
		gatherer = reg
		observe = prom.ObserveStore
	}

	users, closeUsers, err := db.OpenUsersRepo(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open user store: %w", err)
	}
	defer closeUsers()

	newsOpts := []news.Option{news.WithCacheTTL(cfg.NewsCacheTTL), news.WithLogger(log)}
	if prom != nil {
		newsOpts = append(newsOpts, news.WithRecorder(prom))
	}
	newsService := news.NewService(news.ProviderFromConfig(cfg), newsOpts...)

	router, err := httpx.NewRouter(httpx.Deps{
		Config:   cfg,
		Log:      log,
		Users:    repo.Instrument(users, observe),
		JWT:      auth.NewManager(cfg.JWTSecret, cfg.JWTTTL),
		News:     newsService,
		Prom:     prom,
		Gatherer: gatherer,
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	srv := httpx.NewServer(fmt.Sprintf(":%d", cfg.Port), router)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server starting",
			"port", cfg.Port,
			"env", cfg.Env,
			"store", cfg.StoreDriver,
			"news_configured", newsService.Configured(),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info("server shutting down")

		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()

		if err := srv.Shutdown(sctx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}

		log.Info("shutdown complete")
		return nil
	})

	return g.Wait()
}
