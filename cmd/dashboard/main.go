package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"StockDash/internal/api"
	"StockDash/internal/collector"
	"StockDash/internal/config"
	"StockDash/internal/logger"
	"StockDash/internal/metrics"
	"StockDash/internal/scheduler"
	"StockDash/internal/store"
	"StockDash/internal/watchlist"
)

func main() {
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	logger.Init(cfg.Log.Level, cfg.Log.Pretty)
	log.Info().Str("config", cfgPath).Msg("StockDash starting...")

	m := metrics.New(nil)

	// Init fetcher
	var fetcher collector.Fetcher
	switch cfg.DataSource.Provider {
	case "mock":
		fetcher = &collector.MockFetcher{}
	default:
		client := collector.NewHTTPClient(collector.HTTPClientOptions{
			Timeout:        cfg.DataSource.RequestTimeout,
			RequestsPerSec: cfg.DataSource.RequestsPerSec,
			MaxRetryTime:   cfg.DataSource.MaxRetryTime,
			ProxyURL:       cfg.DataSource.Proxy,
		})
		fetcher = collector.NewYahooFetcher(client, cfg.DataSource.BaseURL, cfg.DataSource.SearchURL)
	}
	log.Info().Str("provider", fetcher.Name()).Msg("data source ready")

	col := collector.NewCollector(fetcher, cfg.Indicators, m)

	// Init store
	var st store.Store
	if cfg.Database.SQLitePath == "memory" {
		st = store.NewMemoryStore()
	} else {
		sq, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite store failed, using memory")
			st = store.NewMemoryStore()
		} else {
			st = sq
		}
	}
	defer st.Close()

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wl, err := watchlist.Load(ctx, st, cfg.Watchlist.Defaults, m)
	if err != nil {
		log.Fatal().Err(err).Msg("load watchlist")
	}

	sched := scheduler.NewScheduler(ctx, col, wl, cfg.Watchlist.Overview, st, m)
	sched.Views = col.Views
	if err := sched.RegisterAll(cfg.Schedule.QuoteRefreshCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	go sched.RunNow()

	handler := api.NewHandler(api.Deps{
		Market:    col,
		Watchlist: wl,
		Quotes:    sched.Board,
		History:   st,
		Overview:  cfg.Watchlist.Overview,
		Metrics:   m,
	})
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler.SetupRoutes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping...")
	cancel()

	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}
	sched.Stop()
	log.Info().Msg("StockDash stopped")
}
