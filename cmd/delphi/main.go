package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fortuna/delphi/internal/analysis"
	"github.com/fortuna/delphi/internal/api/rest"
	"github.com/fortuna/delphi/internal/api/websocket"
	"github.com/fortuna/delphi/internal/cache"
	"github.com/fortuna/delphi/internal/config"
	"github.com/fortuna/delphi/internal/publisher"
	"github.com/fortuna/delphi/internal/scheduler"
	"github.com/fortuna/delphi/internal/store"
)

const (
	serviceName    = "delphi"
	serviceVersion = "1.0.0"
)

func main() {
	var (
		configPath     = flag.String("config", "", "path to the YAML config (default $DELPHI_CONFIG)")
		dateStr        = flag.String("date", "", "slate date as YYYY-MM-DD (default today)")
		marketList     = flag.String("market", "all", "comma separated market keys, or all")
		oddsPath       = flag.String("odds", "", "read props from an odds JSON file instead of the database")
		scrapeInjuries = flag.Bool("scrape-injuries", false, "scrape the live injury report instead of using the stored one")
		serve          = flag.Bool("serve", false, "serve the REST and websocket APIs and refresh on a schedule")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := log.Logger.With().Str("service", serviceName).Logger()

	logger.Info().Str("version", serviceVersion).Int("season", cfg.Season).Msg("starting prop analysis")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := &pipeline{
		cfg:            cfg,
		oddsPath:       *oddsPath,
		scrapeInjuries: *scrapeInjuries,
		logger:         logger,
	}

	if *dateStr != "" {
		p.date, err = time.ParseInLocation(analysis.DateLayout, *dateStr, cfg.Analysis.Location)
		if err != nil {
			logger.Fatal().Err(err).Str("date", *dateStr).Msg("invalid -date")
		}
	}

	p.markets, err = selectMarkets(cfg.Analysis.Markets, *marketList)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid -market")
	}

	p.db, err = store.NewDatabase(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to Atlas database")
	}
	defer p.db.Close()

	redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, running without rank cache or publishing")
	} else {
		p.cache = redisCache
		defer redisCache.Close()
	}

	analyzer, envelopes, err := p.run(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("analysis failed")
	}

	if !*serve {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(envelopes); err != nil {
			logger.Fatal().Err(err).Msg("failed to write prop tables")
		}
		return
	}

	restServer := rest.NewServer(cfg.RESTPort, analyzer)
	go func() {
		if err := restServer.Start(); err != nil {
			logger.Info().Err(err).Msg("REST server stopped")
		}
	}()

	wsServer := websocket.NewServer(logger)
	go func() {
		if err := wsServer.Start(cfg.WSPort); err != nil {
			logger.Info().Err(err).Msg("websocket server stopped")
		}
	}()

	broadcast := func(envelopes []publisher.Envelope) {
		for _, env := range envelopes {
			if err := wsServer.BroadcastTable(env); err != nil {
				logger.Warn().Err(err).Msg("failed to broadcast prop table")
			}
		}
	}
	broadcast(envelopes)

	refresh := func(ctx context.Context) error {
		analyzer, envelopes, err := p.run(ctx)
		if err != nil {
			return err
		}
		restServer.Swap(analyzer)
		broadcast(envelopes)
		return nil
	}
	sched := scheduler.NewOrchestrator(refresh, scheduler.Config{RefreshInterval: cfg.Refresh}, logger)
	go sched.Start(ctx)

	logger.Info().
		Int("rest_port", cfg.RESTPort).
		Int("ws_port", cfg.WSPort).
		Dur("refresh", cfg.Refresh).
		Msg("serving prop analysis")

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("REST server shutdown error")
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("websocket server shutdown error")
	}
}
