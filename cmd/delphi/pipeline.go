package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fortuna/delphi/internal/analysis"
	"github.com/fortuna/delphi/internal/cache"
	"github.com/fortuna/delphi/internal/config"
	"github.com/fortuna/delphi/internal/graph"
	"github.com/fortuna/delphi/internal/ingest/injuries"
	"github.com/fortuna/delphi/internal/ingest/odds"
	"github.com/fortuna/delphi/internal/publisher"
	"github.com/fortuna/delphi/internal/store"
	"github.com/fortuna/delphi/internal/store/repository"
)

// pipeline is one load, build, analyze and publish pass
type pipeline struct {
	cfg     *config.Config
	db      *store.Database
	cache   *cache.RedisCache
	markets []analysis.Market

	date           time.Time
	oddsPath       string
	scrapeInjuries bool

	logger zerolog.Logger
}

// slateDate is the fixed -date, or today in the configured zone
func (p *pipeline) slateDate() time.Time {
	if !p.date.IsZero() {
		return p.date
	}
	return time.Now().In(p.cfg.Analysis.Location)
}

func (p *pipeline) run(ctx context.Context) (*analysis.Analyzer, []publisher.Envelope, error) {
	date := p.slateDate()

	ds, err := repository.LoadDataset(ctx, p.db, p.cfg.Season, date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	if p.oddsPath != "" {
		props, err := odds.ParseFile(p.oddsPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read odds file: %w", err)
		}
		ds.Props = props
	}

	if p.scrapeInjuries {
		client := injuries.NewClient(p.cfg.InjuryURL, p.logger)
		reports, err := client.Fetch(ctx)
		client.Close()
		if err != nil {
			p.logger.Warn().Err(err).Msg("injury scrape failed, using stored report")
		} else {
			ds.Injuries = reports
		}
	}

	g := graph.NewBuilder(p.logger, p.cfg.Season).Build(ds)
	analyzer := analysis.NewAnalyzer(g, p.cfg.Analysis, p.logger)

	run := publisher.NewRun()
	var pub *publisher.RedisStreamPublisher
	if p.cache != nil {
		pub = publisher.NewRedisStreamPublisher(p.cache.Client(), run)
		p.primeRanks(ctx, analyzer)
	}

	envelopes, err := p.tables(ctx, analyzer, date, run, pub)
	if err != nil {
		return nil, nil, err
	}
	return analyzer, envelopes, nil
}

// tables builds every market's table stamped with the run id, publishing
// each one when pub is set
func (p *pipeline) tables(ctx context.Context, analyzer *analysis.Analyzer, date time.Time, run publisher.Run, pub *publisher.RedisStreamPublisher) ([]publisher.Envelope, error) {
	envelopes := make([]publisher.Envelope, 0, len(p.markets))
	for _, market := range p.markets {
		table, err := analyzer.PropTable(date, market.Key)
		if err != nil {
			return nil, err
		}
		if pub != nil {
			if err := pub.PublishPropTable(ctx, table); err != nil {
				p.logger.Warn().Err(err).Str("market", market.Key).Msg("failed to publish prop table")
			}
		}
		envelopes = append(envelopes, run.Wrap(table))
	}
	return envelopes, nil
}

// primeRanks loads cached rank tables for the graph's latest data and stores
// any it had to compute
func (p *pipeline) primeRanks(ctx context.Context, a *analysis.Analyzer) {
	last := a.Graph().LastFinished()
	if last == nil {
		return
	}

	seen := make(map[string]bool)
	for _, market := range p.markets {
		key := cache.RankKey(market.Stat, a.Graph().Season, last.ID)
		if seen[key] {
			continue
		}
		seen[key] = true

		table, ok, err := p.cache.GetRanks(ctx, key)
		if err != nil {
			p.logger.Warn().Err(err).Str("key", key).Msg("rank cache read failed")
		}
		if ok {
			a.PrimeRanks(table)
			continue
		}

		if err := p.cache.SetRanks(ctx, key, a.RankTable(market.Stat), p.cfg.RankTTL); err != nil {
			p.logger.Warn().Err(err).Str("key", key).Msg("rank cache write failed")
		}
	}
}

// selectMarkets resolves a comma separated -market list against the
// configured markets
func selectMarkets(configured []analysis.Market, list string) ([]analysis.Market, error) {
	if list == "" || list == "all" {
		return configured, nil
	}

	var markets []analysis.Market
	for _, key := range strings.Split(list, ",") {
		key = strings.TrimSpace(key)
		found := false
		for _, m := range configured {
			if m.Key == key {
				markets = append(markets, m)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", analysis.ErrUnknownMarket, key)
		}
	}
	return markets, nil
}
