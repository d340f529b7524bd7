// Package analysis assembles prop tables: one row per player with a line in
// a market, carrying the context a bettor reads and the composite score the
// rows are sorted by.
package analysis

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/fortuna/delphi/internal/graph"
	"github.com/fortuna/delphi/internal/metrics"
	"github.com/fortuna/delphi/internal/model"
	"github.com/fortuna/delphi/internal/query"
	"github.com/fortuna/delphi/internal/ranking"
	"github.com/fortuna/delphi/internal/scoring"
)

// ErrUnknownMarket is returned for market keys missing from the settings
var ErrUnknownMarket = errors.New("unknown market")

// DateLayout is the layout of table dates
const DateLayout = "2006-01-02"

// Table is the analysis of one market on one date, best composite first
type Table struct {
	Market Market `json:"market"`
	Date   string `json:"date"`
	Rows   []Row  `json:"rows"`
}

// Analyzer reads a frozen graph. Rank tables are computed once per stat and
// shared between callers.
type Analyzer struct {
	graph    *graph.Graph
	settings Settings
	logger   zerolog.Logger

	mu    sync.Mutex
	ranks map[model.StatKey]*ranking.Table
}

// NewAnalyzer creates an analyzer over g
func NewAnalyzer(g *graph.Graph, settings Settings, logger zerolog.Logger) *Analyzer {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &Analyzer{
		graph:    g,
		settings: settings,
		logger:   logger.With().Str("component", "analysis").Logger(),
		ranks:    make(map[model.StatKey]*ranking.Table),
	}
}

// Graph returns the graph the analyzer reads
func (a *Analyzer) Graph() *graph.Graph {
	return a.graph
}

// Location is the time zone dates are read in
func (a *Analyzer) Location() *time.Location {
	return a.settings.Location
}

// Markets returns the configured markets
func (a *Analyzer) Markets() []Market {
	return a.settings.Markets
}

// Market resolves a market key
func (a *Analyzer) Market(key string) (Market, error) {
	for _, m := range a.settings.Markets {
		if m.Key == key {
			return m, nil
		}
	}
	return Market{}, fmt.Errorf("%w: %s", ErrUnknownMarket, key)
}

// RankTable returns the defense ranks for stat, building them on first use
func (a *Analyzer) RankTable(stat model.StatKey) *ranking.Table {
	a.mu.Lock()
	defer a.mu.Unlock()

	if t, ok := a.ranks[stat]; ok {
		return t
	}
	start := time.Now()
	t := ranking.Build(a.graph.Teams, stat, a.graph.Season, a.settings.Windows)
	a.ranks[stat] = t
	a.logger.Debug().Str("stat", string(stat)).Dur("took", time.Since(start)).Msg("rank table built")
	return t
}

// PrimeRanks installs a rank table computed elsewhere for the same graph
func (a *Analyzer) PrimeRanks(t *ranking.Table) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ranks[t.Stat] = t
}

// PropTable analyzes every player with a line in marketKey whose team plays
// an unfinished game on date
func (a *Analyzer) PropTable(date time.Time, marketKey string) (*Table, error) {
	market, err := a.Market(marketKey)
	if err != nil {
		return nil, err
	}
	ranks := a.RankTable(market.Stat)

	table := &Table{
		Market: market,
		Date:   date.In(a.settings.Location).Format(DateLayout),
		Rows:   []Row{},
	}

	skipped := 0
	for _, game := range a.graph.GamesOn(date, a.settings.Location) {
		if game.Finished {
			continue
		}
		for _, loc := range []model.Location{model.Home, model.Away} {
			team, opp := game.Side(loc).Team, game.Side(loc.Other()).Team
			if team == nil || opp == nil {
				continue
			}
			for _, p := range team.Players {
				props := p.PropsFor(market.Key)
				if len(props) == 0 {
					continue
				}
				row, ok := a.row(p, game, loc, opp, market, props, ranks)
				if !ok {
					skipped++
					continue
				}
				table.Rows = append(table.Rows, row)
			}
		}
	}

	sort.SliceStable(table.Rows, func(i, j int) bool {
		return table.Rows[i].Score.Total > table.Rows[j].Score.Total
	})

	a.logger.Info().
		Str("market", market.Key).
		Str("date", table.Date).
		Int("rows", len(table.Rows)).
		Int("skipped", skipped).
		Msg("prop table assembled")

	return table, nil
}

func (a *Analyzer) row(p *model.Player, game *model.Game, loc model.Location, opp *model.Team, market Market, props []*model.Prop, ranks *ranking.Table) (Row, bool) {
	prop := a.propInfo(market, props)
	in := a.scoreInputs(p, loc, opp, market.Stat, prop.Consensus, ranks)
	result, ok := a.settings.Weights.Combine(in)
	if !ok {
		return Row{}, false
	}

	return Row{
		PlayerID: p.ID,
		Player:   playerInfo(p),
		Matchup:  a.matchup(game, loc),
		Injuries: []InjuryBlock{a.injuryBlock(p.Team), a.injuryBlock(opp)},
		Prop:     prop,
		Averages: a.averages(p, loc, opp, market.Stat),
		Defense:  a.defenseBlock(p, opp, market.Stat, ranks),
		Without:  a.withoutBlocks(p, market.Stat),
		Series:   a.seriesBlock(p, loc, opp, market.Stat, prop.Consensus),
		Score:    result,
	}, true
}

// scoreInputs computes the five composite inputs for a player facing opp
// from location loc
func (a *Analyzer) scoreInputs(p *model.Player, loc model.Location, opp *model.Team, stat model.StatKey, line float64, ranks *ranking.Table) scoring.Inputs {
	season := []int{a.graph.Season}
	keys := []model.StatKey{stat}
	pp := a.settings.Player

	var in scoring.Inputs

	all := query.Filter{}
	gp := query.PlayerGamesPlayed(p, all)
	in[scoring.PlayerAll] = pp.PlayerScore(metrics.Sample{
		Values:      query.PlayerStats(p, keys, all).Floats(stat),
		GamesPlayed: gp,
		Outer:       query.PlayerGamesPlayed(p, query.Filter{Seasons: season}),
	}, line)

	atLoc := query.Filter{Location: loc}
	in[scoring.PlayerLocation] = pp.PlayerScore(metrics.Sample{
		Values:      query.PlayerStats(p, keys, atLoc).Floats(stat),
		GamesPlayed: query.PlayerGamesPlayed(p, atLoc),
		Outer:       query.PlayerGamesPlayed(p, query.Filter{Seasons: season, Location: loc}),
	}, line)

	vsOpp := query.Filter{Opponents: []int{opp.ID}}
	gpOpp := query.PlayerGamesPlayed(p, vsOpp)
	in[scoring.PlayerOpponent] = pp.PlayerScore(metrics.Sample{
		Values:      query.PlayerStats(p, keys, vsOpp).Floats(stat),
		GamesPlayed: gpOpp,
		Outer:       gpOpp,
	}, line)

	oppSeasonGames := query.DefenseGamesPlayed(opp, query.Filter{Seasons: season})
	if row, ok := ranks.Row(opp.ID, model.GroupAll); ok {
		in[scoring.DefenseAll] = a.settings.Defense.DefenseScore(rankValues(row), ranks.LeagueSize, oppSeasonGames)
	}
	if p.Group != "" {
		if row, ok := ranks.Row(opp.ID, p.Group); ok {
			in[scoring.DefensePosition] = a.settings.Defense.DefenseScore(rankValues(row), ranks.LeagueSize, oppSeasonGames)
		}
	}

	return in
}

func rankValues(row []ranking.Rank) []int {
	out := make([]int, len(row))
	for i, r := range row {
		out[i] = r.Rank
	}
	return out
}
