package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/fortuna/delphi/internal/store"
)

// LoadDataset reads everything an analysis run needs. Games and box scores
// cover the current and the previous season; props cover only date. A zero
// season resolves to the latest stored one.
func LoadDataset(ctx context.Context, db *store.Database, season int, date time.Time) (*store.Dataset, error) {
	gameRepo := NewGameRepository(db)
	if season == 0 {
		latest, err := gameRepo.LatestSeason(ctx)
		if err != nil {
			return nil, err
		}
		season = latest
	}

	teams, err := NewTeamRepository(db).GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading teams: %w", err)
	}

	games, err := gameRepo.GetSince(ctx, season-1)
	if err != nil {
		return nil, fmt.Errorf("loading games: %w", err)
	}

	playerRepo := NewPlayerRepository(db)
	players, err := playerRepo.GetActive(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("loading players: %w", err)
	}
	altNames, err := playerRepo.GetAltNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading player aliases: %w", err)
	}

	stats, err := NewStatsRepository(db).GetPlayerGameStats(ctx, season-1)
	if err != nil {
		return nil, fmt.Errorf("loading game stats: %w", err)
	}

	props, err := NewPropRepository(db).GetForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("loading props: %w", err)
	}

	injuries, err := NewInjuryRepository(db).GetLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading injuries: %w", err)
	}

	return &store.Dataset{
		Teams:     teams,
		Games:     games,
		Players:   players,
		AltNames:  altNames,
		GameStats: stats,
		Props:     props,
		Injuries:  injuries,
	}, nil
}
