package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/fortuna/delphi/internal/store"
)

// GameRepository handles game data access
type GameRepository struct {
	db *store.Database
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *store.Database) *GameRepository {
	return &GameRepository{db: db}
}

// LatestSeason returns the newest season with at least one game
func (r *GameRepository) LatestSeason(ctx context.Context) (int, error) {
	var season sql.NullInt64
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT MAX(season) FROM games WHERE sport = 'basketball_nba'`).Scan(&season)
	if err != nil {
		return 0, fmt.Errorf("querying latest season: %w", err)
	}
	if !season.Valid {
		return 0, fmt.Errorf("no games stored")
	}
	return int(season.Int64), nil
}

// GetSince returns every game of the given seasons onward, keyed by game id.
// Line scores are stored as JSONB and are NULL until the game is final.
func (r *GameRepository) GetSince(ctx context.Context, firstSeason int) (map[int]*store.Game, error) {
	query := `
		SELECT g.game_id, g.season, g.start_time, g.finished, g.overtime, g.playoffs, g.venue,
			g.home_team_id, ht.abbreviation, g.home_line,
			g.away_team_id, at.abbreviation, g.away_line
		FROM games g
		JOIN teams ht ON g.home_team_id = ht.team_id
		JOIN teams at ON g.away_team_id = at.team_id
		WHERE g.sport = 'basketball_nba' AND g.season >= $1
	`

	rows, err := r.db.DB().QueryContext(ctx, query, firstSeason)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	games := make(map[int]*store.Game)
	for rows.Next() {
		game := &store.Game{}
		var homeLine, awayLine []byte
		if err := rows.Scan(
			&game.GameID, &game.Season, &game.StartTime, &game.Finished, &game.Overtime, &game.Playoffs, &game.Venue,
			&game.Home.TeamID, &game.Home.Abbreviation, &homeLine,
			&game.Away.TeamID, &game.Away.Abbreviation, &awayLine,
		); err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}

		if game.Home.Score, err = decodeLineScore(homeLine); err != nil {
			return nil, fmt.Errorf("game %d home line score: %w", game.GameID, err)
		}
		if game.Away.Score, err = decodeLineScore(awayLine); err != nil {
			return nil, fmt.Errorf("game %d away line score: %w", game.GameID, err)
		}

		games[game.GameID] = game
	}

	return games, rows.Err()
}

func decodeLineScore(raw []byte) (*store.LineScore, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	score := &store.LineScore{}
	if err := json.Unmarshal(raw, score); err != nil {
		return nil, err
	}
	return score, nil
}
