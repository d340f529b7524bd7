package repository

import (
	"context"
	"fmt"

	"github.com/fortuna/delphi/internal/store"
)

// StatsRepository handles player box score data access
type StatsRepository struct {
	db *store.Database
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *store.Database) *StatsRepository {
	return &StatsRepository{db: db}
}

// GetPlayerGameStats returns every player box score line of the given seasons onward
func (r *StatsRepository) GetPlayerGameStats(ctx context.Context, firstSeason int) ([]*store.PlayerGameStats, error) {
	query := `
		SELECT pgs.game_id, pgs.player_id, pgs.team_id, p.first_name, p.last_name, pgs.position,
			pgs.minutes, pgs.points, pgs.field_goals_made, pgs.field_goals_attempted,
			pgs.free_throws_made, pgs.free_throws_attempted,
			pgs.three_pointers_made, pgs.three_pointers_attempted,
			pgs.offensive_rebounds, pgs.defensive_rebounds, pgs.rebounds, pgs.assists,
			pgs.personal_fouls, pgs.steals, pgs.turnovers, pgs.blocks, pgs.plus_minus, pgs.comment
		FROM player_game_stats pgs
		JOIN games g ON pgs.game_id = g.game_id
		JOIN players p ON pgs.player_id = p.player_id
		WHERE g.season >= $1
		ORDER BY pgs.game_id, pgs.team_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, firstSeason)
	if err != nil {
		return nil, fmt.Errorf("querying player game stats: %w", err)
	}
	defer rows.Close()

	var lines []*store.PlayerGameStats
	for rows.Next() {
		s := &store.PlayerGameStats{}
		if err := rows.Scan(
			&s.GameID, &s.PlayerID, &s.TeamID, &s.FirstName, &s.LastName, &s.Position,
			&s.Minutes, &s.Points, &s.FieldGoalsMade, &s.FieldGoalsAttempted,
			&s.FreeThrowsMade, &s.FreeThrowsAttempted,
			&s.ThreePointersMade, &s.ThreePointersAttempted,
			&s.OffensiveRebounds, &s.DefensiveRebounds, &s.Rebounds, &s.Assists,
			&s.PersonalFouls, &s.Steals, &s.Turnovers, &s.Blocks, &s.PlusMinus, &s.Comment,
		); err != nil {
			return nil, fmt.Errorf("scanning player game stats: %w", err)
		}
		lines = append(lines, s)
	}

	return lines, rows.Err()
}
