package repository

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/fortuna/delphi/internal/store"
)

// PlayerRepository handles player data access
type PlayerRepository struct {
	db *store.Database
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *store.Database) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// GetActive returns players with a roster entry in the given season
func (r *PlayerRepository) GetActive(ctx context.Context, season int) ([]*store.Player, error) {
	query := `
		SELECT DISTINCT p.player_id, p.first_name, p.last_name, p.position, p.jersey_number,
			p.height_inches, p.weight
		FROM players p
		JOIN player_team_history pth ON p.player_id = pth.player_id
		WHERE pth.season = $1
		ORDER BY p.player_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("querying players: %w", err)
	}
	defer rows.Close()

	var players []*store.Player
	for rows.Next() {
		player := &store.Player{}
		if err := rows.Scan(
			&player.PlayerID, &player.FirstName, &player.LastName, &player.Position,
			&player.JerseyNumber, &player.HeightInches, &player.Weight,
		); err != nil {
			return nil, fmt.Errorf("scanning player: %w", err)
		}
		players = append(players, player)
	}

	return players, rows.Err()
}

// GetAltNames returns the sportsbook spellings recorded for each player
func (r *PlayerRepository) GetAltNames(ctx context.Context) (map[int][]string, error) {
	query := `SELECT player_id, alt_names FROM player_aliases`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying player aliases: %w", err)
	}
	defer rows.Close()

	aliases := make(map[int][]string)
	for rows.Next() {
		var playerID int
		var names pq.StringArray
		if err := rows.Scan(&playerID, &names); err != nil {
			return nil, fmt.Errorf("scanning player aliases: %w", err)
		}
		aliases[playerID] = append(aliases[playerID], names...)
	}

	return aliases, rows.Err()
}
