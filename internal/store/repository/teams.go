package repository

import (
	"context"
	"fmt"

	"github.com/fortuna/delphi/internal/store"
)

// TeamRepository handles team data access
type TeamRepository struct {
	db *store.Database
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *store.Database) *TeamRepository {
	return &TeamRepository{db: db}
}

// GetAll returns all active teams
func (r *TeamRepository) GetAll(ctx context.Context) ([]*store.Team, error) {
	query := `
		SELECT team_id, abbreviation, full_name, city, short_name, conference, division, logo_url
		FROM teams
		WHERE sport = 'basketball_nba' AND is_active = TRUE
		ORDER BY team_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var teams []*store.Team
	for rows.Next() {
		team := &store.Team{}
		if err := rows.Scan(
			&team.TeamID, &team.Abbreviation, &team.FullName, &team.City, &team.ShortName,
			&team.Conference, &team.Division, &team.LogoURL,
		); err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}
