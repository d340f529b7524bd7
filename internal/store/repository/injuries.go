package repository

import (
	"context"
	"fmt"

	"github.com/fortuna/delphi/internal/store"
)

// InjuryRepository reads the most recent injury report snapshot
type InjuryRepository struct {
	db *store.Database
}

// NewInjuryRepository creates a new injury repository
func NewInjuryRepository(db *store.Database) *InjuryRepository {
	return &InjuryRepository{db: db}
}

// GetLatest returns the rows of the newest report
func (r *InjuryRepository) GetLatest(ctx context.Context) ([]*store.InjuryReport, error) {
	query := `
		SELECT player_name, status, comment
		FROM injury_reports
		WHERE report_id = (SELECT MAX(report_id) FROM injury_reports)
		ORDER BY row_number
	`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying injury report: %w", err)
	}
	defer rows.Close()

	var reports []*store.InjuryReport
	for rows.Next() {
		ir := &store.InjuryReport{}
		if err := rows.Scan(&ir.PlayerName, &ir.Status, &ir.Comment); err != nil {
			return nil, fmt.Errorf("scanning injury report: %w", err)
		}
		reports = append(reports, ir)
	}

	return reports, rows.Err()
}
