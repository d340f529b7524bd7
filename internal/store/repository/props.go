package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/fortuna/delphi/internal/store"
)

// PropRepository reads player prop odds persisted by the odds collector
type PropRepository struct {
	db *store.Database
}

// NewPropRepository creates a new prop repository
func NewPropRepository(db *store.Database) *PropRepository {
	return &PropRepository{db: db}
}

// GetForDate returns the latest prop outcomes for events starting on date
func (r *PropRepository) GetForDate(ctx context.Context, date time.Time) ([]*store.PlayerProp, error) {
	query := `
		SELECT event_id, bookmaker_key, bookmaker, market_key, side, player_name, price, line, last_update
		FROM player_props
		WHERE event_date = $1::date
		ORDER BY event_id, market_key, bookmaker_key, player_name, side
	`

	rows, err := r.db.DB().QueryContext(ctx, query, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("querying player props: %w", err)
	}
	defer rows.Close()

	var props []*store.PlayerProp
	for rows.Next() {
		p := &store.PlayerProp{}
		if err := rows.Scan(
			&p.EventID, &p.BookmakerKey, &p.Bookmaker, &p.MarketKey, &p.Side,
			&p.PlayerName, &p.Price, &p.Line, &p.LastUpdate,
		); err != nil {
			return nil, fmt.Errorf("scanning player prop: %w", err)
		}
		props = append(props, p)
	}

	return props, rows.Err()
}
