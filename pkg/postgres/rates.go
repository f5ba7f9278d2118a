package postgres

import (
	"context"
	"fmt"

	"github.com/calross/medic-roster/pkg/db"
)

// GetRateCards retrieves all rate card records
func (d *DB) GetRateCards(ctx context.Context) ([]db.RateCard, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, client, role, day_rate, relief_day_rate, standby_day_rate, medevac_fee
		FROM rate_card
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rate cards: %w", err)
	}
	defer rows.Close()

	var cards []db.RateCard
	for rows.Next() {
		var rc db.RateCard
		if err := rows.Scan(&rc.ID, &rc.Client, &rc.Role, &rc.DayRate,
			&rc.ReliefDayRate, &rc.StandbyDayRate, &rc.MedevacFee); err != nil {
			return nil, fmt.Errorf("failed to scan rate card: %w", err)
		}
		cards = append(cards, rc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rate cards: %w", err)
	}

	return cards, nil
}
