package postgres

import (
	"context"
	"fmt"

	"github.com/calross/medic-roster/pkg/db"
)

// GetCycles retrieves all rotation cycle records
func (d *DB) GetCycles(ctx context.Context) ([]db.RosterCycle, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, person_id, cycle_number, sign_on, sign_off, offshore,
		       relief_days, standby_days, day_rate, relief_day_rate, standby_day_rate
		FROM roster_cycle
		ORDER BY person_id, cycle_number
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster cycles: %w", err)
	}
	defer rows.Close()

	var cycles []db.RosterCycle
	for rows.Next() {
		var c db.RosterCycle
		var signOn, signOff *string
		if err := rows.Scan(&c.ID, &c.PersonID, &c.CycleNumber, &signOn, &signOff, &c.Offshore,
			&c.ReliefDays, &c.StandbyDays, &c.DayRate, &c.ReliefDayRate, &c.StandbyDayRate); err != nil {
			return nil, fmt.Errorf("failed to scan roster cycle: %w", err)
		}
		if signOn != nil {
			c.SignOn = *signOn
		}
		if signOff != nil {
			c.SignOff = *signOff
		}
		cycles = append(cycles, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster cycles: %w", err)
	}

	return cycles, nil
}

// InsertCycle inserts a new rotation cycle record
func (d *DB) InsertCycle(ctx context.Context, cycle *db.RosterCycle) error {
	var signOn, signOff *string
	if cycle.SignOn != "" {
		signOn = &cycle.SignOn
	}
	if cycle.SignOff != "" {
		signOff = &cycle.SignOff
	}

	_, err := d.pool.Exec(ctx, `
		INSERT INTO roster_cycle (id, person_id, cycle_number, sign_on, sign_off, offshore,
			relief_days, standby_days, day_rate, relief_day_rate, standby_day_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, cycle.ID, cycle.PersonID, cycle.CycleNumber, signOn, signOff, cycle.Offshore,
		cycle.ReliefDays, cycle.StandbyDays, cycle.DayRate, cycle.ReliefDayRate, cycle.StandbyDayRate)
	if err != nil {
		return fmt.Errorf("failed to insert roster cycle: %w", err)
	}
	return nil
}

// GetMedevacEvents retrieves all medevac event records
func (d *DB) GetMedevacEvents(ctx context.Context) ([]db.MedevacEvent, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, cycle_id, date
		FROM medevac_event
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query medevac events: %w", err)
	}
	defer rows.Close()

	var events []db.MedevacEvent
	for rows.Next() {
		var e db.MedevacEvent
		var date *string
		if err := rows.Scan(&e.ID, &e.CycleID, &date); err != nil {
			return nil, fmt.Errorf("failed to scan medevac event: %w", err)
		}
		if date != nil {
			e.Date = *date
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating medevac events: %w", err)
	}

	return events, nil
}
