package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/calross/medic-roster/pkg/core/model"
	"github.com/calross/medic-roster/pkg/core/rotation"
	"github.com/calross/medic-roster/pkg/db"
)

// BuildRosterEntries assembles domain roster entries from raw database rows.
// This is the single ingestion point: free-text dates are parsed here (bad
// values become absent, never errors) and the post string is classified into
// a Role exactly once.
func BuildRosterEntries(personnel []db.Personnel, cycles []db.RosterCycle, medevacs []db.MedevacEvent) []model.RosterEntry {
	medevacsByCycle := make(map[string][]model.DateValue)
	for _, ev := range medevacs {
		medevacsByCycle[ev.CycleID] = append(medevacsByCycle[ev.CycleID], rotation.ParseDateValue(ev.Date))
	}

	cyclesByPerson := make(map[string][]model.Cycle)
	for _, c := range cycles {
		cyclesByPerson[c.PersonID] = append(cyclesByPerson[c.PersonID], model.Cycle{
			Number:         c.CycleNumber,
			SignOn:         rotation.ParseDateValue(c.SignOn),
			SignOff:        rotation.ParseDateValue(c.SignOff),
			Offshore:       c.Offshore,
			ReliefDays:     c.ReliefDays,
			StandbyDays:    c.StandbyDays,
			DayRate:        c.DayRate,
			ReliefDayRate:  c.ReliefDayRate,
			StandbyDayRate: c.StandbyDayRate,
			MedevacDates:   medevacsByCycle[c.ID],
		})
	}

	entries := make([]model.RosterEntry, 0, len(personnel))
	for _, p := range personnel {
		personCycles := cyclesByPerson[p.ID]
		sort.Slice(personCycles, func(i, j int) bool {
			return personCycles[i].Number < personCycles[j].Number
		})

		entries = append(entries, model.RosterEntry{
			PersonID: p.ID,
			Name:     p.Name,
			Post:     p.Post,
			Role:     model.ClassifyPost(p.Post),
			Client:   p.Client,
			Location: p.Location,
			Email:    p.Email,
			Cycles:   personCycles,
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// LoadRoster fetches personnel, cycles and medevac events and assembles the
// full roster.
func LoadRoster(ctx context.Context, database db.RosterStore, logger *zap.Logger) ([]model.RosterEntry, error) {
	logger.Debug("Fetching personnel")
	personnel, err := database.GetPersonnel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch personnel: %w", err)
	}

	logger.Debug("Fetching roster cycles")
	cycles, err := database.GetCycles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster cycles: %w", err)
	}

	logger.Debug("Fetching medevac events")
	medevacs, err := database.GetMedevacEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch medevac events: %w", err)
	}

	entries := BuildRosterEntries(personnel, cycles, medevacs)
	logger.Info("Roster loaded",
		zap.Int("personnel", len(entries)),
		zap.Int("cycles", len(cycles)))

	return entries, nil
}
