package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/calross/medic-roster/pkg/core/model"
	"github.com/calross/medic-roster/pkg/core/rotation"
	"github.com/calross/medic-roster/pkg/db"
)

// CostLine is the estimated cost of one rotation cycle
type CostLine struct {
	Entry        model.RosterEntry
	Cycle        model.Cycle
	BillingRole  model.Role
	BillableDays int
	DayCost      float64
	ReliefCost   float64
	StandbyCost  float64
	MedevacCost  float64
	Total        float64
}

// CostEstimate is the estimated cost of the roster over a window
type CostEstimate struct {
	From, To time.Time // zero values mean an unbounded window
	Lines    []CostLine
	Total    float64
}

// billingRole classifies a cycle for rate selection. Billing uses the strict
// post match; a cycle explicitly flagged offshore bills as an offshore medic
// when the post text alone doesn't classify.
func billingRole(entry *model.RosterEntry, c *model.Cycle) model.Role {
	role := model.ClassifyPostStrict(entry.Post)
	if role == model.RoleUnclassified && c.Offshore != nil && *c.Offshore {
		role = model.RoleOffshoreMedic
	}
	return role
}

// billableDays counts the cycle's on-board days (sign-off day excluded)
// clipped to the estimate window. Cycles without two valid dates bill
// nothing.
func billableDays(c *model.Cycle, from, to time.Time) int {
	if !c.SignOn.Valid || !c.SignOff.Valid {
		return 0
	}

	start, end := c.SignOn.Time, c.SignOff.Time
	if !from.IsZero() && start.Before(rotation.DayOf(from)) {
		start = rotation.DayOf(from)
	}
	if !to.IsZero() && end.After(rotation.DayOf(to)) {
		end = rotation.DayOf(to)
	}
	if !end.After(start) {
		return 0
	}
	return int(end.Sub(start) / (24 * time.Hour))
}

// rateFor resolves the effective rates for a cycle: the cycle's own rates
// when present, otherwise the client/role rate card.
func rateFor(cardsByKey map[string]db.RateCard, entry *model.RosterEntry, c *model.Cycle, role model.Role) (day, relief, standby, medevacFee float64) {
	card := cardsByKey[entry.Client+"|"+string(role)]

	day, relief, standby = c.DayRate, c.ReliefDayRate, c.StandbyDayRate
	if day == 0 {
		day = card.DayRate
	}
	if relief == 0 {
		relief = card.ReliefDayRate
	}
	if standby == 0 {
		standby = card.StandbyDayRate
	}
	return day, relief, standby, card.MedevacFee
}

// BuildCostEstimate prices every cycle that intersects the window. A zero
// from/to leaves that side of the window open.
func BuildCostEstimate(entries []model.RosterEntry, cards []db.RateCard, from, to time.Time) *CostEstimate {
	cardsByKey := make(map[string]db.RateCard, len(cards))
	for _, card := range cards {
		cardsByKey[card.Client+"|"+card.Role] = card
	}

	estimate := &CostEstimate{From: from, To: to}
	for _, entry := range entries {
		for _, c := range entry.Cycles {
			days := billableDays(&c, from, to)
			if days == 0 && c.ReliefDays == 0 && c.StandbyDays == 0 && len(c.MedevacDates) == 0 {
				continue
			}

			role := billingRole(&entry, &c)
			dayRate, reliefRate, standbyRate, medevacFee := rateFor(cardsByKey, &entry, &c, role)

			medevacs := 0
			for _, d := range c.MedevacDates {
				if !d.Valid {
					continue
				}
				if !from.IsZero() && d.Time.Before(rotation.DayOf(from)) {
					continue
				}
				if !to.IsZero() && !d.Time.Before(rotation.DayOf(to)) {
					continue
				}
				medevacs++
			}

			line := CostLine{
				Entry:        entry,
				Cycle:        c,
				BillingRole:  role,
				BillableDays: days,
				DayCost:      float64(days) * dayRate,
				ReliefCost:   float64(c.ReliefDays) * reliefRate,
				StandbyCost:  float64(c.StandbyDays) * standbyRate,
				MedevacCost:  float64(medevacs) * medevacFee,
			}
			line.Total = line.DayCost + line.ReliefCost + line.StandbyCost + line.MedevacCost

			estimate.Lines = append(estimate.Lines, line)
			estimate.Total += line.Total
		}
	}

	return estimate
}

// EstimateCosts loads the roster and rate cards and prices the window
func EstimateCosts(ctx context.Context, database db.RosterStore, logger *zap.Logger, from, to time.Time) (*CostEstimate, error) {
	entries, err := LoadRoster(ctx, database, logger)
	if err != nil {
		return nil, err
	}

	logger.Debug("Fetching rate cards")
	cards, err := database.GetRateCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rate cards: %w", err)
	}

	estimate := BuildCostEstimate(entries, cards, from, to)
	logger.Info("Cost estimate built",
		zap.Int("lines", len(estimate.Lines)),
		zap.Float64("total", estimate.Total))

	return estimate, nil
}
