package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/calross/medic-roster/pkg/core/model"
	"github.com/calross/medic-roster/pkg/db"
)

func TestEstimateCosts_CycleRatesOverRateCard(t *testing.T) {
	mock := fixtureDB()
	mock.cycles = []db.RosterCycle{
		// 14 on-board days at the cycle's own rate, plus relief days.
		{ID: "c1", PersonID: "m1", CycleNumber: 1, SignOn: "2025-09-05", SignOff: "2025-09-19",
			DayRate: 650, ReliefDays: 2, ReliefDayRate: 400},
	}
	mock.rateCards = []db.RateCard{
		{ID: "r1", Client: "NORDSEA", Role: string(model.RoleOffshoreMedic), DayRate: 500, MedevacFee: 1200},
	}
	mock.medevacs = []db.MedevacEvent{
		{ID: "me1", CycleID: "c1", Date: "2025-09-12"},
		{ID: "me2", CycleID: "c1", Date: "bad date"},
	}

	estimate, err := EstimateCosts(context.Background(), mock, zap.NewNop(), time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, estimate.Lines, 1)

	line := estimate.Lines[0]
	assert.Equal(t, model.RoleOffshoreMedic, line.BillingRole)
	assert.Equal(t, 14, line.BillableDays)
	assert.Equal(t, 14*650.0, line.DayCost, "cycle rate wins over the rate card")
	assert.Equal(t, 2*400.0, line.ReliefCost)
	assert.Equal(t, 1200.0, line.MedevacCost, "unparseable medevac date bills nothing")
	assert.Equal(t, line.Total, estimate.Total)
}

func TestEstimateCosts_RateCardFallback(t *testing.T) {
	mock := fixtureDB()
	mock.cycles = []db.RosterCycle{
		{ID: "c1", PersonID: "m1", CycleNumber: 1, SignOn: "2025-09-05", SignOff: "2025-09-19"},
	}
	mock.rateCards = []db.RateCard{
		{ID: "r1", Client: "NORDSEA", Role: string(model.RoleOffshoreMedic), DayRate: 500},
	}

	estimate, err := EstimateCosts(context.Background(), mock, zap.NewNop(), time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, estimate.Lines, 1)
	assert.Equal(t, 14*500.0, estimate.Lines[0].DayCost)
}

func TestBuildCostEstimate_WindowClipping(t *testing.T) {
	entries := BuildRosterEntries(
		[]db.Personnel{{ID: "m1", Name: "Alice", Post: "OFFSHORE MEDIC", Client: "NORDSEA"}},
		[]db.RosterCycle{{ID: "c1", PersonID: "m1", CycleNumber: 1,
			SignOn: "2025-09-05", SignOff: "2025-09-19", DayRate: 100}},
		nil,
	)

	// Clip to the first week of the cycle: Sep 5 through Sep 11 inclusive.
	from := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.September, 12, 0, 0, 0, 0, time.UTC)

	estimate := BuildCostEstimate(entries, nil, from, to)
	require.Len(t, estimate.Lines, 1)
	assert.Equal(t, 7, estimate.Lines[0].BillableDays)
	assert.Equal(t, 700.0, estimate.Total)
}

func TestBuildCostEstimate_OffshoreFlagSetsBillingRole(t *testing.T) {
	offshore := true
	entries := BuildRosterEntries(
		// A post the strict classifier can't place.
		[]db.Personnel{{ID: "p1", Name: "Sam", Post: "Medic (rotational)", Client: "ACME"}},
		[]db.RosterCycle{{ID: "c1", PersonID: "p1", CycleNumber: 1,
			SignOn: "2025-09-05", SignOff: "2025-09-19", Offshore: &offshore}},
		nil,
	)

	cards := []db.RateCard{
		{ID: "r1", Client: "ACME", Role: string(model.RoleOffshoreMedic), DayRate: 500},
	}

	estimate := BuildCostEstimate(entries, cards, time.Time{}, time.Time{})
	require.Len(t, estimate.Lines, 1)
	assert.Equal(t, model.RoleOffshoreMedic, estimate.Lines[0].BillingRole)
	assert.Equal(t, 14*500.0, estimate.Lines[0].DayCost)
}

func TestBuildCostEstimate_InvalidDatesBillNothing(t *testing.T) {
	entries := BuildRosterEntries(
		[]db.Personnel{{ID: "m1", Name: "Alice", Post: "OFFSHORE MEDIC"}},
		[]db.RosterCycle{{ID: "c1", PersonID: "m1", CycleNumber: 1, SignOn: "N/A", SignOff: "2025-09-19", DayRate: 100}},
		nil,
	)

	estimate := BuildCostEstimate(entries, nil, time.Time{}, time.Time{})
	assert.Empty(t, estimate.Lines)
	assert.Zero(t, estimate.Total)
}
