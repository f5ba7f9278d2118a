package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/calross/medic-roster/pkg/core/rotation"
	"github.com/calross/medic-roster/pkg/db"
)

// AddCycle records a new rotation cycle for a person. Dates are stored as
// supplied; a warning is logged when they don't parse, since such a cycle
// will never contribute presence.
func AddCycle(ctx context.Context, database db.RosterStore, logger *zap.Logger, personID string, cycleNumber int, signOn, signOff string) (*db.RosterCycle, error) {
	if cycleNumber <= 0 {
		return nil, fmt.Errorf("cycle number must be positive, got %d", cycleNumber)
	}

	personnel, err := database.GetPersonnel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch personnel: %w", err)
	}
	found := false
	for _, p := range personnel {
		if p.ID == personID {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("unknown person ID %q", personID)
	}

	if _, ok := rotation.ParseDate(signOn); !ok {
		logger.Warn("Sign-on date does not parse; cycle will contribute no presence",
			zap.String("sign_on", signOn))
	}
	if _, ok := rotation.ParseDate(signOff); !ok {
		logger.Warn("Sign-off date does not parse; cycle will contribute no presence",
			zap.String("sign_off", signOff))
	}

	cycle := &db.RosterCycle{
		ID:          uuid.New().String(),
		PersonID:    personID,
		CycleNumber: cycleNumber,
		SignOn:      signOn,
		SignOff:     signOff,
	}

	logger.Info("Recording rotation cycle",
		zap.String("id", cycle.ID),
		zap.String("person_id", personID),
		zap.Int("cycle_number", cycleNumber))

	if err := database.InsertCycle(ctx, cycle); err != nil {
		return nil, fmt.Errorf("failed to insert cycle: %w", err)
	}

	return cycle, nil
}
