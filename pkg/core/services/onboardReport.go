package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/calross/medic-roster/pkg/core/model"
	"github.com/calross/medic-roster/pkg/core/rotation"
	"github.com/calross/medic-roster/pkg/db"
)

// OnBoardPerson is one row of the on-board report
type OnBoardPerson struct {
	Entry             model.RosterEntry
	DaysOnBoard       int
	RangeStart        time.Time
	RangeEnd          time.Time
	HasRange          bool
	DepartureImminent bool
	LongSwing         bool
}

// OnBoardReport summarises who is on board on a given date
type OnBoardReport struct {
	Date       time.Time
	OnBoard    []OnBoardPerson
	ByRole     map[model.Role]int
	ByClient   map[string]int
	ByLocation map[string]int
	Departing  []OnBoardPerson // departure within 3 days
	LongSwings []OnBoardPerson // on board at least longSwingDays days
}

// BuildOnBoardReport runs the attendance calculator across a roster for one
// query date. longSwingDays is the threshold for the extended-swing warning
// list (14 in the standard configuration).
func BuildOnBoardReport(entries []model.RosterEntry, date time.Time, longSwingDays int) *OnBoardReport {
	report := &OnBoardReport{
		Date:       rotation.DayOf(date),
		ByRole:     make(map[model.Role]int),
		ByClient:   make(map[string]int),
		ByLocation: make(map[string]int),
	}

	for _, entry := range entries {
		if !rotation.IsOnBoard(&entry, date) {
			continue
		}

		person := OnBoardPerson{
			Entry:       entry,
			DaysOnBoard: rotation.DaysOnBoard(&entry, date),
		}
		person.RangeStart, person.RangeEnd, person.HasRange = rotation.ActiveRange(&entry, date)
		person.DepartureImminent = rotation.IsDepartureImminent(&entry, date)
		person.LongSwing = person.DaysOnBoard >= longSwingDays

		report.OnBoard = append(report.OnBoard, person)
		report.ByRole[entry.Role]++
		if entry.Client != "" {
			report.ByClient[entry.Client]++
		}
		if entry.Location != "" {
			report.ByLocation[entry.Location]++
		}
		if person.DepartureImminent {
			report.Departing = append(report.Departing, person)
		}
		if person.LongSwing {
			report.LongSwings = append(report.LongSwings, person)
		}
	}

	return report
}

// OnBoard loads the roster and builds the on-board report for the given date
func OnBoard(ctx context.Context, database db.RosterStore, logger *zap.Logger, date time.Time, longSwingDays int) (*OnBoardReport, error) {
	entries, err := LoadRoster(ctx, database, logger)
	if err != nil {
		return nil, err
	}

	report := BuildOnBoardReport(entries, date, longSwingDays)
	logger.Info("On-board report built",
		zap.String("date", rotation.FormatDate(report.Date)),
		zap.Int("on_board", len(report.OnBoard)),
		zap.Int("departing", len(report.Departing)),
		zap.Int("long_swings", len(report.LongSwings)))

	return report, nil
}
