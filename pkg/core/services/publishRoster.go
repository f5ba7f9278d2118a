package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/calross/medic-roster/internal/config"
	"github.com/calross/medic-roster/pkg/core/model"
	"github.com/calross/medic-roster/pkg/core/rotation"
	"github.com/calross/medic-roster/pkg/db"
)

// SheetWriter is the slice of the sheets client the publisher needs
type SheetWriter interface {
	AppendRows(spreadsheetID, sheetRange string, values [][]interface{}) error
}

// scheduleDates expands the publish schedule RRULE into the date columns of
// the published matrix. An empty schedule means every day in the window.
func scheduleDates(schedule string, from, to time.Time) ([]time.Time, error) {
	from, to = rotation.DayOf(from), rotation.DayOf(to)
	if schedule == "" {
		schedule = "FREQ=DAILY"
	}

	opt, err := rrule.StrToROption(schedule)
	if err != nil {
		return nil, fmt.Errorf("invalid publish schedule: %w", err)
	}
	opt.Dtstart = from

	rule, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("invalid publish schedule: %w", err)
	}

	return rule.Between(from, to, true), nil
}

// rosterMatrix renders the roster as a people × dates grid. Cells hold the
// consecutive day count while on board (office staff show a plain marker —
// they have no rotation window to count against).
func rosterMatrix(entries []model.RosterEntry, dates []time.Time) [][]interface{} {
	header := []interface{}{"Name", "Post", "Client", "Location"}
	for _, d := range dates {
		header = append(header, rotation.FormatDate(d))
	}

	rows := [][]interface{}{header}
	for _, entry := range entries {
		row := []interface{}{entry.Name, model.DisplayRole(entry.Post), entry.Client, entry.Location}
		for _, d := range dates {
			cell := ""
			if rotation.IsOnBoard(&entry, d) {
				if days := rotation.DaysOnBoard(&entry, d); days > 0 {
					cell = strconv.Itoa(days)
				} else {
					cell = "office"
				}
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}

	return rows
}

// PublishRoster loads the roster and writes the on-board matrix for the
// window to the configured roster sheet.
func PublishRoster(ctx context.Context, database db.RosterStore, sheets SheetWriter, cfg *config.Config, logger *zap.Logger, from, to time.Time) (int, error) {
	entries, err := LoadRoster(ctx, database, logger)
	if err != nil {
		return 0, err
	}

	dates, err := scheduleDates(cfg.PublishSchedule, from, to)
	if err != nil {
		return 0, err
	}
	if len(dates) == 0 {
		return 0, fmt.Errorf("publish schedule yields no dates between %s and %s",
			rotation.FormatDate(from), rotation.FormatDate(to))
	}

	matrix := rosterMatrix(entries, dates)

	logger.Info("Publishing roster matrix",
		zap.String("sheet_id", cfg.RosterSheetID),
		zap.Int("people", len(entries)),
		zap.Int("dates", len(dates)))

	if err := sheets.AppendRows(cfg.RosterSheetID, cfg.RosterSheetTab, matrix); err != nil {
		return 0, fmt.Errorf("failed to publish roster: %w", err)
	}

	return len(matrix) - 1, nil
}
