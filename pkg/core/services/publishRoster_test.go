package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/calross/medic-roster/internal/config"
)

func publishConfig() *config.Config {
	return &config.Config{
		DatabaseURL:     "postgres://localhost/roster",
		RosterSheetID:   "sheet123",
		RosterSheetTab:  "Roster",
		GmailUserID:     "ops@example.com",
		CertWarningDays: 90,
		LongSwingDays:   14,
	}
}

func TestPublishRoster(t *testing.T) {
	mock := fixtureDB()
	sheets := &mockSheets{}

	from := time.Date(2025, time.September, 17, 0, 0, 0, 0, time.UTC) // Wednesday
	to := time.Date(2025, time.September, 20, 0, 0, 0, 0, time.UTC)   // Saturday

	rows, err := PublishRoster(context.Background(), mock, sheets, publishConfig(), zap.NewNop(), from, to)
	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	assert.Equal(t, "sheet123", sheets.appendedID)
	assert.Equal(t, "Roster", sheets.appendedRange)
	require.Len(t, sheets.appendedRows, 3, "header plus one row per person")

	header := sheets.appendedRows[0]
	require.Len(t, header, 4+4, "four date columns for a daily schedule")
	assert.Equal(t, "2025-09-17", header[4])
	assert.Equal(t, "2025-09-20", header[7])

	// Alice: days 13 and 14, then departed on the sign-off day.
	alice := sheets.appendedRows[1]
	assert.Equal(t, "Alice Brennan", alice[0])
	assert.Equal(t, "Offshore Medic", alice[1])
	assert.Equal(t, []interface{}{"13", "14", "", ""}, []interface{}(alice[4:]))

	// Priya: office marker on weekdays, blank on the weekend.
	priya := sheets.appendedRows[2]
	assert.Equal(t, []interface{}{"office", "office", "office", ""}, []interface{}(priya[4:]))
}

func TestPublishRoster_WeekdayScheduleSkipsWeekend(t *testing.T) {
	mock := fixtureDB()
	sheets := &mockSheets{}
	cfg := publishConfig()
	cfg.PublishSchedule = "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR"

	from := time.Date(2025, time.September, 5, 0, 0, 0, 0, time.UTC) // Friday
	to := time.Date(2025, time.September, 8, 0, 0, 0, 0, time.UTC)   // Monday

	_, err := PublishRoster(context.Background(), mock, sheets, cfg, zap.NewNop(), from, to)
	require.NoError(t, err)

	header := sheets.appendedRows[0]
	require.Len(t, header, 4+2)
	assert.Equal(t, "2025-09-05", header[4])
	assert.Equal(t, "2025-09-08", header[5])
}

func TestScheduleDates_EmptyWindow(t *testing.T) {
	from := time.Date(2025, time.September, 6, 0, 0, 0, 0, time.UTC) // Saturday
	to := time.Date(2025, time.September, 7, 0, 0, 0, 0, time.UTC)   // Sunday

	dates, err := scheduleDates("FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR", from, to)
	require.NoError(t, err)
	assert.Empty(t, dates)
}
