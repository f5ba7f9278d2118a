package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/calross/medic-roster/internal/config"
	"github.com/calross/medic-roster/pkg/core/rotation"
	"github.com/calross/medic-roster/pkg/db"
)

// Emailer is the slice of the gmail client the notifier needs
type Emailer interface {
	SendEmail(to, subject, body string) error
}

// SentNotice records a departure notice that was sent
type SentNotice struct {
	PersonID string
	Name     string
	Email    string
	SignOff  time.Time
}

// FailedNotice records a departure notice that could not be sent
type FailedNotice struct {
	PersonID string
	Name     string
	Email    string
	Error    string
}

// NotifyDepartures emails a departure notice to every person whose active
// cycle ends within the next 3 days. People without an email address on file
// are reported as failures rather than silently skipped.
func NotifyDepartures(ctx context.Context, database db.RosterStore, mailer Emailer, cfg *config.Config, logger *zap.Logger, date time.Time) ([]SentNotice, []FailedNotice, error) {
	entries, err := LoadRoster(ctx, database, logger)
	if err != nil {
		return nil, nil, err
	}

	var sent []SentNotice
	var failed []FailedNotice

	for _, entry := range entries {
		if !rotation.IsDepartureImminent(&entry, date) {
			continue
		}
		_, end, _ := rotation.ActiveRange(&entry, date)

		if entry.Email == "" {
			logger.Warn("No email address on file for departing person",
				zap.String("person_id", entry.PersonID),
				zap.String("name", entry.Name))
			failed = append(failed, FailedNotice{
				PersonID: entry.PersonID,
				Name:     entry.Name,
				Error:    "no email address on file",
			})
			continue
		}

		subject := fmt.Sprintf("Rotation sign-off %s", rotation.FormatDate(end))
		body := fmt.Sprintf(
			"Hi %s,\n\nYour current rotation ends on %s. Please confirm your travel arrangements with the %s office.\n\nSent on behalf of %s.\n",
			entry.Name, rotation.FormatDate(end), entry.Location, cfg.GmailSender)

		if err := mailer.SendEmail(entry.Email, subject, body); err != nil {
			logger.Error("Failed to send departure notice",
				zap.String("person_id", entry.PersonID),
				zap.Error(err))
			failed = append(failed, FailedNotice{
				PersonID: entry.PersonID,
				Name:     entry.Name,
				Email:    entry.Email,
				Error:    err.Error(),
			})
			continue
		}

		logger.Info("Departure notice sent",
			zap.String("person_id", entry.PersonID),
			zap.String("sign_off", rotation.FormatDate(end)))
		sent = append(sent, SentNotice{
			PersonID: entry.PersonID,
			Name:     entry.Name,
			Email:    entry.Email,
			SignOff:  end,
		})
	}

	return sent, failed, nil
}
