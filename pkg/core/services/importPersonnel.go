package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/calross/medic-roster/internal/config"
	"github.com/calross/medic-roster/pkg/db"
)

// PersonnelLister is the slice of the sheets client the importer needs
type PersonnelLister interface {
	ListPersonnel(cfg *config.Config) ([]db.Personnel, error)
}

// ImportPersonnel syncs the staff directory sheet into the database.
// Existing IDs are left untouched; only new people are inserted. Returns the
// inserted records.
func ImportPersonnel(ctx context.Context, database db.RosterStore, sheets PersonnelLister, cfg *config.Config, logger *zap.Logger) ([]db.Personnel, error) {
	if cfg.PersonnelSheetID == "" {
		return nil, fmt.Errorf("personnelSheetID is not configured")
	}

	directory, err := sheets.ListPersonnel(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read staff directory: %w", err)
	}

	existing, err := database.GetPersonnel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch personnel: %w", err)
	}
	known := make(map[string]bool, len(existing))
	for _, p := range existing {
		known[p.ID] = true
	}

	var inserted []db.Personnel
	for _, p := range directory {
		if known[p.ID] {
			continue
		}
		person := p
		if err := database.InsertPersonnel(ctx, &person); err != nil {
			return inserted, fmt.Errorf("failed to insert personnel %s: %w", p.ID, err)
		}
		logger.Info("Imported person from staff directory",
			zap.String("id", p.ID),
			zap.String("name", p.Name))
		inserted = append(inserted, person)
	}

	logger.Info("Staff directory import complete",
		zap.Int("directory", len(directory)),
		zap.Int("inserted", len(inserted)))

	return inserted, nil
}
