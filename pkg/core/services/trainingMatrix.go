package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/calross/medic-roster/pkg/core/model"
	"github.com/calross/medic-roster/pkg/core/rotation"
	"github.com/calross/medic-roster/pkg/db"
)

// MatrixCell is one person/course intersection in the training matrix
type MatrixCell struct {
	Status model.CertStatus
	Expiry model.DateValue
}

// TrainingMatrix is the pivoted person × course compliance view
type TrainingMatrix struct {
	Date    time.Time
	Courses []string
	People  []model.RosterEntry
	Cells   map[string]map[string]MatrixCell // person ID → course → cell
}

// Cell returns the matrix cell for a person/course pair. Pairs with no
// certificate on record report CertMissing.
func (m *TrainingMatrix) Cell(personID, course string) MatrixCell {
	if row, ok := m.Cells[personID]; ok {
		if cell, ok := row[course]; ok {
			return cell
		}
	}
	return MatrixCell{Status: model.CertMissing}
}

// certStatus tiers a certificate expiry against the query date. An expiry
// that failed to parse counts as missing: there is nothing to certify
// against.
func certStatus(expiry model.DateValue, date time.Time, warningDays int) model.CertStatus {
	if !expiry.Valid {
		return model.CertMissing
	}

	day := rotation.DayOf(date)
	if expiry.Time.Before(day) {
		return model.CertExpired
	}
	if !expiry.Time.After(day.AddDate(0, 0, warningDays)) {
		return model.CertExpiringSoon
	}
	return model.CertValid
}

// BuildTrainingMatrix pivots certification records into a person × course
// compliance matrix as of the given date. warningDays controls the
// expiring-soon tier.
func BuildTrainingMatrix(entries []model.RosterEntry, certs []model.Certification, date time.Time, warningDays int) *TrainingMatrix {
	matrix := &TrainingMatrix{
		Date:   rotation.DayOf(date),
		People: entries,
		Cells:  make(map[string]map[string]MatrixCell),
	}

	courseSet := make(map[string]struct{})
	for _, cert := range certs {
		courseSet[cert.Course] = struct{}{}

		row, ok := matrix.Cells[cert.PersonID]
		if !ok {
			row = make(map[string]MatrixCell)
			matrix.Cells[cert.PersonID] = row
		}

		cell := MatrixCell{
			Status: certStatus(cert.Expiry, date, warningDays),
			Expiry: cert.Expiry,
		}

		// Duplicate records for the same course: keep the latest expiry.
		if existing, ok := row[cert.Course]; ok && existing.Expiry.Valid {
			if !cell.Expiry.Valid || existing.Expiry.Time.After(cell.Expiry.Time) {
				continue
			}
		}
		row[cert.Course] = cell
	}

	for course := range courseSet {
		matrix.Courses = append(matrix.Courses, course)
	}
	sort.Strings(matrix.Courses)

	return matrix
}

// Matrix loads the roster and certifications and builds the training matrix
func Matrix(ctx context.Context, database db.RosterStore, logger *zap.Logger, date time.Time, warningDays int) (*TrainingMatrix, error) {
	entries, err := LoadRoster(ctx, database, logger)
	if err != nil {
		return nil, err
	}

	logger.Debug("Fetching certifications")
	rows, err := database.GetCertifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch certifications: %w", err)
	}

	certs := make([]model.Certification, len(rows))
	for i, row := range rows {
		certs[i] = model.Certification{
			PersonID: row.PersonID,
			Course:   row.Course,
			Expiry:   rotation.ParseDateValue(row.Expiry),
		}
	}

	matrix := BuildTrainingMatrix(entries, certs, date, warningDays)
	logger.Info("Training matrix built",
		zap.Int("people", len(matrix.People)),
		zap.Int("courses", len(matrix.Courses)))

	return matrix, nil
}
