package services

import (
	"context"

	"github.com/calross/medic-roster/pkg/db"
)

// mockDB implements a test double for db.RosterStore
type mockDB struct {
	personnel []db.Personnel
	cycles    []db.RosterCycle
	medevacs  []db.MedevacEvent
	certs     []db.Certification
	rateCards []db.RateCard

	insertedCycles    []*db.RosterCycle
	insertedPersonnel []*db.Personnel

	getErr    error
	insertErr error
}

func (m *mockDB) GetPersonnel(ctx context.Context) ([]db.Personnel, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.personnel, nil
}

func (m *mockDB) InsertPersonnel(ctx context.Context, person *db.Personnel) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.insertedPersonnel = append(m.insertedPersonnel, person)
	return nil
}

func (m *mockDB) GetCycles(ctx context.Context) ([]db.RosterCycle, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.cycles, nil
}

func (m *mockDB) InsertCycle(ctx context.Context, cycle *db.RosterCycle) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.insertedCycles = append(m.insertedCycles, cycle)
	return nil
}

func (m *mockDB) GetMedevacEvents(ctx context.Context) ([]db.MedevacEvent, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.medevacs, nil
}

func (m *mockDB) GetCertifications(ctx context.Context) ([]db.Certification, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.certs, nil
}

func (m *mockDB) GetRateCards(ctx context.Context) ([]db.RateCard, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.rateCards, nil
}

// mockSheets implements a test double for SheetWriter
type mockSheets struct {
	appendedID    string
	appendedRange string
	appendedRows  [][]interface{}
	appendErr     error
}

func (m *mockSheets) AppendRows(spreadsheetID, sheetRange string, values [][]interface{}) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.appendedID = spreadsheetID
	m.appendedRange = sheetRange
	m.appendedRows = values
	return nil
}

// mockMailer implements a test double for Emailer
type mockMailer struct {
	sentTo   []string
	subjects []string
	sendErr  error
}

func (m *mockMailer) SendEmail(to, subject, body string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sentTo = append(m.sentTo, to)
	m.subjects = append(m.subjects, subject)
	return nil
}
