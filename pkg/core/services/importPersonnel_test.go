package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/calross/medic-roster/internal/config"
	"github.com/calross/medic-roster/pkg/db"
)

type mockDirectory struct {
	people  []db.Personnel
	listErr error
}

func (m *mockDirectory) ListPersonnel(cfg *config.Config) ([]db.Personnel, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.people, nil
}

func importConfig() *config.Config {
	cfg := publishConfig()
	cfg.PersonnelSheetID = "directory123"
	cfg.PersonnelSheetTab = "Staff"
	return cfg
}

func TestImportPersonnel_OnlyNewPeople(t *testing.T) {
	mock := fixtureDB()
	directory := &mockDirectory{people: []db.Personnel{
		{ID: "m1", Name: "Alice Brennan", Post: "OFFSHORE MEDIC"}, // already known
		{ID: "m2", Name: "Dan Okafor", Post: "ESCORT MEDIC", Email: "dan@example.com"},
	}}

	inserted, err := ImportPersonnel(context.Background(), mock, directory, importConfig(), zap.NewNop())
	require.NoError(t, err)

	require.Len(t, inserted, 1)
	assert.Equal(t, "m2", inserted[0].ID)
	require.Len(t, mock.insertedPersonnel, 1)
	assert.Equal(t, "Dan Okafor", mock.insertedPersonnel[0].Name)
}

func TestImportPersonnel_NotConfigured(t *testing.T) {
	_, err := ImportPersonnel(context.Background(), fixtureDB(), &mockDirectory{}, publishConfig(), zap.NewNop())
	assert.ErrorContains(t, err, "not configured")
}

func TestImportPersonnel_SheetError(t *testing.T) {
	directory := &mockDirectory{listErr: errors.New("permission denied")}

	_, err := ImportPersonnel(context.Background(), fixtureDB(), directory, importConfig(), zap.NewNop())
	assert.ErrorContains(t, err, "permission denied")
}
