package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/calross/medic-roster/pkg/core/model"
	"github.com/calross/medic-roster/pkg/core/rotation"
	"github.com/calross/medic-roster/pkg/db"
)

func TestMatrix_StatusTiers(t *testing.T) {
	mock := fixtureDB()
	mock.certs = []db.Certification{
		{ID: "x1", PersonID: "m1", Course: "HUET", Expiry: "2026-03-01"},
		{ID: "x2", PersonID: "m1", Course: "BOSIET", Expiry: "2025-10-01"},
		{ID: "x3", PersonID: "o1", Course: "HUET", Expiry: "2025-01-01"},
		{ID: "x4", PersonID: "o1", Course: "First Aid", Expiry: "not recorded"},
	}

	date := time.Date(2025, time.September, 18, 0, 0, 0, 0, time.UTC)
	matrix, err := Matrix(context.Background(), mock, zap.NewNop(), date, 90)
	require.NoError(t, err)

	assert.Equal(t, []string{"BOSIET", "First Aid", "HUET"}, matrix.Courses)

	assert.Equal(t, model.CertValid, matrix.Cell("m1", "HUET").Status, "expiry beyond the warning window")
	assert.Equal(t, model.CertExpiringSoon, matrix.Cell("m1", "BOSIET").Status, "expiry inside 90 days")
	assert.Equal(t, model.CertExpired, matrix.Cell("o1", "HUET").Status)
	assert.Equal(t, model.CertMissing, matrix.Cell("o1", "First Aid").Status, "unparseable expiry")
	assert.Equal(t, model.CertMissing, matrix.Cell("m1", "First Aid").Status, "no record at all")
}

func TestCertStatus_Boundaries(t *testing.T) {
	day := time.Date(2025, time.September, 18, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		expiry string
		want   model.CertStatus
	}{
		{"expired yesterday", "2025-09-17", model.CertExpired},
		{"expires today", "2025-09-18", model.CertExpiringSoon},
		{"last day of warning window", "2025-12-17", model.CertExpiringSoon},
		{"first day past the window", "2025-12-18", model.CertValid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := certStatus(rotation.ParseDateValue(tt.expiry), day, 90)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildTrainingMatrix_DuplicateKeepsLatestExpiry(t *testing.T) {
	certs := []model.Certification{
		{PersonID: "m1", Course: "HUET", Expiry: rotation.ParseDateValue("2025-01-01")},
		{PersonID: "m1", Course: "HUET", Expiry: rotation.ParseDateValue("2027-01-01")},
	}

	date := time.Date(2025, time.September, 18, 0, 0, 0, 0, time.UTC)
	matrix := BuildTrainingMatrix(nil, certs, date, 90)

	cell := matrix.Cell("m1", "HUET")
	assert.Equal(t, model.CertValid, cell.Status)
	assert.Equal(t, "2027-01-01", rotation.FormatDate(cell.Expiry.Time))
}
