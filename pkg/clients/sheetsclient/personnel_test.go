package sheetsclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePersonnel(t *testing.T) {
	raw := [][]interface{}{
		{"Unique ID", "Name", "Post", "Client", "Location", "Email"},
		{"m1", "Alice Brennan", "OFFSHORE MEDIC", "NORDSEA", "Forties Delta", "alice@example.com"},
		{"", "", "", "", "", ""}, // spacer row
		{"o1", "Priya Nair", "IM PRACTITIONER", "ACME", "Aberdeen office"},
	}

	people, err := parsePersonnel(raw)
	require.NoError(t, err)
	require.Len(t, people, 2)

	assert.Equal(t, "m1", people[0].ID)
	assert.Equal(t, "Alice Brennan", people[0].Name)
	assert.Equal(t, "alice@example.com", people[0].Email)

	assert.Equal(t, "o1", people[1].ID)
	assert.Empty(t, people[1].Email, "short rows read as empty fields")
}

func TestParsePersonnel_ColumnOrderIndependent(t *testing.T) {
	raw := [][]interface{}{
		{"Email", "Unique ID", "Post", "Name", "Client", "Location"},
		{"alice@example.com", "m1", "OFFSHORE MEDIC", "Alice Brennan", "NORDSEA", "Forties Delta"},
	}

	people, err := parsePersonnel(raw)
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "m1", people[0].ID)
	assert.Equal(t, "Alice Brennan", people[0].Name)
}

func TestParsePersonnel_MissingHeader(t *testing.T) {
	raw := [][]interface{}{
		{"Unique ID", "Name", "Post", "Client", "Location"}, // no Email column
		{"m1", "Alice Brennan", "OFFSHORE MEDIC", "NORDSEA", "Forties Delta"},
	}

	_, err := parsePersonnel(raw)
	assert.ErrorContains(t, err, "Email")
}
