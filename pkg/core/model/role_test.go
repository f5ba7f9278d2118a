package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPost(t *testing.T) {
	tests := []struct {
		post string
		want Role
	}{
		{"OFFSHORE MEDIC", RoleOffshoreMedic},
		{"offshore medic", RoleOffshoreMedic},
		{"Senior Offshore Paramedic", RoleOffshoreMedic},
		{"ESCORT MEDIC", RoleEscortMedic},
		{"Medical Escort", RoleEscortMedic},
		{"IM PRACTITIONER", RoleOfficeBased},
		{"OHN", RoleOfficeBased},
		{"Occupational Health Nurse (OHN)", RoleOfficeBased},
		{"Rig Electrician", RoleUnclassified},
		{"", RoleUnclassified},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyPost(tt.post), "post %q", tt.post)
	}
}

func TestClassifyPost_PrecedenceOrder(t *testing.T) {
	// A post containing several trigger substrings resolves by precedence:
	// offshore first, then escort, then office.
	assert.Equal(t, RoleOffshoreMedic, ClassifyPost("IM PRACTITIONER / OFFSHORE MEDIC"))
	assert.Equal(t, RoleEscortMedic, ClassifyPost("ESCORT MEDIC (interim)"))
}

func TestClassifyPostStrict(t *testing.T) {
	// Strict matching needs the full phrase for the medic roles.
	assert.Equal(t, RoleOffshoreMedic, ClassifyPostStrict("OFFSHORE MEDIC"))
	assert.Equal(t, RoleUnclassified, ClassifyPostStrict("Offshore Installation Manager's assistant"))
	assert.Equal(t, RoleEscortMedic, ClassifyPostStrict("Escort Medic - North Sea"))
	assert.Equal(t, RoleUnclassified, ClassifyPostStrict("Escort Driver"))
	assert.Equal(t, RoleOfficeBased, ClassifyPostStrict("IM Practitioner"))
}

func TestDisplayRole(t *testing.T) {
	assert.Equal(t, "Offshore Medic", DisplayRole("OFFSHORE MEDIC"))
	assert.Equal(t, "Rig Electrician", DisplayRole("Rig Electrician"), "unclassified posts display raw text")
}
