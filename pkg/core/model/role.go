package model

import "strings"

// Role is the closed set of post classifications used throughout the app.
// Classification happens once, at ingestion, and is stored on the entry.
type Role string

const (
	RoleOffshoreMedic Role = "Offshore Medic"
	RoleEscortMedic   Role = "Escort Medic"
	RoleOfficeBased   Role = "IM Practitioner / OHN"
	RoleUnclassified  Role = "Unclassified"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleOffshoreMedic, RoleEscortMedic, RoleOfficeBased, RoleUnclassified:
		return true
	}
	return false
}

// OfficeBased reports whether presence for this role is governed by weekday
// attendance rather than rotation cycles.
func (r Role) OfficeBased() bool {
	return r == RoleOfficeBased
}

// ClassifyPost maps a free-text post string to a Role.
//
// The precedence order is load-bearing: a post containing both "IM" and
// "OFFSHORE" classifies as Offshore Medic because that check runs first.
func ClassifyPost(post string) Role {
	upper := strings.ToUpper(post)

	switch {
	case strings.Contains(upper, "OFFSHORE"):
		return RoleOffshoreMedic
	case strings.Contains(upper, "ESCORT"):
		return RoleEscortMedic
	case strings.Contains(upper, "IM"), strings.Contains(upper, "OHN"):
		return RoleOfficeBased
	default:
		return RoleUnclassified
	}
}

// ClassifyPostStrict is the variant used by billing: the medic roles must
// match the full phrase, not just the leading word. Office classification is
// unchanged.
func ClassifyPostStrict(post string) Role {
	upper := strings.ToUpper(post)

	switch {
	case strings.Contains(upper, "OFFSHORE MEDIC"):
		return RoleOffshoreMedic
	case strings.Contains(upper, "ESCORT MEDIC"):
		return RoleEscortMedic
	case strings.Contains(upper, "IM"), strings.Contains(upper, "OHN"):
		return RoleOfficeBased
	default:
		return RoleUnclassified
	}
}

// DisplayRole returns the classified role name, falling back to the raw post
// text for posts that don't classify.
func DisplayRole(post string) string {
	role := ClassifyPost(post)
	if role == RoleUnclassified {
		return post
	}
	return string(role)
}
