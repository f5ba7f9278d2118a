package model

import "time"

// DateValue is a parsed-or-absent calendar date. Upstream supplies dates as
// free text; anything that fails to parse is carried as absent, never as an
// error.
type DateValue struct {
	Time  time.Time
	Valid bool
}

// Cycle is one contiguous rotation period. Presence is defined on the
// half-open interval [SignOn, SignOff): the sign-off date is the day the
// person leaves.
type Cycle struct {
	Number   int
	SignOn   DateValue
	SignOff  DateValue
	Offshore *bool // tri-state; consumed by billing, not by presence

	// Billing fields, ignored by the presence calculator.
	ReliefDays      int
	StandbyDays     int
	DayRate         float64
	ReliefDayRate   float64
	StandbyDayRate  float64
	MedevacDates    []DateValue
}

// RosterEntry is one person's full rotation record.
type RosterEntry struct {
	PersonID string
	Name     string
	Post     string // raw free-text post, kept for display
	Role     Role   // classified once at ingestion from Post
	Client   string
	Location string
	Email    string
	Cycles   []Cycle // ordered by cycle number
}

// Certification is one training/certificate record for a person.
type Certification struct {
	PersonID string
	Course   string
	Expiry   DateValue
}

// CertStatus is the compliance tier of a certification on a given day.
type CertStatus string

const (
	CertValid        CertStatus = "Valid"
	CertExpiringSoon CertStatus = "Expiring soon"
	CertExpired      CertStatus = "Expired"
	CertMissing      CertStatus = "Missing"
)
