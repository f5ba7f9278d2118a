package db

import "context"

// PersonnelStore defines the interface for personnel database operations
type PersonnelStore interface {
	GetPersonnel(ctx context.Context) ([]Personnel, error)
	InsertPersonnel(ctx context.Context, person *Personnel) error
}

// CycleStore defines the interface for rotation cycle database operations
type CycleStore interface {
	GetCycles(ctx context.Context) ([]RosterCycle, error)
	InsertCycle(ctx context.Context, cycle *RosterCycle) error
	GetMedevacEvents(ctx context.Context) ([]MedevacEvent, error)
}

// CertificationStore defines the interface for certification database operations
type CertificationStore interface {
	GetCertifications(ctx context.Context) ([]Certification, error)
}

// RateStore defines the interface for rate card database operations
type RateStore interface {
	GetRateCards(ctx context.Context) ([]RateCard, error)
}

// RosterStore is the full store surface the services layer depends on
type RosterStore interface {
	PersonnelStore
	CycleStore
	CertificationStore
	RateStore
}
