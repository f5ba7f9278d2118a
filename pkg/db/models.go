package db

// Personnel represents a database personnel record. Post is the free-text
// role string as entered upstream; classification happens at load time.
type Personnel struct {
	ID       string
	Name     string
	Post     string
	Client   string
	Location string
	Email    string
}

// RosterCycle represents a database rotation cycle record. Sign-on/sign-off
// are stored as the free-text date strings the data entry system supplies;
// unparseable values are tolerated and treated as absent downstream.
type RosterCycle struct {
	ID             string
	PersonID       string
	CycleNumber    int
	SignOn         string
	SignOff        string
	Offshore       *bool // nullable tri-state
	ReliefDays     int
	StandbyDays    int
	DayRate        float64
	ReliefDayRate  float64
	StandbyDayRate float64
}

// MedevacEvent represents a medevac call-out recorded against a cycle
type MedevacEvent struct {
	ID      string
	CycleID string
	Date    string
}

// Certification represents a database training certificate record
type Certification struct {
	ID       string
	PersonID string
	Course   string
	Expiry   string
}

// RateCard represents default billing rates for a client/role pairing,
// applied when a cycle carries no rates of its own
type RateCard struct {
	ID             string
	Client         string
	Role           string
	DayRate        float64
	ReliefDayRate  float64
	StandbyDayRate float64
	MedevacFee     float64
}
