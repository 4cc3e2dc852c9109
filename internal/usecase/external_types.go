package usecase

import "time"

// ExternalScheduleGame is one schedule entry for a single date.
type ExternalScheduleGame struct {
	ID           int64
	Season       int
	GameType     int
	StartTimeUTC *time.Time
	Venue        string
	HomeTeamID   int64
	AwayTeamID   int64
	State        string
	HomeScore    *int
	AwayScore    *int
}

type ExternalPeriodDescriptor struct {
	Number        *int
	TimeRemaining *string
	TimeElapsed   *string
}

// ExternalClock carries the landing clock in the shapes the upstream has
// been observed to emit. Raw holds the clock object as received when
// neither string field is present.
type ExternalClock struct {
	TimeRemaining *string
	DisplayValue  *string
	Raw           string
}

type ExternalTeamState struct {
	ID    int64
	Score *int
	SOG   *int
}

type ExternalGameLanding struct {
	GameID           int64
	State            string
	PeriodDescriptor ExternalPeriodDescriptor
	Clock            ExternalClock
	HomeTeam         ExternalTeamState
	AwayTeam         ExternalTeamState
}

type ExternalGameBoxscore struct {
	GameID   int64
	State    string
	HomeTeam ExternalTeamState
	AwayTeam ExternalTeamState
}

type ExternalPlayByPlay struct {
	GameID int64
	State  string
	Plays  []ExternalPlayEvent
}

// ExternalPlayEvent is one raw play-by-play event. Every actor and timing
// field is optional upstream; resolution order lives in NormalizePlay.
type ExternalPlayEvent struct {
	EventID          int
	SortOrder        int
	TypeDescKey      string
	PeriodDescriptor ExternalPeriodDescriptor
	TimeInPeriod     *string
	TimeRemaining    *string
	TeamID           *int64
	Details          ExternalPlayDetails
}

type ExternalPlayDetails struct {
	EventOwnerTeamID *int64

	PlayerID            *int64
	ShootingPlayerID    *int64
	ScoringPlayerID     *int64
	HittingPlayerID     *int64
	WinningPlayerID     *int64
	BlockingPlayerID    *int64
	CommittedByPlayerID *int64

	LosingPlayerID  *int64
	HitteePlayerID  *int64
	GoalieInNetID   *int64
	DrawnByPlayerID *int64

	AssistingPlayerIDs []int64
	Assist1PlayerID    *int64
	Assist2PlayerID    *int64

	XCoord   *float64
	YCoord   *float64
	ZoneCode *string
}

// ExternalFranchise is one active franchise from the records feed.
type ExternalFranchise struct {
	TeamID   int64
	Name     string
	City     string
	Abbrev   string
	LogoURL  string
	IsActive bool
}

// ExternalRosterPlayer is one roster entry for a team.
type ExternalRosterPlayer struct {
	ID           int64
	TeamID       int64
	FirstName    string
	LastName     string
	Sweater      *int
	Position     string
	HeadshotURL  string
	BirthCity    string
	BirthCountry string
}
