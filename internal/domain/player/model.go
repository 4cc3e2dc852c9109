package player

// Player is one rostered skater or goalie.
type Player struct {
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
