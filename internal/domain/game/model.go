package game

import (
	"strings"
	"time"
)

const (
	StateFuture        = "FUT"
	StatePreGame       = "PRE"
	StateLive          = "LIVE"
	StateCritical      = "CRIT"
	StateFinal         = "FINAL"
	StateOff           = "OFF"
	StateGameOver      = "GAMEOVER"
	StateFinalOvertime = "FINAL_OVERTIME"
	StateFinalShootout = "FINAL_SHOOTOUT"
)

// Game is one scheduled or in-progress NHL game keyed by the
// upstream-assigned game id.
type Game struct {
	ID           int64
	Season       int
	GameType     int
	StartTimeUTC *time.Time
	Venue        string
	HomeTeamID   int64
	AwayTeamID   int64
	State        string
	Period       int
	Clock        string
	HomeScore    int
	AwayScore    int
	HomeSOG      int
	AwaySOG      int
}

// Snapshot is the reconciled live view of one game. Nil fields mean the
// upstream sources carried no value; persistence applies the defaults.
type Snapshot struct {
	State     string
	Period    *int
	Clock     *string
	HomeScore int
	AwayScore int
	HomeSOG   int
	AwaySOG   int
}

// IsLiveState reports whether a schedule-reported state means the game is
// currently being played.
func IsLiveState(state string) bool {
	switch strings.ToUpper(strings.TrimSpace(state)) {
	case StateLive, StateCritical:
		return true
	default:
		return false
	}
}

// IsTerminalState reports whether a reconciled state means the game is over
// and no further live updates are expected.
func IsTerminalState(state string) bool {
	switch strings.ToLower(strings.TrimSpace(state)) {
	case "final", "off", "gameover", "final_overtime", "final_shootout":
		return true
	default:
		return false
	}
}
