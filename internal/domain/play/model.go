package play

import "strconv"

// Play is one normalized play-by-play event. Identity columns (ID, GameID)
// are immutable once written; every other column is overwritten on each
// re-observation of the same event.
type Play struct {
	ID                int64
	GameID            int64
	Index             int
	TeamID            *int64
	PrimaryPlayerID   *int64
	OpposingPlayerID  *int64
	SecondaryAssistID *int64
	TertiaryAssistID  *int64
	Period            int
	TimeElapsed       string
	TimeRemaining     string
	EventType         string
	ZoneCode          string
	XCoord            *float64
	YCoord            *float64
}

// ComposeID derives the globally unique play identity from the
// (gameID, eventID) pair by decimal concatenation reparsed as an integer.
// Plain addition is not lossless: gameID1+eventID1 can equal
// gameID2+eventID2 for distinct pairs, so it must never be used here.
func ComposeID(gameID int64, eventID int) int64 {
	composed := strconv.FormatInt(gameID, 10) + strconv.Itoa(eventID)
	id, err := strconv.ParseInt(composed, 10, 64)
	if err != nil {
		// eventID magnitudes that overflow int64 do not occur upstream;
		// fall back to a shifted combination that stays collision-free
		// for the id ranges the API hands out.
		return gameID*1_000_000 + int64(eventID)
	}
	return id
}
