package postgres

import (
	"database/sql"

	"github.com/BrandonMiller18/nhlcompanion-be/internal/domain/game"
)

type gameInsertModel struct {
	GameID       int64          `db:"game_id"`
	Season       int            `db:"season"`
	GameType     int            `db:"game_type"`
	StartTimeUTC sql.NullTime   `db:"start_time_utc"`
	Venue        sql.NullString `db:"venue"`
	HomeTeamID   int64          `db:"home_team_id"`
	AwayTeamID   int64          `db:"away_team_id"`
	State        sql.NullString `db:"game_state"`
	HomeScore    int            `db:"home_score"`
	AwayScore    int            `db:"away_score"`
}

func gameToInsertModel(row game.Game) gameInsertModel {
	return gameInsertModel{
		GameID:       row.ID,
		Season:       row.Season,
		GameType:     row.GameType,
		StartTimeUTC: nullableTime(row.StartTimeUTC),
		Venue:        nullableString(row.Venue),
		HomeTeamID:   row.HomeTeamID,
		AwayTeamID:   row.AwayTeamID,
		State:        nullableString(row.State),
		HomeScore:    row.HomeScore,
		AwayScore:    row.AwayScore,
	}
}
