package postgres

import (
	"database/sql"

	"github.com/BrandonMiller18/nhlcompanion-be/internal/domain/play"
)

type playInsertModel struct {
	PlayID            int64           `db:"play_id"`
	GameID            int64           `db:"game_id"`
	PlayIndex         int             `db:"play_index"`
	TeamID            sql.NullInt64   `db:"team_id"`
	PrimaryPlayerID   sql.NullInt64   `db:"primary_player_id"`
	OpposingPlayerID  sql.NullInt64   `db:"opposing_player_id"`
	SecondaryAssistID sql.NullInt64   `db:"secondary_assist_id"`
	TertiaryAssistID  sql.NullInt64   `db:"tertiary_assist_id"`
	Period            int             `db:"period"`
	TimeElapsed       string          `db:"time_elapsed"`
	TimeRemaining     string          `db:"time_remaining"`
	EventType         sql.NullString  `db:"event_type"`
	ZoneCode          sql.NullString  `db:"zone_code"`
	XCoord            sql.NullFloat64 `db:"x_coord"`
	YCoord            sql.NullFloat64 `db:"y_coord"`
}

func playToInsertModel(row play.Play) playInsertModel {
	return playInsertModel{
		PlayID:            row.ID,
		GameID:            row.GameID,
		PlayIndex:         row.Index,
		TeamID:            nullableInt64(row.TeamID),
		PrimaryPlayerID:   nullableInt64(row.PrimaryPlayerID),
		OpposingPlayerID:  nullableInt64(row.OpposingPlayerID),
		SecondaryAssistID: nullableInt64(row.SecondaryAssistID),
		TertiaryAssistID:  nullableInt64(row.TertiaryAssistID),
		Period:            row.Period,
		TimeElapsed:       row.TimeElapsed,
		TimeRemaining:     row.TimeRemaining,
		EventType:         nullableString(row.EventType),
		ZoneCode:          nullableString(row.ZoneCode),
		XCoord:            nullableFloat64(row.XCoord),
		YCoord:            nullableFloat64(row.YCoord),
	}
}
