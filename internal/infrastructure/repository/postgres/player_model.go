package postgres

import (
	"database/sql"

	"github.com/BrandonMiller18/nhlcompanion-be/internal/domain/player"
)

type playerInsertModel struct {
	PlayerID     int64          `db:"player_id"`
	TeamID       int64          `db:"team_id"`
	FirstName    string         `db:"first_name"`
	LastName     string         `db:"last_name"`
	Sweater      sql.NullInt64  `db:"sweater"`
	Position     sql.NullString `db:"position"`
	HeadshotURL  sql.NullString `db:"headshot_url"`
	BirthCity    sql.NullString `db:"birth_city"`
	BirthCountry sql.NullString `db:"birth_country"`
}

func playerToInsertModel(row player.Player) playerInsertModel {
	return playerInsertModel{
		PlayerID:     row.ID,
		TeamID:       row.TeamID,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		Sweater:      nullableInt(row.Sweater),
		Position:     nullableString(row.Position),
		HeadshotURL:  nullableString(row.HeadshotURL),
		BirthCity:    nullableString(row.BirthCity),
		BirthCountry: nullableString(row.BirthCountry),
	}
}
