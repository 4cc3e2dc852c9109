package postgres

import (
	"database/sql"

	"github.com/BrandonMiller18/nhlcompanion-be/internal/domain/team"
)

type teamInsertModel struct {
	TeamID  int64          `db:"team_id"`
	Name    sql.NullString `db:"name"`
	City    sql.NullString `db:"city"`
	Abbrev  sql.NullString `db:"abbrev"`
	Active  bool           `db:"active"`
	LogoURL sql.NullString `db:"logo_url"`
}

type teamRow struct {
	TeamID  int64          `db:"team_id"`
	Name    sql.NullString `db:"name"`
	City    sql.NullString `db:"city"`
	Abbrev  sql.NullString `db:"abbrev"`
	Active  bool           `db:"active"`
	LogoURL sql.NullString `db:"logo_url"`
}

func teamToInsertModel(row team.Team) teamInsertModel {
	return teamInsertModel{
		TeamID:  row.ID,
		Name:    nullableString(row.Name),
		City:    nullableString(row.City),
		Abbrev:  nullableString(row.Abbrev),
		Active:  row.Active,
		LogoURL: nullableString(row.LogoURL),
	}
}

func (r teamRow) toDomain() team.Team {
	return team.Team{
		ID:      r.TeamID,
		Name:    r.Name.String,
		City:    r.City.String,
		Abbrev:  r.Abbrev.String,
		Active:  r.Active,
		LogoURL: r.LogoURL.String,
	}
}
