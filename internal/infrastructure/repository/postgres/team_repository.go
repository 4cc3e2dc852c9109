package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/BrandonMiller18/nhlcompanion-be/internal/domain/team"
	qb "github.com/BrandonMiller18/nhlcompanion-be/internal/platform/querybuilder"
)

const teamUpsertSuffix = `ON CONFLICT (team_id) DO UPDATE SET
	name = EXCLUDED.name,
	city = EXCLUDED.city,
	abbrev = EXCLUDED.abbrev,
	active = EXCLUDED.active,
	logo_url = EXCLUDED.logo_url`

type TeamRepository struct {
	db dbtx
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) UpsertTeams(ctx context.Context, rows []team.Team) error {
	if len(rows) == 0 {
		return nil
	}

	models := make([]any, 0, len(rows))
	for _, row := range rows {
		models = append(models, teamToInsertModel(row))
	}

	query, args, err := qb.InsertModels("teams", models, teamUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert teams query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert %d teams: %w", len(rows), err)
	}
	return nil
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("team_id", "name", "city", "abbrev", "active", "logo_url").
		From("teams").
		OrderBy("abbrev ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
