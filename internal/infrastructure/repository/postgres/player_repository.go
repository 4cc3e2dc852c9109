package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/BrandonMiller18/nhlcompanion-be/internal/domain/player"
	qb "github.com/BrandonMiller18/nhlcompanion-be/internal/platform/querybuilder"
)

const playerUpsertSuffix = `ON CONFLICT (player_id) DO UPDATE SET
	team_id = EXCLUDED.team_id,
	first_name = EXCLUDED.first_name,
	last_name = EXCLUDED.last_name,
	sweater = EXCLUDED.sweater,
	position = EXCLUDED.position,
	headshot_url = EXCLUDED.headshot_url,
	birth_city = EXCLUDED.birth_city,
	birth_country = EXCLUDED.birth_country`

type PlayerRepository struct {
	db dbtx
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) UpsertPlayers(ctx context.Context, rows []player.Player) error {
	if len(rows) == 0 {
		return nil
	}

	models := make([]any, 0, len(rows))
	for _, row := range rows {
		models = append(models, playerToInsertModel(row))
	}

	query, args, err := qb.InsertModels("players", models, playerUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert players query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert %d players: %w", len(rows), err)
	}
	return nil
}
