package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/BrandonMiller18/nhlcompanion-be/internal/domain/play"
	qb "github.com/BrandonMiller18/nhlcompanion-be/internal/platform/querybuilder"
)

// Identity columns (play_id, game_id) are never touched on conflict;
// everything else takes the latest observation.
const playUpsertSuffix = `ON CONFLICT (play_id) DO UPDATE SET
	play_index = EXCLUDED.play_index,
	team_id = EXCLUDED.team_id,
	primary_player_id = EXCLUDED.primary_player_id,
	opposing_player_id = EXCLUDED.opposing_player_id,
	secondary_assist_id = EXCLUDED.secondary_assist_id,
	tertiary_assist_id = EXCLUDED.tertiary_assist_id,
	period = EXCLUDED.period,
	time_elapsed = EXCLUDED.time_elapsed,
	time_remaining = EXCLUDED.time_remaining,
	event_type = EXCLUDED.event_type,
	zone_code = EXCLUDED.zone_code,
	x_coord = EXCLUDED.x_coord,
	y_coord = EXCLUDED.y_coord`

type PlayRepository struct {
	db dbtx
}

func NewPlayRepository(db *sqlx.DB) *PlayRepository {
	return &PlayRepository{db: db}
}

func newPlayRepository(db dbtx) *PlayRepository {
	return &PlayRepository{db: db}
}

// UpsertPlays writes one game's plays as a single set-oriented statement
// and returns the number of rows sent.
func (r *PlayRepository) UpsertPlays(ctx context.Context, rows []play.Play) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	models := make([]any, 0, len(rows))
	for _, row := range rows {
		models = append(models, playToInsertModel(row))
	}

	query, args, err := qb.InsertModels("plays", models, playUpsertSuffix)
	if err != nil {
		return 0, fmt.Errorf("build upsert plays query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("upsert %d plays: %w", len(rows), err)
	}
	return len(rows), nil
}
