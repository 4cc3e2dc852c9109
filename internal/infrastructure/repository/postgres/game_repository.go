package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/BrandonMiller18/nhlcompanion-be/internal/domain/game"
	qb "github.com/BrandonMiller18/nhlcompanion-be/internal/platform/querybuilder"
)

// gameUpsertSuffix only overwrites the columns the schedule feed
// actually carries; the live-only columns (period, clock, sog) are left
// for UpdateLiveFields so a schedule refresh never wipes live state.
const gameUpsertSuffix = `ON CONFLICT (game_id) DO UPDATE SET
	season = EXCLUDED.season,
	game_type = EXCLUDED.game_type,
	start_time_utc = EXCLUDED.start_time_utc,
	venue = EXCLUDED.venue,
	home_team_id = EXCLUDED.home_team_id,
	away_team_id = EXCLUDED.away_team_id,
	game_state = EXCLUDED.game_state,
	home_score = EXCLUDED.home_score,
	away_score = EXCLUDED.away_score`

type GameRepository struct {
	db dbtx
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func newGameRepository(db dbtx) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) UpsertGames(ctx context.Context, rows []game.Game) error {
	if len(rows) == 0 {
		return nil
	}

	models := make([]any, 0, len(rows))
	for _, row := range rows {
		models = append(models, gameToInsertModel(row))
	}

	query, args, err := qb.InsertModels("games", models, gameUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert games query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert %d games: %w", len(rows), err)
	}
	return nil
}

// UpdateLiveFields writes one reconciled snapshot. A missing period is
// stored as 0 here, at the persistence boundary; the snapshot itself
// keeps it absent.
func (r *GameRepository) UpdateLiveFields(ctx context.Context, gameID int64, snap game.Snapshot) error {
	period := 0
	if snap.Period != nil {
		period = *snap.Period
	}

	query, args, err := qb.Update("games").
		Set("game_state", nullableString(snap.State)).
		Set("period", period).
		Set("game_clock", nullableStringPtr(snap.Clock)).
		Set("home_score", snap.HomeScore).
		Set("away_score", snap.AwayScore).
		Set("home_sog", snap.HomeSOG).
		Set("away_sog", snap.AwaySOG).
		Where(qb.Eq("game_id", gameID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update game fields query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update live fields for game %d: %w", gameID, err)
	}
	return nil
}
