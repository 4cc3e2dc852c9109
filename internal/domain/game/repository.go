package game

import "context"

// Repository exposes insert-or-update access to game rows. No operation
// deletes a row, and the game id column is never touched on conflict.
type Repository interface {
	UpsertGames(ctx context.Context, rows []Game) error
	UpdateLiveFields(ctx context.Context, gameID int64, snap Snapshot) error
}
