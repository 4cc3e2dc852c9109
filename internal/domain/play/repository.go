package play

import "context"

// Repository exposes batched insert-or-update access to play rows.
// UpsertPlays is one set-oriented statement per call, never per-row.
type Repository interface {
	UpsertPlays(ctx context.Context, rows []Play) (int, error)
}
