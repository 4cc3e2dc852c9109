package player

import "context"

type Repository interface {
	UpsertPlayers(ctx context.Context, rows []Player) error
}
