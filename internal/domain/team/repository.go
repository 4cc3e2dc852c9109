package team

import "context"

type Repository interface {
	UpsertTeams(ctx context.Context, rows []Team) error
	List(ctx context.Context) ([]Team, error)
}
