package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/BrandonMiller18/nhlcompanion-be/internal/domain/game"
	"github.com/BrandonMiller18/nhlcompanion-be/internal/domain/play"
)

// Store bundles the repositories over one database handle and owns the
// per-game transaction scope.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Games() *GameRepository     { return NewGameRepository(s.db) }
func (s *Store) Plays() *PlayRepository     { return NewPlayRepository(s.db) }
func (s *Store) Teams() *TeamRepository     { return NewTeamRepository(s.db) }
func (s *Store) Players() *PlayerRepository { return NewPlayerRepository(s.db) }

// InGameTx runs fn with transaction-bound game and play repositories.
// Any error rolls back everything fn wrote, so one game's failed cycle
// never leaves partial rows behind.
func (s *Store) InGameTx(ctx context.Context, fn func(games game.Repository, plays play.Repository) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin game tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(newGameRepository(tx), newPlayRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit game tx: %w", err)
	}
	return nil
}
