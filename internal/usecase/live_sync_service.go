package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/BrandonMiller18/nhlcompanion-be/internal/domain/game"
	"github.com/BrandonMiller18/nhlcompanion-be/internal/domain/play"
	"github.com/BrandonMiller18/nhlcompanion-be/internal/platform/logging"
)

// LiveGameProvider is the upstream gamecenter feed consumed by the live
// sync loop. Refresh discards pooled connections so very long watch runs
// do not pin stale ones.
type LiveGameProvider interface {
	FetchScheduleForDate(ctx context.Context, date string) ([]ExternalScheduleGame, error)
	FetchGameLanding(ctx context.Context, gameID int64) (*ExternalGameLanding, error)
	FetchGameBoxscore(ctx context.Context, gameID int64) (*ExternalGameBoxscore, error)
	FetchGamePlayByPlay(ctx context.Context, gameID int64) (*ExternalPlayByPlay, error)
	Refresh()
}

// GameTxRunner scopes all writes for one game's cycle to a single
// transaction, so a mid-game failure rolls back cleanly without touching
// any other game.
type GameTxRunner interface {
	InGameTx(ctx context.Context, fn func(games game.Repository, plays play.Repository) error) error
}

type LiveSyncConfig struct {
	PollInterval  time.Duration
	IdleInterval  time.Duration
	RefreshCycles int
}

type LiveUpdateResult struct {
	GameID    int64  `json:"game_id"`
	State     string `json:"state"`
	PlayCount int    `json:"play_count"`
}

type LiveCycleResult struct {
	LiveGameIDs []int64 `json:"live_game_ids"`
	Processed   int     `json:"processed"`
	Failed      int     `json:"failed"`
}

type LiveSyncService struct {
	provider LiveGameProvider
	store    GameTxRunner
	cfg      LiveSyncConfig
	logger   *logging.Logger
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
}

func NewLiveSyncService(provider LiveGameProvider, store GameTxRunner, cfg LiveSyncConfig, logger *logging.Logger) *LiveSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.IdleInterval <= 0 {
		cfg.IdleInterval = 60 * time.Second
	}
	if cfg.RefreshCycles <= 0 {
		cfg.RefreshCycles = 50
	}

	return &LiveSyncService{
		provider: provider,
		store:    store,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// SetPollInterval overrides the live polling cadence. Call before
// starting a watch loop.
func (s *LiveSyncService) SetPollInterval(d time.Duration) {
	if d > 0 {
		s.cfg.PollInterval = d
	}
}

// UpdateLiveOnce performs a single fetch-reconcile-persist pass for one
// game and reports the reconciled state and how many plays were written.
func (s *LiveSyncService) UpdateLiveOnce(ctx context.Context, gameID int64) (LiveUpdateResult, error) {
	ctx, span := startUsecaseSpan(ctx, "LiveSyncService.UpdateLiveOnce")
	defer span.End()

	if gameID <= 0 {
		return LiveUpdateResult{}, fmt.Errorf("%w: game id must be positive", ErrInvalidInput)
	}

	landing, err := s.provider.FetchGameLanding(ctx, gameID)
	if err != nil {
		return LiveUpdateResult{}, fmt.Errorf("fetch landing for game %d: %w", gameID, err)
	}
	boxscore, err := s.provider.FetchGameBoxscore(ctx, gameID)
	if err != nil {
		return LiveUpdateResult{}, fmt.Errorf("fetch boxscore for game %d: %w", gameID, err)
	}
	pbp, err := s.provider.FetchGamePlayByPlay(ctx, gameID)
	if err != nil {
		return LiveUpdateResult{}, fmt.Errorf("fetch play-by-play for game %d: %w", gameID, err)
	}

	snap := ReconcileSnapshot(landing, boxscore)

	rows := make([]play.Play, 0, len(pbp.Plays))
	for _, ev := range pbp.Plays {
		rows = append(rows, NormalizePlay(gameID, ev))
	}

	var written int
	err = s.store.InGameTx(ctx, func(games game.Repository, plays play.Repository) error {
		if err := games.UpdateLiveFields(ctx, gameID, snap); err != nil {
			return fmt.Errorf("update game fields: %w", err)
		}
		n, err := plays.UpsertPlays(ctx, rows)
		if err != nil {
			return fmt.Errorf("upsert %d plays: %w", len(rows), err)
		}
		written = n
		return nil
	})
	if err != nil {
		return LiveUpdateResult{}, fmt.Errorf("persist game %d: %w", gameID, err)
	}

	s.logger.DebugContext(ctx, "live update applied",
		"game_id", gameID,
		"state", snap.State,
		"play_count", written,
	)

	return LiveUpdateResult{GameID: gameID, State: snap.State, PlayCount: written}, nil
}

// WatchGame polls a single game until its reconciled state reaches a
// terminal value, then returns the final result. Per-cycle failures are
// logged and retried on the next cycle.
func (s *LiveSyncService) WatchGame(ctx context.Context, gameID int64) (LiveUpdateResult, error) {
	ctx, span := startUsecaseSpan(ctx, "LiveSyncService.WatchGame")
	defer span.End()

	if gameID <= 0 {
		return LiveUpdateResult{}, fmt.Errorf("%w: game id must be positive", ErrInvalidInput)
	}

	cycle := 0
	for {
		cycle++
		result, err := s.UpdateLiveOnce(ctx, gameID)
		if err != nil {
			s.logger.WarnContext(ctx, "watch cycle failed, retrying next cycle",
				"game_id", gameID,
				"cycle", cycle,
				"error", err,
			)
		} else if game.IsTerminalState(result.State) {
			s.logger.InfoContext(ctx, "game reached terminal state",
				"game_id", gameID,
				"state", result.State,
				"cycles", cycle,
			)
			return result, nil
		}

		if cycle%s.cfg.RefreshCycles == 0 {
			s.provider.Refresh()
		}
		if err := s.sleep(ctx, s.cfg.PollInterval); err != nil {
			return LiveUpdateResult{}, err
		}
	}
}

// WatchLive polls every currently live game until the context is
// cancelled. One game's failure never stops the cycle; a game observed
// in a terminal state is not written again for the rest of the run.
func (s *LiveSyncService) WatchLive(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "LiveSyncService.WatchLive")
	defer span.End()

	finished := make(map[int64]bool)
	cycle := 0
	for {
		cycle++
		result := s.runCycle(ctx, finished)

		interval := s.cfg.PollInterval
		if len(result.LiveGameIDs) == 0 {
			interval = s.cfg.IdleInterval
		}

		if cycle%s.cfg.RefreshCycles == 0 {
			s.provider.Refresh()
		}
		if err := s.sleep(ctx, interval); err != nil {
			return err
		}
	}
}

// RunCycle performs one discovery-and-update pass over the live set.
func (s *LiveSyncService) RunCycle(ctx context.Context) (LiveCycleResult, error) {
	ctx, span := startUsecaseSpan(ctx, "LiveSyncService.RunCycle")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return LiveCycleResult{}, err
	}
	return s.runCycle(ctx, nil), nil
}

func (s *LiveSyncService) runCycle(ctx context.Context, finished map[int64]bool) LiveCycleResult {
	liveIDs, err := s.discoverLiveGames(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "live discovery failed, skipping cycle", "error", err)
		return LiveCycleResult{}
	}

	result := LiveCycleResult{LiveGameIDs: liveIDs}
	for _, gameID := range liveIDs {
		if ctx.Err() != nil {
			break
		}
		if finished[gameID] {
			continue
		}
		updated, err := s.UpdateLiveOnce(ctx, gameID)
		if err != nil {
			result.Failed++
			s.logger.WarnContext(ctx, "game update failed, continuing with next game",
				"game_id", gameID,
				"error", err,
			)
			continue
		}
		result.Processed++
		if finished != nil && game.IsTerminalState(updated.State) {
			finished[gameID] = true
		}
	}
	return result
}

// discoverLiveGames upserts today's schedule rows so play rows always
// have a satisfiable game reference, then returns the ids currently in
// progress. The live set is recomputed every cycle.
func (s *LiveSyncService) discoverLiveGames(ctx context.Context) ([]int64, error) {
	date := s.now().UTC().Format("2006-01-02")
	scheduled, err := s.provider.FetchScheduleForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule for %s: %w", date, err)
	}
	if len(scheduled) == 0 {
		return nil, nil
	}

	rows := make([]game.Game, 0, len(scheduled))
	liveIDs := make([]int64, 0, len(scheduled))
	for _, ext := range scheduled {
		rows = append(rows, scheduleGameToRow(ext))
		if game.IsLiveState(ext.State) {
			liveIDs = append(liveIDs, ext.ID)
		}
	}

	err = s.store.InGameTx(ctx, func(games game.Repository, _ play.Repository) error {
		return games.UpsertGames(ctx, rows)
	})
	if err != nil {
		return nil, fmt.Errorf("upsert %d schedule games: %w", len(rows), err)
	}

	return liveIDs, nil
}

func scheduleGameToRow(ext ExternalScheduleGame) game.Game {
	row := game.Game{
		ID:           ext.ID,
		Season:       ext.Season,
		GameType:     ext.GameType,
		StartTimeUTC: ext.StartTimeUTC,
		Venue:        ext.Venue,
		HomeTeamID:   ext.HomeTeamID,
		AwayTeamID:   ext.AwayTeamID,
		State:        ext.State,
	}
	if ext.HomeScore != nil {
		row.HomeScore = *ext.HomeScore
	}
	if ext.AwayScore != nil {
		row.AwayScore = *ext.AwayScore
	}
	return row
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
