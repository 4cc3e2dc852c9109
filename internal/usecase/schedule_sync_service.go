package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/BrandonMiller18/nhlcompanion-be/internal/domain/game"
	"github.com/BrandonMiller18/nhlcompanion-be/internal/domain/play"
	"github.com/BrandonMiller18/nhlcompanion-be/internal/platform/logging"
)

const scheduleDateLayout = "2006-01-02"

type ScheduleSyncService struct {
	provider LiveGameProvider
	store    GameTxRunner
	logger   *logging.Logger
}

func NewScheduleSyncService(provider LiveGameProvider, store GameTxRunner, logger *logging.Logger) *ScheduleSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScheduleSyncService{provider: provider, store: store, logger: logger}
}

// SyncDateRange backfills game rows for every date in [start, end],
// inclusive. Dates use the YYYY-MM-DD layout.
func (s *ScheduleSyncService) SyncDateRange(ctx context.Context, start, end string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "ScheduleSyncService.SyncDateRange")
	defer span.End()

	startDate, err := time.Parse(scheduleDateLayout, start)
	if err != nil {
		return 0, fmt.Errorf("%w: start date %q: %v", ErrInvalidInput, start, err)
	}
	endDate, err := time.Parse(scheduleDateLayout, end)
	if err != nil {
		return 0, fmt.Errorf("%w: end date %q: %v", ErrInvalidInput, end, err)
	}
	if endDate.Before(startDate) {
		return 0, fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidInput, end, start)
	}

	total := 0
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		date := d.Format(scheduleDateLayout)
		scheduled, err := s.provider.FetchScheduleForDate(ctx, date)
		if err != nil {
			return total, fmt.Errorf("fetch schedule for %s: %w", date, err)
		}
		if len(scheduled) == 0 {
			continue
		}

		rows := make([]game.Game, 0, len(scheduled))
		for _, ext := range scheduled {
			rows = append(rows, scheduleGameToRow(ext))
		}
		err = s.store.InGameTx(ctx, func(games game.Repository, _ play.Repository) error {
			return games.UpsertGames(ctx, rows)
		})
		if err != nil {
			return total, fmt.Errorf("upsert %d games for %s: %w", len(rows), date, err)
		}

		total += len(rows)
		s.logger.InfoContext(ctx, "schedule day synced", "date", date, "count", len(rows))
	}

	return total, nil
}
