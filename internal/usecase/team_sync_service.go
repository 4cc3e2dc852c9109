package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/BrandonMiller18/nhlcompanion-be/internal/domain/team"
	"github.com/BrandonMiller18/nhlcompanion-be/internal/platform/logging"
)

// TeamProvider lists franchises from the records feed, flattened to one
// entry per team with the preferred dark logo already selected.
type TeamProvider interface {
	FetchFranchises(ctx context.Context) ([]ExternalFranchise, error)
}

type TeamSyncService struct {
	provider TeamProvider
	teams    team.Repository
	logger   *logging.Logger
}

func NewTeamSyncService(provider TeamProvider, teams team.Repository, logger *logging.Logger) *TeamSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamSyncService{provider: provider, teams: teams, logger: logger}
}

// SyncTeams replaces the teams table contents with the current records
// feed via upsert and returns how many rows were written.
func (s *TeamSyncService) SyncTeams(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamSyncService.SyncTeams")
	defer span.End()

	franchises, err := s.provider.FetchFranchises(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch franchises: %w", err)
	}

	rows := make([]team.Team, 0, len(franchises))
	for _, fr := range franchises {
		if fr.TeamID <= 0 {
			continue
		}
		rows = append(rows, team.Team{
			ID:      fr.TeamID,
			Name:    strings.TrimSpace(fr.Name),
			City:    strings.TrimSpace(fr.City),
			Abbrev:  strings.ToUpper(strings.TrimSpace(fr.Abbrev)),
			Active:  fr.IsActive,
			LogoURL: fr.LogoURL,
		})
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("%w: records feed returned no teams", ErrDependencyUnavailable)
	}

	if err := s.teams.UpsertTeams(ctx, rows); err != nil {
		return 0, fmt.Errorf("upsert %d teams: %w", len(rows), err)
	}

	s.logger.InfoContext(ctx, "teams synced", "count", len(rows))
	return len(rows), nil
}
