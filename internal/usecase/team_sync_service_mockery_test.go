package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/BrandonMiller18/nhlcompanion-be/internal/domain/team"
	teammock "github.com/BrandonMiller18/nhlcompanion-be/internal/mocks/domain/team"
	"github.com/BrandonMiller18/nhlcompanion-be/internal/platform/logging"
)

func TestTeamSyncService_SyncTeams_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	teamRepo := teammock.NewRepository(t)
	provider := &fakeTeamProvider{franchises: []ExternalFranchise{
		{TeamID: 10, Name: "Maple Leafs", City: "Toronto", Abbrev: "tor", LogoURL: "tor.svg", IsActive: true},
		{TeamID: 22, Name: "Oilers", City: "Edmonton", Abbrev: "EDM", IsActive: true},
	}}

	service := NewTeamSyncService(provider, teamRepo, logging.NewNop())

	teamRepo.
		On("UpsertTeams", mock.Anything, mock.MatchedBy(func(rows []team.Team) bool {
			return len(rows) == 2 && rows[0].Abbrev == "TOR" && rows[1].ID == 22
		})).
		Return(nil).
		Once()

	count, err := service.SyncTeams(ctx)
	if err != nil {
		t.Fatalf("sync teams: %v", err)
	}
	if count != 2 {
		t.Fatalf("unexpected count: got=%d want=2", count)
	}
}

func TestTeamSyncService_SyncTeams_UpsertFailureUsingMockery(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	provider := &fakeTeamProvider{franchises: []ExternalFranchise{
		{TeamID: 10, Name: "Maple Leafs", City: "Toronto", Abbrev: "TOR", IsActive: true},
	}}

	service := NewTeamSyncService(provider, teamRepo, logging.NewNop())

	upsertErr := errors.New("connection reset")
	teamRepo.
		On("UpsertTeams", mock.Anything, mock.Anything).
		Return(upsertErr).
		Once()

	_, err := service.SyncTeams(context.Background())
	if !errors.Is(err, upsertErr) {
		t.Fatalf("expected upsert error, got %v", err)
	}
}
