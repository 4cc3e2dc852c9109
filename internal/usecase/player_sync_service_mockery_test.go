package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/BrandonMiller18/nhlcompanion-be/internal/domain/player"
	"github.com/BrandonMiller18/nhlcompanion-be/internal/domain/team"
	playermock "github.com/BrandonMiller18/nhlcompanion-be/internal/mocks/domain/player"
	"github.com/BrandonMiller18/nhlcompanion-be/internal/platform/logging"
)

func TestPlayerSyncService_SyncPlayers_UsingMockery(t *testing.T) {
	t.Parallel()

	teams := &fakeTeamRepo{list: []team.Team{
		{ID: 10, Abbrev: "TOR", Active: true},
	}}
	roster := &fakeRosterProvider{rosters: map[string][]ExternalRosterPlayer{
		"TOR": {
			{ID: 1, FirstName: "Auston", LastName: "Matthews"},
			{ID: 2, FirstName: "William", LastName: "Nylander"},
		},
	}}
	playerRepo := playermock.NewRepository(t)

	playerRepo.
		On("UpsertPlayers", mock.Anything, mock.MatchedBy(func(rows []player.Player) bool {
			return len(rows) == 2 && rows[0].TeamID == 10 && rows[1].TeamID == 10
		})).
		Return(nil).
		Once()

	svc := NewPlayerSyncService(roster, nil, teams, playerRepo, 1, logging.NewNop())

	result, err := svc.SyncPlayers(context.Background(), PlayerSyncInput{Season: "20252026"})
	if err != nil {
		t.Fatalf("sync players: %v", err)
	}
	if result.TeamCount != 1 || result.PlayerCount != 2 {
		t.Fatalf("result = %+v, want 1 team and 2 players", result)
	}
}
