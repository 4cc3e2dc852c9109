package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/BrandonMiller18/nhlcompanion-be/internal/domain/player"
	"github.com/BrandonMiller18/nhlcompanion-be/internal/domain/team"
	"github.com/BrandonMiller18/nhlcompanion-be/internal/platform/logging"
)

type fakeRosterProvider struct {
	mu       sync.Mutex
	rosters  map[string][]ExternalRosterPlayer
	failFor  map[string]bool
	requests []string
}

func (p *fakeRosterProvider) FetchRoster(_ context.Context, teamAbbrev, _ string) ([]ExternalRosterPlayer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, teamAbbrev)
	if p.failFor[teamAbbrev] {
		return nil, errors.New("roster unavailable")
	}
	return p.rosters[teamAbbrev], nil
}

type fakePlayerRepo struct {
	mu   sync.Mutex
	rows []player.Player
	err  error
}

func (r *fakePlayerRepo) UpsertPlayers(_ context.Context, rows []player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.rows = append(r.rows, rows...)
	return nil
}

func TestSyncPlayersUpsertsActiveTeamRosters(t *testing.T) {
	t.Parallel()

	teams := &fakeTeamRepo{list: []team.Team{
		{ID: 10, Abbrev: "TOR", Active: true},
		{ID: 22, Abbrev: "EDM", Active: true},
		{ID: 99, Abbrev: "ATL", Active: false},
	}}
	roster := &fakeRosterProvider{rosters: map[string][]ExternalRosterPlayer{
		"TOR": {{ID: 1, FirstName: "Auston", LastName: "Matthews"}},
		"EDM": {{ID: 2, FirstName: "Connor", LastName: "McDavid"}, {ID: 3, FirstName: "Leon", LastName: "Draisaitl"}},
	}}
	players := &fakePlayerRepo{}
	svc := NewPlayerSyncService(roster, nil, teams, players, 2, logging.NewNop())

	result, err := svc.SyncPlayers(context.Background(), PlayerSyncInput{Season: "20242025"})
	if err != nil {
		t.Fatalf("SyncPlayers() error = %v", err)
	}
	if result.TeamCount != 2 || result.PlayerCount != 3 || result.FailedTeams != 0 {
		t.Fatalf("result = %+v, want 2 teams and 3 players", result)
	}
	if len(players.rows) != 3 {
		t.Fatalf("upserted players = %d, want 3", len(players.rows))
	}
	for _, row := range players.rows {
		if row.TeamID == 0 {
			t.Fatalf("player %d missing team id", row.ID)
		}
	}
}

func TestSyncPlayersTeamFilter(t *testing.T) {
	t.Parallel()

	teams := &fakeTeamRepo{list: []team.Team{
		{ID: 10, Abbrev: "TOR", Active: true},
		{ID: 22, Abbrev: "EDM", Active: true},
	}}
	roster := &fakeRosterProvider{rosters: map[string][]ExternalRosterPlayer{
		"EDM": {{ID: 2, FirstName: "Connor", LastName: "McDavid"}},
	}}
	svc := NewPlayerSyncService(roster, nil, teams, &fakePlayerRepo{}, 2, logging.NewNop())

	result, err := svc.SyncPlayers(context.Background(), PlayerSyncInput{Season: "20242025", Teams: []string{"edm"}})
	if err != nil {
		t.Fatalf("SyncPlayers() error = %v", err)
	}
	if result.TeamCount != 1 || result.PlayerCount != 1 {
		t.Fatalf("result = %+v, want only EDM synced", result)
	}
	if len(roster.requests) != 1 || roster.requests[0] != "EDM" {
		t.Fatalf("requests = %v, want [EDM]", roster.requests)
	}
}

func TestSyncPlayersIsolatesTeamFailures(t *testing.T) {
	t.Parallel()

	teams := &fakeTeamRepo{list: []team.Team{
		{ID: 10, Abbrev: "TOR", Active: true},
		{ID: 22, Abbrev: "EDM", Active: true},
	}}
	roster := &fakeRosterProvider{
		rosters: map[string][]ExternalRosterPlayer{
			"TOR": {{ID: 1, FirstName: "Auston", LastName: "Matthews"}},
		},
		failFor: map[string]bool{"EDM": true},
	}
	svc := NewPlayerSyncService(roster, nil, teams, &fakePlayerRepo{}, 2, logging.NewNop())

	result, err := svc.SyncPlayers(context.Background(), PlayerSyncInput{Season: "20242025"})
	if err != nil {
		t.Fatalf("SyncPlayers() error = %v", err)
	}
	if result.FailedTeams != 1 || result.PlayerCount != 1 {
		t.Fatalf("result = %+v, want one failed team and one player", result)
	}
}

type fakeSecondaryRoster struct {
	players map[int64][]ExternalRosterPlayer
	err     error
}

func (p fakeSecondaryRoster) FetchPlayersByTeam(_ context.Context, teamID int64) ([]ExternalRosterPlayer, error) {
	return p.players[teamID], p.err
}

func TestSyncPlayersFillsGapsFromRecords(t *testing.T) {
	t.Parallel()

	teams := &fakeTeamRepo{list: []team.Team{{ID: 10, Abbrev: "TOR", Active: true}}}
	roster := &fakeRosterProvider{rosters: map[string][]ExternalRosterPlayer{
		"TOR": {{ID: 1, FirstName: "Auston", LastName: "Matthews"}},
	}}
	records := fakeSecondaryRoster{players: map[int64][]ExternalRosterPlayer{
		10: {
			{ID: 1, FirstName: "Duplicate", LastName: "Entry"},
			{ID: 4, FirstName: "Historical", LastName: "Skater", TeamID: 10},
		},
	}}
	players := &fakePlayerRepo{}
	svc := NewPlayerSyncService(roster, records, teams, players, 2, logging.NewNop())

	result, err := svc.SyncPlayers(context.Background(), PlayerSyncInput{Season: "20242025"})
	if err != nil {
		t.Fatalf("SyncPlayers() error = %v", err)
	}
	if result.PlayerCount != 2 {
		t.Fatalf("PlayerCount = %d, want primary row plus one fill-in", result.PlayerCount)
	}
	for _, row := range players.rows {
		if row.ID == 1 && row.FirstName != "Auston" {
			t.Fatalf("primary roster row was overwritten by records data")
		}
	}
}

func TestSyncPlayersRequiresSeason(t *testing.T) {
	t.Parallel()

	svc := NewPlayerSyncService(&fakeRosterProvider{}, nil, &fakeTeamRepo{}, &fakePlayerRepo{}, 2, logging.NewNop())
	if _, err := svc.SyncPlayers(context.Background(), PlayerSyncInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}
