package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"

	"github.com/BrandonMiller18/nhlcompanion-be/internal/domain/player"
	"github.com/BrandonMiller18/nhlcompanion-be/internal/domain/team"
	"github.com/BrandonMiller18/nhlcompanion-be/internal/platform/logging"
)

// RosterProvider fetches one team's current roster by tri-code.
type RosterProvider interface {
	FetchRoster(ctx context.Context, teamAbbrev, season string) ([]ExternalRosterPlayer, error)
}

// SecondaryRosterProvider fills in players the primary roster feed does
// not list, keyed by team id.
type SecondaryRosterProvider interface {
	FetchPlayersByTeam(ctx context.Context, teamID int64) ([]ExternalRosterPlayer, error)
}

type PlayerSyncInput struct {
	Season string
	// Teams limits the sync to the given tri-codes; empty means all
	// active teams.
	Teams []string
}

type PlayerSyncResult struct {
	TeamCount   int `json:"team_count"`
	PlayerCount int `json:"player_count"`
	FailedTeams int `json:"failed_teams"`
}

type PlayerSyncService struct {
	roster      RosterProvider
	records     SecondaryRosterProvider
	teams       team.Repository
	players     player.Repository
	workerCount int
	logger      *logging.Logger
}

func NewPlayerSyncService(roster RosterProvider, records SecondaryRosterProvider, teams team.Repository, players player.Repository, workerCount int, logger *logging.Logger) *PlayerSyncService {
	if workerCount <= 0 {
		workerCount = 4
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerSyncService{
		roster:      roster,
		records:     records,
		teams:       teams,
		players:     players,
		workerCount: workerCount,
		logger:      logger,
	}
}

// SyncPlayers fetches every selected team's roster on a bounded worker
// pool and upserts the rows per team. A single team's failure does not
// stop the remaining teams.
func (s *PlayerSyncService) SyncPlayers(ctx context.Context, input PlayerSyncInput) (PlayerSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerSyncService.SyncPlayers")
	defer span.End()

	season := strings.TrimSpace(input.Season)
	if season == "" {
		return PlayerSyncResult{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}

	allow := make(map[string]bool, len(input.Teams))
	for _, tri := range input.Teams {
		tri = strings.ToUpper(strings.TrimSpace(tri))
		if tri != "" {
			allow[tri] = true
		}
	}

	teams, err := s.teams.List(ctx)
	if err != nil {
		return PlayerSyncResult{}, fmt.Errorf("list teams: %w", err)
	}

	targets := make([]team.Team, 0, len(teams))
	for _, t := range teams {
		if !t.Active || t.Abbrev == "" {
			continue
		}
		if len(allow) > 0 && !allow[strings.ToUpper(t.Abbrev)] {
			continue
		}
		targets = append(targets, t)
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i].Abbrev < targets[j].Abbrev })
	if len(targets) == 0 {
		return PlayerSyncResult{}, nil
	}

	pool, err := ants.NewPool(s.workerCount)
	if err != nil {
		return PlayerSyncResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var playerCount atomic.Int64
	var failedTeams atomic.Int32

	var workers sync.WaitGroup
	for _, t := range targets {
		t := t
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			n, err := s.syncTeamRoster(ctx, t, season)
			if err != nil {
				failedTeams.Add(1)
				s.logger.WarnContext(ctx, "roster sync failed, continuing with next team",
					"team", t.Abbrev,
					"team_id", t.ID,
					"error", err,
				)
				return
			}
			playerCount.Add(int64(n))
		}); err != nil {
			workers.Done()
			return PlayerSyncResult{}, fmt.Errorf("submit roster task: %w", err)
		}
	}
	workers.Wait()

	result := PlayerSyncResult{
		TeamCount:   len(targets),
		PlayerCount: int(playerCount.Load()),
		FailedTeams: int(failedTeams.Load()),
	}
	s.logger.InfoContext(ctx, "players synced",
		"teams", result.TeamCount,
		"players", result.PlayerCount,
		"failed_teams", result.FailedTeams,
	)
	return result, nil
}

func (s *PlayerSyncService) syncTeamRoster(ctx context.Context, t team.Team, season string) (int, error) {
	roster, err := s.roster.FetchRoster(ctx, t.Abbrev, season)
	if err != nil {
		return 0, fmt.Errorf("fetch roster: %w", err)
	}
	roster = s.mergeRecordsPlayers(ctx, t, roster)

	rows := make([]player.Player, 0, len(roster))
	for _, p := range roster {
		if p.ID <= 0 {
			continue
		}
		teamID := t.ID
		if p.TeamID > 0 {
			teamID = p.TeamID
		}
		rows = append(rows, player.Player{
			ID:           p.ID,
			TeamID:       teamID,
			FirstName:    p.FirstName,
			LastName:     p.LastName,
			Sweater:      p.Sweater,
			Position:     p.Position,
			HeadshotURL:  p.HeadshotURL,
			BirthCity:    p.BirthCity,
			BirthCountry: p.BirthCountry,
		})
	}
	if len(rows) == 0 {
		return 0, nil
	}

	if err := s.players.UpsertPlayers(ctx, rows); err != nil {
		return 0, fmt.Errorf("upsert %d players: %w", len(rows), err)
	}
	return len(rows), nil
}

// mergeRecordsPlayers appends records-side players the primary roster
// does not list. The primary feed always wins for players it knows; a
// records failure only costs the fill-in rows.
func (s *PlayerSyncService) mergeRecordsPlayers(ctx context.Context, t team.Team, roster []ExternalRosterPlayer) []ExternalRosterPlayer {
	if s.records == nil {
		return roster
	}

	extra, err := s.records.FetchPlayersByTeam(ctx, t.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "records roster fill-in failed",
			"team", t.Abbrev,
			"team_id", t.ID,
			"error", err,
		)
		return roster
	}

	seen := make(map[int64]bool, len(roster))
	for _, p := range roster {
		seen[p.ID] = true
	}
	for _, p := range extra {
		if p.ID <= 0 || seen[p.ID] {
			continue
		}
		roster = append(roster, p)
	}
	return roster
}
