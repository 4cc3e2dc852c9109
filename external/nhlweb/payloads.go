package nhlweb

import (
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/BrandonMiller18/nhlcompanion-be/internal/usecase"
)

type localizedString struct {
	Default string `json:"default"`
}

func (s *localizedString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	if strings.HasPrefix(trimmed, "{") {
		var obj map[string]string
		if err := sonic.Unmarshal(data, &obj); err != nil {
			return err
		}
		if v, ok := obj["default"]; ok {
			s.Default = v
			return nil
		}
		for _, v := range obj {
			s.Default = v
			return nil
		}
		return nil
	}
	var plain string
	if err := sonic.Unmarshal(data, &plain); err != nil {
		return err
	}
	s.Default = plain
	return nil
}

// clockEnvelope accepts the clock in any shape the feed has emitted:
// an object with timeRemaining/displayValue, a bare string, or some
// other object kept verbatim in Raw.
type clockEnvelope struct {
	TimeRemaining *string
	DisplayValue  *string
	Raw           string
}

func (c *clockEnvelope) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	if strings.HasPrefix(trimmed, "{") {
		var obj struct {
			TimeRemaining *string `json:"timeRemaining"`
			DisplayValue  *string `json:"displayValue"`
		}
		if err := sonic.Unmarshal(data, &obj); err != nil {
			return err
		}
		if obj.TimeRemaining != nil || obj.DisplayValue != nil {
			c.TimeRemaining = obj.TimeRemaining
			c.DisplayValue = obj.DisplayValue
			return nil
		}
		c.Raw = trimmed
		return nil
	}
	var plain string
	if err := sonic.Unmarshal(data, &plain); err != nil {
		c.Raw = trimmed
		return nil
	}
	c.TimeRemaining = &plain
	return nil
}

type periodDescriptorEnvelope struct {
	Number        *int    `json:"number"`
	TimeRemaining *string `json:"timeRemaining"`
	TimeElapsed   *string `json:"timeElapsed"`
}

func (p periodDescriptorEnvelope) toExternal() usecase.ExternalPeriodDescriptor {
	return usecase.ExternalPeriodDescriptor{
		Number:        p.Number,
		TimeRemaining: p.TimeRemaining,
		TimeElapsed:   p.TimeElapsed,
	}
}

type teamStateEnvelope struct {
	ID    int64 `json:"id"`
	Score *int  `json:"score"`
	SOG   *int  `json:"sog"`
}

func (t teamStateEnvelope) toExternal() usecase.ExternalTeamState {
	return usecase.ExternalTeamState{ID: t.ID, Score: t.Score, SOG: t.SOG}
}

type scheduleEnvelope struct {
	GameWeek []struct {
		Date  string                 `json:"date"`
		Games []scheduleGameEnvelope `json:"games"`
	} `json:"gameWeek"`
}

type scheduleGameEnvelope struct {
	ID           int64             `json:"id"`
	Season       int               `json:"season"`
	GameType     int               `json:"gameType"`
	StartTimeUTC string            `json:"startTimeUTC"`
	Venue        localizedString   `json:"venue"`
	GameState    string            `json:"gameState"`
	HomeTeam     teamStateEnvelope `json:"homeTeam"`
	AwayTeam     teamStateEnvelope `json:"awayTeam"`
}

func (e scheduleEnvelope) toExternal() []usecase.ExternalScheduleGame {
	out := make([]usecase.ExternalScheduleGame, 0, 16)
	for _, day := range e.GameWeek {
		for _, g := range day.Games {
			if g.ID <= 0 {
				continue
			}
			row := usecase.ExternalScheduleGame{
				ID:         g.ID,
				Season:     g.Season,
				GameType:   g.GameType,
				Venue:      g.Venue.Default,
				HomeTeamID: g.HomeTeam.ID,
				AwayTeamID: g.AwayTeam.ID,
				State:      g.GameState,
				HomeScore:  g.HomeTeam.Score,
				AwayScore:  g.AwayTeam.Score,
			}
			if g.StartTimeUTC != "" {
				if ts, err := time.Parse(time.RFC3339, g.StartTimeUTC); err == nil {
					utc := ts.UTC()
					row.StartTimeUTC = &utc
				}
			}
			out = append(out, row)
		}
	}
	return out
}

type landingEnvelope struct {
	ID               int64                    `json:"id"`
	GameState        string                   `json:"gameState"`
	PeriodDescriptor periodDescriptorEnvelope `json:"periodDescriptor"`
	Clock            clockEnvelope            `json:"clock"`
	HomeTeam         teamStateEnvelope        `json:"homeTeam"`
	AwayTeam         teamStateEnvelope        `json:"awayTeam"`
}

func (e landingEnvelope) toExternal(gameID int64) *usecase.ExternalGameLanding {
	return &usecase.ExternalGameLanding{
		GameID:           gameID,
		State:            e.GameState,
		PeriodDescriptor: e.PeriodDescriptor.toExternal(),
		Clock: usecase.ExternalClock{
			TimeRemaining: e.Clock.TimeRemaining,
			DisplayValue:  e.Clock.DisplayValue,
			Raw:           e.Clock.Raw,
		},
		HomeTeam: e.HomeTeam.toExternal(),
		AwayTeam: e.AwayTeam.toExternal(),
	}
}

type boxscoreEnvelope struct {
	ID        int64             `json:"id"`
	GameState string            `json:"gameState"`
	HomeTeam  teamStateEnvelope `json:"homeTeam"`
	AwayTeam  teamStateEnvelope `json:"awayTeam"`
}

func (e boxscoreEnvelope) toExternal(gameID int64) *usecase.ExternalGameBoxscore {
	return &usecase.ExternalGameBoxscore{
		GameID:   gameID,
		State:    e.GameState,
		HomeTeam: e.HomeTeam.toExternal(),
		AwayTeam: e.AwayTeam.toExternal(),
	}
}

type playByPlayEnvelope struct {
	ID        int64          `json:"id"`
	GameState string         `json:"gameState"`
	Plays     []playEnvelope `json:"plays"`
}

type playEnvelope struct {
	EventID          int                      `json:"eventId"`
	SortOrder        int                      `json:"sortOrder"`
	TypeDescKey      string                   `json:"typeDescKey"`
	PeriodDescriptor periodDescriptorEnvelope `json:"periodDescriptor"`
	TimeInPeriod     *string                  `json:"timeInPeriod"`
	TimeRemaining    *string                  `json:"timeRemaining"`
	Team             *struct {
		ID int64 `json:"id"`
	} `json:"team"`
	Details playDetailsEnvelope `json:"details"`
}

type playDetailsEnvelope struct {
	EventOwnerTeamID *int64 `json:"eventOwnerTeamId"`

	PlayerID            *int64 `json:"playerId"`
	ShootingPlayerID    *int64 `json:"shootingPlayerId"`
	ScoringPlayerID     *int64 `json:"scoringPlayerId"`
	HittingPlayerID     *int64 `json:"hittingPlayerId"`
	WinningPlayerID     *int64 `json:"winningPlayerId"`
	BlockingPlayerID    *int64 `json:"blockingPlayerId"`
	CommittedByPlayerID *int64 `json:"committedByPlayerId"`

	LosingPlayerID  *int64 `json:"losingPlayerId"`
	HitteePlayerID  *int64 `json:"hitteePlayerId"`
	GoalieInNetID   *int64 `json:"goalieInNetId"`
	DrawnByPlayerID *int64 `json:"drawnByPlayerId"`

	AssistingPlayerIDs []int64 `json:"assistingPlayerIds"`
	Assist1PlayerID    *int64  `json:"assist1PlayerId"`
	Assist2PlayerID    *int64  `json:"assist2PlayerId"`

	XCoord   *float64 `json:"xCoord"`
	YCoord   *float64 `json:"yCoord"`
	ZoneCode *string  `json:"zoneCode"`
}

func (e playByPlayEnvelope) toExternal(gameID int64) *usecase.ExternalPlayByPlay {
	out := &usecase.ExternalPlayByPlay{
		GameID: gameID,
		State:  e.GameState,
		Plays:  make([]usecase.ExternalPlayEvent, 0, len(e.Plays)),
	}
	for _, p := range e.Plays {
		ev := usecase.ExternalPlayEvent{
			EventID:          p.EventID,
			SortOrder:        p.SortOrder,
			TypeDescKey:      p.TypeDescKey,
			PeriodDescriptor: p.PeriodDescriptor.toExternal(),
			TimeInPeriod:     p.TimeInPeriod,
			TimeRemaining:    p.TimeRemaining,
			Details: usecase.ExternalPlayDetails{
				EventOwnerTeamID:    p.Details.EventOwnerTeamID,
				PlayerID:            p.Details.PlayerID,
				ShootingPlayerID:    p.Details.ShootingPlayerID,
				ScoringPlayerID:     p.Details.ScoringPlayerID,
				HittingPlayerID:     p.Details.HittingPlayerID,
				WinningPlayerID:     p.Details.WinningPlayerID,
				BlockingPlayerID:    p.Details.BlockingPlayerID,
				CommittedByPlayerID: p.Details.CommittedByPlayerID,
				LosingPlayerID:      p.Details.LosingPlayerID,
				HitteePlayerID:      p.Details.HitteePlayerID,
				GoalieInNetID:       p.Details.GoalieInNetID,
				DrawnByPlayerID:     p.Details.DrawnByPlayerID,
				AssistingPlayerIDs:  p.Details.AssistingPlayerIDs,
				Assist1PlayerID:     p.Details.Assist1PlayerID,
				Assist2PlayerID:     p.Details.Assist2PlayerID,
				XCoord:              p.Details.XCoord,
				YCoord:              p.Details.YCoord,
				ZoneCode:            p.Details.ZoneCode,
			},
		}
		if p.Team != nil {
			id := p.Team.ID
			ev.TeamID = &id
		}
		out.Plays = append(out.Plays, ev)
	}
	return out
}

type rosterEnvelope struct {
	Forwards   []rosterPlayerEnvelope `json:"forwards"`
	Defensemen []rosterPlayerEnvelope `json:"defensemen"`
	Goalies    []rosterPlayerEnvelope `json:"goalies"`
}

type rosterPlayerEnvelope struct {
	ID            int64           `json:"id"`
	FirstName     localizedString `json:"firstName"`
	LastName      localizedString `json:"lastName"`
	SweaterNumber *int            `json:"sweaterNumber"`
	PositionCode  string          `json:"positionCode"`
	Headshot      string          `json:"headshot"`
	BirthCity     localizedString `json:"birthCity"`
	BirthCountry  string          `json:"birthCountry"`
}

func (e rosterEnvelope) toExternal() []usecase.ExternalRosterPlayer {
	groups := [][]rosterPlayerEnvelope{e.Forwards, e.Defensemen, e.Goalies}
	out := make([]usecase.ExternalRosterPlayer, 0, 32)
	for _, group := range groups {
		for _, p := range group {
			if p.ID <= 0 {
				continue
			}
			out = append(out, usecase.ExternalRosterPlayer{
				ID:           p.ID,
				FirstName:    p.FirstName.Default,
				LastName:     p.LastName.Default,
				Sweater:      p.SweaterNumber,
				Position:     p.PositionCode,
				HeadshotURL:  p.Headshot,
				BirthCity:    p.BirthCity.Default,
				BirthCountry: p.BirthCountry,
			})
		}
	}
	return out
}
