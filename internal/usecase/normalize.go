package usecase

import (
	"github.com/BrandonMiller18/nhlcompanion-be/internal/domain/play"
)

const (
	defaultTimeElapsed   = "00:00"
	defaultTimeRemaining = "00:00"
)

// NormalizePlay maps one raw play-by-play event into a canonical Play.
// It is pure: the same event and game id always yield the same value,
// and a malformed event resolves to defaults rather than an error.
func NormalizePlay(gameID int64, ev ExternalPlayEvent) play.Play {
	d := ev.Details

	p := play.Play{
		ID:        play.ComposeID(gameID, ev.EventID),
		GameID:    gameID,
		Index:     ev.SortOrder,
		EventType: ev.TypeDescKey,
		XCoord:    d.XCoord,
		YCoord:    d.YCoord,
	}

	p.TeamID = resolveTeamID(ev)
	p.PrimaryPlayerID = firstActor(
		d.PlayerID,
		d.ShootingPlayerID,
		d.ScoringPlayerID,
		d.HittingPlayerID,
		d.WinningPlayerID,
		d.BlockingPlayerID,
		d.CommittedByPlayerID,
	)
	p.OpposingPlayerID = firstActor(
		d.LosingPlayerID,
		d.HitteePlayerID,
		d.GoalieInNetID,
		d.BlockingPlayerID,
		d.DrawnByPlayerID,
	)
	p.SecondaryAssistID, p.TertiaryAssistID = resolveAssists(d)

	if ev.PeriodDescriptor.Number != nil {
		p.Period = *ev.PeriodDescriptor.Number
	}
	p.TimeElapsed = firstTime(defaultTimeElapsed, ev.PeriodDescriptor.TimeElapsed, ev.TimeInPeriod)
	p.TimeRemaining = firstTime(defaultTimeRemaining, ev.PeriodDescriptor.TimeRemaining, ev.TimeRemaining)

	if d.ZoneCode != nil {
		p.ZoneCode = *d.ZoneCode
	}

	return p
}

func resolveTeamID(ev ExternalPlayEvent) *int64 {
	if ev.TeamID != nil {
		v := *ev.TeamID
		return &v
	}
	if ev.Details.EventOwnerTeamID != nil {
		v := *ev.Details.EventOwnerTeamID
		return &v
	}
	return nil
}

func resolveAssists(d ExternalPlayDetails) (*int64, *int64) {
	if len(d.AssistingPlayerIDs) > 0 {
		first := d.AssistingPlayerIDs[0]
		var second *int64
		if len(d.AssistingPlayerIDs) > 1 {
			v := d.AssistingPlayerIDs[1]
			second = &v
		}
		return &first, second
	}
	return copyID(d.Assist1PlayerID), copyID(d.Assist2PlayerID)
}

func firstActor(candidates ...*int64) *int64 {
	for _, c := range candidates {
		if c != nil {
			return copyID(c)
		}
	}
	return nil
}

func firstTime(fallback string, candidates ...*string) string {
	for _, c := range candidates {
		if c != nil && *c != "" {
			return *c
		}
	}
	return fallback
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
