package usecase

import (
	"strings"

	"github.com/BrandonMiller18/nhlcompanion-be/internal/domain/game"
)

// ReconcileSnapshot merges a landing and a boxscore payload into one
// canonical game snapshot. The boxscore wins for scores and shots on
// goal, the landing wins for state, period and clock; the two feeds lag
// each other on different fields, so neither alone is trustworthy.
func ReconcileSnapshot(landing *ExternalGameLanding, boxscore *ExternalGameBoxscore) game.Snapshot {
	snap := game.Snapshot{}

	if landing != nil && strings.TrimSpace(landing.State) != "" {
		snap.State = landing.State
	} else if boxscore != nil {
		snap.State = boxscore.State
	}

	if landing != nil {
		if landing.PeriodDescriptor.Number != nil {
			n := *landing.PeriodDescriptor.Number
			snap.Period = &n
		}
		snap.Clock = reconcileClock(landing)
	}

	snap.HomeScore = firstCount(boxscoreHome(boxscore).Score, landingHome(landing).Score)
	snap.AwayScore = firstCount(boxscoreAway(boxscore).Score, landingAway(landing).Score)
	snap.HomeSOG = firstCount(boxscoreHome(boxscore).SOG, landingHome(landing).SOG)
	snap.AwaySOG = firstCount(boxscoreAway(boxscore).SOG, landingAway(landing).SOG)

	return snap
}

func reconcileClock(landing *ExternalGameLanding) *string {
	if landing.Clock.TimeRemaining != nil {
		v := *landing.Clock.TimeRemaining
		return &v
	}
	if landing.Clock.DisplayValue != nil {
		v := *landing.Clock.DisplayValue
		return &v
	}
	if strings.TrimSpace(landing.Clock.Raw) != "" {
		v := landing.Clock.Raw
		return &v
	}
	if landing.PeriodDescriptor.TimeRemaining != nil {
		v := *landing.PeriodDescriptor.TimeRemaining
		return &v
	}
	return nil
}

// firstCount picks the first present numeric value, defaulting to 0. A
// missing count never fails reconciliation.
func firstCount(values ...*int) int {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}

func boxscoreHome(b *ExternalGameBoxscore) ExternalTeamState {
	if b == nil {
		return ExternalTeamState{}
	}
	return b.HomeTeam
}

func boxscoreAway(b *ExternalGameBoxscore) ExternalTeamState {
	if b == nil {
		return ExternalTeamState{}
	}
	return b.AwayTeam
}

func landingHome(l *ExternalGameLanding) ExternalTeamState {
	if l == nil {
		return ExternalTeamState{}
	}
	return l.HomeTeam
}

func landingAway(l *ExternalGameLanding) ExternalTeamState {
	if l == nil {
		return ExternalTeamState{}
	}
	return l.AwayTeam
}
