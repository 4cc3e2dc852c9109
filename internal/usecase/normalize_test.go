package usecase

import (
	"testing"

	"github.com/BrandonMiller18/nhlcompanion-be/internal/domain/play"
)

func TestNormalizePlayGoalEvent(t *testing.T) {
	t.Parallel()

	ev := ExternalPlayEvent{
		EventID:     55,
		SortOrder:   12,
		TypeDescKey: "goal",
		PeriodDescriptor: ExternalPeriodDescriptor{
			Number:        intPtr(3),
			TimeRemaining: strPtr("02:10"),
		},
		Details: ExternalPlayDetails{
			EventOwnerTeamID:   int64Ptr(10),
			ScoringPlayerID:    int64Ptr(555),
			AssistingPlayerIDs: []int64{111, 222},
		},
	}

	p := NormalizePlay(2025020001, ev)

	if p.GameID != 2025020001 {
		t.Fatalf("GameID = %d", p.GameID)
	}
	if p.ID != play.ComposeID(2025020001, 55) {
		t.Fatalf("ID = %d, want composite of game and event id", p.ID)
	}
	if p.TeamID == nil || *p.TeamID != 10 {
		t.Fatalf("TeamID = %v, want 10", p.TeamID)
	}
	if p.PrimaryPlayerID == nil || *p.PrimaryPlayerID != 555 {
		t.Fatalf("PrimaryPlayerID = %v, want 555", p.PrimaryPlayerID)
	}
	if p.SecondaryAssistID == nil || *p.SecondaryAssistID != 111 {
		t.Fatalf("SecondaryAssistID = %v, want 111", p.SecondaryAssistID)
	}
	if p.TertiaryAssistID == nil || *p.TertiaryAssistID != 222 {
		t.Fatalf("TertiaryAssistID = %v, want 222", p.TertiaryAssistID)
	}
	if p.Period != 3 || p.TimeRemaining != "02:10" {
		t.Fatalf("period/time = %d %q, want 3 02:10", p.Period, p.TimeRemaining)
	}
	if p.EventType != "goal" || p.Index != 12 {
		t.Fatalf("event = %q index %d", p.EventType, p.Index)
	}
}

func TestNormalizePlayIdentityIsStable(t *testing.T) {
	t.Parallel()

	ev := ExternalPlayEvent{EventID: 7, TypeDescKey: "hit"}
	first := NormalizePlay(2024020100, ev)
	second := NormalizePlay(2024020100, ev)
	if first.ID != second.ID {
		t.Fatalf("ids differ across calls: %d vs %d", first.ID, second.ID)
	}
}

func TestNormalizePlayIdentityNeverCollidesUnderAddition(t *testing.T) {
	t.Parallel()

	// 100+23 == 101+22, so naive addition would collide here.
	a := NormalizePlay(100, ExternalPlayEvent{EventID: 23})
	b := NormalizePlay(101, ExternalPlayEvent{EventID: 22})
	if a.ID == b.ID {
		t.Fatalf("composite id collided: %d", a.ID)
	}
}

func TestNormalizePlayMissingTimingDefaults(t *testing.T) {
	t.Parallel()

	p := NormalizePlay(2024020001, ExternalPlayEvent{EventID: 1, TypeDescKey: "faceoff"})

	if p.Period != 0 {
		t.Fatalf("Period = %d, want 0", p.Period)
	}
	if p.TimeElapsed != "00:00" || p.TimeRemaining != "00:00" {
		t.Fatalf("times = %q %q, want 00:00 00:00", p.TimeElapsed, p.TimeRemaining)
	}
}

func TestNormalizePlayEventLevelTimingFallback(t *testing.T) {
	t.Parallel()

	ev := ExternalPlayEvent{
		EventID:       2,
		TimeInPeriod:  strPtr("04:31"),
		TimeRemaining: strPtr("15:29"),
	}

	p := NormalizePlay(2024020001, ev)
	if p.TimeElapsed != "04:31" || p.TimeRemaining != "15:29" {
		t.Fatalf("times = %q %q", p.TimeElapsed, p.TimeRemaining)
	}
}

func TestNormalizePlayPrimaryActorFallbackOrder(t *testing.T) {
	t.Parallel()

	ev := ExternalPlayEvent{
		EventID: 3,
		Details: ExternalPlayDetails{
			ShootingPlayerID: int64Ptr(42),
			HittingPlayerID:  int64Ptr(84),
		},
	}

	p := NormalizePlay(2024020001, ev)
	if p.PrimaryPlayerID == nil || *p.PrimaryPlayerID != 42 {
		t.Fatalf("PrimaryPlayerID = %v, want shooting player 42", p.PrimaryPlayerID)
	}
}

func TestNormalizePlayOpposingActorChain(t *testing.T) {
	t.Parallel()

	ev := ExternalPlayEvent{
		EventID: 4,
		Details: ExternalPlayDetails{
			ShootingPlayerID: int64Ptr(42),
			GoalieInNetID:    int64Ptr(31),
		},
	}

	p := NormalizePlay(2024020001, ev)
	if p.OpposingPlayerID == nil || *p.OpposingPlayerID != 31 {
		t.Fatalf("OpposingPlayerID = %v, want goalie 31", p.OpposingPlayerID)
	}
}

func TestNormalizePlayLegacyAssistKeys(t *testing.T) {
	t.Parallel()

	ev := ExternalPlayEvent{
		EventID: 5,
		Details: ExternalPlayDetails{
			Assist1PlayerID: int64Ptr(111),
			Assist2PlayerID: int64Ptr(222),
		},
	}

	p := NormalizePlay(2024020001, ev)
	if p.SecondaryAssistID == nil || *p.SecondaryAssistID != 111 {
		t.Fatalf("SecondaryAssistID = %v, want 111", p.SecondaryAssistID)
	}
	if p.TertiaryAssistID == nil || *p.TertiaryAssistID != 222 {
		t.Fatalf("TertiaryAssistID = %v, want 222", p.TertiaryAssistID)
	}
}

func TestNormalizePlayTeamFromEventObject(t *testing.T) {
	t.Parallel()

	ev := ExternalPlayEvent{
		EventID: 6,
		TeamID:  int64Ptr(21),
		Details: ExternalPlayDetails{EventOwnerTeamID: int64Ptr(99)},
	}

	p := NormalizePlay(2024020001, ev)
	if p.TeamID == nil || *p.TeamID != 21 {
		t.Fatalf("TeamID = %v, want event-level 21", p.TeamID)
	}
}

func TestNormalizePlayCoordinatesAndZonePassThrough(t *testing.T) {
	t.Parallel()

	x, y := 12.5, -42.0
	ev := ExternalPlayEvent{
		EventID: 8,
		Details: ExternalPlayDetails{
			XCoord:   &x,
			YCoord:   &y,
			ZoneCode: strPtr("O"),
		},
	}

	p := NormalizePlay(2024020001, ev)
	if p.XCoord == nil || *p.XCoord != 12.5 || p.YCoord == nil || *p.YCoord != -42.0 {
		t.Fatalf("coords = %v %v", p.XCoord, p.YCoord)
	}
	if p.ZoneCode != "O" {
		t.Fatalf("ZoneCode = %q, want O", p.ZoneCode)
	}
}
