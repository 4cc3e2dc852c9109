package postgres

import (
	"strings"
	"testing"

	"github.com/BrandonMiller18/nhlcompanion-be/internal/domain/play"
	qb "github.com/BrandonMiller18/nhlcompanion-be/internal/platform/querybuilder"
)

func TestNullableHelpers(t *testing.T) {
	t.Run("nil pointers become invalid", func(t *testing.T) {
		if nullableInt64(nil).Valid || nullableInt(nil).Valid || nullableFloat64(nil).Valid || nullableStringPtr(nil).Valid || nullableTime(nil).Valid {
			t.Fatalf("expected invalid null values for nil inputs")
		}
	})

	t.Run("empty string becomes invalid", func(t *testing.T) {
		if nullableString("").Valid {
			t.Fatalf("expected invalid null string for empty input")
		}
	})

	t.Run("values pass through", func(t *testing.T) {
		v := int64(42)
		got := nullableInt64(&v)
		if !got.Valid || got.Int64 != 42 {
			t.Fatalf("nullableInt64 = %+v", got)
		}
	})
}

func TestPlayUpsertQueryShape(t *testing.T) {
	teamID := int64(10)
	row := play.Play{
		ID:              202502000155,
		GameID:          2025020001,
		Index:           12,
		TeamID:          &teamID,
		Period:          3,
		TimeElapsed:     "17:50",
		TimeRemaining:   "02:10",
		EventType:       "goal",
	}

	query, args, err := qb.InsertModels("plays", []any{playToInsertModel(row)}, playUpsertSuffix)
	if err != nil {
		t.Fatalf("InsertModels() error = %v", err)
	}

	if !strings.HasPrefix(query, "INSERT INTO plays (play_id, game_id, play_index,") {
		t.Fatalf("query = %q", query)
	}
	if !strings.Contains(query, "ON CONFLICT (play_id) DO UPDATE SET") {
		t.Fatalf("missing conflict clause: %q", query)
	}
	if strings.Contains(strings.SplitN(query, "DO UPDATE SET", 2)[1], "play_id =") {
		t.Fatalf("conflict clause must not touch the identity column: %q", query)
	}
	if strings.Contains(strings.SplitN(query, "DO UPDATE SET", 2)[1], "game_id =") {
		t.Fatalf("conflict clause must not touch game_id: %q", query)
	}
	if len(args) != 15 {
		t.Fatalf("args = %d, want 15 columns", len(args))
	}
}

func TestGameUpsertLeavesLiveColumnsAlone(t *testing.T) {
	if strings.Contains(gameUpsertSuffix, "period") || strings.Contains(gameUpsertSuffix, "game_clock") || strings.Contains(gameUpsertSuffix, "sog") {
		t.Fatalf("schedule upsert must not overwrite live-only columns: %q", gameUpsertSuffix)
	}
}
