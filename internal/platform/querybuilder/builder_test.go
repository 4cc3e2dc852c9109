package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectToSQL(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id", "name").
		From("teams").
		Where(Eq("active", true)).
		OrderBy("name ASC").
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL() error = %v", err)
	}

	want := "SELECT id, name FROM teams WHERE active = $1 ORDER BY name ASC"
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{true}) {
		t.Fatalf("args = %v, want [true]", args)
	}
}

func TestSelectRequiresTable(t *testing.T) {
	t.Parallel()

	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatalf("ToSQL() expected error for missing table")
	}
}

func TestInConditionEmptyValues(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id").From("games").Where(In("id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("ToSQL() error = %v", err)
	}
	if sql != "SELECT id FROM games WHERE 1=0" {
		t.Fatalf("sql = %q", sql)
	}
	if len(args) != 0 {
		t.Fatalf("args = %v, want empty", args)
	}
}

func TestInsertMultiRowWithSuffix(t *testing.T) {
	t.Parallel()

	sql, args, err := InsertInto("plays").
		Columns("id", "game_id").
		Values(int64(1), int64(100)).
		Values(int64(2), int64(100)).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL() error = %v", err)
	}

	want := "INSERT INTO plays (id, game_id) VALUES ($1, $2), ($3, $4) ON CONFLICT (id) DO NOTHING"
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if len(args) != 4 {
		t.Fatalf("len(args) = %d, want 4", len(args))
	}
}

func TestInsertRowArityMismatch(t *testing.T) {
	t.Parallel()

	_, _, err := InsertInto("plays").
		Columns("id", "game_id").
		Values(int64(1)).
		ToSQL()
	if err == nil {
		t.Fatalf("ToSQL() expected error for row arity mismatch")
	}
}

func TestUpdateToSQL(t *testing.T) {
	t.Parallel()

	sql, args, err := Update("games").
		Set("state", "LIVE").
		Set("home_score", 3).
		Where(Eq("id", int64(2024020001))).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL() error = %v", err)
	}

	want := "UPDATE games SET state = $1, home_score = $2 WHERE id = $3"
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"LIVE", 3, int64(2024020001)}) {
		t.Fatalf("args = %v", args)
	}
}

func TestExprConditionRewritesPlaceholders(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id").
		From("games").
		Where(Eq("season", 20242025), Expr("start_time_utc >= ?", "2025-01-01")).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL() error = %v", err)
	}

	want := "SELECT id FROM games WHERE season = $1 AND start_time_utc >= $2"
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{20242025, "2025-01-01"}) {
		t.Fatalf("args = %v", args)
	}
}

type playRow struct {
	ID     int64 `db:"id"`
	GameID int64 `db:"game_id"`
	Note   string
}

func TestInsertModels(t *testing.T) {
	t.Parallel()

	sql, args, err := InsertModels("plays", []any{
		playRow{ID: 1, GameID: 100},
		playRow{ID: 2, GameID: 100},
	}, "ON CONFLICT (id) DO NOTHING")
	if err != nil {
		t.Fatalf("InsertModels() error = %v", err)
	}

	want := "INSERT INTO plays (id, game_id) VALUES ($1, $2), ($3, $4) ON CONFLICT (id) DO NOTHING"
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{int64(1), int64(100), int64(2), int64(100)}) {
		t.Fatalf("args = %v", args)
	}
}
