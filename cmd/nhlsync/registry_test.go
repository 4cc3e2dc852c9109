package main

import (
	"context"
	"testing"

	"github.com/BrandonMiller18/nhlcompanion-be/internal/app"
)

func noopRun(context.Context, *app.App, []string) error { return nil }

func TestNewRegistry_ValidatesCommands(t *testing.T) {
	t.Run("rejects empty name", func(t *testing.T) {
		_, err := newRegistry([]command{{name: "  ", run: noopRun}})
		if err == nil {
			t.Fatalf("expected error for empty command name")
		}
	})

	t.Run("rejects nil run", func(t *testing.T) {
		_, err := newRegistry([]command{{name: "sync-teams"}})
		if err == nil {
			t.Fatalf("expected error for nil run function")
		}
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		cmds := []command{
			{name: "sync-teams", run: noopRun},
			{name: "sync-teams", run: noopRun},
		}
		if _, err := newRegistry(cmds); err == nil {
			t.Fatalf("expected error for duplicate command")
		}
	})
}

func TestRegistry_Lookup(t *testing.T) {
	r, err := newRegistry(commands())
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}

	for _, name := range []string{"update-live", "watch-game", "watch-live", "sync-schedule", "sync-teams", "sync-players"} {
		if _, ok := r.lookup(name); !ok {
			t.Fatalf("missing command %q", name)
		}
	}

	if _, ok := r.lookup(" SYNC-TEAMS "); !ok {
		t.Fatalf("lookup should trim and lowercase")
	}
	if _, ok := r.lookup("nope"); ok {
		t.Fatalf("unexpected command match")
	}
}

func TestParseGameID(t *testing.T) {
	if _, err := parseGameID("abc"); err == nil {
		t.Fatalf("expected error for non-numeric game id")
	}
	if _, err := parseGameID("0"); err == nil {
		t.Fatalf("expected error for zero game id")
	}
	got, err := parseGameID(" 2025020001 ")
	if err != nil {
		t.Fatalf("parse game id: %v", err)
	}
	if got != 2025020001 {
		t.Fatalf("unexpected game id: %d", got)
	}
}
