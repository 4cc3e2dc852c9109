package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/BrandonMiller18/nhlcompanion-be/internal/app"
	"github.com/BrandonMiller18/nhlcompanion-be/internal/config"
	"github.com/BrandonMiller18/nhlcompanion-be/internal/observability"
	"github.com/BrandonMiller18/nhlcompanion-be/internal/platform/logging"
	"github.com/BrandonMiller18/nhlcompanion-be/internal/usecase"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	registry, err := newRegistry(commands())
	if err != nil {
		logger.Error("build command registry", "error", err)
		return 1
	}

	if len(os.Args) < 2 {
		printUsage(registry)
		return 2
	}
	cmd, ok := registry.lookup(os.Args[1])
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		printUsage(registry)
		return 2
	}

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return 1
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownUptrace(ctx); err != nil {
			logger.Warn("shutdown uptrace", "error", err)
		}
	}()

	stopPyroscope, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		return 1
	}
	defer func() {
		if err := stopPyroscope(); err != nil {
			logger.Warn("stop pyroscope", "error", err)
		}
	}()

	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		logger.Error("start pprof", "error", err)
		return 1
	}
	defer func() {
		if err := observability.StopPprofServer(pprofSrv, logger, 5*time.Second); err != nil {
			logger.Warn("stop pprof", "error", err)
		}
	}()

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		return 1
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("close app", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.run(ctx, a, os.Args[2:]); err != nil {
		logger.Error("command failed", "command", cmd.name, "error", err)
		return 1
	}

	return 0
}

// command is a single CLI subcommand. run receives the arguments after
// the command name.
type command struct {
	name  string
	usage string
	run   func(ctx context.Context, a *app.App, args []string) error
}

type registry struct {
	commands map[string]command
}

// newRegistry rejects malformed command sets outright rather than
// skipping bad entries.
func newRegistry(cmds []command) (*registry, error) {
	r := &registry{commands: make(map[string]command, len(cmds))}
	for _, cmd := range cmds {
		name := strings.TrimSpace(cmd.name)
		if name == "" {
			return nil, fmt.Errorf("command with empty name")
		}
		if cmd.run == nil {
			return nil, fmt.Errorf("command %q has no run function", name)
		}
		if _, exists := r.commands[name]; exists {
			return nil, fmt.Errorf("duplicate command %q", name)
		}
		cmd.name = name
		r.commands[name] = cmd
	}
	return r, nil
}

func (r *registry) lookup(name string) (command, bool) {
	cmd, ok := r.commands[strings.ToLower(strings.TrimSpace(name))]
	return cmd, ok
}

func (r *registry) names() []string {
	out := make([]string, 0, len(r.commands))
	for name := range r.commands {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func commands() []command {
	return []command{
		{
			name:  "update-live",
			usage: "update-live <gameId>",
			run:   runUpdateLive,
		},
		{
			name:  "watch-game",
			usage: "watch-game <gameId> [--poll-seconds N]",
			run:   runWatchGame,
		},
		{
			name:  "watch-live",
			usage: "watch-live [--poll-seconds N]",
			run:   runWatchLive,
		},
		{
			name:  "sync-schedule",
			usage: "sync-schedule <start> <end>",
			run:   runSyncSchedule,
		},
		{
			name:  "sync-teams",
			usage: "sync-teams",
			run:   runSyncTeams,
		},
		{
			name:  "sync-players",
			usage: "sync-players [--season S] [--teams TOR,EDM]",
			run:   runSyncPlayers,
		},
	}
}

func runUpdateLive(ctx context.Context, a *app.App, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: update-live <gameId>")
	}
	gameID, err := parseGameID(args[0])
	if err != nil {
		return err
	}

	result, err := a.LiveSync.UpdateLiveOnce(ctx, gameID)
	if err != nil {
		return err
	}
	a.Logger.Info("live update complete",
		"game_id", result.GameID,
		"state", result.State,
		"plays", result.PlayCount,
	)
	return nil
}

func runWatchGame(ctx context.Context, a *app.App, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: watch-game <gameId> [--poll-seconds N]")
	}
	gameID, err := parseGameID(args[0])
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("watch-game", flag.ContinueOnError)
	pollSeconds := fs.Int("poll-seconds", 0, "seconds between polls")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	applyPollOverride(a, *pollSeconds)

	result, err := a.LiveSync.WatchGame(ctx, gameID)
	if err != nil {
		return err
	}
	a.Logger.Info("game reached terminal state",
		"game_id", result.GameID,
		"state", result.State,
	)
	return nil
}

func runWatchLive(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("watch-live", flag.ContinueOnError)
	pollSeconds := fs.Int("poll-seconds", 0, "seconds between polls")
	if err := fs.Parse(args); err != nil {
		return err
	}
	applyPollOverride(a, *pollSeconds)

	err := a.LiveSync.WatchLive(ctx)
	if err != nil && ctx.Err() != nil {
		// Interrupted by a signal, not a failure.
		a.Logger.Info("watch-live stopped")
		return nil
	}
	return err
}

func runSyncSchedule(ctx context.Context, a *app.App, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: sync-schedule <start> <end> (dates as YYYY-MM-DD)")
	}

	count, err := a.ScheduleSync.SyncDateRange(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	a.Logger.Info("schedule sync complete", "games", count)
	return nil
}

func runSyncTeams(ctx context.Context, a *app.App, _ []string) error {
	count, err := a.TeamSync.SyncTeams(ctx)
	if err != nil {
		return err
	}
	a.Logger.Info("team sync complete", "teams", count)
	return nil
}

func runSyncPlayers(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("sync-players", flag.ContinueOnError)
	season := fs.String("season", a.Config.DefaultSeason, "season in YYYYYYYY form, e.g. 20252026")
	teamsCSV := fs.String("teams", "", "comma-separated team tri-codes; empty means all active teams")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := a.PlayerSync.SyncPlayers(ctx, usecase.PlayerSyncInput{
		Season: *season,
		Teams:  splitCSV(*teamsCSV),
	})
	if err != nil {
		return err
	}
	a.Logger.Info("player sync complete",
		"teams", result.TeamCount,
		"players", result.PlayerCount,
		"failed_teams", result.FailedTeams,
	)
	return nil
}

func parseGameID(raw string) (int64, error) {
	gameID, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid game id %q: %w", raw, err)
	}
	if gameID <= 0 {
		return 0, fmt.Errorf("game id must be > 0")
	}
	return gameID, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func applyPollOverride(a *app.App, pollSeconds int) {
	if pollSeconds <= 0 {
		return
	}
	a.LiveSync.SetPollInterval(time.Duration(pollSeconds) * time.Second)
}

func printUsage(r *registry) {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <command> [args]\n\ncommands:\n", prog)
	for _, name := range r.names() {
		fmt.Fprintf(os.Stderr, "  %s\n", r.commands[name].usage)
	}
}
