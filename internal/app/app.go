package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"

	"github.com/BrandonMiller18/nhlcompanion-be/external/nhlrecords"
	"github.com/BrandonMiller18/nhlcompanion-be/external/nhlweb"
	"github.com/BrandonMiller18/nhlcompanion-be/internal/config"
	"github.com/BrandonMiller18/nhlcompanion-be/internal/infrastructure/repository/postgres"
	"github.com/BrandonMiller18/nhlcompanion-be/internal/platform/logging"
	"github.com/BrandonMiller18/nhlcompanion-be/internal/platform/resilience"
	"github.com/BrandonMiller18/nhlcompanion-be/internal/usecase"
)

// App wires the sync services to their external providers and storage.
type App struct {
	Config config.Config
	Logger *logging.Logger

	DB            *sqlx.DB
	Store         *postgres.Store
	WebClient     *nhlweb.Client
	RecordsClient *nhlrecords.Client

	LiveSync     *usecase.LiveSyncService
	TeamSync     *usecase.TeamSyncService
	ScheduleSync *usecase.ScheduleSyncService
	PlayerSync   *usecase.PlayerSyncService
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(cfg.DBURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	store := postgres.NewStore(db)

	webClient := nhlweb.NewClient(nhlweb.ClientConfig{
		BaseURL: cfg.NHLWebBaseURL,
		Timeout: cfg.NHLWebTimeout,
		Retry: resilience.RetryPolicy{
			MaxAttempts:    cfg.NHLWebMaxAttempts,
			InitialBackoff: cfg.NHLWebRetryBackoff,
		},
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.NHLWebCircuitEnabled,
			FailureThreshold: cfg.NHLWebCircuitFailureCount,
			OpenTimeout:      cfg.NHLWebCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.NHLWebCircuitHalfOpenMaxReq,
		},
		Logger: logger,
	})

	recordsClient := nhlrecords.NewClient(nhlrecords.ClientConfig{
		BaseURL: cfg.NHLRecordsBaseURL,
		Timeout: cfg.NHLRecordsTimeout,
		Logger:  logger,
	})

	liveSync := usecase.NewLiveSyncService(webClient, store, usecase.LiveSyncConfig{
		PollInterval:  cfg.PollInterval,
		IdleInterval:  cfg.IdleInterval,
		RefreshCycles: cfg.RefreshCycles,
	}, logger)

	return &App{
		Config:        cfg,
		Logger:        logger,
		DB:            db,
		Store:         store,
		WebClient:     webClient,
		RecordsClient: recordsClient,
		LiveSync:      liveSync,
		TeamSync:      usecase.NewTeamSyncService(recordsClient, store.Teams(), logger),
		ScheduleSync:  usecase.NewScheduleSyncService(webClient, store, logger),
		PlayerSync: usecase.NewPlayerSyncService(
			webClient,
			recordsClient,
			store.Teams(),
			store.Players(),
			cfg.PlayerSyncWorkers,
			logger,
		),
	}, nil
}

func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func openDB(dbURL string) (*sqlx.DB, error) {
	opts := []otelsql.Option{
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
	}
	if name := dbNameFromURL(dbURL); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Connect("postgres", dbURL, opts...)
	if err != nil {
		return nil, err
	}

	return db, nil
}
