package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BrandonMiller18/nhlcompanion-be/internal/platform/logging"
)

// Config stores runtime configuration for the sync commands.
type Config struct {
	AppEnv                      string
	ServiceName                 string
	ServiceVersion              string
	DBURL                       string
	NHLWebBaseURL               string
	NHLWebTimeout               time.Duration
	NHLWebMaxAttempts           int
	NHLWebRetryBackoff          time.Duration
	NHLWebCircuitEnabled        bool
	NHLWebCircuitFailureCount   int
	NHLWebCircuitOpenTimeout    time.Duration
	NHLWebCircuitHalfOpenMaxReq int
	NHLRecordsBaseURL           string
	NHLRecordsTimeout           time.Duration
	PollInterval                time.Duration
	IdleInterval                time.Duration
	RefreshCycles               int
	DefaultSeason               string
	PlayerSyncWorkers           int
	PprofEnabled                bool
	PprofAddr                   string
	UptraceEnabled              bool
	UptraceDSN                  string
	PyroscopeEnabled            bool
	PyroscopeServerAddress      string
	PyroscopeAppName            string
	PyroscopeAuthToken          string
	PyroscopeBasicAuthUser      string
	PyroscopeBasicAuthPassword  string
	PyroscopeUploadRate         time.Duration
	LogLevel                    logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required")
	}

	nhlWebBaseURL := strings.TrimSpace(getEnv("NHL_WEB_BASE_URL", "https://api-web.nhle.com/v1"))
	nhlWebTimeout, err := time.ParseDuration(getEnv("NHL_WEB_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NHL_WEB_TIMEOUT: %w", err)
	}
	if nhlWebTimeout <= 0 {
		return Config{}, fmt.Errorf("NHL_WEB_TIMEOUT must be > 0")
	}
	nhlWebMaxAttempts, err := getEnvAsInt("NHL_WEB_MAX_ATTEMPTS", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse NHL_WEB_MAX_ATTEMPTS: %w", err)
	}
	if nhlWebMaxAttempts < 1 {
		return Config{}, fmt.Errorf("NHL_WEB_MAX_ATTEMPTS must be >= 1")
	}
	nhlWebRetryBackoff, err := time.ParseDuration(getEnv("NHL_WEB_RETRY_BACKOFF", "500ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NHL_WEB_RETRY_BACKOFF: %w", err)
	}
	if nhlWebRetryBackoff <= 0 {
		return Config{}, fmt.Errorf("NHL_WEB_RETRY_BACKOFF must be > 0")
	}
	nhlWebCircuitEnabled, err := strconv.ParseBool(getEnv("NHL_WEB_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NHL_WEB_CIRCUIT_ENABLED: %w", err)
	}
	nhlWebCircuitFailureCount, err := getEnvAsInt("NHL_WEB_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse NHL_WEB_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if nhlWebCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("NHL_WEB_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	nhlWebCircuitOpenTimeout, err := time.ParseDuration(getEnv("NHL_WEB_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NHL_WEB_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if nhlWebCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("NHL_WEB_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	nhlWebCircuitHalfOpenMaxReq, err := getEnvAsInt("NHL_WEB_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse NHL_WEB_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if nhlWebCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("NHL_WEB_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	nhlRecordsBaseURL := strings.TrimSpace(getEnv("NHL_RECORDS_BASE_URL", "https://records.nhl.com/site/api"))
	nhlRecordsTimeout, err := time.ParseDuration(getEnv("NHL_RECORDS_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NHL_RECORDS_TIMEOUT: %w", err)
	}
	if nhlRecordsTimeout <= 0 {
		return Config{}, fmt.Errorf("NHL_RECORDS_TIMEOUT must be > 0")
	}

	pollInterval, err := time.ParseDuration(getEnv("POLL_INTERVAL", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse POLL_INTERVAL: %w", err)
	}
	if pollInterval <= 0 {
		return Config{}, fmt.Errorf("POLL_INTERVAL must be > 0")
	}
	idleInterval, err := time.ParseDuration(getEnv("IDLE_INTERVAL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse IDLE_INTERVAL: %w", err)
	}
	if idleInterval <= 0 {
		return Config{}, fmt.Errorf("IDLE_INTERVAL must be > 0")
	}
	refreshCycles, err := getEnvAsInt("REFRESH_CYCLES", 50)
	if err != nil {
		return Config{}, fmt.Errorf("parse REFRESH_CYCLES: %w", err)
	}
	if refreshCycles < 1 {
		return Config{}, fmt.Errorf("REFRESH_CYCLES must be >= 1")
	}

	playerSyncWorkers, err := getEnvAsInt("PLAYER_SYNC_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse PLAYER_SYNC_WORKERS: %w", err)
	}
	if playerSyncWorkers < 1 {
		return Config{}, fmt.Errorf("PLAYER_SYNC_WORKERS must be >= 1")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	serviceName := strings.TrimSpace(getEnv("SERVICE_NAME", "nhlcompanion-be"))
	serviceVersion := strings.TrimSpace(getEnv("SERVICE_VERSION", "dev"))

	cfg := Config{
		AppEnv:                      appEnv,
		ServiceName:                 serviceName,
		ServiceVersion:              serviceVersion,
		DBURL:                       dbURL,
		NHLWebBaseURL:               nhlWebBaseURL,
		NHLWebTimeout:               nhlWebTimeout,
		NHLWebMaxAttempts:           nhlWebMaxAttempts,
		NHLWebRetryBackoff:          nhlWebRetryBackoff,
		NHLWebCircuitEnabled:        nhlWebCircuitEnabled,
		NHLWebCircuitFailureCount:   nhlWebCircuitFailureCount,
		NHLWebCircuitOpenTimeout:    nhlWebCircuitOpenTimeout,
		NHLWebCircuitHalfOpenMaxReq: nhlWebCircuitHalfOpenMaxReq,
		NHLRecordsBaseURL:           nhlRecordsBaseURL,
		NHLRecordsTimeout:           nhlRecordsTimeout,
		PollInterval:                pollInterval,
		IdleInterval:                idleInterval,
		RefreshCycles:               refreshCycles,
		DefaultSeason:               strings.TrimSpace(getEnv("DEFAULT_SEASON", "20252026")),
		PlayerSyncWorkers:           playerSyncWorkers,
		PprofEnabled:                pprofEnabled,
		PprofAddr:                   pprofAddr,
		UptraceEnabled:              uptraceEnabled,
		UptraceDSN:                  uptraceDSN,
		PyroscopeEnabled:            pyroscopeEnabled,
		PyroscopeServerAddress:      pyroscopeServerAddress,
		PyroscopeAppName:            strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", serviceName)),
		PyroscopeAuthToken:          strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:      strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:  strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:         pyroscopeUploadRate,
		LogLevel:                    parseLogLevel(getEnv("LOG_LEVEL", "info")),
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
