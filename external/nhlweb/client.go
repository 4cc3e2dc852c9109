package nhlweb

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/BrandonMiller18/nhlcompanion-be/internal/platform/logging"
	"github.com/BrandonMiller18/nhlcompanion-be/internal/platform/resilience"
	"github.com/BrandonMiller18/nhlcompanion-be/internal/usecase"
)

const (
	defaultBaseURL    = "https://api-web.nhle.com/v1"
	defaultTimeout    = 30 * time.Second
	maxResponseBytes  = 6 << 20
	maxBodyInErrBytes = 512
)

var errNHLWebTransient = crerr.New("nhl web transient failure")

// FetchError is a terminal upstream failure, carrying enough context to
// log and to decide what to do with the affected game.
type FetchError struct {
	Endpoint   string
	GameID     int64
	StatusCode int
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	var b strings.Builder
	b.WriteString("fetch ")
	b.WriteString(e.Endpoint)
	if e.GameID > 0 {
		fmt.Fprintf(&b, " game_id=%d", e.GameID)
	}
	if e.StatusCode > 0 {
		fmt.Fprintf(&b, " status=%d", e.StatusCode)
	}
	if e.Body != "" {
		fmt.Fprintf(&b, " body=%s", e.Body)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *FetchError) Unwrap() error { return e.Err }

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	Retry          resilience.RetryPolicy
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the NHL web API. It satisfies both the live-game and
// the roster provider contracts of the usecase layer.
type Client struct {
	mu            sync.RWMutex
	httpClient    *http.Client
	newHTTPClient func() *http.Client

	baseURL        string
	retry          resilience.RetryPolicy
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	newHTTPClient := func() *http.Client {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		return &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(transport),
		}
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = newHTTPClient()
	} else {
		supplied := httpClient
		newHTTPClient = func() *http.Client { return supplied }
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		newHTTPClient:  newHTTPClient,
		baseURL:        baseURL,
		retry:          resilience.NormalizeRetryPolicy(cfg.Retry),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// Refresh discards the pooled connections and swaps in a fresh transport.
// The live loop calls this every N cycles so multi-hour runs never sit on
// half-dead keepalive connections.
func (c *Client) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.httpClient.CloseIdleConnections()
	c.httpClient = c.newHTTPClient()
}

func (c *Client) client() *http.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.httpClient
}

func (c *Client) FetchScheduleForDate(ctx context.Context, date string) ([]usecase.ExternalScheduleGame, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return nil, fmt.Errorf("%w: date is required", usecase.ErrInvalidInput)
	}

	var envelope scheduleEnvelope
	if err := c.doJSON(ctx, "schedule", 0, "/schedule/"+date, &envelope); err != nil {
		return nil, err
	}
	return envelope.toExternal(), nil
}

func (c *Client) FetchGameLanding(ctx context.Context, gameID int64) (*usecase.ExternalGameLanding, error) {
	if gameID <= 0 {
		return nil, fmt.Errorf("%w: game id must be positive", usecase.ErrInvalidInput)
	}

	var envelope landingEnvelope
	if err := c.doJSON(ctx, "landing", gameID, fmt.Sprintf("/gamecenter/%d/landing", gameID), &envelope); err != nil {
		return nil, err
	}
	return envelope.toExternal(gameID), nil
}

func (c *Client) FetchGameBoxscore(ctx context.Context, gameID int64) (*usecase.ExternalGameBoxscore, error) {
	if gameID <= 0 {
		return nil, fmt.Errorf("%w: game id must be positive", usecase.ErrInvalidInput)
	}

	var envelope boxscoreEnvelope
	if err := c.doJSON(ctx, "boxscore", gameID, fmt.Sprintf("/gamecenter/%d/boxscore", gameID), &envelope); err != nil {
		return nil, err
	}
	return envelope.toExternal(gameID), nil
}

func (c *Client) FetchGamePlayByPlay(ctx context.Context, gameID int64) (*usecase.ExternalPlayByPlay, error) {
	if gameID <= 0 {
		return nil, fmt.Errorf("%w: game id must be positive", usecase.ErrInvalidInput)
	}

	var envelope playByPlayEnvelope
	if err := c.doJSON(ctx, "play-by-play", gameID, fmt.Sprintf("/gamecenter/%d/play-by-play", gameID), &envelope); err != nil {
		return nil, err
	}
	return envelope.toExternal(gameID), nil
}

func (c *Client) FetchRoster(ctx context.Context, teamAbbrev, season string) ([]usecase.ExternalRosterPlayer, error) {
	tri := strings.ToLower(strings.TrimSpace(teamAbbrev))
	season = strings.TrimSpace(season)
	if tri == "" || season == "" {
		return nil, fmt.Errorf("%w: team abbrev and season are required", usecase.ErrInvalidInput)
	}

	var envelope rosterEnvelope
	if err := c.doJSON(ctx, "roster", 0, "/roster/"+tri+"/"+season, &envelope); err != nil {
		return nil, err
	}
	return envelope.toExternal(), nil
}

func (c *Client) doJSON(ctx context.Context, endpoint string, gameID int64, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "nhl web circuit breaker rejected request", "state", c.breaker.State(), "endpoint", endpoint)
			return fmt.Errorf("%w: nhl web api is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, c.baseURL+path)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errNHLWebTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return wrapFetchError(endpoint, gameID, err)
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return &FetchError{Endpoint: endpoint, GameID: gameID, Err: fmt.Errorf("decode payload: %w", err)}
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < c.retry.MaxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.client().Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errNHLWebTransient, err)
		} else {
			raw, readErr := readBody(resp.Body, maxResponseBytes)
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errNHLWebTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case c.retry.IsRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: status=%d body=%s", errNHLWebTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, &FetchError{StatusCode: resp.StatusCode, Body: abbreviateBody(raw)}
			}
		}

		if attempt == c.retry.MaxAttempts-1 {
			break
		}
		timer := time.NewTimer(c.retry.Backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("request failed")
	}
	c.logger.WarnContext(ctx, "nhl web request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func wrapFetchError(endpoint string, gameID int64, err error) error {
	var fetchErr *FetchError
	if stderrors.As(err, &fetchErr) {
		fetchErr.Endpoint = endpoint
		fetchErr.GameID = gameID
		return fetchErr
	}
	return &FetchError{Endpoint: endpoint, GameID: gameID, Err: err}
}

// readBody drains the response through a pooled buffer. The result is
// copied out because callers keep it past the pool return.
func readBody(r io.Reader, limit int64) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := io.Copy(buf, io.LimitReader(r, limit)); err != nil {
		return nil, err
	}
	return append([]byte(nil), buf.B...), nil
}

func abbreviateBody(raw []byte) string {
	body := strings.TrimSpace(string(raw))
	if len(body) > maxBodyInErrBytes {
		body = body[:maxBodyInErrBytes] + "..."
	}
	return body
}
