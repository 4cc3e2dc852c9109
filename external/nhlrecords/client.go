package nhlrecords

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
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
	defaultBaseURL   = "https://records.nhl.com/site/api"
	defaultTimeout   = 30 * time.Second
	maxResponseBytes = 10 << 20
)

const franchiseQuery = "include=teams.id&include=teams.active&include=teams.triCode" +
	"&include=teams.placeName&include=teams.commonName&include=teams.fullName" +
	"&include=teams.logos"

var errRecordsTransient = crerr.New("nhl records transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	Retry      resilience.RetryPolicy
	Logger     *logging.Logger
}

// Client reads the NHL records API, the reference-data source for
// franchises and historical player rows.
type Client struct {
	httpClient *http.Client
	baseURL    string
	retry      resilience.RetryPolicy
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		retry:      resilience.NormalizeRetryPolicy(cfg.Retry),
		logger:     logger,
	}
}

// FetchFranchises returns one entry per team across all franchises, with
// the newest dark-background logo preselected.
func (c *Client) FetchFranchises(ctx context.Context) ([]usecase.ExternalFranchise, error) {
	var envelope franchiseEnvelope
	if err := c.doJSON(ctx, "/franchise?"+franchiseQuery, &envelope); err != nil {
		return nil, fmt.Errorf("fetch franchises: %w", err)
	}

	out := make([]usecase.ExternalFranchise, 0, 32)
	for _, fr := range envelope.Data {
		for _, t := range fr.Teams {
			if t.ID <= 0 {
				continue
			}
			out = append(out, usecase.ExternalFranchise{
				TeamID:   t.ID,
				Name:     t.CommonName.Default,
				City:     t.PlaceName.Default,
				Abbrev:   t.TriCode,
				IsActive: t.Active.value,
				LogoURL:  pickDarkLogoURL(t.Logos),
			})
		}
	}
	return out, nil
}

// FetchPlayersByTeam returns the records-side player list for one team,
// used to fill roster gaps the web API leaves.
func (c *Client) FetchPlayersByTeam(ctx context.Context, teamID int64) ([]usecase.ExternalRosterPlayer, error) {
	if teamID <= 0 {
		return nil, fmt.Errorf("%w: team id must be positive", usecase.ErrInvalidInput)
	}

	var envelope playersEnvelope
	if err := c.doJSON(ctx, fmt.Sprintf("/player/byTeam/%d", teamID), &envelope); err != nil {
		return nil, fmt.Errorf("fetch players for team %d: %w", teamID, err)
	}

	out := make([]usecase.ExternalRosterPlayer, 0, len(envelope.Data))
	for _, p := range envelope.Data {
		if p.ID <= 0 {
			continue
		}
		out = append(out, usecase.ExternalRosterPlayer{
			ID:           p.ID,
			TeamID:       p.CurrentTeamID,
			FirstName:    p.FirstName,
			LastName:     p.LastName,
			Sweater:      p.SweaterNumber,
			Position:     p.Position,
			BirthCity:    p.BirthCity,
			BirthCountry: p.BirthCountry,
		})
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	raw, err := c.executeRequest(ctx, c.baseURL+path)
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode records payload: %w", err)
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

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errRecordsTransient, err)
		} else {
			raw, readErr := readBody(resp.Body, maxResponseBytes)
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errRecordsTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case c.retry.IsRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: status=%d", errRecordsTransient, resp.StatusCode)
			default:
				return nil, fmt.Errorf("records status=%d", resp.StatusCode)
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
		lastErr = stderrors.New("records request failed")
	}
	c.logger.WarnContext(ctx, "nhl records request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
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

// pickDarkLogoURL prefers the dark-background logo with the newest start
// season; on a tie the open-ended one wins.
func pickDarkLogoURL(logos []logoEnvelope) string {
	bestStart := -1
	var bestEnd *int
	bestURL := ""
	for _, lg := range logos {
		if !strings.EqualFold(lg.Background, "dark") {
			continue
		}
		url := lg.SecureURL
		if url == "" {
			url = lg.URL
		}
		if url == "" {
			continue
		}
		start := -1
		if lg.StartSeason != nil {
			start = *lg.StartSeason
		}
		better := start > bestStart ||
			(start == bestStart && bestEnd != nil && lg.EndSeason == nil)
		if better {
			bestStart = start
			bestEnd = lg.EndSeason
			bestURL = url
		}
	}
	return bestURL
}
