package vpg

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/lineup-studio/internal/domain/league"
	"github.com/riskibarqy/lineup-studio/internal/platform/logging"
	"github.com/riskibarqy/lineup-studio/internal/platform/resilience"
	"github.com/riskibarqy/lineup-studio/internal/usecase"
)

const (
	defaultBaseURL      = "https://api.virtualprogaming.com/public"
	defaultRetryBackoff = time.Second
	maxResponseBytes    = 6 << 20
)

var errVPGTransient = crerr.New("vpg transient failure")

// ErrResponseTooLarge is returned when a payload exceeds the client's body cap.
var ErrResponseTooLarge = crerr.New("vpg response too large")

var _ league.Provider = (*Client)(nil)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	// MaxResponseBytes caps a response body; zero means 6 MiB.
	MaxResponseBytes int64
}

// Client reads the public competition API. Identical in-flight GETs share one round trip.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	maxRetries int
	backoff    time.Duration
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     resilience.SingleFlight[[]byte]

	maxBody      int64
	fetchTimeout time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}

	maxBody := cfg.MaxResponseBytes
	if maxBody <= 0 {
		maxBody = maxResponseBytes
	}
	retries := max(cfg.MaxRetries, 0)
	// Every attempt plus the linear backoff between them.
	fetchTimeout := time.Duration(retries+1)*httpClient.Timeout + time.Duration(retries*(retries+1)/2)*backoff

	breaker := resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("vpg circuit breaker state changed", "from", from, "to", to)
	})

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		token:      strings.TrimSpace(cfg.Token),
		maxRetries: retries,
		backoff:    backoff,
		logger:     logger,
		breaker:    breaker,

		maxBody:      maxBody,
		fetchTimeout: fetchTimeout,
	}
}

func (c *Client) ListCommunities(ctx context.Context, limit, offset int) (league.Page[league.Community], error) {
	var out league.Page[league.Community]
	err := c.doJSON(ctx, "/communities/", pageQuery(limit, offset), &out)
	return out, err
}

func (c *Client) ListCommunityLeagues(ctx context.Context, communitySlug string, limit, offset int) (league.Page[league.League], error) {
	var out league.Page[league.League]
	err := c.doJSON(ctx, "/communities/"+url.PathEscape(communitySlug)+"/leagues/", pageQuery(limit, offset), &out)
	return out, err
}

func (c *Client) GetLeague(ctx context.Context, slug string) (league.League, error) {
	var out league.League
	err := c.doJSON(ctx, leaguePath(slug, ""), nil, &out)
	return out, err
}

func (c *Client) ListSeasons(ctx context.Context, slug string) ([]int, error) {
	var out []int
	err := c.doJSON(ctx, leaguePath(slug, "seasons/"), nil, &out)
	return out, err
}

func (c *Client) GetTable(ctx context.Context, slug string, season int) ([]league.TableEntry, error) {
	query := url.Values{}
	query.Set("season", strconv.Itoa(season))
	query.Set("is_history", "true")

	var out []league.TableEntry
	err := c.doJSON(ctx, leaguePath(slug, "table/"), query, &out)
	return out, err
}

func (c *Client) ListMatches(ctx context.Context, slug string, q league.MatchQuery) (league.Page[league.Match], error) {
	query := pageQuery(q.Limit, q.Offset)
	if q.Status != "" {
		query.Set("status", string(q.Status))
	}
	if q.Season > 0 {
		query.Set("season", strconv.Itoa(q.Season))
	}

	var out league.Page[league.Match]
	err := c.doJSON(ctx, leaguePath(slug, "matches/"), query, &out)
	return out, err
}

func (c *Client) GetLeaderboard(ctx context.Context, slug string, metric league.Metric, limit, offset int) (league.Page[league.PlayerEntry], error) {
	query := pageQuery(limit, offset)
	query.Set("leaderboard", string(metric))

	var out league.Page[league.PlayerEntry]
	err := c.doJSON(ctx, leaguePath(slug, "players/leaderboard/"), query, &out)
	return out, err
}

func (c *Client) GetMostPoints(ctx context.Context, slug string, limit, offset int) (league.Page[league.TableEntry], error) {
	var out league.Page[league.TableEntry]
	err := c.doJSON(ctx, leaguePath(slug, "most-points/"), pageQuery(limit, offset), &out)
	return out, err
}

func leaguePath(slug, suffix string) string {
	return "/leagues/" + url.PathEscape(strings.TrimSpace(slug)) + "/" + suffix
}

func pageQuery(limit, offset int) url.Values {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	query.Set("offset", strconv.Itoa(max(offset, 0)))
	return query
}

func (c *Client) doJSON(ctx context.Context, path string, query url.Values, target any) error {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	// The shared fetch outlives any single caller; it is bounded by fetchTimeout instead.
	raw, err, _ := c.flight.Do(fullURL, func() ([]byte, error) {
		var body []byte
		execErr := c.breaker.ExecuteClassified(ctx, func(ctx context.Context) error {
			fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
			defer cancel()

			var reqErr error
			body, reqErr = c.executeRequest(fetchCtx, fullURL)
			if stderrors.Is(reqErr, context.DeadlineExceeded) {
				reqErr = fmt.Errorf("%w: %w", errVPGTransient, reqErr)
			}
			return reqErr
		}, isVPGCircuitFailure)
		return body, execErr
	})
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		switch {
		case stderrors.Is(err, resilience.ErrCircuitOpen):
			c.logger.WarnContext(ctx, "vpg circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: league data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		case isVPGCircuitFailure(err), stderrors.Is(err, ErrResponseTooLarge):
			return fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, err)
		}
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrapf(err, "decode league payload %s", path)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("%w: send request: %s", errVPGTransient, c.sanitize(err.Error()))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errVPGTransient, readErr)
			case int64(len(raw)) > c.maxBody:
				c.logger.WarnContext(ctx, "vpg response exceeded body cap", "url", redactURL(fullURL), "limit_bytes", c.maxBody)
				return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrResponseTooLarge, redactURL(fullURL), c.maxBody)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusNotFound:
				return nil, fmt.Errorf("%w: %s", usecase.ErrNotFound, redactURL(fullURL))
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errVPGTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "vpg request failed", "url", redactURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func (c *Client) sanitize(value string) string {
	value = strings.TrimSpace(value)
	if c.token != "" {
		value = strings.ReplaceAll(value, c.token, "REDACTED")
	}
	return value
}

func isVPGCircuitFailure(err error) bool {
	return err != nil && stderrors.Is(err, errVPGTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// redactURL drops the query string; only the path is useful in logs.
func redactURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	parsed.RawQuery = ""
	parsed.User = nil
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
