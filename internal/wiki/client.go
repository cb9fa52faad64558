package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/akosenkov/lapsus/internal/cache"
	"github.com/akosenkov/lapsus/internal/model"
	"github.com/akosenkov/lapsus/internal/util"
)

const (
	// minExtractLen rejects stub responses: an "extract" below this is
	// not enough text to hide a wrong word in.
	minExtractLen = 50

	fetchMaxRetries = 3
)

// fetchSleepFunc is the backoff sleep between retries (injectable for
// tests).
var fetchSleepFunc = time.Sleep

// Client fetches article summaries for fetch-form puzzles. The summary
// REST endpoint is the primary source; when it fails, the client falls
// back to scraping the article page's lead section, gated on robots.txt.
// Results are cached so a puzzle day fetches at most once.
type Client struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	lang       string
	cache      cache.Cache
	limiter    *HostLimiter
	robots     *util.RobotsChecker

	// BaseURL overrides the wiki origin; empty means the public
	// "https://<lang>.wikipedia.org". Tests point it at a local server.
	BaseURL string
}

// NewClient builds a Client from configuration. contentCache may be nil
// to disable caching.
func NewClient(cfg *model.Config, contentCache cache.Cache) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.HTTP.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.HTTP.UserAgent,
		maxBytes:  cfg.HTTP.MaxBodyBytes,
		lang:      cfg.Content.Language,
		cache:     contentCache,
		limiter:   NewHostLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		robots:    util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout),
	}
}

// Summary returns the plain-text summary for an article title.
func (c *Client) Summary(ctx context.Context, title string) (model.PageSummary, error) {
	key := cache.Key(c.lang, title)
	if c.cache != nil {
		if data, ok := c.cache.Get(key); ok {
			var s model.PageSummary
			if err := json.Unmarshal(data, &s); err == nil && s.Text != "" {
				s.Source = "cache"
				return s, nil
			}
		}
	}

	s, apiErr := c.summaryFromAPI(ctx, title)
	if apiErr != nil {
		var scrapeErr error
		s, scrapeErr = c.summaryFromScrape(ctx, title)
		if scrapeErr != nil {
			return model.PageSummary{}, fmt.Errorf("summary %q: %w (scrape fallback: %v)", title, apiErr, scrapeErr)
		}
	}

	if c.cache != nil {
		if data, err := json.Marshal(s); err == nil {
			_ = c.cache.Set(key, data, 0)
		}
	}
	return s, nil
}

// summaryResponse is the wire shape of the REST page-summary endpoint.
type summaryResponse struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	Description string `json:"description"`
	Thumbnail   struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
}

func (c *Client) summaryFromAPI(ctx context.Context, title string) (model.PageSummary, error) {
	endpoint := c.origin() + "/api/rest_v1/page/summary/" + url.PathEscape(titleSlug(title))

	body, err := c.fetchWithRetry(ctx, endpoint)
	if err != nil {
		return model.PageSummary{}, err
	}

	var resp summaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return model.PageSummary{}, fmt.Errorf("decode summary: %w", err)
	}
	if resp.Type == "disambiguation" {
		return model.PageSummary{}, fmt.Errorf("%q is a disambiguation page", title)
	}
	if len(resp.Extract) < minExtractLen {
		return model.PageSummary{}, fmt.Errorf("extract too short: %d chars", len(resp.Extract))
	}

	return model.PageSummary{
		Title:       resp.Title,
		Text:        resp.Extract,
		Description: resp.Description,
		Thumbnail:   resp.Thumbnail.Source,
		Source:      "api",
	}, nil
}

func (c *Client) summaryFromScrape(ctx context.Context, title string) (model.PageSummary, error) {
	pageURL := c.origin() + "/wiki/" + url.PathEscape(titleSlug(title))

	allowed, crawlDelay, err := c.robots.CanFetch(ctx, pageURL)
	if err != nil {
		return model.PageSummary{}, err
	}
	if !allowed {
		return model.PageSummary{}, fmt.Errorf("robots.txt disallows %s", pageURL)
	}
	if crawlDelay > 0 {
		if err := c.limiter.WaitWithDelay(ctx, pageURL, crawlDelay); err != nil {
			return model.PageSummary{}, err
		}
	}

	body, err := c.fetchWithRetry(ctx, pageURL)
	if err != nil {
		return model.PageSummary{}, err
	}

	lead, err := LeadText(string(body))
	if err != nil {
		return model.PageSummary{}, err
	}
	if len(lead) < minExtractLen {
		return model.PageSummary{}, fmt.Errorf("lead section too short: %d chars", len(lead))
	}

	return model.PageSummary{
		Title:  strings.TrimSpace(title),
		Text:   lead,
		Source: "scrape",
	}, nil
}

// fetchWithRetry GETs a URL, retrying transient failures with exponential
// backoff.
func (c *Client) fetchWithRetry(ctx context.Context, rawURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < fetchMaxRetries; attempt++ {
		body, err := c.fetch(ctx, rawURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !isRetryable(err) {
			return nil, err
		}
		if attempt < fetchMaxRetries-1 {
			fetchSleepFunc(time.Duration(1<<uint(attempt)) * time.Second)
		}
	}
	return nil, lastErr
}

func (c *Client) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx, rawURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, text/html;q=0.9, */*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &statusError{code: resp.StatusCode, status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// statusError carries the HTTP status of a non-2xx response so the retry
// policy can tell a 503 from a 404.
type statusError struct {
	code   int
	status string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status: %s", e.status)
}

// isRetryable reports whether an error is worth another attempt: 5xx and
// 429 responses, and transient network failures.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests || (se.code >= 500 && se.code < 600)
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset")
}

func (c *Client) origin() string {
	if c.BaseURL != "" {
		return strings.TrimSuffix(c.BaseURL, "/")
	}
	return fmt.Sprintf("https://%s.wikipedia.org", c.lang)
}

// titleSlug converts a display title to its path form ("Great Wall of
// China" becomes "Great_Wall_of_China").
func titleSlug(title string) string {
	return strings.ReplaceAll(strings.TrimSpace(title), " ", "_")
}
