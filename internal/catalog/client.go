package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"episodic/internal/domain"
)

const (
	defaultBaseURL = "https://api.tvmaze.com"
	defaultTimeout = 30 * time.Second
	userAgent      = "Episodic/1.0"
)

// Client talks to a TVmaze-compatible catalog API. Document fetchers return
// the raw response body so callers can store it verbatim.
type Client struct {
	baseURL    string
	country    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new catalog client
func NewClient(baseURL, country string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if country == "" {
		country = "US"
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		country: country,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// doRequest performs a GET request and returns the raw response body
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("catalog request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("catalog request failed", "error", err)
		return nil, domain.ErrCatalogUnreachable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("catalog request error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return body, nil
}

// SeriesInfo fetches the main-info document for a series
func (c *Client) SeriesInfo(ctx context.Context, seriesID int64) ([]byte, error) {
	return c.doRequest(ctx, fmt.Sprintf("/shows/%d", seriesID), nil)
}

// SeasonsList fetches the season list for a series
func (c *Client) SeasonsList(ctx context.Context, seriesID int64) ([]byte, error) {
	return c.doRequest(ctx, fmt.Sprintf("/shows/%d/seasons", seriesID), nil)
}

// EpisodeList fetches the full episode list for a series
func (c *Client) EpisodeList(ctx context.Context, seriesID int64) ([]byte, error) {
	return c.doRequest(ctx, fmt.Sprintf("/shows/%d/episodes", seriesID), nil)
}

// ShowCast fetches the cast document for a series
func (c *Client) ShowCast(ctx context.Context, seriesID int64) ([]byte, error) {
	return c.doRequest(ctx, fmt.Sprintf("/shows/%d/cast", seriesID), nil)
}

// ScheduleByDate fetches the airing schedule for a civil date
// in the client's configured country
func (c *Client) ScheduleByDate(ctx context.Context, day time.Time) ([]byte, error) {
	query := url.Values{}
	query.Set("country", c.country)
	query.Set("date", day.Format("2006-01-02"))
	return c.doRequest(ctx, "/schedule", query)
}

// SearchSeries queries the catalog for series matching a name
func (c *Client) SearchSeries(ctx context.Context, q string) ([]SearchResult, error) {
	query := url.Values{}
	query.Set("q", q)

	body, err := c.doRequest(ctx, "/search/shows", query)
	if err != nil {
		return nil, err
	}

	var results []SearchResult
	if err := json.Unmarshal(body, &results); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse search results: %w", err)
	}
	return results, nil
}
