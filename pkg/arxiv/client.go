package arxiv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avast/retry-go/v4"
)

// DefaultBaseURL is the arXiv API query endpoint.
const DefaultBaseURL = "https://export.arxiv.org/api/query"

// Defaults matching the API's published etiquette: at most one request
// every three seconds, and retry transient failures a few times.
const (
	DefaultPageSize      = 100
	DefaultRetryAttempts = 3
	DefaultRetryDelay    = 3 * time.Second
	defaultTimeout       = 30 * time.Second
)

var ErrEmptyQuery = errors.New("arxiv: search query is empty")

// Client queries the arXiv API.
type Client struct {
	// BaseURL is the query endpoint (defaults to DefaultBaseURL)
	BaseURL string

	// UserAgent identifies the bot to the API
	UserAgent string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// PageSize caps max_results per request; Search pages through
	// larger result sets (defaults to DefaultPageSize)
	PageSize int

	retryAttempts uint
	retryDelay    time.Duration
}

// NewClient creates a client with default settings.
func NewClient() *Client {
	return &Client{
		BaseURL:       DefaultBaseURL,
		UserAgent:     "paperbot/1.0",
		HTTPClient:    &http.Client{Timeout: defaultTimeout},
		PageSize:      DefaultPageSize,
		retryAttempts: DefaultRetryAttempts,
		retryDelay:    DefaultRetryDelay,
	}
}

// NewClientWithRetry creates a client with custom retry behavior.
// Used by tests to avoid multi-second delays.
func NewClientWithRetry(attempts uint, delay time.Duration) *Client {
	c := NewClient()
	c.retryAttempts = attempts
	c.retryDelay = delay
	return c
}

// Search runs a query against the API, paging through the result set
// until MaxResults entries are collected or the feed is exhausted.
// Successive page requests are spaced out by the client's delay, and
// transient failures (network errors, HTTP 429 and 5xx) are retried;
// other HTTP errors fail immediately.
func (c *Client) Search(ctx context.Context, q Query) (*Result, error) {
	if q.SearchQuery == "" {
		return nil, ErrEmptyQuery
	}

	pageSize := c.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if q.MaxResults > 0 && q.MaxResults < pageSize {
		pageSize = q.MaxResults
	}

	result := &Result{}
	start := q.Start
	for {
		page := q
		page.Start = start
		page.MaxResults = pageSize

		parsed, err := c.searchPage(ctx, page)
		if err != nil {
			return nil, err
		}

		result.TotalResults = parsed.TotalResults
		result.Entries = append(result.Entries, parsed.Entries...)

		// An empty page means the feed is exhausted even when
		// totalResults claims otherwise.
		if len(parsed.Entries) == 0 {
			break
		}
		start += len(parsed.Entries)

		if q.MaxResults > 0 && len(result.Entries) >= q.MaxResults {
			break
		}
		if start >= parsed.TotalResults {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.retryDelay):
		}
	}

	if q.MaxResults > 0 && len(result.Entries) > q.MaxResults {
		result.Entries = result.Entries[:q.MaxResults]
	}
	return result, nil
}

// searchPage fetches and parses a single page of results.
func (c *Client) searchPage(ctx context.Context, q Query) (*Result, error) {
	reqURL, err := c.buildURL(q)
	if err != nil {
		return nil, err
	}

	var result *Result
	err = retry.Do(
		func() error {
			body, err := c.fetch(ctx, reqURL)
			if err != nil {
				return err
			}
			parsed, err := parseFeed(body)
			if err != nil {
				// A malformed feed won't improve on retry
				return retry.Unrecoverable(err)
			}
			result = parsed
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.retryAttempts),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("arxiv search failed: %w", err)
	}

	return result, nil
}

func (c *Client) buildURL(q Query) (string, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid arxiv base URL: %w", err)
	}

	params := url.Values{}
	params.Set("search_query", q.SearchQuery)
	params.Set("start", strconv.Itoa(q.Start))
	if q.MaxResults > 0 {
		params.Set("max_results", strconv.Itoa(q.MaxResults))
	}
	params.Set("sortBy", q.SortBy.String())
	params.Set("sortOrder", q.SortOrder.String())

	u.RawQuery = params.Encode()
	return u.String(), nil
}

func (c *Client) fetch(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, retry.Unrecoverable(err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to read the body
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("arxiv API returned %d", resp.StatusCode)
	default:
		return nil, retry.Unrecoverable(fmt.Errorf("arxiv API returned %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return body, nil
}
