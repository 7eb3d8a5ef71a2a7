package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

// DefaultBaseURL is the Airtable REST API root.
const DefaultBaseURL = "https://api.airtable.com/v0"

const (
	defaultRetryAttempts = 3
	defaultRetryDelay    = time.Second
	defaultTimeout       = 15 * time.Second
)

// ErrMissingCredentials is returned when the AIRTABLE_* environment
// variables are not all set.
var ErrMissingCredentials = errors.New("airtable: AIRTABLE_TOKEN, AIRTABLE_BASE_ID and AIRTABLE_TABLE_NAME must all be set")

// Client mirrors paper records into an Airtable table.
type Client struct {
	// BaseURL is the API root (defaults to DefaultBaseURL)
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	token     string
	baseID    string
	tableName string

	retryAttempts uint
	retryDelay    time.Duration
}

// Record is one Airtable record.
type Record struct {
	ID     string         `json:"id,omitempty"`
	Fields map[string]any `json:"fields"`
}

type recordList struct {
	Records []Record `json:"records"`
}

// NewClient creates a client for one base and table.
func NewClient(token, baseID, tableName string) (*Client, error) {
	if token == "" || baseID == "" || tableName == "" {
		return nil, ErrMissingCredentials
	}
	return &Client{
		BaseURL:       DefaultBaseURL,
		HTTPClient:    &http.Client{Timeout: defaultTimeout},
		token:         token,
		baseID:        baseID,
		tableName:     tableName,
		retryAttempts: defaultRetryAttempts,
		retryDelay:    defaultRetryDelay,
	}, nil
}

// NewClientFromEnv creates a client from AIRTABLE_TOKEN,
// AIRTABLE_BASE_ID and AIRTABLE_TABLE_NAME.
// Returns ErrMissingCredentials if any of them is unset.
func NewClientFromEnv() (*Client, error) {
	return NewClient(
		os.Getenv("AIRTABLE_TOKEN"),
		os.Getenv("AIRTABLE_BASE_ID"),
		os.Getenv("AIRTABLE_TABLE_NAME"),
	)
}

// SetRetry overrides the retry behavior. Used by tests to avoid delays.
func (c *Client) SetRetry(attempts uint, delay time.Duration) {
	c.retryAttempts = attempts
	c.retryDelay = delay
}

// CreateRecord inserts one record with the given fields.
func (c *Client) CreateRecord(ctx context.Context, fields map[string]any) (*Record, error) {
	payload, err := json.Marshal(Record{Fields: fields})
	if err != nil {
		return nil, fmt.Errorf("airtable: failed to encode record: %w", err)
	}

	var created Record
	err = c.doWithRetry(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tableURL(), bytes.NewReader(payload))
		if err != nil {
			return retry.Unrecoverable(err)
		}
		req.Header.Set("Content-Type", "application/json")

		body, err := c.send(req)
		if err != nil {
			return err
		}
		return json.Unmarshal(body, &created)
	})
	if err != nil {
		return nil, fmt.Errorf("airtable: create record failed: %w", err)
	}
	return &created, nil
}

// RecordExists reports whether any record has the given value in the
// given field. Field names with spaces are fine; values are compared
// exactly.
func (c *Client) RecordExists(ctx context.Context, field, value string) (bool, error) {
	formula := fmt.Sprintf(`{%s}="%s"`, field, escapeFormulaValue(value))

	params := url.Values{}
	params.Set("filterByFormula", formula)
	params.Set("maxRecords", "1")
	reqURL := c.tableURL() + "?" + params.Encode()

	var list recordList
	err := c.doWithRetry(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return retry.Unrecoverable(err)
		}

		body, err := c.send(req)
		if err != nil {
			return err
		}
		return json.Unmarshal(body, &list)
	})
	if err != nil {
		return false, fmt.Errorf("airtable: existence check failed: %w", err)
	}
	return len(list.Records) > 0, nil
}

func (c *Client) doWithRetry(ctx context.Context, fn func(context.Context) error) error {
	return retry.Do(
		func() error { return fn(ctx) },
		retry.Context(ctx),
		retry.Attempts(c.retryAttempts),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
}

func (c *Client) send(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+c.token)

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("airtable API returned %d", resp.StatusCode)
	default:
		return nil, retry.Unrecoverable(fmt.Errorf("airtable API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}
}

func (c *Client) tableURL() string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return fmt.Sprintf("%s/%s/%s", base, url.PathEscape(c.baseID), url.PathEscape(c.tableName))
}

// escapeFormulaValue escapes double quotes for use inside a
// filterByFormula string literal.
func escapeFormulaValue(value string) string {
	return strings.ReplaceAll(value, `"`, `\"`)
}
