package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/drinkshop/internal/domain/errors"
	"github.com/polkiloo/drinkshop/internal/domain/repository"
)

// ErrDecode marks a response body that could not be decoded.
var ErrDecode = fmt.Errorf("%w: decode airtable response", domainErrors.ErrBackendFailure)

// ErrEmptyDelete is returned when a delete answers 200 without a body.
var ErrEmptyDelete = fmt.Errorf("%w: airtable delete returned empty body", domainErrors.ErrBackendFailure)

// StatusError carries a non-success response from Airtable.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("airtable error: status %d", e.Code)
}

func (e *StatusError) Unwrap() error {
	return domainErrors.ErrBackendFailure
}

// TooManyRequestsError represents rate limiting signal from Airtable.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

func (e TooManyRequestsError) Unwrap() error {
	return domainErrors.ErrBackendFailure
}

// Options configures the HTTP client.
type Options struct {
	BaseURL    string
	BaseID     string
	APIKey     string
	DrinkTable string
	OrderTable string
	Timeout    time.Duration
}

// HTTPClient talks to the Airtable REST API and serves as the remote repository factory.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	drinkTable string
	orderTable string
	httpClient *http.Client
	logger     *slog.Logger
}

type catalogRepository struct {
	client *HTTPClient
}

type orderRepository struct {
	client *HTTPClient
}

// NewHTTPClient creates Airtable client bound to one base.
func NewHTTPClient(opts Options, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse airtable url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("airtable url must be absolute")
	}
	if opts.BaseID == "" {
		return nil, fmt.Errorf("airtable base id must not be empty")
	}
	parsed.Path = path.Join(parsed.Path, opts.BaseID)

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &HTTPClient{
		baseURL:    parsed,
		apiKey:     opts.APIKey,
		drinkTable: opts.DrinkTable,
		orderTable: opts.OrderTable,
		logger:     logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func (c *HTTPClient) Catalog() repository.CatalogRepository {
	return &catalogRepository{client: c}
}

func (c *HTTPClient) Orders() repository.OrderRepository {
	return &orderRepository{client: c}
}

// request describes one call against a table.
type request struct {
	method string
	table  string
	id     string
	query  url.Values
	body   any
}

func (c *HTTPClient) do(ctx context.Context, r request) ([]byte, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, r.table, r.id)
	if len(r.query) > 0 {
		endpoint.RawQuery = r.query.Encode()
	}

	var payload io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode airtable request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint.String(), payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observe(r.method, r.table, "error", started)
		c.logger.Error("airtable request failed",
			slog.String("method", r.method),
			slog.String("table", r.table),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: airtable request: %w", domainErrors.ErrBackendFailure, err)
	}
	defer resp.Body.Close()
	observe(r.method, r.table, strconv.Itoa(resp.StatusCode), started)

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: read airtable response: %w", domainErrors.ErrBackendFailure, err)
		}
		return body, nil
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		c.logger.Warn("airtable rate limited",
			slog.String("method", r.method),
			slog.String("table", r.table),
			slog.Duration("retry_after", retryAfter),
		)
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("airtable request rejected",
			slog.String("method", r.method),
			slog.String("table", r.table),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}
}

// listAll follows Airtable offsets until every page of the table is read.
func listAll[T any](ctx context.Context, c *HTTPClient, table string, query url.Values) ([]T, error) {
	var (
		records []T
		offset  string
	)
	for {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		if offset != "" {
			q.Set("offset", offset)
		}

		body, err := c.do(ctx, request{method: http.MethodGet, table: table, query: q})
		if err != nil {
			return nil, err
		}

		var page listResponse[T]
		if err := json.Unmarshal(body, &page); err != nil {
			c.logger.Error("airtable decode failed", slog.String("table", table), slog.String("error", err.Error()))
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		records = append(records, page.Records...)

		if page.Offset == "" {
			return records, nil
		}
		offset = page.Offset
	}
}

func decodeRecords(body []byte) ([]orderRecord, error) {
	var resp writeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(resp.Records) == 0 {
		return nil, fmt.Errorf("%w: no records in response", ErrDecode)
	}
	return resp.Records, nil
}

// ownerFormula filters order rows by the orderName column.
func ownerFormula(owner string) string {
	escaped := strings.ReplaceAll(owner, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `'`, `\'`)
	return "{orderName}='" + escaped + "'"
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 30 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 30 * time.Second
}
