package opendata

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/departure-board/internal/logging"
	"github.com/preston-bernstein/departure-board/internal/providers"
)

// Config controls how the client reaches transport.opendata.ch.
// BaseURL and HTTPClient exist for tests; production wiring leaves them empty.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     *slog.Logger
}

// Client issues the connections query and returns the raw body.
type Client struct {
	baseURL    string
	httpClient httpDoer
	logger     *slog.Logger
}

// NewClient constructs an opendata client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		logger:     cfg.Logger,
	}
}

// Name identifies the source in logs and metrics.
func (c *Client) Name() string {
	return sourceName
}

// URL returns the fully built connections query.
func (c *Client) URL() string {
	return c.baseURL + connectionsPath + "?" + query().Encode()
}

// Fetch performs one GET. Network failures and non-2xx statuses are returned as *providers.TransportError.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(), nil)
	if err != nil {
		return nil, fmt.Errorf("opendata: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	providers.LogWithSource(ctx, c.logger, slog.LevelInfo, sourceName, "sending request", slog.String("url", req.URL.String()))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &providers.TransportError{Source: sourceName, Err: err}
	}
	defer resp.Body.Close()

	providers.LogWithSource(ctx, c.logger, slog.LevelInfo, sourceName, "response received",
		slog.Int(logging.FieldStatusCode, resp.StatusCode),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &providers.TransportError{
			Source:     sourceName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &providers.TransportError{Source: sourceName, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}

func query() url.Values {
	q := url.Values{}
	q.Set("from", FromStation)
	q.Set("to", ToStation)
	q.Add("transportations[]", TransportMode)
	q.Set("limit", strconv.Itoa(ResultLimit))
	q.Add("fields[]", departureField)
	q.Add("fields[]", delayField)
	return q
}
