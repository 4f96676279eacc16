package compass

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"compass_sync/internal/domain"
	"compass_sync/internal/pacing"
)

const (
	SourceID = "compass"

	leaningEndpoint   = "/getPoliticalLeaning/"
	financialEndpoint = "/getFinancialContributionsOverview/"

	maxBodySize = 8 << 20
)

// Config holds Compass API client configuration.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	UserAgent      string
}

// Client issues leaning and financial lookups against the Compass API and
// returns normalized records.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	userAgent      string
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

// New creates a new Compass API client.
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "CompassSync/1.0"
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:      cfg.UserAgent,
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger.With("source", SourceID),
	}
}

// ID returns the source identifier.
func (c *Client) ID() string {
	return SourceID
}

// GetPoliticalLeaning looks up the leaning record for topic.
func (c *Client) GetPoliticalLeaning(ctx context.Context, topic string) (*domain.LeaningRecord, error) {
	body, err := c.fetch(ctx, leaningEndpoint, topic)
	if err != nil {
		return nil, err
	}
	rec, err := DecodeLeaning(topic, body)
	if err != nil {
		c.logger.Warn("failed to decode leaning response", "topic", topic, "error", err)
		return nil, err
	}
	return rec, nil
}

// GetFinancialContributions looks up the financial sub-record for topic.
func (c *Client) GetFinancialContributions(ctx context.Context, topic string) (*domain.FinancialContributionsRecord, error) {
	body, err := c.fetch(ctx, financialEndpoint, topic)
	if err != nil {
		return nil, err
	}
	rec, err := DecodeFinancial(body)
	if err != nil {
		c.logger.Warn("failed to decode financial response", "topic", topic, "error", err)
		return nil, err
	}
	return rec, nil
}

func (c *Client) fetch(ctx context.Context, endpoint, topic string) ([]byte, error) {
	target, err := url.Parse(c.baseURL + endpoint + url.PathEscape(topic))
	if err != nil || target.Scheme == "" || target.Host == "" {
		if err == nil {
			err = fmt.Errorf("base url %q is not absolute", c.baseURL)
		}
		return nil, &domain.TransportError{Kind: domain.InvalidRequest, Err: err}
	}

	var body []byte
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		body, err = c.doRequest(ctx, target.String())
		if err == nil {
			return body, nil
		}

		var te *domain.TransportError
		if !errors.As(err, &te) || !te.Temporary() || attempt == c.maxAttempts {
			break
		}

		backoff := c.calculateBackoff(attempt)
		c.logger.Warn("request failed, retrying",
			"endpoint", endpoint,
			"topic", topic,
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}

		// A retry is one more outbound request for whoever paces the batch.
		if err := pacing.Wait(ctx); err != nil {
			return nil, err
		}
	}

	return nil, err
}

func (c *Client) doRequest(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &domain.TransportError{Kind: domain.InvalidRequest, Err: err}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &domain.TransportError{Kind: domain.HTTPStatus, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, &domain.TransportError{Kind: domain.HTTPStatus, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &domain.TransportError{Kind: domain.HTTPStatus, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, &domain.TransportError{Kind: domain.NoResponseBody, StatusCode: resp.StatusCode}
	}

	return body, nil
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := c.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if c.maxBackoff > 0 && backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	return backoff
}
