// Package ecb fetches daily euro foreign exchange reference rates from the
// European Central Bank statistical data API.
package ecb

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

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/core/ports/providers"
	"github.com/shopspring/decimal"
)

const (
	// DefaultBaseURL is the EXR dataflow of the ECB data API.
	DefaultBaseURL = "https://data-api.ecb.europa.eu/service/data/EXR"

	DefaultSingleTimeout = 10 * time.Second
	DefaultRangeTimeout  = 30 * time.Second

	// maxBodyBytes bounds how much of a response is read.
	maxBodyBytes = 4 << 20
)

// Config holds the tunables of the ECB client.
type Config struct {
	BaseURL        string
	TargetCurrency string
	SingleTimeout  time.Duration
	RangeTimeout   time.Duration
}

// Client implements providers.RateProvider against the ECB API.
type Client struct {
	httpClient *http.Client
	cfg        Config
	logger     *slog.Logger
}

var _ providers.RateProvider = (*Client)(nil)

// NewClient creates a Client. Zero config fields fall back to the defaults;
// a nil httpClient uses a fresh http.Client.
func NewClient(cfg Config, httpClient *http.Client, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.TargetCurrency == "" {
		cfg.TargetCurrency = domain.DefaultTargetCurrency
	}
	if cfg.SingleTimeout <= 0 {
		cfg.SingleTimeout = DefaultSingleTimeout
	}
	if cfg.RangeTimeout <= 0 {
		cfg.RangeTimeout = DefaultRangeTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{httpClient: httpClient, cfg: cfg, logger: logger}
}

// FetchRate returns the rate published for exactly date. Only the first data
// row of the response is considered.
func (c *Client) FetchRate(ctx context.Context, currency string, date time.Time) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.SingleTimeout)
	defer cancel()

	body, err := c.get(ctx, c.seriesURL(currency, date, date))
	if err != nil {
		return decimal.Zero, err
	}
	obs, err := parseObservations(strings.NewReader(body))
	if err != nil {
		return decimal.Zero, err
	}
	if len(obs) == 0 {
		return decimal.Zero, providers.ErrRateUnavailable
	}
	first := obs[0]
	if !first.valid() {
		return decimal.Zero, fmt.Errorf("%w: unusable value %q", providers.ErrRateUnavailable, first.rawValue)
	}
	return first.value, nil
}

// FetchRange returns every valid rate published in [start, end].
// Rows with unusable values or dates are skipped; a repeated date keeps the last row.
func (c *Client) FetchRange(ctx context.Context, currency string, start, end time.Time) (map[time.Time]decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.RangeTimeout)
	defer cancel()

	body, err := c.get(ctx, c.seriesURL(currency, start, end))
	if errors.Is(err, providers.ErrRateUnavailable) {
		return map[time.Time]decimal.Decimal{}, nil
	}
	if err != nil {
		return nil, err
	}
	obs, err := parseObservations(strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	rates := make(map[time.Time]decimal.Decimal, len(obs))
	for _, o := range obs {
		if !o.valid() || o.date.IsZero() {
			c.logger.Debug("Skipping unusable ECB observation",
				slog.String("currency", currency),
				slog.String("period", o.rawDate),
				slog.String("value", o.rawValue))
			continue
		}
		rates[o.date] = o.value
	}
	return rates, nil
}

func (c *Client) seriesURL(currency string, start, end time.Time) string {
	q := url.Values{}
	q.Set("startPeriod", domain.FormatDate(start))
	q.Set("endPeriod", domain.FormatDate(end))
	q.Set("format", "csvdata")
	return fmt.Sprintf("%s/D.%s.%s.SP00.A?%s",
		strings.TrimRight(c.cfg.BaseURL, "/"),
		url.PathEscape(strings.ToUpper(currency)),
		url.PathEscape(c.cfg.TargetCurrency),
		q.Encode())
}

func (c *Client) get(ctx context.Context, reqURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build ECB request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ECB request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read ECB response: %w", err)
	}
	// The data API answers 404 when no observation matches the period,
	// which is how closed-market days look.
	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: ECB responded with status %d", providers.ErrRateUnavailable, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("ECB responded with status %d", resp.StatusCode)
	}
	return string(body), nil
}
