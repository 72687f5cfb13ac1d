package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNoPendingRefunds indicates the gateway has no unacknowledged refunds.
var ErrNoPendingRefunds = errors.New("no pending refunds")

// TooManyRequestsError represents rate limiting signal from the gateway.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// RefundEvent is a gateway-reported refund awaiting reconciliation. Amount
// is denominated in the settlement currency.
type RefundEvent struct {
	RefundID  string
	OrderID   string
	Amount    decimal.Decimal
	IsPartial bool
}

// Client exposes operations to query the payment gateway refund feed.
type Client interface {
	PendingRefunds(ctx context.Context, limit int) ([]RefundEvent, error)
	Ack(ctx context.Context, refundID string) error
}

// HTTPClient implements Client via HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// refundResponse mirrors JSON payload from the gateway refund feed.
type refundResponse struct {
	RefundID string `json:"refund_id"`
	OrderID  string `json:"order_id"`
	Amount   string `json:"amount"`
	Partial  bool   `json:"partial"`
}

// NewHTTPClient creates HTTP gateway client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// PendingRefunds fetches a batch of unacknowledged refund events.
func (c *HTTPClient) PendingRefunds(ctx context.Context, limit int) ([]RefundEvent, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/refunds/pending")
	query := endpoint.Query()
	query.Set("limit", strconv.Itoa(limit))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data []refundResponse
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}
		events := make([]RefundEvent, 0, len(data))
		for _, item := range data {
			amount, err := decimal.NewFromString(item.Amount)
			if err != nil {
				return nil, fmt.Errorf("parse refund amount %q: %w", item.Amount, err)
			}
			events = append(events, RefundEvent{
				RefundID:  item.RefundID,
				OrderID:   item.OrderID,
				Amount:    amount,
				IsPartial: item.Partial,
			})
		}
		return events, nil
	case http.StatusNoContent:
		return nil, ErrNoPendingRefunds
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("gateway error: %s", resp.Status)
	}
}

// Ack marks a refund event as reconciled so it leaves the pending feed.
func (c *HTTPClient) Ack(ctx context.Context, refundID string) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/refunds/", refundID, "/ack")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(nil))
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway ack failed", slog.String("refund", refundID), slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return fmt.Errorf("gateway ack error: %s", resp.Status)
	}
	return nil
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
