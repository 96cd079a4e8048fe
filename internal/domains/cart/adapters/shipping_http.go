package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"aguacates-backend/internal/domains/cart/engine"
	"aguacates-backend/pkg/logger"
)

// LoggingRoundTripper captures request details for debugging.
type LoggingRoundTripper struct {
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
}

// RoundTrip executes the request and logs details.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	logger.Debug("HTTP Request Started", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.String(),
	})

	resp, err := lrt.Proxied.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		logger.Error("HTTP Request Failed", err)
		return nil, err
	}

	logger.Debug("HTTP Request Completed", map[string]interface{}{
		"method":      req.Method,
		"url":         req.URL.String(),
		"status_code": resp.StatusCode,
		"duration":    duration.String(),
	})

	return resp, nil
}

// HTTPQuoter calls the shipping calculator endpoint over HTTP. It returns
// the raw, untyped quote; field validation happens in the engine.
type HTTPQuoter struct {
	url    string
	client *http.Client
}

func NewHTTPQuoter(url string, timeout time.Duration) *HTTPQuoter {
	return &HTTPQuoter{
		url: url,
		client: &http.Client{
			Transport: &LoggingRoundTripper{
				Proxied: http.DefaultTransport,
			},
			Timeout: timeout,
		},
	}
}

type quoteRequest struct {
	Subtotal float64 `json:"subtotal"`
	Location string  `json:"location,omitempty"`
}

type quoteResponse struct {
	Success  bool                `json:"success"`
	Shipping *engine.RemoteQuote `json:"shipping"`
}

func (q *HTTPQuoter) Quote(ctx context.Context, subtotal decimal.Decimal, location string) (*engine.RemoteQuote, error) {
	body, err := json.Marshal(quoteRequest{
		Subtotal: subtotal.InexactFloat64(),
		Location: location,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal shipping request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, q.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build shipping request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := q.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call shipping calculator: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("shipping calculator returned status %d", resp.StatusCode)
	}

	var decoded quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode shipping response: %w", err)
	}

	if !decoded.Success || decoded.Shipping == nil {
		return nil, fmt.Errorf("shipping calculator reported failure")
	}

	return decoded.Shipping, nil
}
