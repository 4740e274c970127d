// Package client talks to a running benchavg HTTP service.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/theirongolddev/benchavg/internal/model"
	"github.com/theirongolddev/benchavg/internal/server"
)

const (
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

// Client fetches averages from the benchavg service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the service at addr. A bare host:port is
// treated as http.
func NewClient(addr string) *Client {
	addr = strings.TrimRight(strings.TrimSpace(addr), "/")
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	return &Client{
		baseURL: addr,
		http:    &http.Client{},
	}
}

// FetchAverage returns the averages over every record.
func (c *Client) FetchAverage(ctx context.Context) (Averages, error) {
	return c.fetchAverages(ctx, "/results/average/")
}

// FetchAverageRange returns the averages over records within [start, end].
func (c *Client) FetchAverageRange(ctx context.Context, start, end string) (Averages, error) {
	path := fmt.Sprintf("/results/average/%s/%s/", url.PathEscape(start), url.PathEscape(end))
	return c.fetchAverages(ctx, path)
}

// FetchStatus returns the service status.
func (c *Client) FetchStatus(ctx context.Context) (server.Status, error) {
	var st server.Status
	body, _, err := c.get(ctx, "/v1/status")
	if err != nil {
		return st, err
	}
	if err := json.Unmarshal(body, &st); err != nil {
		return st, fmt.Errorf("benchavg: parsing status: %w", err)
	}
	return st, nil
}

func (c *Client) fetchAverages(ctx context.Context, path string) (Averages, error) {
	body, reqID, err := c.get(ctx, path)
	if err != nil {
		return Averages{}, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return Averages{}, fmt.Errorf("benchavg: parsing averages: %w", err)
	}
	if len(fields) == 0 {
		return Averages{Empty: true, RequestID: reqID}, nil
	}

	var stats model.AverageStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return Averages{}, fmt.Errorf("benchavg: parsing averages: %w", err)
	}
	return Averages{Stats: stats, RequestID: reqID}, nil
}

// get performs a GET request and returns the body of a JSON 2xx response.
func (c *Client) get(ctx context.Context, path string) ([]byte, string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, "", fmt.Errorf("benchavg: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "benchavg-client/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("benchavg: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	reqID := resp.Header.Get(server.RequestIDHeader)
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, reqID, fmt.Errorf("benchavg: reading response: %w", err)
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	isJSON := mediaType == "application/json"

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && isJSON {
		return body, reqID, nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode, RequestID: reqID}
	var er server.ErrorResponse
	if isJSON && json.Unmarshal(body, &er) == nil && er.Code != "" {
		apiErr.Code = er.Code
		apiErr.Message = er.Error
		return nil, reqID, apiErr
	}

	// Legacy services answer some errors with 200 and a plain-text body.
	apiErr.Message = strings.TrimSpace(string(body))
	switch apiErr.Message {
	case server.LegacyTimeFormatMessage:
		apiErr.Code = server.CodeMalformedTimestamp
	case strings.TrimSpace(server.LegacyNotFoundMessage):
		apiErr.Code = server.CodeDataNotFound
	}
	return nil, reqID, apiErr
}
