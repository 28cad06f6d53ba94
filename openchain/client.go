// Package openchain talks to the openchain/sourcify signature-database REST API.
package openchain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"signature-explorer/models"
)

const DefaultBaseURL = "https://api.openchain.xyz"

const (
	searchPath = "/signature-database/v1/search"
	lookupPath = "/signature-database/v1/lookup"
	statsPath  = "/signature-database/v1/stats"
	importPath = "/signature-database/v1/import"
)

// maxResponseBytes bounds how much of an upstream body is read.
var maxResponseBytes int64 = 32 << 20

var upstreamRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "signature_explorer",
		Subsystem: "upstream",
		Name:      "requests_total",
		Help:      "Requests sent to the signature database API",
	},
	[]string{"endpoint", "status"},
)

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch from upstream API: %s returned status %d", e.Endpoint, e.StatusCode)
}

// APIError is an {"ok": false, "error": "..."} reply.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "upstream request failed"
	}
	return e.Message
}

// RawResponse is an upstream reply kept byte for byte for the pass-through proxies.
type RawResponse struct {
	StatusCode int
	Body       []byte
}

func (r *RawResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// LookupParams selects what the lookup endpoint is asked for. Filter is sent only
// when set; false asks for flagged entries to be returned annotated.
type LookupParams struct {
	Function string
	Event    string
	Filter   *bool
}

func (p LookupParams) values() url.Values {
	v := url.Values{}
	if p.Function != "" {
		v.Set("function", p.Function)
	}
	if p.Event != "" {
		v.Set("event", p.Event)
	}
	if p.Filter != nil {
		v.Set("filter", strconv.FormatBool(*p.Filter))
	}
	return v
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) SearchRaw(ctx context.Context, term string) (*RawResponse, error) {
	return c.do(ctx, "search", http.MethodGet, searchPath, url.Values{"query": {term}}, nil)
}

func (c *Client) LookupRaw(ctx context.Context, params LookupParams) (*RawResponse, error) {
	return c.do(ctx, "lookup", http.MethodGet, lookupPath, params.values(), nil)
}

func (c *Client) StatsRaw(ctx context.Context) (*RawResponse, error) {
	return c.do(ctx, "stats", http.MethodGet, statsPath, nil, nil)
}

func (c *Client) Search(ctx context.Context, term string) (*models.LookupResult, error) {
	raw, err := c.SearchRaw(ctx, term)
	if err != nil {
		return nil, err
	}
	return decodeLookup("search", raw)
}

func (c *Client) Lookup(ctx context.Context, params LookupParams) (*models.LookupResult, error) {
	raw, err := c.LookupRaw(ctx, params)
	if err != nil {
		return nil, err
	}
	return decodeLookup("lookup", raw)
}

// LookupHash asks for hex as both a function selector and an event topic in one
// call and lets the server answer with whichever category matches.
func (c *Client) LookupHash(ctx context.Context, hex string, filter *bool) (*models.LookupResult, error) {
	return c.Lookup(ctx, LookupParams{Function: hex, Event: hex, Filter: filter})
}

func (c *Client) Stats(ctx context.Context) (*models.Stats, error) {
	raw, err := c.StatsRaw(ctx)
	if err != nil {
		return nil, err
	}
	return DecodeStats(raw)
}

// DecodeStats decodes a stats reply, also used for bodies served from cache.
func DecodeStats(raw *RawResponse) (*models.Stats, error) {
	if !raw.OK() {
		return nil, &StatusError{Endpoint: "stats", StatusCode: raw.StatusCode}
	}
	var resp models.StatsResponse
	if err := json.Unmarshal(raw.Body, &resp); err != nil {
		return nil, fmt.Errorf("decode stats response: %w", err)
	}
	if !resp.Ok {
		return nil, &APIError{StatusCode: raw.StatusCode, Message: resp.Error}
	}
	return &resp.Result, nil
}

// Import submits signatures. A non-2xx reply carrying an error message is
// reported as an APIError so the message can be shown to the user.
func (c *Client) Import(ctx context.Context, req models.ImportRequest) (*models.ImportResult, error) {
	raw, err := c.do(ctx, "import", http.MethodPost, importPath, nil, req)
	if err != nil {
		return nil, err
	}

	var resp models.ImportResponse
	decodeErr := json.Unmarshal(raw.Body, &resp)
	if !raw.OK() {
		if decodeErr == nil && resp.Error != "" {
			return nil, &APIError{StatusCode: raw.StatusCode, Message: resp.Error}
		}
		return nil, &StatusError{Endpoint: "import", StatusCode: raw.StatusCode}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode import response: %w", decodeErr)
	}
	if !resp.Ok {
		return nil, &APIError{StatusCode: raw.StatusCode, Message: resp.Error}
	}
	return &resp.Result, nil
}

func decodeLookup(endpoint string, raw *RawResponse) (*models.LookupResult, error) {
	if !raw.OK() {
		return nil, &StatusError{Endpoint: endpoint, StatusCode: raw.StatusCode}
	}
	var resp models.LookupResponse
	if err := json.Unmarshal(raw.Body, &resp); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	if !resp.Ok {
		return nil, &APIError{StatusCode: raw.StatusCode, Message: resp.Error}
	}
	return &resp.Result, nil
}

func (c *Client) do(ctx context.Context, endpoint, method, path string, query url.Values, body any) (*RawResponse, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", endpoint, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		upstreamRequests.WithLabelValues(endpoint, "error").Inc()
		c.logger.Warn("upstream request failed",
			zap.String("endpoint", endpoint),
			zap.String("url", target),
			zap.Error(err))
		return nil, fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		upstreamRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}
	if int64(len(data)) > maxResponseBytes {
		upstreamRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("read %s response: body exceeds %d bytes", endpoint, maxResponseBytes)
	}

	upstreamRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	c.logger.Debug("upstream request",
		zap.String("endpoint", endpoint),
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(data)))

	return &RawResponse{StatusCode: resp.StatusCode, Body: data}, nil
}
