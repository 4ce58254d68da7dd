package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"rates-service/internal/config"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/tidwall/gjson"
)

var (
	ErrMalformedResponse = errors.New("malformed upstream response")
	ErrUpstreamStatus    = errors.New("unexpected upstream status")
)

type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned %d: %s", e.URL, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrUpstreamStatus
}

// Client talks to every upstream: the rate APIs and the two invoice gateways.
type Client struct {
	http           *http.Client
	urls           config.Upstreams
	coinTextKey    string
	nimiqTextToken string
}

func NewClient(cfg *config.Config) *Client {
	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = cfg.HTTPTimeout
	return &Client{
		http:           httpClient,
		urls:           cfg.Upstreams,
		coinTextKey:    cfg.CoinTextAPIKey,
		nimiqTextToken: cfg.NimiqTextToken,
	}
}

func (c *Client) getJSON(ctx context.Context, url string) (gjson.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return gjson.Result{}, err
	}
	req.Header.Set("Accept", "application/json")
	return c.doJSON(req)
}

func (c *Client) postJSON(ctx context.Context, url, contentType string, body []byte) (gjson.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return gjson.Result{}, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	return c.doJSON(req)
}

func (c *Client) doJSON(req *http.Request) (gjson.Result, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return gjson.Result{}, &StatusError{
			URL:        req.URL.Redacted(),
			StatusCode: resp.StatusCode,
			Body:       snippet(body),
		}
	}

	if len(bytes.TrimSpace(body)) == 0 || !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("%w: invalid JSON from %s", ErrMalformedResponse, req.URL.Host)
	}
	return gjson.ParseBytes(body), nil
}

// number reads a JSON number, or a string holding one.
func number(r gjson.Result) (float64, bool) {
	switch r.Type {
	case gjson.Number:
		return r.Float(), true
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(r.Str), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func snippet(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
