package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/abelbrown/newsdeck/internal/logging"
)

// ErrEmptyResult is returned when the proxy answers 2xx without a result.
var ErrEmptyResult = errors.New("summary: empty result")

const maxResponseBytes = 1 << 20

// Request is the proxy request body.
type Request struct {
	Text string `json:"text"`
	Type Mode   `json:"type"`
}

// Response is the proxy response body. Error is set on failures.
type Response struct {
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Client posts article text to the summarization proxy.
type Client struct {
	url    string
	client *http.Client
}

// NewClient creates a client for the proxy endpoint at url.
func NewClient(url string, client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{url: url, client: client}
}

// Do asks the proxy to summarize or highlight text.
func (c *Client) Do(ctx context.Context, text string, mode Mode) (string, error) {
	body, err := json.Marshal(Request{Text: text, Type: mode})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	logging.Debug("summary request", "mode", mode, "text_len", len(text))

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var out Response
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && out.Error != "" {
			return "", fmt.Errorf("proxy error (status %d): %s", resp.StatusCode, out.Error)
		}
		return "", fmt.Errorf("proxy error (status %d)", resp.StatusCode)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("parse response: %w", decodeErr)
	}
	if out.Result == "" {
		return "", ErrEmptyResult
	}
	return out.Result, nil
}
