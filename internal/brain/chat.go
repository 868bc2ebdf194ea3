package brain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/abelbrown/newsdeck/internal/httpclient"
	"github.com/abelbrown/newsdeck/internal/logging"
)

var _ Provider = (*ChatProvider)(nil)

const (
	maxResponseBytes = 4 << 20
	defaultMaxTokens = 1024
)

// ErrNoContent is returned when a provider answers 200 with nothing to show.
var ErrNoContent = errors.New("no content")

// APIError is a non-200 answer from a provider.
type APIError struct {
	Provider string
	Status   int
	Body     string
}

func (e *APIError) Error() string {
	body := e.Body
	if len(body) > 512 {
		body = body[:512] + "..."
	}
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.Status, body)
}

// dialect is one vendor's wire format and auth scheme.
type dialect interface {
	needsKey() bool
	authorize(h http.Header, key string)
	encode(model string, req Request) any
	decode(body []byte) (content, model string, err error)
}

// ChatProvider sends a single prompt per call to a vendor's HTTP API.
type ChatProvider struct {
	name    string
	url     string
	model   string
	key     string
	dialect dialect
	client  *http.Client
}

// Option customises a ChatProvider.
type Option func(*ChatProvider)

// WithURL overrides the vendor endpoint.
func WithURL(url string) Option {
	return func(p *ChatProvider) { p.url = url }
}

// WithHTTPClient sets the client used for requests. Nil keeps the default.
func WithHTTPClient(c *http.Client) Option {
	return func(p *ChatProvider) {
		if c != nil {
			p.client = c
		}
	}
}

func newChatProvider(name, url, key, model string, d dialect, opts []Option) *ChatProvider {
	p := &ChatProvider{
		name:    name,
		url:     url,
		model:   model,
		key:     key,
		dialect: d,
		client:  httpclient.LongTimeout(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *ChatProvider) Name() string {
	return p.name
}

// Model is the model requests are sent to. Empty when none is configured
// or could be detected.
func (p *ChatProvider) Model() string {
	return p.model
}

func (p *ChatProvider) Available() bool {
	if p.url == "" || p.model == "" {
		return false
	}
	return !p.dialect.needsKey() || p.key != ""
}

func (p *ChatProvider) Generate(ctx context.Context, req Request) (Response, error) {
	if !p.Available() {
		return Response{}, fmt.Errorf("%s: not configured", p.name)
	}

	payload, err := json.Marshal(p.dialect.encode(p.model, req))
	if err != nil {
		return Response{}, fmt.Errorf("%s: encode request: %w", p.name, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("%s: create request: %w", p.name, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	p.dialect.authorize(httpReq.Header, p.key)

	logging.Debug("provider request", "provider", p.name, "model", p.model, "bytes", len(payload))

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("%s: request failed: %w", p.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Response{}, fmt.Errorf("%s: read response: %w", p.name, err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Provider: p.name, Status: resp.StatusCode, Body: string(body)}
		logging.Warn("provider error", "provider", p.name, "status", resp.StatusCode)
		return Response{}, apiErr
	}

	content, model, err := p.dialect.decode(body)
	if err != nil {
		return Response{}, fmt.Errorf("%s: parse response: %w", p.name, err)
	}
	if strings.TrimSpace(content) == "" {
		return Response{}, fmt.Errorf("%s: %w", p.name, ErrNoContent)
	}
	if model == "" {
		model = p.model
	}

	return Response{Content: content, Model: model, RawResponse: string(body)}, nil
}

func maxTokens(req Request) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	return defaultMaxTokens
}
