package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/abelbrown/newsdeck/internal/logging"
	"github.com/abelbrown/newsdeck/internal/model"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

// Compile-time interface satisfaction check
var _ Source = (*Client)(nil)

// Client queries the JSON news API.
type Client struct {
	baseURL  string
	pageSize int
	client   *http.Client
}

// NewClient creates a Client for the API rooted at baseURL.
func NewClient(baseURL string, pageSize int, client *http.Client) *Client {
	if pageSize <= 0 {
		pageSize = 10
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		pageSize: pageSize,
		client:   client,
	}
}

// envelope is the paginated wrapper the list endpoints return. Entries are
// decoded one by one so a single bad entry does not sink the page.
type envelope struct {
	Docs []json.RawMessage `json:"docs"`
}

// ListPortals returns the first page of portals, or nil on any failure.
func (c *Client) ListPortals(ctx context.Context) []model.Portal {
	endpoint := c.baseURL + "/portals?page=1"

	var env envelope
	if err := c.getJSON(ctx, endpoint, &env); err != nil {
		logging.Warn("list portals failed", "endpoint", endpoint, "err", err)
		return nil
	}

	portals := make([]model.Portal, 0, len(env.Docs))
	for _, raw := range env.Docs {
		var p model.Portal
		if err := json.Unmarshal(raw, &p); err != nil || p.ID == "" {
			logging.Debug("skipping malformed portal", "err", err)
			continue
		}
		portals = append(portals, p)
	}
	return portals
}

// ListArticles returns the first page of a portal's articles, or nil on any failure.
func (c *Client) ListArticles(ctx context.Context, portalID string) []model.Article {
	if portalID == "" {
		return nil
	}

	q := url.Values{}
	q.Set("page", "1")
	q.Set("limit", strconv.Itoa(c.pageSize))
	q.Set("portalId", portalID)
	endpoint := c.baseURL + "/posts?" + q.Encode()

	var env envelope
	if err := c.getJSON(ctx, endpoint, &env); err != nil {
		logging.Warn("list articles failed", "portal", portalID, "err", err)
		return nil
	}

	articles := make([]model.Article, 0, len(env.Docs))
	for _, raw := range env.Docs {
		var a model.Article
		if err := json.Unmarshal(raw, &a); err != nil || a.ID == "" {
			logging.Debug("skipping malformed article", "portal", portalID, "err", err)
			continue
		}
		articles = append(articles, a)
	}
	return articles
}

// GetArticle fetches one article by id. Returns false on any failure.
func (c *Client) GetArticle(ctx context.Context, articleID string) (model.Article, bool) {
	if articleID == "" {
		return model.Article{}, false
	}

	endpoint := c.baseURL + "/posts/" + url.PathEscape(articleID)

	var a model.Article
	if err := c.getJSON(ctx, endpoint, &a); err != nil {
		logging.Warn("get article failed", "article", articleID, "err", err)
		return model.Article{}, false
	}
	if a.ID == "" {
		logging.Warn("get article failed", "article", articleID, "err", "response has no id")
		return model.Article{}, false
	}
	return a, true
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("HTTP error: %s", resp.Status)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
