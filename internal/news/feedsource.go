package news

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/abelbrown/newsdeck/internal/logging"
	"github.com/abelbrown/newsdeck/internal/model"
	"github.com/mmcdole/gofeed"
)

// FeedPrefix marks portal and article ids owned by a FeedSource.
const FeedPrefix = "feed:"

// Compile-time interface satisfaction check
var _ Source = (*FeedSource)(nil)

// Feed is an RSS/Atom feed presented as a portal.
type Feed struct {
	ID   string // bare id; the portal id is FeedPrefix + ID
	Name string
	URL  string
}

// FeedSource serves configured RSS/Atom feeds through the Source contract.
// Portal ids look like "feed:<id>", article ids like "feed:<id>:<hash>".
type FeedSource struct {
	feeds    []Feed
	pageSize int
	client   *http.Client
}

// NewFeedSource creates a FeedSource over the given feeds.
func NewFeedSource(feeds []Feed, pageSize int, client *http.Client) *FeedSource {
	if pageSize <= 0 {
		pageSize = 10
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &FeedSource{
		feeds:    append([]Feed(nil), feeds...),
		pageSize: pageSize,
		client:   client,
	}
}

// ListPortals returns one portal per configured feed. No I/O.
func (s *FeedSource) ListPortals(ctx context.Context) []model.Portal {
	portals := make([]model.Portal, 0, len(s.feeds))
	for _, f := range s.feeds {
		name := f.Name
		if name == "" {
			name = f.ID
		}
		portals = append(portals, model.Portal{ID: FeedPrefix + f.ID, Name: name})
	}
	return portals
}

// ListArticles fetches and converts the feed behind portalID.
func (s *FeedSource) ListArticles(ctx context.Context, portalID string) []model.Article {
	f, ok := s.lookup(strings.TrimPrefix(portalID, FeedPrefix))
	if !ok {
		return nil
	}

	items, err := s.fetch(ctx, f)
	if err != nil {
		logging.Warn("feed fetch failed", "feed", f.ID, "url", f.URL, "err", err)
		return nil
	}

	if len(items) > s.pageSize {
		items = items[:s.pageSize]
	}
	articles := make([]model.Article, 0, len(items))
	for _, item := range items {
		articles = append(articles, convertFeedItem(f, item))
	}
	return articles
}

// GetArticle re-fetches the owning feed and returns the matching item.
func (s *FeedSource) GetArticle(ctx context.Context, articleID string) (model.Article, bool) {
	feedID, _, ok := splitArticleID(articleID)
	if !ok {
		return model.Article{}, false
	}
	f, ok := s.lookup(feedID)
	if !ok {
		return model.Article{}, false
	}

	items, err := s.fetch(ctx, f)
	if err != nil {
		logging.Warn("feed fetch failed", "feed", f.ID, "url", f.URL, "err", err)
		return model.Article{}, false
	}
	for _, item := range items {
		if a := convertFeedItem(f, item); a.ID == articleID {
			return a, true
		}
	}
	return model.Article{}, false
}

func (s *FeedSource) lookup(id string) (Feed, bool) {
	if id == "" {
		return Feed{}, false
	}
	for _, f := range s.feeds {
		if f.ID == id {
			return f, true
		}
	}
	return Feed{}, false
}

func (s *FeedSource) fetch(ctx context.Context, f Feed) ([]*gofeed.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	parsed, err := gofeed.NewParser().Parse(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	return parsed.Items, nil
}

// convertFeedItem maps a feed entry onto the article shape: an optional
// picture block followed by one markup block.
func convertFeedItem(f Feed, item *gofeed.Item) model.Article {
	a := model.Article{
		ID:    FeedPrefix + f.ID + ":" + itemHash(item),
		Title: item.Title,
	}

	var files []model.PictureFile
	if item.Image != nil && item.Image.URL != "" {
		files = append(files, model.PictureFile{URL: item.Image.URL, Caption: item.Image.Title})
	}
	for _, enc := range item.Enclosures {
		if enc == nil || enc.URL == "" || !strings.HasPrefix(enc.Type, "image/") {
			continue
		}
		if len(files) > 0 && files[0].URL == enc.URL {
			continue
		}
		files = append(files, model.PictureFile{URL: enc.URL})
	}
	if len(files) > 0 {
		a.Content = append(a.Content, model.Block{Type: model.TypePictures, Files: files})
	}

	body := item.Content
	if body == "" {
		body = item.Description
	}
	if body != "" {
		a.Content = append(a.Content, model.Block{Type: model.TypeMarkup, Data: body})
	}
	return a
}

// itemHash is a deterministic id: GUID, else link, else title.
func itemHash(item *gofeed.Item) string {
	key := item.GUID
	if key == "" {
		key = item.Link
	}
	if key == "" {
		key = item.Title
	}
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:8])
}

// splitArticleID parses "feed:<feedID>:<hash>".
func splitArticleID(id string) (feedID, hash string, ok bool) {
	rest, found := strings.CutPrefix(id, FeedPrefix)
	if !found {
		return "", "", false
	}
	i := strings.LastIndex(rest, ":")
	if i <= 0 || i == len(rest)-1 {
		return "", "", false
	}
	return rest[:i], rest[i+1:], true
}
