package news

import (
	"context"
	"strings"

	"github.com/abelbrown/newsdeck/internal/model"
)

// Compile-time interface satisfaction check
var _ Source = (*Multi)(nil)

// Multi puts the news API and any configured feeds behind one Source.
// Ids carrying FeedPrefix go to the feed source; everything else to the API.
type Multi struct {
	api   Source // may be nil when only feeds are configured
	feeds Source // may be nil
}

// NewMulti combines an API source and a feed source. Either may be nil.
func NewMulti(api, feeds Source) *Multi {
	return &Multi{api: api, feeds: feeds}
}

// ListPortals returns the API portals followed by the feed portals.
func (m *Multi) ListPortals(ctx context.Context) []model.Portal {
	var portals []model.Portal
	if m.api != nil {
		portals = append(portals, m.api.ListPortals(ctx)...)
	}
	if m.feeds != nil {
		portals = append(portals, m.feeds.ListPortals(ctx)...)
	}
	return portals
}

// ListArticles routes by portal id.
func (m *Multi) ListArticles(ctx context.Context, portalID string) []model.Article {
	src := m.route(portalID)
	if src == nil {
		return nil
	}
	return src.ListArticles(ctx, portalID)
}

// GetArticle routes by article id.
func (m *Multi) GetArticle(ctx context.Context, articleID string) (model.Article, bool) {
	src := m.route(articleID)
	if src == nil {
		return model.Article{}, false
	}
	return src.GetArticle(ctx, articleID)
}

func (m *Multi) route(id string) Source {
	if strings.HasPrefix(id, FeedPrefix) {
		return m.feeds
	}
	return m.api
}
