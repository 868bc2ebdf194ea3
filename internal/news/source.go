// Package news fetches portals and articles from the news API and from
// RSS/Atom feeds.
//
// Every Source method degrades instead of failing: a transport error, a
// non-2xx status, or an unparseable body yields an empty list or (zero, false).
// The cause is logged; callers only see "nothing".
package news

import (
	"context"

	"github.com/abelbrown/newsdeck/internal/model"
)

// Source is the read-only content contract the UI depends on.
type Source interface {
	ListPortals(ctx context.Context) []model.Portal
	ListArticles(ctx context.Context, portalID string) []model.Article
	GetArticle(ctx context.Context, articleID string) (model.Article, bool)
}
