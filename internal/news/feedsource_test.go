package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const testRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <item>
      <title>Article 1</title>
      <link>http://example.com/article1</link>
      <guid>guid-1</guid>
      <description>&lt;p&gt;First article&lt;/p&gt;</description>
      <enclosure url="http://example.com/1.jpg" type="image/jpeg" length="100"/>
    </item>
    <item>
      <title>Article 2</title>
      <link>http://example.com/article2</link>
      <description>Second article</description>
      <enclosure url="http://example.com/2.mp3" type="audio/mpeg" length="100"/>
    </item>
    <item>
      <title>Article 3</title>
      <link>http://example.com/article3</link>
    </item>
  </channel>
</rss>`

func newFeedServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFeedSourcePortals(t *testing.T) {
	src := NewFeedSource([]Feed{{ID: "hn", Name: "Hacker News", URL: "http://x"}, {ID: "lob", URL: "http://y"}}, 10, nil)

	portals := src.ListPortals(context.Background())
	if len(portals) != 2 {
		t.Fatalf("expected 2 portals, got %d", len(portals))
	}
	if portals[0].ID != "feed:hn" || portals[0].Name != "Hacker News" {
		t.Errorf("unexpected portal %+v", portals[0])
	}
	if portals[1].Name != "lob" {
		t.Errorf("name should fall back to id, got %q", portals[1].Name)
	}
}

func TestFeedSourceListArticles(t *testing.T) {
	server := newFeedServer(t, testRSS, http.StatusOK)
	src := NewFeedSource([]Feed{{ID: "test", Name: "Test", URL: server.URL}}, 2, server.Client())

	articles := src.ListArticles(context.Background(), "feed:test")
	if len(articles) != 2 {
		t.Fatalf("expected page size 2, got %d", len(articles))
	}

	first := articles[0]
	if first.Title != "Article 1" {
		t.Errorf("expected Article 1, got %q", first.Title)
	}
	if !strings.HasPrefix(first.ID, "feed:test:") {
		t.Errorf("unexpected id %q", first.ID)
	}
	pic, ok := first.FirstPicture()
	if !ok || pic.URL != "http://example.com/1.jpg" {
		t.Errorf("expected image enclosure, got %+v", pic)
	}
	if first.MarkupText() != "<p>First article</p>" {
		t.Errorf("unexpected markup %q", first.MarkupText())
	}

	if _, ok := articles[1].FirstPicture(); ok {
		t.Error("audio enclosure must not become a picture")
	}
}

func TestFeedSourceGetArticle(t *testing.T) {
	server := newFeedServer(t, testRSS, http.StatusOK)
	src := NewFeedSource([]Feed{{ID: "test", URL: server.URL}}, 10, server.Client())

	articles := src.ListArticles(context.Background(), "feed:test")
	if len(articles) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(articles))
	}

	got, ok := src.GetArticle(context.Background(), articles[2].ID)
	if !ok {
		t.Fatal("expected article to be found")
	}
	if got.Title != "Article 3" {
		t.Errorf("expected Article 3, got %q", got.Title)
	}
	if len(got.Content) != 0 {
		t.Errorf("item without body should have no blocks, got %+v", got.Content)
	}

	if _, ok := src.GetArticle(context.Background(), "feed:test:ffffffffffffffff"); ok {
		t.Error("unknown hash should be absent")
	}
	if _, ok := src.GetArticle(context.Background(), "feed:other:abc"); ok {
		t.Error("unknown feed should be absent")
	}
	if _, ok := src.GetArticle(context.Background(), "plain-id"); ok {
		t.Error("non-feed id should be absent")
	}
}

func TestFeedSourceFailures(t *testing.T) {
	broken := newFeedServer(t, "not valid xml", http.StatusOK)
	missing := newFeedServer(t, "", http.StatusNotFound)
	src := NewFeedSource([]Feed{{ID: "broken", URL: broken.URL}, {ID: "missing", URL: missing.URL}}, 10, nil)

	if got := src.ListArticles(context.Background(), "feed:broken"); len(got) != 0 {
		t.Errorf("expected no articles for invalid XML, got %d", len(got))
	}
	if got := src.ListArticles(context.Background(), "feed:missing"); len(got) != 0 {
		t.Errorf("expected no articles for 404, got %d", len(got))
	}
	if got := src.ListArticles(context.Background(), "feed:unknown"); got != nil {
		t.Errorf("expected nil for unknown portal, got %v", got)
	}
}

func TestSplitArticleID(t *testing.T) {
	tests := []struct {
		in       string
		feed     string
		hash     string
		ok       bool
	}{
		{"feed:hn:abc", "hn", "abc", true},
		{"feed:a:b:c", "a:b", "c", true},
		{"feed:hn:", "", "", false},
		{"feed::abc", "", "", false},
		{"hn:abc", "", "", false},
	}
	for _, tt := range tests {
		feed, hash, ok := splitArticleID(tt.in)
		if feed != tt.feed || hash != tt.hash || ok != tt.ok {
			t.Errorf("splitArticleID(%q) = %q, %q, %v; want %q, %q, %v", tt.in, feed, hash, ok, tt.feed, tt.hash, tt.ok)
		}
	}
}
