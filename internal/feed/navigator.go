// Package feed holds the article list a user swipes through and the
// cursor that tracks which article is showing.
//
// All gestures are discrete: a swipe or a button press moves the cursor by
// at most one position, and moves past either end are ignored.
package feed

import "github.com/abelbrown/newsdeck/internal/model"

// Event is a discrete navigation input.
type Event int

const (
	EventNone Event = iota
	EventNext
	EventPrevious
	EventSwipeLeft
	EventSwipeRight
	EventFirst
	EventLast
)

func (e Event) String() string {
	switch e {
	case EventNext:
		return "next"
	case EventPrevious:
		return "previous"
	case EventSwipeLeft:
		return "swipe-left"
	case EventSwipeRight:
		return "swipe-right"
	case EventFirst:
		return "first"
	case EventLast:
		return "last"
	default:
		return "none"
	}
}

// Navigator is an ordered article list with a clamped cursor.
// The zero value is an empty navigator.
type Navigator struct {
	articles []model.Article
	cursor   int
	valid    bool
}

// New returns a navigator loaded with articles.
func New(articles []model.Article) *Navigator {
	n := &Navigator{}
	n.Load(articles)
	return n
}

// Load replaces the list wholesale and resets the cursor to the first
// article. An empty list leaves the cursor undefined.
func (n *Navigator) Load(articles []model.Article) {
	n.articles = append([]model.Article(nil), articles...)
	n.cursor = 0
	n.valid = len(n.articles) > 0
}

// Len returns the number of loaded articles.
func (n *Navigator) Len() int {
	return len(n.articles)
}

// Cursor returns the current position, or false when the list is empty.
func (n *Navigator) Cursor() (int, bool) {
	if !n.valid {
		return 0, false
	}
	return n.cursor, true
}

// Current returns the article under the cursor.
func (n *Navigator) Current() (model.Article, bool) {
	if !n.valid {
		return model.Article{}, false
	}
	return n.articles[n.cursor], true
}

// Articles returns a copy of the loaded list.
func (n *Navigator) Articles() []model.Article {
	return append([]model.Article(nil), n.articles...)
}

// AtStart reports whether Retreat would be a no-op.
func (n *Navigator) AtStart() bool {
	return !n.valid || n.cursor == 0
}

// AtEnd reports whether Advance would be a no-op.
func (n *Navigator) AtEnd() bool {
	return !n.valid || n.cursor == len(n.articles)-1
}

// Advance moves to the next article. Returns false at the last article.
func (n *Navigator) Advance() bool {
	if n.AtEnd() {
		return false
	}
	n.cursor++
	return true
}

// Retreat moves to the previous article. Returns false at the first article.
func (n *Navigator) Retreat() bool {
	if n.AtStart() {
		return false
	}
	n.cursor--
	return true
}

// JumpTo moves the cursor to i, clamped to the list bounds.
func (n *Navigator) JumpTo(i int) bool {
	if !n.valid {
		return false
	}
	i = max(0, min(i, len(n.articles)-1))
	moved := i != n.cursor
	n.cursor = i
	return moved
}

// Apply dispatches a navigation event and reports whether the cursor moved.
// Swipe-left is the same transition as Next; swipe-right the same as Previous.
func (n *Navigator) Apply(e Event) bool {
	switch e {
	case EventNext, EventSwipeLeft:
		return n.Advance()
	case EventPrevious, EventSwipeRight:
		return n.Retreat()
	case EventFirst:
		return n.JumpTo(0)
	case EventLast:
		return n.JumpTo(len(n.articles) - 1)
	default:
		return false
	}
}
