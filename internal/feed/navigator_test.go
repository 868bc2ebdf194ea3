package feed

import (
	"testing"

	"github.com/abelbrown/newsdeck/internal/model"
)

func articles(ids ...string) []model.Article {
	out := make([]model.Article, len(ids))
	for i, id := range ids {
		out[i] = model.Article{ID: id, Title: "Title " + id}
	}
	return out
}

func currentID(t *testing.T, n *Navigator) string {
	t.Helper()
	a, ok := n.Current()
	if !ok {
		t.Fatal("expected a current article")
	}
	return a.ID
}

func TestLoadResetsCursor(t *testing.T) {
	n := New(articles("a", "b", "c"))
	n.Advance()
	n.Advance()

	n.Load(articles("x", "y"))
	if c, ok := n.Cursor(); !ok || c != 0 {
		t.Errorf("expected cursor 0 after load, got %d (%v)", c, ok)
	}
	if got := currentID(t, n); got != "x" {
		t.Errorf("expected x, got %s", got)
	}
}

func TestLoadCopiesInput(t *testing.T) {
	list := articles("a", "b")
	n := New(list)
	list[0].ID = "mutated"

	if got := currentID(t, n); got != "a" {
		t.Errorf("navigator must not alias the caller's slice, got %s", got)
	}
}

func TestEmptyNavigator(t *testing.T) {
	var n Navigator
	if _, ok := n.Current(); ok {
		t.Error("expected no current article")
	}
	if _, ok := n.Cursor(); ok {
		t.Error("expected undefined cursor")
	}
	for _, e := range []Event{EventNext, EventPrevious, EventSwipeLeft, EventSwipeRight, EventFirst, EventLast} {
		if n.Apply(e) {
			t.Errorf("%s on empty navigator should not move", e)
		}
	}
	if n.JumpTo(3) {
		t.Error("JumpTo on empty navigator should not move")
	}
	if !n.AtStart() || !n.AtEnd() {
		t.Error("empty navigator is at both ends")
	}

	n.Load(nil)
	if _, ok := n.Current(); ok {
		t.Error("expected no current article after loading nil")
	}
}

func TestBoundaryNoOps(t *testing.T) {
	n := New(articles("a", "b", "c"))

	if n.Retreat() {
		t.Error("retreat at start should be a no-op")
	}
	if c, _ := n.Cursor(); c != 0 {
		t.Errorf("expected cursor 0, got %d", c)
	}

	n.JumpTo(2)
	if n.Advance() {
		t.Error("advance at end should be a no-op")
	}
	if c, _ := n.Cursor(); c != 2 {
		t.Errorf("expected cursor 2, got %d", c)
	}
}

func TestSingleArticle(t *testing.T) {
	n := New(articles("only"))
	for _, e := range []Event{EventNext, EventPrevious, EventSwipeLeft, EventSwipeRight} {
		n.Apply(e)
		if c, ok := n.Cursor(); !ok || c != 0 {
			t.Errorf("after %s expected cursor 0, got %d", e, c)
		}
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	n := New(articles("a", "b", "c", "d"))
	seq := []Event{
		EventNext, EventNext, EventNext, EventNext, EventNext,
		EventSwipeRight, EventPrevious, EventPrevious, EventPrevious, EventPrevious,
		EventLast, EventSwipeLeft, EventFirst, EventSwipeRight,
	}
	for i, e := range seq {
		n.Apply(e)
		c, ok := n.Cursor()
		if !ok || c < 0 || c >= n.Len() {
			t.Fatalf("step %d (%s): cursor %d out of bounds", i, e, c)
		}
	}
}

func TestJumpToClamps(t *testing.T) {
	tests := []struct {
		target int
		want   int
	}{
		{-5, 0},
		{0, 0},
		{1, 1},
		{2, 2},
		{99, 2},
	}
	for _, tt := range tests {
		n := New(articles("a", "b", "c"))
		n.JumpTo(tt.target)
		if c, _ := n.Cursor(); c != tt.want {
			t.Errorf("JumpTo(%d): expected %d, got %d", tt.target, tt.want, c)
		}
	}
}

func TestAdvanceAdvanceRetreat(t *testing.T) {
	n := New(articles("A", "B", "C"))
	n.Advance()
	n.Advance()
	n.Retreat()
	if got := currentID(t, n); got != "B" {
		t.Errorf("expected B, got %s", got)
	}
}

func TestSwipeButtonEquivalence(t *testing.T) {
	pairs := [][2]Event{
		{EventSwipeLeft, EventNext},
		{EventSwipeRight, EventPrevious},
	}
	for start := 0; start < 3; start++ {
		for _, p := range pairs {
			swiped := New(articles("a", "b", "c"))
			pressed := New(articles("a", "b", "c"))
			swiped.JumpTo(start)
			pressed.JumpTo(start)

			m1 := swiped.Apply(p[0])
			m2 := pressed.Apply(p[1])
			c1, _ := swiped.Cursor()
			c2, _ := pressed.Cursor()
			if c1 != c2 || m1 != m2 {
				t.Errorf("from %d: %s -> %d (%v), %s -> %d (%v)", start, p[0], c1, m1, p[1], c2, m2)
			}
		}
	}
}

func TestApplyReportsMovement(t *testing.T) {
	n := New(articles("a", "b"))
	if !n.Apply(EventNext) {
		t.Error("expected move")
	}
	if n.Apply(EventNext) {
		t.Error("expected no move at end")
	}
	if !n.Apply(EventFirst) {
		t.Error("expected move to first")
	}
	if n.Apply(EventFirst) {
		t.Error("expected no move when already first")
	}
	if n.Apply(EventNone) {
		t.Error("EventNone never moves")
	}
}
