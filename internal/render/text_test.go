package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"<p>Hello <em>world</em></p>", "Hello world"},
		{"<p>one</p>\n\n<p>  two </p>", "one two"},
		{"<p>one</p><p>two</p>", "one two"},
		{"<h2>Head</h2>body<br>more", "Head body more"},
		{"plain text", "plain text"},
	}
	for _, tt := range tests {
		if got := PlainText(tt.in); got != tt.want {
			t.Errorf("PlainText(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestWrap(t *testing.T) {
	lines := Wrap("the quick brown fox jumps over the lazy dog", 10)
	for _, l := range lines {
		if runewidth.StringWidth(l) > 10 {
			t.Errorf("line %q wider than 10", l)
		}
	}
	if strings.Join(lines, " ") != "the quick brown fox jumps over the lazy dog" {
		t.Errorf("wrap lost words: %q", lines)
	}

	long := Wrap("abcdefghijklmnop", 5)
	if len(long) != 4 || long[0] != "abcde" || long[3] != "p" {
		t.Errorf("expected long word split, got %q", long)
	}

	paras := Wrap("one\n\ntwo", 20)
	if len(paras) != 3 || paras[1] != "" {
		t.Errorf("expected blank line between paragraphs, got %q", paras)
	}
}

func TestClamp(t *testing.T) {
	text := "alpha beta gamma delta epsilon zeta eta theta"

	got := Clamp(text, 2, 12)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), got)
	}
	if !strings.HasSuffix(lines[1], "…") {
		t.Errorf("expected ellipsis on clamped text, got %q", lines[1])
	}
	if runewidth.StringWidth(lines[1]) > 12 {
		t.Errorf("clamped line wider than 12: %q", lines[1])
	}

	if got := Clamp("short", 3, 20); got != "short" {
		t.Errorf("expected untouched text, got %q", got)
	}
}

func TestHighlightKeepsMarkedWords(t *testing.T) {
	html := "<p>The <mark>council</mark> voted on the <mark>budget</mark>.</p><p>Second paragraph.</p>"

	got := Highlight(html, lipgloss.NewStyle(), 0)
	want := "The council voted on the budget.\nSecond paragraph."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestHighlightBreaks(t *testing.T) {
	got := Highlight("line one<br>line <mark>two</mark>", lipgloss.NewStyle(), 0)
	if got != "line one\nline two" {
		t.Errorf("unexpected highlight output %q", got)
	}
}
