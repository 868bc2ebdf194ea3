package proxy

import (
	"fmt"

	"github.com/microcosm-cc/bluemonday"

	"github.com/abelbrown/newsdeck/internal/summary"
)

const summaryPrompt = `Write a short summary of this news article as at most 5 bullet points.
- Use simple but complete sentences.
- At most 5 points, each starting with "- ".
- Keep it short and concrete.

Article: "%s"`

const highlightPrompt = `Mark the most important words in this news article by wrapping them in <mark> tags.
Choose at most 3-4 words that are essential to understanding the story.
Return the article markup otherwise unchanged.

Article: "%s"`

// BuildPrompt returns the user prompt for a mode.
func BuildPrompt(mode summary.Mode, text string) (string, error) {
	switch mode {
	case summary.ModeSummary:
		return fmt.Sprintf(summaryPrompt, text), nil
	case summary.ModeHighlight:
		return fmt.Sprintf(highlightPrompt, text), nil
	default:
		return "", fmt.Errorf("unknown mode %q", mode)
	}
}

// highlightPolicy keeps <mark> and the plain markup an article body uses.
func highlightPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("mark", "p", "strong", "em", "b", "i", "br", "ul", "ol", "li")
	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	return p
}
