package render

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const blockElements = "p, div, li, br, h1, h2, h3, h4, h5, h6, blockquote"

// PlainText extracts the visible text of an HTML fragment with whitespace
// collapsed. Unparseable input is returned as-is.
func PlainText(html string) string {
	if html == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	doc.Find(blockElements).AfterHtml(" ")
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Wrap breaks text into lines no wider than width cells. Paragraphs
// (separated by blank lines) are kept apart.
func Wrap(text string, width int) []string {
	if width <= 0 {
		return strings.Split(text, "\n")
	}

	var lines []string
	for i, para := range strings.Split(text, "\n\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}
		if i > 0 && len(lines) > 0 {
			lines = append(lines, "")
		}
		current := ""
		for _, word := range words {
			for runewidth.StringWidth(word) > width {
				if current != "" {
					lines = append(lines, current)
					current = ""
				}
				head := runewidth.Truncate(word, width, "")
				if head == "" {
					_, size := utf8.DecodeRuneInString(word)
					head = word[:size]
				}
				lines = append(lines, head)
				word = word[len(head):]
			}
			switch {
			case word == "":
			case current == "":
				current = word
			case runewidth.StringWidth(current)+1+runewidth.StringWidth(word) <= width:
				current += " " + word
			default:
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		}
	}
	return lines
}

// Clamp wraps text to width and keeps at most maxLines lines, ending the
// last kept line with an ellipsis when text was cut.
func Clamp(text string, maxLines, width int) string {
	lines := Wrap(text, width)
	if maxLines <= 0 || len(lines) <= maxLines {
		return strings.Join(lines, "\n")
	}
	lines = lines[:maxLines]
	last := lines[maxLines-1]
	if width > 0 && runewidth.StringWidth(last)+1 > width {
		last = runewidth.Truncate(last, width-1, "")
	}
	lines[maxLines-1] = last + "…"
	return strings.Join(lines, "\n")
}

// Highlight renders highlight-mode output: text inside <mark> is drawn with
// mark, paragraphs and list items go on their own lines, and every other tag
// is reduced to its text. The result is wrapped to width.
func Highlight(html string, mark lipgloss.Style, width int) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}

	var b strings.Builder
	var walk func(*goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, c *goquery.Selection) {
			switch goquery.NodeName(c) {
			case "#text":
				b.WriteString(c.Text())
			case "mark":
				b.WriteString(mark.Render(strings.Join(strings.Fields(c.Text()), " ")))
			case "br":
				b.WriteString("\n")
			case "p", "li", "div":
				walk(c)
				b.WriteString("\n")
			default:
				walk(c)
			}
		})
	}
	walk(doc.Find("body"))

	var out []string
	for _, line := range strings.Split(b.String(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	text := strings.Join(out, "\n")
	if width > 0 {
		text = lipgloss.NewStyle().Width(width).Render(text)
	}
	return text
}
