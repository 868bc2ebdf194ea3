package render

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/newsdeck/internal/logging"
)

var (
	pictureLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	pictureURL   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Terminal draws rendered items as terminal text. Markup is converted to
// Markdown and rendered with glamour; the renderer is rebuilt when the width
// changes.
type Terminal struct {
	style     string
	width     int
	converter *md.Converter
	renderer  *glamour.TermRenderer
}

// NewTerminal creates a Terminal. style is a glamour standard style name
// ("dark", "light", "notty", ...); empty means "dark".
func NewTerminal(width int, style string) *Terminal {
	if style == "" {
		style = "dark"
	}
	return &Terminal{
		style:     style,
		width:     width,
		converter: md.NewConverter("", true, nil),
	}
}

// Width returns the current wrap width.
func (t *Terminal) Width() int {
	return t.width
}

// SetWidth changes the wrap width.
func (t *Terminal) SetWidth(width int) {
	if width != t.width {
		t.width = width
		t.renderer = nil
	}
}

// Render draws items in order, separated by blank lines.
func (t *Terminal) Render(items []Item) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		switch it.Kind {
		case ItemPicture:
			parts = append(parts, t.Picture(it))
		case ItemMarkup:
			parts = append(parts, t.Markup(it.HTML))
		}
	}
	return strings.Join(parts, "\n\n")
}

// Picture draws a picture item as its label and URL.
func (t *Terminal) Picture(it Item) string {
	alt := it.Alt
	if alt == "" {
		alt = FallbackAlt
	}
	label := pictureLabel.Render("[image]") + " " + alt
	return label + "\n" + pictureURL.Render(it.URL)
}

// Markup draws an HTML fragment. When conversion or rendering fails the
// fragment's plain text is shown instead.
func (t *Terminal) Markup(html string) string {
	markdown, err := t.converter.ConvertString(html)
	if err != nil {
		logging.Debug("markup conversion failed", "err", err)
		return strings.Join(Wrap(PlainText(html), t.width), "\n")
	}

	r, err := t.getRenderer()
	if err != nil {
		logging.Debug("markdown renderer unavailable", "err", err)
		return strings.Join(Wrap(markdown, t.width), "\n")
	}

	out, err := r.Render(markdown)
	if err != nil {
		logging.Debug("markdown render failed", "err", err)
		return strings.Join(Wrap(markdown, t.width), "\n")
	}
	return strings.Trim(out, "\n")
}

func (t *Terminal) getRenderer() (*glamour.TermRenderer, error) {
	if t.renderer != nil {
		return t.renderer, nil
	}
	wrap := t.width
	if wrap <= 0 {
		wrap = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(t.style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil, err
	}
	t.renderer = r
	return r, nil
}
