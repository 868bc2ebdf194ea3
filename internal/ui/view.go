package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/newsdeck/internal/render"
	"github.com/abelbrown/newsdeck/internal/summary"
)

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var body string
	switch a.screen {
	case screenPortals:
		body = a.viewPortals()
	case screenFeed:
		body = a.viewFeed()
	case screenArticle:
		body = a.viewArticle()
	}
	if overlay := a.viewOverlay(); overlay != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, overlay)
	}

	contentHeight := max(a.height-1, 1)
	body = lipgloss.NewStyle().Height(contentHeight).MaxHeight(contentHeight).Render(body)
	return body + "\n" + a.viewStatusBar()
}

func (a App) viewPortals() string {
	header := AppTitle.Render("newsdeck") + "\n" + Prompt.Render("What do you want to catch up on?")

	switch {
	case a.portalsLoading:
		return header + "\n" + a.spinner.View() + " Loading portals..."
	case a.portalsLoaded && len(a.portals.Items()) == 0:
		return header + "\n" + Dim.Render("No portals available.")
	}
	return header + "\n" + a.portals.View()
}

// viewFeed renders the teaser card for the current article. An empty feed
// renders nothing; the status bar still shows where the user is.
func (a App) viewFeed() string {
	cur, ok := a.nav.Current()
	if !ok {
		return ""
	}

	w := a.contentWidth()
	card := render.Teaser(cur)

	var b strings.Builder
	b.WriteString(CardTitle.Width(w).Render(card.Title))
	b.WriteString("\n")

	if card.HasPicture {
		alt := card.Picture.Caption
		if alt == "" {
			alt = render.FallbackAlt
		}
		b.WriteString(PictureCaption.Render("[image] ") + alt + "\n")
		b.WriteString(Dim.Render(card.Picture.URL) + "\n\n")
	}

	if text := card.Text(); text != "" {
		b.WriteString(CardBody.Render(render.Clamp(text, teaserLines, w)))
		b.WriteString("\n\n")
	}

	b.WriteString(ReadMore.Render("Read more") + Dim.Render(" (enter)"))
	b.WriteString("\n\n")
	b.WriteString(a.viewPager())

	return lipgloss.NewStyle().PaddingLeft(2 + int(a.slideOffset)).Render(b.String())
}

func (a App) viewPager() string {
	prev, next := "⇦ Previous", "Next ⇨"
	if a.nav.AtStart() {
		prev = Dim.Render(prev)
	}
	if a.nav.AtEnd() {
		next = Dim.Render(next)
	}
	return prev + "   " + Dim.Render("⇦ Swipe ⇨") + "   " + next
}

func (a App) viewArticle() string {
	switch {
	case a.articleLoading:
		return a.spinner.View() + " Loading article..."
	case !a.articleFound:
		return ErrorStyle.Render("Could not load the article.")
	}

	title := CardTitle.Width(a.contentWidth()).Render(a.article.DisplayTitle())
	vp := a.viewport
	overlay := 0
	if o := a.viewOverlay(); o != "" {
		overlay = lipgloss.Height(o)
	}
	vp.Height = max(a.height-1-lipgloss.Height(title)-overlay, 1)
	return title + "\n" + vp.View()
}

// viewOverlay renders the summary or info panel, if one is showing.
func (a App) viewOverlay() string {
	w := max(a.contentWidth(), 20)

	if a.showInfo {
		info := infoMessages[a.screen]
		content := PanelTitle.Render(info.Title) + "\n" +
			strings.Join(render.Wrap(info.Message, w-4), "\n") + "\n" +
			Dim.Render("x to close")
		return Panel.Width(w).Render(content)
	}

	var title string
	if a.mediator.Mode() == summary.ModeHighlight {
		title = "Highlights"
	} else {
		title = "Summary"
	}

	var content string
	switch a.mediator.State() {
	case summary.Idle:
		return ""
	case summary.Loading:
		content = a.spinner.View() + " Generating..."
	case summary.Ready:
		content = a.summaryText(w - 4)
	case summary.Failed:
		content = ErrorStyle.Render("Could not generate a summary. Press s to retry.")
	}
	return Panel.Width(w).Render(PanelTitle.Render(title) + "\n" + content + "\n" + Dim.Render("x to close"))
}

// summaryText lays out a ready result: one line per summary point, or the
// highlighted markup.
func (a App) summaryText(width int) string {
	text := a.mediator.Text()
	if a.mediator.Mode() == summary.ModeHighlight {
		return render.Highlight(text, Mark, width)
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		lines = append(lines, render.Wrap(line, width)...)
	}
	return strings.Join(lines, "\n")
}

// viewStatusBar renders position info on the left and key hints on the right.
func (a App) viewStatusBar() string {
	var left string
	var hints help.KeyMap
	switch a.screen {
	case screenPortals:
		left = " newsdeck "
		hints = portalKeys{keys}
	case screenFeed:
		hints = feedKeys{keys}
		if a.feedLoading {
			left = " Loading... "
		} else if c, ok := a.nav.Cursor(); ok {
			left = fmt.Sprintf(" %s %d/%d ", a.portal.Name, c+1, a.nav.Len())
		} else {
			left = fmt.Sprintf(" %s 0/0 ", a.portal.Name)
		}
	case screenArticle:
		hints = articleKeys{keys}
		left = fmt.Sprintf(" %s %3.f%% ", a.portal.Name, a.viewport.ScrollPercent()*100)
	}

	right := a.help.View(hints)
	padding := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 0 {
		padding = 0
	}
	return StatusBar.Width(a.width).Render(left + strings.Repeat(" ", padding) + right)
}
