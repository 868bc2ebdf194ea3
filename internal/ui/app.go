package ui

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/newsdeck/internal/feed"
	"github.com/abelbrown/newsdeck/internal/logging"
	"github.com/abelbrown/newsdeck/internal/model"
	"github.com/abelbrown/newsdeck/internal/news"
	"github.com/abelbrown/newsdeck/internal/render"
	"github.com/abelbrown/newsdeck/internal/summary"
)

type screen int

const (
	screenPortals screen = iota
	screenFeed
	screenArticle
)

func (s screen) String() string {
	switch s {
	case screenFeed:
		return "news"
	case screenArticle:
		return "article"
	default:
		return "home"
	}
}

const (
	teaserLines   = 4
	slideDistance = 12.0
	frameRate     = time.Second / 60
)

// Summarizer produces a summary or highlight rendering of article markup.
type Summarizer interface {
	Do(ctx context.Context, text string, mode summary.Mode) (string, error)
}

// Options tunes the shell. Zero values fall back to defaults.
type Options struct {
	Portal           string // open this portal once portals are loaded
	FetchTimeout     time.Duration
	SummaryTimeout   time.Duration
	SwipeMinDistance int
	SwipeMinVelocity float64
	Animate          bool
	GlamourStyle     string
}

// App is the root Bubble Tea model.
// App does not own any I/O. Fetches run as commands and report back via
// messages; results for a view that is no longer showing are dropped.
type App struct {
	src        news.Source
	summarizer Summarizer
	opts       Options
	now        func() time.Time

	screen screen
	width  int
	height int
	ready  bool

	// portal picker
	portals        list.Model
	portalsLoading bool
	portalsLoaded  bool
	autoOpened     bool

	// feed
	portal      model.Portal
	nav         *feed.Navigator
	feedSeq     int
	feedLoading bool
	swipe       *feed.SwipeDetector

	// article
	article        model.Article
	articleID      string
	articleSeq     int
	articleLoading bool
	articleFound   bool
	viewport       viewport.Model
	term           *render.Terminal

	// overlays
	mediator *summary.Mediator
	showInfo bool

	spinner spinner.Model
	help    help.Model

	// card slide animation
	spring      harmonica.Spring
	slideOffset float64
	slideVel    float64
	animating   bool
}

// portalItem adapts a portal to the list widget.
type portalItem struct{ p model.Portal }

func (i portalItem) Title() string { return i.p.Name }
func (i portalItem) Description() string { return i.p.ID }
func (i portalItem) FilterValue() string { return i.p.Name }

// NewApp creates the shell over a content source. summarizer may be nil,
// in which case summary requests fail.
func NewApp(src news.Source, summarizer Summarizer, opts Options) App {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 20 * time.Second
	}
	if opts.SummaryTimeout <= 0 {
		opts.SummaryTimeout = 60 * time.Second
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("#58a6ff"))
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#58a6ff"))

	return App{
		src:            src,
		summarizer:     summarizer,
		opts:           opts,
		now:            time.Now,
		portals:        l,
		portalsLoading: src != nil,
		nav:            feed.New(nil),
		swipe:          feed.NewSwipeDetector(opts.SwipeMinDistance, opts.SwipeMinVelocity),
		viewport:       viewport.New(0, 0),
		term:           render.NewTerminal(80, opts.GlamourStyle),
		mediator:       summary.New(),
		spinner:        s,
		help:           help.New(),
		spring:         harmonica.NewSpring(harmonica.FPS(60), 6.0, 0.8),
	}
}

// Init starts loading the portal list.
func (a App) Init() tea.Cmd {
	if a.src == nil {
		return nil
	}
	return tea.Batch(a.loadPortals(), a.spinner.Tick)
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.MouseMsg:
		return a.handleMouseMsg(msg)

	case PortalsLoaded:
		return a.handlePortalsLoaded(msg)

	case ArticlesLoaded:
		if msg.Seq != a.feedSeq || a.screen == screenPortals {
			logging.Debug("dropping stale feed", "portal", msg.PortalID, "seq", msg.Seq, "current", a.feedSeq)
			return a, nil
		}
		a.feedLoading = false
		a.nav.Load(msg.Articles)
		if cur, ok := a.nav.Current(); ok {
			a.mediator.ArticleChanged(cur.ID)
		}
		logging.Info("feed loaded", "portal", msg.PortalID, "articles", len(msg.Articles))
		return a, nil

	case ArticleLoaded:
		if msg.Seq != a.articleSeq || a.screen != screenArticle {
			logging.Debug("dropping stale article", "id", msg.ID, "seq", msg.Seq, "current", a.articleSeq)
			return a, nil
		}
		a.articleLoading = false
		a.articleFound = msg.Found
		a.article = msg.Article
		a.setArticleContent()
		return a, nil

	case SummaryDone:
		if !a.mediator.Resolve(msg.TicketID, msg.Text, msg.Err) {
			logging.Debug("dropping stale summary", "ticket", msg.TicketID)
			return a, nil
		}
		if msg.Err != nil {
			logging.Warn("summary failed", "article", a.mediator.ArticleID(), "err", msg.Err)
		}
		a.layout()
		return a, nil

	case spinner.TickMsg:
		if !a.busy() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case slideTick:
		return a.stepSlide()
	}

	return a, nil
}

// handleKeyMsg processes keyboard input.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.showInfo && (key.Matches(msg, keys.Info) || key.Matches(msg, keys.Dismiss)) {
		a.showInfo = false
		a.layout()
		return a, nil
	}
	if a.mediator.State() != summary.Idle && key.Matches(msg, keys.Dismiss) {
		a.mediator.Dismiss()
		a.layout()
		return a, nil
	}
	if key.Matches(msg, keys.Info) {
		a.showInfo = true
		a.layout()
		return a, nil
	}

	switch a.screen {
	case screenPortals:
		return a.handlePortalKey(msg)
	case screenFeed:
		return a.handleFeedKey(msg)
	case screenArticle:
		return a.handleArticleKey(msg)
	}
	return a, nil
}

func (a App) handlePortalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, keys.Open):
		if item, ok := a.portals.SelectedItem().(portalItem); ok {
			return a.openPortal(item.p)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.portals, cmd = a.portals.Update(msg)
	return a, cmd
}

func (a App) handleFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, keys.Back):
		return a.backToPortals()
	case key.Matches(msg, keys.Next):
		return a.navigate(feed.EventNext)
	case key.Matches(msg, keys.Previous):
		return a.navigate(feed.EventPrevious)
	case key.Matches(msg, keys.First):
		return a.navigate(feed.EventFirst)
	case key.Matches(msg, keys.Last):
		return a.navigate(feed.EventLast)
	case key.Matches(msg, keys.Open):
		if cur, ok := a.nav.Current(); ok {
			return a.openArticle(cur.ID)
		}
	case key.Matches(msg, keys.Summary):
		if cur, ok := a.nav.Current(); ok {
			return a.requestSummary(cur, summary.ModeSummary)
		}
	case key.Matches(msg, keys.Highlight):
		if cur, ok := a.nav.Current(); ok {
			return a.requestSummary(cur, summary.ModeHighlight)
		}
	}
	return a, nil
}

func (a App) handleArticleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, keys.Back):
		return a.backToFeed()
	case key.Matches(msg, keys.Summary):
		if a.articleFound {
			return a.requestSummary(a.article, summary.ModeSummary)
		}
		return a, nil
	case key.Matches(msg, keys.Highlight):
		if a.articleFound {
			return a.requestSummary(a.article, summary.ModeHighlight)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

// handleMouseMsg turns horizontal drags on the feed card into swipes.
func (a App) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case screenFeed:
		switch msg.Action {
		case tea.MouseActionPress:
			if msg.Button == tea.MouseButtonLeft {
				a.swipe.Begin(msg.X, a.now())
			}
		case tea.MouseActionRelease:
			if ev := a.swipe.End(msg.X, a.now()); ev != feed.EventNone {
				return a.navigate(ev)
			}
		}
		return a, nil

	case screenArticle:
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd

	case screenPortals:
		var cmd tea.Cmd
		a.portals, cmd = a.portals.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) handlePortalsLoaded(msg PortalsLoaded) (tea.Model, tea.Cmd) {
	a.portalsLoading = false
	a.portalsLoaded = true

	items := make([]list.Item, 0, len(msg.Portals))
	for _, p := range msg.Portals {
		items = append(items, portalItem{p: p})
	}
	cmd := a.portals.SetItems(items)
	logging.Info("portals loaded", "count", len(msg.Portals))

	if a.opts.Portal != "" && !a.autoOpened {
		a.autoOpened = true
		target := model.Portal{ID: a.opts.Portal, Name: a.opts.Portal}
		for _, p := range msg.Portals {
			if p.ID == a.opts.Portal {
				target = p
				break
			}
		}
		next, openCmd := a.openPortal(target)
		return next, tea.Batch(cmd, openCmd)
	}
	return a, cmd
}

// navigate applies a navigation event to the feed. Swipes and buttons end
// up here alike.
func (a App) navigate(ev feed.Event) (tea.Model, tea.Cmd) {
	if !a.nav.Apply(ev) {
		return a, nil
	}
	if cur, ok := a.nav.Current(); ok {
		a.mediator.ArticleChanged(cur.ID)
	}
	a.layout()
	return a.startSlide()
}

func (a App) openPortal(p model.Portal) (tea.Model, tea.Cmd) {
	a.feedSeq++
	a.portal = p
	a.nav.Load(nil)
	a.feedLoading = true
	a.screen = screenFeed
	a.showInfo = false
	a.mediator.Dismiss()
	a.swipe.Cancel()
	logging.Info("opening portal", "portal", p.ID, "name", p.Name)
	return a, tea.Batch(a.loadArticles(a.feedSeq, p.ID), a.spinner.Tick)
}

func (a App) openArticle(id string) (tea.Model, tea.Cmd) {
	a.articleSeq++
	a.articleID = id
	a.article = model.Article{}
	a.articleLoading = true
	a.articleFound = false
	a.screen = screenArticle
	a.showInfo = false
	a.swipe.Cancel()
	a.mediator.ArticleChanged(id)
	a.viewport.SetContent("")
	a.viewport.GotoTop()
	a.layout()
	return a, tea.Batch(a.loadArticle(a.articleSeq, id), a.spinner.Tick)
}

func (a App) backToFeed() (tea.Model, tea.Cmd) {
	a.articleSeq++
	a.articleLoading = false
	a.screen = screenFeed
	a.showInfo = false
	if cur, ok := a.nav.Current(); ok {
		a.mediator.ArticleChanged(cur.ID)
	} else {
		a.mediator.Dismiss()
	}
	a.layout()
	return a, nil
}

func (a App) backToPortals() (tea.Model, tea.Cmd) {
	a.feedSeq++
	a.feedLoading = false
	a.nav.Load(nil)
	a.screen = screenPortals
	a.showInfo = false
	a.mediator.Dismiss()
	a.swipe.Cancel()
	return a, nil
}

func (a App) requestSummary(art model.Article, mode summary.Mode) (tea.Model, tea.Cmd) {
	ticket, ok := a.mediator.Request(art, mode)
	if !ok {
		return a, nil
	}
	logging.Info("summary requested", "article", art.ID, "mode", mode, "ticket", ticket.ID)
	a.layout()
	return a, tea.Batch(a.summarize(ticket), a.spinner.Tick)
}

// busy reports whether anything the spinner stands for is in flight.
func (a App) busy() bool {
	return a.portalsLoading || a.feedLoading || a.articleLoading || a.mediator.State() == summary.Loading
}

// Commands

func (a App) loadPortals() tea.Cmd {
	src, timeout := a.src, a.opts.FetchTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return PortalsLoaded{Portals: src.ListPortals(ctx)}
	}
}

func (a App) loadArticles(seq int, portalID string) tea.Cmd {
	src, timeout := a.src, a.opts.FetchTimeout
	if src == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return ArticlesLoaded{Seq: seq, PortalID: portalID, Articles: src.ListArticles(ctx, portalID)}
	}
}

func (a App) loadArticle(seq int, id string) tea.Cmd {
	src, timeout := a.src, a.opts.FetchTimeout
	if src == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		art, ok := src.GetArticle(ctx, id)
		return ArticleLoaded{Seq: seq, ID: id, Article: art, Found: ok}
	}
}

func (a App) summarize(t summary.Ticket) tea.Cmd {
	s, timeout := a.summarizer, a.opts.SummaryTimeout
	return func() tea.Msg {
		if s == nil {
			return SummaryDone{TicketID: t.ID, Err: fmt.Errorf("no summarizer configured")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		text, err := s.Do(ctx, t.Text, t.Mode)
		return SummaryDone{TicketID: t.ID, Text: text, Err: err}
	}
}

// Slide animation

func (a App) startSlide() (tea.Model, tea.Cmd) {
	if !a.opts.Animate {
		return a, nil
	}
	a.slideOffset = slideDistance
	a.slideVel = 0
	if a.animating {
		return a, nil
	}
	a.animating = true
	return a, slideFrame()
}

func (a App) stepSlide() (tea.Model, tea.Cmd) {
	a.slideOffset, a.slideVel = a.spring.Update(a.slideOffset, a.slideVel, 0)
	if math.Abs(a.slideOffset) < 0.5 && math.Abs(a.slideVel) < 0.5 {
		a.slideOffset, a.slideVel = 0, 0
		a.animating = false
		return a, nil
	}
	return a, slideFrame()
}

func slideFrame() tea.Cmd {
	return tea.Tick(frameRate, func(time.Time) tea.Msg { return slideTick{} })
}

// layout resizes the widgets to the window.
func (a *App) layout() {
	if !a.ready {
		return
	}
	overlay := 0
	if o := a.viewOverlay(); o != "" {
		overlay = lipgloss.Height(o)
	}
	a.help.Width = a.width
	a.portals.SetSize(a.width, max(a.height-4-overlay, 1))

	a.term.SetWidth(a.contentWidth())
	a.viewport.Width = a.width
	a.viewport.Height = max(a.height-3-overlay, 1)
	if a.screen == screenArticle && !a.articleLoading {
		a.setArticleContent()
	}
}

func (a *App) setArticleContent() {
	if !a.articleFound {
		a.viewport.SetContent("")
		return
	}
	a.viewport.SetContent(a.term.Render(render.Article(a.article)))
}

func (a App) contentWidth() int {
	w := a.width - 4
	if w > 100 {
		w = 100
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Cursor returns the feed position (for testing).
func (a App) Cursor() (int, bool) {
	return a.nav.Cursor()
}

// Screen returns the name of the current screen (for testing).
func (a App) Screen() string {
	return a.screen.String()
}

// SummaryState returns the summary overlay state (for testing).
func (a App) SummaryState() summary.State {
	return a.mediator.State()
}
