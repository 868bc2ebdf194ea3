package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists every binding the shell reacts to. It doubles as the
// help.KeyMap for the status bar.
type keyMap struct {
	Next      key.Binding
	Previous  key.Binding
	First     key.Binding
	Last      key.Binding
	Open      key.Binding
	Summary   key.Binding
	Highlight key.Binding
	Back      key.Binding
	Dismiss   key.Binding
	Info      key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Next:      key.NewBinding(key.WithKeys("l", "right", "n"), key.WithHelp("→/l", "next")),
	Previous:  key.NewBinding(key.WithKeys("h", "left", "p"), key.WithHelp("←/h", "prev")),
	First:     key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first")),
	Last:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last")),
	Open:      key.NewBinding(key.WithKeys("enter", "o"), key.WithHelp("enter", "read more")),
	Summary:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "summary")),
	Highlight: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "highlight")),
	Back:      key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	Dismiss:   key.NewBinding(key.WithKeys("x", "esc"), key.WithHelp("x", "close")),
	Info:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "info")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// portalKeys is shown on the portal picker.
type portalKeys struct{ k keyMap }

func (p portalKeys) ShortHelp() []key.Binding {
	return []key.Binding{p.k.Open, p.k.Info, p.k.Quit}
}

func (p portalKeys) FullHelp() [][]key.Binding { return [][]key.Binding{p.ShortHelp()} }

// feedKeys is shown on the feed card.
type feedKeys struct{ k keyMap }

func (f feedKeys) ShortHelp() []key.Binding {
	return []key.Binding{f.k.Previous, f.k.Next, f.k.Open, f.k.Summary, f.k.Highlight, f.k.Back, f.k.Info}
}

func (f feedKeys) FullHelp() [][]key.Binding { return [][]key.Binding{f.ShortHelp()} }

// articleKeys is shown on the article page.
type articleKeys struct{ k keyMap }

func (a articleKeys) ShortHelp() []key.Binding {
	return []key.Binding{a.k.Summary, a.k.Highlight, a.k.Back, a.k.Info, a.k.Quit}
}

func (a articleKeys) FullHelp() [][]key.Binding { return [][]key.Binding{a.ShortHelp()} }
