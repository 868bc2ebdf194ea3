// Package summary tracks the lifecycle of an on-demand article summary and
// talks to the summarization proxy.
//
// The Mediator holds no goroutines. Request hands back a Ticket for the
// caller to execute, and the caller reports the outcome with Resolve.
package summary

import (
	"github.com/google/uuid"

	"github.com/abelbrown/newsdeck/internal/model"
)

// State of the current summary request.
type State int

const (
	Idle State = iota
	Loading
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Mode selects what the proxy produces.
type Mode string

const (
	ModeSummary   Mode = "summary"
	ModeHighlight Mode = "highlight"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeSummary || m == ModeHighlight
}

// Ticket is one in-flight summary request.
type Ticket struct {
	ID        string
	ArticleID string
	Text      string
	Mode      Mode
}

// Mediator owns the Idle, Loading, Ready, Failed lifecycle for the article
// being viewed. Not safe for concurrent use.
type Mediator struct {
	state     State
	articleID string
	mode      Mode
	text      string
	err       error
	pending   string // ID of the in-flight ticket
}

// New returns an idle mediator.
func New() *Mediator {
	return &Mediator{}
}

// Request starts a summary for a. It only acts from Idle or Failed; while a
// request is Loading or a result is Ready it returns false and nothing is
// sent. An article with no markup is summarized from an empty string.
func (m *Mediator) Request(a model.Article, mode Mode) (Ticket, bool) {
	if m.state == Loading || m.state == Ready {
		return Ticket{}, false
	}
	if !mode.Valid() {
		mode = ModeSummary
	}

	t := Ticket{
		ID:        uuid.NewString(),
		ArticleID: a.ID,
		Text:      a.MarkupText(),
		Mode:      mode,
	}
	m.state = Loading
	m.articleID = a.ID
	m.mode = mode
	m.text = ""
	m.err = nil
	m.pending = t.ID
	return t, true
}

// Resolve records the outcome of a ticket. Outcomes for tickets that are no
// longer in flight are dropped; the return value says whether it applied.
func (m *Mediator) Resolve(ticketID, text string, err error) bool {
	if m.state != Loading || ticketID == "" || ticketID != m.pending {
		return false
	}
	m.pending = ""
	if err != nil {
		m.state = Failed
		m.err = err
		return true
	}
	m.state = Ready
	m.text = text
	return true
}

// Dismiss closes the summary and discards any text or pending request.
func (m *Mediator) Dismiss() {
	m.state = Idle
	m.text = ""
	m.err = nil
	m.pending = ""
}

// ArticleChanged resets the mediator when the viewed article is no longer
// the one the summary belongs to.
func (m *Mediator) ArticleChanged(articleID string) {
	if m.state != Idle && articleID != m.articleID {
		m.Dismiss()
	}
	m.articleID = articleID
}

func (m *Mediator) State() State { return m.state }
func (m *Mediator) Text() string { return m.text }
func (m *Mediator) Err() error { return m.err }
func (m *Mediator) ArticleID() string { return m.articleID }
func (m *Mediator) Mode() Mode { return m.mode }
func (m *Mediator) Pending() string { return m.pending }
