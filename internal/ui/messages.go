// Package ui provides the Bubble Tea TUI for newsdeck.
package ui

import "github.com/abelbrown/newsdeck/internal/model"

// PortalsLoaded is sent when the portal list has been fetched.
type PortalsLoaded struct {
	Portals []model.Portal
}

// ArticlesLoaded is sent when a portal's feed has been fetched.
// Seq ties the result to the portal view that asked for it.
type ArticlesLoaded struct {
	Seq      int
	PortalID string
	Articles []model.Article
}

// ArticleLoaded is sent when a single article has been fetched.
type ArticleLoaded struct {
	Seq     int
	ID      string
	Article model.Article
	Found   bool
}

// SummaryDone is sent when the proxy answers a summary ticket.
type SummaryDone struct {
	TicketID string
	Text     string
	Err      error
}

// slideTick advances the card slide animation by one frame.
type slideTick struct{}
