// Package render turns an article's content blocks into displayable items
// and draws those items in the terminal.
package render

import "github.com/abelbrown/newsdeck/internal/model"

// FallbackAlt labels pictures that carry no caption.
const FallbackAlt = "Image"

// ItemKind tells a picture item from a markup item.
type ItemKind int

const (
	ItemPicture ItemKind = iota
	ItemMarkup
)

// Item is one rendered element in article order.
type Item struct {
	Kind ItemKind
	URL  string // pictures
	Alt  string // pictures
	HTML string // markup, untouched
}

// Blocks renders blocks in order. Pictures without a URL, empty markup, and
// blocks of unknown kind produce nothing; the blocks after them still render.
func Blocks(blocks []model.Block) []Item {
	var items []Item
	for _, b := range blocks {
		switch b.Kind() {
		case model.KindPictures:
			for _, f := range b.Files {
				if f.URL == "" {
					continue
				}
				alt := f.Caption
				if alt == "" {
					alt = FallbackAlt
				}
				items = append(items, Item{Kind: ItemPicture, URL: f.URL, Alt: alt})
			}
		case model.KindMarkup:
			if b.Data != "" {
				items = append(items, Item{Kind: ItemMarkup, HTML: b.Data})
			}
		}
	}
	return items
}

// Article renders an article's content.
func Article(a model.Article) []Item {
	return Blocks(a.Content)
}

// Card is the compact form of an article shown in the feed.
type Card struct {
	Title      string
	Picture    model.PictureFile
	HasPicture bool
	HTML       string // first markup block
}

// Teaser builds the feed card for an article.
func Teaser(a model.Article) Card {
	pic, ok := a.FirstPicture()
	return Card{
		Title:      a.DisplayTitle(),
		Picture:    pic,
		HasPicture: ok,
		HTML:       a.MarkupText(),
	}
}

// Text returns the visible text of the card's markup.
func (c Card) Text() string {
	return PlainText(c.HTML)
}
