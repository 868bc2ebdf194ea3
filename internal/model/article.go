// Package model holds the news data shapes shared by the sources, the feed
// navigator, and the renderer.
//
// The upstream JSON is not a closed contract. Decoding is deliberately
// lenient: a field with an unexpected type is dropped, a content block of an
// unknown kind is kept verbatim and classified KindUnknown. Only an article or
// portal that is not a JSON object at all fails to decode.
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Block type values used by the news API.
const (
	TypePictures = "PICTURES"
	TypeMarkup   = "MARKUP"
)

// BlockKind classifies a content block for rendering.
type BlockKind int

const (
	KindUnknown BlockKind = iota
	KindPictures
	KindMarkup
)

func (k BlockKind) String() string {
	switch k {
	case KindPictures:
		return "pictures"
	case KindMarkup:
		return "markup"
	default:
		return "unknown"
	}
}

// Portal is a named news channel acting as a filter for article queries.
type Portal struct {
	ID   string
	Name string
}

// PictureFile is one image in a picture set. Either field may be empty.
type PictureFile struct {
	URL     string `json:"url,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// Block is one renderable unit of an article.
type Block struct {
	Type  string        // verbatim "type" value
	Files []PictureFile // meaningful for PICTURES
	Data  string        // meaningful for MARKUP
	Raw   json.RawMessage
}

// Kind maps the block's type to a BlockKind.
func (b Block) Kind() BlockKind {
	switch b.Type {
	case TypePictures:
		return KindPictures
	case TypeMarkup:
		return KindMarkup
	default:
		return KindUnknown
	}
}

// Article is a single news item.
type Article struct {
	ID      string
	Title   string
	Content []Block
}

// DisplayTitle returns the title, or a placeholder for untitled articles.
func (a Article) DisplayTitle() string {
	if a.Title != "" {
		return a.Title
	}
	return "(untitled)"
}

// FirstPicture returns the first picture with a URL from the first picture
// block, which is what the feed card shows.
func (a Article) FirstPicture() (PictureFile, bool) {
	for _, b := range a.Content {
		if b.Kind() != KindPictures {
			continue
		}
		for _, f := range b.Files {
			if f.URL != "" {
				return f, true
			}
		}
		return PictureFile{}, false
	}
	return PictureFile{}, false
}

// MarkupText returns the raw data of the first markup block, or "".
func (a Article) MarkupText() string {
	for _, b := range a.Content {
		if b.Kind() == KindMarkup {
			return b.Data
		}
	}
	return ""
}

// UnmarshalJSON decodes a block without ever failing on its shape.
func (b *Block) UnmarshalJSON(data []byte) error {
	*b = Block{Raw: append(json.RawMessage(nil), data...)}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	b.Type = lenientString(fields["type"])
	b.Data = lenientString(fields["data"])

	var files []json.RawMessage
	if raw, ok := fields["files"]; ok && json.Unmarshal(raw, &files) == nil {
		for _, f := range files {
			var entry map[string]json.RawMessage
			if json.Unmarshal(f, &entry) != nil {
				continue
			}
			b.Files = append(b.Files, PictureFile{
				URL:     lenientString(entry["url"]),
				Caption: lenientString(entry["caption"]),
			})
		}
	}
	return nil
}

// MarshalJSON writes the block back out. Unknown blocks round-trip their
// original bytes.
func (b Block) MarshalJSON() ([]byte, error) {
	if b.Kind() == KindUnknown && len(b.Raw) > 0 {
		return b.Raw, nil
	}
	out := map[string]any{"type": b.Type}
	if len(b.Files) > 0 {
		out["files"] = b.Files
	}
	if b.Data != "" {
		out["data"] = b.Data
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts "id" or "_id" and tolerates a malformed content list.
func (a *Article) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("article: %w", err)
	}
	if fields == nil {
		return errors.New("article: not an object")
	}

	*a = Article{
		ID:    identifier(fields),
		Title: lenientString(fields["title"]),
	}

	var blocks []json.RawMessage
	if raw, ok := fields["content"]; ok && json.Unmarshal(raw, &blocks) == nil {
		a.Content = make([]Block, 0, len(blocks))
		for _, raw := range blocks {
			var blk Block
			_ = blk.UnmarshalJSON(raw)
			a.Content = append(a.Content, blk)
		}
	}
	return nil
}

// MarshalJSON writes the article in the upstream shape.
func (a Article) MarshalJSON() ([]byte, error) {
	content := a.Content
	if content == nil {
		content = []Block{}
	}
	return json.Marshal(struct {
		ID      string  `json:"id"`
		Title   string  `json:"title,omitempty"`
		Content []Block `json:"content"`
	}{a.ID, a.Title, content})
}

// UnmarshalJSON accepts "_id" or "id" for the portal identifier.
func (p *Portal) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("portal: %w", err)
	}
	*p = Portal{
		ID:   identifier(fields),
		Name: lenientString(fields["name"]),
	}
	return nil
}

// identifier prefers "_id" over "id". Numeric ids are kept as their decimal text.
func identifier(fields map[string]json.RawMessage) string {
	if id := lenientString(fields["_id"]); id != "" {
		return id
	}
	return lenientString(fields["id"])
}

// lenientString decodes a JSON string or number; anything else yields "".
func lenientString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if dec.Decode(&n) == nil {
		if _, err := strconv.ParseFloat(n.String(), 64); err == nil {
			return n.String()
		}
	}
	return ""
}
