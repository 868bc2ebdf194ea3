package model

import (
	"encoding/json"
	"testing"
)

func TestArticleDecodeKnownBlocks(t *testing.T) {
	data := `{
		"id": "a1",
		"title": "Storm hits the coast",
		"content": [
			{"type": "PICTURES", "files": [{"url": "https://img.test/1.jpg", "caption": "Waves"}, {"caption": "no url"}]},
			{"type": "MARKUP", "data": "<p>hello</p>"}
		]
	}`

	var a Article
	if err := json.Unmarshal([]byte(data), &a); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if a.ID != "a1" || a.Title != "Storm hits the coast" {
		t.Errorf("unexpected header: %+v", a)
	}
	if len(a.Content) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(a.Content))
	}
	if a.Content[0].Kind() != KindPictures {
		t.Errorf("expected pictures, got %v", a.Content[0].Kind())
	}
	if len(a.Content[0].Files) != 2 {
		t.Errorf("expected 2 files, got %d", len(a.Content[0].Files))
	}
	if a.Content[1].Kind() != KindMarkup || a.Content[1].Data != "<p>hello</p>" {
		t.Errorf("unexpected markup block: %+v", a.Content[1])
	}
}

func TestArticleDecodeUnknownAndMalformedBlocks(t *testing.T) {
	data := `{
		"_id": "a2",
		"content": [
			{"type": "VIDEO", "src": "https://v.test/1.mp4"},
			"not an object",
			{"type": "PICTURES", "files": "oops"},
			{"type": "MARKUP", "data": 42},
			{"data": "<p>typeless</p>"}
		]
	}`

	var a Article
	if err := json.Unmarshal([]byte(data), &a); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if a.ID != "a2" {
		t.Errorf("expected _id fallback, got %q", a.ID)
	}
	if len(a.Content) != 5 {
		t.Fatalf("every block must be preserved, got %d", len(a.Content))
	}

	tests := []struct {
		idx  int
		kind BlockKind
	}{
		{0, KindUnknown},
		{1, KindUnknown},
		{2, KindPictures},
		{3, KindMarkup},
		{4, KindUnknown},
	}
	for _, tt := range tests {
		if got := a.Content[tt.idx].Kind(); got != tt.kind {
			t.Errorf("block %d: expected %v, got %v", tt.idx, tt.kind, got)
		}
	}

	if a.Content[0].Type != "VIDEO" {
		t.Errorf("unknown type should be kept verbatim, got %q", a.Content[0].Type)
	}
	if len(a.Content[2].Files) != 0 {
		t.Errorf("malformed files should decode empty, got %+v", a.Content[2].Files)
	}
	if a.Content[3].Data != "42" {
		t.Errorf("numeric data kept as text, got %q", a.Content[3].Data)
	}
}

func TestUnknownBlockRoundTripsRaw(t *testing.T) {
	raw := `{"type":"VIDEO","src":"https://v.test/1.mp4"}`
	var b Block
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		t.Fatal(err)
	}
	out, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != raw {
		t.Errorf("expected %s, got %s", raw, out)
	}
}

func TestArticleDecodeRejectsNonObject(t *testing.T) {
	var a Article
	if err := json.Unmarshal([]byte(`["x"]`), &a); err == nil {
		t.Error("expected error for non-object article")
	}
	if err := a.UnmarshalJSON([]byte(`null`)); err == nil {
		t.Error("expected error for null article")
	}
}

func TestArticleMissingContent(t *testing.T) {
	var a Article
	if err := json.Unmarshal([]byte(`{"id":"x","content":null}`), &a); err != nil {
		t.Fatal(err)
	}
	if len(a.Content) != 0 {
		t.Errorf("expected no blocks, got %d", len(a.Content))
	}
	if a.MarkupText() != "" {
		t.Error("expected empty markup text")
	}
	if _, ok := a.FirstPicture(); ok {
		t.Error("expected no picture")
	}
}

func TestPortalDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		id   string
	}{
		{"underscore id", `{"_id":"p1","name":"Sport"}`, "p1"},
		{"plain id", `{"id":"p2","name":"Sport"}`, "p2"},
		{"both prefer _id", `{"_id":"p3","id":"other","name":"Sport"}`, "p3"},
		{"numeric id", `{"id":17,"name":"Sport"}`, "17"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Portal
			if err := json.Unmarshal([]byte(tt.in), &p); err != nil {
				t.Fatal(err)
			}
			if p.ID != tt.id {
				t.Errorf("expected %q, got %q", tt.id, p.ID)
			}
			if p.Name != "Sport" {
				t.Errorf("expected Sport, got %q", p.Name)
			}
		})
	}
}

func TestFirstPictureAndMarkupText(t *testing.T) {
	a := Article{
		Content: []Block{
			{Type: TypeMarkup, Data: "<p>first</p>"},
			{Type: TypePictures, Files: []PictureFile{{Caption: "no url"}, {URL: "https://img.test/2.jpg"}}},
			{Type: TypeMarkup, Data: "<p>second</p>"},
		},
	}
	pic, ok := a.FirstPicture()
	if !ok || pic.URL != "https://img.test/2.jpg" {
		t.Errorf("unexpected first picture %+v %v", pic, ok)
	}
	if a.MarkupText() != "<p>first</p>" {
		t.Errorf("expected first markup, got %q", a.MarkupText())
	}
	if a.DisplayTitle() != "(untitled)" {
		t.Errorf("expected placeholder title, got %q", a.DisplayTitle())
	}
}
