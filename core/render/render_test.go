package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/docmark/core"
)

const sample = "# Guide\n\nRead the [docs](https://example.com/docs) and *carefully*.\n\n- first\n- second\n\n1. step\n\n```python\n# comment\nprint(1)\n```\n\n## Table\n\n| a | b |\n|---|---|\n| 1 | 2 |"

var meta = core.PageMetadata{
	Title:     "Example - /guide",
	SourceURL: "https://example.com/guide",
	Provider:  "Example",
	Language:  "en",
	ScrapedAt: "2024-01-02T03:04:05Z",
}

func TestMarkdownRenderer_FrontMatter(t *testing.T) {
	out, err := NewMarkdownRenderer("").Render("# Guide\n\nBody.", meta)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	got := string(out)
	if !strings.HasPrefix(got, "---\ntitle: Example - /guide\n") {
		t.Errorf("expected front matter to open with the title, got %q", got)
	}
	for _, want := range []string{"source_url: https://example.com/guide\n", "provider: Example\n", "scraped_at: "} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in %q", want, got)
		}
	}
	if !strings.HasSuffix(got, "\n---\n\n# Guide\n\nBody.\n") {
		t.Errorf("expected body after front matter, got %q", got)
	}
	if strings.Contains(string(out), "language") {
		t.Errorf("language must not appear in front matter")
	}
}

func TestMarkdownRenderer_NoMetadata(t *testing.T) {
	out, err := NewMarkdownRenderer("md").Render("Body.", core.PageMetadata{Language: "en"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if string(out) != "Body.\n" {
		t.Errorf("Render() = %q", out)
	}
}

func TestMarkdownRenderer_Extension(t *testing.T) {
	tests := map[string]string{"": ".mdc", "md": ".md", ".md": ".md", " .mdc ": ".mdc"}
	for in, want := range tests {
		if got := NewMarkdownRenderer(in).Extension(); got != want {
			t.Errorf("NewMarkdownRenderer(%q).Extension() = %q, want %q", in, got, want)
		}
	}
}

func TestJSONRenderer(t *testing.T) {
	out, err := NewJSONRenderer(0).Render(sample, meta)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var page core.PageJSON
	if err := json.Unmarshal(out, &page); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	s := page.Structure
	if len(s.Headings) != 2 || s.Headings[0].Text != "Guide" || s.Headings[1].Level != 2 {
		t.Errorf("unexpected headings %+v", s.Headings)
	}
	if len(s.Links) != 1 || s.Links[0].Href != "https://example.com/docs" {
		t.Errorf("unexpected links %+v", s.Links)
	}
	if len(s.CodeBlocks) != 1 || s.CodeBlocks[0].Language != "python" || s.CodeBlocks[0].Lines != 2 {
		t.Errorf("unexpected code blocks %+v", s.CodeBlocks)
	}
	if s.Tables != 1 {
		t.Errorf("Tables = %d, want 1", s.Tables)
	}
	if s.ListItems != 3 {
		t.Errorf("ListItems = %d, want 3", s.ListItems)
	}

	if len(page.Content.Sections) != 2 || page.Content.Sections[0].Heading != "Guide" {
		t.Errorf("unexpected sections %+v", page.Content.Sections)
	}
	if !strings.Contains(page.Content.Text, "Read the docs and carefully.") {
		t.Errorf("expected stripped text, got %q", page.Content.Text)
	}
	if !strings.Contains(page.Content.Text, "# comment") {
		t.Errorf("expected code kept verbatim, got %q", page.Content.Text)
	}
	if page.Content.Chunks != nil {
		t.Errorf("expected no chunks by default")
	}
	if page.Metadata.Language != "en" {
		t.Errorf("expected language in JSON metadata, got %+v", page.Metadata)
	}
}

func TestJSONRenderer_Chunks(t *testing.T) {
	out, err := NewJSONRenderer(4).Render("# A\n\none two three four five", core.PageMetadata{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	var page core.PageJSON
	if err := json.Unmarshal(out, &page); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	want := []string{"A one two three", "four five"}
	if strings.Join(page.Content.Chunks, "|") != strings.Join(want, "|") {
		t.Errorf("Chunks = %q, want %q", page.Content.Chunks, want)
	}
}

func TestPDFRenderer(t *testing.T) {
	out, err := NewPDFRenderer().Render(sample+"\n\nCurly “quotes” and ✓ marks.", meta)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("expected PDF header, got %q", out[:min(len(out), 8)])
	}
}

func TestForFormat(t *testing.T) {
	tests := map[string]string{"markdown": ".mdc", "": ".mdc", "JSON": ".json", "pdf": ".pdf"}
	for format, ext := range tests {
		r, err := ForFormat(format, Options{})
		if err != nil {
			t.Errorf("ForFormat(%q) error = %v", format, err)
			continue
		}
		if r.Extension() != ext {
			t.Errorf("ForFormat(%q).Extension() = %q, want %q", format, r.Extension(), ext)
		}
	}

	if _, err := ForFormat("docx", Options{}); err == nil {
		t.Error("expected error for unknown format")
	}
}
