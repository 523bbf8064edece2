// Package render: JSON renderer.
// Builds the structured JSON output from Markdown and page metadata.
// Structure is read from the block scan, so code fences are opaque:
// a "#" line inside a fence is not a heading.
package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/docmark/core"
	"github.com/gaurav-prasanna/docmark/core/chunk"
)

// JSONRenderer produces structured JSON output from Markdown.
type JSONRenderer struct {
	chunker *chunk.Chunker
}

// NewJSONRenderer creates a JSONRenderer. When chunkWords > 0 the output
// also carries the content split into chunks of that many words.
func NewJSONRenderer(chunkWords int) *JSONRenderer {
	r := &JSONRenderer{}
	if chunkWords > 0 {
		r.chunker = chunk.New(chunkWords)
	}
	return r
}

// Render converts Markdown and metadata into the JSON envelope.
func (r *JSONRenderer) Render(markdown string, meta core.PageMetadata) ([]byte, error) {
	blocks := chunk.Scan(markdown)

	page := core.PageJSON{
		Metadata: meta,
		Content: core.PageContent{
			Text:     plainText(blocks),
			Markdown: markdown,
			Sections: sections(blocks),
		},
		Structure: structure(blocks),
	}
	if r.chunker != nil {
		page.Content.Chunks = r.chunker.Chunk(markdown)
	}

	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// linkRegex matches Markdown links [text](url).
var linkRegex = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)

func structure(blocks []chunk.Block) core.PageStructure {
	s := core.PageStructure{
		Headings:   []core.Heading{},
		Links:      []core.Link{},
		CodeBlocks: []core.CodeBlock{},
	}
	for _, b := range blocks {
		switch b.Kind {
		case chunk.Heading:
			s.Headings = append(s.Headings, core.Heading{Level: b.Level, Text: b.Text()})
		case chunk.Code:
			s.CodeBlocks = append(s.CodeBlocks, core.CodeBlock{Language: b.Lang, Lines: len(b.Lines)})
			continue
		case chunk.ListItem:
			s.ListItems++
		case chunk.Table:
			if len(b.Lines) > 1 && chunk.IsTableSeparator(b.Lines[1]) {
				s.Tables++
			}
		}
		for _, m := range linkRegex.FindAllStringSubmatch(b.Text(), -1) {
			s.Links = append(s.Links, core.Link{Text: m[1], Href: m[2]})
		}
	}
	return s
}

func sections(blocks []chunk.Block) []core.Section {
	var out []core.Section
	for _, s := range chunk.Sections(blocks) {
		out = append(out, core.Section{Heading: s.Heading, Level: s.Level, Text: s.Text()})
	}
	return out
}

var (
	emphasisRegex   = regexp.MustCompile(`\*{1,3}([^*]+)\*{1,3}`)
	inlineCodeRegex = regexp.MustCompile("`([^`]+)`")
)

// plainText strips Markdown formatting. Code blocks keep their lines
// verbatim and lose their fences.
func plainText(blocks []chunk.Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		switch b.Kind {
		case chunk.Table:
			continue
		case chunk.Code:
			parts = append(parts, b.Text())
		default:
			parts = append(parts, stripInline(b.Text()))
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}

func stripInline(text string) string {
	text = linkRegex.ReplaceAllString(text, "$1")
	text = emphasisRegex.ReplaceAllString(text, "$1")
	return inlineCodeRegex.ReplaceAllString(text, "$1")
}
