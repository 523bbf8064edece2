// Package render provides output renderers for docmark.
// This file implements the Markdown renderer, which prepends YAML front
// matter describing where the page came from.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/docmark/core"
)

// DefaultExtension is the extension of rendered Markdown reference files.
const DefaultExtension = ".mdc"

// MarkdownRenderer writes front matter followed by the Markdown body.
type MarkdownRenderer struct {
	ext string
}

// NewMarkdownRenderer creates a MarkdownRenderer. An empty ext selects
// DefaultExtension; a missing leading dot is added.
func NewMarkdownRenderer(ext string) *MarkdownRenderer {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &MarkdownRenderer{ext: ext}
}

// Render returns the document. Front matter is omitted when meta carries
// no provenance.
func (r *MarkdownRenderer) Render(markdown string, meta core.PageMetadata) ([]byte, error) {
	var buf bytes.Buffer

	if !meta.IsZero() {
		fm, err := yaml.Marshal(meta)
		if err != nil {
			return nil, fmt.Errorf("marshaling front matter: %w", err)
		}
		buf.WriteString("---\n")
		buf.Write(fm)
		buf.WriteString("---\n\n")
	}

	buf.WriteString(markdown)
	if markdown != "" && !strings.HasSuffix(markdown, "\n") {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// Extension returns the configured extension.
func (r *MarkdownRenderer) Extension() string {
	return r.ext
}
