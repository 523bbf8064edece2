package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/docmark/core"
)

// Formats lists the names accepted by ForFormat.
var Formats = []string{"markdown", "json", "pdf"}

// Options carries renderer settings that only some formats use.
type Options struct {
	// Extension of Markdown output.
	Extension string
	// ChunkWords adds word chunks to JSON output when > 0.
	ChunkWords int
}

// ForFormat returns the renderer for a format name.
func ForFormat(format string, opts Options) (core.Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "markdown", "md":
		return NewMarkdownRenderer(opts.Extension), nil
	case "json":
		return NewJSONRenderer(opts.ChunkWords), nil
	case "pdf":
		return NewPDFRenderer(), nil
	}
	return nil, fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
}
