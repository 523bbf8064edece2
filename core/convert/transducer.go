// Package convert implements the Transducer interface.
// It converts a content-region HTML fragment into Markdown using
// html-to-markdown, with the code, list and link rules from rules.go
// registered ahead of the CommonMark defaults.
package convert

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/gaurav-prasanna/docmark/core"
)

var _ core.Transducer = (*Transducer)(nil)

// Transducer converts HTML to Markdown. The underlying converter is built
// once and only read afterwards.
type Transducer struct {
	conv *converter.Converter
}

// New creates a Transducer with the docmark conversion rules.
func New() *Transducer {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithHeadingStyle(commonmark.HeadingStyleATX),
				commonmark.WithEmDelimiter("*"),
				commonmark.WithStrongDelimiter("**"),
				commonmark.WithBulletListMarker("-"),
			),
			table.NewTablePlugin(),
		),
	)

	for _, tag := range ruleTags {
		if tag.inline {
			conv.Register.RendererFor(tag.name, converter.TagTypeInline, dispatch, converter.PriorityEarly)
			continue
		}
		conv.Register.RendererFor(tag.name, converter.TagTypeBlock, dispatch, converter.PriorityEarly)
	}

	return &Transducer{conv: conv}
}

// Transduce converts an HTML fragment into Markdown. Empty input yields
// empty output.
func (t *Transducer) Transduce(fragment string) (string, error) {
	if strings.TrimSpace(fragment) == "" {
		return "", nil
	}
	markdown, err := t.conv.ConvertString(fragment)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return markdown, nil
}
