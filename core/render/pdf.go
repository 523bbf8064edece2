// Package render: PDF renderer.
// Converts Markdown into a styled PDF using gofpdf.
// Handles headings (variable font sizes), paragraphs, code blocks, lists
// and tables (as monospace rows). Images are not rendered.
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/docmark/core"
	"github.com/gaurav-prasanna/docmark/core/chunk"
)

// PDFRenderer renders Markdown content as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts Markdown into PDF bytes. The core fonts only cover
// cp1252, so all text goes through a UTF-8 to cp1252 translator.
func (r *PDFRenderer) Render(markdown string, meta core.PageMetadata) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(meta.Title, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if meta.Title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, tr(meta.Title), "", "L", false)
		pdf.Ln(4)
	}
	if meta.SourceURL != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, tr("Source: "+meta.SourceURL), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	for _, b := range chunk.Scan(markdown) {
		switch b.Kind {
		case chunk.Heading:
			renderHeading(pdf, tr(cleanInlineMarkdown(b.Text())), b.Level)

		case chunk.Code, chunk.Table:
			pdf.Ln(2)
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			for _, line := range b.Lines {
				pdf.MultiCell(0, 4.5, tr(line), "", "L", true)
			}
			pdf.Ln(2)

		case chunk.ListItem:
			pdf.SetFont("Helvetica", "", 10)
			text := cleanInlineMarkdown(b.Text())
			if !b.Ordered {
				text = "• " + text
			}
			indent := float64(b.Level) * 2
			pdf.SetX(pdf.GetX() + indent)
			pdf.MultiCell(0, 5, tr(text), "", "L", false)
			pdf.Ln(1)

		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(b.Text())), "", "L", false)
			pdf.Ln(3)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

var headingSizes = map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	size, ok := headingSizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, text, "", "L", false)
	pdf.Ln(2)
}

var italicRegex = regexp.MustCompile(`(?:^|\s)\*([^*]+)\*(?:\s|$)`)

// cleanInlineMarkdown strips inline Markdown formatting for PDF rendering.
func cleanInlineMarkdown(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "__", "")
	// Italic markers, but not the apostrophe-like stars inside words.
	text = italicRegex.ReplaceAllString(text, " $1 ")
	text = inlineCodeRegex.ReplaceAllString(text, "$1")
	text = linkRegex.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
