// Package chunk splits canonical Markdown into blocks and
// heading-delimited sections. It is fence-aware: nothing inside a code
// fence is read as a heading, list item or table row.
package chunk

import (
	"regexp"
	"strings"
)

// Kind is the type of a Markdown block.
type Kind int

const (
	Paragraph Kind = iota
	Heading
	ListItem
	Code
	Table
)

func (k Kind) String() string {
	switch k {
	case Heading:
		return "heading"
	case ListItem:
		return "list-item"
	case Code:
		return "code"
	case Table:
		return "table"
	default:
		return "paragraph"
	}
}

// Block is one contiguous Markdown block.
type Block struct {
	Kind Kind
	// Level is the heading depth, or the indentation of a list item.
	Level int
	// Lang is the fence tag of a code block.
	Lang string
	// Ordered is set for numbered list items.
	Ordered bool
	Lines   []string
}

// Text joins the block's lines.
func (b Block) Text() string {
	return strings.Join(b.Lines, "\n")
}

var (
	headingLine   = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	bulletLine    = regexp.MustCompile(`^(\s*)[-*+]\s+(.*)$`)
	numberedLine  = regexp.MustCompile(`^(\s*)\d+\.\s+(.*)$`)
	tableLine     = regexp.MustCompile(`^\s*\|.*\|\s*$`)
	separatorLine = regexp.MustCompile(`^\s*\|[-:| ]+\|\s*$`)
)

// Scan splits markdown into blocks. Blank lines end paragraphs and list
// items; indented lines continue the preceding list item.
func Scan(markdown string) []Block {
	var (
		blocks []Block
		cur    *Block
		fence  *Block
	)
	flush := func() {
		if cur != nil {
			blocks = append(blocks, *cur)
			cur = nil
		}
	}

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if fence != nil {
			if strings.HasPrefix(trimmed, "```") {
				blocks = append(blocks, *fence)
				fence = nil
				continue
			}
			fence.Lines = append(fence.Lines, line)
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "```"):
			flush()
			fence = &Block{Kind: Code, Lang: strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))}

		case trimmed == "":
			flush()

		case headingLine.MatchString(line):
			flush()
			m := headingLine.FindStringSubmatch(line)
			blocks = append(blocks, Block{Kind: Heading, Level: len(m[1]), Lines: []string{strings.TrimSpace(m[2])}})

		case bulletLine.MatchString(line):
			flush()
			m := bulletLine.FindStringSubmatch(line)
			cur = &Block{Kind: ListItem, Level: len(m[1]), Lines: []string{m[2]}}

		case numberedLine.MatchString(line):
			flush()
			m := numberedLine.FindStringSubmatch(line)
			cur = &Block{Kind: ListItem, Level: len(m[1]), Ordered: true, Lines: []string{trimmed}}

		case tableLine.MatchString(line):
			if cur == nil || cur.Kind != Table {
				flush()
				cur = &Block{Kind: Table}
			}
			cur.Lines = append(cur.Lines, trimmed)

		default:
			if cur == nil || cur.Kind == Table {
				flush()
				cur = &Block{Kind: Paragraph}
			}
			cur.Lines = append(cur.Lines, trimmed)
		}
	}

	flush()
	// An unterminated fence still holds code.
	if fence != nil {
		blocks = append(blocks, *fence)
	}
	return blocks
}

// IsTableSeparator reports whether line is a |---|---| row.
func IsTableSeparator(line string) bool {
	return separatorLine.MatchString(line)
}

// Section is a heading and the blocks up to the next heading.
type Section struct {
	Heading string
	Level   int
	Blocks  []Block
}

// Text renders the section body back to Markdown-ish text.
func (s Section) Text() string {
	parts := make([]string, 0, len(s.Blocks))
	for _, b := range s.Blocks {
		if b.Kind == Code {
			parts = append(parts, "```"+b.Lang+"\n"+b.Text()+"\n```")
			continue
		}
		parts = append(parts, b.Text())
	}
	return strings.Join(parts, "\n\n")
}

// Sections groups blocks under their headings. Blocks before the first
// heading are dropped.
func Sections(blocks []Block) []Section {
	var sections []Section
	for _, b := range blocks {
		if b.Kind == Heading {
			sections = append(sections, Section{Heading: b.Text(), Level: b.Level})
			continue
		}
		if len(sections) == 0 {
			continue
		}
		last := &sections[len(sections)-1]
		last.Blocks = append(last.Blocks, b)
	}
	return sections
}

// Chunker splits Markdown into word-bounded chunks that never cross a
// section boundary.
type Chunker struct {
	MaxWords int
}

// New creates a Chunker. Defaults to 512 words if maxWords <= 0.
func New(maxWords int) *Chunker {
	if maxWords <= 0 {
		maxWords = 512
	}
	return &Chunker{MaxWords: maxWords}
}

// Chunk returns the chunks of markdown. Each section (with its heading)
// is split into runs of at most MaxWords words.
func (c *Chunker) Chunk(markdown string) []string {
	blocks := Scan(markdown)
	var texts []string

	// Text before the first heading forms its own section.
	var lead []string
	for _, b := range blocks {
		if b.Kind == Heading {
			break
		}
		lead = append(lead, b.Text())
	}
	if len(lead) > 0 {
		texts = append(texts, strings.Join(lead, "\n\n"))
	}
	for _, s := range Sections(blocks) {
		texts = append(texts, s.Heading+"\n\n"+s.Text())
	}

	var chunks []string
	for _, text := range texts {
		words := strings.Fields(text)
		for i := 0; i < len(words); i += c.MaxWords {
			end := i + c.MaxWords
			if end > len(words) {
				end = len(words)
			}
			chunks = append(chunks, strings.Join(words[i:end], " "))
		}
	}
	return chunks
}
