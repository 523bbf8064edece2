// Package core defines the pipeline interfaces for docmark.
// Each stage of the pipeline is a clean, testable interface.
package core

// PageMetadata describes where a page came from. Renderers turn it into
// front matter or a JSON envelope; the pipeline itself never writes it.
type PageMetadata struct {
	Title     string `json:"title" yaml:"title,omitempty"`
	SourceURL string `json:"source_url" yaml:"source_url,omitempty"`
	Provider  string `json:"provider" yaml:"provider,omitempty"`
	Language  string `json:"language" yaml:"-"`
	ScrapedAt string `json:"scraped_at" yaml:"scraped_at,omitempty"` // ISO8601
}

// IsZero reports whether no provenance field is set.
func (m PageMetadata) IsZero() bool {
	return m.Title == "" && m.SourceURL == "" && m.Provider == "" && m.ScrapedAt == ""
}

// Section represents a heading-delimited section of content.
type Section struct {
	Heading string `json:"heading"`
	Level   int    `json:"level"`
	Text    string `json:"text"`
}

// Heading represents a single heading found in the content.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link represents a hyperlink found in the content.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// CodeBlock is a fenced block and its language tag.
type CodeBlock struct {
	Language string `json:"language"`
	Lines    int    `json:"lines"`
}

// PageContent holds the text and structured content of a page.
type PageContent struct {
	Text     string    `json:"text"`
	Markdown string    `json:"markdown"`
	Sections []Section `json:"sections"`
	Chunks   []string  `json:"chunks,omitempty"`
}

// PageStructure holds structural metadata parsed from the content.
type PageStructure struct {
	Headings   []Heading   `json:"headings"`
	Links      []Link      `json:"links"`
	CodeBlocks []CodeBlock `json:"code_blocks"`
	Tables     int         `json:"tables"`
	ListItems  int         `json:"list_items"`
}

// PageJSON is the complete JSON output for a single page.
type PageJSON struct {
	Metadata  PageMetadata  `json:"metadata"`
	Content   PageContent   `json:"content"`
	Structure PageStructure `json:"structure"`
}

// Extractor locates the main content of a raw HTML page and returns it
// as a standalone HTML fragment with boilerplate removed.
type Extractor interface {
	Extract(html string) (string, error)
}

// Transducer converts an HTML fragment into Markdown.
type Transducer interface {
	Transduce(html string) (string, error)
}

// Normalizer rewrites Markdown into its canonical shape. It never fails.
type Normalizer interface {
	Normalize(markdown string) string
}

// Renderer converts normalized Markdown (and metadata) into a final output format.
type Renderer interface {
	Render(markdown string, meta PageMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
