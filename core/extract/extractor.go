// Package extract implements the Extractor interface.
// It isolates the main content from a full HTML page by:
//  1. Removing boilerplate (nav, footer, sidebars, metadata, scripts) tree-wide
//  2. Picking the first rule candidate with enough text, else the body
//  3. Sweeping residual edit/contributor metadata from an owned copy
package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/docmark/core"
)

var _ core.Extractor = (*Selector)(nil)

// Region is the selected content subtree. It owns a deep copy of the
// nodes, so it stays valid after the source document is discarded.
type Region struct {
	// Rule is the name of the rule that matched; empty for the fallback.
	Rule string
	// Fallback is true when no rule matched and the body was used.
	Fallback bool

	node *html.Node
}

// Node returns the root of the owned subtree.
func (r Region) Node() *html.Node {
	return r.node
}

// HTML serializes the inner HTML of the region.
func (r Region) HTML() (string, error) {
	if r.node == nil {
		return "", nil
	}
	out, err := goquery.NewDocumentFromNode(r.node).Html()
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}
	return out, nil
}

// TextLength returns the number of characters of trimmed region text.
func (r Region) TextLength() int {
	if r.node == nil {
		return 0
	}
	return textLength(goquery.NewDocumentFromNode(r.node).Selection)
}

// Selector finds the content region of a page. The rule list and
// selector sets are fixed at construction and only read afterwards, so a
// Selector is safe for concurrent use.
type Selector struct {
	rules       []Rule
	boilerplate []string
	minLength   int
}

// Option configures a Selector.
type Option func(*Selector)

// WithRules evaluates the given rules before the default ones.
func WithRules(rules ...Rule) Option {
	return func(s *Selector) {
		s.rules = append(append([]Rule{}, rules...), s.rules...)
	}
}

// WithBoilerplate adds selectors to the tree-wide removal set.
func WithBoilerplate(selectors ...string) Option {
	return func(s *Selector) {
		s.boilerplate = append(s.boilerplate, selectors...)
	}
}

// WithMinLength overrides the acceptance threshold. Values < 0 are
// ignored; 0 accepts any candidate with text.
func WithMinLength(n int) Option {
	return func(s *Selector) {
		if n >= 0 {
			s.minLength = n
		}
	}
}

// New creates a Selector with the default rule list.
func New(opts ...Option) *Selector {
	s := &Selector{
		rules:       append([]Rule{}, DefaultRules...),
		boilerplate: append([]string{}, boilerplateSelectors...),
		minLength:   MinRegionLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Parse reads raw HTML into a document. The HTML parser is lenient, so
// malformed markup still yields a tree.
func Parse(rawHTML string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// Extract takes raw HTML and returns the inner HTML of its content region.
func (s *Selector) Extract(rawHTML string) (string, error) {
	doc, err := Parse(rawHTML)
	if err != nil {
		return "", err
	}
	return s.Select(doc).HTML()
}

// Select removes boilerplate from doc and returns an owned copy of the
// content region. It always returns a region; when no rule matches the
// body is used.
func (s *Selector) Select(doc *goquery.Document) Region {
	// Remove noise first, on the whole document.
	for _, sel := range s.boilerplate {
		doc.Find(sel).Remove()
	}

	root := doc.Get(0)
	region := Region{Fallback: true}

	for _, rule := range s.rules {
		candidate := rule.Match(root)
		if candidate == nil {
			continue
		}
		if textLength(goquery.NewDocumentFromNode(candidate).Selection) > s.minLength {
			region.Rule = rule.Name
			region.Fallback = false
			region.node = goquery.NewDocumentFromNode(candidate).Clone().Get(0)
			break
		}
	}

	if region.Fallback {
		body := doc.Find("body").First()
		if body.Length() == 0 {
			body = doc.Selection
		}
		copied := body.Clone()
		for _, sel := range fallbackSelectors {
			copied.Find(sel).Remove()
		}
		region.node = copied.Get(0)
	}

	sweep := goquery.NewDocumentFromNode(region.node)
	for _, sel := range residualSelectors {
		sweep.Find(sel).Remove()
	}
	return region
}

func textLength(sel *goquery.Selection) int {
	return utf8.RuneCountInString(strings.TrimSpace(sel.Text()))
}
