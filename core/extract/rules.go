package extract

import (
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// MinRegionLength is the number of text characters a candidate must
// exceed before it is accepted as the content region.
const MinRegionLength = 100

// boilerplateSelectors are removed from the whole document before any
// rule is evaluated, so later heuristics never see them.
var boilerplateSelectors = []string{
	// Navigation and page chrome.
	"nav", "header", "footer",
	".navbar", ".sidebar", ".breadcrumb", ".toc", ".advertisement",
	".nav", ".navigation", ".menu", ".header", ".footer",
	".ads", ".social", ".github-link",
	// Edit links and "last updated" metadata.
	".edit-page", ".page-meta", ".last-updated", ".edit-link", ".print-link",
	".feedback", ".rating", ".survey", ".newsletter-signup",
	// Non-content elements.
	"script", "style", "noscript", "iframe",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
	// Article metadata.
	".timestamp", ".author", ".tags", ".category", ".share-buttons",
	".reading-time", ".word-count", ".estimated-reading-time",
	// Tables of contents outside the article body.
	".table-of-contents", ".toc-container", "#toc",
}

// fallbackSelectors are stripped from the body when no rule matched.
var fallbackSelectors = []string{"nav", "header", "footer", "aside", ".sidebar"}

// residualSelectors are per-page metadata that may legitimately sit inside
// a content container; they are only removed from the chosen region.
var residualSelectors = []string{
	".edit-page", ".github-edit-link", ".improve-page",
	".page-last-modified", ".page-contributors",
}

// Predicate returns the candidate content node under root, or nil.
type Predicate func(root *html.Node) *html.Node

// Rule is one entry of the ordered content-region priority list.
type Rule struct {
	Name  string
	Match Predicate
}

// CSS builds a Rule whose candidate is the first node matching the
// selector. It panics on an invalid selector, like regexp.MustCompile.
func CSS(selector string) Rule {
	sel := cascadia.MustCompile(selector)
	return Rule{
		Name: selector,
		Match: func(root *html.Node) *html.Node {
			if root == nil {
				return nil
			}
			return sel.MatchFirst(root)
		},
	}
}

// DefaultRules lists content containers from the most specific
// documentation-site layouts to the most generic ones.
var DefaultRules = []Rule{
	CSS("main article"),
	CSS("main .content"),
	CSS(".main-content article"),
	CSS(".documentation .content"),
	CSS(".doc-content"),
	CSS(".article-content"),
	CSS(".markdown-body"),
	CSS(".prose"),
	CSS("article"),
	CSS("main"),
	CSS(".content"),
	CSS(".main-content"),
	CSS(".documentation"),
	CSS(".container .row .col"),
}
