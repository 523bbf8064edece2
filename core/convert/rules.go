package convert

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/JohannesKaufmann/dom"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Category is the element class a conversion rule is keyed by.
type Category int

const (
	CategoryDefault Category = iota
	CategoryCodeBlock
	CategoryInlineCode
	CategoryOrderedList
	CategoryUnorderedList
	CategoryLink
)

func (c Category) String() string {
	switch c {
	case CategoryCodeBlock:
		return "code-block"
	case CategoryInlineCode:
		return "inline-code"
	case CategoryOrderedList:
		return "ordered-list"
	case CategoryUnorderedList:
		return "unordered-list"
	case CategoryLink:
		return "link"
	default:
		return "default"
	}
}

// Rule renders one element. It has the converter's renderer signature so
// it can be registered directly.
type Rule func(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus

// rules is the dispatch table. CategoryDefault has no entry: those
// elements fall through to the CommonMark renderers.
var rules = map[Category]Rule{
	CategoryCodeBlock:     renderCodeBlock,
	CategoryInlineCode:    renderInlineCode,
	CategoryOrderedList:   renderOrderedList,
	CategoryUnorderedList: renderUnorderedList,
	CategoryLink:          renderLink,
}

// ruleTags are the tags routed through dispatch.
var ruleTags = []struct {
	name   string
	inline bool
}{
	{"pre", false},
	{"code", true},
	{"ol", false},
	{"ul", false},
	{"a", true},
}

// Classify returns the category of n. A <code> inside <pre> belongs to
// the code block and classifies as default.
func Classify(n *html.Node) Category {
	if n == nil || n.Type != html.ElementNode {
		return CategoryDefault
	}
	switch dom.NodeName(n) {
	case "pre":
		return CategoryCodeBlock
	case "code":
		for p := n.Parent; p != nil; p = p.Parent {
			if p.Type == html.ElementNode && dom.NodeName(p) == "pre" {
				return CategoryDefault
			}
		}
		return CategoryInlineCode
	case "ol":
		return CategoryOrderedList
	case "ul":
		return CategoryUnorderedList
	case "a":
		return CategoryLink
	}
	return CategoryDefault
}

// RuleFor returns the rule for a category, or nil for the default rule.
func RuleFor(c Category) Rule {
	return rules[c]
}

func dispatch(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	rule, ok := rules[Classify(n)]
	if !ok {
		return converter.RenderTryNext
	}
	return rule(ctx, w, n)
}

func renderCodeBlock(_ converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	pre := goquery.NewDocumentFromNode(n).Selection

	lang := ""
	if code := pre.Find("code").First(); code.Length() > 0 {
		lang = LanguageHint(code.AttrOr("class", ""))
	}
	if lang == "" {
		lang = LanguageHint(dom.GetAttributeOr(n, "class", ""))
	}

	w.WriteString(FenceCode(lang, pre.Text()))
	return converter.RenderSuccess
}

func renderInlineCode(_ converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	w.WriteString(InlineCode(goquery.NewDocumentFromNode(n).Text()))
	return converter.RenderSuccess
}

func renderOrderedList(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	w.WriteString(block(NumberItems(renderItems(ctx, n))))
	return converter.RenderSuccess
}

func renderUnorderedList(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	w.WriteString(block(BulletItems(renderItems(ctx, n))))
	return converter.RenderSuccess
}

func renderLink(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	var buf bytes.Buffer
	ctx.RenderChildNodes(ctx, &buf, n)
	w.WriteString(Link(buf.String(), dom.GetAttributeOr(n, "href", "")))
	return converter.RenderSuccess
}

// renderItems renders the content of each direct <li> child.
func renderItems(ctx converter.Context, list *html.Node) []string {
	var items []string
	for c := list.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || dom.NodeName(c) != "li" {
			continue
		}
		var buf bytes.Buffer
		ctx.RenderChildNodes(ctx, &buf, c)
		items = append(items, buf.String())
	}
	return items
}

var languageClass = regexp.MustCompile(`language-(\w+)`)

// LanguageHint returns the <name> of a "language-<name>" class, or "".
func LanguageHint(class string) string {
	m := languageClass.FindStringSubmatch(class)
	if m == nil {
		return ""
	}
	return m[1]
}

// FenceCode renders a fenced code block tagged with lang.
func FenceCode(lang, code string) string {
	return "\n\n```" + lang + "\n" + strings.Trim(code, "\r\n") + "\n```\n\n"
}

// InlineCode wraps text in single backticks. Blank text renders as "".
func InlineCode(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return "`" + text + "`"
}

var (
	escapedOrdinal = regexp.MustCompile(`^\d+\\\.\s*`)
	bulletMarker   = regexp.MustCompile(`^[*\-+]\s*`)
)

// NumberItems numbers items from 1, whatever the source numbering was.
// Nested content of an item continues on indented lines.
func NumberItems(items []string) string {
	var lines []string
	n := 0
	for _, item := range items {
		first, rest := splitItem(item)
		first = escapedOrdinal.ReplaceAllString(first, "")
		if first == "" && len(rest) == 0 {
			continue
		}
		n++
		lines = append(lines, strconv.Itoa(n)+". "+first)
		lines = appendContinuation(lines, rest)
	}
	return strings.Join(lines, "\n")
}

// BulletItems renders items with the "-" marker, replacing any "*", "+"
// or "-" the item text already starts with.
func BulletItems(items []string) string {
	var lines []string
	for _, item := range items {
		first, rest := splitItem(item)
		first = bulletMarker.ReplaceAllString(first, "")
		if first == "" && len(rest) == 0 {
			continue
		}
		lines = append(lines, "- "+first)
		lines = appendContinuation(lines, rest)
	}
	return strings.Join(lines, "\n")
}

// Link renders [text](href). Missing destinations, bare "#" anchors and
// blank text drop the link markup and keep the text.
func Link(text, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || href == "#" || strings.TrimSpace(text) == "" {
		return text
	}
	return "[" + text + "](" + href + ")"
}

// splitItem returns the first non-blank line of a rendered item (trimmed)
// and the remaining non-blank lines.
func splitItem(item string) (string, []string) {
	var lines []string
	for _, line := range strings.Split(item, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimRight(line, " \t"))
		}
	}
	if len(lines) == 0 {
		return "", nil
	}
	return strings.TrimSpace(lines[0]), lines[1:]
}

func appendContinuation(lines, rest []string) []string {
	for _, line := range rest {
		lines = append(lines, "   "+line)
	}
	return lines
}

func block(s string) string {
	if s == "" {
		return ""
	}
	return "\n\n" + s + "\n\n"
}
