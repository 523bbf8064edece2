package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Pass is one textual rewrite step of the normalizer.
type Pass struct {
	Name  string
	Apply func(string) string
}

// DefaultPasses is the fixed pass order. Noise removal runs before the
// structural repairs, sentence splitting runs after list layout is
// settled, and fence repair runs last. The numbering repair appears twice
// on purpose: the second run catches lines the first one cannot see.
var DefaultPasses = []Pass{
	{"collapse-blank-lines", collapseBlankLines},
	{"unescape-list-numbers", unescapeListNumbers},
	{"drop-noise-lines", dropNoiseLines},
	{"repair-nested-numbering", repairNestedNumberingLines},
	{"cap-heading-depth", capHeadingDepth},
	{"pad-headings", padHeadings},
	{"canonical-bullets", canonicalBullets},
	{"drop-empty-list-items", dropEmptyListItems},
	{"repair-nested-numbering-again", repairNestedNumbering},
	{"separate-list-items", separateListItems},
	{"split-sentences", splitSentences},
	{"repair-code-fences", repairCodeFences},
	{"final-whitespace", finalWhitespace},
}

var (
	blankRun        = regexp.MustCompile(`\n{3,}`)
	escapedNumber   = regexp.MustCompile(`(\d+)\\\.`)
	relativeTime    = regexp.MustCompile(`^(?:\[\d+\s+(?:months?|days?|years?)\s+ago\]|\d+\s+(?:months?|days?|years?)\s+ago$)`)
	readingTime     = regexp.MustCompile(`^\d+\s+min\s+read$`)
	headingMarker   = regexp.MustCompile(`^#+`)
	bulletMarker    = regexp.MustCompile(`^[-*+]`)
	numberMarker    = regexp.MustCompile(`^\d+\.`)
	doubleNumbered  = regexp.MustCompile(`^\d+\.\s+(\d+\.\s+.*)`)
	doubleNumberedM = regexp.MustCompile(`(?m)^(\d+)\.\s+(\d+)\.\s+`)
	deepHeading     = regexp.MustCompile(`(?m)^#{6,}`)
	headingLine     = regexp.MustCompile(`(?m)^(#+[^\n]+)$`)
	altBullet       = regexp.MustCompile(`(?m)^[*+][ \t]+`)
	emptyListItem   = regexp.MustCompile(`(?m)^[-*+][ \t]*$`)
	listLine        = regexp.MustCompile(`^(?:\d+\.|-)[ \t]`)
	wrappedFence    = regexp.MustCompile("```(\\w*)\\n`([^`]+)`\\n```")
)

// minLineRunes is the shortest plain line dropNoiseLines keeps.
const minLineRunes = 3

// noiseLines are exact navigation labels left behind by doc-site chrome.
var noiseLines = map[string]bool{
	"Cloud":             true,
	"Self-hosted":       true,
	"On This Page":      true,
	"In this article":   true,
	"Table of contents": true,
}

func collapseBlankLines(s string) string {
	return blankRun.ReplaceAllString(s, "\n\n")
}

func unescapeListNumbers(s string) string {
	return escapedNumber.ReplaceAllString(s, "$1.")
}

// dropNoiseLines removes navigation and metadata lines, and any line
// shorter than three characters that is not a heading or list marker.
// Blank lines count as short; later passes restore paragraph breaks.
func dropNoiseLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := make([]string, 0, len(lines))

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if relativeTime.MatchString(trimmed) || readingTime.MatchString(trimmed) || noiseLines[trimmed] {
			continue
		}
		// A "Note" that introduces a heading is real content.
		if trimmed == "Note" && i+1 < len(lines) && lines[i+1] != "" &&
			!strings.HasPrefix(strings.TrimSpace(lines[i+1]), "#") {
			continue
		}
		if utf8.RuneCountInString(trimmed) < minLineRunes && !headingMarker.MatchString(trimmed) &&
			!bulletMarker.MatchString(trimmed) && !numberMarker.MatchString(trimmed) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// repairNestedNumberingLines turns "1. 2. text" into "2. text", keeping
// the line's indentation.
func repairNestedNumberingLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !doubleNumbered.MatchString(trimmed) {
			continue
		}
		fixed := doubleNumbered.ReplaceAllString(trimmed, "$1")
		lines[i] = strings.Replace(line, trimmed, fixed, 1)
	}
	return strings.Join(lines, "\n")
}

func repairNestedNumbering(s string) string {
	return doubleNumberedM.ReplaceAllString(s, "$2. ")
}

func capHeadingDepth(s string) string {
	return deepHeading.ReplaceAllString(s, "#####")
}

func padHeadings(s string) string {
	return headingLine.ReplaceAllString(s, "\n$1\n")
}

func canonicalBullets(s string) string {
	return altBullet.ReplaceAllString(s, "- ")
}

func dropEmptyListItems(s string) string {
	return emptyListItem.ReplaceAllString(s, "")
}

// separateListItems puts every top-level list line in its own paragraph.
func separateListItems(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines)*2)
	for i, line := range lines {
		if i > 0 && listLine.MatchString(line) && strings.TrimSpace(lines[i-1]) != "" {
			out = append(out, "")
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// splitSentences inserts a paragraph break between sentence-ending
// punctuation and a capitalized sentence that itself ends in [.!?].
// It is lossy: abbreviations such as "e.g. Foo." are split too. The dot
// of an ordered list marker is not a sentence end, and neither is the end
// of a fragment shorter than minLineRunes, which dropNoiseLines would
// otherwise remove on the next sweep.
func splitSentences(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	i, start := 0, 0
	for i < len(s) {
		c := s[i]
		b.WriteByte(c)
		i++
		if c == '\n' {
			start = b.Len()
		}
		if !isTerminal(c) || (c == '.' && isOrdinal(s, i-1)) {
			continue
		}
		if utf8.RuneCountInString(strings.TrimSpace(b.String()[start:])) < minLineRunes {
			continue
		}
		j := i
		for j < len(s) && isSpace(s[j]) {
			j++
		}
		if j < len(s) && s[j] >= 'A' && s[j] <= 'Z' && strings.ContainsAny(s[j+1:], ".!?") {
			b.WriteString("\n\n")
			start = b.Len()
			i = j
		}
	}
	return b.String()
}

func repairCodeFences(s string) string {
	return wrappedFence.ReplaceAllString(s, "```$1\n$2\n```")
}

func finalWhitespace(s string) string {
	return strings.TrimSpace(collapseBlankLines(s))
}

// isOrdinal reports whether the dot at s[dot] ends a "N." list marker
// at the start of its line.
func isOrdinal(s string, dot int) bool {
	start := strings.LastIndexByte(s[:dot], '\n') + 1
	marker := strings.TrimLeft(s[start:dot], " \t")
	if marker == "" {
		return false
	}
	for i := 0; i < len(marker); i++ {
		if marker[i] < '0' || marker[i] > '9' {
			return false
		}
	}
	return true
}

func isTerminal(c byte) bool {
	return c == '.' || c == '!' || c == '?'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
