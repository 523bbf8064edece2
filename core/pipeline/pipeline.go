// Package pipeline wires the three stages together:
// raw HTML -> content region -> Markdown -> canonical Markdown.
//
// A Pipeline holds no per-call state. Its stages are built once and
// only read afterwards, so one Pipeline can serve concurrent callers.
package pipeline

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gaurav-prasanna/docmark/core/convert"
	"github.com/gaurav-prasanna/docmark/core/extract"
	"github.com/gaurav-prasanna/docmark/core/normalize"
)

// MinContentLength is the shortest normalized Markdown considered usable.
const MinContentLength = 100

// ErrInsufficientContent is returned alongside a Result whose Markdown
// is shorter than the minimum length.
var ErrInsufficientContent = errors.New("insufficient content")

// Result is the output of one pipeline invocation.
type Result struct {
	Markdown string
	Title    string
	Language string
	// Rule names the region rule that matched; empty when Fallback is set.
	Rule     string
	Fallback bool
	// Length is the rune count of Markdown.
	Length int
}

// Pipeline runs region selection, transduction and normalization.
type Pipeline struct {
	selector   *extract.Selector
	transducer *convert.Transducer
	normalizer *normalize.Normalizer
	minLength  int
	logger     zerolog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for stage diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// WithMinLength overrides MinContentLength. Values < 0 are ignored; 0
// disables the check.
func WithMinLength(n int) Option {
	return func(p *Pipeline) {
		if n >= 0 {
			p.minLength = n
		}
	}
}

// WithSelector replaces the default region selector.
func WithSelector(s *extract.Selector) Option {
	return func(p *Pipeline) {
		if s != nil {
			p.selector = s
		}
	}
}

// New creates a Pipeline with the default stages.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		selector:   extract.New(),
		transducer: convert.New(),
		normalizer: normalize.New(),
		minLength:  MinContentLength,
		logger:     log.Logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ExtractContentRegion returns the inner HTML of the page's content region.
func (p *Pipeline) ExtractContentRegion(rawHTML string) (string, error) {
	doc, err := extract.Parse(rawHTML)
	if err != nil {
		return "", err
	}
	region := p.selector.Select(doc)
	p.logRegion(region)
	return region.HTML()
}

// Transduce converts an HTML fragment into raw Markdown.
func (p *Pipeline) Transduce(fragment string) (string, error) {
	return p.transducer.Transduce(fragment)
}

// NormalizeMarkdown returns the canonical form of markdown.
func (p *Pipeline) NormalizeMarkdown(markdown string) string {
	out, sweeps := p.normalizer.NormalizeSweeps(markdown)
	p.logger.Debug().Int("sweeps", sweeps).Int("in", len(markdown)).Int("out", len(out)).Msg("normalized markdown")
	return out
}

// Process runs the whole pipeline on a raw HTML page. When the result is
// too short it is still returned, together with an error wrapping
// ErrInsufficientContent.
func (p *Pipeline) Process(rawHTML string) (*Result, error) {
	doc, err := extract.Parse(rawHTML)
	if err != nil {
		return nil, err
	}

	// Metadata must be read before Select strips headers.
	title, lang := extract.Metadata(doc)

	region := p.selector.Select(doc)
	p.logRegion(region)

	fragment, err := region.HTML()
	if err != nil {
		return nil, err
	}

	raw, err := p.transducer.Transduce(fragment)
	if err != nil {
		return nil, err
	}

	res := p.result(p.NormalizeMarkdown(raw))
	res.Title = title
	res.Language = lang
	res.Rule = region.Rule
	res.Fallback = region.Fallback
	return res, p.check(res)
}

// ProcessMarkdown normalizes Markdown that was produced elsewhere and
// applies the same length check as Process.
func (p *Pipeline) ProcessMarkdown(markdown string) (*Result, error) {
	res := p.result(p.NormalizeMarkdown(markdown))
	return res, p.check(res)
}

func (p *Pipeline) result(markdown string) *Result {
	return &Result{
		Markdown: markdown,
		Length:   utf8.RuneCountInString(markdown),
	}
}

func (p *Pipeline) check(res *Result) error {
	if res.Length < p.minLength {
		p.logger.Debug().Int("length", res.Length).Int("min", p.minLength).Msg("content too short")
		return fmt.Errorf("%w: %d characters, need %d", ErrInsufficientContent, res.Length, p.minLength)
	}
	return nil
}

func (p *Pipeline) logRegion(r extract.Region) {
	if r.Fallback {
		p.logger.Debug().Int("text", r.TextLength()).Msg("no region rule matched, using body")
		return
	}
	p.logger.Debug().Str("rule", r.Rule).Int("text", r.TextLength()).Msg("selected content region")
}

var defaultPipeline = New(WithLogger(zerolog.Nop()))

// ExtractContentRegion runs the default pipeline's region selector.
func ExtractContentRegion(rawHTML string) (string, error) {
	return defaultPipeline.ExtractContentRegion(rawHTML)
}

// NormalizeMarkdown runs the default pipeline's normalizer.
func NormalizeMarkdown(markdown string) string {
	return defaultPipeline.NormalizeMarkdown(markdown)
}
