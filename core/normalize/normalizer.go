// Package normalize implements the Normalizer interface.
// It rewrites transducer output into canonical Markdown by running an
// ordered list of textual passes (see DefaultPasses).
package normalize

import (
	"strings"

	"github.com/gaurav-prasanna/docmark/core"
)

var _ core.Normalizer = (*Normalizer)(nil)

// maxSweeps bounds how often the pass sequence is repeated while
// looking for a fixed point.
const maxSweeps = 10

// Normalizer applies the pass sequence until the text stops changing.
// A single sweep is not always stable (a pass can expose input for an
// earlier one), so repeating it is what makes Normalize idempotent.
type Normalizer struct {
	passes []Pass
	sweeps int
}

// New creates a Normalizer with DefaultPasses.
func New() *Normalizer {
	return &Normalizer{passes: DefaultPasses, sweeps: maxSweeps}
}

// NewWithPasses creates a Normalizer with a custom pass order. It is
// meant for tests and experiments; the default order is load-bearing.
func NewWithPasses(passes ...Pass) *Normalizer {
	return &Normalizer{passes: passes, sweeps: maxSweeps}
}

// Normalize returns the canonical form of markdown.
func (n *Normalizer) Normalize(markdown string) string {
	out, _ := n.NormalizeSweeps(markdown)
	return out
}

// NormalizeSweeps is Normalize that also reports how many sweeps ran.
func (n *Normalizer) NormalizeSweeps(markdown string) (string, int) {
	current := strings.ReplaceAll(markdown, "\r\n", "\n")
	for sweep := 1; sweep <= n.sweeps; sweep++ {
		next := n.Sweep(current)
		if next == current {
			return next, sweep
		}
		current = next
	}
	return current, n.sweeps
}

// Sweep runs every pass once, in order.
func (n *Normalizer) Sweep(markdown string) string {
	for _, p := range n.passes {
		markdown = p.Apply(markdown)
	}
	return markdown
}
