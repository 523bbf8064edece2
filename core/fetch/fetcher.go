// Package fetch loads already-retrieved HTML or Markdown from a file or
// stdin and decodes it to UTF-8.
package fetch

import (
	"context"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

// Stdin is the name that selects standard input.
const Stdin = "-"

// maxInputSize caps how much a single document may occupy in memory.
const maxInputSize = 64 << 20

// Result is one loaded document.
type Result struct {
	// Name is the file path, or "-" for stdin.
	Name string
	// Charset is the detected source encoding.
	Charset string
	Content string
}

// Fetcher reads documents from the local filesystem or a stdin stream.
type Fetcher struct {
	stdin io.Reader
}

// New creates a Fetcher that reads "-" from os.Stdin.
func New() *Fetcher {
	return &Fetcher{stdin: os.Stdin}
}

// NewWithStdin creates a Fetcher that reads "-" from r.
func NewWithStdin(r io.Reader) *Fetcher {
	return &Fetcher{stdin: r}
}

// Fetch loads an HTML document. The encoding is taken from a BOM or a
// <meta charset> declaration in the first kilobyte. Without either, a body
// that is valid UTF-8 is kept as is.
func (f *Fetcher) Fetch(ctx context.Context, name string) (*Result, error) {
	return f.load(ctx, name, true)
}

// FetchText loads a text document (Markdown) without charset sniffing.
func (f *Fetcher) FetchText(ctx context.Context, name string) (*Result, error) {
	return f.load(ctx, name, false)
}

func (f *Fetcher) load(ctx context.Context, name string, sniff bool) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" {
		name = Stdin
	}

	var src io.Reader
	if name == Stdin {
		src = f.stdin
	} else {
		file, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", name, err)
		}
		defer file.Close()
		src = file
	}

	body, err := io.ReadAll(io.LimitReader(src, maxInputSize))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if !sniff {
		return &Result{Name: name, Charset: "utf-8", Content: string(body)}, nil
	}

	e, enc, certain := charset.DetermineEncoding(body, "text/html")
	// The sniffer only sees the first kilobyte, so an ASCII head falls
	// back to windows-1252 even when UTF-8 follows.
	if !certain && enc == "windows-1252" && utf8.Valid(body) {
		return &Result{Name: name, Charset: "utf-8", Content: string(body)}, nil
	}
	decoded, err := e.NewDecoder().Bytes(body)
	if err != nil {
		return nil, fmt.Errorf("decoding %s as %s: %w", name, enc, err)
	}
	return &Result{Name: name, Charset: enc, Content: string(decoded)}, nil
}
