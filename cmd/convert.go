// Package cmd: convert command.
// This is the main command that orchestrates the pipeline:
// load → select region → transduce → normalize → render → write.
package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/docmark/core"
	"github.com/gaurav-prasanna/docmark/core/fetch"
	"github.com/gaurav-prasanna/docmark/core/output"
	"github.com/gaurav-prasanna/docmark/core/pipeline"
	"github.com/gaurav-prasanna/docmark/core/render"
)

// Flag variables.
var (
	flagFormat    string
	flagTitle     string
	flagSourceURL string
	flagOutput    string
	flagKeepShort bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert an HTML page to Markdown, JSON or PDF",
	Long: `Convert selects the main content of an HTML page, converts it to
Markdown, normalizes it and renders it in the requested format.

Examples:
  docmark convert page.html
  docmark convert page.html --format json --output out/page
  curl -s https://example.com/docs | docmark convert --source-url https://example.com/docs --provider Example`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	flags := convertCmd.Flags()
	flags.StringVarP(&flagFormat, "format", "f", "markdown", "output format: "+strings.Join(render.Formats, ", "))
	flags.StringVar(&flagTitle, "title", "", "document title (default: the page <title>)")
	flags.StringVar(&flagSourceURL, "source-url", "", "URL the page was fetched from")
	flags.String("provider", "", "provider name for the front matter")
	flags.String("extension", "", "extension of Markdown output files (default .mdc)")
	flags.Int("chunk-words", 0, "add word chunks of this size to JSON output")
	flags.StringVarP(&flagOutput, "output", "o", "", "output file (default: stdout)")
	flags.BoolVar(&flagKeepShort, "keep-short", false, "write output even when the content is too short")

	_ = v.BindPFlag("provider", flags.Lookup("provider"))
	_ = v.BindPFlag("extension", flags.Lookup("extension"))
	_ = v.BindPFlag("chunk_words", flags.Lookup("chunk-words"))
}

func runConvert(cmd *cobra.Command, args []string) error {
	renderer, err := render.ForFormat(flagFormat, render.Options{
		Extension:  cfg.Extension,
		ChunkWords: cfg.ChunkWords,
	})
	if err != nil {
		return err
	}

	name := inputName(args)
	page, err := fetch.NewWithStdin(cmd.InOrStdin()).Fetch(cmd.Context(), name)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	log.Debug().Str("input", page.Name).Str("charset", page.Charset).Msg("loaded page")

	res, err := newPipeline().Process(page.Content)
	if err := checkLength(err, name); err != nil {
		return err
	}

	meta := core.PageMetadata{
		Title:     flagTitle,
		SourceURL: flagSourceURL,
		Provider:  cfg.Provider,
		Language:  res.Language,
		ScrapedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if meta.Title == "" {
		meta.Title = res.Title
	}

	data, err := renderer.Render(res.Markdown, meta)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	dest, err := output.New(cmd.OutOrStdout()).Write(flagOutput, data, renderer.Extension())
	if err != nil {
		return err
	}

	log.Info().
		Str("input", name).
		Str("output", dest).
		Str("rule", ruleName(res)).
		Int("length", res.Length).
		Msg("converted")
	return nil
}

// checkLength turns a short-content result into a warning when
// --keep-short is set. Other errors pass through.
func checkLength(err error, name string) error {
	if err == nil {
		return nil
	}
	if !errors.Is(err, pipeline.ErrInsufficientContent) {
		return fmt.Errorf("process: %w", err)
	}
	if !flagKeepShort {
		return fmt.Errorf("%s: %w", name, err)
	}
	log.Warn().Err(err).Str("input", name).Msg("content too short, keeping it")
	return nil
}

func ruleName(res *pipeline.Result) string {
	if res.Fallback {
		return "body"
	}
	return res.Rule
}
