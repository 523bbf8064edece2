package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/docmark/core/fetch"
	"github.com/gaurav-prasanna/docmark/core/output"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [file]",
	Short: "Normalize Markdown produced elsewhere",
	Long: `Normalize runs the Markdown normalizer on an existing document, for
content that was converted by another tool or service.

Examples:
  docmark normalize crawl-output.md -o clean.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
	normalizeCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output file (default: stdout)")
	normalizeCmd.Flags().BoolVar(&flagKeepShort, "keep-short", false, "write output even when the content is too short")
}

func runNormalize(cmd *cobra.Command, args []string) error {
	name := inputName(args)
	doc, err := fetch.NewWithStdin(cmd.InOrStdin()).FetchText(cmd.Context(), name)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	res, err := newPipeline().ProcessMarkdown(doc.Content)
	if err := checkLength(err, name); err != nil {
		return err
	}

	dest, err := output.New(cmd.OutOrStdout()).Write(flagOutput, []byte(res.Markdown+"\n"), ".md")
	if err != nil {
		return err
	}
	log.Info().Str("input", name).Str("output", dest).Int("length", res.Length).Msg("normalized")
	return nil
}
