package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/docmark/core/fetch"
	"github.com/gaurav-prasanna/docmark/core/output"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Print the content region of an HTML page",
	Long: `Extract removes boilerplate from an HTML page and prints the inner HTML
of its main content region, without converting it.

Examples:
  docmark extract page.html
  docmark extract - < page.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output file (default: stdout)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	name := inputName(args)
	page, err := fetch.NewWithStdin(cmd.InOrStdin()).Fetch(cmd.Context(), name)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	fragment, err := newPipeline().ExtractContentRegion(page.Content)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	dest, err := output.New(cmd.OutOrStdout()).Write(flagOutput, []byte(fragment+"\n"), ".html")
	if err != nil {
		return err
	}
	log.Info().Str("input", name).Str("output", dest).Msg("extracted")
	return nil
}
