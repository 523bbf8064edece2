// Package cmd implements the CLI commands for docmark using Cobra.
package cmd

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/docmark/core/extract"
	"github.com/gaurav-prasanna/docmark/core/pipeline"
	"github.com/gaurav-prasanna/docmark/internal/config"
	"github.com/gaurav-prasanna/docmark/internal/logger"
)

var (
	v       = viper.New()
	cfg     *config.Config
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "docmark",
	Short: "Turn documentation HTML into canonical Markdown",
	Long: `docmark isolates the main content of an already-fetched documentation
page, converts it to Markdown and normalizes the result into a stable,
idempotent shape.

Input is a file path, or stdin when the path is "-" or omitted.

Usage:
  docmark convert page.html [flags]
  docmark extract page.html
  docmark normalize page.md`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./docmark.yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.BoolP("quiet", "q", false, "only log errors")
	flags.Bool("log-json", false, "log as JSON lines")

	_ = v.BindPFlag("log.debug", flags.Lookup("debug"))
	_ = v.BindPFlag("log.quiet", flags.Lookup("quiet"))
	_ = v.BindPFlag("log.json", flags.Lookup("log-json"))
}

// initConfig loads configuration and installs the logger before any
// subcommand runs.
func initConfig(cmd *cobra.Command, _ []string) error {
	paths := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "docmark"))
	}

	loaded, err := config.Load(v, cfgFile, paths...)
	if err != nil {
		return err
	}
	cfg = loaded

	logger.Init(logger.Options{
		Debug:  cfg.Log.Debug,
		Quiet:  cfg.Log.Quiet,
		JSON:   cfg.Log.JSON,
		Output: cmd.ErrOrStderr(),
	})
	log.Debug().Str("config", v.ConfigFileUsed()).Msg("configuration loaded")
	return nil
}

// newPipeline builds a pipeline from the loaded configuration.
func newPipeline() *pipeline.Pipeline {
	rules := make([]extract.Rule, 0, len(cfg.ExtraContentSelectors))
	for _, sel := range cfg.ExtraContentSelectors {
		rules = append(rules, extract.CSS(sel))
	}

	selector := extract.New(
		extract.WithRules(rules...),
		extract.WithBoilerplate(cfg.ExtraBoilerplate...),
		extract.WithMinLength(cfg.MinRegionLength),
	)
	return pipeline.New(
		pipeline.WithSelector(selector),
		pipeline.WithMinLength(cfg.MinContentLength),
		pipeline.WithLogger(log.Logger),
	)
}

// inputName returns the input argument, defaulting to stdin.
func inputName(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("docmark failed")
		os.Exit(1)
	}
}
