package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	configPath string
	verbose    bool
	jsonLog    bool
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "frontend-tester",
		Short: "AI-powered frontend regression testing",
		Long: `frontend-tester analyzes web pages with a real browser and an LLM, then
generates Gherkin feature files and pytest-bdd step definitions from the analysis.

Example:
  frontend-tester init --url http://localhost:3000
  frontend-tester analyze http://localhost:3000 --crawl --max-pages 20
  frontend-tester generate http://localhost:3000 --output-dir .frontend-tester
  frontend-tester run --tag smoke`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./config.yaml, then ~/.config/frontend-tester/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json", false, "Write logs as JSON")

	rootCmd.AddCommand(
		newInitCmd(),
		newConfigCmd(),
		newAnalyzeCmd(),
		newGenerateCmd(),
		newRunCmd(),
	)
	return rootCmd
}

func setupLogging() {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	}

	if jsonLog {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
