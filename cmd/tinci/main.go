package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/palemoky/tinci/internal/app"
	"github.com/palemoky/tinci/internal/config"
	"github.com/palemoky/tinci/internal/logger"
)

var (
	configPath   string
	corpusSource string
	corpusPath   string
	verbose      bool
	jsonOutput   bool
)

func main() {
	err := newRootCmd().Execute()
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tinci",
		Short: "Cantonese rhyme and tone lookup",
		Long:  "Look up jyutping, tone patterns and rhyming characters, and import rhyme tables into a SQLite snapshot",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			switch {
			case verbose:
				_ = logger.Configure(logger.Options{Level: "debug", Format: logger.FormatConsole, Service: "tinci"})
			case cmd.Name() == "import":
				_ = logger.Configure(logger.Options{Level: "info", Format: logger.FormatConsole, Service: "tinci"})
			default:
				logger.Replace(zap.NewNop())
			}
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Path to a config file (default: environment and built-in defaults)")
	flags.StringVar(&corpusSource, "source", "", "Corpus source: embedded, json or sqlite")
	flags.StringVar(&corpusPath, "corpus", "", "Path of the JSON table or SQLite snapshot")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log to stderr")
	flags.BoolVar(&jsonOutput, "json", false, "Print results as JSON")

	rootCmd.AddCommand(
		newImportCmd(),
		newJyutpingCmd(),
		newPatternCmd(),
		newRhymesCmd(),
		newFinalsCmd(),
		newCallCmd(),
	)
	return rootCmd
}

// loadConfig reads the configuration and applies the corpus flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if corpusSource != "" {
		cfg.Corpus.Source = corpusSource
	}
	if corpusPath != "" {
		cfg.Corpus.Path = corpusPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openApp loads the configured corpus. The caller closes the result.
func openApp() (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(cfg)
}
