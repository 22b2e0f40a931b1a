package cmd

import (
	"log/slog"
	"os"

	"github.com/nikogura/career-roadmap/pkg/config"
	"github.com/nikogura/career-roadmap/pkg/logging"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "career-roadmap",
	Short: "Generate personalized career roadmap PDFs",
	Long: `career-roadmap turns a profile (education, skills, tools, preferred field
and dream role) into a single-page PDF roadmap with recommended skills,
career paths and a step-by-step plan for the chosen field.

Profiles are JSON documents. Every field is optional; missing values are
printed as placeholders.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		err = config.LoadDotEnv()
		if err != nil {
			err = errors.Wrap(err, "failed to load .env")
			return err
		}
		return err
	},
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.career-roadmap/config.json)")
}

// getVerbose returns the verbose flag value.
func getVerbose() (result bool) {
	result = verbose
	return result
}

// getConfigFile returns the config file path.
func getConfigFile() (result string) {
	result = configFile
	return result
}

// loadConfig reads the config file and builds the logger it describes.
func loadConfig() (cfg config.Config, logger *slog.Logger, err error) {
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return cfg, logger, err
	}

	logger, err = logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Writer: os.Stderr,
		Debug:  getVerbose(),
	})
	if err != nil {
		err = errors.Wrap(err, "failed to set up logging")
		return cfg, logger, err
	}

	return cfg, logger, err
}
