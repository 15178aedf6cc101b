package main

import (
	"fmt"
	"os"

	"github.com/crisk221/jm-peak-performance-sub000/internal/config"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/constants"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "mealplan",
		Short:         "Generate macro-targeted meal plan drafts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// A missing .env file is normal outside local development.
			_ = godotenv.Load()
			if opts.configPath == constants.DefaultConfigFile {
				if env := os.Getenv("MEALPLAN_CONFIG"); env != "" {
					opts.configPath = env
				}
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", constants.DefaultConfigFile, "path to plan configuration file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	cmd.AddCommand(
		newGenerateCmd(opts),
		newTargetsCmd(opts),
		newServeCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// loadPlanConfig loads and validates the plan configuration and builds the
// logger it asks for. Warnings are logged, not returned.
func loadPlanConfig(opts *rootOptions) (*config.Configuration, *zap.Logger, error) {
	conf, err := config.LoadConfiguration(opts.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration at %s: %w", opts.configPath, err)
	}

	logger, err := initializeLogger(conf.Logging, opts.logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := conf.Validate(); err != nil {
		_ = logger.Sync()
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}
	return conf, logger, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": %q}\n", err.Error())
		os.Exit(1)
	}
}
