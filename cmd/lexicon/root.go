package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"mercator-hq/lexicon/pkg/cli"
	"mercator-hq/lexicon/pkg/config"
	"mercator-hq/lexicon/pkg/telemetry/logging"
	"mercator-hq/lexicon/pkg/telemetry/metrics"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "lexicon.yaml"

var (
	// Global flags
	cfgFile     string
	verbose     bool
	logLevel    string
	logFormat   string
	metricsFile string
)

// appContext carries what every subcommand needs once the configuration
// has been loaded.
type appContext struct {
	cfg       *config.Config
	logger    *logging.Logger
	metrics   *metrics.Collector
	sessionID string
}

var app *appContext

var rootCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Lexicon - dictionary entry notation toolkit",
	Long: `Lexicon parses, validates and queries dictionary files written in the
entry notation: one headword per line with optional annotations, sub-entries
or a redirection to another headword.

  rise[sp:rose,pp:risen]
  abandon|abandoned,abandonment
  better>>(cmp)good

Validation finds duplicate headwords, words used both as headwords and as
sub-entries, and circular dependencies or redirections.`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupApp,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile, "config file path (optional unless set)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text, json, console")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the run")
}

// run executes the command line and returns the process exit code.
func run(args []string) int {
	return execute(context.Background(), args, os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app = nil
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	// cobra keeps a subcommand's context across executions.
	for _, c := range rootCmd.Commands() {
		c.SetContext(nil) //nolint:staticcheck
	}

	err := rootCmd.ExecuteContext(ctx)

	if app != nil {
		if werr := app.metrics.WriteTextfile(app.cfg.Metrics.Textfile); werr != nil {
			app.logger.Error("Failed to write metrics", "error", werr)
		}
	}

	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return cli.ExitCode(err)
}

// setupApp loads the configuration, applies flag overrides and builds the
// logger and metrics collector shared by the subcommand.
func setupApp(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.FromConfig(cfg.Logging, cmd.ErrOrStderr()))
	if err != nil {
		return cli.NewConfigError("logging", err.Error())
	}

	sessionID := uuid.NewString()
	ctx := logging.WithSession(cmd.Context(), sessionID)
	ctx = logging.WithCommand(ctx, cmd.Name())
	cmd.SetContext(ctx)

	app = &appContext{
		cfg:       cfg,
		logger:    logger,
		metrics:   metrics.NewCollector(&cfg.Metrics, nil),
		sessionID: sessionID,
	}
	config.SetConfig(cfg)

	logger.DebugContext(ctx, "Configuration loaded",
		"config", cfgFile,
		"validation_mode", cfg.Validation.Mode,
		"metrics", cfg.Metrics.Enabled,
	)
	return nil
}

func loadConfig(required bool) (*config.Config, error) {
	load := config.LoadOptional
	if required {
		load = config.LoadConfigWithEnvOverrides
	}
	cfg, err := load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	if metricsFile != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Textfile = metricsFile
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
