package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-changewizard/internal/config"
	"github.com/goliatone/go-changewizard/internal/logging"
)

// Version set via ldflags during build
var version = "dev"

// exitAborted is the conventional status for a run ended by Ctrl+C.
const exitAborted = 130

type globalFlags struct {
	baseURL   string
	theme     string
	openapi   string
	layout    string
	draftFile string
	logLevel  string
	logFile   string
}

var rootFlags globalFlags

var (
	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:     "changewizard",
	Short:   "Record an IT change step by step",
	Version: version,
	Long: `changewizard walks through a four-step form (basics, impact, details,
outcome), validates each step, keeps a local draft, and creates the change
record on the backend.

Configuration is loaded from multiple sources with the following precedence:
  CLI flags > Environment variables (CHANGEWIZARD_*) > Project config > Global config > Defaults

Project config: ./changewizard.yaml
Global config: ~/.config/changewizard/config.yaml`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runWizard,
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start or resume a change record (default command)",
	Args:  cobra.NoArgs,
	RunE:  runWizard,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootFlags.baseURL, "base-url", "", "Backend base URL (server.base_url)")
	flags.StringVar(&rootFlags.theme, "theme", "", "Terminal theme variant: default or plain (ui.theme_variant)")
	flags.StringVar(&rootFlags.openapi, "openapi", "", "OpenAPI document path or URL (schema.openapi)")
	flags.StringVar(&rootFlags.layout, "layout", "", "Directory of step layout documents (schema.layout)")
	flags.StringVar(&rootFlags.draftFile, "draft-file", "", "Draft storage file (draft.path)")
	flags.StringVar(&rootFlags.logLevel, "log-level", "", "Log level (log.level)")
	flags.StringVar(&rootFlags.logFile, "log-file", "", "Log file, or stderr (log.file)")

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(schemaCmd)
}

// setup loads configuration and builds the logger before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(loaded)
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	logPath := cfg.Log.File
	if logPath == "" {
		logPath = logging.DefaultPath(config.StateDir())
	}
	built, err := logging.New(cfg.Log.Level, logPath)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = built.With(zap.String("command", cmd.Name()))
	return nil
}

func applyFlags(c *config.Config) {
	if rootFlags.baseURL != "" {
		c.Server.BaseURL = rootFlags.baseURL
	}
	if rootFlags.theme != "" {
		c.UI.ThemeVariant = rootFlags.theme
	}
	if rootFlags.openapi != "" {
		c.Schema.OpenAPI = rootFlags.openapi
	}
	if rootFlags.layout != "" {
		c.Schema.Layout = rootFlags.layout
	}
	if rootFlags.draftFile != "" {
		c.Draft.Path = rootFlags.draftFile
	}
	if rootFlags.logLevel != "" {
		c.Log.Level = rootFlags.logLevel
	}
	if rootFlags.logFile != "" {
		c.Log.File = rootFlags.logFile
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	switch {
	case err == nil:
	case errors.Is(err, errAborted):
		fmt.Fprintln(os.Stderr, "\nAborted. Your draft has been kept.")
		os.Exit(exitAborted)
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
