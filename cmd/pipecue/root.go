// Package main provides the CLI entrypoint for pipecue.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pipecue/internal/config"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
	}
	logger   *slog.Logger
	logLevel = new(slog.LevelVar)
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pipecue",
	Short: "Audible cues for opening and closing editor documents",
	Long: `pipecue plays a metal pipe when a new document becomes visible in your
editor and a glass pipe when the number of visible documents drops.

It runs as a companion process for an editor. The editor reports document
events over stdio (JSON lines), as a language server, or over D-Bus.

Running pipecue without a subcommand is the same as "pipecue serve".`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyLogLevel(cfg)

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pipecue:", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/pipecue/config.toml)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	logLevel.Set(slog.LevelWarn)

	// stderr only: stdout may carry the editor protocol
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// applyLogLevel sets the level from config; --verbose always wins.
func applyLogLevel(c *config.Config) {
	if globalOpts.verbose {
		logLevel.Set(slog.LevelDebug)
		return
	}
	level, err := config.ParseLevel(c.Log.Level)
	if err != nil {
		logger.Warn("invalid log level, keeping current", "level", c.Log.Level, "error", err)
		return
	}
	logLevel.Set(level)
}

// configPath returns the config file in use.
func configPath() string {
	if globalOpts.configPath != "" {
		return globalOpts.configPath
	}
	return config.ConfigPath()
}
