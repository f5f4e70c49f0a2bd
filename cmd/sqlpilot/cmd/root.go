package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/entrepeneur4lyf/sqlpilot/internal/app"
	"github.com/entrepeneur4lyf/sqlpilot/internal/config"
	"github.com/entrepeneur4lyf/sqlpilot/internal/tui"
)

var (
	debug      bool
	configPath string
	baseURL    string
)

var (
	logFile *os.File // For cleanup
)

// Global app instance shared by all commands
var pilotApp *app.App

// setupLogging redirects log output to a file so it cannot corrupt the
// terminal while the TUI owns it
func setupLogging(cfg *config.Config) (*log.Logger, error) {
	if debug {
		// In debug mode, keep logging to stderr
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Level:           log.DebugLevel,
		})
		return logger, nil
	}

	var err error
	logFile, err = os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		Level:           log.InfoLevel,
	})
	return logger, nil
}

// cleanupLogging closes the log file if it was opened
func cleanupLogging() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

var rootCmd = &cobra.Command{
	Use:   "sqlpilot",
	Short: "Terminal client for a natural-language SQL assistant",
	Long: `SQL Pilot is a terminal client for a natural-language SQL assistant.

Usage:
  sqlpilot                     # Start the interactive TUI
  sqlpilot ask "your question" # One-shot: generate SQL and show results
  sqlpilot login               # Sign in and cache the session
  sqlpilot history             # List past queries
  sqlpilot training list       # Inspect assistant training data

The TUI covers the full workflow: asking questions, browsing history,
curating training data, and preferences.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	SilenceErrors:     false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath, debug)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if baseURL != "" {
			cfg.BaseURL = baseURL
		}

		logger, err := setupLogging(cfg)
		if err != nil {
			return fmt.Errorf("failed to setup logging: %w", err)
		}

		pilotApp, err = app.New(context.Background(), cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		program := tea.NewProgram(tui.New(pilotApp), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("TUI exited with error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "", "Backend base URL (overrides config)")
}

func Execute() {
	// Setup cleanup on exit
	defer func() {
		if pilotApp != nil {
			pilotApp.Shutdown()
		}
		cleanupLogging()
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// requireSession guards one-shot commands that need an authenticated user
func requireSession() error {
	if pilotApp == nil {
		return fmt.Errorf("app not initialized")
	}
	if !pilotApp.Auth.IsAuthenticated() {
		return fmt.Errorf("not signed in: run 'sqlpilot login' first")
	}
	return nil
}
