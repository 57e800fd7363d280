// Package main is the entry point for the AI marketplace usage dashboard.
// It loads configuration, starts the services and runs the Bubble Tea program.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/aimkt-usage-tui/internal/app"
	"github.com/j-veylop/aimkt-usage-tui/internal/config"
	"github.com/j-veylop/aimkt-usage-tui/internal/logger"
	"github.com/j-veylop/aimkt-usage-tui/internal/services"
	"github.com/j-veylop/aimkt-usage-tui/internal/ui/tabs/breakdown"
	"github.com/j-veylop/aimkt-usage-tui/internal/ui/tabs/info"
	"github.com/j-veylop/aimkt-usage-tui/internal/ui/tabs/overview"
	"github.com/j-veylop/aimkt-usage-tui/internal/ui/tabs/reliability"
	"github.com/j-veylop/aimkt-usage-tui/internal/version"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logCloser, err := logger.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer logCloser.Close()

	logger.Info("starting", "version", version.GetVersion(), "profile", cfg.ProfilePath, "db", cfg.DatabasePath)

	// Opens the store and starts watching the profile file.
	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	model := app.NewModel(svcManager, cfg)

	// Tab order must match app.TabID.
	state := model.GetState()
	model.SetTabs([]app.Tab{
		overview.New(state),
		reliability.New(state),
		breakdown.New(state),
		info.New(state, cfg, svcManager),
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	logger.Info("stopped")
	return nil
}

func printUsage() {
	fmt.Println(`aimkt-usage - AI marketplace usage and reliability dashboard

Usage:
  aimkt-usage [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-4             Switch tabs (Overview, Reliability, Breakdown, Info)
  Tab/Shift+Tab   Navigate between tabs
  t               Cycle time range (24h, 7d, 30d)
  d               Cycle breakdown dimension
  a / b           Toggle first / second service
  i / o / v       Toggle tokens in / out / average per request
  R               Reset filters
  e / x           Export KPIs JSON / tables CSV
  y               Copy API command to clipboard
  p               Save chart PNGs
  s               Edit alert thresholds
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  DATABASE_PATH           SQLite database path
  EXPORT_DIR              Directory for JSON, CSV and PNG exports
  PROFILE_PATH            YAML traffic profile (watched for changes)
  PROFILE_DEBOUNCE        Reload debounce (default: 250ms)
  USAGE_SEED              Generator seed (default: 42)
  DEFAULT_TIME_RANGE      24h, 7d or 30d (default: 24h)
  DEVICE_PIXEL_RATIO      Scale for saved charts (default: 1)
  ALERT_ERR_RATE          Error rate threshold in % (default: 2)
  ALERT_P95_MS            p95 latency threshold in ms (default: 1500)
  ALERT_SPEND             Spend threshold in $ (default: 500)
  DESKTOP_NOTIFICATIONS   Notify on new breaches (default: true)
  HISTORY_LIMIT           Regenerations kept in the database (default: 50)
  LOG_FILE                Log file path (logging is off when empty)
  LOG_LEVEL               debug, info, warn or error (default: info)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/aimkt-usage/.env
  - ~/.aimkt/.env`)
}
