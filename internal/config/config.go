// Package config contains everything related to configuration
package config

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

// Config holds the application configuration.
type Config struct {
	DatabasePath string
	ExportDir    string
	ProfilePath  string
	LogFile      string
	LogLevel     string

	Seed             int64
	DevicePixelRatio float64
	DefaultRange     usage.TimeRange
	Alerts           usage.AlertThresholds

	DesktopNotifications bool
	ProfileDebounce      time.Duration
	HistoryLimit         int
}

// Default values
const (
	defaultProfileDebounce = 250 * time.Millisecond
	defaultHistoryLimit    = 50
	appDirName             = "aimkt-usage"
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	alerts := usage.DefaultAlertThresholds().Merge(usage.AlertThresholds{
		ErrRate: getEnvFloat("ALERT_ERR_RATE", 0),
		P95:     getEnvFloat("ALERT_P95_MS", 0),
		Spend:   getEnvFloat("ALERT_SPEND", 0),
	})

	timeRange, err := usage.ParseTimeRange(getEnvString("DEFAULT_TIME_RANGE", "24h"))
	if err != nil {
		timeRange = usage.Range24h
	}

	cfg := &Config{
		DatabasePath:         getEnvString("DATABASE_PATH", getDefaultPath("usage.db")),
		ExportDir:            getEnvString("EXPORT_DIR", getDefaultPath("exports")),
		ProfilePath:          getEnvString("PROFILE_PATH", getDefaultPath("profile.yaml")),
		LogFile:              getEnvString("LOG_FILE", ""),
		LogLevel:             getEnvString("LOG_LEVEL", "info"),
		Seed:                 getEnvInt64("USAGE_SEED", usage.DefaultSeed),
		DevicePixelRatio:     getEnvFloat("DEVICE_PIXEL_RATIO", 1),
		DefaultRange:         timeRange,
		Alerts:               alerts,
		DesktopNotifications: getEnvBool("DESKTOP_NOTIFICATIONS", true),
		ProfileDebounce:      getEnvDuration("PROFILE_DEBOUNCE", defaultProfileDebounce),
		HistoryLimit:         int(getEnvInt64("HISTORY_LIMIT", defaultHistoryLimit)),
	}

	if err := ensureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", appDirName, ".env"),
			filepath.Join(home, ".aimkt", ".env"),
		)
	}

	// Parent directory (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(cwd), ".env"))
	}

	return paths
}

// getDefaultPath returns name inside the application config directory.
func getDefaultPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".config", appDirName, name)
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvBool accepts 1/0, true/false, yes/no and on/off.
func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return defaultValue
	}
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
