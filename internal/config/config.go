package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Application constants
const (
	appName         = "sqlpilot"
	defaultBaseURL  = "http://localhost:8000"
	defaultTimeout  = 30 * time.Second
	defaultTheme    = "light"
	defaultLanguage = "en"
	configFileName  = "config"
	prefsFileName   = "prefs.json"
)

// UIPrefs are the persisted presentation preferences: the local-storage
// analog of the client.
type UIPrefs struct {
	Theme            string `json:"theme"`
	Language         string `json:"language"`
	SidebarCollapsed bool   `json:"sidebarCollapsed"`
}

// Config is the main configuration structure for the application
type Config struct {
	BaseURL string        `json:"baseURL"`
	Timeout time.Duration `json:"timeout"`
	Debug   bool          `json:"debug,omitempty"`

	// DataDirectory holds logs, preferences, and store snapshots
	DataDirectory string `json:"dataDirectory,omitempty"`

	UI UIPrefs `json:"ui"`
}

// Load reads configuration from the config file, environment variables
// (SQLPILOT_ prefix), and an optional .env file, in ascending precedence
// of env over file over defaults.
func Load(configPath string, debug bool) (*Config, error) {
	// Best-effort .env load; absence is not an error
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType("json")
	v.SetEnvPrefix("SQLPILOT")
	v.AutomaticEnv()

	v.SetDefault("baseURL", defaultBaseURL)
	v.SetDefault("timeout", defaultTimeout.String())
	v.SetDefault("ui.theme", defaultTheme)
	v.SetDefault("ui.language", defaultLanguage)
	v.SetDefault("ui.sidebarCollapsed", false)

	dataDir, err := defaultDataDirectory()
	if err != nil {
		return nil, err
	}
	v.SetDefault("dataDirectory", dataDir)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(dataDir)
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; anything else is not
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	timeout, err := time.ParseDuration(v.GetString("timeout"))
	if err != nil {
		timeout = defaultTimeout
	}

	cfg := &Config{
		BaseURL:       v.GetString("baseURL"),
		Timeout:       timeout,
		Debug:         debug || v.GetBool("debug"),
		DataDirectory: v.GetString("dataDirectory"),
		UI: UIPrefs{
			Theme:            v.GetString("ui.theme"),
			Language:         v.GetString("ui.language"),
			SidebarCollapsed: v.GetBool("ui.sidebarCollapsed"),
		},
	}

	if err := os.MkdirAll(cfg.DataDirectory, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// Persisted preferences override config-file defaults
	if prefs, err := cfg.LoadPrefs(); err == nil {
		cfg.UI = prefs
	}

	return cfg, nil
}

// LoadPrefs reads the persisted UI preferences
func (c *Config) LoadPrefs() (UIPrefs, error) {
	var prefs UIPrefs
	data, err := os.ReadFile(filepath.Join(c.DataDirectory, prefsFileName))
	if err != nil {
		return prefs, err
	}
	if err := json.Unmarshal(data, &prefs); err != nil {
		return prefs, fmt.Errorf("failed to parse preferences: %w", err)
	}
	return prefs, nil
}

// SavePrefs writes the UI preferences to the data directory
func (c *Config) SavePrefs(prefs UIPrefs) error {
	c.UI = prefs

	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err := os.WriteFile(filepath.Join(c.DataDirectory, prefsFileName), data, 0644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}

// SnapshotDir returns the directory holding store snapshots
func (c *Config) SnapshotDir() string {
	return filepath.Join(c.DataDirectory, "state")
}

// LogPath returns the log file path used when the TUI owns the terminal
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDirectory, appName+".log")
}

// defaultDataDirectory resolves the per-user data directory
func defaultDataDirectory() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, "."+appName), nil
}
