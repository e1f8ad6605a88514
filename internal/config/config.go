// Package config manages application configuration from various sources.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/inference-directory/infdir/internal/catalog"
	"github.com/inference-directory/infdir/internal/logging"
	"github.com/spf13/viper"
)

// Data defines local storage used for logs and panic reports.
type Data struct {
	Directory string `json:"directory,omitempty"`
}

// DatasetConfig defines where and how the pricing dataset is fetched.
type DatasetConfig struct {
	BaseURL   string        `json:"baseURL,omitempty"`
	PageSize  int           `json:"pageSize,omitempty"`
	Timeout   time.Duration `json:"timeout,omitempty"`
	UserAgent string        `json:"userAgent,omitempty"`
	// Token is sent as a bearer token; datasets-server grants higher
	// rate limits to authenticated requests.
	Token string `json:"token,omitempty"`
}

// SearchConfig tunes the interactive search.
type SearchConfig struct {
	DebounceMs  int `json:"debounceMs,omitempty"`
	MaxDistance int `json:"maxDistance,omitempty"`
}

// Debounce returns the quiet period before a typed query runs.
func (s SearchConfig) Debounce() time.Duration {
	return time.Duration(s.DebounceMs) * time.Millisecond
}

// TUIConfig defines the configuration for the Terminal User Interface.
type TUIConfig struct {
	Theme string `json:"theme,omitempty"`
}

// Config is the main configuration structure for the application.
type Config struct {
	Data      Data               `json:"data"`
	Debug     bool               `json:"debug,omitempty"`
	Dataset   DatasetConfig      `json:"dataset"`
	Search    SearchConfig       `json:"search"`
	TUI       TUIConfig          `json:"tui"`
	Providers []catalog.Provider `json:"providers,omitempty"`
}

// Application constants
const (
	defaultDataDirectory = ".infdir"
	appName              = "infdir"

	DefaultPageSize    = 100
	MaxPageSize        = 100
	DefaultTimeout     = 30 * time.Second
	DefaultDebounceMs  = 300
	DefaultMaxDistance = 2
	DefaultTheme       = "catppuccin"
)

// DefaultBaseURL mirrors the dataset package default; kept here so the
// config schema can describe it without importing transport code.
const DefaultBaseURL = "https://datasets-server.huggingface.co/rows?dataset=cfahlgren1%2Fopen-inference-pricing&config=default&split=train"

// Global configuration instance
var cfg *Config

// Reset clears the global configuration, allowing Load to be called again.
// This is intended for use in tests only.
func Reset() {
	cfg = nil
	viper.Reset()
}

// Load initializes the configuration from environment variables and config files.
// If debug is true, debug mode is enabled and the log level drops to debug.
func Load(workingDir string, debug bool) (*Config, error) {
	if cfg != nil {
		return cfg, nil
	}

	cfg = &Config{}

	configureViper()
	setDefaults(debug)

	// Read global config
	if err := readConfig(viper.ReadInConfig()); err != nil {
		return cfg, err
	}

	// Load and merge local config
	mergeLocalConfig(workingDir)

	// Apply configuration to the struct
	if err := viper.Unmarshal(cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := setupLogging(); err != nil {
		return cfg, err
	}

	// Validate configuration
	if err := Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func setupLogging() error {
	defaultLevel := slog.LevelInfo
	if cfg.Debug {
		defaultLevel = slog.LevelDebug
	}
	if os.Getenv("INFDIR_DEV_DEBUG") != "true" {
		logger := slog.New(slog.NewTextHandler(logging.NewWriter(), &slog.HandlerOptions{
			Level: defaultLevel,
		}))
		slog.SetDefault(logger)
		return nil
	}

	if err := os.MkdirAll(cfg.Data.Directory, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	loggingFile := filepath.Join(cfg.Data.Directory, "debug.log")
	sloggingFileWriter, err := os.OpenFile(loggingFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logging.PanicDir = cfg.Data.Directory

	logger := slog.New(slog.NewTextHandler(sloggingFileWriter, &slog.HandlerOptions{
		Level: defaultLevel,
	}))
	slog.SetDefault(logger)
	return nil
}

// configureViper sets up viper's configuration paths and environment variables.
func configureViper() {
	viper.SetConfigName(fmt.Sprintf(".%s", appName))
	viper.SetConfigType("json")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(fmt.Sprintf("$XDG_CONFIG_HOME/%s", appName))
	viper.AddConfigPath(fmt.Sprintf("$HOME/.config/%s", appName))
	viper.SetEnvPrefix(strings.ToUpper(appName))
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// setDefaults configures default values for configuration options.
func setDefaults(debug bool) {
	viper.SetDefault("data.directory", defaultDataDirectory)
	viper.SetDefault("dataset.baseURL", DefaultBaseURL)
	viper.SetDefault("dataset.pageSize", DefaultPageSize)
	viper.SetDefault("dataset.timeout", DefaultTimeout)
	viper.SetDefault("dataset.userAgent", appName)
	viper.SetDefault("search.debounceMs", DefaultDebounceMs)
	viper.SetDefault("search.maxDistance", DefaultMaxDistance)
	viper.SetDefault("tui.theme", DefaultTheme)
	if token := os.Getenv("HF_TOKEN"); token != "" {
		viper.SetDefault("dataset.token", token)
	}

	viper.SetDefault("debug", false)
	if debug {
		viper.Set("debug", true)
	}
}

// readConfig handles the result of reading a configuration file.
func readConfig(err error) error {
	if err == nil {
		return nil
	}

	// It's okay if the config file doesn't exist
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return nil
	}

	return fmt.Errorf("failed to read config: %w", err)
}

// mergeLocalConfig loads and merges configuration from the local directory.
func mergeLocalConfig(workingDir string) {
	local := viper.New()
	local.SetConfigName(fmt.Sprintf(".%s", appName))
	local.SetConfigType("json")
	local.AddConfigPath(workingDir)

	// Merge local config if it exists
	if err := local.ReadInConfig(); err == nil {
		viper.MergeConfigMap(local.AllSettings())
	}
}

// Validate checks if the configuration is valid and applies defaults where needed.
func Validate() error {
	if cfg == nil {
		return fmt.Errorf("config not loaded")
	}

	if _, err := url.ParseRequestURI(cfg.Dataset.BaseURL); err != nil {
		return fmt.Errorf("invalid dataset base URL %q: %w", cfg.Dataset.BaseURL, err)
	}
	if cfg.Dataset.PageSize <= 0 || cfg.Dataset.PageSize > MaxPageSize {
		logging.Warn("invalid page size, setting to default",
			"pageSize", cfg.Dataset.PageSize,
			"default", DefaultPageSize)
		cfg.Dataset.PageSize = DefaultPageSize
	}
	if cfg.Dataset.Timeout <= 0 {
		logging.Warn("invalid dataset timeout, setting to default",
			"timeout", cfg.Dataset.Timeout,
			"default", DefaultTimeout)
		cfg.Dataset.Timeout = DefaultTimeout
	}
	if cfg.Search.DebounceMs < 0 {
		logging.Warn("negative debounce, setting to default", "debounceMs", cfg.Search.DebounceMs)
		cfg.Search.DebounceMs = DefaultDebounceMs
	}
	if cfg.Search.MaxDistance < 0 {
		logging.Warn("negative typo distance, setting to default", "maxDistance", cfg.Search.MaxDistance)
		cfg.Search.MaxDistance = DefaultMaxDistance
	}

	for i, p := range cfg.Providers {
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("provider %d has no id", i)
		}
	}
	return nil
}

// updateCfgFile edits the config file as a generic map so keys that are not
// modelled by Config survive the rewrite.
func updateCfgFile(updateCfg func(config map[string]any)) error {
	if cfg == nil {
		return fmt.Errorf("config not loaded")
	}

	// Get the config file path
	configFile := viper.ConfigFileUsed()
	var configData []byte
	if configFile == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		configFile = filepath.Join(homeDir, fmt.Sprintf(".%s.json", appName))
		logging.Info("config file not found, creating new one", "path", configFile)
		configData = []byte(`{}`)
	} else {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		configData = data
	}

	userCfg := map[string]any{}
	if err := json.Unmarshal(configData, &userCfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	updateCfg(userCfg)

	updatedData, err := json.MarshalIndent(userCfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configFile, updatedData, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Get returns the current configuration.
// It's safe to call this function multiple times.
func Get() *Config {
	return cfg
}

// UpdateTheme updates the theme in the configuration and writes it to the config file.
func UpdateTheme(themeName string) error {
	if cfg == nil {
		return fmt.Errorf("config not loaded")
	}

	cfg.TUI.Theme = themeName

	return updateCfgFile(func(config map[string]any) {
		tui, _ := config["tui"].(map[string]any)
		if tui == nil {
			tui = map[string]any{}
		}
		tui["theme"] = themeName
		config["tui"] = tui
	})
}
