package config

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadIn loads the configuration with an isolated HOME and the given local
// config file contents.
func loadIn(t *testing.T, local string) (*Config, error) {
	t.Helper()
	return loadWith(t, local, false)
}

func loadWith(t *testing.T, local string, debug bool) (*Config, error) {
	t.Helper()
	home := t.TempDir()
	wd := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("INFDIR_DEV_DEBUG", "")
	if local != "" {
		require.NoError(t, os.WriteFile(filepath.Join(wd, ".infdir.json"), []byte(local), 0o644))
	}

	Reset()
	t.Cleanup(Reset)
	return Load(wd, debug)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadIn(t, "")
	require.NoError(t, err)

	assert.Equal(t, ".infdir", cfg.Data.Directory)
	assert.Equal(t, DefaultBaseURL, cfg.Dataset.BaseURL)
	assert.Equal(t, DefaultPageSize, cfg.Dataset.PageSize)
	assert.Equal(t, DefaultTimeout, cfg.Dataset.Timeout)
	assert.Equal(t, 300*time.Millisecond, cfg.Search.Debounce())
	assert.Equal(t, DefaultMaxDistance, cfg.Search.MaxDistance)
	assert.Equal(t, DefaultTheme, cfg.TUI.Theme)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.Providers)
	assert.Same(t, cfg, Get())
}

func TestLoadDebugFlag(t *testing.T) {
	cfg, err := loadWith(t, `{"debug": false}`, true)
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))

	cfg, err = loadWith(t, "", false)
	require.NoError(t, err)
	assert.False(t, cfg.Debug)
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
}

func TestLoadLocalConfig(t *testing.T) {
	cfg, err := loadIn(t, `{
		"dataset": {"pageSize": 50, "timeout": "5s"},
		"search": {"debounceMs": 150},
		"tui": {"theme": "catppuccin-latte"},
		"providers": [{"id": "groq", "name": "Groq"}]
	}`)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Dataset.PageSize)
	assert.Equal(t, 5*time.Second, cfg.Dataset.Timeout)
	assert.Equal(t, 150*time.Millisecond, cfg.Search.Debounce())
	assert.Equal(t, "catppuccin-latte", cfg.TUI.Theme)
	require.Len(t, cfg.Providers, 1)
	assert.Equal(t, "groq", cfg.Providers[0].ID)
	assert.Equal(t, "Groq", cfg.Providers[0].Name)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("INFDIR_DATASET_PAGESIZE", "25")
	t.Setenv("HF_TOKEN", "hf_test")
	cfg, err := loadIn(t, "")
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Dataset.PageSize)
	assert.Equal(t, "hf_test", cfg.Dataset.Token)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		local    string
		errorMsg string
		check    func(t *testing.T, cfg *Config)
	}{
		{
			name:  "non-positive page size is reset",
			local: `{"dataset": {"pageSize": -3}}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultPageSize, cfg.Dataset.PageSize)
			},
		},
		{
			name:  "page size above the server limit is reset",
			local: `{"dataset": {"pageSize": 500}}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultPageSize, cfg.Dataset.PageSize)
			},
		},
		{
			name:  "negative search settings are reset",
			local: `{"search": {"debounceMs": -1, "maxDistance": -1}}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultDebounceMs, cfg.Search.DebounceMs)
				assert.Equal(t, DefaultMaxDistance, cfg.Search.MaxDistance)
			},
		},
		{
			name:  "zero debounce is allowed",
			local: `{"search": {"debounceMs": 0}}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Zero(t, cfg.Search.Debounce())
			},
		},
		{
			name:     "relative base URL",
			local:    `{"dataset": {"baseURL": "not a url"}}`,
			errorMsg: "invalid dataset base URL",
		},
		{
			name:     "provider without id",
			local:    `{"providers": [{"name": "Nameless"}]}`,
			errorMsg: "provider 0 has no id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadIn(t, tt.local)
			if tt.errorMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestValidateWithoutLoad(t *testing.T) {
	Reset()
	assert.EqualError(t, Validate(), "config not loaded")
}

func TestUpdateTheme(t *testing.T) {
	_, err := loadIn(t, "")
	require.NoError(t, err)

	require.NoError(t, UpdateTheme("catppuccin-frappe"))
	assert.Equal(t, "catppuccin-frappe", Get().TUI.Theme)

	data, err := os.ReadFile(filepath.Join(os.Getenv("HOME"), ".infdir.json"))
	require.NoError(t, err)
	var written map[string]any
	require.NoError(t, json.Unmarshal(data, &written))
	assert.Equal(t, map[string]any{"theme": "catppuccin-frappe"}, written["tui"])
}
