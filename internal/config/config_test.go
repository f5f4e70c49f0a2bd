package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("", false)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.Equal(t, "en", cfg.UI.Language)
	assert.False(t, cfg.UI.SidebarCollapsed)
	assert.DirExists(t, cfg.DataDirectory)
}

func TestLoadFromConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"baseURL": "https://sql.example.com", "timeout": "5s"}`), 0644))

	cfg, err := Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, "https://sql.example.com", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.Debug)
}

func TestPrefsRoundTrip(t *testing.T) {
	cfg := &Config{DataDirectory: t.TempDir()}

	prefs := UIPrefs{Theme: "dark", Language: "ja", SidebarCollapsed: true}
	require.NoError(t, cfg.SavePrefs(prefs))

	loaded, err := cfg.LoadPrefs()
	require.NoError(t, err)
	assert.Equal(t, prefs, loaded)
}

func TestLoadAppliesPersistedPrefs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dataDir := filepath.Join(home, ".sqlpilot")
	require.NoError(t, os.MkdirAll(dataDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "prefs.json"),
		[]byte(`{"theme": "dark", "language": "ja", "sidebarCollapsed": false}`), 0644))

	cfg, err := Load("", false)
	require.NoError(t, err)

	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, "ja", cfg.UI.Language)
}
