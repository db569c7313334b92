package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.ServerURL)
	assert.Equal(t, 30, cfg.TimeoutSecs)
	assert.Equal(t, "auto", cfg.Theme)
	assert.Equal(t, 10, cfg.PageSize)
	assert.True(t, cfg.Connection.Empty())
}

func TestSaveLoadRoundtrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := defaultConfig()
	cfg.ServerURL = "http://db-tools:9000"
	cfg.Theme = "light"
	cfg.Connection = ConnectionProfile{Host: "db", Port: 5433, User: "ada", Database: "app"}
	require.NoError(t, SaveConfig(cfg))

	got, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadConfigFillsPartialFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "querygenie")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte("theme = \"dark\"\n"), 0644))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, "http://localhost:8000", cfg.ServerURL)
	assert.Equal(t, 10, cfg.PageSize)
}

func TestConnectionProfileKey(t *testing.T) {
	p := ConnectionProfile{Host: "db", Port: 5432, User: "ada", Database: "app"}
	assert.Equal(t, "ada@db/app", p.Key())
	assert.False(t, p.Empty())
	assert.True(t, ConnectionProfile{}.Empty())
}

func TestTimeoutFromConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.TimeoutSecs = 5
	assert.Equal(t, 5*time.Second, timeoutFromConfig(cfg))
}
