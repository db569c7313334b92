package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// --- Configuration ---

type Config struct {
	ServerURL   string `toml:"server_url"`
	TimeoutSecs int    `toml:"timeout_secs"`
	Theme       string `toml:"theme"`
	PageSize    int    `toml:"page_size"`

	// Connection is the saved (non-secret) connection profile; the
	// password lives in the OS keyring under the profile key.
	Connection ConnectionProfile `toml:"connection"`
}

// ConnectionProfile pre-fills the database connection form.
type ConnectionProfile struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Database string `toml:"database"`
}

// Key identifies the profile's password entry in the keyring.
func (p ConnectionProfile) Key() string {
	return p.User + "@" + p.Host + "/" + p.Database
}

func (p ConnectionProfile) Empty() bool {
	return p.Host == "" && p.User == "" && p.Database == ""
}

func defaultConfig() Config {
	return Config{
		ServerURL:   "http://localhost:8000",
		TimeoutSecs: 30,
		Theme:       "auto",
		PageSize:    10,
	}
}

func getConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	// ~/.config/querygenie following XDG standard roughly
	return filepath.Join(home, ".config", "querygenie"), nil
}

func configFilePath() (string, error) {
	dir, err := getConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func sessionStatePath() (string, error) {
	dir, err := getConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.json"), nil
}

// LoadConfig reads the config file, filling defaults for anything
// missing. A missing file is not an error.
func LoadConfig() (Config, error) {
	cfg := defaultConfig()

	path, err := configFilePath()
	if err != nil {
		return cfg, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return defaultConfig(), err
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = "http://localhost:8000"
	}
	if cfg.TimeoutSecs <= 0 {
		cfg.TimeoutSecs = 30
	}
	if cfg.Theme == "" {
		cfg.Theme = "auto"
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	return cfg, nil
}

func timeoutFromConfig(cfg Config) time.Duration {
	return time.Duration(cfg.TimeoutSecs) * time.Second
}

func SaveConfig(cfg Config) error {
	dir, err := getConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(dir, "config.toml"))
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
