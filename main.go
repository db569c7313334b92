package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
)

// setupLogging sends the debug log to a file under the config dir when
// QUERYGENIE_DEBUG is set; otherwise log output is discarded so it
// cannot corrupt the terminal UI.
func setupLogging() {
	log.SetOutput(io.Discard)
	if os.Getenv("QUERYGENIE_DEBUG") == "" {
		return
	}
	dir, err := getConfigDir()
	if err != nil {
		return
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	log.SetOutput(f)
}

func main() {
	setupLogging()

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v (using defaults)\n", err)
	}
	log.Printf("starting, server=%s timeout=%ds", cfg.ServerURL, cfg.TimeoutSecs)

	statePath, err := sessionStatePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	auth := NewAuthStore(NewFileStateStore(statePath))
	secrets := OpenSecretStore()
	api := NewClient(cfg.ServerURL, timeoutFromConfig(cfg))

	// Config watching is best effort; without it edits just need a
	// restart.
	watcher, err := newConfigWatcher()
	if err != nil {
		log.Printf("config watcher unavailable: %v", err)
		watcher = nil
	}

	m := initialModel(cfg, api, auth, secrets, watcher)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
