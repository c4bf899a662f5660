package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"styleswipe/internal/model"
)

// GlobalConfig lives at ~/.styleswipe/config.json. It holds the persisted
// session plus small client preferences. Anything per-user and mutable at
// runtime (the exclusion sets) goes to sqlite instead.
type GlobalConfig struct {
	// Session is the signed-in identity, if any. Written once at sign-in,
	// cleared at sign-out.
	Session *model.Session `json:"session,omitempty"`

	// APIBaseURL overrides the default backend endpoint (staging, local
	// mocks). Empty means production.
	APIBaseURL string `json:"apiBaseUrl,omitempty"`

	// Filter is the last applied swipe filter, restored on relaunch.
	Filter *model.FilterCriteria `json:"filter,omitempty"`

	// TUI holds optional appearance preferences.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Theme is "auto", "light" or "dark".
	Theme string `json:"theme,omitempty"`
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.styleswipe).
	if v := strings.TrimSpace(os.Getenv("STYLESWIPE_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".styleswipe"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func SaveConfig(cfg *GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	// Best-effort safety net: keep a copy of the previous config so a bad
	// write doesn't lose the session. Ignore errors.
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, "config.json.bak.*.tmp", path+".bak", prev, 0o644)
	}

	// Unique temp file name + rename to survive concurrent CLI + TUI writes.
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}
