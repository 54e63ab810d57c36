package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "delve.yaml")
	writeFile(t, path, "seed: 42\nprofession: warrior\nsave:\n  slot: hardcore\nlog:\n  level: debug\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Seed)
	}
	if cfg.Save.Slot != "hardcore" {
		t.Errorf("Save.Slot = %q, want hardcore", cfg.Save.Slot)
	}
	// Keys the file leaves out keep their defaults.
	if cfg.StartTier != 1 || cfg.Save.DBPath != Default().Save.DBPath {
		t.Errorf("defaults not kept: start_tier=%d db_path=%q", cfg.StartTier, cfg.Save.DBPath)
	}
	if lvl, _ := cfg.LogLevel(); lvl != log.DebugLevel {
		t.Errorf("LogLevel = %v, want debug", lvl)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "seed: [1, 2\n"},
		{"start tier", "start_tier: 0\n"},
		{"empty slot", "save:\n  slot: \"\"\n"},
		{"log level", "log:\n  level: loud\n"},
		{"sample ratio", "telemetry:\n  sample_ratio: 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			writeFile(t, path, tt.content)
			if _, err := Load(path); err == nil {
				t.Error("expected an error")
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	// Nothing in the home directory: the embedded default applies.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded default = %+v, want %+v", cfg, Default())
	}

	writeFile(t, filepath.Join(home, ".delve", "config.yaml"), "player_name: Brienne\n")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PlayerName != "Brienne" {
		t.Errorf("PlayerName = %q, want the user config's", cfg.PlayerName)
	}

	// A broken user file is skipped rather than fatal.
	writeFile(t, filepath.Join(home, ".delve", "config.yaml"), "start_tier: -3\n")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StartTier != 1 {
		t.Errorf("StartTier = %d, want the default", cfg.StartTier)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in, want string
	}{
		{"~/.delve/saves.db", filepath.Join(home, ".delve", "saves.db")},
		{"~", home},
		{"/tmp/saves.db", "/tmp/saves.db"},
		{"saves.db", "saves.db"},
		{"~other/saves.db", "~other/saves.db"},
	}
	for _, tt := range tests {
		got, err := ExpandPath(tt.in)
		if err != nil {
			t.Fatalf("ExpandPath(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
