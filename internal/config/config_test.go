package config

import (
	"path/filepath"
	"testing"
)

func TestGetConfigDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-test", "pitchkit") {
		t.Fatalf("dir=%q", dir)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Format.MaxWidth != 0 {
		t.Errorf("max_width=%d, want 0 (auto)", cfg.Format.MaxWidth)
	}
	if cfg.Format.Pattern != "*.txt" {
		t.Errorf("pattern=%q, want *.txt", cfg.Format.Pattern)
	}
	if cfg.Output.DiagramsDir != "output/diagrams" {
		t.Errorf("diagrams_dir=%q", cfg.Output.DiagramsDir)
	}
	if !cfg.History.Enabled {
		t.Error("history should default to enabled")
	}
	if cfg.History.Path != filepath.Join(dir, "pitchkit", "history.db") {
		t.Errorf("history path=%q", cfg.History.Path)
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("PITCHKIT_TEST_DIR", "/srv/plans")
	if got := expandPath("$PITCHKIT_TEST_DIR"); got != "/srv/plans" {
		t.Errorf("expandPath($VAR)=%q", got)
	}
	if got := expandPath("${PITCHKIT_TEST_DIR}"); got != "/srv/plans" {
		t.Errorf("expandPath(${VAR})=%q", got)
	}
	if got := expandPath("output/pdfs"); got != "output/pdfs" {
		t.Errorf("plain path changed: %q", got)
	}
}
