package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// chdirTemp moves into a fresh temp dir and isolates the user config dir.
func chdirTemp(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("TRIGEN_DEBUG", "")
	t.Setenv("TRIGEN_THEME", "")
	t.Setenv("TRIGEN_ADDR", "")
	t.Setenv("NO_COLOR", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tempDir, "xdg"))
	t.Setenv("HOME", filepath.Join(tempDir, "home"))
	return tempDir
}

func TestGetConfigPath_ReturnsLocalConfig_When_FileExists(t *testing.T) {
	chdirTemp(t)
	if err := os.WriteFile(fileName, []byte("rows: 3\n"), 0o600); err != nil {
		t.Fatalf("failed to write local config: %v", err)
	}

	if got := getConfigPath(); got != fileName {
		t.Fatalf("expected local config path, got %q", got)
	}
}

func TestGetConfigPath_UsesXDGPath_When_LocalMissing(t *testing.T) {
	tempDir := chdirTemp(t)
	configHome := filepath.Join(tempDir, "xdg", "trigen")
	if err := os.MkdirAll(configHome, 0o755); err != nil {
		t.Fatalf("failed to create XDG config directory: %v", err)
	}
	configPath := filepath.Join(configHome, fileName)
	if err := os.WriteFile(configPath, []byte("rows: 3\n"), 0o600); err != nil {
		t.Fatalf("failed to write XDG config: %v", err)
	}

	if got := getConfigPath(); got != configPath {
		t.Fatalf("expected XDG config path %q, got %q", configPath, got)
	}
}

func TestLoadSettings_ReturnsDefaults_When_NoConfigFound(t *testing.T) {
	chdirTemp(t)

	cfg := LoadSettings()

	if *cfg != *Defaults() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.MaxRows != DefaultMaxRows || cfg.StoreTimeout != DefaultStoreTimeout {
		t.Fatalf("unexpected limits: %+v", cfg)
	}
}

func TestLoadSettings_MergesYAMLOverrides_When_FilePresent(t *testing.T) {
	chdirTemp(t)
	yamlContent := "" +
		"shape: pyramid\n" +
		"rows: 8\n" +
		"symbol: \"#\"\n" +
		"max_rows: 30\n" +
		"theme: sandstone\n" +
		"addr: 127.0.0.1:9000\n" +
		"store_timeout: 500ms\n" +
		"gate_on_store: true\n"
	if err := os.WriteFile(fileName, []byte(yamlContent), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg := LoadSettings()

	want := Settings{
		Shape:        "pyramid",
		Rows:         8,
		Symbol:       "#",
		MaxRows:      30,
		Theme:        "sandstone",
		Addr:         "127.0.0.1:9000",
		StoreTimeout: 500 * time.Millisecond,
		GateOnStore:  true,
	}
	if *cfg != want {
		t.Fatalf("unexpected settings:\n got %+v\nwant %+v", *cfg, want)
	}
}

func TestLoadSettings_KeepsDefaults_When_FileMalformed(t *testing.T) {
	chdirTemp(t)
	if err := os.WriteFile(fileName, []byte("rows: [oops\n"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg := LoadSettings()
	if cfg.Rows != DefaultRows {
		t.Fatalf("expected default rows after parse failure, got %d", cfg.Rows)
	}
}

func TestLoadSettings_AppliesEnvOverrides(t *testing.T) {
	chdirTemp(t)
	if err := os.WriteFile(fileName, []byte("theme: sandstone\n"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("TRIGEN_ADDR", ":9999")
	t.Setenv("TRIGEN_DEBUG", "1")
	t.Setenv("NO_COLOR", "1")

	cfg := LoadSettings()

	if cfg.Theme != "mono" {
		t.Fatalf("expected NO_COLOR to force mono theme, got %q", cfg.Theme)
	}
	if cfg.Addr != ":9999" {
		t.Fatalf("expected TRIGEN_ADDR override, got %q", cfg.Addr)
	}
	if !cfg.Debug {
		t.Fatalf("expected TRIGEN_DEBUG to enable debug")
	}
}
