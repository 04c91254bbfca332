package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings holds the non-secret defaults read from .trigen.yaml.
type Settings struct {
	Shape        string        `yaml:"shape"`
	Rows         int           `yaml:"rows"`
	Symbol       string        `yaml:"symbol"`
	MaxRows      int           `yaml:"max_rows"`
	Theme        string        `yaml:"theme"`
	Addr         string        `yaml:"addr"`
	StoreTimeout time.Duration `yaml:"store_timeout"`
	GateOnStore  bool          `yaml:"gate_on_store"` // hide the pattern when saving fails
	Debug        bool          `yaml:"debug"`
}

// Constants for default values.
const (
	DefaultShape        = "left"
	DefaultRows         = 5
	DefaultSymbol       = "*"
	DefaultMaxRows      = 20
	DefaultTheme        = "chalk"
	DefaultAddr         = ":8080"
	DefaultStoreTimeout = 3 * time.Second

	fileName = ".trigen.yaml"
)

// Defaults returns the hardcoded settings.
func Defaults() *Settings {
	return &Settings{
		Shape:        DefaultShape,
		Rows:         DefaultRows,
		Symbol:       DefaultSymbol,
		MaxRows:      DefaultMaxRows,
		Theme:        DefaultTheme,
		Addr:         DefaultAddr,
		StoreTimeout: DefaultStoreTimeout,
	}
}

// LoadSettings loads .trigen.yaml over the defaults and applies environment
// overrides. A missing or unreadable file leaves the defaults in place.
func LoadSettings() *Settings {
	cfg := Defaults()
	debug := isDebug()

	if path := getConfigPath(); path != "" {
		if err := mergeFile(cfg, path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v. Using defaults.\n", err)
		} else if debug {
			fmt.Fprintf(os.Stderr, "[DEBUG LoadSettings] Loaded settings from %s\n", path)
		}
	} else if debug {
		fmt.Fprintln(os.Stderr, "[DEBUG LoadSettings] No .trigen.yaml found, using defaults.")
	}

	applyEnv(cfg)
	return cfg
}

func mergeFile(cfg *Settings, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	var file Settings
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if file.Shape != "" {
		cfg.Shape = file.Shape
	}
	if file.Rows > 0 {
		cfg.Rows = file.Rows
	}
	if file.Symbol != "" {
		cfg.Symbol = file.Symbol
	}
	if file.MaxRows > 0 {
		cfg.MaxRows = file.MaxRows
	}
	if file.Theme != "" {
		cfg.Theme = file.Theme
	}
	if file.Addr != "" {
		cfg.Addr = file.Addr
	}
	if file.StoreTimeout > 0 {
		cfg.StoreTimeout = file.StoreTimeout
	}
	cfg.GateOnStore = file.GateOnStore
	cfg.Debug = file.Debug
	return nil
}

func applyEnv(cfg *Settings) {
	if v := os.Getenv("TRIGEN_THEME"); v != "" {
		cfg.Theme = v
	}
	if os.Getenv("NO_COLOR") != "" {
		cfg.Theme = "mono"
	}
	if v := os.Getenv("TRIGEN_ADDR"); v != "" {
		cfg.Addr = v
	}
	if isDebug() {
		cfg.Debug = true
	}
}

func isDebug() bool {
	return os.Getenv("TRIGEN_DEBUG") != ""
}

// getConfigPath returns the local .trigen.yaml if present, otherwise the one
// under the user config directory, otherwise "".
func getConfigPath() string {
	if _, err := os.Stat(fileName); err == nil {
		return fileName
	}

	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdgPath := filepath.Join(configHome, "trigen", fileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}
