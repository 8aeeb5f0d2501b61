// Package config loads the ncq TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/iw2rmb/ncq/editor"
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "NCQ_CONFIG"

// Config is the decoded configuration file. Zero fields mean defaults.
type Config struct {
	// Keybindings are overlaid on editor.DefaultBindings.
	Keybindings map[string]string `toml:"keybindings"`
	Editor      EditorConfig      `toml:"editor"`
	Paths       PathsConfig       `toml:"paths"`
	Log         LogConfig         `toml:"log"`
}

type EditorConfig struct {
	Height         int   `toml:"height"`
	Scrollbar      *bool `toml:"scrollbar"`
	MaxSuggestions int   `toml:"max_suggestions"`
	Multiline      *bool `toml:"multiline"`
	TabWidth       int   `toml:"tab_width"`
	ShowHelp       bool  `toml:"show_help"`
}

type PathsConfig struct {
	// Catalog is the TOML package catalog.
	Catalog string `toml:"catalog"`
	// Snippets is the directory holding <package>.<n>.js sample files.
	Snippets string `toml:"snippets"`
	History  string `toml:"history"`
	Log      string `toml:"log"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Path returns the configuration file path: $NCQ_CONFIG when set,
// otherwise ncq/config.toml under the user config directory.
func Path() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	return filepath.Join(dir, "ncq", "config.toml"), nil
}

// Load reads the configuration from Path.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads the configuration at path. A missing file yields the
// defaults.
func LoadFromPath(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes TOML from r. Unknown keys are rejected.
func LoadFromReader(r io.Reader) (*Config, error) {
	var cfg Config
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return &cfg, nil
}

// Bindings returns the configured key bindings merged over the defaults.
func (c *Config) Bindings() editor.Bindings {
	return editor.DefaultBindings().Merge(c.Keybindings)
}

// EditorConfig returns the editor settings with defaults applied. Scrollbar
// and multiline default to on.
func (c *Config) EditorConfig() editor.Config {
	ec := editor.Config{
		Height:         c.Editor.Height,
		Scrollbar:      true,
		Multiline:      true,
		MaxSuggestions: c.Editor.MaxSuggestions,
		TabWidth:       c.Editor.TabWidth,
		ShowHelp:       c.Editor.ShowHelp,
		Bindings:       c.Bindings(),
	}
	if c.Editor.Scrollbar != nil {
		ec.Scrollbar = *c.Editor.Scrollbar
	}
	if c.Editor.Multiline != nil {
		ec.Multiline = *c.Editor.Multiline
	}
	return ec
}
