// Package config loads and saves the tabdeck configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	appDirName     = "tabdeck"
	configFileName = "config.yaml"
)

// DefaultAPIAddr is where cmd/api binds unless the config says otherwise.
const DefaultAPIAddr = ":8080"

// TabSeed describes one tab opened at startup.
type TabSeed struct {
	Label    string `yaml:"label"`
	Color    string `yaml:"color,omitempty"`    // lipgloss-compatible color for the label
	Closable *bool  `yaml:"closable,omitempty"` // nil means true
	Pinned   bool   `yaml:"pinned,omitempty"`   // pinned tabs are not draggable
	Content  string `yaml:"content,omitempty"`  // markdown body rendered under the tab
}

// IsClosable resolves the optional closable flag.
func (s TabSeed) IsClosable() bool {
	return s.Closable == nil || *s.Closable
}

type Config struct {
	ReorderEnabled *bool     `yaml:"reorder_enabled"` // nil means true
	Capacity       int       `yaml:"capacity"`        // 0 = unbounded
	APIAddr        string    `yaml:"api_addr"`
	StartTabs      []TabSeed `yaml:"start_tabs"`
}

// Reorder resolves the optional reorder flag.
func (c Config) Reorder() bool {
	return c.ReorderEnabled == nil || *c.ReorderEnabled
}

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	return Config{
		APIAddr: DefaultAPIAddr,
		StartTabs: []TabSeed{
			{Label: "welcome", Color: "212", Content: welcomeContent},
			{Label: "scratch", Content: "# Scratch\n\nAn empty tab to play with.\n"},
		},
	}
}

const welcomeContent = "# tabdeck\n\n" +
	"Use the arrow keys to switch tabs, `[` and `]` to move the current tab,\n" +
	"`n` to open a tab, and `x` to close it. Press `:` for the command\n" +
	"palette and `?` for help.\n"

func configDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

func path() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// EnsureDir creates the config directory when missing and returns it.
func EnsureDir() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return dir, nil
}

// Load reads the config file, falling back to Defaults when the file is
// missing or unreadable. A missing file is the normal first-run case.
func Load() Config {
	p, err := path()
	if err != nil {
		return Defaults()
	}
	cfg, err := LoadFrom(p)
	if err != nil {
		return Defaults()
	}
	return cfg
}

// LoadFrom reads and validates a config file at an explicit path.
func LoadFrom(p string) (Config, error) {
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg.normalized(), nil
}

// Save writes the config file, creating the directory when needed.
func Save(c Config) error {
	if _, err := EnsureDir(); err != nil {
		return err
	}
	p, err := path()
	if err != nil {
		return err
	}
	return SaveTo(p, c)
}

// SaveTo writes the config to an explicit path.
func SaveTo(p string, c Config) error {
	data, err := yaml.Marshal(c.normalized())
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// normalized repairs values a hand-edited file may get wrong.
func (c Config) normalized() Config {
	if c.Capacity < 0 {
		c.Capacity = 0
	}
	if c.APIAddr == "" {
		c.APIAddr = DefaultAPIAddr
	}
	kept := make([]TabSeed, 0, len(c.StartTabs))
	for _, seed := range c.StartTabs {
		if seed.Label == "" {
			continue
		}
		kept = append(kept, seed)
	}
	c.StartTabs = kept
	return c
}
