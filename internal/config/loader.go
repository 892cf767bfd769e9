package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath returns ~/.config/strata/config.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "strata", "config.yaml"), nil
}

// Load reads the configuration from the standard location. A missing
// file is not an error; the defaults apply.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads and validates the configuration at path, layered
// over the defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// A file-level key overrides the whole default for that key;
	// binding maps are merged so defaults survive partial files.
	raw := &rawConfig{}
	if err := yaml.Unmarshal(data, raw); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.merge(raw)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// rawConfig mirrors Config with pointer scalars so an absent key can
// be told apart from a zero value.
type rawConfig struct {
	Workspaces      []string          `yaml:"workspaces"`
	FloatingClasses []string          `yaml:"floating_classes"`
	BorderWidth     *uint32           `yaml:"border_width"`
	FocusedBorder   *string           `yaml:"focused_border"`
	UnfocusedBorder *string           `yaml:"unfocused_border"`
	BarHeightTop    *int              `yaml:"bar_height_top"`
	BarHeightBottom *int              `yaml:"bar_height_bottom"`
	WarpOnFocus     *bool             `yaml:"warp_on_focus"`
	Keybindings     map[string]string `yaml:"keybindings"`
	Mousebindings   map[string]string `yaml:"mousebindings"`
}

func (c *Config) merge(o *rawConfig) {
	if len(o.Workspaces) > 0 {
		c.Workspaces = o.Workspaces
	}
	if len(o.FloatingClasses) > 0 {
		c.FloatingClasses = o.FloatingClasses
	}
	if o.BorderWidth != nil {
		c.BorderWidth = *o.BorderWidth
	}
	if o.FocusedBorder != nil {
		c.FocusedBorder = *o.FocusedBorder
	}
	if o.UnfocusedBorder != nil {
		c.UnfocusedBorder = *o.UnfocusedBorder
	}
	if o.BarHeightTop != nil {
		c.BarHeightTop = *o.BarHeightTop
	}
	if o.BarHeightBottom != nil {
		c.BarHeightBottom = *o.BarHeightBottom
	}
	if o.WarpOnFocus != nil {
		c.WarpOnFocus = *o.WarpOnFocus
	}
	for chord, action := range o.Keybindings {
		c.Keybindings[chord] = action
	}
	for chord, action := range o.Mousebindings {
		c.Mousebindings[chord] = action
	}
}
