// Package config loads the window manager configuration from YAML.
package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Config is the effective configuration the daemon runs with.
type Config struct {
	// Workspaces are the ordered virtual desktop names published
	// through EWMH.
	Workspaces []string `yaml:"workspaces"`

	// FloatingClasses lists WM_CLASS values that always float.
	FloatingClasses []string `yaml:"floating_classes"`

	// BorderWidth is the managed window border in pixels.
	BorderWidth uint32 `yaml:"border_width"`
	// FocusedBorder and UnfocusedBorder are hex colors like "#458588".
	FocusedBorder   string `yaml:"focused_border"`
	UnfocusedBorder string `yaml:"unfocused_border"`

	// BarHeightTop and BarHeightBottom reserve screen rows for bars.
	BarHeightTop    int `yaml:"bar_height_top"`
	BarHeightBottom int `yaml:"bar_height_bottom"`

	// WarpOnFocus moves the pointer into a window when it gains focus.
	WarpOnFocus bool `yaml:"warp_on_focus"`

	// Keybindings maps key chords ("mod4-shift-q") to actions. An
	// action is either a builtin name ("quit", "fullscreen") or
	// "exec <command>".
	Keybindings map[string]string `yaml:"keybindings"`

	// Mousebindings maps button chords ("mod4-1") to actions.
	Mousebindings map[string]string `yaml:"mousebindings"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Workspaces:      []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"},
		BorderWidth:     2,
		FocusedBorder:   "#458588",
		UnfocusedBorder: "#3c3836",
		WarpOnFocus:     true,
		Keybindings: map[string]string{
			"mod4-return":  "exec x-terminal-emulator",
			"mod4-q":       "close",
			"mod4-f":       "fullscreen",
			"mod4-shift-q": "quit",
		},
		Mousebindings: map[string]string{
			"mod4-1": "raise",
		},
	}
}

// ParseColor converts a "#rrggbb" string to the pixel value X expects.
func ParseColor(s string) (uint32, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return 0, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return uint32(v), nil
}

// Validate checks the loaded configuration for values the daemon
// cannot start with.
func (c *Config) Validate() error {
	if len(c.Workspaces) == 0 {
		return fmt.Errorf("at least one workspace is required")
	}
	seen := make(map[string]struct{}, len(c.Workspaces))
	for _, ws := range c.Workspaces {
		if ws == "" {
			return fmt.Errorf("workspace names must not be empty")
		}
		if _, dup := seen[ws]; dup {
			return fmt.Errorf("duplicate workspace name %q", ws)
		}
		seen[ws] = struct{}{}
	}
	if _, err := ParseColor(c.FocusedBorder); err != nil {
		return fmt.Errorf("focused_border: %w", err)
	}
	if _, err := ParseColor(c.UnfocusedBorder); err != nil {
		return fmt.Errorf("unfocused_border: %w", err)
	}
	if c.BarHeightTop < 0 || c.BarHeightBottom < 0 {
		return fmt.Errorf("bar heights must not be negative")
	}
	return nil
}
