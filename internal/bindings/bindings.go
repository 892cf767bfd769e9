// Package bindings turns configured key and button chords into the
// concrete grabs the X server understands.
package bindings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/1broseidon/strata/internal/x11"
)

// ignoredMods are modifier bits that must not change what a chord
// means: caps lock and num lock.
const ignoredMods = uint16(xproto.ModMaskLock | xproto.ModMask2)

// KeyAction pairs a resolved key grab with the action it triggers.
type KeyAction struct {
	Binding x11.KeyBinding
	Action  string
}

// ButtonAction pairs a resolved button grab with its action.
type ButtonAction struct {
	Binding x11.ButtonBinding
	Action  string
}

// Tables holds the resolved binding state the daemon dispatches on.
type Tables struct {
	keys    map[x11.KeyBinding]string
	buttons map[x11.ButtonBinding]string

	keyGrabs    []x11.KeyBinding
	buttonGrabs []x11.ButtonBinding
}

// KeyGrabs lists every key grab to register, including the lock-mask
// variants of each chord.
func (t *Tables) KeyGrabs() []x11.KeyBinding { return t.keyGrabs }

// ButtonGrabs lists every button grab to register.
func (t *Tables) ButtonGrabs() []x11.ButtonBinding { return t.buttonGrabs }

// KeyAction looks up the action for a key press, disregarding lock
// modifiers.
func (t *Tables) KeyAction(mods uint16, code uint8) (string, bool) {
	action, ok := t.keys[x11.KeyBinding{Mods: mods &^ ignoredMods, Code: code}]
	return action, ok
}

// ButtonAction looks up the action for a button press.
func (t *Tables) ButtonAction(mods uint16, button uint8) (string, bool) {
	action, ok := t.buttons[x11.ButtonBinding{Mods: mods &^ ignoredMods, Button: button}]
	return action, ok
}

// FromResolved builds tables from already-resolved bindings, for
// callers that assemble grabs without parsing chords.
func FromResolved(keys []KeyAction, buttons []ButtonAction) (*Tables, error) {
	t := &Tables{
		keys:    make(map[x11.KeyBinding]string),
		buttons: make(map[x11.ButtonBinding]string),
	}
	for _, k := range keys {
		if k.Action == "" {
			return nil, fmt.Errorf("key binding %+v has no action", k.Binding)
		}
		t.keys[k.Binding] = k.Action
		for _, variant := range lockVariants(k.Binding.Mods) {
			t.keyGrabs = append(t.keyGrabs, x11.KeyBinding{Mods: variant, Code: k.Binding.Code})
		}
	}
	for _, b := range buttons {
		if b.Action == "" {
			return nil, fmt.Errorf("button binding %+v has no action", b.Binding)
		}
		t.buttons[b.Binding] = b.Action
		for _, variant := range lockVariants(b.Binding.Mods) {
			t.buttonGrabs = append(t.buttonGrabs, x11.ButtonBinding{Mods: variant, Button: b.Binding.Button})
		}
	}
	return t, nil
}

// Resolve builds binding tables from configured chord-to-action maps.
// Key chords need the live connection to translate keysym names into
// keycodes; keybind must have been initialized on xu.
func Resolve(xu *xgbutil.XUtil, keyChords, buttonChords map[string]string) (*Tables, error) {
	t := &Tables{
		keys:    make(map[x11.KeyBinding]string),
		buttons: make(map[x11.ButtonBinding]string),
	}
	for chord, action := range keyChords {
		mods, sym, err := splitChord(chord)
		if err != nil {
			return nil, fmt.Errorf("keybinding %q: %w", chord, err)
		}
		codes := keybind.StrToKeycodes(xu, sym)
		if len(codes) == 0 {
			return nil, fmt.Errorf("keybinding %q: no keycode maps to %q", chord, sym)
		}
		for _, code := range codes {
			kb := x11.KeyBinding{Mods: mods, Code: uint8(code)}
			t.keys[kb] = action
			for _, variant := range lockVariants(mods) {
				t.keyGrabs = append(t.keyGrabs, x11.KeyBinding{Mods: variant, Code: uint8(code)})
			}
		}
	}
	for chord, action := range buttonChords {
		mods, button, err := ParseButtonChord(chord)
		if err != nil {
			return nil, fmt.Errorf("mousebinding %q: %w", chord, err)
		}
		bb := x11.ButtonBinding{Mods: mods, Button: button}
		t.buttons[bb] = action
		for _, variant := range lockVariants(mods) {
			t.buttonGrabs = append(t.buttonGrabs, x11.ButtonBinding{Mods: variant, Button: button})
		}
	}
	return t, nil
}

// ParseButtonChord parses a chord like "mod4-1" into a modifier mask
// and button number.
func ParseButtonChord(chord string) (uint16, uint8, error) {
	mods, last, err := splitChord(chord)
	if err != nil {
		return 0, 0, err
	}
	n, err := strconv.Atoi(last)
	if err != nil || n < 1 || n > 9 {
		return 0, 0, fmt.Errorf("invalid button %q", last)
	}
	return mods, uint8(n), nil
}

// splitChord separates "mod4-shift-q" into a modifier mask and the
// trailing key name.
func splitChord(chord string) (uint16, string, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(chord)), "-")
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return 0, "", fmt.Errorf("empty chord")
	}
	var mods uint16
	for _, part := range parts[:len(parts)-1] {
		mask, err := modMask(part)
		if err != nil {
			return 0, "", err
		}
		mods |= mask
	}
	return mods, parts[len(parts)-1], nil
}

func modMask(name string) (uint16, error) {
	switch name {
	case "shift":
		return xproto.ModMaskShift, nil
	case "lock":
		return xproto.ModMaskLock, nil
	case "control", "ctrl":
		return xproto.ModMaskControl, nil
	case "mod1", "alt":
		return xproto.ModMask1, nil
	case "mod2":
		return xproto.ModMask2, nil
	case "mod3":
		return xproto.ModMask3, nil
	case "mod4", "super":
		return xproto.ModMask4, nil
	case "mod5":
		return xproto.ModMask5, nil
	default:
		return 0, fmt.Errorf("unknown modifier %q", name)
	}
}

// lockVariants returns the modifier mask combined with every subset of
// the ignored lock masks, so a grab fires regardless of caps or num
// lock state.
func lockVariants(mods uint16) []uint16 {
	return []uint16{
		mods,
		mods | xproto.ModMaskLock,
		mods | xproto.ModMask2,
		mods | xproto.ModMaskLock | xproto.ModMask2,
	}
}
