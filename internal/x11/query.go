package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// StrProp reads a text property from a window. Trailing NULs are
// stripped but interior NUL separators (WM_CLASS, desktop name lists)
// are preserved.
func (c *Conn) StrProp(win xproto.Window, prop Atom) (string, error) {
	raw, err := c.api.PropertyBytes(win, c.knownAtom(prop))
	if err != nil {
		return "", fmt.Errorf("failed to read %s from window %d: %w", prop, win, err)
	}
	return strings.TrimRight(string(raw), "\x00"), nil
}

// AtomProp reads the first atom value of a property. Properties such
// as _NET_WM_WINDOW_TYPE may carry several atoms; only the primary one
// is consulted here.
func (c *Conn) AtomProp(win xproto.Window, prop Atom) (xproto.Atom, error) {
	raw, err := c.api.PropertyBytes(win, c.knownAtom(prop))
	if err != nil {
		return 0, fmt.Errorf("failed to read %s from window %d: %w", prop, win, err)
	}
	if len(raw) < 4 {
		return 0, fmt.Errorf("property %s on window %d is not an atom", prop, win)
	}
	return xproto.Atom(xgb.Get32(raw)), nil
}

// CurrentClients lists the root window's children that the window
// manager should manage, in server order. Query failure yields an
// empty list rather than an error: this is used during startup to
// adopt windows left over from a previous session, where a failed
// query just means there is nothing to adopt.
func (c *Conn) CurrentClients() []xproto.Window {
	children, err := c.api.QueryTree(c.api.Root())
	if err != nil {
		return nil
	}
	var clients []xproto.Window
	for _, win := range children {
		if c.IsManaged(win) {
			clients = append(clients, win)
		}
	}
	return clients
}

// CursorPosition returns the pointer location in root coordinates.
func (c *Conn) CursorPosition() (Point, error) {
	return c.api.CursorPosition()
}

// FocusedClient returns the window currently holding input focus. The
// result may be the root or a pseudo-window such as PointerRoot rather
// than a managed client; the caller decides what counts.
func (c *Conn) FocusedClient() (xproto.Window, error) {
	win, err := c.api.FocusedWindow()
	if err != nil {
		return 0, fmt.Errorf("failed to query input focus: %w", err)
	}
	return win, nil
}
