package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// PropValue is a property value tagged with its wire type. Each
// variant encodes to the format and type atom the EWMH contract
// requires, so a mismatched write cannot be expressed.
type PropValue interface {
	encode(c *Conn) (typ xproto.Atom, format byte, n uint32, data []byte)
}

// AtomListValue writes as a list of ATOM, format 32.
type AtomListValue []xproto.Atom

// WindowListValue writes as a list of WINDOW, format 32.
type WindowListValue []xproto.Window

// CardinalListValue writes as a list of CARDINAL, format 32.
type CardinalListValue []uint32

// TextValue writes as UTF8_STRING, format 8. NUL bytes are preserved,
// which is how list-of-string properties such as _NET_DESKTOP_NAMES
// are encoded.
type TextValue string

// StringValue writes as the ICCCM STRING type, format 8. Pre-EWMH
// properties such as WM_NAME predate UTF8_STRING and some readers
// filter on the type atom, so they keep the older type.
type StringValue string

func (v AtomListValue) encode(c *Conn) (xproto.Atom, byte, uint32, []byte) {
	data := make([]byte, 4*len(v))
	for i, a := range v {
		xgb.Put32(data[i*4:], uint32(a))
	}
	return xproto.AtomAtom, 32, uint32(len(v)), data
}

func (v WindowListValue) encode(c *Conn) (xproto.Atom, byte, uint32, []byte) {
	data := make([]byte, 4*len(v))
	for i, w := range v {
		xgb.Put32(data[i*4:], uint32(w))
	}
	return xproto.AtomWindow, 32, uint32(len(v)), data
}

func (v CardinalListValue) encode(c *Conn) (xproto.Atom, byte, uint32, []byte) {
	data := make([]byte, 4*len(v))
	for i, n := range v {
		xgb.Put32(data[i*4:], n)
	}
	return xproto.AtomCardinal, 32, uint32(len(v)), data
}

func (v TextValue) encode(c *Conn) (xproto.Atom, byte, uint32, []byte) {
	return c.knownAtom(AtomUTF8String), 8, uint32(len(v)), []byte(v)
}

func (v StringValue) encode(c *Conn) (xproto.Atom, byte, uint32, []byte) {
	return xproto.AtomString, 8, uint32(len(v)), []byte(v)
}

// replaceProp overwrites a property with the given value. Replace
// semantics throughout: no EWMH property this package writes is ever
// appended to.
func (c *Conn) replaceProp(win xproto.Window, prop Atom, v PropValue) error {
	typ, format, n, data := v.encode(c)
	if err := c.api.ReplaceProperty(win, c.knownAtom(prop), typ, format, n, data); err != nil {
		return fmt.Errorf("failed to set %s on window %d: %w", prop, win, err)
	}
	return nil
}

// AnnounceIdentity publishes the EWMH supporting-WM handshake: the
// check window id and WM name on both the check window and the root,
// the supported atom list, initial desktop metadata, and removes any
// client list a previous window manager left behind.
func (c *Conn) AnnounceIdentity(workspaces []string) error {
	root := c.api.Root()
	for _, win := range []xproto.Window{c.checkWin, root} {
		if err := c.replaceProp(win, AtomNetSupportingWmCheck, WindowListValue{c.checkWin}); err != nil {
			return err
		}
		if err := c.replaceProp(win, AtomWMName, StringValue(wmName)); err != nil {
			return err
		}
		if err := c.replaceProp(win, AtomNetWmName, TextValue(wmName)); err != nil {
			return err
		}
	}

	supported := make(AtomListValue, 0, len(ewmhSupportedAtoms))
	for _, a := range ewmhSupportedAtoms {
		supported = append(supported, c.knownAtom(a))
	}
	if err := c.replaceProp(root, AtomNetSupported, supported); err != nil {
		return err
	}
	if err := c.SetDesktops(workspaces); err != nil {
		return err
	}
	if err := c.api.DeleteProperty(root, c.knownAtom(AtomNetClientList)); err != nil {
		return fmt.Errorf("failed to clear stale client list: %w", err)
	}
	return nil
}

// SetDesktops publishes the desktop count and NUL-joined desktop name
// list. The caller passes the full authoritative workspace list each
// time; there are no partial updates.
func (c *Conn) SetDesktops(workspaces []string) error {
	root := c.api.Root()
	if err := c.replaceProp(root, AtomNetNumberOfDesktops, CardinalListValue{uint32(len(workspaces))}); err != nil {
		return err
	}
	return c.replaceProp(root, AtomNetDesktopNames, TextValue(strings.Join(workspaces, "\x00")))
}

// SetKnownClients mirrors the given window list into both
// _NET_CLIENT_LIST and _NET_CLIENT_LIST_STACKING. Stacking order is
// tracked by the window manager, not here, so both properties carry
// the same sequence.
func (c *Conn) SetKnownClients(clients []xproto.Window) error {
	root := c.api.Root()
	if err := c.replaceProp(root, AtomNetClientList, WindowListValue(clients)); err != nil {
		return err
	}
	return c.replaceProp(root, AtomNetClientListStack, WindowListValue(clients))
}

// SetCurrentWorkspace publishes the active desktop index.
func (c *Conn) SetCurrentWorkspace(index uint32) error {
	return c.replaceProp(c.api.Root(), AtomNetCurrentDesktop, CardinalListValue{index})
}

// SetClientWorkspace tags a client window with the desktop it lives on.
func (c *Conn) SetClientWorkspace(win xproto.Window, index uint32) error {
	return c.replaceProp(win, AtomNetWmDesktop, CardinalListValue{index})
}

// SetRootName overwrites the root window's WM_NAME, typically consumed
// by status bars.
func (c *Conn) SetRootName(name string) error {
	return c.replaceProp(c.api.Root(), AtomWMName, StringValue(name))
}

// SetFullscreenState sets _NET_WM_STATE to exactly the fullscreen atom
// or to nothing. The write replaces the whole state list, so any other
// state flag a client had set is cleared along the way.
func (c *Conn) SetFullscreenState(win xproto.Window, fullscreen bool) error {
	var state AtomListValue
	if fullscreen {
		state = AtomListValue{c.knownAtom(AtomNetWmStateFullscreen)}
	} else {
		state = AtomListValue{}
	}
	return c.replaceProp(win, AtomNetWmState, state)
}

// SetActiveWindow publishes the currently focused client.
func (c *Conn) SetActiveWindow(win xproto.Window) error {
	return c.replaceProp(c.api.Root(), AtomNetActiveWindow, WindowListValue{win})
}
