package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// Atom is the symbolic name of an X atom this package cares about.
// The constants below form a closed set; arbitrary names go through
// Conn.Atom instead.
type Atom string

const (
	AtomWMName         Atom = "WM_NAME"
	AtomWMClass        Atom = "WM_CLASS"
	AtomWMProtocols    Atom = "WM_PROTOCOLS"
	AtomWMDeleteWindow Atom = "WM_DELETE_WINDOW"
	AtomWMTakeFocus    Atom = "WM_TAKE_FOCUS"
	AtomWMState        Atom = "WM_STATE"
	AtomUTF8String     Atom = "UTF8_STRING"

	AtomNetActiveWindow      Atom = "_NET_ACTIVE_WINDOW"
	AtomNetClientList        Atom = "_NET_CLIENT_LIST"
	AtomNetClientListStack   Atom = "_NET_CLIENT_LIST_STACKING"
	AtomNetCurrentDesktop    Atom = "_NET_CURRENT_DESKTOP"
	AtomNetDesktopNames      Atom = "_NET_DESKTOP_NAMES"
	AtomNetNumberOfDesktops  Atom = "_NET_NUMBER_OF_DESKTOPS"
	AtomNetSupported         Atom = "_NET_SUPPORTED"
	AtomNetSupportingWmCheck Atom = "_NET_SUPPORTING_WM_CHECK"
	AtomNetWmDesktop         Atom = "_NET_WM_DESKTOP"
	AtomNetWmName            Atom = "_NET_WM_NAME"
	AtomNetWmState           Atom = "_NET_WM_STATE"
	AtomNetWmStateFullscreen Atom = "_NET_WM_STATE_FULLSCREEN"
	AtomNetWmWindowType      Atom = "_NET_WM_WINDOW_TYPE"

	AtomNetWindowTypeDesktop      Atom = "_NET_WM_WINDOW_TYPE_DESKTOP"
	AtomNetWindowTypeDock         Atom = "_NET_WM_WINDOW_TYPE_DOCK"
	AtomNetWindowTypeToolbar      Atom = "_NET_WM_WINDOW_TYPE_TOOLBAR"
	AtomNetWindowTypeMenu         Atom = "_NET_WM_WINDOW_TYPE_MENU"
	AtomNetWindowTypeUtility      Atom = "_NET_WM_WINDOW_TYPE_UTILITY"
	AtomNetWindowTypeSplash       Atom = "_NET_WM_WINDOW_TYPE_SPLASH"
	AtomNetWindowTypeDialog       Atom = "_NET_WM_WINDOW_TYPE_DIALOG"
	AtomNetWindowTypeDropdownMenu Atom = "_NET_WM_WINDOW_TYPE_DROPDOWN_MENU"
	AtomNetWindowTypePopupMenu    Atom = "_NET_WM_WINDOW_TYPE_POPUP_MENU"
	AtomNetWindowTypeTooltip      Atom = "_NET_WM_WINDOW_TYPE_TOOLTIP"
	AtomNetWindowTypeNotification Atom = "_NET_WM_WINDOW_TYPE_NOTIFICATION"
	AtomNetWindowTypeNormal       Atom = "_NET_WM_WINDOW_TYPE_NORMAL"
)

// knownAtoms is every symbolic atom interned eagerly at connect time.
var knownAtoms = []Atom{
	AtomWMName, AtomWMClass, AtomWMProtocols, AtomWMDeleteWindow,
	AtomWMTakeFocus, AtomWMState, AtomUTF8String,
	AtomNetActiveWindow, AtomNetClientList, AtomNetClientListStack,
	AtomNetCurrentDesktop, AtomNetDesktopNames, AtomNetNumberOfDesktops,
	AtomNetSupported, AtomNetSupportingWmCheck, AtomNetWmDesktop,
	AtomNetWmName, AtomNetWmState, AtomNetWmStateFullscreen,
	AtomNetWmWindowType,
	AtomNetWindowTypeDesktop, AtomNetWindowTypeDock,
	AtomNetWindowTypeToolbar, AtomNetWindowTypeMenu,
	AtomNetWindowTypeUtility, AtomNetWindowTypeSplash,
	AtomNetWindowTypeDialog, AtomNetWindowTypeDropdownMenu,
	AtomNetWindowTypePopupMenu, AtomNetWindowTypeTooltip,
	AtomNetWindowTypeNotification, AtomNetWindowTypeNormal,
}

// ewmhSupportedAtoms is the set advertised through _NET_SUPPORTED.
var ewmhSupportedAtoms = []Atom{
	AtomNetActiveWindow, AtomNetClientList, AtomNetClientListStack,
	AtomNetCurrentDesktop, AtomNetDesktopNames, AtomNetNumberOfDesktops,
	AtomNetSupported, AtomNetSupportingWmCheck, AtomNetWmDesktop,
	AtomNetWmName, AtomNetWmState, AtomNetWmStateFullscreen,
	AtomNetWmWindowType,
}

// autoFloatWindowTypes are window types that should float rather than tile.
var autoFloatWindowTypes = []Atom{
	AtomNetWindowTypeDialog,
	AtomNetWindowTypeDropdownMenu,
	AtomNetWindowTypeMenu,
	AtomNetWindowTypeNotification,
	AtomNetWindowTypePopupMenu,
	AtomNetWindowTypeSplash,
	AtomNetWindowTypeToolbar,
	AtomNetWindowTypeUtility,
}

// unmanagedWindowTypes are window types the window manager leaves alone.
var unmanagedWindowTypes = []Atom{
	AtomNetWindowTypeDesktop,
	AtomNetWindowTypeDock,
	AtomNetWindowTypeTooltip,
}

// Atom resolves an arbitrary atom name to its server identifier,
// interning it if necessary. Results are cached for the lifetime of
// the connection: the server is consulted at most once per name.
func (c *Conn) Atom(name string) (xproto.Atom, error) {
	if a, ok := c.atoms[name]; ok {
		return a, nil
	}
	a, err := c.api.InternAtom(name)
	if err != nil {
		return 0, fmt.Errorf("failed to intern atom %q: %w", name, err)
	}
	c.atoms[name] = a
	return a, nil
}

// knownAtom returns the cached identifier for a symbolic atom. The
// whole closed set is interned during Connect, so a miss here means
// the connection was not set up through Connect and is a programming
// error.
func (c *Conn) knownAtom(a Atom) xproto.Atom {
	id, ok := c.atoms[string(a)]
	if !ok {
		panic(fmt.Sprintf("atom %q was not interned at connect time", a))
	}
	return id
}

// internKnownAtoms primes the cache with the closed symbolic set.
func (c *Conn) internKnownAtoms() error {
	for _, a := range knownAtoms {
		if _, err := c.Atom(string(a)); err != nil {
			return err
		}
	}
	return nil
}
