// Package backend defines the window-system capability set the window
// manager is written against. The X11 adapter is the one production
// implementation; Recorder stands in for it in tests.
package backend

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/strata/internal/x11"
)

// WindowSystem is everything the window manager needs from the
// underlying display protocol. All methods issue requests on a single
// connection and must be called from one goroutine.
type WindowSystem interface {
	// Classification.
	ShouldFloat(win xproto.Window, floatingClasses []string) bool
	IsManaged(win xproto.Window) bool

	// Geometry and configuration.
	PositionWindow(win xproto.Window, region x11.Region, borderWidth uint32, stackAbove bool) error
	RaiseWindow(win xproto.Window) error
	WindowGeometry(win xproto.Window) (x11.Region, error)
	MapWindow(win xproto.Window) error
	UnmapWindow(win xproto.Window) error
	MarkNewWindow(win xproto.Window) error
	SetBorderColor(win xproto.Window, color uint32) error
	FocusWindow(win xproto.Window) error
	SendClientEvent(win xproto.Window, proto x11.Atom) error

	// EWMH publishing.
	AnnounceIdentity(workspaces []string) error
	SetDesktops(workspaces []string) error
	SetKnownClients(clients []xproto.Window) error
	SetCurrentWorkspace(index uint32) error
	SetClientWorkspace(win xproto.Window, index uint32) error
	SetRootName(name string) error
	SetFullscreenState(win xproto.Window, fullscreen bool) error

	// Queries.
	CurrentScreens() ([]x11.Screen, error)
	CurrentClients() []xproto.Window
	CursorPosition() (x11.Point, error)
	FocusedClient() (xproto.Window, error)

	// Pointer.
	WarpCursor(target xproto.Window, screen x11.Screen)

	// Lifecycle and events.
	GrabInputs(keys []x11.KeyBinding, buttons []x11.ButtonBinding) error
	WaitForEvent() (x11.Event, error)
	Flush() error
	Cleanup()
	Close()
}

var _ WindowSystem = (*x11.Conn)(nil)
