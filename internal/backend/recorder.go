package backend

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/strata/internal/x11"
)

// Recorder implements WindowSystem by remembering every call instead
// of talking to a display server. Events are played back from a
// scripted queue; once it runs dry WaitForEvent reports a closed
// connection, which ends a consumer's event loop naturally.
type Recorder struct {
	// Calls lists every method invocation in order, formatted as
	// "Name(args)".
	Calls []string

	// Screens is what CurrentScreens returns.
	Screens []x11.Screen
	// Clients is what CurrentClients returns.
	Clients []xproto.Window
	// Events is the scripted event queue consumed by WaitForEvent.
	Events []x11.Event
	// Floating marks windows ShouldFloat reports true for.
	Floating map[xproto.Window]bool
	// Unmanaged marks windows IsManaged reports false for.
	Unmanaged map[xproto.Window]bool
	// Pointer is what CursorPosition returns.
	Pointer x11.Point
	// Focused is what FocusedClient returns.
	Focused xproto.Window
}

var _ WindowSystem = (*Recorder)(nil)

// NewRecorder returns a Recorder with a single 1920x1080 screen.
func NewRecorder() *Recorder {
	screen := x11.Screen{
		Full:   x11.Region{Width: 1920, Height: 1080},
		Usable: x11.Region{Width: 1920, Height: 1080},
	}
	return &Recorder{
		Screens:   []x11.Screen{screen},
		Floating:  make(map[xproto.Window]bool),
		Unmanaged: make(map[xproto.Window]bool),
	}
}

func (r *Recorder) record(format string, args ...interface{}) {
	r.Calls = append(r.Calls, fmt.Sprintf(format, args...))
}

// Called reports whether any recorded call starts with the given
// prefix.
func (r *Recorder) Called(prefix string) bool {
	for _, c := range r.Calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}

func (r *Recorder) ShouldFloat(win xproto.Window, floatingClasses []string) bool {
	r.record("ShouldFloat(%d)", win)
	return r.Floating[win]
}

func (r *Recorder) IsManaged(win xproto.Window) bool {
	r.record("IsManaged(%d)", win)
	return !r.Unmanaged[win]
}

func (r *Recorder) PositionWindow(win xproto.Window, region x11.Region, borderWidth uint32, stackAbove bool) error {
	r.record("PositionWindow(%d, %+v, %d, %t)", win, region, borderWidth, stackAbove)
	return nil
}

func (r *Recorder) RaiseWindow(win xproto.Window) error {
	r.record("RaiseWindow(%d)", win)
	return nil
}

func (r *Recorder) WindowGeometry(win xproto.Window) (x11.Region, error) {
	r.record("WindowGeometry(%d)", win)
	return x11.Region{Width: 800, Height: 600}, nil
}

func (r *Recorder) MapWindow(win xproto.Window) error {
	r.record("MapWindow(%d)", win)
	return nil
}

func (r *Recorder) UnmapWindow(win xproto.Window) error {
	r.record("UnmapWindow(%d)", win)
	return nil
}

func (r *Recorder) MarkNewWindow(win xproto.Window) error {
	r.record("MarkNewWindow(%d)", win)
	return nil
}

func (r *Recorder) SetBorderColor(win xproto.Window, color uint32) error {
	r.record("SetBorderColor(%d, %#x)", win, color)
	return nil
}

func (r *Recorder) FocusWindow(win xproto.Window) error {
	r.record("FocusWindow(%d)", win)
	return nil
}

func (r *Recorder) SendClientEvent(win xproto.Window, proto x11.Atom) error {
	r.record("SendClientEvent(%d, %s)", win, proto)
	return nil
}

func (r *Recorder) AnnounceIdentity(workspaces []string) error {
	r.record("AnnounceIdentity(%v)", workspaces)
	return nil
}

func (r *Recorder) SetDesktops(workspaces []string) error {
	r.record("SetDesktops(%v)", workspaces)
	return nil
}

func (r *Recorder) SetKnownClients(clients []xproto.Window) error {
	r.record("SetKnownClients(%v)", clients)
	return nil
}

func (r *Recorder) SetCurrentWorkspace(index uint32) error {
	r.record("SetCurrentWorkspace(%d)", index)
	return nil
}

func (r *Recorder) SetClientWorkspace(win xproto.Window, index uint32) error {
	r.record("SetClientWorkspace(%d, %d)", win, index)
	return nil
}

func (r *Recorder) SetRootName(name string) error {
	r.record("SetRootName(%q)", name)
	return nil
}

func (r *Recorder) SetFullscreenState(win xproto.Window, fullscreen bool) error {
	r.record("SetFullscreenState(%d, %t)", win, fullscreen)
	return nil
}

func (r *Recorder) CurrentScreens() ([]x11.Screen, error) {
	r.record("CurrentScreens()")
	return r.Screens, nil
}

func (r *Recorder) CurrentClients() []xproto.Window {
	r.record("CurrentClients()")
	return r.Clients
}

func (r *Recorder) CursorPosition() (x11.Point, error) {
	r.record("CursorPosition()")
	return r.Pointer, nil
}

func (r *Recorder) FocusedClient() (xproto.Window, error) {
	r.record("FocusedClient()")
	return r.Focused, nil
}

func (r *Recorder) WarpCursor(target xproto.Window, screen x11.Screen) {
	r.record("WarpCursor(%d)", target)
}

func (r *Recorder) GrabInputs(keys []x11.KeyBinding, buttons []x11.ButtonBinding) error {
	r.record("GrabInputs(%d keys, %d buttons)", len(keys), len(buttons))
	return nil
}

func (r *Recorder) WaitForEvent() (x11.Event, error) {
	if len(r.Events) == 0 {
		return nil, x11.ErrConnClosed
	}
	ev := r.Events[0]
	r.Events = r.Events[1:]
	return ev, nil
}

func (r *Recorder) Flush() error {
	r.record("Flush()")
	return nil
}

func (r *Recorder) Cleanup() {
	r.record("Cleanup()")
}

func (r *Recorder) Close() {
	r.record("Close()")
}
