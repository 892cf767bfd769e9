package x11

import (
	"fmt"
	"time"

	"github.com/BurntSushi/xgb/xproto"
)

// PositionWindow moves and resizes a window in a single configure
// request. Position, size and border width always travel together;
// when stackAbove is set the raise is part of the same request, so a
// reader of window state can never observe the resize without the
// restack.
func (c *Conn) PositionWindow(win xproto.Window, region Region, borderWidth uint32, stackAbove bool) error {
	mask := uint16(xproto.ConfigWindowX |
		xproto.ConfigWindowY |
		xproto.ConfigWindowWidth |
		xproto.ConfigWindowHeight |
		xproto.ConfigWindowBorderWidth)
	values := []uint32{
		uint32(region.X),
		uint32(region.Y),
		uint32(region.Width),
		uint32(region.Height),
		borderWidth,
	}
	if stackAbove {
		mask |= xproto.ConfigWindowStackMode
		values = append(values, xproto.StackModeAbove)
	}
	if err := c.api.ConfigureWindow(win, mask, values); err != nil {
		return fmt.Errorf("failed to position window %d: %w", win, err)
	}
	return nil
}

// RaiseWindow places a window above all of its siblings.
func (c *Conn) RaiseWindow(win xproto.Window) error {
	err := c.api.ConfigureWindow(win, xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove})
	if err != nil {
		return fmt.Errorf("failed to raise window %d: %w", win, err)
	}
	return nil
}

// WindowGeometry reads back a window's current region. Fails if the
// window no longer exists.
func (c *Conn) WindowGeometry(win xproto.Window) (Region, error) {
	region, err := c.api.WindowGeometry(win)
	if err != nil {
		return Region{}, fmt.Errorf("failed to read geometry of window %d: %w", win, err)
	}
	return region, nil
}

// MapWindow makes a window visible. Fire and forget: the error is
// there for callers that care, nothing more.
func (c *Conn) MapWindow(win xproto.Window) error {
	return c.api.MapWindow(win)
}

// UnmapWindow hides a window.
func (c *Conn) UnmapWindow(win xproto.Window) error {
	return c.api.UnmapWindow(win)
}

// MarkNewWindow subscribes to the events a managed client must report:
// enter/leave crossings, property changes and structure changes.
func (c *Conn) MarkNewWindow(win xproto.Window) error {
	err := c.api.ChangeWindowAttributes(win, xproto.CwEventMask, []uint32{uint32(clientEventMask)})
	if err != nil {
		return fmt.Errorf("failed to set event mask on window %d: %w", win, err)
	}
	return nil
}

// SetBorderColor recolours a window's border, used to mark focus.
func (c *Conn) SetBorderColor(win xproto.Window, color uint32) error {
	err := c.api.ChangeWindowAttributes(win, xproto.CwBorderPixel, []uint32{color})
	if err != nil {
		return fmt.Errorf("failed to set border color on window %d: %w", win, err)
	}
	return nil
}

// FocusWindow gives a window input focus and publishes it as the
// active window.
func (c *Conn) FocusWindow(win xproto.Window) error {
	if err := c.api.SetInputFocus(win); err != nil {
		return fmt.Errorf("failed to focus window %d: %w", win, err)
	}
	return c.SetActiveWindow(win)
}

// SendClientEvent delivers a WM_PROTOCOLS client message (such as
// WM_DELETE_WINDOW or WM_TAKE_FOCUS) to a window.
func (c *Conn) SendClientEvent(win xproto.Window, proto Atom) error {
	data := [5]uint32{
		uint32(c.knownAtom(proto)),
		uint32(time.Now().Unix()),
	}
	if err := c.api.SendClientMessage(win, c.knownAtom(AtomWMProtocols), data); err != nil {
		return fmt.Errorf("failed to send %s to window %d: %w", proto, win, err)
	}
	return nil
}

// DestroyWindow forcefully destroys a window, for clients that do not
// honour WM_DELETE_WINDOW.
func (c *Conn) DestroyWindow(win xproto.Window) error {
	return c.api.DestroyWindow(win)
}
