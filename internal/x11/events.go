package x11

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
)

// Event is a protocol event translated into the vocabulary the window
// manager consumes. Raw events this package has no use for are
// swallowed inside WaitForEvent.
type Event interface {
	isEvent()
}

// KeyPressEvent is a grabbed key combination being pressed.
type KeyPressEvent struct {
	Mods uint16
	Code uint8
}

// ButtonPressEvent is a grabbed pointer button press, with the pointer
// location in root coordinates.
type ButtonPressEvent struct {
	Mods   uint16
	Button uint8
	Window xproto.Window
	Point  Point
}

// MapRequestEvent is a client asking to become visible.
type MapRequestEvent struct {
	Window xproto.Window
}

// UnmapNotifyEvent reports a window becoming hidden.
type UnmapNotifyEvent struct {
	Window xproto.Window
}

// DestroyNotifyEvent reports a window ceasing to exist.
type DestroyNotifyEvent struct {
	Window xproto.Window
}

// EnterNotifyEvent reports the pointer crossing into a window.
type EnterNotifyEvent struct {
	Window xproto.Window
}

// LeaveNotifyEvent reports the pointer crossing out of a window.
type LeaveNotifyEvent struct {
	Window xproto.Window
}

// ConfigureRequestEvent is a client asking for new geometry.
type ConfigureRequestEvent struct {
	Window xproto.Window
	Region Region
}

// ClientMessageEvent carries an arbitrary client message; Type is the
// message's atom identifier.
type ClientMessageEvent struct {
	Window xproto.Window
	Type   xproto.Atom
	Data   []uint32
}

// PropertyNotifyEvent reports a property change on a window.
type PropertyNotifyEvent struct {
	Window  xproto.Window
	Atom    xproto.Atom
	Deleted bool
}

// ScreenChangeEvent reports a change in the attached displays; the
// manager should re-enumerate screens.
type ScreenChangeEvent struct{}

func (KeyPressEvent) isEvent()         {}
func (ButtonPressEvent) isEvent()      {}
func (MapRequestEvent) isEvent()       {}
func (UnmapNotifyEvent) isEvent()      {}
func (DestroyNotifyEvent) isEvent()    {}
func (EnterNotifyEvent) isEvent()      {}
func (LeaveNotifyEvent) isEvent()      {}
func (ConfigureRequestEvent) isEvent() {}
func (ClientMessageEvent) isEvent()    {}
func (PropertyNotifyEvent) isEvent()   {}
func (ScreenChangeEvent) isEvent()     {}

// WaitForEvent blocks the calling goroutine until the server delivers
// an event this package understands, or the connection errors. There
// is no cancellation path: shutdown happens by closing the connection,
// which makes this return ErrConnClosed.
func (c *Conn) WaitForEvent() (Event, error) {
	for {
		raw, err := c.api.WaitForEvent()
		if err != nil {
			return nil, err
		}
		if ev := translateEvent(raw, c.checkWin); ev != nil {
			return ev, nil
		}
	}
}

func translateEvent(raw xgb.Event, checkWin xproto.Window) Event {
	switch e := raw.(type) {
	case xproto.KeyPressEvent:
		return KeyPressEvent{Mods: e.State, Code: uint8(e.Detail)}
	case xproto.ButtonPressEvent:
		return ButtonPressEvent{
			Mods:   e.State,
			Button: uint8(e.Detail),
			Window: e.Child,
			Point:  Point{X: int(e.RootX), Y: int(e.RootY)},
		}
	case xproto.MapRequestEvent:
		return MapRequestEvent{Window: e.Window}
	case xproto.UnmapNotifyEvent:
		return UnmapNotifyEvent{Window: e.Window}
	case xproto.DestroyNotifyEvent:
		if e.Window == checkWin {
			return nil
		}
		return DestroyNotifyEvent{Window: e.Window}
	case xproto.EnterNotifyEvent:
		return EnterNotifyEvent{Window: e.Event}
	case xproto.LeaveNotifyEvent:
		return LeaveNotifyEvent{Window: e.Event}
	case xproto.ConfigureRequestEvent:
		return ConfigureRequestEvent{
			Window: e.Window,
			Region: Region{
				X:      int(e.X),
				Y:      int(e.Y),
				Width:  int(e.Width),
				Height: int(e.Height),
			},
		}
	case xproto.ClientMessageEvent:
		var data []uint32
		if e.Format == 32 {
			data = e.Data.Data32
		}
		return ClientMessageEvent{Window: e.Window, Type: e.Type, Data: data}
	case xproto.PropertyNotifyEvent:
		return PropertyNotifyEvent{
			Window:  e.Window,
			Atom:    e.Atom,
			Deleted: e.State == xproto.PropertyDelete,
		}
	case randr.ScreenChangeNotifyEvent:
		return ScreenChangeEvent{}
	case randr.NotifyEvent:
		return ScreenChangeEvent{}
	}
	return nil
}
