package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

// Event masks used for the root window and for managed clients.
const (
	rootEventMask = xproto.EventMaskPropertyChange |
		xproto.EventMaskSubstructureRedirect |
		xproto.EventMaskSubstructureNotify |
		xproto.EventMaskButtonMotion

	clientEventMask = xproto.EventMaskEnterWindow |
		xproto.EventMaskLeaveWindow |
		xproto.EventMaskPropertyChange |
		xproto.EventMaskStructureNotify
)

// ErrConnClosed is returned from WaitForEvent when the server
// connection has gone away.
var ErrConnClosed = errors.New("x11: connection closed")

// API is the transport surface this package issues requests through.
// The production implementation talks to the X server over xgb; tests
// substitute a recorder. Requests are queued on the connection and are
// only guaranteed visible to other clients after Flush.
type API interface {
	Root() xproto.Window
	InternAtom(name string) (xproto.Atom, error)

	PropertyBytes(win xproto.Window, prop xproto.Atom) ([]byte, error)
	ReplaceProperty(win xproto.Window, prop, typ xproto.Atom, format byte, n uint32, data []byte) error
	DeleteProperty(win xproto.Window, prop xproto.Atom) error

	CreateWindow(region Region, overrideRedirect bool) (xproto.Window, error)
	DestroyWindow(win xproto.Window) error
	MapWindow(win xproto.Window) error
	UnmapWindow(win xproto.Window) error
	ConfigureWindow(win xproto.Window, mask uint16, values []uint32) error
	ChangeWindowAttributes(win xproto.Window, mask uint32, values []uint32) error
	WindowGeometry(win xproto.Window) (Region, error)
	QueryTree(win xproto.Window) ([]xproto.Window, error)

	WarpPointer(dst xproto.Window, x, y int) error
	CursorPosition() (Point, error)
	SetInputFocus(win xproto.Window) error
	FocusedWindow() (xproto.Window, error)
	SendClientMessage(win xproto.Window, typ xproto.Atom, data [5]uint32) error

	GrabKey(mods uint16, code uint8) error
	UngrabAllKeys() error
	GrabButton(mods uint16, button uint8) error
	UngrabAllButtons() error

	SetRandrNotify() error
	Screens() ([]Screen, error)

	Flush() error
	WaitForEvent() (xgb.Event, error)
	Close()
}

// xAPI is the xgb-backed transport. It wraps an xgbutil connection so
// that the keybind machinery (keysym tables, modifier handling) is
// available to callers through XUtil.
type xAPI struct {
	xu   *xgbutil.XUtil
	conn *xgb.Conn
	root xproto.Window
}

var _ API = (*xAPI)(nil)

func newXAPI() (*xAPI, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}
	keybind.Initialize(xu)
	return &xAPI{
		xu:   xu,
		conn: xu.Conn(),
		root: xu.RootWin(),
	}, nil
}

func (a *xAPI) Root() xproto.Window { return a.root }

func (a *xAPI) InternAtom(name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(a.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}
	if reply == nil {
		return 0, fmt.Errorf("no reply interning %q", name)
	}
	return reply.Atom, nil
}

func (a *xAPI) PropertyBytes(win xproto.Window, prop xproto.Atom) ([]byte, error) {
	reply, err := xproto.GetProperty(
		a.conn, false, win, prop, xproto.GetPropertyTypeAny, 0, 1024,
	).Reply()
	if err != nil {
		return nil, err
	}
	if reply == nil || reply.Format == 0 {
		return nil, fmt.Errorf("window %d has no property %d", win, prop)
	}
	return reply.Value, nil
}

func (a *xAPI) ReplaceProperty(win xproto.Window, prop, typ xproto.Atom, format byte, n uint32, data []byte) error {
	return xproto.ChangePropertyChecked(
		a.conn, xproto.PropModeReplace, win, prop, typ, format, n, data,
	).Check()
}

func (a *xAPI) DeleteProperty(win xproto.Window, prop xproto.Atom) error {
	return xproto.DeletePropertyChecked(a.conn, win, prop).Check()
}

func (a *xAPI) CreateWindow(region Region, overrideRedirect bool) (xproto.Window, error) {
	win, err := xproto.NewWindowId(a.conn)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate window id: %w", err)
	}
	var mask uint32
	var values []uint32
	if overrideRedirect {
		mask = xproto.CwOverrideRedirect
		values = []uint32{1}
	}
	screen := a.xu.Screen()
	err = xproto.CreateWindowChecked(
		a.conn, screen.RootDepth, win, a.root,
		int16(region.X), int16(region.Y),
		uint16(region.Width), uint16(region.Height),
		0, xproto.WindowClassInputOutput, screen.RootVisual,
		mask, values,
	).Check()
	if err != nil {
		return 0, fmt.Errorf("failed to create window: %w", err)
	}
	return win, nil
}

func (a *xAPI) DestroyWindow(win xproto.Window) error {
	return xproto.DestroyWindowChecked(a.conn, win).Check()
}

func (a *xAPI) MapWindow(win xproto.Window) error {
	return xproto.MapWindowChecked(a.conn, win).Check()
}

func (a *xAPI) UnmapWindow(win xproto.Window) error {
	return xproto.UnmapWindowChecked(a.conn, win).Check()
}

func (a *xAPI) ConfigureWindow(win xproto.Window, mask uint16, values []uint32) error {
	return xproto.ConfigureWindowChecked(a.conn, win, mask, values).Check()
}

func (a *xAPI) ChangeWindowAttributes(win xproto.Window, mask uint32, values []uint32) error {
	return xproto.ChangeWindowAttributesChecked(a.conn, win, mask, values).Check()
}

func (a *xAPI) WindowGeometry(win xproto.Window) (Region, error) {
	reply, err := xproto.GetGeometry(a.conn, xproto.Drawable(win)).Reply()
	if err != nil {
		return Region{}, err
	}
	return Region{
		X:      int(reply.X),
		Y:      int(reply.Y),
		Width:  int(reply.Width),
		Height: int(reply.Height),
	}, nil
}

func (a *xAPI) QueryTree(win xproto.Window) ([]xproto.Window, error) {
	reply, err := xproto.QueryTree(a.conn, win).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Children, nil
}

func (a *xAPI) WarpPointer(dst xproto.Window, x, y int) error {
	return xproto.WarpPointerChecked(
		a.conn, xproto.WindowNone, dst, 0, 0, 0, 0, int16(x), int16(y),
	).Check()
}

func (a *xAPI) CursorPosition() (Point, error) {
	reply, err := xproto.QueryPointer(a.conn, a.root).Reply()
	if err != nil {
		return Point{}, err
	}
	return Point{X: int(reply.RootX), Y: int(reply.RootY)}, nil
}

func (a *xAPI) SetInputFocus(win xproto.Window) error {
	return xproto.SetInputFocusChecked(
		a.conn, xproto.InputFocusPointerRoot, win, xproto.TimeCurrentTime,
	).Check()
}

func (a *xAPI) FocusedWindow() (xproto.Window, error) {
	reply, err := xproto.GetInputFocus(a.conn).Reply()
	if err != nil {
		return 0, err
	}
	return reply.Focus, nil
}

func (a *xAPI) SendClientMessage(win xproto.Window, typ xproto.Atom, data [5]uint32) error {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   typ,
		Data:   xproto.ClientMessageDataUnionData32New(data[:]),
	}
	return xproto.SendEventChecked(
		a.conn, false, win, xproto.EventMaskNoEvent, string(ev.Bytes()),
	).Check()
}

func (a *xAPI) GrabKey(mods uint16, code uint8) error {
	return xproto.GrabKeyChecked(
		a.conn, false, a.root, mods, xproto.Keycode(code),
		xproto.GrabModeAsync, xproto.GrabModeAsync,
	).Check()
}

func (a *xAPI) UngrabAllKeys() error {
	return xproto.UngrabKeyChecked(
		a.conn, 0, a.root, xproto.ModMaskAny,
	).Check()
}

func (a *xAPI) GrabButton(mods uint16, button uint8) error {
	return xproto.GrabButtonChecked(
		a.conn, false, a.root,
		xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease|xproto.EventMaskButtonMotion,
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		xproto.WindowNone, xproto.CursorNone,
		button, mods,
	).Check()
}

func (a *xAPI) UngrabAllButtons() error {
	return xproto.UngrabButtonChecked(
		a.conn, xproto.ButtonIndexAny, a.root, xproto.ModMaskAny,
	).Check()
}

func (a *xAPI) SetRandrNotify() error {
	if err := randr.Init(a.conn); err != nil {
		return fmt.Errorf("randr init failed: %w", err)
	}
	return randr.SelectInputChecked(
		a.conn, a.root,
		randr.NotifyMaskScreenChange|randr.NotifyMaskCrtcChange|randr.NotifyMaskOutputChange,
	).Check()
}

// Screens enumerates displays through Xinerama, falling back to the
// root window geometry when Xinerama reports nothing useful.
func (a *xAPI) Screens() ([]Screen, error) {
	if err := xinerama.Init(a.conn); err != nil {
		return nil, fmt.Errorf("xinerama init failed: %w", err)
	}
	reply, err := xinerama.QueryScreens(a.conn).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to query screens: %w", err)
	}
	var screens []Screen
	for i, si := range reply.ScreenInfo {
		full := Region{
			X:      int(si.XOrg),
			Y:      int(si.YOrg),
			Width:  int(si.Width),
			Height: int(si.Height),
		}
		screens = append(screens, Screen{Index: i, Full: full, Usable: full})
	}
	if len(screens) == 0 {
		s := a.xu.Screen()
		full := Region{Width: int(s.WidthInPixels), Height: int(s.HeightInPixels)}
		screens = append(screens, Screen{Full: full, Usable: full})
	}
	return screens, nil
}

// Flush forces all queued requests to the server. xgb writes requests
// eagerly but gives no completion signal, so this is implemented as a
// sync round trip.
func (a *xAPI) Flush() error {
	a.conn.Sync()
	return nil
}

func (a *xAPI) WaitForEvent() (xgb.Event, error) {
	ev, err := a.conn.WaitForEvent()
	if ev == nil && err == nil {
		return nil, ErrConnClosed
	}
	if err != nil {
		return nil, err
	}
	return ev, nil
}

func (a *xAPI) Close() {
	a.conn.Close()
}
