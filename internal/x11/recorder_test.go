package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// recorder is an in-memory API implementation. It stores properties
// and geometry like a server would and counts every request, so tests
// can assert on wire traffic without a display.
type recorder struct {
	root     xproto.Window
	nextAtom xproto.Atom
	nextWin  xproto.Window

	atoms       map[string]xproto.Atom
	internCalls map[string]int

	props    map[xproto.Window]map[xproto.Atom]recordedProp
	geometry map[xproto.Window]Region

	configures  []configureCall
	attrChanges []attrChange
	warps       []warpCall
	mapped      []xproto.Window
	unmapped    []xproto.Window
	destroyed   []xproto.Window
	deletals    []propKey

	grabbedKeys    []KeyBinding
	grabbedButtons []ButtonBinding
	keyUngrabs     int
	buttonUngrabs  int

	screens []Screen
	flushes int
	events  []xgb.Event

	focused xproto.Window
}

type recordedProp struct {
	typ    xproto.Atom
	format byte
	data   []byte
}

type configureCall struct {
	win    xproto.Window
	mask   uint16
	values []uint32
}

type attrChange struct {
	win    xproto.Window
	mask   uint32
	values []uint32
}

type warpCall struct {
	dst  xproto.Window
	x, y int
}

type propKey struct {
	win  xproto.Window
	prop xproto.Atom
}

func newRecorder() *recorder {
	return &recorder{
		root:        1,
		nextAtom:    100,
		nextWin:     1000,
		atoms:       make(map[string]xproto.Atom),
		internCalls: make(map[string]int),
		props:       make(map[xproto.Window]map[xproto.Atom]recordedProp),
		geometry:    make(map[xproto.Window]Region),
		screens: []Screen{{
			Full:   Region{Width: 1920, Height: 1080},
			Usable: Region{Width: 1920, Height: 1080},
		}},
	}
}

// newTestConn builds a Conn over a fresh recorder, mirroring what
// Connect does against a live server.
func newTestConn() (*Conn, *recorder) {
	rec := newRecorder()
	conn, err := newConn(rec)
	if err != nil {
		panic(err)
	}
	return conn, rec
}

func (r *recorder) Root() xproto.Window { return r.root }

func (r *recorder) InternAtom(name string) (xproto.Atom, error) {
	r.internCalls[name]++
	return r.atomFor(name), nil
}

// atomFor hands out server-side atom ids without counting as a
// request, for test setup.
func (r *recorder) atomFor(name string) xproto.Atom {
	if a, ok := r.atoms[name]; ok {
		return a
	}
	r.nextAtom++
	r.atoms[name] = r.nextAtom
	return r.nextAtom
}

func (r *recorder) PropertyBytes(win xproto.Window, prop xproto.Atom) ([]byte, error) {
	p, ok := r.props[win][prop]
	if !ok {
		return nil, fmt.Errorf("window %d has no property %d", win, prop)
	}
	return p.data, nil
}

func (r *recorder) ReplaceProperty(win xproto.Window, prop, typ xproto.Atom, format byte, n uint32, data []byte) error {
	if r.props[win] == nil {
		r.props[win] = make(map[xproto.Atom]recordedProp)
	}
	r.props[win][prop] = recordedProp{typ: typ, format: format, data: data}
	return nil
}

func (r *recorder) DeleteProperty(win xproto.Window, prop xproto.Atom) error {
	r.deletals = append(r.deletals, propKey{win: win, prop: prop})
	delete(r.props[win], prop)
	return nil
}

func (r *recorder) CreateWindow(region Region, overrideRedirect bool) (xproto.Window, error) {
	r.nextWin++
	r.geometry[r.nextWin] = region
	return r.nextWin, nil
}

func (r *recorder) DestroyWindow(win xproto.Window) error {
	for _, d := range r.destroyed {
		if d == win {
			r.destroyed = append(r.destroyed, win)
			return fmt.Errorf("window %d does not exist", win)
		}
	}
	r.destroyed = append(r.destroyed, win)
	delete(r.geometry, win)
	return nil
}

func (r *recorder) MapWindow(win xproto.Window) error {
	r.mapped = append(r.mapped, win)
	return nil
}

func (r *recorder) UnmapWindow(win xproto.Window) error {
	r.unmapped = append(r.unmapped, win)
	return nil
}

func (r *recorder) ConfigureWindow(win xproto.Window, mask uint16, values []uint32) error {
	r.configures = append(r.configures, configureCall{win: win, mask: mask, values: values})
	return nil
}

func (r *recorder) ChangeWindowAttributes(win xproto.Window, mask uint32, values []uint32) error {
	r.attrChanges = append(r.attrChanges, attrChange{win: win, mask: mask, values: values})
	return nil
}

func (r *recorder) WindowGeometry(win xproto.Window) (Region, error) {
	region, ok := r.geometry[win]
	if !ok {
		return Region{}, fmt.Errorf("window %d does not exist", win)
	}
	return region, nil
}

func (r *recorder) QueryTree(win xproto.Window) ([]xproto.Window, error) {
	var children []xproto.Window
	for w := range r.geometry {
		children = append(children, w)
	}
	return children, nil
}

func (r *recorder) WarpPointer(dst xproto.Window, x, y int) error {
	r.warps = append(r.warps, warpCall{dst: dst, x: x, y: y})
	return nil
}

func (r *recorder) CursorPosition() (Point, error) {
	return Point{}, nil
}

func (r *recorder) SetInputFocus(win xproto.Window) error {
	r.focused = win
	return nil
}

func (r *recorder) FocusedWindow() (xproto.Window, error) {
	return r.focused, nil
}

func (r *recorder) SendClientMessage(win xproto.Window, typ xproto.Atom, data [5]uint32) error {
	return nil
}

func (r *recorder) GrabKey(mods uint16, code uint8) error {
	r.grabbedKeys = append(r.grabbedKeys, KeyBinding{Mods: mods, Code: code})
	return nil
}

func (r *recorder) UngrabAllKeys() error {
	r.keyUngrabs++
	r.grabbedKeys = nil
	return nil
}

func (r *recorder) GrabButton(mods uint16, button uint8) error {
	r.grabbedButtons = append(r.grabbedButtons, ButtonBinding{Mods: mods, Button: button})
	return nil
}

func (r *recorder) UngrabAllButtons() error {
	r.buttonUngrabs++
	r.grabbedButtons = nil
	return nil
}

func (r *recorder) SetRandrNotify() error { return nil }

func (r *recorder) Screens() ([]Screen, error) {
	if r.screens == nil {
		return nil, fmt.Errorf("screen query failed")
	}
	return r.screens, nil
}

func (r *recorder) Flush() error {
	r.flushes++
	return nil
}

func (r *recorder) WaitForEvent() (xgb.Event, error) {
	if len(r.events) == 0 {
		return nil, ErrConnClosed
	}
	ev := r.events[0]
	r.events = r.events[1:]
	return ev, nil
}

func (r *recorder) Close() {}

// setProp seeds a property the way a client would have set it.
func (r *recorder) setProp(win xproto.Window, name string, data []byte) {
	atom := r.atomFor(name)
	if r.props[win] == nil {
		r.props[win] = make(map[xproto.Atom]recordedProp)
	}
	r.props[win][atom] = recordedProp{format: 8, data: data}
}

// propData returns the stored bytes for a named property, or nil.
func (r *recorder) propData(win xproto.Window, name string) []byte {
	atom, ok := r.atoms[name]
	if !ok {
		return nil
	}
	p, ok := r.props[win][atom]
	if !ok {
		return nil
	}
	return p.data
}

// propType returns the type atom a named property was written with,
// or zero.
func (r *recorder) propType(win xproto.Window, name string) xproto.Atom {
	atom, ok := r.atoms[name]
	if !ok {
		return 0
	}
	return r.props[win][atom].typ
}

// hasProp reports whether the property currently exists at all.
func (r *recorder) hasProp(win xproto.Window, name string) bool {
	atom, ok := r.atoms[name]
	if !ok {
		return false
	}
	_, ok = r.props[win][atom]
	return ok
}
