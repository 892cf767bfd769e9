package x11

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// wmName is the identification string published through WM_NAME and
// _NET_WM_NAME on the check window.
const wmName = "strata"

// Conn is the semantic layer over a single X server connection. It
// owns the EWMH check window, the atom cache and the derived window
// type sets. A Conn is not safe for concurrent use; the window manager
// drives it from a single goroutine.
type Conn struct {
	api      API
	checkWin xproto.Window

	atoms          map[string]xproto.Atom
	floatTypes     []xproto.Atom
	unmanagedTypes []xproto.Atom

	cleaned bool
}

// Connect establishes the connection to the X server, interns the
// full symbolic atom set, subscribes to display layout changes and
// creates the hidden 1x1 check window. Any failure is fatal to
// startup; there is no partially connected state to recover.
func Connect() (*Conn, error) {
	api, err := newXAPI()
	if err != nil {
		return nil, err
	}
	c, err := newConn(api)
	if err != nil {
		api.Close()
		return nil, err
	}
	return c, nil
}

func newConn(api API) (*Conn, error) {
	c := &Conn{
		api:   api,
		atoms: make(map[string]xproto.Atom),
	}
	if err := c.internKnownAtoms(); err != nil {
		return nil, err
	}
	for _, a := range autoFloatWindowTypes {
		c.floatTypes = append(c.floatTypes, c.knownAtom(a))
	}
	for _, a := range unmanagedWindowTypes {
		c.unmanagedTypes = append(c.unmanagedTypes, c.knownAtom(a))
	}
	if err := api.SetRandrNotify(); err != nil {
		return nil, fmt.Errorf("failed to enable display change notifications: %w", err)
	}
	checkWin, err := api.CreateWindow(Region{Width: 1, Height: 1}, true)
	if err != nil {
		return nil, fmt.Errorf("failed to create check window: %w", err)
	}
	c.checkWin = checkWin
	return c, nil
}

// Root returns the root window of the connection's screen.
func (c *Conn) Root() xproto.Window { return c.api.Root() }

// XUtil exposes the underlying xgbutil connection for keysym lookup
// when parsing binding strings. Nil when the Conn was built over a
// non-xgb transport.
func (c *Conn) XUtil() *xgbutil.XUtil {
	if a, ok := c.api.(*xAPI); ok {
		return a.xu
	}
	return nil
}

// GrabInputs registers every key and button binding on the root
// window, sets the root event mask the window manager needs, and
// flushes. Individual grab failures are reported but do not stop the
// remaining grabs from being attempted.
func (c *Conn) GrabInputs(keys []KeyBinding, buttons []ButtonBinding) error {
	var firstErr error
	for _, k := range keys {
		if err := c.api.GrabKey(k.Mods, k.Code); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to grab key %d/%d: %w", k.Mods, k.Code, err)
		}
	}
	for _, b := range buttons {
		if err := c.api.GrabButton(b.Mods, b.Button); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to grab button %d/%d: %w", b.Mods, b.Button, err)
		}
	}
	if err := c.api.ChangeWindowAttributes(
		c.api.Root(), xproto.CwEventMask, []uint32{uint32(rootEventMask)},
	); err != nil {
		if _, ok := err.(xproto.AccessError); ok {
			return fmt.Errorf("another window manager is already running: %w", err)
		}
		return fmt.Errorf("failed to set root event mask: %w", err)
	}
	if err := c.api.Flush(); err != nil {
		return err
	}
	return firstErr
}

// Flush forces queued requests out to the server. Property writes are
// not guaranteed visible to other clients until this returns.
func (c *Conn) Flush() error {
	return c.api.Flush()
}

// Cleanup releases all grabs, destroys the check window and removes
// the active window property from the root. It is safe to call more
// than once: repeat destroys may fail at the server and are logged,
// never escalated.
func (c *Conn) Cleanup() {
	if err := c.api.UngrabAllKeys(); err != nil {
		slog.Warn("failed to release key grabs", "error", err)
	}
	if err := c.api.UngrabAllButtons(); err != nil {
		slog.Warn("failed to release button grabs", "error", err)
	}
	if c.checkWin != 0 {
		if err := c.api.DestroyWindow(c.checkWin); err != nil {
			slog.Warn("failed to destroy check window", "window", c.checkWin, "error", err)
		}
	}
	if err := c.api.DeleteProperty(c.api.Root(), c.knownAtom(AtomNetActiveWindow)); err != nil {
		slog.Warn("failed to delete active window property", "error", err)
	}
	c.cleaned = true
}

// Close tears down the server connection. The blocking WaitForEvent
// call in the event loop returns with an error once this happens.
func (c *Conn) Close() {
	c.api.Close()
}
