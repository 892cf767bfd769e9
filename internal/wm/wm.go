// Package wm drives the window-system backend: it adopts and places
// client windows, dispatches input bindings and keeps the published
// EWMH state current. Layout here is deliberately simple; the point of
// the package is the protocol choreography, not tiling algebra.
package wm

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"sync"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/strata/internal/backend"
	"github.com/1broseidon/strata/internal/bindings"
	"github.com/1broseidon/strata/internal/config"
	"github.com/1broseidon/strata/internal/x11"
)

// Manager owns the single backend connection and the client bookkeeping.
type Manager struct {
	ws     backend.WindowSystem
	cfg    *config.Config
	tables *bindings.Tables

	focusedColor   uint32
	unfocusedColor uint32

	screens    []x11.Screen
	clients    []xproto.Window
	focused    xproto.Window
	fullscreen map[xproto.Window]x11.Region

	quit         bool
	shutdownOnce sync.Once
}

// New builds a manager over an established backend connection.
func New(ws backend.WindowSystem, cfg *config.Config, tables *bindings.Tables) (*Manager, error) {
	focused, err := config.ParseColor(cfg.FocusedBorder)
	if err != nil {
		return nil, err
	}
	unfocused, err := config.ParseColor(cfg.UnfocusedBorder)
	if err != nil {
		return nil, err
	}
	return &Manager{
		ws:             ws,
		cfg:            cfg,
		tables:         tables,
		focusedColor:   focused,
		unfocusedColor: unfocused,
		fullscreen:     make(map[xproto.Window]x11.Region),
	}, nil
}

// Startup publishes the WM identity, adopts windows left over from a
// previous session and registers all input grabs. Failure aborts the
// daemon; there is no partially started state.
func (m *Manager) Startup() error {
	if err := m.refreshScreens(); err != nil {
		return err
	}
	if err := m.ws.AnnounceIdentity(m.cfg.Workspaces); err != nil {
		return err
	}
	if err := m.ws.SetCurrentWorkspace(0); err != nil {
		return err
	}
	for _, win := range m.ws.CurrentClients() {
		m.manage(win)
	}
	// A client may already hold input focus from the previous session;
	// adopt that rather than whichever window happened to be managed
	// last.
	if win, err := m.ws.FocusedClient(); err == nil && m.isClient(win) {
		m.focus(win)
	}
	if err := m.ws.GrabInputs(m.tables.KeyGrabs(), m.tables.ButtonGrabs()); err != nil {
		return fmt.Errorf("failed to grab inputs: %w", err)
	}
	return m.ws.Flush()
}

// Run blocks on the event stream until a quit action or the
// connection going away.
func (m *Manager) Run() error {
	for !m.quit {
		ev, err := m.ws.WaitForEvent()
		if err != nil {
			if errors.Is(err, x11.ErrConnClosed) {
				return nil
			}
			return err
		}
		m.handle(ev)
	}
	return nil
}

// Shutdown releases grabs and published state, then drops the
// connection. Safe to call after a failed startup and safe to call
// more than once; only the first call reaches the server.
func (m *Manager) Shutdown() {
	m.shutdownOnce.Do(func() {
		m.ws.Cleanup()
		m.ws.Close()
	})
}

func (m *Manager) handle(ev x11.Event) {
	switch e := ev.(type) {
	case x11.MapRequestEvent:
		m.manage(e.Window)
	case x11.DestroyNotifyEvent:
		m.forget(e.Window)
	case x11.UnmapNotifyEvent:
		if e.Window == m.focused {
			m.focused = 0
		}
	case x11.EnterNotifyEvent:
		if m.isClient(e.Window) {
			m.focus(e.Window)
		}
	case x11.KeyPressEvent:
		if action, ok := m.tables.KeyAction(e.Mods, e.Code); ok {
			m.runAction(action)
		}
	case x11.ButtonPressEvent:
		if action, ok := m.tables.ButtonAction(e.Mods, e.Button); ok && m.isClient(e.Window) {
			m.focused = e.Window
			m.runAction(action)
		}
	case x11.ConfigureRequestEvent:
		// Clients keep their requested geometry; placement policy
		// beyond floating/fullscreen lives outside this harness.
		if err := m.ws.PositionWindow(e.Window, e.Region, m.cfg.BorderWidth, false); err != nil {
			slog.Debug("configure request failed", "window", e.Window, "error", err)
		}
	case x11.ScreenChangeEvent:
		if err := m.refreshScreens(); err != nil {
			slog.Error("display change left no usable screens", "error", err)
			m.quit = true
		}
	}
}

// manage adopts a window: subscribe to its events, place it, map it
// and publish the updated client list.
func (m *Manager) manage(win xproto.Window) {
	if !m.ws.IsManaged(win) || m.isClient(win) {
		return
	}
	if err := m.ws.MarkNewWindow(win); err != nil {
		slog.Warn("failed to adopt window", "window", win, "error", err)
		return
	}
	m.place(win)
	if err := m.ws.MapWindow(win); err != nil {
		slog.Warn("failed to map window", "window", win, "error", err)
	}
	m.clients = append(m.clients, win)
	if err := m.ws.SetKnownClients(m.clients); err != nil {
		slog.Warn("failed to publish client list", "error", err)
	}
	if err := m.ws.SetClientWorkspace(win, 0); err != nil {
		slog.Debug("failed to tag client workspace", "window", win, "error", err)
	}
	m.focus(win)
}

// place gives a window its initial geometry: floating windows keep
// their size centred on the screen, everything else fills the usable
// region.
func (m *Manager) place(win xproto.Window) {
	screen := m.currentScreen()
	region := screen.Usable
	stack := false
	if m.ws.ShouldFloat(win, m.cfg.FloatingClasses) {
		if current, err := m.ws.WindowGeometry(win); err == nil && current.Width > 0 {
			region = x11.Region{
				X:      screen.Usable.X + (screen.Usable.Width-current.Width)/2,
				Y:      screen.Usable.Y + (screen.Usable.Height-current.Height)/2,
				Width:  current.Width,
				Height: current.Height,
			}
		}
		stack = true
	}
	if err := m.ws.PositionWindow(win, region, m.cfg.BorderWidth, stack); err != nil {
		slog.Warn("failed to place window", "window", win, "error", err)
	}
}

func (m *Manager) focus(win xproto.Window) {
	if m.focused != 0 && m.focused != win {
		if err := m.ws.SetBorderColor(m.focused, m.unfocusedColor); err != nil {
			slog.Debug("failed to recolor border", "window", m.focused, "error", err)
		}
	}
	if err := m.ws.SetBorderColor(win, m.focusedColor); err != nil {
		slog.Debug("failed to recolor border", "window", win, "error", err)
	}
	if err := m.ws.FocusWindow(win); err != nil {
		slog.Warn("failed to focus window", "window", win, "error", err)
		return
	}
	m.focused = win
	if m.cfg.WarpOnFocus {
		m.ws.WarpCursor(win, m.currentScreen())
	}
}

func (m *Manager) forget(win xproto.Window) {
	for i, c := range m.clients {
		if c == win {
			m.clients = append(m.clients[:i], m.clients[i+1:]...)
			break
		}
	}
	delete(m.fullscreen, win)
	if m.focused == win {
		m.focused = 0
	}
	if err := m.ws.SetKnownClients(m.clients); err != nil {
		slog.Warn("failed to publish client list", "error", err)
	}
}

func (m *Manager) runAction(action string) {
	switch {
	case action == "quit":
		m.quit = true
	case action == "close":
		if m.focused != 0 {
			if err := m.ws.SendClientEvent(m.focused, x11.AtomWMDeleteWindow); err != nil {
				slog.Warn("failed to close window", "window", m.focused, "error", err)
			}
		}
	case action == "fullscreen":
		m.toggleFullscreen()
	case action == "raise":
		if m.focused != 0 {
			if err := m.ws.RaiseWindow(m.focused); err != nil {
				slog.Warn("failed to raise window", "window", m.focused, "error", err)
			}
		}
	case strings.HasPrefix(action, "exec "):
		m.spawn(strings.TrimPrefix(action, "exec "))
	default:
		slog.Warn("unknown action", "action", action)
	}
}

func (m *Manager) toggleFullscreen() {
	win := m.focused
	if win == 0 {
		return
	}
	if saved, ok := m.fullscreen[win]; ok {
		delete(m.fullscreen, win)
		if err := m.ws.SetFullscreenState(win, false); err != nil {
			slog.Warn("failed to clear fullscreen state", "window", win, "error", err)
		}
		if err := m.ws.PositionWindow(win, saved, m.cfg.BorderWidth, true); err != nil {
			slog.Warn("failed to restore window", "window", win, "error", err)
		}
		return
	}
	saved, err := m.ws.WindowGeometry(win)
	if err != nil {
		slog.Warn("failed to read geometry before fullscreen", "window", win, "error", err)
		return
	}
	m.fullscreen[win] = saved
	if err := m.ws.SetFullscreenState(win, true); err != nil {
		slog.Warn("failed to set fullscreen state", "window", win, "error", err)
	}
	if err := m.ws.PositionWindow(win, m.currentScreen().Full, 0, true); err != nil {
		slog.Warn("failed to fullscreen window", "window", win, "error", err)
	}
}

func (m *Manager) spawn(command string) {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return
	}
	cmd := exec.Command(parts[0], parts[1:]...)
	if err := cmd.Start(); err != nil {
		slog.Warn("failed to spawn command", "command", command, "error", err)
		return
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			slog.Debug("spawned command exited", "command", command, "error", err)
		}
	}()
}

func (m *Manager) refreshScreens() error {
	screens, err := m.ws.CurrentScreens()
	if err != nil {
		return err
	}
	for i := range screens {
		screens[i].Reserve(m.cfg.BarHeightTop, m.cfg.BarHeightBottom)
	}
	m.screens = screens
	return nil
}

// currentScreen picks the screen under the pointer. When the pointer
// query fails or the pointer sits on no screen, the first screen wins.
func (m *Manager) currentScreen() x11.Screen {
	p, err := m.ws.CursorPosition()
	if err != nil {
		return m.screens[0]
	}
	for _, s := range m.screens {
		if s.Full.Contains(p) {
			return s
		}
	}
	return m.screens[0]
}

func (m *Manager) isClient(win xproto.Window) bool {
	for _, c := range m.clients {
		if c == win {
			return true
		}
	}
	return false
}
