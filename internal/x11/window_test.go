package x11

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func TestPositionWindowBatchesIntoOneRequest(t *testing.T) {
	conn, rec := newTestConn()
	const win = xproto.Window(60)

	err := conn.PositionWindow(win, Region{X: 10, Y: 20, Width: 300, Height: 400}, 2, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rec.configures) != 1 {
		t.Fatalf("expected a single configure request, got %d", len(rec.configures))
	}
	call := rec.configures[0]
	wantMask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY |
		xproto.ConfigWindowWidth | xproto.ConfigWindowHeight |
		xproto.ConfigWindowBorderWidth | xproto.ConfigWindowStackMode)
	if call.mask != wantMask {
		t.Fatalf("configure mask = %#x, want %#x", call.mask, wantMask)
	}
	want := []uint32{10, 20, 300, 400, 2, xproto.StackModeAbove}
	if len(call.values) != len(want) {
		t.Fatalf("configure values = %v, want %v", call.values, want)
	}
	for i := range want {
		if call.values[i] != want[i] {
			t.Fatalf("configure values = %v, want %v", call.values, want)
		}
	}
}

func TestPositionWindowWithoutStacking(t *testing.T) {
	conn, rec := newTestConn()
	const win = xproto.Window(61)

	if err := conn.PositionWindow(win, Region{Width: 100, Height: 100}, 1, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call := rec.configures[0]
	if call.mask&xproto.ConfigWindowStackMode != 0 {
		t.Fatal("stack mode requested without stackAbove")
	}
	if len(call.values) != 5 {
		t.Fatalf("expected 5 configure values, got %d", len(call.values))
	}
}

func TestRaiseWindow(t *testing.T) {
	conn, rec := newTestConn()
	const win = xproto.Window(62)

	if err := conn.RaiseWindow(win); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call := rec.configures[0]
	if call.mask != xproto.ConfigWindowStackMode {
		t.Fatalf("configure mask = %#x, want stack mode only", call.mask)
	}
	if len(call.values) != 1 || call.values[0] != xproto.StackModeAbove {
		t.Fatalf("configure values = %v, want [StackModeAbove]", call.values)
	}
}

func TestMarkNewWindowSubscribesClientEvents(t *testing.T) {
	conn, rec := newTestConn()
	const win = xproto.Window(63)

	if err := conn.MarkNewWindow(win); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.attrChanges) != 1 {
		t.Fatalf("expected 1 attribute change, got %d", len(rec.attrChanges))
	}
	change := rec.attrChanges[0]
	if change.mask != xproto.CwEventMask {
		t.Fatalf("attribute mask = %#x, want CwEventMask", change.mask)
	}
	if change.values[0] != uint32(clientEventMask) {
		t.Fatalf("event mask = %#x, want %#x", change.values[0], uint32(clientEventMask))
	}
}

func TestFocusWindowPublishesActiveWindow(t *testing.T) {
	conn, rec := newTestConn()
	const win = xproto.Window(64)

	if err := conn.FocusWindow(win); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.focused != win {
		t.Fatalf("focused window = %d, want %d", rec.focused, win)
	}
	if got := rec.propData(rec.root, "_NET_ACTIVE_WINDOW"); len(got) != 4 {
		t.Fatalf("active window property = %v, want one window id", got)
	}
}

func TestWindowGeometryErrorsForMissingWindow(t *testing.T) {
	conn, _ := newTestConn()

	if _, err := conn.WindowGeometry(9999); err == nil {
		t.Fatal("expected an error for a nonexistent window")
	}
}
