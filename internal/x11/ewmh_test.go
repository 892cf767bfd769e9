package x11

import (
	"bytes"
	"testing"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

func u32Bytes(values ...uint32) []byte {
	data := make([]byte, 4*len(values))
	for i, v := range values {
		xgb.Put32(data[i*4:], v)
	}
	return data
}

func TestSetDesktopsRoundTrip(t *testing.T) {
	conn, rec := newTestConn()

	if err := conn.SetDesktops([]string{"1", "2", "3"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	count := rec.propData(rec.root, "_NET_NUMBER_OF_DESKTOPS")
	if !bytes.Equal(count, u32Bytes(3)) {
		t.Fatalf("desktop count = %v, want cardinal 3", count)
	}
	names := rec.propData(rec.root, "_NET_DESKTOP_NAMES")
	if string(names) != "1\x002\x003" {
		t.Fatalf("desktop names = %q, want %q", names, "1\x002\x003")
	}
}

func TestFullscreenStateReplacesNeverMerges(t *testing.T) {
	conn, rec := newTestConn()
	const win = xproto.Window(21)

	// Another client stuffed an unrelated state atom in first.
	sticky, _ := conn.Atom("_NET_WM_STATE_STICKY")
	rec.setProp(win, "_NET_WM_STATE", u32Bytes(uint32(sticky)))

	if err := conn.SetFullscreenState(win, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state := rec.propData(win, "_NET_WM_STATE")
	want := u32Bytes(uint32(conn.knownAtom(AtomNetWmStateFullscreen)))
	if !bytes.Equal(state, want) {
		t.Fatalf("state after fullscreen = %v, want only the fullscreen atom", state)
	}

	if err := conn.SetFullscreenState(win, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state = rec.propData(win, "_NET_WM_STATE")
	if len(state) != 0 {
		t.Fatalf("state after clearing fullscreen = %v, want empty", state)
	}
}

func TestSetKnownClientsMirrorsBothLists(t *testing.T) {
	conn, rec := newTestConn()
	clients := []xproto.Window{10, 11, 12}

	if err := conn.SetKnownClients(clients); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := u32Bytes(10, 11, 12)
	if got := rec.propData(rec.root, "_NET_CLIENT_LIST"); !bytes.Equal(got, want) {
		t.Fatalf("client list = %v, want %v", got, want)
	}
	if got := rec.propData(rec.root, "_NET_CLIENT_LIST_STACKING"); !bytes.Equal(got, want) {
		t.Fatalf("stacking list = %v, want %v", got, want)
	}
}

func TestAnnounceIdentity(t *testing.T) {
	conn, rec := newTestConn()

	// Residue from a previous window manager.
	rec.setProp(rec.root, "_NET_CLIENT_LIST", u32Bytes(99))

	if err := conn.AnnounceIdentity([]string{"main", "web"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checkBytes := u32Bytes(uint32(conn.checkWin))
	for _, win := range []xproto.Window{conn.checkWin, rec.root} {
		if got := rec.propData(win, "_NET_SUPPORTING_WM_CHECK"); !bytes.Equal(got, checkBytes) {
			t.Fatalf("supporting check on %d = %v, want %v", win, got, checkBytes)
		}
		if got := rec.propData(win, "WM_NAME"); string(got) != wmName {
			t.Fatalf("WM_NAME on %d = %q, want %q", win, got, wmName)
		}
	}

	supported := rec.propData(rec.root, "_NET_SUPPORTED")
	if len(supported) != 4*len(ewmhSupportedAtoms) {
		t.Fatalf("supported list has %d bytes, want %d", len(supported), 4*len(ewmhSupportedAtoms))
	}
	if !bytes.Equal(rec.propData(rec.root, "_NET_NUMBER_OF_DESKTOPS"), u32Bytes(2)) {
		t.Fatal("desktop count not initialized")
	}
	if rec.hasProp(rec.root, "_NET_CLIENT_LIST") {
		t.Fatal("stale client list was not deleted")
	}
}

func TestWorkspacePublishing(t *testing.T) {
	conn, rec := newTestConn()
	const win = xproto.Window(33)

	if err := conn.SetCurrentWorkspace(4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.propData(rec.root, "_NET_CURRENT_DESKTOP"); !bytes.Equal(got, u32Bytes(4)) {
		t.Fatalf("current desktop = %v, want cardinal 4", got)
	}

	if err := conn.SetClientWorkspace(win, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.propData(win, "_NET_WM_DESKTOP"); !bytes.Equal(got, u32Bytes(2)) {
		t.Fatalf("client desktop = %v, want cardinal 2", got)
	}
}

func TestNamePropertyTypes(t *testing.T) {
	conn, rec := newTestConn()

	if err := conn.AnnounceIdentity([]string{"1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.propType(rec.root, "WM_NAME"); got != xproto.AtomString {
		t.Fatalf("WM_NAME type = %d, want STRING (%d)", got, xproto.AtomString)
	}
	utf8 := conn.knownAtom(AtomUTF8String)
	if got := rec.propType(rec.root, "_NET_WM_NAME"); got != utf8 {
		t.Fatalf("_NET_WM_NAME type = %d, want UTF8_STRING (%d)", got, utf8)
	}
	if got := rec.propType(rec.root, "_NET_DESKTOP_NAMES"); got != utf8 {
		t.Fatalf("_NET_DESKTOP_NAMES type = %d, want UTF8_STRING (%d)", got, utf8)
	}

	if err := conn.SetRootName("status"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.propType(rec.root, "WM_NAME"); got != xproto.AtomString {
		t.Fatalf("root WM_NAME type = %d, want STRING (%d)", got, xproto.AtomString)
	}
}

func TestSetRootName(t *testing.T) {
	conn, rec := newTestConn()

	if err := conn.SetRootName("ws 1 | 14:02"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.propData(rec.root, "WM_NAME"); string(got) != "ws 1 | 14:02" {
		t.Fatalf("root name = %q", got)
	}
}
