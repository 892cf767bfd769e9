package x11

import (
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"
)

// WarpCursor moves the pointer to the middle of the target window, or
// to the centre of the screen's usable region when no target is given.
//
// With a target the destination point is expressed relative to the
// window itself, so the warp lands at (width/2, height/2) inside it.
// If the window's geometry cannot be read there is no safe point to
// aim for and the warp is skipped entirely; we never fall back to the
// screen centre on that path.
func (c *Conn) WarpCursor(target xproto.Window, screen Screen) {
	var (
		dst  xproto.Window
		x, y int
	)
	if target != 0 {
		region, err := c.WindowGeometry(target)
		if err != nil {
			slog.Warn("failed to read window geometry while warping cursor", "window", target, "error", err)
			return
		}
		dst = target
		x = region.Width / 2
		y = region.Height / 2
	} else {
		centre := screen.Usable.Centre()
		dst = c.api.Root()
		x = centre.X
		y = centre.Y
	}
	if err := c.api.WarpPointer(dst, x, y); err != nil {
		slog.Warn("failed to warp cursor", "window", dst, "error", err)
	}
}
