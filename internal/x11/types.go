package x11

// Point is a coordinate pair. Whether it is root-relative or
// window-relative depends on the call it is passed to.
type Point struct {
	X int
	Y int
}

// Region is an axis-aligned rectangle in root window coordinates.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Centre returns the midpoint of the region in the same coordinate
// space as the region itself.
func (r Region) Centre() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether the point falls inside the region.
func (r Region) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Screen is a physical display as reported by the server.
type Screen struct {
	Index int
	// Full is the complete pixel area of the screen.
	Full Region
	// Usable is Full minus any space reserved for bars.
	Usable Region
}

// Reserve carves top and bottom pixel rows out of the usable region,
// leaving Full untouched.
func (s *Screen) Reserve(top, bottom int) {
	s.Usable = Region{
		X:      s.Full.X,
		Y:      s.Full.Y + top,
		Width:  s.Full.Width,
		Height: s.Full.Height - top - bottom,
	}
}

// KeyBinding is a fully resolved key grab: a modifier mask plus a
// concrete keycode.
type KeyBinding struct {
	Mods uint16
	Code uint8
}

// ButtonBinding is a fully resolved pointer grab.
type ButtonBinding struct {
	Mods   uint16
	Button uint8
}
