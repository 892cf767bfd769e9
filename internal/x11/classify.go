package x11

import (
	"strings"

	"github.com/BurntSushi/xgb/xproto"
)

// hasTypeIn reports whether the window's primary _NET_WM_WINDOW_TYPE
// value is in the candidate set. A window with no readable type is
// never a member of any set: classification is advisory, so read
// failures degrade to false instead of surfacing an error.
func (c *Conn) hasTypeIn(win xproto.Window, candidates []xproto.Atom) bool {
	t, err := c.AtomProp(win, AtomNetWmWindowType)
	if err != nil {
		return false
	}
	for _, a := range candidates {
		if a == t {
			return true
		}
	}
	return false
}

// ShouldFloat reports whether a window should be floated rather than
// tiled, either because its WM_CLASS matches one of the configured
// floating classes or because its window type is one that conventionally
// floats (dialogs, menus, splash screens and the like). The class
// check wins without consulting the type property.
func (c *Conn) ShouldFloat(win xproto.Window, floatingClasses []string) bool {
	if class, err := c.StrProp(win, AtomWMClass); err == nil {
		for _, part := range strings.Split(class, "\x00") {
			for _, fc := range floatingClasses {
				if part == fc {
					return true
				}
			}
		}
	}
	return c.hasTypeIn(win, c.floatTypes)
}

// IsManaged reports whether the window manager should take ownership
// of a window. The policy is permissive: everything is managed unless
// its type marks it as something like a dock or tooltip.
func (c *Conn) IsManaged(win xproto.Window) bool {
	return !c.hasTypeIn(win, c.unmanagedTypes)
}
