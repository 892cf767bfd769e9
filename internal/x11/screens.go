package x11

import "fmt"

// CurrentScreens enumerates the attached displays. Failure here is
// fatal by policy: without screen geometry the window manager cannot
// place anything, so the error is returned for the caller to abort on
// rather than degrading to a guessed layout.
func (c *Conn) CurrentScreens() ([]Screen, error) {
	screens, err := c.api.Screens()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate screens: %w", err)
	}
	if len(screens) == 0 {
		return nil, fmt.Errorf("server reported no screens")
	}
	return screens, nil
}
