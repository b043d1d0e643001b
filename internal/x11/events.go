package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// Events holds the callbacks fired from the X event loop for one
// watched window. Callbacks run on the X event goroutine; receivers
// post them onto their own loop.
type Events struct {
	// StateChanged fires when _NET_WM_STATE changes.
	StateChanged func(minimized, maximized bool)
	// VisibleChanged fires on map/unmap.
	VisibleChanged func(visible bool)
	// ActiveChanged fires when the root's active window changes.
	ActiveChanged func()
	// Resized fires on configure (move/resize) events.
	Resized func()
}

// Watch subscribes to the window's state, visibility and geometry
// events plus the root's active-window property.
func (c *Connection) Watch(windowID xproto.Window, events Events) error {
	if err := xwindow.New(c.XUtil, windowID).Listen(
		xproto.EventMaskPropertyChange, xproto.EventMaskStructureNotify); err != nil {
		return fmt.Errorf("failed to listen on window: %w", err)
	}
	if err := xwindow.New(c.XUtil, c.Root).Listen(
		xproto.EventMaskPropertyChange); err != nil {
		return fmt.Errorf("failed to listen on root: %w", err)
	}

	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		name, err := xprop.AtomName(xu, ev.Atom)
		if err != nil || name != "_NET_WM_STATE" {
			return
		}
		if events.StateChanged != nil {
			minimized, maximized := c.WindowStates(windowID)
			events.StateChanged(minimized, maximized)
		}
	}).Connect(c.XUtil, windowID)

	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		name, err := xprop.AtomName(xu, ev.Atom)
		if err != nil || name != "_NET_ACTIVE_WINDOW" {
			return
		}
		if events.ActiveChanged != nil {
			events.ActiveChanged()
		}
	}).Connect(c.XUtil, c.Root)

	xevent.ConfigureNotifyFun(func(xu *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		if events.Resized != nil {
			events.Resized()
		}
	}).Connect(c.XUtil, windowID)

	xevent.MapNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MapNotifyEvent) {
		if events.VisibleChanged != nil {
			events.VisibleChanged(true)
		}
	}).Connect(c.XUtil, windowID)

	xevent.UnmapNotifyFun(func(xu *xgbutil.XUtil, ev xevent.UnmapNotifyEvent) {
		if events.VisibleChanged != nil {
			events.VisibleChanged(false)
		}
	}).Connect(c.XUtil, windowID)

	return nil
}
