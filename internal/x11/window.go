package x11

import (
	"fmt"
	"math"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/foldline/winkeep/internal/geometry"
)

// MoveResizeWindow moves and resizes a window to the given geometry,
// clearing any maximized state first.
func (c *Connection) MoveResizeWindow(windowID xproto.Window, rect geometry.Rect) error {
	// A maximized window ignores configure requests on most WMs.
	c.Unmaximize(windowID)

	err := ewmh.MoveresizeWindow(c.XUtil, windowID, rect.X, rect.Y, rect.Width, rect.Height)
	if err != nil {
		// Fallback to direct window manipulation.
		xwindow.New(c.XUtil, windowID).MoveResize(rect.X, rect.Y, rect.Width, rect.Height)
	}
	return nil
}

// SetMinSize constrains the window's minimum size via WM_NORMAL_HINTS.
func (c *Connection) SetMinSize(windowID xproto.Window, w, h int) error {
	hints, err := icccm.WmNormalHintsGet(c.XUtil, windowID)
	if err != nil {
		hints = &icccm.NormalHints{}
	}
	hints.Flags |= icccm.SizeHintPMinSize
	hints.MinWidth = uint(w)
	hints.MinHeight = uint(h)
	if err := icccm.WmNormalHintsSet(c.XUtil, windowID, hints); err != nil {
		return fmt.Errorf("failed to set size hints: %w", err)
	}
	return nil
}

// Maximize requests the maximized state for both axes.
func (c *Connection) Maximize(windowID xproto.Window) error {
	return ewmh.WmStateReqExtra(
		c.XUtil, windowID, ewmh.StateAdd,
		"_NET_WM_STATE_MAXIMIZED_VERT", "_NET_WM_STATE_MAXIMIZED_HORZ", 2)
}

// Unmaximize removes any maximized state from a window.
func (c *Connection) Unmaximize(windowID xproto.Window) {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return
	}
	for _, state := range states {
		if state == "_NET_WM_STATE_MAXIMIZED_HORZ" || state == "_NET_WM_STATE_MAXIMIZED_VERT" {
			ewmh.WmStateReq(c.XUtil, windowID, ewmh.StateRemove, state)
		}
	}
}

// Hide unmaps the window without destroying it.
func (c *Connection) Hide(windowID xproto.Window) {
	xproto.UnmapWindow(c.XUtil.Conn(), windowID)
}

// Show maps, raises and activates the window.
func (c *Connection) Show(windowID xproto.Window) error {
	xproto.MapWindow(c.XUtil.Conn(), windowID)
	return c.activate(windowID)
}

// activate sends a _NET_ACTIVE_WINDOW client message to the root
// window. Built manually because the xgbutil helper
// panics on this library version (uint vs int type assertion).
func (c *Connection) activate(windowID xproto.Window) error {
	atomReply, err := xproto.InternAtom(c.XUtil.Conn(), false,
		uint16(len("_NET_ACTIVE_WINDOW")), "_NET_ACTIVE_WINDOW").Reply()
	if err != nil {
		return fmt.Errorf("failed to intern _NET_ACTIVE_WINDOW: %w", err)
	}
	const sourceIndication = 2 // pager/direct action
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: windowID,
		Type:   atomReply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{sourceIndication, 0, 0, 0, 0}),
	}
	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

// SetTitle sets the window title.
func (c *Connection) SetTitle(windowID xproto.Window, title string) error {
	return ewmh.WmNameSet(c.XUtil, windowID, title)
}

// WindowRect returns the window's body rectangle in global
// coordinates.
func (c *Connection) WindowRect(windowID xproto.Window) (geometry.Rect, error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("failed to get window geometry: %w", err)
	}
	translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(), windowID, c.Root, 0, 0).Reply()
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("failed to translate coordinates: %w", err)
	}
	return geometry.Rect{
		X:      int(translate.DstX),
		Y:      int(translate.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, nil
}

// FrameMargins returns the window decoration thickness from
// _NET_FRAME_EXTENTS, or zero margins when unavailable.
func (c *Connection) FrameMargins(windowID xproto.Window) geometry.Margins {
	extents, err := ewmh.FrameExtentsGet(c.XUtil, windowID)
	if err != nil {
		return geometry.Margins{}
	}
	return geometry.Margins{
		Left:   int(extents.Left),
		Right:  int(extents.Right),
		Top:    int(extents.Top),
		Bottom: int(extents.Bottom),
	}
}

// WindowStates reports whether the window is currently minimized
// and/or maximized per _NET_WM_STATE.
func (c *Connection) WindowStates(windowID xproto.Window) (minimized, maximized bool) {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return false, false
	}
	maxH, maxV := false, false
	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_HIDDEN":
			minimized = true
		case "_NET_WM_STATE_MAXIMIZED_HORZ":
			maxH = true
		case "_NET_WM_STATE_MAXIMIZED_VERT":
			maxV = true
		}
	}
	return minimized, maxH && maxV
}

// IsActive reports whether the window currently has input focus.
func (c *Connection) IsActive(windowID xproto.Window) bool {
	active, err := ewmh.ActiveWindowGet(c.XUtil)
	return err == nil && active == windowID
}

// ActiveWindow returns the currently focused top-level window.
func (c *Connection) ActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

// ScalePercent derives the display scale factor from the default
// screen's physical size, rounded to the nearest 25%.
func (c *Connection) ScalePercent() int {
	screen := c.XUtil.Screen()
	if screen.WidthInMillimeters == 0 {
		return 100
	}
	dpi := float64(screen.WidthInPixels) * 25.4 / float64(screen.WidthInMillimeters)
	scale := int(math.Round(dpi/96.0*4)) * 25
	if scale < 100 {
		scale = 100
	}
	return scale
}
