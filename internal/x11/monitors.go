package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/foldline/winkeep/internal/geometry"
	"github.com/foldline/winkeep/internal/monitor"
)

// Monitors retrieves all active monitors using XRandR, each with its
// full bounds and its available geometry (bounds minus dock struts or,
// failing that, the EWMH work area).
func (c *Connection) Monitors() ([]monitor.Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}
	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []monitor.Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Skip disabled CRTCs.
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}
		name := fmt.Sprintf("Monitor%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			name = string(outputInfo.Name)
		}
		bounds := geometry.Rect{
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		}
		monitors = append(monitors, monitor.Monitor{
			Name:      name,
			Bounds:    bounds,
			Available: c.availableGeometry(bounds),
		})
	}
	return monitors, nil
}

// Primary returns the RandR primary monitor, falling back to the first
// enumerated one.
func (c *Connection) Primary() (monitor.Monitor, error) {
	monitors, err := c.Monitors()
	if err != nil {
		return monitor.Monitor{}, err
	}
	if len(monitors) == 0 {
		return monitor.Monitor{}, fmt.Errorf("no monitors found")
	}
	primary, err := randr.GetOutputPrimary(c.XUtil.Conn(), c.Root).Reply()
	if err == nil && primary.Output != 0 {
		resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
		if err == nil {
			if info, err := randr.GetOutputInfo(c.XUtil.Conn(), primary.Output, resources.ConfigTimestamp).Reply(); err == nil {
				for _, m := range monitors {
					if m.Name == string(info.Name) {
						return m, nil
					}
				}
			}
		}
	}
	return monitors[0], nil
}

// availableGeometry computes the usable area of a monitor: its bounds
// with dock struts removed, or the intersection with the EWMH work
// area when no dock publishes struts.
func (c *Connection) availableGeometry(bounds geometry.Rect) geometry.Rect {
	if margins, ok := c.dockStruts(bounds); ok {
		avail := bounds.Shrunk(margins)
		if avail.Width < 1 {
			avail.Width = 1
		}
		if avail.Height < 1 {
			avail.Height = 1
		}
		return avail
	}
	if workArea, ok := c.currentWorkArea(); ok {
		if isect := bounds.Intersect(workArea); !isect.Empty() {
			return isect
		}
	}
	return bounds
}

func (c *Connection) currentWorkArea() (geometry.Rect, bool) {
	workAreas, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workAreas) == 0 {
		return geometry.Rect{}, false
	}
	index := 0
	if desktop, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil {
		if int(desktop) >= 0 && int(desktop) < len(workAreas) {
			index = int(desktop)
		}
	}
	wa := workAreas[index]
	return geometry.Rect{
		X:      int(wa.X),
		Y:      int(wa.Y),
		Width:  int(wa.Width),
		Height: int(wa.Height),
	}, true
}

// dockStruts accumulates the strut margins dock windows reserve on the
// edges of the given monitor bounds.
func (c *Connection) dockStruts(bounds geometry.Rect) (geometry.Margins, bool) {
	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return geometry.Margins{}, false
	}
	rootWidth := int(rootGeom.Width)
	rootHeight := int(rootGeom.Height)

	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return geometry.Margins{}, false
	}

	var margins geometry.Margins
	for _, windowID := range clients {
		types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
		if err != nil {
			continue
		}
		isDock := false
		for _, t := range types {
			if t == "_NET_WM_WINDOW_TYPE_DOCK" {
				isDock = true
				break
			}
		}
		if !isDock {
			continue
		}
		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID); err == nil {
			accumulateStruts(bounds, rootWidth, rootHeight, sp, &margins)
			continue
		}
		// Some docks only set _NET_WM_STRUT (no partial ranges).
		if s, err := ewmh.WmStrutGet(c.XUtil, windowID); err == nil {
			sp := &ewmh.WmStrutPartial{
				Left:         s.Left,
				Right:        s.Right,
				Top:          s.Top,
				Bottom:       s.Bottom,
				LeftStartY:   0,
				LeftEndY:     uint(rootHeight - 1),
				RightStartY:  0,
				RightEndY:    uint(rootHeight - 1),
				TopStartX:    0,
				TopEndX:      uint(rootWidth - 1),
				BottomStartX: 0,
				BottomEndX:   uint(rootWidth - 1),
			}
			accumulateStruts(bounds, rootWidth, rootHeight, sp, &margins)
		}
	}
	empty := geometry.Margins{}
	return margins, margins != empty
}

func accumulateStruts(bounds geometry.Rect, rootWidth, rootHeight int, sp *ewmh.WmStrutPartial, acc *geometry.Margins) {
	if sp.Top > 0 {
		strut := geometry.Rect{
			X:      int(sp.TopStartX),
			Y:      0,
			Width:  int(sp.TopEndX) + 1 - int(sp.TopStartX),
			Height: int(sp.Top),
		}
		if isect := bounds.Intersect(strut); !isect.Empty() && isect.Height > acc.Top {
			acc.Top = isect.Height
		}
	}
	if sp.Bottom > 0 {
		strut := geometry.Rect{
			X:      int(sp.BottomStartX),
			Y:      rootHeight - int(sp.Bottom),
			Width:  int(sp.BottomEndX) + 1 - int(sp.BottomStartX),
			Height: int(sp.Bottom),
		}
		if isect := bounds.Intersect(strut); !isect.Empty() && isect.Height > acc.Bottom {
			acc.Bottom = isect.Height
		}
	}
	if sp.Left > 0 {
		strut := geometry.Rect{
			X:      0,
			Y:      int(sp.LeftStartY),
			Width:  int(sp.Left),
			Height: int(sp.LeftEndY) + 1 - int(sp.LeftStartY),
		}
		if isect := bounds.Intersect(strut); !isect.Empty() && isect.Width > acc.Left {
			acc.Left = isect.Width
		}
	}
	if sp.Right > 0 {
		strut := geometry.Rect{
			X:      rootWidth - int(sp.Right),
			Y:      int(sp.RightStartY),
			Width:  int(sp.Right),
			Height: int(sp.RightEndY) + 1 - int(sp.RightStartY),
		}
		if isect := bounds.Intersect(strut); !isect.Empty() && isect.Width > acc.Right {
			acc.Right = isect.Width
		}
	}
}
