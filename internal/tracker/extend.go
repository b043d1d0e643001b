package tracker

import (
	"github.com/foldline/winkeep/internal/geometry"
	"github.com/foldline/winkeep/internal/platform"
)

// desktopRect is the available area of the monitor the window sits on,
// refreshed at most once per cache TTL.
func (t *Tracker) desktopRect() geometry.Rect {
	return t.desktop.AvailableRect(t.actions.WindowRect())
}

// MaximalExtendBy returns how far the window may grow horizontally
// without leaving the available desktop area, floored at zero.
func (t *Tracker) MaximalExtendBy() int {
	desktop := t.desktopRect()
	extend := desktop.Width - t.actions.WindowRect().Width
	if extend < 0 {
		return 0
	}
	return extend
}

// CanExtendNoMove reports whether growing right by extendBy keeps the
// window's right edge within the desktop's right edge.
func (t *Tracker) CanExtendNoMove(extendBy int) bool {
	desktop := t.desktopRect()
	inner := t.actions.WindowRect()
	return inner.X+inner.Width+extendBy <= desktop.X+desktop.Width
}

// TryToExtendWidthBy grows the window by up to addToWidth, keeping it
// as far right as possible without exceeding the desktop bound, and
// returns the amount actually applied.
func (t *Tracker) TryToExtendWidthBy(addToWidth int) int {
	desktop := t.desktopRect()
	inner := t.actions.WindowRect()
	if room := desktop.Width - inner.Width; addToWidth > room {
		if room < 0 {
			room = 0
		}
		addToWidth = room
	}
	newWidth := inner.Width + addToWidth
	newLeft := inner.X
	if limit := desktop.X + desktop.Width - newWidth; newLeft > limit {
		newLeft = limit
	}
	if inner.X != newLeft || inner.Width != newWidth {
		rect := geometry.Rect{X: newLeft, Y: inner.Y, Width: newWidth, Height: inner.Height}
		if err := t.actions.ApplyGeometry(rect); err != nil {
			t.log.Warn().Err(err).Msg("failed to apply extended geometry")
		}
	} else {
		t.actions.RequestLayout()
	}
	return addToWidth
}

// SetSidePanelWidth attaches (or with zero, detaches) an auxiliary
// side panel, growing or shrinking the window to accommodate it
// without displacing unrelated content when possible.
func (t *Tracker) SetSidePanelWidth(width int) {
	if width < 0 {
		width = 0
	}
	wasWidth := t.actions.WindowRect().Width
	wasPanel := t.sidePanelWidth
	t.sidePanelWidth = width

	wasMin := t.minWidth() - width + wasPanel
	nowMin := t.minWidth()
	// Shrink the minimum first so the resize below is not blocked;
	// grow it after.
	if nowMin < wasMin {
		t.actions.SetMinimumSize(nowMin, t.minHeight())
	}
	if t.state != platform.StateMaximized {
		t.TryToExtendWidthBy(wasWidth + width - wasPanel - t.actions.WindowRect().Width)
	} else {
		t.actions.RequestLayout()
	}
	if nowMin >= wasMin {
		t.actions.SetMinimumSize(nowMin, t.minHeight())
	}
	t.PositionUpdated()
}
