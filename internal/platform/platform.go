// Package platform defines the strategy surface between the window
// core and the windowing system. The core depends only on these
// interfaces; one implementation exists per target platform.
package platform

import "github.com/foldline/winkeep/internal/geometry"

// WindowState is the OS-reported window state.
type WindowState int

const (
	StateNormal WindowState = iota
	StateMinimized
	StateMaximized
	// StateActive is delivered by some platforms instead of a concrete
	// state; the tracker substitutes its last known state for it.
	StateActive
)

func (s WindowState) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateMinimized:
		return "minimized"
	case StateMaximized:
		return "maximized"
	case StateActive:
		return "active"
	}
	return "unknown"
}

// Actions is everything the tracker calls back into the platform for.
type Actions interface {
	// ApplyGeometry sets the window's absolute rectangle.
	ApplyGeometry(rect geometry.Rect) error
	// SetMinimumSize constrains the window's minimum inner size.
	SetMinimumSize(w, h int)
	// RequestLayout asks the host to re-lay-out window contents.
	RequestLayout()
	// Maximize forces the window into the maximized state.
	Maximize()
	// HideToTray hides the window without destroying it.
	HideToTray()
	// ShowWindow maps, raises and focuses the window.
	ShowWindow()
	// SetTitle sets the window title text.
	SetTitle(title string)
	// RefreshIcon asks the host to re-render the window icon/badge.
	RefreshIcon()
	// SetTrayIconVisible toggles the tray icon with the work mode.
	SetTrayIconVisible(visible bool)
	// ShowTrayMessage shows a transient tray notification.
	ShowTrayMessage(title, body string)
	// HasTray reports whether a tray icon is available at all.
	HasTray() bool

	// WindowRect returns the body rectangle in global coordinates.
	WindowRect() geometry.Rect
	// FrameMargins returns the native decoration thickness.
	FrameMargins() geometry.Margins
	// Scale returns the current display scale factor in percent.
	Scale() int
	// IsFocused reports whether the window has input focus.
	IsFocused() bool
}

// EventSink consumes the window events the platform delivers. The
// tracker implements it; platform backends call it from the loop.
type EventSink interface {
	HandleStateChanged(state WindowState)
	HandleVisibleChanged(visible bool)
	HandleActiveChanged()
	HandleResize()
}

// Observer receives the focus/blur and derived-activation
// notifications the tracker produces for dependent components.
type Observer interface {
	Focused()
	Blurred()
	ActiveChanged(active bool)
}

// NopObserver ignores all notifications.
type NopObserver struct{}

var _ Observer = NopObserver{}

func (NopObserver) Focused()           {}
func (NopObserver) Blurred()           {}
func (NopObserver) ActiveChanged(bool) {}
