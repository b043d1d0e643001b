//go:build linux

package platform

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/rs/zerolog"

	"github.com/foldline/winkeep/internal/eventloop"
	"github.com/foldline/winkeep/internal/geometry"
	"github.com/foldline/winkeep/internal/x11"
)

// X11Window adapts one X11 window behind the Actions interface.
type X11Window struct {
	conn     *x11.Connection
	id       xproto.Window
	notifier *x11.Notifier
	appName  string
	log      zerolog.Logger

	trayVisible bool
	lastRect    geometry.Rect
}

var _ Actions = (*X11Window)(nil)

// NewX11Window wraps an existing window. The notifier may be nil when
// no session bus is available; tray features degrade gracefully.
func NewX11Window(conn *x11.Connection, id xproto.Window, notifier *x11.Notifier, appName string, log zerolog.Logger) *X11Window {
	return &X11Window{
		conn:        conn,
		id:          id,
		notifier:    notifier,
		appName:     appName,
		log:         log,
		trayVisible: notifier != nil,
	}
}

// StartEvents subscribes to the window's X events, posting each one
// onto the loop for the sink.
func (w *X11Window) StartEvents(loop *eventloop.Loop, sink EventSink) error {
	return w.conn.Watch(w.id, x11.Events{
		StateChanged: func(minimized, maximized bool) {
			state := StateNormal
			if minimized {
				state = StateMinimized
			} else if maximized {
				state = StateMaximized
			}
			loop.Post(func() { sink.HandleStateChanged(state) })
		},
		VisibleChanged: func(visible bool) {
			loop.Post(func() { sink.HandleVisibleChanged(visible) })
		},
		ActiveChanged: func() {
			loop.Post(sink.HandleActiveChanged)
		},
		Resized: func() {
			loop.Post(sink.HandleResize)
		},
	})
}

func (w *X11Window) ApplyGeometry(rect geometry.Rect) error {
	return w.conn.MoveResizeWindow(w.id, rect)
}

func (w *X11Window) SetMinimumSize(width, height int) {
	if err := w.conn.SetMinSize(w.id, width, height); err != nil {
		w.log.Warn().Err(err).Msg("failed to set minimum size")
	}
}

// RequestLayout is a no-op for an adopted window: the owning
// application lays out its own contents when geometry changes.
func (w *X11Window) RequestLayout() {}

func (w *X11Window) Maximize() {
	if err := w.conn.Maximize(w.id); err != nil {
		w.log.Warn().Err(err).Msg("failed to maximize window")
	}
}

func (w *X11Window) HideToTray() {
	w.conn.Hide(w.id)
}

func (w *X11Window) ShowWindow() {
	if err := w.conn.Show(w.id); err != nil {
		w.log.Warn().Err(err).Msg("failed to show window")
	}
}

func (w *X11Window) SetTitle(title string) {
	if err := w.conn.SetTitle(w.id, title); err != nil {
		w.log.Warn().Err(err).Msg("failed to set title")
	}
}

// RefreshIcon is a no-op: icon generation and theming belong to the
// host application.
func (w *X11Window) RefreshIcon() {}

func (w *X11Window) SetTrayIconVisible(visible bool) {
	w.trayVisible = visible && w.notifier != nil
}

func (w *X11Window) ShowTrayMessage(title, body string) {
	if w.notifier == nil {
		return
	}
	if err := w.notifier.Notify(w.appName, title, body); err != nil {
		w.log.Warn().Err(err).Msg("failed to send tray notification")
	}
}

func (w *X11Window) HasTray() bool {
	return w.notifier != nil && w.trayVisible
}

func (w *X11Window) WindowRect() geometry.Rect {
	rect, err := w.conn.WindowRect(w.id)
	if err != nil {
		w.log.Debug().Err(err).Msg("failed to query window rect")
		return w.lastRect
	}
	w.lastRect = rect
	return rect
}

func (w *X11Window) FrameMargins() geometry.Margins {
	return w.conn.FrameMargins(w.id)
}

func (w *X11Window) Scale() int {
	return w.conn.ScalePercent()
}

func (w *X11Window) IsFocused() bool {
	return w.conn.IsActive(w.id)
}
