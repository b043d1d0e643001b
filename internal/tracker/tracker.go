// Package tracker owns the runtime lifecycle of the primary window:
// restoring the saved geometry on startup, reacting to OS state
// transitions, and persisting geometry changes back to the store,
// debounced in time. Every method runs on the event loop.
package tracker

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/foldline/winkeep/internal/config"
	"github.com/foldline/winkeep/internal/eventloop"
	"github.com/foldline/winkeep/internal/monitor"
	"github.com/foldline/winkeep/internal/platform"
	"github.com/foldline/winkeep/internal/position"
)

// activationTick delays the activation-changed recompute by one
// minimal step so it lands after the platform finishes delivering the
// current event batch.
const activationTick = time.Millisecond

// Deps are the collaborators a Tracker is constructed with.
type Deps struct {
	Store    position.Store
	Monitors monitor.Provider
	Actions  platform.Actions
	Observer platform.Observer
	Loop     *eventloop.Loop
	Config   *config.Config
	// Quitting reports whether application shutdown is in progress;
	// tray and title updates short-circuit during quit.
	Quitting func() bool
	Log      zerolog.Logger

	// SaveDelay overrides the config save debounce; zero means use
	// the config value.
	SaveDelay time.Duration
	// DesktopTTL overrides the desktop-rect cache TTL; zero means
	// the default one second.
	DesktopTTL time.Duration
}

// Tracker is the window state tracker. It is not safe for concurrent
// use; all access is confined to the event loop goroutine.
type Tracker struct {
	store    position.Store
	monitors monitor.Provider
	actions  platform.Actions
	observer platform.Observer
	loop     *eventloop.Loop
	quitting func() bool
	log      zerolog.Logger

	appName     string
	sizes       config.WindowSizes
	threeColumn bool
	workMode    config.WorkMode
	nativeFrame bool
	saveDelay   time.Duration

	saveTimer   *eventloop.Timer
	activeTimer *eventloop.Timer
	desktop     *monitor.DesktopCache

	state               platform.WindowState
	visible             bool
	isActive            bool
	maximizedBeforeHide bool
	positionInited      bool
	lastSaved           position.Position
	sidePanelWidth      int
	unread              int
}

// New creates a tracker. Call RestoreGeometry before feeding events.
func New(deps Deps) *Tracker {
	observer := deps.Observer
	if observer == nil {
		observer = platform.NopObserver{}
	}
	quitting := deps.Quitting
	if quitting == nil {
		quitting = func() bool { return false }
	}
	saveDelay := deps.SaveDelay
	if saveDelay <= 0 {
		saveDelay = deps.Config.SaveDelay()
	}
	t := &Tracker{
		store:       deps.Store,
		monitors:    deps.Monitors,
		actions:     deps.Actions,
		observer:    observer,
		loop:        deps.Loop,
		quitting:    quitting,
		log:         deps.Log,
		appName:     deps.Config.AppName,
		sizes:       deps.Config.Window,
		threeColumn: deps.Config.ThreeColumnLayout,
		workMode:    deps.Config.WorkMode,
		nativeFrame: deps.Config.NativeWindowFrame,
		saveDelay:   saveDelay,
		desktop:     monitor.NewDesktopCache(deps.Monitors, deps.DesktopTTL),
		state:       platform.StateNormal,
	}
	t.saveTimer = eventloop.NewTimer(deps.Loop, func() {
		t.SavePosition(platform.StateActive)
	})
	t.activeTimer = eventloop.NewTimer(deps.Loop, t.updateIsActive)
	return t
}

// State returns the last known concrete window state.
func (t *Tracker) State() platform.WindowState { return t.state }

// IsActive returns the derived activation flag.
func (t *Tracker) IsActive() bool { return t.isActive }

// HandleStateChanged consumes an OS window-state transition.
func (t *Tracker) HandleStateChanged(state platform.WindowState) {
	if state != platform.StateActive {
		t.state = state
	}
	t.actions.RequestLayout()
	if state == platform.StateMinimized {
		t.observer.Blurred()
	} else {
		t.observer.Focused()
	}
	t.scheduleActiveCheck()
	if state == platform.StateMinimized && t.workMode == config.WorkModeTrayOnly {
		t.MinimizeToTray()
	}
	t.SavePosition(state)
}

// HandleVisibleChanged consumes a visibility transition. Hiding
// snapshots the maximized flag; showing restores it before the window
// becomes visible again.
func (t *Tracker) HandleVisibleChanged(visible bool) {
	if visible {
		if t.maximizedBeforeHide {
			t.log.Debug().Msg("window was maximized before hiding, setting maximized")
			t.actions.Maximize()
		}
	} else {
		t.maximizedBeforeHide = t.lastSaved.Maximized
	}
	t.visible = visible
	t.scheduleActiveCheck()
}

// HandleActiveChanged consumes a focus change notification. The
// recompute is deferred by one tick to land after the platform's own
// event delivery, avoiding double notifications during focus churn.
func (t *Tracker) HandleActiveChanged() {
	t.scheduleActiveCheck()
}

// HandleResize consumes a move/resize notification and schedules a
// debounced save.
func (t *Tracker) HandleResize() {
	t.actions.RequestLayout()
	t.PositionUpdated()
}

var _ platform.EventSink = (*Tracker)(nil)

func (t *Tracker) scheduleActiveCheck() {
	t.activeTimer.CallOnce(activationTick)
}

func (t *Tracker) updateIsActive() {
	active := t.computeIsActive()
	if t.isActive == active {
		return
	}
	t.isActive = active
	t.observer.ActiveChanged(active)
}

func (t *Tracker) computeIsActive() bool {
	return t.actions.IsFocused() && t.visible && t.state != platform.StateMinimized
}

// HideNoQuit hides the window to the tray instead of closing when the
// work mode keeps a tray icon around. It reports whether the close
// was swallowed.
func (t *Tracker) HideNoQuit() bool {
	if t.quitting() {
		return false
	}
	if t.workMode == config.WorkModeTrayOnly || t.workMode == config.WorkModeWindowAndTray {
		return t.MinimizeToTray()
	}
	return false
}

// MinimizeToTray hides the window without destroying it and shows a
// transient tray notification.
func (t *Tracker) MinimizeToTray() bool {
	if t.quitting() || !t.actions.HasTray() {
		return false
	}
	t.actions.HideToTray()
	t.observer.Blurred()
	t.actions.ShowTrayMessage(t.appName, "The window is hidden to the tray icon.")
	return true
}

// Activate clears the minimized bit, shows and focuses the window.
func (t *Tracker) Activate() {
	if t.state == platform.StateMinimized {
		t.state = platform.StateNormal
	}
	t.actions.ShowWindow()
	t.visible = true
	t.observer.Focused()
	t.scheduleActiveCheck()
}

// ShowFromTray restores the window from the tray icon.
func (t *Tracker) ShowFromTray() {
	t.loop.Post(t.actions.RefreshIcon)
	t.Activate()
	t.UpdateUnreadCounter(t.unread)
}

// UpdateUnreadCounter reflects the unread badge count in the title.
func (t *Tracker) UpdateUnreadCounter(count int) {
	if t.quitting() {
		return
	}
	t.unread = count
	title := t.appName
	if count > 0 {
		title = fmt.Sprintf("%s (%d)", t.appName, count)
	}
	t.actions.SetTitle(title)
	t.actions.RefreshIcon()
}

// WorkModeUpdated applies a runtime work-mode change. Switching to
// window-only while hidden brings the window back.
func (t *Tracker) WorkModeUpdated(mode config.WorkMode) {
	if !mode.Valid() {
		t.log.Warn().Str("mode", string(mode)).Msg("ignoring unknown work mode")
		return
	}
	t.workMode = mode
	t.actions.SetTrayIconVisible(mode != config.WorkModeWindowOnly)
	if mode == config.WorkModeWindowOnly && !t.visible {
		t.Activate()
	}
}

// NativeFrameUpdated applies a runtime native-frame toggle.
func (t *Tracker) NativeFrameUpdated(native bool) {
	if t.nativeFrame == native {
		return
	}
	t.nativeFrame = native
	t.recountGeometryConstraints()
}

// ConfigUpdated applies a reloaded configuration revision.
func (t *Tracker) ConfigUpdated(cfg *config.Config) {
	if cfg.WorkMode != t.workMode {
		t.WorkModeUpdated(cfg.WorkMode)
	}
	t.NativeFrameUpdated(cfg.NativeWindowFrame)
}

func (t *Tracker) recountGeometryConstraints() {
	t.actions.SetMinimumSize(t.minWidth(), t.minHeight())
	t.actions.RequestLayout()
}

func (t *Tracker) minWidth() int {
	return t.sizes.MinWidth + t.sidePanelWidth
}

func (t *Tracker) minHeight() int {
	return t.sizes.MinHeight
}
