package tracker

import (
	"github.com/foldline/winkeep/internal/geometry"
	"github.com/foldline/winkeep/internal/monitor"
	"github.com/foldline/winkeep/internal/placement"
	"github.com/foldline/winkeep/internal/platform"
	"github.com/foldline/winkeep/internal/position"
)

// RestoreGeometry reads the saved position, solves it against the
// current monitors and places the window. It runs once at startup;
// saves are refused until it completes.
func (t *Tracker) RestoreGeometry() {
	t.actions.SetMinimumSize(t.minWidth(), t.minHeight())

	saved, err := t.store.Read()
	if err != nil {
		t.log.Warn().Err(err).Msg("failed to read saved position, using defaults")
		saved = position.Position{}
	}
	t.lastSaved = saved
	t.log.Debug().
		Int("x", saved.X).Int("y", saved.Y).
		Int("w", saved.W).Int("h", saved.H).
		Int("scale", saved.Scale).Bool("maximized", saved.Maximized).
		Msg("initializing from saved position")

	monitors, err := t.monitors.Monitors()
	if err != nil {
		t.log.Warn().Err(err).Msg("failed to enumerate monitors")
	}
	primary, err := t.monitors.Primary()
	if err != nil {
		t.log.Warn().Err(err).Msg("failed to resolve primary monitor")
	}
	rect := placement.Solve(placement.Params{
		Saved:        saved,
		Monitors:     monitors,
		Primary:      primary,
		CurrentScale: t.actions.Scale(),
		MinSize:      geometry.Size{W: t.minWidth(), H: t.minHeight()},
		Frame:        t.frameMargins(),
		Defaults: placement.Defaults{
			NormalSize:  geometry.Size{W: t.sizes.DefaultWidth, H: t.sizes.DefaultHeight},
			WideSize:    geometry.Size{W: t.sizes.WideWidth, H: t.sizes.WideHeight},
			ThreeColumn: t.threeColumn,
		},
	})
	t.log.Debug().
		Int("x", rect.X).Int("y", rect.Y).
		Int("w", rect.Width).Int("h", rect.Height).
		Msg("setting initial geometry")
	if err := t.actions.ApplyGeometry(rect); err != nil {
		t.log.Warn().Err(err).Msg("failed to apply initial geometry")
	}
	if saved.Maximized {
		t.actions.Maximize()
	}
	t.positionInited = true
}

// PositionUpdated schedules a debounced save; rapid calls coalesce
// into a single write after the save delay.
func (t *Tracker) PositionUpdated() {
	t.saveTimer.CallOnce(t.saveDelay)
}

// SavePosition computes the current geometry snapshot and persists it
// when it differs from the last saved value. StateActive means "use
// the last known concrete state".
func (t *Tracker) SavePosition(state platform.WindowState) {
	if state == platform.StateActive {
		state = t.state
	}
	if state == platform.StateMinimized || !t.visible || !t.positionInited {
		return
	}

	saved := t.lastSaved
	real := saved
	if state == platform.StateMaximized {
		// A maximized window carries no useful rectangle; keep the
		// previous one for the eventual un-maximize.
		real.Maximized = true
		t.log.Debug().Msg("saving maximized position")
	} else {
		r := t.actions.WindowRect()
		real.X = r.X
		real.Y = r.Y
		real.W = r.Width - t.sidePanelWidth
		real.H = r.Height
		real.Scale = t.actions.Scale()
		real.Maximized = false
		real.MonitorCRC = 0
		t.log.Debug().
			Int("x", real.X).Int("y", real.Y).
			Int("w", real.W).Int("h", real.H).
			Msg("saving normal position")

		if monitors, err := t.monitors.Monitors(); err == nil {
			center := geometry.Point{X: real.X + real.W/2, Y: real.Y + real.H/2}
			if m, ok := monitor.Nearest(monitors, center); ok {
				real.X -= m.Bounds.X
				real.Y -= m.Bounds.Y
				real.MonitorCRC = monitor.NameChecksum(m.Name)
			}
		}
	}
	if real.W < t.sizes.MinWidth || real.H < t.sizes.MinHeight {
		// Transient snapshot mid-resize; skip.
		return
	}
	if real.Equal(saved) {
		return
	}
	t.lastSaved = real
	t.log.Debug().
		Int("x", real.X).Int("y", real.Y).
		Int("w", real.W).Int("h", real.H).
		Int("scale", real.Scale).Bool("maximized", real.Maximized).
		Uint32("moncrc", real.MonitorCRC).
		Msg("writing position")
	if err := t.store.Write(real); err != nil {
		// Fire-and-forget: the next qualifying change retries.
		t.log.Warn().Err(err).Msg("failed to write position")
	}
}

func (t *Tracker) frameMargins() geometry.Margins {
	if !t.nativeFrame {
		return geometry.Margins{}
	}
	return t.actions.FrameMargins()
}
