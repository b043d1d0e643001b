package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foldline/winkeep/internal/geometry"
	"github.com/foldline/winkeep/internal/monitor"
	"github.com/foldline/winkeep/internal/position"
)

func monitorA() monitor.Monitor {
	return monitor.Monitor{
		Name:      "DP-1",
		Bounds:    geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080},
		Available: geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080},
	}
}

func baseParams(saved position.Position, monitors ...monitor.Monitor) Params {
	primary := monitorA()
	if len(monitors) > 0 {
		primary = monitors[0]
	}
	return Params{
		Saved:        saved,
		Monitors:     monitors,
		Primary:      primary,
		CurrentScale: 100,
		MinSize:      geometry.Size{W: 380, H: 480},
		Defaults: Defaults{
			NormalSize: geometry.Size{W: 800, H: 600},
			WideSize:   geometry.Size{W: 1024, H: 768},
		},
	}
}

func savedOn(m monitor.Monitor, x, y, w, h int) position.Position {
	return position.Position{
		X: x, Y: y, W: w, H: h,
		Scale:      100,
		MonitorCRC: monitor.NameChecksum(m.Name),
	}
}

func TestSolve_UnchangedWhenOnScreen(t *testing.T) {
	m := monitorA()
	got := Solve(baseParams(savedOn(m, 50, 50, 800, 600), m))
	assert.Equal(t, geometry.Rect{X: 50, Y: 50, Width: 800, Height: 600}, got)
}

func TestSolve_UnsetFallsBackToCenteredDefault(t *testing.T) {
	m := monitorA()
	want := geometry.Rect{X: 560, Y: 240, Width: 800, Height: 600}

	for _, saved := range []position.Position{
		{},
		{W: 800},
		{H: 600},
		{X: 50, Y: 50, Scale: 125, MonitorCRC: monitor.NameChecksum(m.Name)},
	} {
		got := Solve(baseParams(saved, m))
		assert.Equal(t, want, got, "saved=%+v", saved)
	}
}

func TestSolve_UnknownMonitorFallsBackToCenteredDefault(t *testing.T) {
	m := monitorA()
	saved := savedOn(m, 50, 50, 800, 600)
	saved.MonitorCRC = monitor.NameChecksum("HDMI-ghost")

	got := Solve(baseParams(saved, m))
	assert.Equal(t, geometry.Rect{X: 560, Y: 240, Width: 800, Height: 600}, got)
}

func TestSolve_NoMonitorAffinityFallsBackToCenteredDefault(t *testing.T) {
	m := monitorA()
	saved := savedOn(m, 50, 50, 800, 600)
	saved.MonitorCRC = 0

	got := Solve(baseParams(saved, m))
	assert.Equal(t, geometry.Rect{X: 560, Y: 240, Width: 800, Height: 600}, got)
}

func TestSolve_Pure(t *testing.T) {
	m := monitorA()
	params := baseParams(savedOn(m, -100, 900, 900, 700), m)

	first := Solve(params)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Solve(params))
	}
}

func TestSolve_NarrowMonitorClampsAndShrinks(t *testing.T) {
	m := monitorA()
	m.Available = geometry.Rect{X: 0, Y: 0, Width: 700, Height: 1080}

	got := Solve(baseParams(savedOn(m, 50, 50, 800, 600), m))
	assert.Equal(t, geometry.Rect{X: 0, Y: 50, Width: 700, Height: 600}, got)
}

func TestSolve_OverflowShiftsLeftWithoutShrinking(t *testing.T) {
	m := monitorA()
	// Right edge exceeds by 80 with plenty of room to shift.
	got := Solve(baseParams(savedOn(m, 1200, 50, 800, 600), m))
	assert.Equal(t, geometry.Rect{X: 1120, Y: 50, Width: 800, Height: 600}, got)
}

func TestSolve_BottomOverflowShiftsUp(t *testing.T) {
	m := monitorA()
	got := Solve(baseParams(savedOn(m, 50, 600, 800, 600), m))
	assert.Equal(t, geometry.Rect{X: 50, Y: 480, Width: 800, Height: 600}, got)
}

func TestSolve_TooWideClampsThenShrinks(t *testing.T) {
	m := monitorA()
	m.Available = geometry.Rect{X: 0, Y: 0, Width: 400, Height: 1080}

	got := Solve(baseParams(savedOn(m, 300, 50, 800, 600), m))
	// Width clamps to the 400px space, position clamps to the left
	// edge; nothing shrinks below the 380px minimum.
	assert.Equal(t, geometry.Rect{X: 0, Y: 50, Width: 400, Height: 600}, got)
	assert.GreaterOrEqual(t, got.Width, 380)
}

func TestSolve_UndersizedSpaceFallsBackToDefault(t *testing.T) {
	m := monitorA()
	m.Available = geometry.Rect{X: 0, Y: 0, Width: 300, Height: 1080}
	params := baseParams(savedOn(m, 0, 0, 800, 600), m)
	params.Primary = monitorA()

	got := Solve(params)
	assert.Equal(t, geometry.Rect{X: 560, Y: 240, Width: 800, Height: 600}, got)
}

func TestSolve_RescalesByScaleRatio(t *testing.T) {
	m := monitorA()
	saved := savedOn(m, 100, 100, 400, 480)
	params := baseParams(saved, m)
	params.CurrentScale = 200
	params.MinSize = geometry.Size{W: 100, H: 100}

	// Doubled: {200, 200, 800, 960}; the bottom then overflows the
	// 1080px monitor by 80, shifting the window up.
	got := Solve(params)
	assert.Equal(t, geometry.Rect{X: 200, Y: 120, Width: 800, Height: 960}, got)
}

func TestSolve_ScaleInvariance(t *testing.T) {
	m := monitorA()
	saved := savedOn(m, 60, 40, 800, 600)

	unscaled := baseParams(saved, m)
	unscaled.CurrentScale = 100

	// The same physical rect captured at 2x scale.
	rescaled := saved
	rescaled.X *= 2
	rescaled.Y *= 2
	rescaled.W *= 2
	rescaled.H *= 2
	rescaled.Scale = 200
	doubled := baseParams(rescaled, m)
	doubled.CurrentScale = 100

	assert.Equal(t, Solve(unscaled), Solve(doubled))
}

func TestSolve_TranslatesToMonitorOrigin(t *testing.T) {
	secondary := monitor.Monitor{
		Name:      "HDMI-1",
		Bounds:    geometry.Rect{X: 1920, Y: 0, Width: 1280, Height: 1024},
		Available: geometry.Rect{X: 1920, Y: 0, Width: 1280, Height: 1000},
	}
	params := baseParams(savedOn(secondary, 100, 100, 800, 600), monitorA(), secondary)

	got := Solve(params)
	assert.Equal(t, geometry.Rect{X: 2020, Y: 100, Width: 800, Height: 600}, got)
}

func TestSolve_FrameMarginsReduceSpace(t *testing.T) {
	m := monitorA()
	params := baseParams(savedOn(m, 0, 0, 800, 600), m)
	params.Frame = geometry.Margins{Left: 10, Top: 30, Right: 10, Bottom: 10}

	got := Solve(params)
	// The saved top-left clamps to the frame-inset space origin.
	assert.Equal(t, geometry.Rect{X: 10, Y: 30, Width: 800, Height: 600}, got)
}

func TestSolve_WideDefaultWhenThreeColumn(t *testing.T) {
	m := monitorA()
	params := baseParams(position.Position{}, m)
	params.Defaults.ThreeColumn = true

	got := Solve(params)
	assert.Equal(t, geometry.Rect{X: 448, Y: 156, Width: 1024, Height: 768}, got)
}

func TestSolve_DefaultClampedToSmallPrimary(t *testing.T) {
	small := monitor.Monitor{
		Name:      "eDP-1",
		Bounds:    geometry.Rect{X: 0, Y: 0, Width: 640, Height: 480},
		Available: geometry.Rect{X: 0, Y: 0, Width: 640, Height: 480},
	}
	params := baseParams(position.Position{}, small)

	got := Solve(params)
	assert.Equal(t, geometry.Rect{X: 0, Y: 0, Width: 640, Height: 480}, got)
}

func TestSolve_RoundTripStaysInAvailableSpace(t *testing.T) {
	m := monitorA()
	m.Available = geometry.Rect{X: 0, Y: 30, Width: 1920, Height: 1050}
	params := baseParams(savedOn(m, 200, 150, 900, 700), m)

	first := Solve(params)
	require.True(t, first.X >= m.Available.X && first.Y >= m.Available.Y)
	require.True(t, first.Right() <= m.Available.Right())
	require.True(t, first.Bottom() <= m.Available.Bottom())

	// Feed the save computation's output back in: relative to the
	// monitor origin, same scale, same checksum.
	again := params
	again.Saved = position.Position{
		X: first.X - m.Bounds.X, Y: first.Y - m.Bounds.Y,
		W: first.Width, H: first.Height,
		Scale:      100,
		MonitorCRC: monitor.NameChecksum(m.Name),
	}
	second := Solve(again)
	assert.Equal(t, first, second)
}
