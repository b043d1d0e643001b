// Package placement maps a saved window position, possibly captured on
// a different monitor layout or scale factor, onto the current display
// topology. The solver is pure: identical inputs always yield the same
// rectangle, and every malformed or stale input degrades to a centered
// default instead of failing.
package placement

import (
	"github.com/foldline/winkeep/internal/geometry"
	"github.com/foldline/winkeep/internal/monitor"
	"github.com/foldline/winkeep/internal/position"
)

// Defaults is the policy for the fallback rectangle.
type Defaults struct {
	NormalSize geometry.Size
	WideSize   geometry.Size
	// ThreeColumn selects the wide default, for layouts that show a
	// third column by default.
	ThreeColumn bool
}

// Params carries everything Solve needs. Frame holds the native window
// decoration thickness; pass zero margins when the frame is not native.
type Params struct {
	Saved        position.Position
	Monitors     []monitor.Monitor
	Primary      monitor.Monitor
	CurrentScale int // percent
	MinSize      geometry.Size
	Frame        geometry.Margins
	Defaults     Defaults
}

// Solve produces a valid on-screen rectangle for the saved position,
// or the centered default when the position is unset, belongs to a
// monitor that is gone, or cannot be made to fit.
func Solve(p Params) geometry.Rect {
	initial := centeredDefault(p)
	saved := p.Saved
	if saved.Unset() {
		return initial
	}
	if saved.Scale != 0 && p.CurrentScale != 0 {
		factor := float64(p.CurrentScale) / float64(saved.Scale)
		saved.X = int(float64(saved.X) * factor)
		saved.Y = int(float64(saved.Y) * factor)
		saved.W = int(float64(saved.W) * factor)
		saved.H = int(float64(saved.H) * factor)
	}
	mon, ok := monitor.FindByChecksum(p.Monitors, saved.MonitorCRC)
	if !ok {
		return initial
	}

	spaceForInner := mon.Available.Shrunk(p.Frame)

	// Work in coordinates local to the monitor's origin; the saved
	// x/y are stored relative to it.
	x := spaceForInner.X - mon.Bounds.X
	y := spaceForInner.Y - mon.Bounds.Y
	w := spaceForInner.Width
	h := spaceForInner.Height
	if w < p.MinSize.W || h < p.MinSize.H {
		return initial
	}
	if saved.X < x {
		saved.X = x
	}
	if saved.Y < y {
		saved.Y = y
	}
	if saved.W > w {
		saved.W = w
	}
	if saved.H > h {
		saved.H = h
	}

	// Prefer shifting over shrinking: the window keeps its preferred
	// top-left whenever translation alone brings it on screen.
	rightPoint := saved.X + saved.W
	spaceRightPoint := x + w
	if rightPoint > spaceRightPoint {
		distance := rightPoint - spaceRightPoint
		newX := saved.X - distance
		if newX >= x {
			saved.X = newX
		} else {
			saved.X = x
			saved.W -= (saved.X + saved.W) - spaceRightPoint
		}
	}
	bottomPoint := saved.Y + saved.H
	spaceBottomPoint := y + h
	if bottomPoint > spaceBottomPoint {
		distance := bottomPoint - spaceBottomPoint
		newY := saved.Y - distance
		if newY >= y {
			saved.Y = newY
		} else {
			saved.Y = y
			saved.H -= (saved.Y + saved.H) - spaceBottomPoint
		}
	}

	saved.X += mon.Bounds.X
	saved.Y += mon.Bounds.Y

	// Sanity: if less than the minimum size would stay visible within
	// the monitor's full bounds, discard the position entirely.
	if saved.X+p.MinSize.W > mon.Bounds.Right() ||
		saved.Y+p.MinSize.H > mon.Bounds.Bottom() {
		return initial
	}
	return geometry.Rect{X: saved.X, Y: saved.Y, Width: saved.W, Height: saved.H}
}

// centeredDefault returns the policy-sized rectangle centered on the
// primary monitor's available area, clamped to not exceed it.
func centeredDefault(p Params) geometry.Rect {
	size := p.Defaults.NormalSize
	if p.Defaults.ThreeColumn {
		size = p.Defaults.WideSize
	}
	available := p.Primary.Available
	if available.Empty() {
		return geometry.Rect{X: 0, Y: 0, Width: size.W, Height: size.H}
	}
	w := size.W
	if w > available.Width {
		w = available.Width
	}
	h := size.H
	if h > available.Height {
		h = available.Height
	}
	dx := (available.Width - w) / 2
	if dx < 0 {
		dx = 0
	}
	dy := (available.Height - h) / 2
	if dy < 0 {
		dy = 0
	}
	return geometry.Rect{X: available.X + dx, Y: available.Y + dy, Width: w, Height: h}
}
