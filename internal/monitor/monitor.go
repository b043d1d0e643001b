package monitor

import (
	"hash/crc32"

	"github.com/foldline/winkeep/internal/geometry"
)

// Monitor describes a physical display at the moment of query.
type Monitor struct {
	Name      string
	Bounds    geometry.Rect // full geometry
	Available geometry.Rect // bounds minus OS-reserved chrome (taskbars, docks)
}

// Provider enumerates the current display topology.
type Provider interface {
	Monitors() ([]Monitor, error)
	Primary() (Monitor, error)
}

// NameChecksum returns the stable identity checksum for a display name.
// Two monitors with identical names collide; that approximation is
// acceptable for re-associating a saved window position.
func NameChecksum(name string) uint32 {
	return crc32.ChecksumIEEE([]byte(name))
}

// FindByChecksum returns the first monitor whose name checksum matches.
func FindByChecksum(monitors []Monitor, crc uint32) (Monitor, bool) {
	if crc == 0 {
		return Monitor{}, false
	}
	for _, m := range monitors {
		if NameChecksum(m.Name) == crc {
			return m, true
		}
	}
	return Monitor{}, false
}

// Nearest returns the monitor whose center is closest to the given
// point, by Manhattan distance over monitor centers.
func Nearest(monitors []Monitor, center geometry.Point) (Monitor, bool) {
	var chosen Monitor
	found := false
	minDelta := 0
	for _, m := range monitors {
		delta := geometry.ManhattanDist(m.Bounds.Center(), center)
		if !found || delta < minDelta {
			minDelta = delta
			chosen = m
			found = true
		}
	}
	return chosen, found
}
