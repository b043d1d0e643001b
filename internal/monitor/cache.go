package monitor

import (
	"time"

	"github.com/foldline/winkeep/internal/geometry"
)

// DefaultCacheTTL is how long a queried desktop rect stays valid.
const DefaultCacheTTL = time.Second

// DesktopCache caches the available rect of the monitor nearest the
// window, refreshing at most once per TTL. Monitor enumeration goes
// through the display server, so callers on hot paths (resize events)
// must not query it on every call.
//
// All access is confined to the single event-processing goroutine, so
// no locking is needed.
type DesktopCache struct {
	provider Provider
	ttl      time.Duration
	now      func() time.Time

	lastGot time.Time
	rect    geometry.Rect
	valid   bool
}

// NewDesktopCache creates a cache over the given provider. A zero ttl
// means DefaultCacheTTL.
func NewDesktopCache(provider Provider, ttl time.Duration) *DesktopCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &DesktopCache{
		provider: provider,
		ttl:      ttl,
		now:      time.Now,
	}
}

// AvailableRect returns the available geometry of the monitor nearest
// the given window rect. A stale or failed query falls back to the
// last known rect; there is no error surface.
func (c *DesktopCache) AvailableRect(window geometry.Rect) geometry.Rect {
	now := c.now()
	if c.valid && now.Before(c.lastGot.Add(c.ttl)) {
		return c.rect
	}
	monitors, err := c.provider.Monitors()
	if err != nil || len(monitors) == 0 {
		return c.rect
	}
	c.lastGot = now
	if m, ok := Nearest(monitors, window.Center()); ok {
		c.rect = m.Available
		c.valid = true
	}
	return c.rect
}
