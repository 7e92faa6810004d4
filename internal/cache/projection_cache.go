// Package cache provides a small in-memory cache for area projections.
// Areas are immutable per computation cycle, so a projected absolute rect
// stays valid until the canvas size changes.
package cache

import (
	"sync"

	"github.com/smallbiznis/atelier/internal/geometry"
)

type projectionKey struct {
	areaID string
	canvas geometry.CanvasSize
}

// ProjectionCache memoizes area-to-canvas projections keyed by area ID
// and canvas size. Zero-value receivers are tolerated: a nil cache always
// misses and ignores writes.
type ProjectionCache struct {
	mu    sync.RWMutex
	items map[projectionKey]geometry.AbsoluteRect
}

// NewProjectionCache constructs an empty projection cache.
func NewProjectionCache() *ProjectionCache {
	return &ProjectionCache{items: make(map[projectionKey]geometry.AbsoluteRect)}
}

// Get returns the cached projection of an area onto a canvas size.
func (c *ProjectionCache) Get(areaID string, canvas geometry.CanvasSize) (geometry.AbsoluteRect, bool) {
	if c == nil {
		return geometry.AbsoluteRect{}, false
	}
	c.mu.RLock()
	rect, ok := c.items[projectionKey{areaID: areaID, canvas: canvas}]
	c.mu.RUnlock()
	return rect, ok
}

// Set stores a projection.
func (c *ProjectionCache) Set(areaID string, canvas geometry.CanvasSize, rect geometry.AbsoluteRect) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.items[projectionKey{areaID: areaID, canvas: canvas}] = rect
	c.mu.Unlock()
}

// Invalidate drops every cached projection. Called when the area list
// itself changes, since projections are keyed only by area ID.
func (c *ProjectionCache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.items = make(map[projectionKey]geometry.AbsoluteRect)
	c.mu.Unlock()
}

// Len reports the number of cached projections.
func (c *ProjectionCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
