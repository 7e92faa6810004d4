// Package geometry implements the resolution-independent coordinate system
// used by customization areas and design elements. Areas are authored as
// percentages of the canvas so the same template renders correctly at any
// zoom level or base resolution.
package geometry

// CanvasSize is the pixel dimensions of the active design surface. It is
// never persisted on its own; it is always paired with the elements and
// areas that were laid out against it.
type CanvasSize struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// StandardCanvasSize is the editor's default design surface and the
// fallback reference resolution for legacy area definitions.
var StandardCanvasSize = CanvasSize{Width: 800, Height: 600}

// Valid reports whether both dimensions are strictly positive.
func (c CanvasSize) Valid() bool {
	return c.Width > 0 && c.Height > 0
}

// RelativeRect is a rectangle expressed as percentages (0-100) of canvas
// width and height. Out-of-bounds values are tolerated: they produce
// visually out-of-bounds regions rather than errors.
type RelativeRect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// AbsoluteRect is a rectangle in pixels, valid only against one specific
// CanvasSize snapshot. Always derived on demand, never persisted.
type AbsoluteRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether other lies fully inside r, edges inclusive.
func (r AbsoluteRect) Contains(other AbsoluteRect) bool {
	return other.X >= r.X &&
		other.Y >= r.Y &&
		other.X+other.Width <= r.X+r.Width &&
		other.Y+other.Height <= r.Y+r.Height
}

// ContainsPoint reports whether the point (x, y) lies inside r.
func (r AbsoluteRect) ContainsPoint(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// IsEmpty reports whether the rect has zero or negative area.
func (r AbsoluteRect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Center returns the midpoint of the rect.
func (r AbsoluteRect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Normalize clamps a relative rect into valid 0-100 bounds. The width and
// height are additionally clamped so the rect never extends past the
// canvas edge.
func Normalize(rect RelativeRect) RelativeRect {
	x := clamp(rect.X, 0, 100)
	y := clamp(rect.Y, 0, 100)
	return RelativeRect{
		X:      x,
		Y:      y,
		Width:  clamp(rect.Width, 0, 100-x),
		Height: clamp(rect.Height, 0, 100-y),
	}
}

func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
