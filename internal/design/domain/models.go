// Package domain contains the design element model shared by the editor,
// pricing, and export services.
package domain

import (
	"github.com/smallbiznis/atelier/internal/geometry"
)

// ElementType discriminates the content payload of a design element.
type ElementType string

const (
	ElementTypeText       ElementType = "text"
	ElementTypeImage      ElementType = "image"
	ElementTypeShape      ElementType = "shape"
	ElementTypeBackground ElementType = "background"
)

// Valid reports whether the type is one of the known element kinds.
func (t ElementType) Valid() bool {
	switch t {
	case ElementTypeText, ElementTypeImage, ElementTypeShape, ElementTypeBackground:
		return true
	}
	return false
}

// Complexity scales an element's per-area price contribution.
type Complexity string

const (
	ComplexitySimple  Complexity = "simple"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
)

// ShapeKind names the geometric primitive of a shape element. Only
// rectangle and circle survive vector export; the rest render on canvas
// but are skipped by the SVG writer.
type ShapeKind string

const (
	ShapeRectangle ShapeKind = "rectangle"
	ShapeCircle    ShapeKind = "circle"
	ShapeTriangle  ShapeKind = "triangle"
	ShapeStar      ShapeKind = "star"
	ShapeHeart     ShapeKind = "heart"
)

// ElementStyle is the element's placement on the current canvas, in
// absolute pixels. It is only meaningful against the CanvasSize that was
// active when the values were written.
type ElementStyle struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
	Opacity  float64 `json:"opacity"`
	ZIndex   int     `json:"z_index"`
	Locked   bool    `json:"locked"`
	Visible  bool    `json:"visible"`
}

// Bounds returns the element's axis-aligned bounding box.
func (s ElementStyle) Bounds() geometry.AbsoluteRect {
	return geometry.AbsoluteRect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
}

// ElementPricing is assigned from per-type defaults at creation time and
// never recomputed when the content changes afterwards. Live recompute is
// a product decision outside this engine's contract.
type ElementPricing struct {
	BasePrice    float64    `json:"base_price"`
	Complexity   Complexity `json:"complexity"`
	TimeEstimate int        `json:"time_estimate"`
}

// DesignElement is one placeable item on the canvas. Elements never
// reference customization areas; area membership is computed from
// geometry, not stored.
type DesignElement struct {
	ID      string         `json:"id"`
	Type    ElementType    `json:"type"`
	Content Content        `json:"content"`
	Style   ElementStyle   `json:"style"`
	Pricing ElementPricing `json:"pricing"`
}

// Clone returns a deep copy of the element.
func (e DesignElement) Clone() DesignElement {
	clone := e
	if e.Content != nil {
		clone.Content = e.Content.clone()
	}
	return clone
}

// CloneElements deep-copies a whole element list. History snapshots and
// save payloads must never alias live editor state.
func CloneElements(elements []DesignElement) []DesignElement {
	if elements == nil {
		return nil
	}
	cloned := make([]DesignElement, len(elements))
	for i, element := range elements {
		cloned[i] = element.Clone()
	}
	return cloned
}
