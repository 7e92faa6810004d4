// Package domain defines customization areas: the admin-authored
// printable regions of a product side, each carrying its own pricing
// rules. Areas are read-only input to the engine; every computation cycle
// treats the supplied list as immutable.
package domain

import (
	"github.com/smallbiznis/atelier/internal/design/domain"
	"github.com/smallbiznis/atelier/internal/geometry"
)

// ComplexityMultiplier scales an area's per-element price by the
// element's complexity tier.
type ComplexityMultiplier struct {
	Simple  float64 `json:"simple" yaml:"simple"`
	Medium  float64 `json:"medium" yaml:"medium"`
	Complex float64 `json:"complex" yaml:"complex"`
}

// For returns the multiplier for a tier. Unknown tiers price as simple.
func (m ComplexityMultiplier) For(tier domain.Complexity) float64 {
	switch tier {
	case domain.ComplexityMedium:
		return m.Medium
	case domain.ComplexityComplex:
		return m.Complex
	default:
		return m.Simple
	}
}

// AreaPricing holds an area's pricing rules. BasePrice is a flat fee
// charged once per area regardless of contents.
type AreaPricing struct {
	BasePrice            float64              `json:"base_price" yaml:"base_price"`
	PricePerElement      float64              `json:"price_per_element" yaml:"price_per_element"`
	ComplexityMultiplier ComplexityMultiplier `json:"complexity_multiplier" yaml:"complexity_multiplier"`
}

// CustomizationArea is one personalizable region. Geometry is either
// relative (percent of canvas) or legacy absolute pixels against a
// recorded reference resolution. MaxElements and AllowedTypes are
// advisory business rules checked by CheckConstraints but never enforced
// by the engine's mutation path.
type CustomizationArea struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`

	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`

	IsRelativeCoordinates bool    `json:"is_relative_coordinates" yaml:"is_relative_coordinates"`
	ReferenceWidth        float64 `json:"reference_width,omitempty" yaml:"reference_width"`
	ReferenceHeight       float64 `json:"reference_height,omitempty" yaml:"reference_height"`

	MaxElements  int                  `json:"max_elements" yaml:"max_elements"`
	AllowedTypes []domain.ElementType `json:"allowed_types" yaml:"allowed_types"`
	Pricing      AreaPricing          `json:"pricing" yaml:"pricing"`
}

// referenceSize returns the recorded reference resolution of a legacy
// area, defaulting to the standard 800x600 canvas.
func (a CustomizationArea) referenceSize() geometry.CanvasSize {
	ref := geometry.CanvasSize{Width: a.ReferenceWidth, Height: a.ReferenceHeight}
	if ref.Width == 0 {
		ref.Width = geometry.StandardCanvasSize.Width
	}
	if ref.Height == 0 {
		ref.Height = geometry.StandardCanvasSize.Height
	}
	return ref
}

// RelativeBounds normalizes the area's geometry into relative form.
// Legacy areas divide through their reference resolution first.
func (a CustomizationArea) RelativeBounds() (geometry.RelativeRect, error) {
	rect := geometry.RelativeRect{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height}
	if a.IsRelativeCoordinates {
		return rect, nil
	}
	legacy := geometry.AbsoluteRect{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height}
	return geometry.LegacyToRelative(legacy, a.referenceSize())
}

// AbsoluteBounds projects the area onto the given canvas. Legacy areas
// always pass through relative form, so resizing the canvas keeps them
// anchored to the same fraction of the design surface.
func (a CustomizationArea) AbsoluteBounds(canvas geometry.CanvasSize) (geometry.AbsoluteRect, error) {
	relative, err := a.RelativeBounds()
	if err != nil {
		return geometry.AbsoluteRect{}, err
	}
	return geometry.ToAbsolute(relative, canvas)
}
