package geometry

import (
	"errors"
	"fmt"
)

// ErrInvalidDimension is the sentinel behind every ConfigurationError so
// callers can match the class without inspecting the field name.
var ErrInvalidDimension = errors.New("invalid_dimension")

// ConfigurationError reports a zero or negative canvas or reference
// dimension. Projecting through such a dimension would divide by zero, so
// the mapper fails instead of producing Inf.
type ConfigurationError struct {
	Field string
	Value float64
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("geometry: %s must be positive, got %v", e.Field, e.Value)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidDimension
}

func invalidCanvas(canvas CanvasSize) error {
	if canvas.Width <= 0 {
		return &ConfigurationError{Field: "canvas.width", Value: canvas.Width}
	}
	return &ConfigurationError{Field: "canvas.height", Value: canvas.Height}
}

func invalidReference(ref CanvasSize) error {
	if ref.Width <= 0 {
		return &ConfigurationError{Field: "reference.width", Value: ref.Width}
	}
	return &ConfigurationError{Field: "reference.height", Value: ref.Height}
}
