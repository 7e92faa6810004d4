package domain

// TypeDefaults carries the creation-time values assigned to a new element
// of a given type. These are merged under whatever the caller supplies in
// the add request, and frozen on the element from then on.
type TypeDefaults struct {
	BasePrice    float64    `yaml:"base_price" json:"base_price"`
	Complexity   Complexity `yaml:"complexity" json:"complexity"`
	TimeEstimate int        `yaml:"time_estimate" json:"time_estimate"`
}

// Shipped per-type defaults. Time estimates are in minutes of workshop
// production time.
var defaultsByType = map[ElementType]TypeDefaults{
	ElementTypeText:       {BasePrice: 1.5, Complexity: ComplexitySimple, TimeEstimate: 5},
	ElementTypeShape:      {BasePrice: 2.0, Complexity: ComplexitySimple, TimeEstimate: 10},
	ElementTypeImage:      {BasePrice: 3.0, Complexity: ComplexityMedium, TimeEstimate: 15},
	ElementTypeBackground: {BasePrice: 5.0, Complexity: ComplexityComplex, TimeEstimate: 20},
}

var fallbackDefaults = TypeDefaults{
	BasePrice:    1.0,
	Complexity:   ComplexitySimple,
	TimeEstimate: 5,
}

// DefaultsFor returns the creation defaults for an element type. Unknown
// types get the conservative fallback rather than an error.
func DefaultsFor(elementType ElementType) TypeDefaults {
	if defaults, ok := defaultsByType[elementType]; ok {
		return defaults
	}
	return fallbackDefaults
}

// DefaultContent builds the initial payload for a new element of the
// given type.
func DefaultContent(elementType ElementType) Content {
	switch elementType {
	case ElementTypeText:
		return TextContent{Text: "Texto personalizado", FontSize: 24, FontFamily: "Arial", Color: "#000000"}
	case ElementTypeShape:
		return ShapeContent{Shape: ShapeRectangle, FillColor: "#3B82F6", StrokeColor: "#1E40AF", StrokeWidth: 2}
	case ElementTypeImage:
		return ImageContent{}
	case ElementTypeBackground:
		return BackgroundContent{Color: "#FFFFFF"}
	default:
		return nil
	}
}
