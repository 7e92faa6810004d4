package domain

import (
	"github.com/smallbiznis/atelier/internal/design/domain"
	"github.com/smallbiznis/atelier/internal/geometry"
)

// Contains reports whether the element's bounding box lies fully inside
// the area at the given canvas size. Partial overlap is not membership.
func (a CustomizationArea) Contains(element domain.DesignElement, canvas geometry.CanvasSize) (bool, error) {
	bounds, err := a.AbsoluteBounds(canvas)
	if err != nil {
		return false, err
	}
	return bounds.Contains(element.Style.Bounds()), nil
}

// FindOwningArea resolves the single area that owns an element: the first
// area in supplied order that fully contains it. Areas may overlap by
// design; first match wins and ties are not an error. Returns nil when no
// area fully contains the element.
func FindOwningArea(element domain.DesignElement, areas []CustomizationArea, canvas geometry.CanvasSize) (*CustomizationArea, error) {
	for i := range areas {
		contained, err := areas[i].Contains(element, canvas)
		if err != nil {
			return nil, err
		}
		if contained {
			return &areas[i], nil
		}
	}
	return nil, nil
}

// OutsideAllAreas reports whether the element is fully contained by no
// supplied area. These elements take the flat outside-area pricing path.
func OutsideAllAreas(element domain.DesignElement, areas []CustomizationArea, canvas geometry.CanvasSize) (bool, error) {
	owner, err := FindOwningArea(element, areas, canvas)
	if err != nil {
		return false, err
	}
	return owner == nil, nil
}
