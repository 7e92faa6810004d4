package domain

import (
	"github.com/smallbiznis/atelier/internal/design/domain"
	"github.com/smallbiznis/atelier/internal/geometry"
)

// ViolationKind labels one class of constraint breach.
type ViolationKind string

const (
	ViolationTooManyElements ViolationKind = "too_many_elements"
	ViolationTypeNotAllowed  ViolationKind = "type_not_allowed"
)

// Violation reports one breached area constraint. Constraints are
// advisory: the editor surfaces them to the operator but never blocks a
// mutation over them.
type Violation struct {
	AreaID    string
	ElementID string
	Kind      ViolationKind
}

// CheckConstraints evaluates MaxElements and AllowedTypes for every area
// against the current element layout. A MaxElements of zero means
// unlimited; an empty AllowedTypes list permits every type.
func CheckConstraints(elements []domain.DesignElement, areas []CustomizationArea, canvas geometry.CanvasSize) ([]Violation, error) {
	var violations []Violation

	for i := range areas {
		area := &areas[i]
		contained := 0

		for _, element := range elements {
			inside, err := area.Contains(element, canvas)
			if err != nil {
				return nil, err
			}
			if !inside {
				continue
			}
			contained++

			if len(area.AllowedTypes) > 0 && !typeAllowed(area.AllowedTypes, element.Type) {
				violations = append(violations, Violation{
					AreaID:    area.ID,
					ElementID: element.ID,
					Kind:      ViolationTypeNotAllowed,
				})
			}
		}

		if area.MaxElements > 0 && contained > area.MaxElements {
			violations = append(violations, Violation{
				AreaID: area.ID,
				Kind:   ViolationTooManyElements,
			})
		}
	}

	return violations, nil
}

func typeAllowed(allowed []domain.ElementType, elementType domain.ElementType) bool {
	for _, candidate := range allowed {
		if candidate == elementType {
			return true
		}
	}
	return false
}
