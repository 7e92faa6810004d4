// Package events carries editor change notifications to the surrounding
// application: the UI layer subscribes to price updates, the save sink to
// design changes.
package events

// Editor event types.
const (
	EventElementAdded      = "element.added"
	EventElementUpdated    = "element.updated"
	EventElementDeleted    = "element.deleted"
	EventElementDuplicated = "element.duplicated"
	EventDesignLoaded      = "design.loaded"
	EventDesignUndone      = "design.undone"
	EventDesignRedone      = "design.redone"
	EventPriceRecomputed   = "price.recomputed"
)

// ElementPayload identifies the element touched by a mutation.
type ElementPayload struct {
	ElementID   string `json:"element_id"`
	ElementType string `json:"element_type,omitempty"`
	SourceID    string `json:"source_id,omitempty"`
}

// PricePayload carries the recomputed grand total.
type PricePayload struct {
	Total        float64 `json:"total"`
	ElementCount int     `json:"element_count"`
	AreaCount    int     `json:"area_count"`
}

// DesignPayload describes a template load or a history restore.
type DesignPayload struct {
	ElementCount int     `json:"element_count"`
	CanvasWidth  float64 `json:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height"`
}
