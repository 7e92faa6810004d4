package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/smallbiznis/atelier/internal/geometry"
)

// Tracer returns the shared tracer for editor instrumentation.
func Tracer() trace.Tracer {
	return otel.Tracer("github.com/smallbiznis/atelier")
}

// DesignAttributes describes a computation cycle: how many elements and
// areas it walked and the canvas it resolved against.
func DesignAttributes(elementCount, areaCount int, canvas geometry.CanvasSize) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int("design.element_count", elementCount),
		attribute.Int("design.area_count", areaCount),
		attribute.Float64("design.canvas_width", canvas.Width),
		attribute.Float64("design.canvas_height", canvas.Height),
	}
}
