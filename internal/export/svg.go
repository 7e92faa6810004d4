// Package export renders a design to portable formats. SVG is generated
// natively; bitmap formats delegate to an injected raster renderer.
package export

import (
	"bytes"
	"fmt"
	"math"
	"sort"

	svg "github.com/ajstarks/svgo"
	designdomain "github.com/smallbiznis/atelier/internal/design/domain"
	"github.com/smallbiznis/atelier/internal/geometry"
	"go.uber.org/zap"
)

// SVGExporter writes the vector form of a design. Only text and the
// rectangle and circle shapes have a vector representation; images,
// backgrounds and the decorative shapes are canvas-only and skipped.
type SVGExporter struct {
	log *zap.Logger
}

func NewSVGExporter(log *zap.Logger) *SVGExporter {
	return &SVGExporter{log: log.Named("export.svg")}
}

// Render produces the SVG document for the given elements. Hidden
// elements are omitted; the rest paint in ascending z-index so the
// stacking order matches the canvas.
func (x *SVGExporter) Render(elements []designdomain.DesignElement, canvas geometry.CanvasSize) ([]byte, error) {
	if !canvas.Valid() {
		return nil, fmt.Errorf("render svg: %w", invalidCanvas(canvas))
	}

	visible := make([]designdomain.DesignElement, 0, len(elements))
	for _, element := range elements {
		if element.Style.Visible {
			visible = append(visible, element)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Style.ZIndex < visible[j].Style.ZIndex
	})

	var buf bytes.Buffer
	doc := svg.New(&buf)
	doc.Start(round(canvas.Width), round(canvas.Height))

	skipped := 0
	for _, element := range visible {
		if !x.paint(doc, element) {
			skipped++
		}
	}

	doc.End()

	if skipped > 0 {
		x.log.Debug("elements without vector form skipped", zap.Int("skipped", skipped))
	}
	return buf.Bytes(), nil
}

func (x *SVGExporter) paint(doc *svg.SVG, element designdomain.DesignElement) bool {
	switch content := element.Content.(type) {
	case designdomain.TextContent:
		doc.Text(round(element.Style.X), round(element.Style.Y), content.Text,
			fmt.Sprintf("font-size:%vpx;font-family:%s;fill:%s",
				content.FontSize, content.FontFamily, content.Color))
		return true
	case designdomain.ShapeContent:
		return x.paintShape(doc, element.Style, content)
	default:
		return false
	}
}

func (x *SVGExporter) paintShape(doc *svg.SVG, style designdomain.ElementStyle, content designdomain.ShapeContent) bool {
	paintStyle := fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%v",
		content.FillColor, content.StrokeColor, content.StrokeWidth)

	switch content.Shape {
	case designdomain.ShapeRectangle:
		doc.Rect(round(style.X), round(style.Y), round(style.Width), round(style.Height), paintStyle)
		return true
	case designdomain.ShapeCircle:
		cx := style.X + style.Width/2
		cy := style.Y + style.Height/2
		r := math.Min(style.Width, style.Height) / 2
		doc.Circle(round(cx), round(cy), round(r), paintStyle)
		return true
	default:
		return false
	}
}

// round converts float layout coordinates to the integer pixels the SVG
// writer emits.
func round(v float64) int {
	return int(math.Round(v))
}

func invalidCanvas(canvas geometry.CanvasSize) error {
	if canvas.Width <= 0 {
		return &geometry.ConfigurationError{Field: "canvas.width", Value: canvas.Width}
	}
	return &geometry.ConfigurationError{Field: "canvas.height", Value: canvas.Height}
}
