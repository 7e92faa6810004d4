package export

import (
	"context"
	"errors"
	"fmt"

	designdomain "github.com/smallbiznis/atelier/internal/design/domain"
	"github.com/smallbiznis/atelier/internal/geometry"
	"github.com/smallbiznis/atelier/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Format names an export target.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatJPG Format = "jpg"
	FormatPDF Format = "pdf"
)

var (
	ErrUnknownFormat       = errors.New("unknown_format")
	ErrRendererUnavailable = errors.New("renderer_unavailable")
)

// RasterRenderer rasterizes a design for the bitmap and print formats.
// Implementations live outside the engine; none ships by default.
type RasterRenderer interface {
	Render(ctx context.Context, format Format, elements []designdomain.DesignElement, canvas geometry.CanvasSize) ([]byte, error)
}

// Service dispatches export requests by format.
type Service struct {
	log     *zap.Logger
	svg     *SVGExporter
	raster  RasterRenderer
	metrics *metrics.EditorMetrics
}

type ServiceParam struct {
	fx.In

	Log    *zap.Logger
	SVG    *SVGExporter
	Raster RasterRenderer `optional:"true"`
}

func NewService(p ServiceParam) *Service {
	return &Service{
		log:     p.Log.Named("export.service"),
		svg:     p.SVG,
		raster:  p.Raster,
		metrics: metrics.Editor(),
	}
}

// Export renders the design in the requested format. Bitmap and print
// formats fail with ErrRendererUnavailable when no raster renderer is
// wired in.
func (s *Service) Export(ctx context.Context, format Format, elements []designdomain.DesignElement, canvas geometry.CanvasSize) ([]byte, error) {
	data, err := s.export(ctx, format, elements, canvas)
	result := "ok"
	if err != nil {
		result = "error"
	}
	s.metrics.IncExport(string(format), result)
	return data, err
}

func (s *Service) export(ctx context.Context, format Format, elements []designdomain.DesignElement, canvas geometry.CanvasSize) ([]byte, error) {
	switch format {
	case FormatSVG:
		return s.svg.Render(elements, canvas)
	case FormatPNG, FormatJPG, FormatPDF:
		if s.raster == nil {
			return nil, fmt.Errorf("export %s: %w", format, ErrRendererUnavailable)
		}
		return s.raster.Render(ctx, format, elements, canvas)
	default:
		return nil, fmt.Errorf("export: %w: %q", ErrUnknownFormat, format)
	}
}
