// Package pricing computes the monetary breakdown of a design: area fees,
// per-element contributions scaled by complexity, and flat charges for
// elements outside every area.
package pricing

import (
	"context"
	"time"

	areadomain "github.com/smallbiznis/atelier/internal/area/domain"
	"github.com/smallbiznis/atelier/internal/cache"
	"github.com/smallbiznis/atelier/internal/config"
	designdomain "github.com/smallbiznis/atelier/internal/design/domain"
	"github.com/smallbiznis/atelier/internal/geometry"
	"github.com/smallbiznis/atelier/internal/observability/metrics"
	"github.com/smallbiznis/atelier/internal/observability/tracing"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Breakdown is the derived pricing state of a design. It is recomputed on
// every element or area change and never persisted apart from the element
// list that produced it.
type Breakdown struct {
	// Base is the grand total.
	Base float64 `json:"base"`
	// Elements maps element ID to its individual contribution. When an
	// element is charged under several overlapping areas (per_area mode)
	// the last area's contribution wins, matching the reference editor.
	Elements map[string]float64 `json:"elements"`
	// Areas maps area ID to the area's total: flat fee plus contained
	// element contributions.
	Areas map[string]float64 `json:"areas"`
	// Complexity sums contained-element contributions per tier.
	Complexity map[designdomain.Complexity]float64 `json:"complexity"`
}

func newBreakdown() Breakdown {
	return Breakdown{
		Elements:   make(map[string]float64),
		Areas:      make(map[string]float64),
		Complexity: make(map[designdomain.Complexity]float64),
	}
}

// Calculator walks the element list against the supplied areas and
// produces a Breakdown. It holds no mutable design state of its own.
type Calculator struct {
	log              *zap.Logger
	mode             string
	outsideAreaPrice float64
	projections      *cache.ProjectionCache
	metrics          *metrics.EditorMetrics
}

type CalculatorParam struct {
	fx.In

	Log         *zap.Logger
	Cfg         config.Config
	Projections *cache.ProjectionCache
}

func NewCalculator(p CalculatorParam) *Calculator {
	return &Calculator{
		log:              p.Log.Named("pricing.service"),
		mode:             p.Cfg.Pricing.Mode,
		outsideAreaPrice: p.Cfg.Pricing.OutsideAreaPrice,
		projections:      p.Projections,
		metrics: metrics.EditorWithConfig(metrics.Config{
			ServiceName: p.Cfg.Service.Name,
			Environment: p.Cfg.Service.Environment,
		}),
	}
}

// Mode reports the active pricing mode.
func (c *Calculator) Mode() string { return c.mode }

// InvalidateProjections drops cached area projections. Call after the
// area list itself changes; canvas changes need no invalidation because
// the canvas participates in the cache key.
func (c *Calculator) InvalidateProjections() {
	c.projections.Invalidate()
}

// Calculate produces the full price breakdown for the current design
// state. Fails only on invalid canvas or area reference dimensions.
func (c *Calculator) Calculate(
	ctx context.Context,
	elements []designdomain.DesignElement,
	areas []areadomain.CustomizationArea,
	canvas geometry.CanvasSize,
) (Breakdown, error) {
	started := time.Now()
	_, span := tracing.Tracer().Start(ctx, "pricing.calculate",
		trace.WithAttributes(tracing.DesignAttributes(len(elements), len(areas), canvas)...))
	defer span.End()

	var breakdown Breakdown
	var err error
	if c.mode == config.PricingModeSingleOwner {
		breakdown, err = c.calculateSingleOwner(elements, areas, canvas)
	} else {
		breakdown, err = c.calculatePerArea(elements, areas, canvas)
	}
	if err != nil {
		span.RecordError(err)
		return Breakdown{}, err
	}

	c.metrics.ObserveRecompute(time.Since(started))
	c.log.Debug("price recomputed",
		zap.Float64("total", breakdown.Base),
		zap.Int("elements", len(elements)),
		zap.Int("areas", len(areas)),
	)
	return breakdown, nil
}

// calculatePerArea reproduces the reference editor: each area tests
// containment independently, so an element fully inside two overlapping
// areas is charged under both. This is the documented compatibility
// behavior; single_owner mode bills each element once.
func (c *Calculator) calculatePerArea(
	elements []designdomain.DesignElement,
	areas []areadomain.CustomizationArea,
	canvas geometry.CanvasSize,
) (Breakdown, error) {
	breakdown := newBreakdown()
	total := 0.0

	for i := range areas {
		area := &areas[i]
		bounds, err := c.areaBounds(area, canvas)
		if err != nil {
			return Breakdown{}, err
		}

		areaPrice := area.Pricing.BasePrice
		for _, element := range elements {
			if !bounds.Contains(element.Style.Bounds()) {
				continue
			}
			contribution := c.elementContribution(area, element)
			areaPrice += contribution
			breakdown.Elements[element.ID] = contribution
			tier := normalizeTier(element.Pricing.Complexity)
			breakdown.Complexity[tier] += contribution
		}

		breakdown.Areas[area.ID] = areaPrice
		total += areaPrice
	}

	outsideTotal, err := c.chargeOutsideElements(&breakdown, elements, areas, canvas)
	if err != nil {
		return Breakdown{}, err
	}
	total += outsideTotal

	breakdown.Base = total
	return breakdown, nil
}

// calculateSingleOwner resolves each element to at most one owning area
// (first match in supplied order) so overlapping areas never double
// charge. Area flat fees are still charged once per area.
func (c *Calculator) calculateSingleOwner(
	elements []designdomain.DesignElement,
	areas []areadomain.CustomizationArea,
	canvas geometry.CanvasSize,
) (Breakdown, error) {
	breakdown := newBreakdown()
	total := 0.0

	for i := range areas {
		breakdown.Areas[areas[i].ID] = areas[i].Pricing.BasePrice
	}

	for _, element := range elements {
		owner, err := c.findOwner(element, areas, canvas)
		if err != nil {
			return Breakdown{}, err
		}
		if owner == nil {
			price := c.outsidePrice(element)
			breakdown.Elements[element.ID] = price
			total += price
			continue
		}
		contribution := c.elementContribution(owner, element)
		breakdown.Elements[element.ID] = contribution
		breakdown.Areas[owner.ID] += contribution
		tier := normalizeTier(element.Pricing.Complexity)
		breakdown.Complexity[tier] += contribution
	}

	for _, areaPrice := range breakdown.Areas {
		total += areaPrice
	}

	breakdown.Base = total
	return breakdown, nil
}

// chargeOutsideElements adds the flat base price of every element that no
// area fully contains. No multiplier applies on this path.
func (c *Calculator) chargeOutsideElements(
	breakdown *Breakdown,
	elements []designdomain.DesignElement,
	areas []areadomain.CustomizationArea,
	canvas geometry.CanvasSize,
) (float64, error) {
	total := 0.0
	for _, element := range elements {
		owner, err := c.findOwner(element, areas, canvas)
		if err != nil {
			return 0, err
		}
		if owner != nil {
			continue
		}
		price := c.outsidePrice(element)
		breakdown.Elements[element.ID] = price
		total += price
	}
	return total, nil
}

func (c *Calculator) elementContribution(area *areadomain.CustomizationArea, element designdomain.DesignElement) float64 {
	multiplier := area.Pricing.ComplexityMultiplier.For(element.Pricing.Complexity)
	return area.Pricing.PricePerElement * multiplier
}

// outsidePrice falls back to the configured flat price when the element
// carries no base price of its own.
func (c *Calculator) outsidePrice(element designdomain.DesignElement) float64 {
	if element.Pricing.BasePrice == 0 {
		return c.outsideAreaPrice
	}
	return element.Pricing.BasePrice
}

func (c *Calculator) findOwner(
	element designdomain.DesignElement,
	areas []areadomain.CustomizationArea,
	canvas geometry.CanvasSize,
) (*areadomain.CustomizationArea, error) {
	for i := range areas {
		bounds, err := c.areaBounds(&areas[i], canvas)
		if err != nil {
			return nil, err
		}
		if bounds.Contains(element.Style.Bounds()) {
			return &areas[i], nil
		}
	}
	return nil, nil
}

// areaBounds projects an area onto the canvas through the projection
// cache; areas are immutable per computation cycle so cached projections
// stay valid until the canvas changes.
func (c *Calculator) areaBounds(area *areadomain.CustomizationArea, canvas geometry.CanvasSize) (geometry.AbsoluteRect, error) {
	if bounds, ok := c.projections.Get(area.ID, canvas); ok {
		return bounds, nil
	}
	bounds, err := area.AbsoluteBounds(canvas)
	if err != nil {
		return geometry.AbsoluteRect{}, err
	}
	c.projections.Set(area.ID, canvas, bounds)
	return bounds, nil
}

func normalizeTier(tier designdomain.Complexity) designdomain.Complexity {
	switch tier {
	case designdomain.ComplexityMedium, designdomain.ComplexityComplex:
		return tier
	default:
		return designdomain.ComplexitySimple
	}
}
