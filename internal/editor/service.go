// Package editor implements the design editing engine: element mutations,
// selection, undo/redo history, and the price recompute that follows
// every change.
package editor

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	areadomain "github.com/smallbiznis/atelier/internal/area/domain"
	"github.com/smallbiznis/atelier/internal/clock"
	"github.com/smallbiznis/atelier/internal/config"
	designdomain "github.com/smallbiznis/atelier/internal/design/domain"
	"github.com/smallbiznis/atelier/internal/events"
	"github.com/smallbiznis/atelier/internal/geometry"
	"github.com/smallbiznis/atelier/internal/observability/metrics"
	"github.com/smallbiznis/atelier/internal/pricing"
	"github.com/smallbiznis/atelier/internal/template"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// AddOptions overrides the creation defaults of a new element. Zero
// values fall back to the shipped defaults, matching the creation
// behavior designs were priced under historically.
type AddOptions struct {
	Content designdomain.Content
	X       float64
	Y       float64
	Width   float64
	Height  float64

	BasePrice    float64
	Complexity   designdomain.Complexity
	TimeEstimate int
}

// ElementPatch is a partial update; nil fields leave the current value
// untouched.
type ElementPatch struct {
	Content designdomain.Content
	Pricing *designdomain.ElementPricing

	X        *float64
	Y        *float64
	Width    *float64
	Height   *float64
	Rotation *float64
	Opacity  *float64
	ZIndex   *int
	Locked   *bool
	Visible  *bool
}

// Engine is the stateful design editor. It is not safe for concurrent
// use; callers serialize access, one engine per editing session.
type Engine struct {
	log        *zap.Logger
	node       *snowflake.Node
	clk        clock.Clock
	calculator *pricing.Calculator
	dispatcher *events.Dispatcher
	metrics    *metrics.EditorMetrics

	duplicateOffsetX float64
	duplicateOffsetY float64
	typeDefaults     map[designdomain.ElementType]designdomain.TypeDefaults

	canvas     geometry.CanvasSize
	areas      []areadomain.CustomizationArea
	elements   []designdomain.DesignElement
	history    *History
	selectedID string
	breakdown  pricing.Breakdown
}

type EngineParam struct {
	fx.In

	Log        *zap.Logger
	Cfg        config.Config
	Node       *snowflake.Node
	Clock      clock.Clock
	Calculator *pricing.Calculator
	Dispatcher *events.Dispatcher
}

func NewEngine(p EngineParam) *Engine {
	return &Engine{
		log:              p.Log.Named("editor.service"),
		node:             p.Node,
		clk:              p.Clock,
		calculator:       p.Calculator,
		dispatcher:       p.Dispatcher,
		duplicateOffsetX: p.Cfg.Duplicate.OffsetX,
		duplicateOffsetY: p.Cfg.Duplicate.OffsetY,
		typeDefaults:     typeDefaults(p.Cfg.Elements),
		canvas:           p.Cfg.Canvas.Size(),
		history:          NewHistory(p.Cfg.History.Capacity),
		metrics: metrics.EditorWithConfig(metrics.Config{
			ServiceName: p.Cfg.Service.Name,
			Environment: p.Cfg.Service.Environment,
		}),
	}
}

// Elements returns the live element list. Callers must not mutate it.
func (e *Engine) Elements() []designdomain.DesignElement { return e.elements }

// Canvas returns the active canvas size.
func (e *Engine) Canvas() geometry.CanvasSize { return e.canvas }

// Areas returns the customization areas in effect.
func (e *Engine) Areas() []areadomain.CustomizationArea { return e.areas }

// Breakdown returns the price breakdown from the last recompute.
func (e *Engine) Breakdown() pricing.Breakdown { return e.breakdown }

// TotalPrice returns the current design total.
func (e *Engine) TotalPrice() float64 { return e.breakdown.Base }

// CanUndo reports whether an undo step is available.
func (e *Engine) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether a redo step is available.
func (e *Engine) CanRedo() bool { return e.history.CanRedo() }

// SetAreas replaces the customization areas and reprices the design.
func (e *Engine) SetAreas(ctx context.Context, areas []areadomain.CustomizationArea) error {
	e.areas = areas
	e.calculator.InvalidateProjections()
	return e.recompute(ctx)
}

// SetCanvasSize switches the canvas resolution. Relative areas follow
// the new canvas automatically; element positions stay in absolute
// pixels and are not rescaled.
func (e *Engine) SetCanvasSize(ctx context.Context, canvas geometry.CanvasSize) error {
	if !canvas.Valid() {
		if canvas.Width <= 0 {
			return &geometry.ConfigurationError{Field: "canvas.width", Value: canvas.Width}
		}
		return &geometry.ConfigurationError{Field: "canvas.height", Value: canvas.Height}
	}
	e.canvas = canvas
	return e.recompute(ctx)
}

// AddElement creates an element of the given type, applying creation
// defaults for anything opts leaves zero, selects it, and reprices.
func (e *Engine) AddElement(ctx context.Context, elementType designdomain.ElementType, opts AddOptions) (designdomain.DesignElement, error) {
	e.history.Record(e.elements)

	element := e.buildElement(elementType, opts)
	e.elements = append(e.elements, element)
	e.selectedID = element.ID

	e.metrics.IncMutation("add")
	e.dispatcher.Publish(events.Event{
		Type:    events.EventElementAdded,
		Payload: events.ElementPayload{ElementID: element.ID, ElementType: string(element.Type)},
	})
	e.log.Debug("element added",
		zap.String("element_id", element.ID),
		zap.String("type", string(element.Type)),
	)

	if err := e.recompute(ctx); err != nil {
		return designdomain.DesignElement{}, err
	}
	return element.Clone(), nil
}

// typeDefaults overlays configured per-type creation defaults on the
// shipped ones. Zero config values keep the shipped value.
func typeDefaults(overrides map[string]config.ElementDefaultConfig) map[designdomain.ElementType]designdomain.TypeDefaults {
	merged := make(map[designdomain.ElementType]designdomain.TypeDefaults, len(overrides))
	for name, override := range overrides {
		elementType := designdomain.ElementType(name)
		defaults := designdomain.DefaultsFor(elementType)
		if override.BasePrice > 0 {
			defaults.BasePrice = override.BasePrice
		}
		if override.Complexity != "" {
			defaults.Complexity = designdomain.Complexity(override.Complexity)
		}
		if override.TimeEstimate > 0 {
			defaults.TimeEstimate = override.TimeEstimate
		}
		merged[elementType] = defaults
	}
	return merged
}

func (e *Engine) defaultsFor(elementType designdomain.ElementType) designdomain.TypeDefaults {
	if defaults, ok := e.typeDefaults[elementType]; ok {
		return defaults
	}
	return designdomain.DefaultsFor(elementType)
}

func (e *Engine) buildElement(elementType designdomain.ElementType, opts AddOptions) designdomain.DesignElement {
	defaults := e.defaultsFor(elementType)

	content := opts.Content
	if content == nil {
		content = designdomain.DefaultContent(elementType)
	}

	basePrice := opts.BasePrice
	if basePrice == 0 {
		basePrice = defaults.BasePrice
	}
	complexity := opts.Complexity
	if complexity == "" {
		complexity = defaults.Complexity
	}
	timeEstimate := opts.TimeEstimate
	if timeEstimate == 0 {
		timeEstimate = defaults.TimeEstimate
	}

	style := designdomain.ElementStyle{
		X:       orDefault(opts.X, 100),
		Y:       orDefault(opts.Y, 100),
		Width:   orDefault(opts.Width, 200),
		Height:  orDefault(opts.Height, 100),
		Opacity: 1,
		ZIndex:  len(e.elements),
		Visible: true,
	}

	return designdomain.DesignElement{
		ID:      fmt.Sprintf("element-%s", e.node.Generate()),
		Type:    elementType,
		Content: content,
		Style:   style,
		Pricing: designdomain.ElementPricing{
			BasePrice:    basePrice,
			Complexity:   complexity,
			TimeEstimate: timeEstimate,
		},
	}
}

func orDefault(value, fallback float64) float64 {
	if value == 0 {
		return fallback
	}
	return value
}

// UpdateElement applies a partial update to the identified element. An
// unknown ID is a silent no-op: the stale reference costs nothing.
func (e *Engine) UpdateElement(ctx context.Context, id string, patch ElementPatch) error {
	index := e.indexOf(id)
	if index < 0 {
		return nil
	}

	e.history.Record(e.elements)

	element := &e.elements[index]
	if patch.Content != nil {
		element.Content = patch.Content
	}
	if patch.Pricing != nil {
		element.Pricing = *patch.Pricing
	}
	applyFloat(&element.Style.X, patch.X)
	applyFloat(&element.Style.Y, patch.Y)
	applyFloat(&element.Style.Width, patch.Width)
	applyFloat(&element.Style.Height, patch.Height)
	applyFloat(&element.Style.Rotation, patch.Rotation)
	applyFloat(&element.Style.Opacity, patch.Opacity)
	if patch.ZIndex != nil {
		element.Style.ZIndex = *patch.ZIndex
	}
	if patch.Locked != nil {
		element.Style.Locked = *patch.Locked
	}
	if patch.Visible != nil {
		element.Style.Visible = *patch.Visible
	}

	e.metrics.IncMutation("update")
	e.dispatcher.Publish(events.Event{
		Type:    events.EventElementUpdated,
		Payload: events.ElementPayload{ElementID: id, ElementType: string(element.Type)},
	})
	return e.recompute(ctx)
}

func applyFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

// DeleteElement removes the identified element. Unknown IDs are silent
// no-ops; deleting the selected element clears the selection.
func (e *Engine) DeleteElement(ctx context.Context, id string) error {
	index := e.indexOf(id)
	if index < 0 {
		return nil
	}

	e.history.Record(e.elements)

	elementType := e.elements[index].Type
	e.elements = append(e.elements[:index], e.elements[index+1:]...)
	if e.selectedID == id {
		e.selectedID = ""
	}

	e.metrics.IncMutation("delete")
	e.dispatcher.Publish(events.Event{
		Type:    events.EventElementDeleted,
		Payload: events.ElementPayload{ElementID: id, ElementType: string(elementType)},
	})
	return e.recompute(ctx)
}

// DuplicateElement copies the identified element, offset down-right so
// the copy is visible, stacked on top, and selected. Unknown IDs are
// silent no-ops.
func (e *Engine) DuplicateElement(ctx context.Context, id string) (designdomain.DesignElement, error) {
	index := e.indexOf(id)
	if index < 0 {
		return designdomain.DesignElement{}, nil
	}

	e.history.Record(e.elements)

	duplicated := e.elements[index].Clone()
	duplicated.ID = fmt.Sprintf("element-%s", e.node.Generate())
	duplicated.Style.X += e.duplicateOffsetX
	duplicated.Style.Y += e.duplicateOffsetY
	duplicated.Style.ZIndex = len(e.elements)

	e.elements = append(e.elements, duplicated)
	e.selectedID = duplicated.ID

	e.metrics.IncMutation("duplicate")
	e.dispatcher.Publish(events.Event{
		Type:    events.EventElementDuplicated,
		Payload: events.ElementPayload{ElementID: duplicated.ID, ElementType: string(duplicated.Type), SourceID: id},
	})

	if err := e.recompute(ctx); err != nil {
		return designdomain.DesignElement{}, err
	}
	return duplicated.Clone(), nil
}

// Select marks the identified element as selected. Selecting an unknown
// ID or the empty string clears the selection.
func (e *Engine) Select(id string) {
	if id == "" || e.indexOf(id) < 0 {
		e.selectedID = ""
		return
	}
	e.selectedID = id
}

// Selected returns the selected element, or false when nothing is
// selected.
func (e *Engine) Selected() (designdomain.DesignElement, bool) {
	index := e.indexOf(e.selectedID)
	if index < 0 {
		return designdomain.DesignElement{}, false
	}
	return e.elements[index].Clone(), true
}

// Undo restores the element list from before the last mutation. With no
// history it is a silent no-op.
func (e *Engine) Undo(ctx context.Context) error {
	restored, ok := e.history.Undo(e.elements)
	if !ok {
		return nil
	}
	e.elements = restored
	e.clearDanglingSelection()

	e.metrics.IncMutation("undo")
	e.dispatcher.Publish(events.Event{
		Type:    events.EventDesignUndone,
		Payload: e.designPayload(),
	})
	return e.recompute(ctx)
}

// Redo reapplies the last undone mutation. With no redo states it is a
// silent no-op.
func (e *Engine) Redo(ctx context.Context) error {
	restored, ok := e.history.Redo(e.elements)
	if !ok {
		return nil
	}
	e.elements = restored
	e.clearDanglingSelection()

	e.metrics.IncMutation("redo")
	e.dispatcher.Publish(events.Event{
		Type:    events.EventDesignRedone,
		Payload: e.designPayload(),
	})
	return e.recompute(ctx)
}

func (e *Engine) clearDanglingSelection() {
	if e.selectedID != "" && e.indexOf(e.selectedID) < 0 {
		e.selectedID = ""
	}
}

// LoadDesign replaces the whole editor state from a saved document and
// reprices it. History is reset; a load is a fresh editing session.
func (e *Engine) LoadDesign(ctx context.Context, doc template.DesignDocument) error {
	canvas := doc.CanvasSize
	if !canvas.Valid() {
		canvas = geometry.StandardCanvasSize
	}

	e.canvas = canvas
	e.elements = designdomain.CloneElements(doc.Elements)
	e.areas = doc.CustomizationAreas
	e.selectedID = ""
	e.history.Reset()
	e.calculator.InvalidateProjections()

	e.dispatcher.Publish(events.Event{
		Type:    events.EventDesignLoaded,
		Payload: e.designPayload(),
	})
	e.log.Info("design loaded",
		zap.Int("elements", len(e.elements)),
		zap.Int("areas", len(e.areas)),
	)
	return e.recompute(ctx)
}

// SaveDocument snapshots the current editor state as a persistable
// document, stamped with the current time.
func (e *Engine) SaveDocument(meta template.Metadata) template.DesignDocument {
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = e.clk.Now()
	}
	return template.DesignDocument{
		Elements:           designdomain.CloneElements(e.elements),
		CanvasSize:         e.canvas,
		CustomizationAreas: e.areas,
		TotalPrice:         e.breakdown.Base,
		PriceBreakdown:     e.breakdown,
		Metadata:           meta,
	}
}

// CheckConstraints reports advisory violations of the areas' element
// limits and type allowances for the current design.
func (e *Engine) CheckConstraints() ([]areadomain.Violation, error) {
	return areadomain.CheckConstraints(e.elements, e.areas, e.canvas)
}

func (e *Engine) recompute(ctx context.Context) error {
	breakdown, err := e.calculator.Calculate(ctx, e.elements, e.areas, e.canvas)
	if err != nil {
		return err
	}
	e.breakdown = breakdown
	e.metrics.SetElementCount(len(e.elements))
	e.dispatcher.Publish(events.Event{
		Type: events.EventPriceRecomputed,
		Payload: events.PricePayload{
			Total:        breakdown.Base,
			ElementCount: len(e.elements),
			AreaCount:    len(e.areas),
		},
	})
	return nil
}

func (e *Engine) designPayload() events.DesignPayload {
	return events.DesignPayload{
		ElementCount: len(e.elements),
		CanvasWidth:  e.canvas.Width,
		CanvasHeight: e.canvas.Height,
	}
}

func (e *Engine) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range e.elements {
		if e.elements[i].ID == id {
			return i
		}
	}
	return -1
}
