package editor

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	areadomain "github.com/smallbiznis/atelier/internal/area/domain"
	"github.com/smallbiznis/atelier/internal/cache"
	"github.com/smallbiznis/atelier/internal/clock"
	"github.com/smallbiznis/atelier/internal/config"
	designdomain "github.com/smallbiznis/atelier/internal/design/domain"
	"github.com/smallbiznis/atelier/internal/events"
	"github.com/smallbiznis/atelier/internal/geometry"
	"github.com/smallbiznis/atelier/internal/pricing"
	"github.com/smallbiznis/atelier/internal/template"
	"go.uber.org/zap"
)

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, cfg config.Config) *Engine {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	log := zap.NewNop()
	calculator := pricing.NewCalculator(pricing.CalculatorParam{
		Log:         log,
		Cfg:         cfg,
		Projections: cache.NewProjectionCache(),
	})
	return NewEngine(EngineParam{
		Log:        log,
		Cfg:        cfg,
		Node:       node,
		Clock:      clock.Fixed{At: testTime},
		Calculator: calculator,
		Dispatcher: events.NewDispatcher(log),
	})
}

func defaultEngine(t *testing.T) *Engine {
	t.Helper()
	return newTestEngine(t, config.Default())
}

func TestAddElementDefaults(t *testing.T) {
	engine := defaultEngine(t)

	element, err := engine.AddElement(context.Background(), designdomain.ElementTypeText, AddOptions{})
	if err != nil {
		t.Fatalf("AddElement: %v", err)
	}

	if element.ID == "" {
		t.Fatal("element has no ID")
	}
	style := element.Style
	if style.X != 100 || style.Y != 100 || style.Width != 200 || style.Height != 100 {
		t.Errorf("default placement = %+v", style)
	}
	if style.Opacity != 1 || !style.Visible || style.Locked {
		t.Errorf("default flags = %+v", style)
	}
	if element.Pricing.BasePrice != 1.5 || element.Pricing.Complexity != designdomain.ComplexitySimple || element.Pricing.TimeEstimate != 5 {
		t.Errorf("text pricing defaults = %+v", element.Pricing)
	}
	content, ok := element.Content.(designdomain.TextContent)
	if !ok || content.Text != "Texto personalizado" {
		t.Errorf("default content = %#v", element.Content)
	}

	selected, ok := engine.Selected()
	if !ok || selected.ID != element.ID {
		t.Errorf("new element not selected")
	}
}

func TestAddElementConfiguredDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.Elements = map[string]config.ElementDefaultConfig{
		"text": {BasePrice: 4.25, Complexity: "medium"},
	}
	engine := newTestEngine(t, cfg)

	element, err := engine.AddElement(context.Background(), designdomain.ElementTypeText, AddOptions{})
	if err != nil {
		t.Fatalf("AddElement: %v", err)
	}
	if element.Pricing.BasePrice != 4.25 || element.Pricing.Complexity != designdomain.ComplexityMedium {
		t.Errorf("configured defaults not applied: %+v", element.Pricing)
	}
	// unset override fields keep the shipped value
	if element.Pricing.TimeEstimate != 5 {
		t.Errorf("time estimate = %d, want shipped 5", element.Pricing.TimeEstimate)
	}
}

func TestUpdateElementPricingPatch(t *testing.T) {
	engine := defaultEngine(t)
	ctx := context.Background()

	element, _ := engine.AddElement(ctx, designdomain.ElementTypeText, AddOptions{})

	patched := designdomain.ElementPricing{BasePrice: 9, Complexity: designdomain.ComplexityComplex, TimeEstimate: 30}
	if err := engine.UpdateElement(ctx, element.ID, ElementPatch{Pricing: &patched}); err != nil {
		t.Fatalf("UpdateElement: %v", err)
	}
	if engine.Elements()[0].Pricing != patched {
		t.Errorf("pricing = %+v, want %+v", engine.Elements()[0].Pricing, patched)
	}
}

func TestAddElementZIndexStacksUpward(t *testing.T) {
	engine := defaultEngine(t)
	ctx := context.Background()

	first, _ := engine.AddElement(ctx, designdomain.ElementTypeText, AddOptions{})
	second, _ := engine.AddElement(ctx, designdomain.ElementTypeShape, AddOptions{})

	if first.Style.ZIndex != 0 || second.Style.ZIndex != 1 {
		t.Errorf("z-indexes = %d, %d; want 0, 1", first.Style.ZIndex, second.Style.ZIndex)
	}
}

func TestUpdateElementPatch(t *testing.T) {
	engine := defaultEngine(t)
	ctx := context.Background()

	element, _ := engine.AddElement(ctx, designdomain.ElementTypeText, AddOptions{})

	x := 250.0
	hidden := false
	if err := engine.UpdateElement(ctx, element.ID, ElementPatch{X: &x, Visible: &hidden}); err != nil {
		t.Fatalf("UpdateElement: %v", err)
	}

	updated := engine.Elements()[0]
	if updated.Style.X != 250 {
		t.Errorf("x = %v, want 250", updated.Style.X)
	}
	if updated.Style.Visible {
		t.Error("visible not patched")
	}
	// untouched fields keep their values
	if updated.Style.Y != 100 || updated.Style.Width != 200 {
		t.Errorf("unpatched fields changed: %+v", updated.Style)
	}
}

func TestDeleteElementClearsSelection(t *testing.T) {
	engine := defaultEngine(t)
	ctx := context.Background()

	element, _ := engine.AddElement(ctx, designdomain.ElementTypeText, AddOptions{})
	if err := engine.DeleteElement(ctx, element.ID); err != nil {
		t.Fatalf("DeleteElement: %v", err)
	}

	if len(engine.Elements()) != 0 {
		t.Fatalf("elements = %d, want 0", len(engine.Elements()))
	}
	if _, ok := engine.Selected(); ok {
		t.Error("selection survived delete")
	}
}

func TestDuplicateElementOffsetAndStacking(t *testing.T) {
	engine := defaultEngine(t)
	ctx := context.Background()

	original, _ := engine.AddElement(ctx, designdomain.ElementTypeShape, AddOptions{X: 40, Y: 60})

	copyElement, err := engine.DuplicateElement(ctx, original.ID)
	if err != nil {
		t.Fatalf("DuplicateElement: %v", err)
	}

	if copyElement.ID == original.ID || copyElement.ID == "" {
		t.Errorf("duplicate ID = %q", copyElement.ID)
	}
	if copyElement.Style.X != 60 || copyElement.Style.Y != 80 {
		t.Errorf("duplicate offset = (%v, %v), want (60, 80)", copyElement.Style.X, copyElement.Style.Y)
	}
	if copyElement.Style.ZIndex != 1 {
		t.Errorf("duplicate z-index = %d, want 1", copyElement.Style.ZIndex)
	}
	if selected, _ := engine.Selected(); selected.ID != copyElement.ID {
		t.Error("duplicate not selected")
	}
	if engine.Elements()[0].Style.X != 40 {
		t.Error("original moved")
	}
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	engine := defaultEngine(t)
	ctx := context.Background()

	engine.AddElement(ctx, designdomain.ElementTypeText, AddOptions{})
	before := len(engine.Elements())

	x := 1.0
	if err := engine.UpdateElement(ctx, "element-missing", ElementPatch{X: &x}); err != nil {
		t.Fatalf("UpdateElement: %v", err)
	}
	if err := engine.DeleteElement(ctx, "element-missing"); err != nil {
		t.Fatalf("DeleteElement: %v", err)
	}
	if _, err := engine.DuplicateElement(ctx, "element-missing"); err != nil {
		t.Fatalf("DuplicateElement: %v", err)
	}

	if len(engine.Elements()) != before {
		t.Errorf("elements = %d, want %d", len(engine.Elements()), before)
	}
	// no-ops must not pollute history
	if err := engine.Undo(ctx); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if len(engine.Elements()) != 0 {
		t.Error("no-op recorded a history entry")
	}
}

func TestUndoRedoSequence(t *testing.T) {
	engine := defaultEngine(t)
	ctx := context.Background()

	first, _ := engine.AddElement(ctx, designdomain.ElementTypeText, AddOptions{})
	engine.AddElement(ctx, designdomain.ElementTypeShape, AddOptions{})

	if err := engine.Undo(ctx); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := engine.Elements(); len(got) != 1 || got[0].ID != first.ID {
		t.Fatalf("after first undo: %d elements", len(got))
	}

	if err := engine.Undo(ctx); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if len(engine.Elements()) != 0 {
		t.Fatalf("after second undo: %d elements", len(engine.Elements()))
	}

	// undo past the beginning is a no-op
	if err := engine.Undo(ctx); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if len(engine.Elements()) != 0 {
		t.Error("undo on empty history changed state")
	}

	if err := engine.Redo(ctx); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if got := engine.Elements(); len(got) != 1 || got[0].ID != first.ID {
		t.Fatalf("after redo: %d elements", len(got))
	}
}

func TestMutationClearsRedo(t *testing.T) {
	engine := defaultEngine(t)
	ctx := context.Background()

	engine.AddElement(ctx, designdomain.ElementTypeText, AddOptions{})
	engine.Undo(ctx)
	if !engine.CanRedo() {
		t.Fatal("expected redo available after undo")
	}

	engine.AddElement(ctx, designdomain.ElementTypeShape, AddOptions{})
	if engine.CanRedo() {
		t.Error("redo survived a new mutation")
	}
}

func TestHistoryCapacityEvictsOldest(t *testing.T) {
	cfg := config.Default()
	cfg.History.Capacity = 3
	engine := newTestEngine(t, cfg)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		engine.AddElement(ctx, designdomain.ElementTypeText, AddOptions{})
	}

	undos := 0
	for engine.CanUndo() {
		if err := engine.Undo(ctx); err != nil {
			t.Fatalf("Undo: %v", err)
		}
		undos++
	}

	if undos != 3 {
		t.Errorf("undo steps = %d, want 3", undos)
	}
	// the two oldest states were evicted, so we land on 2 elements
	if len(engine.Elements()) != 2 {
		t.Errorf("elements after full undo = %d, want 2", len(engine.Elements()))
	}
}

func TestRecomputeAfterMutation(t *testing.T) {
	engine := defaultEngine(t)
	ctx := context.Background()

	area := areadomain.CustomizationArea{
		ID: "area-front", Name: "Frente",
		X: 0, Y: 0, Width: 100, Height: 100,
		IsRelativeCoordinates: true,
		Pricing: areadomain.AreaPricing{
			BasePrice:            5,
			PricePerElement:      2,
			ComplexityMultiplier: areadomain.ComplexityMultiplier{Simple: 1, Medium: 1.5, Complex: 2},
		},
	}
	if err := engine.SetAreas(ctx, []areadomain.CustomizationArea{area}); err != nil {
		t.Fatalf("SetAreas: %v", err)
	}
	if engine.TotalPrice() != 5 {
		t.Fatalf("empty design total = %v, want area fee 5", engine.TotalPrice())
	}

	engine.AddElement(ctx, designdomain.ElementTypeText, AddOptions{})
	if engine.TotalPrice() != 7 {
		t.Errorf("total = %v, want 7", engine.TotalPrice())
	}

	engine.Undo(ctx)
	if engine.TotalPrice() != 5 {
		t.Errorf("total after undo = %v, want 5", engine.TotalPrice())
	}
}

func TestPriceEventPublished(t *testing.T) {
	engine := defaultEngine(t)
	ctx := context.Background()

	var totals []float64
	engineDispatcherSubscribe(engine, func(event events.Event) {
		if event.Type == events.EventPriceRecomputed {
			totals = append(totals, event.Payload.(events.PricePayload).Total)
		}
	})

	engine.AddElement(ctx, designdomain.ElementTypeText, AddOptions{})
	if len(totals) != 1 {
		t.Fatalf("price events = %d, want 1", len(totals))
	}
	// no areas configured, so the element's own base price applies
	if totals[0] != 1.5 {
		t.Errorf("published total = %v, want 1.5", totals[0])
	}
}

func engineDispatcherSubscribe(e *Engine, listener events.Listener) {
	e.dispatcher.Subscribe(listener)
}

func TestSaveAndLoadDocument(t *testing.T) {
	engine := defaultEngine(t)
	ctx := context.Background()

	engine.AddElement(ctx, designdomain.ElementTypeText, AddOptions{})
	engine.AddElement(ctx, designdomain.ElementTypeShape, AddOptions{X: 300, Y: 200})

	doc := engine.SaveDocument(template.Metadata{ProductID: "prod-1"})
	if doc.Metadata.CreatedAt != testTime {
		t.Errorf("created at = %v, want %v", doc.Metadata.CreatedAt, testTime)
	}
	if len(doc.Elements) != 2 {
		t.Fatalf("saved elements = %d, want 2", len(doc.Elements))
	}
	if doc.TotalPrice != engine.TotalPrice() {
		t.Errorf("saved total = %v, want %v", doc.TotalPrice, engine.TotalPrice())
	}

	// saved elements must not alias live state
	doc.Elements[0].Style.X = 999
	if engine.Elements()[0].Style.X == 999 {
		t.Error("save payload aliases editor state")
	}

	fresh := defaultEngine(t)
	if err := fresh.LoadDesign(ctx, doc); err != nil {
		t.Fatalf("LoadDesign: %v", err)
	}
	if len(fresh.Elements()) != 2 {
		t.Fatalf("loaded elements = %d, want 2", len(fresh.Elements()))
	}
	if fresh.CanUndo() {
		t.Error("load did not reset history")
	}
}

func TestLoadDesignDefaultsCanvas(t *testing.T) {
	engine := defaultEngine(t)

	if err := engine.LoadDesign(context.Background(), template.DesignDocument{}); err != nil {
		t.Fatalf("LoadDesign: %v", err)
	}
	if engine.Canvas() != geometry.StandardCanvasSize {
		t.Errorf("canvas = %+v, want standard", engine.Canvas())
	}
}

func TestSetCanvasSizeRejectsInvalid(t *testing.T) {
	engine := defaultEngine(t)

	err := engine.SetCanvasSize(context.Background(), geometry.CanvasSize{Width: -1, Height: 600})
	if err == nil {
		t.Fatal("expected error for negative width")
	}
}
