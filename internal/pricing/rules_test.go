package pricing

import (
	"testing"

	designdomain "github.com/smallbiznis/atelier/internal/design/domain"
)

func shapeElement(id, fill, stroke string) designdomain.DesignElement {
	return designdomain.DesignElement{
		ID:   id,
		Type: designdomain.ElementTypeShape,
		Content: designdomain.ShapeContent{
			Shape: designdomain.ShapeRectangle, FillColor: fill, StrokeColor: stroke, StrokeWidth: 2,
		},
		Style: designdomain.ElementStyle{
			X: 10, Y: 10, Width: 100, Height: 100, Opacity: 1, Visible: true,
		},
	}
}

func TestQuoteDesignComposition(t *testing.T) {
	text1 := textElement("t1", 0, 0, 100, 50, designdomain.ComplexitySimple)
	text2 := textElement("t2", 0, 0, 100, 50, designdomain.ComplexitySimple)
	text2.Content = designdomain.TextContent{Text: "x", Color: "#111111"}
	image := designdomain.DesignElement{
		ID:   "i1",
		Type: designdomain.ElementTypeImage,
		Content: designdomain.ImageContent{
			Src: "logo.png", Filters: map[string]string{"sepia": "0.4"},
		},
		Style: designdomain.ElementStyle{X: 0, Y: 0, Width: 100, Height: 100, Opacity: 1, Visible: true},
	}
	shape := shapeElement("s1", "#222222", "#333333")

	quote := QuoteDesign([]designdomain.DesignElement{text1, text2, image, shape}, 1, DefaultRules())

	// 2 texts @2.50 + image @5.00 + shape @1.75 = 11.75
	// 4 unique colors: +11.75*0.15*2 = 3.525
	// image filters: +3.00 special effects
	if !almostEqual(quote.CustomPrice, 18.28) {
		t.Errorf("custom price = %v, want 18.28", quote.CustomPrice)
	}
	if !almostEqual(quote.Breakdown.TextElements, 5.0) {
		t.Errorf("text line = %v, want 5.0", quote.Breakdown.TextElements)
	}
	if !almostEqual(quote.Breakdown.ColorComplexity, 3.525) {
		t.Errorf("color line = %v, want 3.525", quote.Breakdown.ColorComplexity)
	}
	if !almostEqual(quote.Breakdown.SpecialEffects, 3.0) {
		t.Errorf("effects line = %v, want 3.0", quote.Breakdown.SpecialEffects)
	}
	if quote.ComplexityScore != 83 {
		t.Errorf("complexity score = %d, want 83", quote.ComplexityScore)
	}
}

func TestQuoteDesignQuantityDiscount(t *testing.T) {
	elements := []designdomain.DesignElement{
		textElement("t1", 0, 0, 100, 50, designdomain.ComplexitySimple),
	}

	quote := QuoteDesign(elements, 5, DefaultRules())
	if !almostEqual(quote.CustomPrice, 2.30) {
		t.Errorf("5+ units price = %v, want 2.30", quote.CustomPrice)
	}
	if !almostEqual(quote.Breakdown.QuantityDiscount, -0.20) {
		t.Errorf("5+ units discount = %v, want -0.20", quote.Breakdown.QuantityDiscount)
	}

	quote = QuoteDesign(elements, 10, DefaultRules())
	if !almostEqual(quote.CustomPrice, 2.13) {
		t.Errorf("10+ units price = %v, want 2.13", quote.CustomPrice)
	}
}

func TestQuoteDesignOpacityTriggersEffects(t *testing.T) {
	faded := shapeElement("s1", "#000000", "")
	faded.Style.Opacity = 0.5

	quote := QuoteDesign([]designdomain.DesignElement{faded}, 1, DefaultRules())
	if !almostEqual(quote.Breakdown.SpecialEffects, 3.0) {
		t.Errorf("effects line = %v, want 3.0", quote.Breakdown.SpecialEffects)
	}
}

func TestRulesForCategory(t *testing.T) {
	premium := RulesForCategory("premium")
	if premium.BaseComplexity != 5.00 || premium.TextElementPrice != 4.00 {
		t.Errorf("premium rules = %+v", premium)
	}

	laser := RulesForCategory("laser")
	if laser.ColorComplexityMultiplier != 0.05 {
		t.Errorf("laser color multiplier = %v, want 0.05", laser.ColorComplexityMultiplier)
	}

	if got := RulesForCategory("unknown"); got != DefaultRules() {
		t.Errorf("unknown category = %+v, want defaults", got)
	}
}

func TestQuoteTotal(t *testing.T) {
	elements := []designdomain.DesignElement{
		textElement("t1", 0, 0, 100, 50, designdomain.ComplexitySimple),
	}

	total := QuoteTotal(10, elements, 2, "")
	if !almostEqual(total.BasePrice, 20) {
		t.Errorf("base = %v, want 20", total.BasePrice)
	}
	if !almostEqual(total.CustomPrice, 2.50) {
		t.Errorf("custom = %v, want 2.50", total.CustomPrice)
	}
	if !almostEqual(total.TotalPrice, 22.50) {
		t.Errorf("total = %v, want 22.50", total.TotalPrice)
	}
	if total.Savings != 0 {
		t.Errorf("savings = %v, want 0", total.Savings)
	}
}
