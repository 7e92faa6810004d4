package pricing

import (
	"math"

	designdomain "github.com/smallbiznis/atelier/internal/design/domain"
)

// Rules tunes the complexity-based quote for a product category.
type Rules struct {
	BaseComplexity            float64 `json:"baseComplexity" yaml:"base_complexity"`
	TextElementPrice          float64 `json:"textElementPrice" yaml:"text_element_price"`
	ImageElementPrice         float64 `json:"imageElementPrice" yaml:"image_element_price"`
	ShapeElementPrice         float64 `json:"shapeElementPrice" yaml:"shape_element_price"`
	ColorComplexityMultiplier float64 `json:"colorComplexityMultiplier" yaml:"color_complexity_multiplier"`
	SizeMultiplier            float64 `json:"sizeMultiplier" yaml:"size_multiplier"`
	SpecialEffectsPrice       float64 `json:"specialEffectsPrice" yaml:"special_effects_price"`
}

// DefaultRules is the baseline tariff applied when no category override
// exists.
func DefaultRules() Rules {
	return Rules{
		BaseComplexity:            0,
		TextElementPrice:          2.50,
		ImageElementPrice:         5.00,
		ShapeElementPrice:         1.75,
		ColorComplexityMultiplier: 0.15,
		SizeMultiplier:            1.0,
		SpecialEffectsPrice:       3.00,
	}
}

// RulesForCategory overlays per-category adjustments on the default
// tariff. Unknown categories fall back to the defaults.
func RulesForCategory(slug string) Rules {
	rules := DefaultRules()
	switch slug {
	case "textil":
		rules.TextElementPrice = 3.00
		rules.ImageElementPrice = 6.00
		rules.SpecialEffectsPrice = 4.00
	case "sublimacion":
		// sublimation handles extra colors well
		rules.TextElementPrice = 2.00
		rules.ImageElementPrice = 4.50
		rules.ColorComplexityMultiplier = 0.10
	case "laser":
		// engraving is mostly monochrome
		rules.ShapeElementPrice = 2.50
		rules.SpecialEffectsPrice = 5.00
		rules.ColorComplexityMultiplier = 0.05
	case "premium":
		rules.BaseComplexity = 5.00
		rules.TextElementPrice = 4.00
		rules.ImageElementPrice = 8.00
		rules.SpecialEffectsPrice = 6.00
	}
	return rules
}

// QuoteBreakdown itemizes a complexity quote.
type QuoteBreakdown struct {
	TextElements     float64 `json:"textElements"`
	ImageElements    float64 `json:"imageElements"`
	ShapeElements    float64 `json:"shapeElements"`
	ColorComplexity  float64 `json:"colorComplexity"`
	SpecialEffects   float64 `json:"specialEffects"`
	SizeMultiplier   float64 `json:"sizeMultiplier"`
	QuantityDiscount float64 `json:"quantityDiscount"`
}

// Quote is the complexity-based surcharge for a design, independent of
// the area breakdown produced by Calculator.
type Quote struct {
	CustomPrice     float64        `json:"customPrice"`
	Breakdown       QuoteBreakdown `json:"breakdown"`
	ComplexityScore int            `json:"complexityScore"`
}

// TotalQuote folds the product base price and quantity into a Quote.
type TotalQuote struct {
	BasePrice       float64        `json:"basePrice"`
	CustomPrice     float64        `json:"customPrice"`
	TotalPrice      float64        `json:"totalPrice"`
	Savings         float64        `json:"savings"`
	Breakdown       QuoteBreakdown `json:"breakdown"`
	ComplexityScore int            `json:"complexityScore"`
}

// QuoteDesign prices a design by element composition: per-type rates,
// a surcharge per unique color beyond two, a flat special-effects fee,
// an optional size multiplier and a quantity discount. The returned
// complexity score is capped at 100.
func QuoteDesign(elements []designdomain.DesignElement, quantity int, rules Rules) Quote {
	customPrice := rules.BaseComplexity
	var breakdown QuoteBreakdown

	textCount := 0
	imageCount := 0
	shapeCount := 0
	colors := make(map[string]struct{})
	hasEffects := false

	for _, element := range elements {
		switch element.Type {
		case designdomain.ElementTypeText:
			textCount++
		case designdomain.ElementTypeImage:
			imageCount++
		case designdomain.ElementTypeShape:
			shapeCount++
		}

		for _, color := range elementColors(element) {
			if color != "" {
				colors[color] = struct{}{}
			}
		}
		if hasSpecialEffects(element) {
			hasEffects = true
		}
	}

	breakdown.TextElements = float64(textCount) * rules.TextElementPrice
	customPrice += breakdown.TextElements

	breakdown.ImageElements = float64(imageCount) * rules.ImageElementPrice
	customPrice += breakdown.ImageElements

	breakdown.ShapeElements = float64(shapeCount) * rules.ShapeElementPrice
	customPrice += breakdown.ShapeElements

	if len(colors) > 2 {
		breakdown.ColorComplexity = customPrice * rules.ColorComplexityMultiplier * float64(len(colors)-2)
		customPrice += breakdown.ColorComplexity
	}

	if hasEffects {
		breakdown.SpecialEffects = rules.SpecialEffectsPrice
		customPrice += breakdown.SpecialEffects
	}

	if rules.SizeMultiplier != 1.0 {
		breakdown.SizeMultiplier = customPrice * (rules.SizeMultiplier - 1)
		customPrice += breakdown.SizeMultiplier
	}

	switch {
	case quantity >= 10:
		discount := customPrice * 0.15
		breakdown.QuantityDiscount = -discount
		customPrice -= discount
	case quantity >= 5:
		discount := customPrice * 0.08
		breakdown.QuantityDiscount = -discount
		customPrice -= discount
	}

	score := textCount*10 + imageCount*20 + shapeCount*8 + len(colors)*5
	if hasEffects {
		score += 15
	}
	if score > 100 {
		score = 100
	}

	return Quote{
		CustomPrice:     math.Max(0, math.Round(customPrice*100)/100),
		Breakdown:       breakdown,
		ComplexityScore: score,
	}
}

// QuoteTotal combines the product base price with the design quote for
// the requested quantity.
func QuoteTotal(basePrice float64, elements []designdomain.DesignElement, quantity int, categorySlug string) TotalQuote {
	quote := QuoteDesign(elements, quantity, RulesForCategory(categorySlug))

	totalBase := basePrice * float64(quantity)
	return TotalQuote{
		BasePrice:       totalBase,
		CustomPrice:     quote.CustomPrice,
		TotalPrice:      totalBase + quote.CustomPrice,
		Savings:         math.Abs(quote.Breakdown.QuantityDiscount),
		Breakdown:       quote.Breakdown,
		ComplexityScore: quote.ComplexityScore,
	}
}

func elementColors(element designdomain.DesignElement) []string {
	switch content := element.Content.(type) {
	case designdomain.TextContent:
		return []string{content.Color}
	case designdomain.ShapeContent:
		return []string{content.FillColor, content.StrokeColor}
	case designdomain.BackgroundContent:
		return []string{content.Color}
	default:
		return nil
	}
}

func hasSpecialEffects(element designdomain.DesignElement) bool {
	if element.Style.Opacity < 1 {
		return true
	}
	if content, ok := element.Content.(designdomain.ImageContent); ok {
		return len(content.Filters) > 0
	}
	return false
}
