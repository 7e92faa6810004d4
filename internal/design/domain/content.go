package domain

import (
	"encoding/json"
	"fmt"
)

// Content is the type-specific payload of a design element. It is a
// closed union: exactly one variant per element type, matched
// exhaustively by the export and pricing paths.
type Content interface {
	ElementType() ElementType
	clone() Content
}

// TextContent is the payload of a text element.
type TextContent struct {
	Text       string  `json:"text"`
	FontSize   float64 `json:"font_size"`
	FontFamily string  `json:"font_family"`
	Color      string  `json:"color"`
}

func (TextContent) ElementType() ElementType { return ElementTypeText }
func (c TextContent) clone() Content         { return c }

// ImageContent is the payload of an image element. Filters are opaque
// renderer hints; the engine only checks for their presence.
type ImageContent struct {
	Src     string            `json:"src,omitempty"`
	Filters map[string]string `json:"filters,omitempty"`
}

func (ImageContent) ElementType() ElementType { return ElementTypeImage }

func (c ImageContent) clone() Content {
	if c.Filters == nil {
		return c
	}
	filters := make(map[string]string, len(c.Filters))
	for k, v := range c.Filters {
		filters[k] = v
	}
	c.Filters = filters
	return c
}

// ShapeContent is the payload of a shape element.
type ShapeContent struct {
	Shape       ShapeKind `json:"shape"`
	FillColor   string    `json:"fill_color"`
	StrokeColor string    `json:"stroke_color"`
	StrokeWidth float64   `json:"stroke_width"`
}

func (ShapeContent) ElementType() ElementType { return ElementTypeShape }
func (c ShapeContent) clone() Content         { return c }

// BackgroundContent is the payload of a background element.
type BackgroundContent struct {
	Color string `json:"color"`
}

func (BackgroundContent) ElementType() ElementType { return ElementTypeBackground }
func (c BackgroundContent) clone() Content         { return c }

// elementJSON is the wire form of DesignElement; content is decoded
// against the discriminator in Type.
type elementJSON struct {
	ID      string          `json:"id"`
	Type    ElementType     `json:"type"`
	Content json.RawMessage `json:"content"`
	Style   ElementStyle    `json:"style"`
	Pricing ElementPricing  `json:"pricing"`
}

// MarshalJSON encodes the element with its content inline.
func (e DesignElement) MarshalJSON() ([]byte, error) {
	var content json.RawMessage
	if e.Content != nil {
		encoded, err := json.Marshal(e.Content)
		if err != nil {
			return nil, err
		}
		content = encoded
	}
	return json.Marshal(elementJSON{
		ID:      e.ID,
		Type:    e.Type,
		Content: content,
		Style:   e.Style,
		Pricing: e.Pricing,
	})
}

// UnmarshalJSON decodes the content variant selected by the type tag.
func (e *DesignElement) UnmarshalJSON(data []byte) error {
	var raw elementJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	content, err := decodeContent(raw.Type, raw.Content)
	if err != nil {
		return err
	}

	e.ID = raw.ID
	e.Type = raw.Type
	e.Content = content
	e.Style = raw.Style
	e.Pricing = raw.Pricing
	return nil
}

func decodeContent(elementType ElementType, data json.RawMessage) (Content, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	switch elementType {
	case ElementTypeText:
		var content TextContent
		if err := json.Unmarshal(data, &content); err != nil {
			return nil, err
		}
		return content, nil
	case ElementTypeImage:
		var content ImageContent
		if err := json.Unmarshal(data, &content); err != nil {
			return nil, err
		}
		return content, nil
	case ElementTypeShape:
		var content ShapeContent
		if err := json.Unmarshal(data, &content); err != nil {
			return nil, err
		}
		return content, nil
	case ElementTypeBackground:
		var content BackgroundContent
		if err := json.Unmarshal(data, &content); err != nil {
			return nil, err
		}
		return content, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownElementType, elementType)
	}
}
