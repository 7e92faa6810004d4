package template

import (
	"path/filepath"
	"testing"
	"time"

	designdomain "github.com/smallbiznis/atelier/internal/design/domain"
	"github.com/smallbiznis/atelier/internal/geometry"
)

func sampleDocument() DesignDocument {
	return DesignDocument{
		Elements: []designdomain.DesignElement{
			{
				ID:      "element-1",
				Type:    designdomain.ElementTypeText,
				Content: designdomain.TextContent{Text: "Hola", FontSize: 24, FontFamily: "Arial", Color: "#000000"},
				Style:   designdomain.ElementStyle{X: 100, Y: 100, Width: 200, Height: 100, Opacity: 1, Visible: true},
				Pricing: designdomain.ElementPricing{BasePrice: 1.5, Complexity: designdomain.ComplexitySimple, TimeEstimate: 5},
			},
		},
		CanvasSize: geometry.StandardCanvasSize,
		TotalPrice: 1.5,
		Metadata: Metadata{
			ProductID: "prod-1",
			CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	original := sampleDocument()

	data, err := original.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if len(decoded.Elements) != 1 {
		t.Fatalf("elements = %d, want 1", len(decoded.Elements))
	}
	element := decoded.Elements[0]
	if element.ID != "element-1" || element.Type != designdomain.ElementTypeText {
		t.Errorf("element = %+v", element)
	}
	content, ok := element.Content.(designdomain.TextContent)
	if !ok || content.Text != "Hola" {
		t.Errorf("content = %#v", element.Content)
	}
	if decoded.CanvasSize != geometry.StandardCanvasSize {
		t.Errorf("canvas = %+v", decoded.CanvasSize)
	}
	if !decoded.Metadata.CreatedAt.Equal(original.Metadata.CreatedAt) {
		t.Errorf("created at = %v", decoded.Metadata.CreatedAt)
	}
}

func TestDocumentFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "design.json")

	if err := sampleDocument().WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.TotalPrice != 1.5 {
		t.Errorf("total = %v, want 1.5", loaded.TotalPrice)
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	if _, err := Decode([]byte("{not json")); err == nil {
		t.Fatal("expected decode error")
	}
}
