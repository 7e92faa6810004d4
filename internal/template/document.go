// Package template defines the serialized design document: the complete
// editor state a frontend persists and reloads, including the price
// snapshot current at save time.
package template

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	areadomain "github.com/smallbiznis/atelier/internal/area/domain"
	designdomain "github.com/smallbiznis/atelier/internal/design/domain"
	"github.com/smallbiznis/atelier/internal/geometry"
	"github.com/smallbiznis/atelier/internal/pricing"
)

// Metadata identifies the product context a design belongs to.
type Metadata struct {
	ProductID  string    `json:"product_id,omitempty"`
	VariantID  string    `json:"variant_id,omitempty"`
	TemplateID string    `json:"template_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// DesignDocument is the full save payload. TotalPrice and PriceBreakdown
// are denormalized snapshots; the engine recomputes them on load.
type DesignDocument struct {
	Elements           []designdomain.DesignElement   `json:"elements"`
	CanvasSize         geometry.CanvasSize            `json:"canvas_size"`
	CustomizationAreas []areadomain.CustomizationArea `json:"customization_areas,omitempty"`
	TotalPrice         float64                        `json:"total_price"`
	PriceBreakdown     pricing.Breakdown              `json:"price_breakdown"`
	Metadata           Metadata                       `json:"metadata"`
}

// Decode parses a design document from JSON.
func Decode(data []byte) (DesignDocument, error) {
	var doc DesignDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return DesignDocument{}, fmt.Errorf("decode design document: %w", err)
	}
	return doc, nil
}

// Encode renders the document as indented JSON.
func (d DesignDocument) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode design document: %w", err)
	}
	return data, nil
}

// LoadFile reads and decodes a design document from disk.
func LoadFile(path string) (DesignDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DesignDocument{}, fmt.Errorf("read design document: %w", err)
	}
	return Decode(data)
}

// WriteFile encodes the document and writes it to disk.
func (d DesignDocument) WriteFile(path string) error {
	data, err := d.Encode()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
