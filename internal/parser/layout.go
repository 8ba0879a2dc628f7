package parser

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dgallion1/docchunk/internal/document"
)

// LayoutParser reads the JSON layout payload produced by the external
// document-structure extraction service: an ordered element list with
// heading levels, page numbers, and polygon geometry.
type LayoutParser struct{}

type layoutPayload struct {
	Elements []layoutElement `json:"elements"`
}

type layoutElement struct {
	Kind    string    `json:"kind"`
	Title   string    `json:"title,omitempty"`
	Level   int       `json:"level,omitempty"`
	Text    string    `json:"text,omitempty"`
	Page    int       `json:"page,omitempty"`
	Polygon []float64 `json:"polygon,omitempty"`
}

func (p *LayoutParser) Parse(r io.Reader, filename string) ([]document.Element, error) {
	var payload layoutPayload
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode layout json: %w", err)
	}

	elements := make([]document.Element, 0, len(payload.Elements))
	for i, el := range payload.Elements {
		switch el.Kind {
		case "heading":
			elements = append(elements, document.Heading(el.Title, el.Level))
		case "paragraph":
			elements = append(elements, document.Element{
				Type:    document.ElementParagraph,
				Text:    el.Text,
				Page:    el.Page,
				Polygon: el.Polygon,
			})
		default:
			return nil, fmt.Errorf("element %d: unknown kind %q", i, el.Kind)
		}
	}
	return elements, nil
}
