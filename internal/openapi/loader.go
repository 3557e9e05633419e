// Package openapi loads the embedded OpenAPI document describing the acta
// operations and lowers request schemas into forms.Form values.
package openapi

import (
	_ "embed"
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed actas.yaml
var embeddedDocument []byte

// EmbeddedDocument returns the raw bytes of the bundled schema document.
func EmbeddedDocument() []byte {
	out := make([]byte, len(embeddedDocument))
	copy(out, embeddedDocument)
	return out
}

// Load parses and validates an OpenAPI document from raw bytes.
func Load(ctx context.Context, data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}
	return doc, nil
}

// LoadEmbedded parses the bundled actas document.
func LoadEmbedded(ctx context.Context) (*openapi3.T, error) {
	return Load(ctx, embeddedDocument)
}
