// Package render defines the rendering contracts shared by the engine and
// its renderers, plus the pure mapping from a document value to the visual
// document consumed by previews, print views and exporters.
package render

import (
	"context"

	"github.com/modo-caracas/actagen/pkg/acta"
	"github.com/modo-caracas/actagen/pkg/forms"
)

// Renderer converts form schemas and visual documents into a byte surface
// (HTML today; the contract leaves room for others).
type Renderer interface {
	Name() string
	ContentType() string

	// RenderForm draws the editable form for one kind, including current
	// values, line-item rows and inline validation errors.
	RenderForm(ctx context.Context, form forms.Form, spec acta.Spec, opts Options) ([]byte, error)

	// RenderVisual draws a visual document. With opts.Print set the output
	// hides interactive chrome and pins the kind's page margins.
	RenderVisual(ctx context.Context, visual VisualDocument, opts Options) ([]byte, error)
}
