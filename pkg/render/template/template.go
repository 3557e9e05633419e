// Package template defines the engine seam renderers draw through,
// mirroring the github.com/goliatone/go-template contract so engines can be
// swapped without touching renderer code.
package template

import "io"

// TemplateRenderer is the engine contract. Render dispatches to
// RenderTemplate or RenderString depending on whether the argument names a
// template or carries inline content.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}
