// Package actagen generates equipment custody documents ("actas") for
// delivery and dispatch workflows: schema-driven forms, Spanish-language
// validation, HTML previews, and letter-landscape PDF exports.
package actagen

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/modo-caracas/actagen/pkg/acta"
	"github.com/modo-caracas/actagen/pkg/export"
	"github.com/modo-caracas/actagen/pkg/orchestrator"
	"github.com/modo-caracas/actagen/pkg/session"
)

// Kind selects which acta variant a session produces.
type Kind = acta.Kind

const (
	// KindEntrega is the equipment delivery acta.
	KindEntrega = acta.KindEntrega
	// KindSalida is the equipment dispatch acta.
	KindSalida = acta.KindSalida
)

// Document is a validated, immutable acta ready for rendering and export.
type Document = acta.Document

// File is an exported artifact with its filename and content type.
type File = export.File

// Session is the mutable editing state for one acta kind.
type Session = session.Session

// ParseKind maps a wire identifier ("entrega", "salida") to a Kind.
func ParseKind(raw string) (Kind, error) {
	return acta.ParseKind(raw)
}

// New exposes the orchestrator constructor from the top-level module.
func New(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewSession starts an editing session for one kind using the default
// pipeline: embedded schema, htmldoc renderer, PDF exporter.
func NewSession(kind Kind, options ...orchestrator.Option) (*Session, error) {
	return orchestrator.New(options...).Session(kind)
}

// ExportPDF validates the session's preview and produces the downloadable
// PDF with its derived filename.
func ExportPDF(ctx context.Context, sess *Session, options ...orchestrator.Option) (File, error) {
	return orchestrator.New(options...).Export(ctx, sess)
}

// WithExporter forwards a custom exporter to the orchestrator.
func WithExporter(exporter export.Exporter) orchestrator.Option {
	return orchestrator.WithExporter(exporter)
}

// WithThemeConfig forwards a go-theme renderer config to the default HTML
// renderer so chrome classes can be swapped without new templates.
func WithThemeConfig(cfg *theme.RendererConfig) orchestrator.Option {
	return orchestrator.WithThemeConfig(cfg)
}

// WithLogoMarkup forwards institution logo markup to the default HTML
// renderer. The markup is sanitized before use.
func WithLogoMarkup(markup string) orchestrator.Option {
	return orchestrator.WithLogoMarkup(markup)
}
