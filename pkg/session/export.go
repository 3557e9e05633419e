package session

import (
	"context"
	"errors"

	"github.com/modo-caracas/actagen/pkg/export"
	"github.com/modo-caracas/actagen/pkg/render"
)

var (
	// ErrNothingToExport is returned when export or print is requested
	// before any successful submission. The condition is reported, never
	// swallowed.
	ErrNothingToExport = errors.New("session: no validated document to export")

	// ErrExportInFlight is returned when an export is requested while a
	// previous one is still running against the same snapshot.
	ErrExportInFlight = errors.New("session: export already in progress")
)

// Export runs the exporter against the current visual document using the
// kind's page geometry and names the file deterministically. Only one
// export may run at a time.
func (s *Session) Export(ctx context.Context, exporter export.Exporter) (export.File, error) {
	if exporter == nil {
		return export.File{}, errors.New("session: exporter is required")
	}
	if s.doc == nil || s.visual == nil {
		return export.File{}, ErrNothingToExport
	}
	if !s.exporting.CompareAndSwap(false, true) {
		return export.File{}, ErrExportInFlight
	}
	defer s.exporting.Store(false)

	file, err := exporter.Export(ctx, *s.visual, export.PageConfigFor(s.spec))
	if err != nil {
		return export.File{}, err
	}
	file.Name = s.spec.Filename(*s.doc)
	return file, nil
}

// PrintView renders the current visual document in its print variant:
// interactive chrome hidden, page margin rules pinned to the kind's export
// geometry.
func (s *Session) PrintView(ctx context.Context, renderer render.Renderer) ([]byte, error) {
	if renderer == nil {
		return nil, errors.New("session: renderer is required")
	}
	if s.visual == nil {
		return nil, ErrNothingToExport
	}
	return renderer.RenderVisual(ctx, *s.visual, render.Options{Print: true})
}
