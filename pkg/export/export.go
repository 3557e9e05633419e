// Package export turns visual documents into downloadable files. The PDF
// exporter is the default implementation; the Exporter contract keeps the
// session and server decoupled from the concrete backend.
package export

import (
	"context"

	"github.com/modo-caracas/actagen/pkg/acta"
	"github.com/modo-caracas/actagen/pkg/render"
)

// Capture constants shared by every page configuration. Scale is the raster
// density applied when embedding bitmap assets (logo), quality the JPEG
// compression used for them.
const (
	CaptureScale = 2
	JPEGQuality  = 0.98
)

// PageConfig fixes the page geometry of one export. Margins follow the
// [top, right, bottom, left] order in millimeters.
type PageConfig struct {
	MarginsMM   [4]float64
	Size        string
	Orientation string
	Scale       int
	Quality     float64
}

// PageConfigFor derives the export configuration from a kind specification.
func PageConfigFor(spec acta.Spec) PageConfig {
	return PageConfig{
		MarginsMM:   spec.Page.MarginsMM,
		Size:        spec.Page.Size,
		Orientation: spec.Page.Orientation,
		Scale:       CaptureScale,
		Quality:     JPEGQuality,
	}
}

// File is a finished export artifact. Name is filled by the caller that
// knows the source document (see acta.Spec.Filename).
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Exporter produces a file from a visual document and a page configuration.
type Exporter interface {
	ContentType() string
	Export(ctx context.Context, visual render.VisualDocument, cfg PageConfig) (File, error)
}
