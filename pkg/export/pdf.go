package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/modo-caracas/actagen/pkg/render"
)

// PDFOption customises the PDF exporter.
type PDFOption func(*PDFExporter)

// WithLogoJPEG supplies the institution logo as JPEG bytes. The logo is
// embedded in the header band at the configured capture scale.
func WithLogoJPEG(data []byte) PDFOption {
	return func(e *PDFExporter) {
		if len(data) > 0 {
			e.logoJPEG = data
		}
	}
}

// PDFExporter draws a visual document onto a fixed-geometry PDF page.
type PDFExporter struct {
	logoJPEG []byte
}

// NewPDF constructs a PDF exporter applying any provided options.
func NewPDF(options ...PDFOption) *PDFExporter {
	e := &PDFExporter{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// ContentType reports the MIME type of exported files.
func (e *PDFExporter) ContentType() string {
	return "application/pdf"
}

// Export renders the visual document with the given page configuration. The
// output is deterministic for identical inputs: the creation date is pinned
// so byte-for-byte comparisons hold.
func (e *PDFExporter) Export(ctx context.Context, visual render.VisualDocument, cfg PageConfig) (File, error) {
	if err := ctx.Err(); err != nil {
		return File{}, err
	}

	orientation := "L"
	if cfg.Orientation == "portrait" {
		orientation = "P"
	}
	size := "Letter"
	if cfg.Size != "" && cfg.Size != "letter" {
		size = cfg.Size
	}

	top, right, bottom, left := cfg.MarginsMM[0], cfg.MarginsMM[1], cfg.MarginsMM[2], cfg.MarginsMM[3]

	pdf := fpdf.New(orientation, "mm", size, "")
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	pdf.SetModificationDate(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	pdf.SetMargins(left, top, right)
	pdf.SetAutoPageBreak(true, bottom)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, pageH := pdf.GetPageSize()
	usable := pageW - left - right

	e.drawHeaderBand(pdf, tr, visual, cfg, left, usable)
	e.drawFactTable(pdf, tr, visual, usable)
	e.drawItemTable(pdf, tr, visual, usable)
	e.drawLegalParagraph(pdf, tr, visual, usable)
	e.drawSignatures(pdf, tr, visual, left, usable, pageH, bottom)

	if err := pdf.Error(); err != nil {
		return File{}, fmt.Errorf("export: draw pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return File{}, fmt.Errorf("export: write pdf: %w", err)
	}
	return File{ContentType: e.ContentType(), Data: buf.Bytes()}, nil
}

func (e *PDFExporter) drawHeaderBand(pdf *fpdf.Fpdf, tr func(string) string, visual render.VisualDocument, cfg PageConfig, left, usable float64) {
	const bandH = 18.0
	y := pdf.GetY()
	pdf.Rect(left, y, usable, bandH, "D")

	textX := left + 4
	if len(e.logoJPEG) > 0 {
		opts := fpdf.ImageOptions{ImageType: "JPG"}
		pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(e.logoJPEG))
		// Negative extents request dpi placement: 96 css-px/inch times the
		// capture scale reproduces the 2x raster density of the original.
		dpi := -96.0 * float64(cfg.Scale)
		pdf.ImageOptions("logo", left+3, y+3, dpi, dpi, false, opts, 0, "")
		textX = left + 32
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(textX, y+4)
	pdf.CellFormat(usable-(textX-left)-2, 6, tr(visual.Title), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(textX, y+10)
	pdf.CellFormat(usable-(textX-left)-2, 5, tr(visual.Institution), "", 0, "L", false, 0, "")

	pdf.SetY(y + bandH + 6)
}

func (e *PDFExporter) drawFactTable(pdf *fpdf.Fpdf, tr func(string) string, visual render.VisualDocument, usable float64) {
	labelW := usable * 0.25
	for _, fact := range visual.Facts {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(labelW, 7, tr(fact.Label), "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(usable-labelW, 7, tr(fact.Value), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

func (e *PDFExporter) drawItemTable(pdf *fpdf.Fpdf, tr func(string) string, visual render.VisualDocument, usable float64) {
	widths := [3]float64{usable * 0.35, usable * 0.45, usable * 0.20}

	pdf.SetFont("Helvetica", "B", 9)
	for i, column := range visual.Columns {
		ln := 0
		if i == len(visual.Columns)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], 7, tr(column), "1", ln, "C", false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range visual.Rows {
		for i, cell := range row {
			ln := 0
			if i == len(row)-1 {
				ln = 1
			}
			pdf.CellFormat(widths[i], 7, tr(cell), "1", ln, "C", false, 0, "")
		}
	}
	pdf.Ln(5)
}

func (e *PDFExporter) drawLegalParagraph(pdf *fpdf.Fpdf, tr func(string) string, visual render.VisualDocument, usable float64) {
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(usable, 5, tr(visual.LegalText), "", "J", false)
}

func (e *PDFExporter) drawSignatures(pdf *fpdf.Fpdf, tr func(string) string, visual render.VisualDocument, left, usable, pageH, bottom float64) {
	const gap = 12.0
	colW := (usable - 2*gap) / 3

	y := pdf.GetY() + 25
	if limit := pageH - bottom - 10; y > limit {
		y = limit
	}

	for i, label := range visual.Signatures {
		style := ""
		if i == len(visual.Signatures)-1 {
			// The area-responsible label is underlined on the original acta.
			style = "U"
		}
		pdf.SetFont("Helvetica", style, 9)
		x := left + float64(i)*(colW+gap)
		pdf.SetXY(x, y)
		pdf.CellFormat(colW, 6, tr(label), "T", 0, "C", false, 0, "")
	}
}
