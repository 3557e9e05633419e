package render

import (
	"strconv"

	"github.com/modo-caracas/actagen/pkg/acta"
)

// Fact is one labelled row of the header fact table.
type Fact struct {
	Label string
	Value string
}

// VisualDocument is the rendered, fixed-layout representation of a document
// value. Identical documents always produce identical visual documents; the
// struct is plain data so every surface (HTML preview, print, PDF) draws
// from the same source.
type VisualDocument struct {
	Kind        acta.Kind
	Title       string
	Institution string
	// LogoMarkup holds sanitized markup for the institution logo. Empty when
	// no logo is configured; builders leave it blank and hosts fill it in.
	LogoMarkup string
	Facts      []Fact
	Columns    [3]string
	Rows       [][3]string
	LegalText  string
	Signatures [3]string
}

var itemColumns = [3]string{"SERIE O REFERENCIA DEL EQUIPO", "DESCRIPCIÓN", "CANTIDAD"}

// BuildVisual maps a document value to its visual document. Pure and
// deterministic: no clock, no configuration, no side effects.
func BuildVisual(doc acta.Document) (VisualDocument, error) {
	spec, err := acta.SpecFor(doc.Kind)
	if err != nil {
		return VisualDocument{}, err
	}

	facts := []Fact{
		{Label: "Fecha:", Value: acta.FormatDate(doc.Header.Date)},
		{Label: "Persona Asignada:", Value: doc.Header.AssignedTo},
		{Label: "Lugar:", Value: doc.Header.Location},
	}
	if spec.HasRoute {
		facts = append(facts,
			Fact{Label: "Origen:", Value: doc.Header.From},
			Fact{Label: "Destino:", Value: doc.Header.To},
		)
	}

	items := doc.Items()
	rows := make([][3]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, [3]string{
			item.SerialNumber,
			item.Description,
			strconv.Itoa(item.Quantity),
		})
	}

	return VisualDocument{
		Kind:        doc.Kind,
		Title:       spec.Title,
		Institution: spec.Institution,
		Facts:       facts,
		Columns:     itemColumns,
		Rows:        rows,
		LegalText:   spec.LegalText(doc.Header),
		Signatures:  spec.Signatures,
	}, nil
}
