package acta

import (
	"fmt"
	"regexp"
	"strings"
)

// Page describes the export page geometry for one kind. Margins follow the
// [top, right, bottom, left] order in millimeters.
type Page struct {
	MarginsMM   [4]float64
	Size        string
	Orientation string
}

// Spec is the declarative per-kind configuration. The engine is a single
// form pipeline; everything that differs between the two actas lives here.
type Spec struct {
	Kind        Kind
	OperationID string
	Title       string
	Institution string
	// HasRoute marks kinds that carry origin/destination header fields.
	HasRoute bool
	// LegalTemplate interpolates header fields via {assignedTo}, {idNumber},
	// {from} and {to} placeholders.
	LegalTemplate string
	Signatures    [3]string
	Page          Page
}

const institutionName = "CORPORACIÓN MODO CARACAS, C.A"

var signatureLabels = [3]string{"Quien Entrega", "Quien recibe", "Responsable del Área"}

var specs = map[Kind]Spec{
	KindEntrega: {
		Kind:        KindEntrega,
		OperationID: "createActaEntrega",
		Title:       "ACTA DE ENTREGA DE EQUIPOS Y HERRAMIENTAS",
		Institution: institutionName,
		LegalTemplate: "Yo, {assignedTo} titular de la cédula de identidad No. {idNumber}, " +
			"declaro haber recibido mediante la presente Acta, los equipos mencionados en este documento " +
			"en perfectas condiciones de operatividad, los cuales me comprometo a cuidar y utilizar " +
			"únicamente en las actividades inherentes a las funciones que me sean asignadas, de igual " +
			"manera a devolverlos cuando me sean requeridos, en las mismas condiciones de operatividad " +
			"en que los estoy recibiendo, a tales efectos autorizo a la Corporación Modo Caracas a que " +
			"me descuente los equipos que me fueron asignados en caso de no devolverlos al momento que " +
			"me sean requeridos si no existiere una causa comprobable que lo justifique.",
		Signatures: signatureLabels,
		Page: Page{
			MarginsMM:   [4]float64{15, 20, 16, 21},
			Size:        "letter",
			Orientation: "landscape",
		},
	},
	KindSalida: {
		Kind:        KindSalida,
		OperationID: "createActaSalida",
		Title:       "ACTA DE SALIDA DE EQUIPOS Y HERRAMIENTAS",
		Institution: institutionName,
		HasRoute:    true,
		LegalTemplate: "Yo, {assignedTo} portador de la cédula de identidad {idNumber} autorizo la " +
			"salida de los equipos mencionados en este documento desde {from} hacia {to} y con mi " +
			"firma doy fe de que la persona asignada se hará cargo del traslado y cumplirá " +
			"responsablemente con esta tarea.",
		Signatures: signatureLabels,
		Page: Page{
			MarginsMM:   [4]float64{20, 23, 19, 24},
			Size:        "letter",
			Orientation: "landscape",
		},
	},
}

// SpecFor returns the specification for a kind.
func SpecFor(kind Kind) (Spec, error) {
	spec, ok := specs[kind]
	if !ok {
		return Spec{}, fmt.Errorf("acta: no spec for kind %q", kind)
	}
	return spec, nil
}

// Specs returns all kind specifications in a fixed order (entrega first,
// matching the shell's tab order).
func Specs() []Spec {
	return []Spec{specs[KindEntrega], specs[KindSalida]}
}

// LegalText interpolates the kind's legal paragraph with header values. The
// values are inserted verbatim; escaping is the rendering surface's job.
func (s Spec) LegalText(h Header) string {
	r := strings.NewReplacer(
		"{assignedTo}", h.AssignedTo,
		"{idNumber}", h.IDNumber,
		"{from}", h.From,
		"{to}", h.To,
	)
	return r.Replace(s.LegalTemplate)
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Filename derives the deterministic export filename for a document:
// acta_{kind}_{assignedTo with whitespace collapsed to underscores}_{dd-MM-yyyy}.pdf
func (s Spec) Filename(d Document) string {
	name := whitespaceRun.ReplaceAllString(d.Header.AssignedTo, "_")
	return fmt.Sprintf("acta_%s_%s_%s.pdf", s.Kind, name, FormatFileDate(d.Header.Date))
}
