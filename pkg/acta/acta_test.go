package acta_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/modo-caracas/actagen/pkg/acta"
)

func TestParseKind(t *testing.T) {
	cases := []struct {
		raw     string
		want    acta.Kind
		wantErr bool
	}{
		{raw: "entrega", want: acta.KindEntrega},
		{raw: "salida", want: acta.KindSalida},
		{raw: " Entrega ", want: acta.KindEntrega},
		{raw: "SALIDA", want: acta.KindSalida},
		{raw: "", wantErr: true},
		{raw: "devolucion", wantErr: true},
	}
	for _, tc := range cases {
		got, err := acta.ParseKind(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseKind(%q): expected error, got %q", tc.raw, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseKind(%q): %v", tc.raw, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNewDocumentRequiresItems(t *testing.T) {
	_, err := acta.NewDocument(acta.KindEntrega, acta.Header{}, nil)
	if err == nil {
		t.Fatal("expected error for empty item list")
	}

	_, err = acta.NewDocument("devolucion", acta.Header{}, []acta.LineItem{{Quantity: 1}})
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestDocumentItemsAreCopied(t *testing.T) {
	items := []acta.LineItem{
		{SerialNumber: "SN-1", Description: "Laptop", Quantity: 1},
		{SerialNumber: "SN-2", Description: "Monitor", Quantity: 2},
	}
	doc, err := acta.NewDocument(acta.KindEntrega, acta.Header{}, items)
	if err != nil {
		t.Fatalf("new document: %v", err)
	}

	items[0].SerialNumber = "mutated"
	got := doc.Items()
	if got[0].SerialNumber != "SN-1" {
		t.Fatalf("input mutation leaked into document: %q", got[0].SerialNumber)
	}

	got[1].Description = "mutated"
	again := doc.Items()
	if again[1].Description != "Monitor" {
		t.Fatalf("output mutation leaked into document: %q", again[1].Description)
	}

	want := []acta.LineItem{
		{SerialNumber: "SN-1", Description: "Laptop", Quantity: 1},
		{SerialNumber: "SN-2", Description: "Monitor", Quantity: 2},
	}
	if diff := cmp.Diff(want, doc.Items()); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestSpecFor(t *testing.T) {
	entrega, err := acta.SpecFor(acta.KindEntrega)
	if err != nil {
		t.Fatalf("spec for entrega: %v", err)
	}
	if entrega.HasRoute {
		t.Error("entrega must not carry route fields")
	}
	if got, want := entrega.Page.MarginsMM, [4]float64{15, 20, 16, 21}; got != want {
		t.Errorf("entrega margins = %v, want %v", got, want)
	}

	salida, err := acta.SpecFor(acta.KindSalida)
	if err != nil {
		t.Fatalf("spec for salida: %v", err)
	}
	if !salida.HasRoute {
		t.Error("salida must carry route fields")
	}
	if got, want := salida.Page.MarginsMM, [4]float64{20, 23, 19, 24}; got != want {
		t.Errorf("salida margins = %v, want %v", got, want)
	}

	for _, spec := range []acta.Spec{entrega, salida} {
		if spec.Page.Size != "letter" || spec.Page.Orientation != "landscape" {
			t.Errorf("%s page = %+v, want letter landscape", spec.Kind, spec.Page)
		}
		if spec.Signatures != [3]string{"Quien Entrega", "Quien recibe", "Responsable del Área"} {
			t.Errorf("%s signatures = %v", spec.Kind, spec.Signatures)
		}
	}

	if _, err := acta.SpecFor("devolucion"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestSpecsOrder(t *testing.T) {
	specs := acta.Specs()
	if len(specs) != 2 {
		t.Fatalf("got %d specs, want 2", len(specs))
	}
	if specs[0].Kind != acta.KindEntrega || specs[1].Kind != acta.KindSalida {
		t.Fatalf("spec order = %q, %q", specs[0].Kind, specs[1].Kind)
	}
}

func TestLegalTextInterpolation(t *testing.T) {
	header := acta.Header{
		AssignedTo: "María González",
		IDNumber:   "V-9876543",
		From:       "Almacén Central",
		To:         "Oficina Chacao",
	}

	entrega, _ := acta.SpecFor(acta.KindEntrega)
	text := entrega.LegalText(header)
	if !strings.Contains(text, "Yo, María González titular de la cédula de identidad No. V-9876543") {
		t.Errorf("entrega legal text missing interpolated header: %q", text)
	}
	if strings.Contains(text, "{assignedTo}") || strings.Contains(text, "{idNumber}") {
		t.Errorf("entrega legal text kept placeholders: %q", text)
	}

	salida, _ := acta.SpecFor(acta.KindSalida)
	text = salida.LegalText(header)
	if !strings.Contains(text, "desde Almacén Central hacia Oficina Chacao") {
		t.Errorf("salida legal text missing route: %q", text)
	}
}

func TestFilename(t *testing.T) {
	date := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	doc, err := acta.NewDocument(acta.KindEntrega,
		acta.Header{Date: date, AssignedTo: "Juan Pérez"},
		[]acta.LineItem{{SerialNumber: "SN-1", Description: "Laptop", Quantity: 1}},
	)
	if err != nil {
		t.Fatalf("new document: %v", err)
	}

	spec, _ := acta.SpecFor(acta.KindEntrega)
	if got, want := spec.Filename(doc), "acta_entrega_Juan_Pérez_05-03-2024.pdf"; got != want {
		t.Errorf("Filename = %q, want %q", got, want)
	}
}

func TestFilenameCollapsesWhitespace(t *testing.T) {
	date := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)
	doc, err := acta.NewDocument(acta.KindSalida,
		acta.Header{Date: date, AssignedTo: "Ana  María \t de la Cruz"},
		[]acta.LineItem{{SerialNumber: "SN-1", Description: "Taladro", Quantity: 1}},
	)
	if err != nil {
		t.Fatalf("new document: %v", err)
	}

	spec, _ := acta.SpecFor(acta.KindSalida)
	if got, want := spec.Filename(doc), "acta_salida_Ana_María_de_la_Cruz_31-12-2025.pdf"; got != want {
		t.Errorf("Filename = %q, want %q", got, want)
	}
}

func TestDateFormats(t *testing.T) {
	date := time.Date(2024, time.January, 9, 0, 0, 0, 0, time.UTC)
	if got, want := acta.FormatDate(date), "09/01/2024"; got != want {
		t.Errorf("FormatDate = %q, want %q", got, want)
	}
	if got, want := acta.FormatFileDate(date), "09-01-2024"; got != want {
		t.Errorf("FormatFileDate = %q, want %q", got, want)
	}
}
