package forms_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/modo-caracas/actagen/pkg/acta"
	"github.com/modo-caracas/actagen/pkg/forms"
	"github.com/modo-caracas/actagen/pkg/testsupport"
)

func newValidator(t *testing.T, kind acta.Kind) *forms.Validator {
	t.Helper()
	return forms.NewValidator(testsupport.MustSpec(t, kind), testsupport.MustForm(t, kind))
}

func TestValidateEntrega(t *testing.T) {
	validator := newValidator(t, acta.KindEntrega)

	doc, errs := validator.Validate(testsupport.ValidSubmission(acta.KindEntrega))
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	if doc.Kind != acta.KindEntrega {
		t.Errorf("kind = %q", doc.Kind)
	}
	wantDate := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	if !doc.Header.Date.Equal(wantDate) {
		t.Errorf("date = %v, want %v", doc.Header.Date, wantDate)
	}
	if doc.Header.AssignedTo != "Juan Pérez" || doc.Header.Location != "Sede Principal" {
		t.Errorf("header = %+v", doc.Header)
	}

	wantItems := []acta.LineItem{
		{SerialNumber: "SN-001", Description: "Laptop Dell Latitude", Quantity: 1},
		{SerialNumber: "SN-002", Description: "Monitor 24\"", Quantity: 2},
	}
	if diff := cmp.Diff(wantItems, doc.Items()); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateSalidaRoute(t *testing.T) {
	validator := newValidator(t, acta.KindSalida)

	doc, errs := validator.Validate(testsupport.ValidSubmission(acta.KindSalida))
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if doc.Header.From != "Almacén Central" || doc.Header.To != "Oficina Chacao" {
		t.Errorf("route = %q -> %q", doc.Header.From, doc.Header.To)
	}

	sub := testsupport.ValidSubmission(acta.KindSalida)
	sub.Values["from"] = "A"
	sub.Values["to"] = ""
	_, errs = validator.Validate(sub)
	if got, want := errs.First("from"), "El origen debe tener al menos 2 caracteres"; got != want {
		t.Errorf("from error = %q, want %q", got, want)
	}
	if got, want := errs.First("to"), "El destino debe tener al menos 2 caracteres"; got != want {
		t.Errorf("to error = %q, want %q", got, want)
	}
}

func TestValidateHeaderErrors(t *testing.T) {
	validator := newValidator(t, acta.KindEntrega)

	cases := []struct {
		name  string
		field string
		value string
		want  string
	}{
		{name: "missing date", field: "date", value: "", want: "La fecha es requerida"},
		{name: "malformed date", field: "date", value: "05/03/2024", want: "La fecha no es válida"},
		{name: "date before floor", field: "date", value: "1899-12-31", want: "La fecha no puede ser anterior a 1900-01-01"},
		{name: "short name", field: "assignedTo", value: "J", want: "El nombre debe tener al menos 2 caracteres"},
		{name: "short location", field: "location", value: "x", want: "El lugar debe tener al menos 2 caracteres"},
		{name: "missing id number", field: "idNumber", value: "", want: "El número de cédula es requerido"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := testsupport.ValidSubmission(acta.KindEntrega)
			sub.Values[tc.field] = tc.value

			doc, errs := validator.Validate(sub)
			if got := errs.First(tc.field); got != tc.want {
				t.Errorf("error = %q, want %q", got, tc.want)
			}
			if doc.Kind != "" {
				t.Errorf("document produced despite errors: %+v", doc)
			}
		})
	}
}

func TestValidateDateBoundary(t *testing.T) {
	validator := newValidator(t, acta.KindEntrega)

	sub := testsupport.ValidSubmission(acta.KindEntrega)
	sub.Values["date"] = "1900-01-01"
	doc, errs := validator.Validate(sub)
	if len(errs) > 0 {
		t.Fatalf("floor date rejected: %v", errs)
	}
	if got := doc.Header.Date.Year(); got != 1900 {
		t.Errorf("year = %d", got)
	}
}

func TestValidateQuantity(t *testing.T) {
	validator := newValidator(t, acta.KindEntrega)

	cases := []struct {
		raw  string
		want string
	}{
		{raw: "abc", want: "La cantidad debe ser un número"},
		{raw: "", want: "La cantidad debe ser un número"},
		{raw: "0", want: "La cantidad debe ser al menos 1"},
		{raw: "-3", want: "La cantidad debe ser al menos 1"},
	}
	for _, tc := range cases {
		sub := testsupport.ValidSubmission(acta.KindEntrega)
		sub.Items[0]["quantity"] = tc.raw

		_, errs := validator.Validate(sub)
		if got := errs.First("items[0].quantity"); got != tc.want {
			t.Errorf("quantity %q error = %q, want %q", tc.raw, got, tc.want)
		}
	}

	sub := testsupport.ValidSubmission(acta.KindEntrega)
	sub.Items[0]["quantity"] = " 3 "
	doc, errs := validator.Validate(sub)
	if len(errs) > 0 {
		t.Fatalf("coercible quantity rejected: %v", errs)
	}
	if got := doc.Items()[0].Quantity; got != 3 {
		t.Errorf("quantity = %d, want 3", got)
	}
}

func TestValidateItemErrors(t *testing.T) {
	validator := newValidator(t, acta.KindEntrega)

	sub := testsupport.ValidSubmission(acta.KindEntrega)
	sub.Items[1]["serialNumber"] = ""
	sub.Items[1]["description"] = ""

	_, errs := validator.Validate(sub)
	if got, want := errs.First("items[1].serialNumber"), "El número de serie es requerido"; got != want {
		t.Errorf("serial error = %q, want %q", got, want)
	}
	if got, want := errs.First("items[1].description"), "La descripción es requerida"; got != want {
		t.Errorf("description error = %q, want %q", got, want)
	}
	if errs.Has("items[0].serialNumber") {
		t.Error("valid row collected errors")
	}
}

func TestValidateNoItems(t *testing.T) {
	validator := newValidator(t, acta.KindEntrega)

	sub := testsupport.ValidSubmission(acta.KindEntrega)
	sub.Items = nil

	_, errs := validator.Validate(sub)
	if got, want := errs.First("items"), "Debe haber al menos un ítem"; got != want {
		t.Errorf("items error = %q, want %q", got, want)
	}
}

func TestValidateAllOrNothing(t *testing.T) {
	validator := newValidator(t, acta.KindEntrega)

	sub := testsupport.ValidSubmission(acta.KindEntrega)
	sub.Values["assignedTo"] = "J"
	sub.Items[0]["quantity"] = "abc"

	doc, errs := validator.Validate(sub)
	if len(errs) != 2 {
		t.Fatalf("got %d error paths, want 2: %v", len(errs), errs)
	}
	if doc.Kind != "" {
		t.Errorf("document produced despite errors")
	}
}

func TestItemPath(t *testing.T) {
	if got, want := forms.ItemPath(2, "quantity"), "items[2].quantity"; got != want {
		t.Errorf("ItemPath = %q, want %q", got, want)
	}
}

func TestErrorsPathsSorted(t *testing.T) {
	errs := forms.Errors{}
	errs.Add("location", "x")
	errs.Add("date", "y")
	errs.Add("assignedTo", "z")

	want := []string{"assignedTo", "date", "location"}
	if diff := cmp.Diff(want, errs.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}
