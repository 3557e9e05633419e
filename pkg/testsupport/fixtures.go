// Package testsupport holds shared fixtures for contract tests: lowered
// forms from the embedded schema and known-good submissions for both kinds.
package testsupport

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	internalopenapi "github.com/modo-caracas/actagen/internal/openapi"
	"github.com/modo-caracas/actagen/pkg/acta"
	"github.com/modo-caracas/actagen/pkg/forms"
)

// Context returns a base context for tests.
func Context() context.Context {
	return context.Background()
}

// MustSpec resolves the kind specification. Testing helpers fail fast to
// keep contract tests concise.
func MustSpec(t *testing.T, kind acta.Kind) acta.Spec {
	t.Helper()

	spec, err := acta.SpecFor(kind)
	if err != nil {
		t.Fatalf("spec for %q: %v", kind, err)
	}
	return spec
}

// MustForm lowers the embedded schema into the form definition for one kind.
func MustForm(t *testing.T, kind acta.Kind) forms.Form {
	t.Helper()

	doc, err := internalopenapi.LoadEmbedded(Context())
	if err != nil {
		t.Fatalf("load embedded document: %v", err)
	}
	spec := MustSpec(t, kind)
	form, err := internalopenapi.FormForOperation(doc, spec.OperationID)
	if err != nil {
		t.Fatalf("lower form for %q: %v", kind, err)
	}
	return form
}

// ValidSubmission returns a raw submission that passes validation for the
// given kind.
func ValidSubmission(kind acta.Kind) forms.RawSubmission {
	values := map[string]string{
		"date":       "2024-03-05",
		"assignedTo": "Juan Pérez",
		"location":   "Sede Principal",
		"idNumber":   "V-12345678",
	}
	if kind == acta.KindSalida {
		values["from"] = "Almacén Central"
		values["to"] = "Oficina Chacao"
	}
	return forms.RawSubmission{
		Values: values,
		Items: []map[string]string{
			{"serialNumber": "SN-001", "description": "Laptop Dell Latitude", "quantity": "1"},
			{"serialNumber": "SN-002", "description": "Monitor 24\"", "quantity": "2"},
		},
	}
}

// MustDocument validates the known-good submission and returns the document.
func MustDocument(t *testing.T, kind acta.Kind) acta.Document {
	t.Helper()

	validator := forms.NewValidator(MustSpec(t, kind), MustForm(t, kind))
	doc, errs := validator.Validate(ValidSubmission(kind))
	if len(errs) > 0 {
		t.Fatalf("valid submission rejected: %v", errs)
	}
	return doc
}

// Diff fails the test when got differs from want, printing the cmp diff.
func Diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()

	if diff := cmp.Diff(want, got, opts...); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
