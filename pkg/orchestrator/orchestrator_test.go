package orchestrator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/modo-caracas/actagen/pkg/acta"
	"github.com/modo-caracas/actagen/pkg/forms"
	"github.com/modo-caracas/actagen/pkg/orchestrator"
	"github.com/modo-caracas/actagen/pkg/session"
	"github.com/modo-caracas/actagen/pkg/testsupport"
)

func TestDefaultsProvideFullPipeline(t *testing.T) {
	gen := orchestrator.New()

	for _, spec := range acta.Specs() {
		form, err := gen.Form(spec.Kind)
		if err != nil {
			t.Fatalf("form for %q: %v", spec.Kind, err)
		}
		if form.ID != spec.OperationID {
			t.Errorf("form id = %q, want %q", form.ID, spec.OperationID)
		}
	}

	renderer, err := gen.Renderer("")
	if err != nil {
		t.Fatalf("default renderer: %v", err)
	}
	if renderer.Name() != "htmldoc" {
		t.Errorf("default renderer = %q", renderer.Name())
	}

	exporter, err := gen.Exporter()
	if err != nil {
		t.Fatalf("exporter: %v", err)
	}
	if exporter.ContentType() != "application/pdf" {
		t.Errorf("exporter content type = %q", exporter.ContentType())
	}
}

func TestSessionStartsEditing(t *testing.T) {
	gen := orchestrator.New()

	sess, err := gen.Session(acta.KindSalida)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if sess.State() != session.StateEditing {
		t.Errorf("state = %q", sess.State())
	}
	if sess.Spec().Kind != acta.KindSalida {
		t.Errorf("spec kind = %q", sess.Spec().Kind)
	}
	if len(sess.Items()) != 1 {
		t.Errorf("seeded items = %d", len(sess.Items()))
	}
}

func TestSessionUnknownKind(t *testing.T) {
	gen := orchestrator.New()
	if _, err := gen.Session("devolucion"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestRendererUnknownName(t *testing.T) {
	gen := orchestrator.New()
	if _, err := gen.Renderer("missing"); err == nil {
		t.Fatal("expected error for unknown renderer")
	}
}

func TestWithFormOverride(t *testing.T) {
	custom := forms.Form{ID: "customEntrega", Title: "Custom"}
	gen := orchestrator.New(orchestrator.WithForm(acta.KindEntrega, custom))

	form, err := gen.Form(acta.KindEntrega)
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if form.ID != "customEntrega" {
		t.Errorf("override ignored, form id = %q", form.ID)
	}

	// The other kind still lowers from the embedded document.
	form, err = gen.Form(acta.KindSalida)
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if form.ID != "createActaSalida" {
		t.Errorf("salida form id = %q", form.ID)
	}
}

func TestExportBeforeSubmit(t *testing.T) {
	gen := orchestrator.New()

	sess, err := gen.Session(acta.KindEntrega)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if _, err := gen.Export(context.Background(), sess); !errors.Is(err, session.ErrNothingToExport) {
		t.Fatalf("err = %v, want ErrNothingToExport", err)
	}
}

func TestExportRoundTrip(t *testing.T) {
	gen := orchestrator.New()

	sess, err := gen.Session(acta.KindEntrega)
	if err != nil {
		t.Fatalf("session: %v", err)
	}

	sub := testsupport.ValidSubmission(acta.KindEntrega)
	for name, value := range sub.Values {
		sess.SetValue(name, value)
	}
	item := sess.Items()[0]
	for name, value := range sub.Items[0] {
		sess.SetItemField(item.ID, name, value)
	}

	if _, errs := sess.Submit(); len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	file, err := gen.Export(context.Background(), sess)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if file.Name != "acta_entrega_Juan_Pérez_05-03-2024.pdf" {
		t.Errorf("file name = %q", file.Name)
	}
	if len(file.Data) == 0 {
		t.Error("empty export payload")
	}
}
