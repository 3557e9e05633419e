// Command actagen is an interactive generator for custody actas. It prompts
// for the header fields and line items of one acta kind, validates the
// submission, and writes the resulting PDF next to the caller.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/modo-caracas/actagen/pkg/acta"
	"github.com/modo-caracas/actagen/pkg/export"
	"github.com/modo-caracas/actagen/pkg/forms"
	"github.com/modo-caracas/actagen/pkg/orchestrator"
	"github.com/modo-caracas/actagen/pkg/session"
)

var errAborted = errors.New("actagen: aborted")

func main() {
	kindFlag := flag.String("kind", "", "acta kind: entrega or salida (prompted when empty)")
	outputDir := flag.String("output", "", "directory for the generated PDF (overrides config)")
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("actagen: %v", err)
	}
	if *outputDir != "" {
		cfg.Output = *outputDir
	}

	ctx := context.Background()

	if err := run(ctx, *kindFlag, cfg); err != nil {
		if errors.Is(err, errAborted) {
			os.Exit(1)
		}
		log.Fatalf("actagen: %v", err)
	}
}

func run(ctx context.Context, kindFlag string, cfg Config) error {
	kind, err := resolveKind(kindFlag)
	if err != nil {
		return err
	}

	genOpts := []orchestrator.Option{}
	if cfg.LogoJPEG != "" {
		data, err := os.ReadFile(cfg.LogoJPEG)
		if err != nil {
			return fmt.Errorf("read logo jpeg: %w", err)
		}
		genOpts = append(genOpts, orchestrator.WithExporter(export.NewPDF(export.WithLogoJPEG(data))))
	}
	gen := orchestrator.New(genOpts...)
	sess, err := gen.Session(kind)
	if err != nil {
		return err
	}

	var doc acta.Document
	for {
		if err := promptHeader(sess); err != nil {
			return err
		}
		if err := promptItems(sess); err != nil {
			return err
		}

		submitted, errs := sess.Submit()
		if len(errs) == 0 {
			doc = submitted
			break
		}
		printErrors(errs)
		retry := false
		if err := ask(&survey.Confirm{Message: "¿Corregir los datos?", Default: true}, &retry); err != nil {
			return err
		}
		if !retry {
			return errAborted
		}
	}

	printSummary(sess, doc)

	file, err := gen.Export(ctx, sess)
	if err != nil {
		return err
	}

	path := filepath.Join(cfg.Output, file.Name)
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	fmt.Printf("Acta generada: %s\n", path)
	return nil
}

// printSummary echoes the validated acta before the PDF is written.
func printSummary(sess *session.Session, doc acta.Document) {
	spec := sess.Spec()
	fmt.Println()
	fmt.Println(spec.Title)
	fmt.Printf("  Fecha:            %s\n", acta.FormatDate(doc.Header.Date))
	fmt.Printf("  Persona Asignada: %s\n", doc.Header.AssignedTo)
	fmt.Printf("  Lugar:            %s\n", doc.Header.Location)
	if spec.HasRoute {
		fmt.Printf("  Origen:           %s\n", doc.Header.From)
		fmt.Printf("  Destino:          %s\n", doc.Header.To)
	}
	for i, item := range doc.Items() {
		fmt.Printf("  Equipo %d: %s, %s, cantidad %d\n", i+1, item.SerialNumber, item.Description, item.Quantity)
	}
	fmt.Println()
}

func resolveKind(raw string) (acta.Kind, error) {
	if raw != "" {
		return acta.ParseKind(raw)
	}

	options := make([]string, 0, len(acta.Specs()))
	byTitle := make(map[string]acta.Kind, len(acta.Specs()))
	for _, spec := range acta.Specs() {
		options = append(options, spec.Title)
		byTitle[spec.Title] = spec.Kind
	}

	var picked string
	prompt := &survey.Select{
		Message: "Tipo de acta:",
		Options: options,
	}
	if err := ask(prompt, &picked); err != nil {
		return "", err
	}
	return byTitle[picked], nil
}

// promptHeader walks the non-array fields in declared order, seeding each
// prompt with the session's current value so retries keep prior answers.
func promptHeader(sess *session.Session) error {
	values := sess.Values()
	for _, field := range headerFields(sess.Form()) {
		var out string
		prompt := &survey.Input{
			Message: field.Label + ":",
			Default: values[field.Name],
			Help:    field.Placeholder,
		}
		opts := []survey.AskOpt{}
		if field.Required {
			opts = append(opts, survey.WithValidator(survey.Required))
		}
		if err := ask(prompt, &out, opts...); err != nil {
			return err
		}
		sess.SetValue(field.Name, out)
	}
	return nil
}

func promptItems(sess *session.Session) error {
	for i, item := range sess.Items() {
		fmt.Printf("Equipo %d\n", i+1)
		if err := promptItem(sess, item); err != nil {
			return err
		}
	}

	for {
		more := false
		if err := ask(&survey.Confirm{Message: "¿Agregar otro equipo?", Default: false}, &more); err != nil {
			return err
		}
		if !more {
			return nil
		}
		item := sess.AddItem()
		fmt.Printf("Equipo %d\n", len(sess.Items()))
		if err := promptItem(sess, item); err != nil {
			return err
		}
	}
}

func promptItem(sess *session.Session, item session.Item) error {
	prompts := []struct {
		name    string
		message string
		value   string
	}{
		{"serialNumber", "  Serie o referencia:", item.SerialNumber},
		{"description", "  Descripción:", item.Description},
		{"quantity", "  Cantidad:", item.Quantity},
	}
	for _, p := range prompts {
		var out string
		if err := ask(&survey.Input{Message: p.message, Default: p.value}, &out); err != nil {
			return err
		}
		sess.SetItemField(item.ID, p.name, out)
	}
	return nil
}

func headerFields(form forms.Form) []forms.Field {
	fields := make([]forms.Field, 0, len(form.Fields))
	for _, field := range form.Fields {
		if field.Type == forms.FieldTypeArray {
			continue
		}
		fields = append(fields, field)
	}
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Order < fields[j].Order
	})
	return fields
}

func printErrors(errs forms.Errors) {
	fmt.Fprintln(os.Stderr, "El acta tiene errores:")
	for _, path := range errs.Paths() {
		for _, msg := range errs[path] {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", path, msg)
		}
	}
}

func ask(prompt survey.Prompt, response any, opts ...survey.AskOpt) error {
	if err := survey.AskOne(prompt, response, opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return errAborted
		}
		return err
	}
	return nil
}
